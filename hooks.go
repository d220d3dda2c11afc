package mirror

import "sync"

// Hook function types for ground events
type (
	// AttachedHook is called when a mirror dataset is attached
	AttachedHook func(a Attachment)

	// MirrorBuiltHook is called when an attachment has been reconciled
	MirrorBuiltHook func(m *Mirror)
)

// hooks manages event callbacks for a ground
type hooks struct {
	mu            sync.RWMutex
	onAttached    []AttachedHook
	onMirrorBuilt []MirrorBuiltHook
}

// newHooks creates a new hooks instance
func newHooks() *hooks {
	return &hooks{}
}

// OnAttached registers a callback for attachments
func (h *hooks) OnAttached(fn AttachedHook) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onAttached = append(h.onAttached, fn)
}

// OnMirrorBuilt registers a callback for reconciled attachments
func (h *hooks) OnMirrorBuilt(fn MirrorBuiltHook) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onMirrorBuilt = append(h.onMirrorBuilt, fn)
}

func (h *hooks) triggerAttached(a Attachment) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, fn := range h.onAttached {
		fn(a)
	}
}

func (h *hooks) triggerBuilt(m *Mirror) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, fn := range h.onMirrorBuilt {
		fn(m)
	}
}
