package mirror

import (
	"context"
	"fmt"
	"sync"

	"github.com/agentstation/utc"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/agentstation/mirror/pkg/constants"
	"github.com/agentstation/mirror/pkg/dataset"
	"github.com/agentstation/mirror/pkg/errors"
	"github.com/agentstation/mirror/pkg/logging"
	"github.com/agentstation/mirror/pkg/schema"
)

// Reference is the view of a ground dataset a Mirror depends on.
type Reference interface {
	// Keys returns the declared key columns
	Keys() []string

	// Attributes returns the non-key columns
	Attributes() []string

	// Columns returns every ground column
	Columns() []string

	// Dataset returns the ground records
	Dataset() *dataset.Dataset

	// Schema returns the validated column layout
	Schema() *schema.Reference
}

// Attachment is a mirror dataset registered on a Ground.
type Attachment struct {
	ID        uuid.UUID
	Label     string
	Dataset   *dataset.Dataset
	CreatedAt utc.Time
	UpdatedAt utc.Time
}

// Ground is the reference dataset mirrors are compared against.
type Ground struct {
	mu          sync.RWMutex
	dataset     *dataset.Dataset
	schema      *schema.Reference
	config      config
	attachments []*Attachment
	byLabel     map[string]*Attachment
	hooks       *hooks
	logger      *zerolog.Logger
}

// NewGround declares the key columns of a ground dataset. Keys must be a
// non-empty subset of the dataset's columns. Options become the defaults
// of mirrors built through Ground.Mirror.
func NewGround(ds *dataset.Dataset, keys []string, opts ...Option) (*Ground, error) {
	if ds == nil {
		return nil, errors.Configf("reference", "ground dataset is required")
	}
	ref, err := schema.NewReference(ds.Columns(), keys)
	if err != nil {
		return nil, err
	}
	g := &Ground{
		dataset: ds,
		schema:  ref,
		byLabel: make(map[string]*Attachment),
		hooks:   newHooks(),
	}
	if err := g.config.apply(opts...); err != nil {
		return nil, fmt.Errorf("applying options: %w", err)
	}
	g.logger = logging.OrNop(g.config.logger)
	g.logger.Debug().
		Str("ground", ds.Name()).
		Strs("keys", ref.Keys()).
		Int("records", ds.Len()).
		Msg("ground registered")
	return g, nil
}

// Keys returns the declared key columns
func (g *Ground) Keys() []string { return g.schema.Keys() }

// Attributes returns the non-key columns
func (g *Ground) Attributes() []string { return g.schema.Attributes() }

// Columns returns every ground column
func (g *Ground) Columns() []string { return g.schema.Columns() }

// Dataset returns the ground records
func (g *Ground) Dataset() *dataset.Dataset { return g.dataset }

// Schema returns the validated column layout
func (g *Ground) Schema() *schema.Reference { return g.schema }

// Attach registers a mirror dataset without reconciling it. An empty
// label defaults to mirror_N where N is one more than the number of
// attachments. Labels must be unique.
func (g *Ground) Attach(ds *dataset.Dataset, label string) (Attachment, error) {
	if ds == nil {
		return Attachment{}, errors.NewValidationError("dataset", nil, "mirror dataset is required")
	}

	g.mu.Lock()
	if label == "" {
		label = fmt.Sprintf("%s%d", constants.MirrorLabelPrefix, len(g.attachments)+1)
	}
	if _, exists := g.byLabel[label]; exists {
		g.mu.Unlock()
		return Attachment{}, errors.NewValidationError("label", label, fmt.Sprintf("label %q is already attached", label))
	}
	now := utc.Now()
	a := &Attachment{
		ID:        uuid.New(),
		Label:     label,
		Dataset:   ds,
		CreatedAt: now,
		UpdatedAt: now,
	}
	g.attachments = append(g.attachments, a)
	g.byLabel[label] = a
	snapshot := *a
	g.mu.Unlock()

	g.logger.Debug().
		Str("mirror", label).
		Str("id", a.ID.String()).
		Int("records", ds.Len()).
		Msg("mirror attached")
	g.hooks.triggerAttached(snapshot)
	return snapshot, nil
}

// Attachments returns the attachments in registration order.
func (g *Ground) Attachments() []Attachment {
	g.mu.RLock()
	defer g.mu.RUnlock()
	out := make([]Attachment, len(g.attachments))
	for i, a := range g.attachments {
		out[i] = *a
	}
	return out
}

// Attachment returns the attachment registered under label.
func (g *Ground) Attachment(label string) (Attachment, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	a, ok := g.byLabel[label]
	if !ok {
		return Attachment{}, errors.NewNotFoundError("mirror", label)
	}
	return *a, nil
}

// Mirror reconciles an attachment. The ground's options apply first,
// then opts. The attachment's UpdatedAt is refreshed on success.
func (g *Ground) Mirror(ctx context.Context, label string, opts ...Option) (*Mirror, error) {
	a, err := g.Attachment(label)
	if err != nil {
		return nil, err
	}

	cfg := g.config.clone()
	cfg.label = label
	m, err := newMirror(ctx, g, a.Dataset, cfg, opts...)
	if err != nil {
		return nil, err
	}

	g.mu.Lock()
	if current, ok := g.byLabel[label]; ok {
		current.UpdatedAt = utc.Now()
	}
	g.mu.Unlock()

	g.hooks.triggerBuilt(m)
	return m, nil
}

// OnAttached registers a callback run after every successful Attach.
func (g *Ground) OnAttached(fn AttachedHook) {
	g.hooks.OnAttached(fn)
}

// OnMirrorBuilt registers a callback run after Ground.Mirror succeeds.
func (g *Ground) OnMirrorBuilt(fn MirrorBuiltHook) {
	g.hooks.OnMirrorBuilt(fn)
}
