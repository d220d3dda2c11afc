package reconcile

// Status classifies a reconciled row by the sides holding its key.
type Status string

// Row statuses
const (
	StatusBoth       Status = "both"
	StatusGroundOnly Status = "ground_only"
	StatusMirrorOnly Status = "mirror_only"
)

// String returns the string representation of a status
func (s Status) String() string {
	return string(s)
}

// Statuses lists every status in reporting order.
func Statuses() []Status {
	return []Status{StatusBoth, StatusGroundOnly, StatusMirrorOnly}
}
