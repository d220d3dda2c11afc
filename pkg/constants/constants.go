// Package constants provides shared constants used throughout the mirror codebase.
// This includes reserved column names, scoring defaults, file permissions and
// other values that must stay consistent between the engine, the reports and the CLI.
package constants

import "time"

// Reserved column names used by the reconciliation map
const (
	// ReservedPrefix marks internal columns. Columns starting with it never
	// take part in error signatures.
	ReservedPrefix = "_"

	// MeanColumn holds the per-record mean score
	MeanColumn = "_mean"

	// StatusColumn holds the match status of a joined record
	StatusColumn = "_merge"

	// GroundSuffix is appended to an attribute name for its ground value
	GroundSuffix = "_ground"

	// MirrorSuffix is appended to an attribute name for its mirror value
	MirrorSuffix = "_mirror"

	// ScoreSeparator joins an attribute and a strategy into a score column name
	ScoreSeparator = ":"

	// SignatureSeparator joins score column names into an error signature
	SignatureSeparator = " "
)

// Scoring defaults
const (
	// DefaultStrategy is assigned to every attribute without an explicit assignment
	DefaultStrategy = "exact-match"

	// PerfectScore is the score of a faithful cell and of a faithful record
	PerfectScore = 1.0

	// PercentScale converts a mean score into a percentage
	PercentScale = 100.0
)

// Attachment defaults
const (
	// MirrorLabelPrefix prefixes auto-generated attachment labels (mirror_1, mirror_2, ...)
	MirrorLabelPrefix = "mirror_"

	// AllFields selects every attribute in report subsets
	AllFields = "*"
)

// File permission constants define standard Unix file permissions
const (
	// DirPermissions is the default permission for created directories (rwxr-xr-x)
	DirPermissions = 0755

	// FilePermissions is the default permission for created files (rw-r--r--)
	FilePermissions = 0644
)

// Limit constants
const (
	// MaxConcurrentScorers caps the goroutines used for parallel attribute scoring
	MaxConcurrentScorers = 16

	// CommandTimeout is the default timeout for CLI commands
	CommandTimeout = 10 * time.Minute
)

// Format constants
const (
	// TimeFormatISO8601 is the ISO 8601 time format used for attachment timestamps
	TimeFormatISO8601 = time.RFC3339

	// NotApplicable is how an undefined metric is rendered in text output
	NotApplicable = "n/a"
)
