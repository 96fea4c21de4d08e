package types

// DiffType classifies a single difference between source and target.
type DiffType string

const (
	MissingInTarget DiffType = "MISSING_IN_TARGET" // exists in source only
	MissingInSource DiffType = "MISSING_IN_SOURCE" // exists in target only
	Different       DiffType = "DIFFERENT"         // exists in both with differing attributes
)

// Diff represents one difference between the source and target listings.
type Diff struct {
	Type DiffType
	Path string

	// Attributes of the entry on each side. The pointer is nil for the
	// side the entry is missing from.
	Source *Entry
	Target *Entry

	// Set only for Different entries.
	SizeDiff    bool
	ModTimeDiff bool
}
