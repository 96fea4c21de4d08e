package types

// Plan is the set of operations a backup run intends to perform,
// derived from a diff of the source and target listings.
type Plan struct {
	Copies  []string // paths to copy source -> target (new and changed files)
	Deletes []string // paths to delete on the target
}

// Empty reports whether the plan contains no operations.
func (p Plan) Empty() bool {
	return len(p.Copies) == 0 && len(p.Deletes) == 0
}
