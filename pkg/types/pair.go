package types

// Pair is a named source/target folder pairing.
type Pair struct {
	Name   string `yaml:"-"`
	Source string `yaml:"source"`
	Target string `yaml:"target"`
}
