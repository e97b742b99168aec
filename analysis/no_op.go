package analysis

import "github.com/zeu5/bandits/core"

// NoOpComparator is used for analyses that only write files from the analyzer
type NoOpComparator struct {
}

var _ core.Comparator = &NoOpComparator{}

func NewNoOpComparator() *NoOpComparator {
	return &NoOpComparator{}
}

func (n *NoOpComparator) Compare(_ []string, _ []core.DataSet) error {
	return nil
}

type NoOpComparatorConstructor struct {
}

var _ core.ComparatorConstructor = &NoOpComparatorConstructor{}

func NewNoOpComparatorConstructor() *NoOpComparatorConstructor {
	return &NoOpComparatorConstructor{}
}

func (n *NoOpComparatorConstructor) NewComparator() core.Comparator {
	return NewNoOpComparator()
}
