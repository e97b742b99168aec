package analysis

import (
	"path"

	"github.com/zeu5/bandits/core"
	"github.com/zeu5/bandits/util"
)

type OptimalArmDataset struct {
	// Fraction[t] is the fraction of runs that pulled the best arm in round t+1
	Fraction []float64
}

// OptimalArmAnalyzer tracks how often the best arm is chosen in every round.
// It needs the agents to record traces, runs without one are skipped.
type OptimalArmAnalyzer struct {
	hits   []int
	counts []int
}

var _ core.Analyzer = &OptimalArmAnalyzer{}

func NewOptimalArmAnalyzer() *OptimalArmAnalyzer {
	return &OptimalArmAnalyzer{
		hits:   make([]int, 0),
		counts: make([]int, 0),
	}
}

func (o *OptimalArmAnalyzer) Analyze(_ *core.RunContext, agent *core.Agent) {
	trace := agent.Trace()
	if trace == nil {
		return
	}
	env := agent.Environment()
	for i := 0; i < trace.Len(); i++ {
		if i >= len(o.hits) {
			o.hits = append(o.hits, 0)
			o.counts = append(o.counts, 0)
		}
		o.counts[i]++
		// ties at the best probability are all optimal
		if env.Probability(trace.Step(i).Arm) == env.BestProbability() {
			o.hits[i]++
		}
	}
}

func (o *OptimalArmAnalyzer) DataSet() core.DataSet {
	ds := &OptimalArmDataset{
		Fraction: make([]float64, len(o.hits)),
	}
	for i := range o.hits {
		ds.Fraction[i] = float64(o.hits[i]) / float64(o.counts[i])
	}
	return ds
}

func (o *OptimalArmAnalyzer) Reset() {
	o.hits = make([]int, 0)
	o.counts = make([]int, 0)
}

type OptimalArmAnalyzerConstructor struct{}

var _ core.AnalyzerConstructor = &OptimalArmAnalyzerConstructor{}

func NewOptimalArmAnalyzerConstructor() *OptimalArmAnalyzerConstructor {
	return &OptimalArmAnalyzerConstructor{}
}

func (*OptimalArmAnalyzerConstructor) NewAnalyzer(_ string, _ int) core.Analyzer {
	return NewOptimalArmAnalyzer()
}

type OptimalArmComparator struct {
	savePath string
}

var _ core.Comparator = &OptimalArmComparator{}

func NewOptimalArmComparator(savePath string) *OptimalArmComparator {
	return &OptimalArmComparator{
		savePath: path.Join(savePath, "optimal_arm.json"),
	}
}

func (o *OptimalArmComparator) Compare(experimentNames []string, datasets []core.DataSet) error {
	out := make(map[string]*OptimalArmDataset)
	for i, name := range experimentNames {
		ds, _ := datasets[i].(*OptimalArmDataset)
		out[name] = ds
	}
	return util.SaveJson(o.savePath, out)
}

type OptimalArmComparatorConstructor struct {
	SavePath string
}

var _ core.ComparatorConstructor = &OptimalArmComparatorConstructor{}

func NewOptimalArmComparatorConstructor(savePath string) *OptimalArmComparatorConstructor {
	return &OptimalArmComparatorConstructor{
		SavePath: savePath,
	}
}

func (o *OptimalArmComparatorConstructor) NewComparator() core.Comparator {
	return NewOptimalArmComparator(o.SavePath)
}
