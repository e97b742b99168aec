package analysis

import (
	"path"

	"github.com/zeu5/bandits/core"
	"github.com/zeu5/bandits/util"
)

type PullsDataset struct {
	Runs      int
	MeanPulls []float64
	// BestArmShare is the fraction of rounds spent on a best arm, averaged over
	// runs. Every arm tied at the best probability counts.
	BestArmShare       float64
	BestArmShareStdDev float64
}

type PullsAnalyzer struct {
	runs   int
	sums   []float64
	shares []float64
}

var _ core.Analyzer = &PullsAnalyzer{}

func NewPullsAnalyzer() *PullsAnalyzer {
	return &PullsAnalyzer{
		sums:   make([]float64, 0),
		shares: make([]float64, 0),
	}
}

func (p *PullsAnalyzer) Analyze(_ *core.RunContext, agent *core.Agent) {
	pulls := agent.PullCounts()
	for len(p.sums) < len(pulls) {
		p.sums = append(p.sums, 0)
	}
	for arm, c := range pulls {
		p.sums[arm] += float64(c)
	}
	p.runs++

	if agent.Rounds() > 0 {
		env := agent.Environment()
		bestPulls := 0
		for arm, c := range pulls {
			if env.Probability(arm) == env.BestProbability() {
				bestPulls += c
			}
		}
		p.shares = append(p.shares, float64(bestPulls)/float64(agent.Rounds()))
	}
}

func (p *PullsAnalyzer) DataSet() core.DataSet {
	ds := &PullsDataset{
		Runs:      p.runs,
		MeanPulls: util.CopyFloatSlice(p.sums),
	}
	if p.runs > 0 {
		for arm := range ds.MeanPulls {
			ds.MeanPulls[arm] /= float64(p.runs)
		}
	}
	ds.BestArmShare, ds.BestArmShareStdDev = meanStdDev(p.shares)
	return ds
}

func (p *PullsAnalyzer) Reset() {
	p.runs = 0
	p.sums = make([]float64, 0)
	p.shares = make([]float64, 0)
}

type PullsAnalyzerConstructor struct{}

var _ core.AnalyzerConstructor = &PullsAnalyzerConstructor{}

func NewPullsAnalyzerConstructor() *PullsAnalyzerConstructor {
	return &PullsAnalyzerConstructor{}
}

func (*PullsAnalyzerConstructor) NewAnalyzer(_ string, _ int) core.Analyzer {
	return NewPullsAnalyzer()
}

type PullsComparator struct {
	savePath string
}

var _ core.Comparator = &PullsComparator{}

func NewPullsComparator(savePath string) *PullsComparator {
	return &PullsComparator{
		savePath: path.Join(savePath, "pulls.json"),
	}
}

func (p *PullsComparator) Compare(experimentNames []string, datasets []core.DataSet) error {
	out := make(map[string]*PullsDataset)
	for i, name := range experimentNames {
		ds, _ := datasets[i].(*PullsDataset)
		out[name] = ds
	}
	return util.SaveJson(p.savePath, out)
}

type PullsComparatorConstructor struct {
	SavePath string
}

var _ core.ComparatorConstructor = &PullsComparatorConstructor{}

func NewPullsComparatorConstructor(savePath string) *PullsComparatorConstructor {
	return &PullsComparatorConstructor{
		SavePath: savePath,
	}
}

func (p *PullsComparatorConstructor) NewComparator() core.Comparator {
	return NewPullsComparator(p.SavePath)
}
