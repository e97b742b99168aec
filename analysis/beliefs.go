package analysis

import (
	"math"
	"path"

	"github.com/zeu5/bandits/core"
	"github.com/zeu5/bandits/util"
	"gonum.org/v1/gonum/stat"
)

// Beliefs returns the per arm mean belief of the policy: the running mean
// estimate, or the posterior mean s/(s+f). ok is false when the policy keeps
// neither.
func Beliefs(p core.Policy) ([]float64, bool) {
	switch b := p.(type) {
	case core.MeanEstimator:
		return b.Estimates(), true
	case core.BetaPosterior:
		s, f := b.Posterior()
		out := make([]float64, len(s))
		for i := range s {
			out[i] = s[i] / (s[i] + f[i])
		}
		return out, true
	}
	return nil, false
}

type BeliefDataset struct {
	Runs int
	// MeanBelief is nil for policies that keep no belief
	MeanBelief []float64
	// MeanAbsError is the absolute error between belief and true probability,
	// averaged over arms and runs
	MeanAbsError float64
}

type BeliefAnalyzer struct {
	runs      int
	sums      []float64
	absErrors []float64
}

var _ core.Analyzer = &BeliefAnalyzer{}

func NewBeliefAnalyzer() *BeliefAnalyzer {
	return &BeliefAnalyzer{
		absErrors: make([]float64, 0),
	}
}

func (b *BeliefAnalyzer) Analyze(_ *core.RunContext, agent *core.Agent) {
	beliefs, ok := Beliefs(agent.Policy())
	if !ok {
		return
	}
	if b.sums == nil {
		b.sums = make([]float64, len(beliefs))
	}
	truth := agent.Environment().TrueProbabilities()
	absErr := make([]float64, len(beliefs))
	for arm, v := range beliefs {
		b.sums[arm] += v
		absErr[arm] = math.Abs(v - truth[arm])
	}
	b.absErrors = append(b.absErrors, stat.Mean(absErr, nil))
	b.runs++
}

func (b *BeliefAnalyzer) DataSet() core.DataSet {
	ds := &BeliefDataset{
		Runs: b.runs,
	}
	if b.runs == 0 {
		return ds
	}
	ds.MeanBelief = util.CopyFloatSlice(b.sums)
	for arm := range ds.MeanBelief {
		ds.MeanBelief[arm] /= float64(b.runs)
	}
	ds.MeanAbsError = stat.Mean(b.absErrors, nil)
	return ds
}

func (b *BeliefAnalyzer) Reset() {
	b.runs = 0
	b.sums = nil
	b.absErrors = make([]float64, 0)
}

type BeliefAnalyzerConstructor struct{}

var _ core.AnalyzerConstructor = &BeliefAnalyzerConstructor{}

func NewBeliefAnalyzerConstructor() *BeliefAnalyzerConstructor {
	return &BeliefAnalyzerConstructor{}
}

func (*BeliefAnalyzerConstructor) NewAnalyzer(_ string, _ int) core.Analyzer {
	return NewBeliefAnalyzer()
}

type BeliefComparator struct {
	savePath string
}

var _ core.Comparator = &BeliefComparator{}

func NewBeliefComparator(savePath string) *BeliefComparator {
	return &BeliefComparator{
		savePath: path.Join(savePath, "beliefs.json"),
	}
}

func (b *BeliefComparator) Compare(experimentNames []string, datasets []core.DataSet) error {
	out := make(map[string]*BeliefDataset)
	for i, name := range experimentNames {
		ds, _ := datasets[i].(*BeliefDataset)
		out[name] = ds
	}
	return util.SaveJson(b.savePath, out)
}

type BeliefComparatorConstructor struct {
	SavePath string
}

var _ core.ComparatorConstructor = &BeliefComparatorConstructor{}

func NewBeliefComparatorConstructor(savePath string) *BeliefComparatorConstructor {
	return &BeliefComparatorConstructor{
		SavePath: savePath,
	}
}

func (b *BeliefComparatorConstructor) NewComparator() core.Comparator {
	return NewBeliefComparator(b.SavePath)
}
