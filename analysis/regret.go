package analysis

import (
	"path"

	"github.com/zeu5/bandits/core"
	"github.com/zeu5/bandits/util"
	"gonum.org/v1/gonum/stat"
)

type RegretDataset struct {
	// MeanCurve[t] is the cumulative regret after t rounds averaged over the runs that got that far
	MeanCurve []float64

	FinalRegrets []float64
	FinalMean    float64
	FinalStdDev  float64
}

// RegretAnalyzer averages the cumulative regret curves of all runs of an experiment
type RegretAnalyzer struct {
	sums   []float64
	counts []int
	finals []float64
}

var _ core.Analyzer = &RegretAnalyzer{}

func NewRegretAnalyzer() *RegretAnalyzer {
	return &RegretAnalyzer{
		sums:   make([]float64, 0),
		counts: make([]int, 0),
		finals: make([]float64, 0),
	}
}

func (r *RegretAnalyzer) Analyze(_ *core.RunContext, agent *core.Agent) {
	history := agent.RegretHistory()
	for len(r.sums) < len(history) {
		r.sums = append(r.sums, 0)
		r.counts = append(r.counts, 0)
	}
	for t, v := range history {
		r.sums[t] += v
		r.counts[t]++
	}
	r.finals = append(r.finals, agent.CumulativeRegret())
}

func (r *RegretAnalyzer) DataSet() core.DataSet {
	ds := &RegretDataset{
		MeanCurve:    make([]float64, len(r.sums)),
		FinalRegrets: util.CopyFloatSlice(r.finals),
	}
	for t := range r.sums {
		ds.MeanCurve[t] = r.sums[t] / float64(r.counts[t])
	}
	ds.FinalMean, ds.FinalStdDev = meanStdDev(r.finals)
	return ds
}

func (r *RegretAnalyzer) Reset() {
	r.sums = make([]float64, 0)
	r.counts = make([]int, 0)
	r.finals = make([]float64, 0)
}

// meanStdDev is stat.MeanStdDev with zeros where the sample is too small
func meanStdDev(x []float64) (float64, float64) {
	switch len(x) {
	case 0:
		return 0, 0
	case 1:
		return x[0], 0
	}
	return stat.MeanStdDev(x, nil)
}

type RegretAnalyzerConstructor struct{}

var _ core.AnalyzerConstructor = &RegretAnalyzerConstructor{}

func NewRegretAnalyzerConstructor() *RegretAnalyzerConstructor {
	return &RegretAnalyzerConstructor{}
}

func (*RegretAnalyzerConstructor) NewAnalyzer(_ string, _ int) core.Analyzer {
	return NewRegretAnalyzer()
}

// RegretComparator writes the regret datasets of all experiments to regret.json
type RegretComparator struct {
	savePath string
}

var _ core.Comparator = &RegretComparator{}

func NewRegretComparator(savePath string) *RegretComparator {
	return &RegretComparator{
		savePath: path.Join(savePath, "regret.json"),
	}
}

func (r *RegretComparator) Compare(experimentNames []string, datasets []core.DataSet) error {
	out := make(map[string]*RegretDataset)
	for i, name := range experimentNames {
		ds, _ := datasets[i].(*RegretDataset)
		out[name] = ds
	}
	return util.SaveJson(r.savePath, out)
}

type RegretComparatorConstructor struct {
	SavePath string
}

var _ core.ComparatorConstructor = &RegretComparatorConstructor{}

func NewRegretComparatorConstructor(savePath string) *RegretComparatorConstructor {
	return &RegretComparatorConstructor{
		SavePath: savePath,
	}
}

func (r *RegretComparatorConstructor) NewComparator() core.Comparator {
	return NewRegretComparator(r.SavePath)
}
