package bernoulli

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/zeu5/bandits/analysis"
	"github.com/zeu5/bandits/core"
	"github.com/zeu5/bandits/experiments/common"
	"github.com/zeu5/bandits/policies"
)

// Analysis names, also the keys of ExperimentResult.Datasets
const (
	RegretAnalysis     = "Regret"
	PullsAnalysis      = "Pulls"
	BeliefsAnalysis    = "Beliefs"
	OptimalArmAnalysis = "OptimalArm"
	ErrorsAnalysis     = "Errors"
	DebugAnalysis      = "Debug"
)

// number of final runs whose traces are written in debug mode
const debugRuns = 5

// PolicyNames lists the policies in the order they are compared
var PolicyNames = []string{
	"Random",
	"Uniform",
	"EpsilonGreedy",
	"Softmax",
	"UCB1",
	"BayesUCB",
	"Thompson",
}

// NewPolicyConstructor returns the constructor of the named policy
// (case insensitive) configured from the flags.
func NewPolicyConstructor(name string, flags *common.Flags) (core.PolicyConstructor, error) {
	switch strings.ToLower(name) {
	case "random":
		return &policies.RandomPolicyConstructor{}, nil
	case "uniform":
		return policies.NewUniformPolicyConstructor(flags.InitialEstimate), nil
	case "epsilongreedy":
		return policies.NewEpsilonGreedyPolicyConstructor(flags.Epsilon, flags.InitialEstimate), nil
	case "softmax":
		return policies.NewSoftmaxPolicyConstructor(flags.Temperature, flags.InitialEstimate), nil
	case "ucb1":
		return policies.NewUCB1PolicyConstructor(flags.InitialEstimate), nil
	case "bayesucb":
		return policies.NewBayesUCBPolicyConstructor(flags.Prior, flags.Sigma), nil
	case "thompson":
		return policies.NewThompsonPolicyConstructor(flags.Prior), nil
	}
	return nil, fmt.Errorf("%w: unknown policy %q, expected one of %s", core.ErrInvalidArgument, name, strings.Join(PolicyNames, ", "))
}

// PrepareComparison compares every known policy on the environments described by the flags
func PrepareComparison(flags *common.Flags, logger *slog.Logger) *core.Comparison {
	cmp := newComparison(flags, logger)
	for _, name := range PolicyNames {
		// names come from PolicyNames, so the lookup cannot fail
		p, _ := NewPolicyConstructor(name, flags)
		cmp.AddExperiment(&core.Experiment{
			Name:   name,
			Policy: p,
		})
	}
	return cmp
}

// PrepareSingle creates a comparison with only the named policy
func PrepareSingle(flags *common.Flags, name string, logger *slog.Logger) (*core.Comparison, error) {
	p, err := NewPolicyConstructor(name, flags)
	if err != nil {
		return nil, err
	}
	cmp := newComparison(flags, logger)
	cmp.AddExperiment(&core.Experiment{
		Name:   canonicalName(name),
		Policy: p,
	})
	return cmp, nil
}

func canonicalName(name string) string {
	for _, n := range PolicyNames {
		if strings.EqualFold(n, name) {
			return n
		}
	}
	return name
}

func newComparison(flags *common.Flags, logger *slog.Logger) *core.Comparison {
	cmp := core.NewComparison(flags.Environment())
	if logger != nil {
		cmp.Logger = logger
	}

	cmp.AddAnalysis(RegretAnalysis, analysis.NewRegretAnalyzerConstructor(), analysis.NewRegretComparatorConstructor(flags.SavePath))
	cmp.AddAnalysis(PullsAnalysis, analysis.NewPullsAnalyzerConstructor(), analysis.NewPullsComparatorConstructor(flags.SavePath))
	cmp.AddAnalysis(BeliefsAnalysis, analysis.NewBeliefAnalyzerConstructor(), analysis.NewBeliefComparatorConstructor(flags.SavePath))
	cmp.AddAnalysis(ErrorsAnalysis, analysis.NewErrorAnalyzerConstructor(flags.SavePath), analysis.NewNoOpComparatorConstructor())

	if flags.RecordTraces || flags.Debug {
		cmp.AddAnalysis(OptimalArmAnalysis, analysis.NewOptimalArmAnalyzerConstructor(), analysis.NewOptimalArmComparatorConstructor(flags.SavePath))
	}
	if flags.Debug {
		threshold := flags.Runs - debugRuns
		if threshold < 0 {
			threshold = 0
		}
		cmp.AddAnalysis(DebugAnalysis, analysis.NewPrintDebugAnalyzerConstructor(flags.SavePath, threshold), analysis.NewNoOpComparatorConstructor())
	}
	return cmp
}
