package analysis

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"path"

	"github.com/zeu5/bandits/core"
)

// PrintDebugAnalyzer writes the trace of every run from thresholdRun onwards
// to <savePath>/traces. Agents must record traces.
type PrintDebugAnalyzer struct {
	// savePath is the path to save the trace
	savePath string
	exp      string
	// will save the trace to the file only after the run number exceeds this threshold
	thresholdRun int
}

var _ core.Analyzer = &PrintDebugAnalyzer{}

func NewPrintDebugAnalyzer(savePath string, threshold int) *PrintDebugAnalyzer {
	return &PrintDebugAnalyzer{
		savePath:     path.Join(savePath, "traces"),
		thresholdRun: threshold,
	}
}

func (a *PrintDebugAnalyzer) Analyze(ctx *core.RunContext, agent *core.Agent) {
	if ctx.Run < a.thresholdRun || agent.Trace() == nil {
		return
	}
	buf := new(bytes.Buffer)
	buf.WriteString(runHeader(ctx, agent))
	buf.WriteString(traceToString(agent.Trace()))

	fileName := fmt.Sprintf("%d_trace.txt", ctx.Run)
	if a.exp != "" {
		fileName = fmt.Sprintf("%d_%s_trace.txt", ctx.Run, a.exp)
	}
	writeReport(path.Join(a.savePath, fileName), buf.Bytes())
}

func runHeader(ctx *core.RunContext, agent *core.Agent) string {
	env := agent.Environment()
	return fmt.Sprintf(
		"Experiment: %s\nPolicy: %s\nRun: %d\nSeed: %d\nProbabilities: %v\nBest arm: %d\nRounds: %d/%d\nPulls: %v\nCumulative regret: %f\n\n",
		ctx.Experiment,
		agent.Policy().Name(),
		ctx.Run,
		ctx.Seed,
		env.TrueProbabilities(),
		env.BestArm(),
		agent.Rounds(),
		ctx.Rounds,
		agent.PullCounts(),
		agent.CumulativeRegret(),
	)
}

func traceToString(trace *core.Trace) string {
	buf := new(bytes.Buffer)
	for i := 0; i < trace.Len(); i++ {
		step := trace.Step(i)
		buf.WriteString(fmt.Sprintf("Round %d: arm=%d reward=%d regret=%f\n", step.Round, step.Arm, step.Reward, step.Regret))
	}
	return buf.String()
}

func writeReport(file string, data []byte) {
	if err := os.MkdirAll(path.Dir(file), 0755); err != nil {
		slog.Warn("could not create report directory", slog.String("path", file), slog.String("error", err.Error()))
		return
	}
	if err := os.WriteFile(file, data, 0644); err != nil {
		slog.Warn("could not write report", slog.String("path", file), slog.String("error", err.Error()))
	}
}

func (a *PrintDebugAnalyzer) DataSet() core.DataSet {
	return nil
}

func (a *PrintDebugAnalyzer) Reset() {
	// do nothing
}

type PrintDebugAnalyzerConstructor struct {
	SavePath     string
	ThresholdRun int
}

var _ core.AnalyzerConstructor = &PrintDebugAnalyzerConstructor{}

func NewPrintDebugAnalyzerConstructor(savePath string, thresholdRun int) *PrintDebugAnalyzerConstructor {
	return &PrintDebugAnalyzerConstructor{
		SavePath:     savePath,
		ThresholdRun: thresholdRun,
	}
}

func (c *PrintDebugAnalyzerConstructor) NewAnalyzer(exp string, _ int) core.Analyzer {
	a := NewPrintDebugAnalyzer(c.SavePath, c.ThresholdRun)
	a.exp = exp
	return a
}
