package analysis

import (
	"bytes"
	"fmt"
	"path"

	"github.com/zeu5/bandits/core"
)

// ErrorAnalyzer writes a report for every aborted run to <savePath>/errors
type ErrorAnalyzer struct {
	savePath string
	exp      string
}

var _ core.Analyzer = &ErrorAnalyzer{}

func NewErrorAnalyzer(savePath string) *ErrorAnalyzer {
	return &ErrorAnalyzer{
		savePath: path.Join(savePath, "errors"),
	}
}

func (a *ErrorAnalyzer) Analyze(ctx *core.RunContext, agent *core.Agent) {
	if ctx.Err == nil {
		return
	}
	buf := new(bytes.Buffer)
	buf.WriteString(fmt.Sprintf("Error: %s\n", ctx.Err))
	buf.WriteString(runHeader(ctx, agent))
	if trace := agent.Trace(); trace != nil {
		buf.WriteString(traceToString(trace))
	}

	fileName := fmt.Sprintf("%d_error.txt", ctx.Run)
	if a.exp != "" {
		fileName = fmt.Sprintf("%d_%s_error.txt", ctx.Run, a.exp)
	}
	writeReport(path.Join(a.savePath, fileName), buf.Bytes())
}

func (a *ErrorAnalyzer) DataSet() core.DataSet {
	return nil
}

func (a *ErrorAnalyzer) Reset() {
	// do nothing
}

type ErrorAnalyzerConstructor struct {
	SavePath string
}

var _ core.AnalyzerConstructor = &ErrorAnalyzerConstructor{}

func NewErrorAnalyzerConstructor(savePath string) *ErrorAnalyzerConstructor {
	return &ErrorAnalyzerConstructor{
		SavePath: savePath,
	}
}

func (e *ErrorAnalyzerConstructor) NewAnalyzer(exp string, _ int) core.Analyzer {
	a := NewErrorAnalyzer(e.SavePath)
	a.exp = exp
	return a
}
