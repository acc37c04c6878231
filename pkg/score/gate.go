package score

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// DefaultThreshold is the minimum acceptable score for each metric
// checked by the ingestion gate.
const DefaultThreshold = 0.5

// Gate decides whether a graded model should be ingested.
//
// The default rule requires every non-latency scalar metric and every
// size_score subscore to reach the threshold. When a policy expression
// is configured it replaces the default rule entirely.
type Gate struct {
	threshold float64
	program   *vm.Program
}

// NewGate returns a threshold-rule gate.
func NewGate(threshold float64) *Gate {
	return &Gate{threshold: threshold}
}

// NewPolicyGate compiles a boolean policy expression evaluated against
// the result's scalar fields plus a size_score map, e.g.:
//
//	net_score >= 0.5 && license == 1.0 && size_score.raspberry_pi > 0.0
func NewPolicyGate(policy string) (*Gate, error) {
	program, err := expr.Compile(policy,
		expr.Env(policyEnv(GradeResult{})),
		expr.AsBool(),
	)
	if err != nil {
		return nil, fmt.Errorf("compiling ingest policy: %w", err)
	}
	return &Gate{program: program}, nil
}

// Admit reports whether the result passes the gate. Policy evaluation
// errors reject the model; a grading pipeline never admits on error.
func (g *Gate) Admit(r GradeResult) bool {
	if g.program != nil {
		out, err := expr.Run(g.program, policyEnv(r))
		if err != nil {
			return false
		}
		ok, _ := out.(bool)
		return ok
	}

	for _, v := range r.Scalars() {
		if v < g.threshold {
			return false
		}
	}
	for _, v := range r.SizeMap() {
		if v < g.threshold {
			return false
		}
	}
	return true
}

func policyEnv(r GradeResult) map[string]any {
	env := make(map[string]any, 9)
	for k, v := range r.Scalars() {
		env[k] = v
	}
	env[MetricSizeScore] = r.SizeMap()
	return env
}
