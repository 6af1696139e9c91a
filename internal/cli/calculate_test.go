package cli

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/agbru/bigcalc/internal/bignum"
	"github.com/agbru/bigcalc/internal/calc"
	"github.com/agbru/bigcalc/internal/config"
)

func TestGetEvaluatorsToRun(t *testing.T) {
	t.Parallel()
	factory := calc.NewTestFactory(map[string]calc.Evaluator{
		"b": &calc.MockEvaluator{EngineName: "b"},
		"a": &calc.MockEvaluator{EngineName: "a"},
	})

	all := GetEvaluatorsToRun(config.AppConfig{Engine: "all"}, factory)
	if len(all) != 2 || all[0].Name() != "a" || all[1].Name() != "b" {
		t.Errorf("all = %v", all)
	}
	one := GetEvaluatorsToRun(config.AppConfig{Engine: "b"}, factory)
	if len(one) != 1 || one[0].Name() != "b" {
		t.Errorf("single = %v", one)
	}
	if none := GetEvaluatorsToRun(config.AppConfig{Engine: "zzz"}, factory); none != nil {
		t.Errorf("unknown engine should yield nil, got %v", none)
	}
}

func TestPrintExecution(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	expr := calc.Expression{Left: bignum.MustParse("1234"), Op: calc.OpMul, Right: bignum.MustParse("5")}
	PrintExecutionConfig(config.AppConfig{Timeout: time.Minute}, expr, &buf)
	PrintExecutionMode([]calc.Evaluator{&calc.MockEvaluator{EngineName: "schoolbook"}}, &buf)
	PrintExecutionMode([]calc.Evaluator{&calc.MockEvaluator{}, &calc.MockEvaluator{}}, &buf)
	PrintExecutionMode(nil, &buf)

	out := buf.String()
	for _, want := range []string{
		"Evaluating 1,234 * 5 with a timeout of 1m0s.",
		"Single evaluation with the schoolbook engine",
		"Cross-check of 2 engines",
		"no engine available",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}
