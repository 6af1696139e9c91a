package calc

import (
	"context"
	"errors"
	"testing"

	"github.com/agbru/bigcalc/internal/bignum"
)

func TestMockEvaluator(t *testing.T) {
	t.Parallel()

	if got := (&MockEvaluator{}).Name(); got != "mock" {
		t.Errorf("Name() = %q, want mock", got)
	}
	if got := (&MockEvaluator{EngineName: "fast"}).Name(); got != "fast" {
		t.Errorf("Name() = %q, want fast", got)
	}

	want := Result{Value: bignum.FromInt64(55)}
	res, err := (&MockEvaluator{Result: want}).Evaluate(context.Background(), Expression{})
	if err != nil || !bignum.Equal(res.Value, want.Value) {
		t.Errorf("Evaluate() = %v, %v", res.Value, err)
	}

	boom := errors.New("boom")
	if _, err := (&MockEvaluator{Err: boom}).Evaluate(context.Background(), Expression{}); err != boom {
		t.Errorf("Evaluate() error = %v, want %v", err, boom)
	}

	m := &MockEvaluator{Fn: func(_ context.Context, e Expression) (Result, error) {
		return Result{Value: bignum.Add(e.Left, e.Right)}, nil
	}}
	res, _ = m.Evaluate(context.Background(), expr("2", OpAdd, "3"))
	if res.Value.String() != "5" {
		t.Errorf("Fn result = %s, want 5", res.Value)
	}
}

func TestTestFactory(t *testing.T) {
	t.Parallel()
	mock := &MockEvaluator{}
	f := NewTestFactory(map[string]Evaluator{"b": mock, "a": mock})

	if ev, err := f.Get("a"); err != nil || ev != mock {
		t.Errorf("Get(a) = %v, %v", ev, err)
	}
	if _, err := f.Create("zzz"); err == nil {
		t.Error("Create(zzz) should fail")
	}
	if got := f.List(); len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Errorf("List() = %v", got)
	}
	if err := f.Register("x", nil); err != nil {
		t.Errorf("Register() = %v", err)
	}
	if len(f.GetAll()) != 2 {
		t.Error("GetAll() should return both evaluators")
	}
	if len(NewTestFactory(nil).List()) != 0 {
		t.Error("nil map should produce an empty factory")
	}
}
