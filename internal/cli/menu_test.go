package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/agbru/bigcalc/internal/calc"
	"github.com/agbru/bigcalc/internal/service"
)

func runMenu(t *testing.T, input string, cfg MenuConfig) string {
	t.Helper()
	svc := service.NewCalculatorService(calc.NewDefaultFactory(), 0)
	var out bytes.Buffer
	if err := NewMenu(svc, strings.NewReader(input), &out, cfg).Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	return out.String()
}

func TestMenu_Operations(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"sum", "1\n999\n1\n8\n", []string{"999 + 1 =\n1,000\n"}},
		{"subtraction", "2\n5\n12\n8\n", []string{"5 - 12 =\n-7\n"}},
		{"multiplication", "3\n-12\n12\n8\n", []string{"-12 * 12 =\n-144\n"}},
		{"division", "4\n-17\n5\n8\n", []string{"-17 / 5 =\n-3\n", "Remainder = -2"}},
		{"modulo", "5\n17\n5\n8\n", []string{"17 % 5 =\n2\n"}},
		{"gcd", "6\n12\n18\n8\n", []string{"12 gcd 18 =\n6\n"}},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			out := runMenu(t, tt.input, MenuConfig{Engine: "schoolbook"})
			for _, want := range tt.want {
				if !strings.Contains(out, want) {
					t.Errorf("output missing %q:\n%s", want, out)
				}
			}
			if !strings.HasSuffix(out, "Goodbye.\n") {
				t.Errorf("menu should end with Goodbye, got:\n%s", out)
			}
		})
	}
}

func TestMenu_Errors(t *testing.T) {
	t.Parallel()
	out := runMenu(t, "9\nabc\n4\n10\n0\n1\n12a4\n1\n8\n", MenuConfig{Engine: "schoolbook", Timeout: time.Second})
	for _, want := range []string{
		`Invalid option: "9"`,
		`Invalid option: "abc"`,
		"Division by zero.",
		"Invalid character 'a' at position 2.",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestMenu_Random(t *testing.T) {
	t.Parallel()
	n, _ := RandomNumber(7, 12)
	out := runMenu(t, "7\n7\n12\n7\nx\n3\n7\n1\n0\n8\n", MenuConfig{})
	for _, want := range []string{
		"Generated number: " + FormatOperand(n, false),
		`Invalid seed: "x"`,
		ErrInvalidLength.Error(),
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestMenu_EOF(t *testing.T) {
	t.Parallel()
	for _, input := range []string{"", "1\n", "1\n5\n", "7\n3\n"} {
		out := runMenu(t, input, MenuConfig{})
		if !strings.HasSuffix(out, "\nGoodbye.\n") {
			t.Errorf("input %q: expected Goodbye on EOF, got:\n%s", input, out)
		}
	}
}

func TestMenu_ContextCanceled(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	svc := service.NewCalculatorService(calc.NewDefaultFactory(), 0)
	err := NewMenu(svc, strings.NewReader("1\n1\n1\n"), &bytes.Buffer{}, MenuConfig{}).Run(ctx)
	if err != context.Canceled {
		t.Errorf("Run() error = %v, want context.Canceled", err)
	}
}
