package cli

import (
	"bytes"
	"strings"
	"testing"
)

func TestGenerateCompletion(t *testing.T) {
	t.Parallel()
	engines := []string{"reference", "schoolbook"}
	tests := []struct {
		shell    string
		contains []string
	}{
		{"bash", []string{"complete -F _bigcalc_completions bigcalc", `engines="reference schoolbook all"`}},
		{"zsh", []string{"#compdef bigcalc", "engines=(reference schoolbook all)"}},
		{"fish", []string{"complete -c bigcalc -o engine -d 'Engine to use' -xa 'reference schoolbook all'"}},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.shell, func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			if err := GenerateCompletion(&buf, tt.shell, engines); err != nil {
				t.Fatalf("GenerateCompletion(%s) error = %v", tt.shell, err)
			}
			for _, want := range tt.contains {
				if !strings.Contains(buf.String(), want) {
					t.Errorf("%s script missing %q", tt.shell, want)
				}
			}
			if strings.Contains(buf.String(), "%!") {
				t.Errorf("%s script has a formatting error", tt.shell)
			}
		})
	}

	if err := GenerateCompletion(&bytes.Buffer{}, "powershell", engines); err == nil {
		t.Error("unsupported shell should return an error")
	}
	if len(engines) != 2 {
		t.Error("GenerateCompletion must not modify the engines slice")
	}
}
