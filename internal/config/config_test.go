package config

import (
	"bytes"
	"errors"
	"flag"
	"io"
	"strings"
	"testing"
	"time"

	apperrors "github.com/agbru/bigcalc/internal/errors"
)

var engines = []string{"reference", "schoolbook"}

func TestParseConfig_Defaults(t *testing.T) {
	cfg, err := ParseConfig("bigcalc", nil, io.Discard, engines)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if cfg.Engine != DefaultEngine {
		t.Errorf("Engine = %q, want %q", cfg.Engine, DefaultEngine)
	}
	if cfg.Timeout != DefaultTimeout {
		t.Errorf("Timeout = %v, want %v", cfg.Timeout, DefaultTimeout)
	}
	if cfg.InputFile != "input.txt" || cfg.BatchOutput() != "output.txt" {
		t.Errorf("batch files = %q, %q", cfg.InputFile, cfg.BatchOutput())
	}
	if cfg.MaxDigits != DefaultMaxDigits {
		t.Errorf("MaxDigits = %d, want %d", cfg.MaxDigits, DefaultMaxDigits)
	}
	if cfg.CacheSize != DefaultCacheSize {
		t.Errorf("CacheSize = %d, want %d", cfg.CacheSize, DefaultCacheSize)
	}
	if cfg.HasExpression() {
		t.Error("no expression should be configured by default")
	}
}

func TestParseConfig_Flags(t *testing.T) {
	args := []string{
		"-a", "-123", "-op", "gcd", "-b", "456",
		"-engine", "REFERENCE",
		"-timeout", "10s",
		"-max-digits", "50",
		"-o", "result.txt",
		"-q", "-v", "-details", "-json", "-no-color",
	}
	cfg, err := ParseConfig("bigcalc", args, io.Discard, engines)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if cfg.A != "-123" || cfg.Op != "gcd" || cfg.B != "456" {
		t.Errorf("expression = %q %q %q", cfg.A, cfg.Op, cfg.B)
	}
	if cfg.Engine != "reference" {
		t.Errorf("Engine = %q, want reference (lower-cased)", cfg.Engine)
	}
	if cfg.Timeout != 10*time.Second || cfg.MaxDigits != 50 {
		t.Errorf("Timeout = %v, MaxDigits = %d", cfg.Timeout, cfg.MaxDigits)
	}
	if cfg.OutputFile != "result.txt" || cfg.BatchOutput() != "result.txt" {
		t.Errorf("OutputFile = %q", cfg.OutputFile)
	}
	if !cfg.Quiet || !cfg.Verbose || !cfg.Details || !cfg.JSONOutput || !cfg.NoColor {
		t.Errorf("boolean flags not set: %+v", cfg)
	}
}

func TestParseConfig_Invalid(t *testing.T) {
	tests := []struct {
		name string
		args []string
		msg  string
	}{
		{"zero timeout", []string{"-timeout", "0s"}, "timeout"},
		{"negative max digits", []string{"-max-digits", "-1"}, "max-digits"},
		{"negative cache size", []string{"-cache-size", "-1"}, "cache-size"},
		{"unknown engine", []string{"-engine", "abacus"}, "unrecognized engine"},
		{"bad port", []string{"-port", "http"}, "invalid port"},
		{"port out of range", []string{"-port", "70000"}, "invalid port"},
		{"partial expression", []string{"-a", "1", "-op", "+"}, "needs all of"},
		{"unknown operator", []string{"-a", "1", "-op", "^", "-b", "2"}, "invalid -op"},
		{"empty batch input", []string{"-batch", "-input", ""}, "input file"},
		{"positional argument", []string{"extra"}, "unexpected argument"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stderr bytes.Buffer
			_, err := ParseConfig("bigcalc", tt.args, &stderr, engines)
			var cfgErr apperrors.ConfigError
			if !errors.As(err, &cfgErr) {
				t.Fatalf("error = %v, want ConfigError", err)
			}
			if !strings.Contains(err.Error(), tt.msg) {
				t.Errorf("error %q does not mention %q", err, tt.msg)
			}
			if !strings.Contains(stderr.String(), "Usage:") {
				t.Error("usage should be printed on configuration errors")
			}
		})
	}
}

func TestParseConfig_Help(t *testing.T) {
	var stderr bytes.Buffer
	_, err := ParseConfig("bigcalc", []string{"-h"}, &stderr, engines)
	if !errors.Is(err, flag.ErrHelp) {
		t.Fatalf("error = %v, want flag.ErrHelp", err)
	}
	out := stderr.String()
	for _, want := range []string{"-engine", "-max-digits", "(default schoolbook)", "-batch", "Expression:", "Limits:", "BIGCALC_MAX_DIGITS"} {
		if !strings.Contains(out, want) {
			t.Errorf("usage output missing %q", want)
		}
	}
	if strings.Contains(out, "\033[") {
		t.Error("usage written to a buffer should not contain ANSI codes")
	}
	if strings.Contains(out, "Other:") {
		t.Error("every flag should belong to a named group")
	}
	if strings.Index(out, "Expression:") > strings.Index(out, "Modes:") {
		t.Error("groups printed out of order")
	}
}

func TestParseConfig_EngineAll(t *testing.T) {
	cfg, err := ParseConfig("bigcalc", []string{"-engine", "all"}, io.Discard, engines)
	if err != nil || cfg.Engine != "all" {
		t.Errorf("cfg.Engine = %q, err = %v", cfg.Engine, err)
	}
}

func TestEnvOverrides(t *testing.T) {
	env := map[string]string{
		"BIGCALC_ENGINE":      "reference",
		"BIGCALC_PORT":        "3000",
		"BIGCALC_TIMEOUT":     "2m",
		"BIGCALC_MAX_DIGITS":  "99",
		"BIGCALC_CACHE_SIZE":  "7",
		"BIGCALC_INPUT":       "job.txt",
		"BIGCALC_OUTPUT":      "out.txt",
		"BIGCALC_BATCH":       "yes",
		"BIGCALC_SERVER":      "1",
		"BIGCALC_INTERACTIVE": "true",
		"BIGCALC_JSON":        "TRUE",
		"BIGCALC_QUIET":       "true",
		"BIGCALC_VERBOSE":     "true",
		"BIGCALC_DETAILS":     "true",
		"BIGCALC_NO_COLOR":    "true",
	}
	for k, v := range env {
		t.Setenv(k, v)
	}

	cfg, err := ParseConfig("bigcalc", nil, io.Discard, engines)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if cfg.Engine != "reference" || cfg.Port != "3000" || cfg.Timeout != 2*time.Minute || cfg.MaxDigits != 99 || cfg.CacheSize != 7 {
		t.Errorf("scalar overrides not applied: %+v", cfg)
	}
	if cfg.InputFile != "job.txt" || cfg.OutputFile != "out.txt" {
		t.Errorf("file overrides not applied: %+v", cfg)
	}
	if !cfg.Batch || !cfg.ServerMode || !cfg.Interactive || !cfg.JSONOutput ||
		!cfg.Quiet || !cfg.Verbose || !cfg.Details || !cfg.NoColor {
		t.Errorf("boolean overrides not applied: %+v", cfg)
	}
}

func TestEnvOverrides_FlagsWin(t *testing.T) {
	t.Setenv("BIGCALC_ENGINE", "reference")
	t.Setenv("BIGCALC_TIMEOUT", "2m")
	t.Setenv("BIGCALC_QUIET", "true")
	t.Setenv("BIGCALC_OUTPUT", "env.txt")

	cfg, err := ParseConfig("bigcalc", []string{"-engine", "schoolbook", "-timeout", "5s", "-quiet=false", "-output", "flag.txt"}, io.Discard, engines)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if cfg.Engine != "schoolbook" || cfg.Timeout != 5*time.Second || cfg.Quiet || cfg.OutputFile != "flag.txt" {
		t.Errorf("flags should take precedence over env: %+v", cfg)
	}
}

func TestEnvOverrides_InvalidValuesIgnored(t *testing.T) {
	t.Setenv("BIGCALC_TIMEOUT", "soon")
	t.Setenv("BIGCALC_MAX_DIGITS", "many")
	t.Setenv("BIGCALC_JSON", "maybe")

	cfg, err := ParseConfig("bigcalc", nil, io.Discard, engines)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if cfg.Timeout != DefaultTimeout || cfg.MaxDigits != DefaultMaxDigits || cfg.JSONOutput {
		t.Errorf("invalid env values should keep defaults: %+v", cfg)
	}
}
