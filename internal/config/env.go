package config

import (
	"flag"
	"os"
	"strconv"
	"strings"
	"time"
)

func getEnvString(key, defaultVal string) string {
	if val := os.Getenv(EnvPrefix + key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(EnvPrefix + key); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil {
			return parsed
		}
	}
	return defaultVal
}

// getEnvBool accepts "true", "1", "yes" and "false", "0", "no"
// (case-insensitive); anything else keeps defaultVal.
func getEnvBool(key string, defaultVal bool) bool {
	if val := os.Getenv(EnvPrefix + key); val != "" {
		switch strings.ToLower(val) {
		case "true", "1", "yes":
			return true
		case "false", "0", "no":
			return false
		}
	}
	return defaultVal
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if val := os.Getenv(EnvPrefix + key); val != "" {
		if parsed, err := time.ParseDuration(val); err == nil {
			return parsed
		}
	}
	return defaultVal
}

// isFlagSet reports whether any of names was given on the command line.
func isFlagSet(fs *flag.FlagSet, names ...string) bool {
	found := false
	fs.Visit(func(f *flag.Flag) {
		for _, name := range names {
			if f.Name == name {
				found = true
			}
		}
	})
	return found
}

// applyEnvOverrides fills settings from BIGCALC_* variables for every flag
// that was not set explicitly (CLI flags > environment > defaults).
//
// Supported variables: BIGCALC_ENGINE, BIGCALC_PORT, BIGCALC_TIMEOUT,
// BIGCALC_MAX_DIGITS, BIGCALC_CACHE_SIZE, BIGCALC_INPUT, BIGCALC_OUTPUT,
// BIGCALC_BATCH, BIGCALC_SERVER, BIGCALC_INTERACTIVE, BIGCALC_JSON, BIGCALC_QUIET,
// BIGCALC_VERBOSE, BIGCALC_DETAILS and BIGCALC_NO_COLOR.
func applyEnvOverrides(config *AppConfig, fs *flag.FlagSet) {
	strs := []struct {
		flags []string
		env   string
		dst   *string
	}{
		{[]string{"engine"}, "ENGINE", &config.Engine},
		{[]string{"port"}, "PORT", &config.Port},
		{[]string{"input"}, "INPUT", &config.InputFile},
		{[]string{"output", "o"}, "OUTPUT", &config.OutputFile},
	}
	for _, s := range strs {
		if !isFlagSet(fs, s.flags...) {
			*s.dst = getEnvString(s.env, *s.dst)
		}
	}

	bools := []struct {
		flags []string
		env   string
		dst   *bool
	}{
		{[]string{"batch"}, "BATCH", &config.Batch},
		{[]string{"server"}, "SERVER", &config.ServerMode},
		{[]string{"interactive"}, "INTERACTIVE", &config.Interactive},
		{[]string{"json"}, "JSON", &config.JSONOutput},
		{[]string{"quiet", "q"}, "QUIET", &config.Quiet},
		{[]string{"v"}, "VERBOSE", &config.Verbose},
		{[]string{"d", "details"}, "DETAILS", &config.Details},
		{[]string{"no-color"}, "NO_COLOR", &config.NoColor},
	}
	for _, b := range bools {
		if !isFlagSet(fs, b.flags...) {
			*b.dst = getEnvBool(b.env, *b.dst)
		}
	}

	if !isFlagSet(fs, "timeout") {
		config.Timeout = getEnvDuration("TIMEOUT", config.Timeout)
	}
	if !isFlagSet(fs, "max-digits") {
		config.MaxDigits = getEnvInt("MAX_DIGITS", config.MaxDigits)
	}
	if !isFlagSet(fs, "cache-size") {
		config.CacheSize = getEnvInt("CACHE_SIZE", config.CacheSize)
	}
}
