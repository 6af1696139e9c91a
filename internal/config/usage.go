package config

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/agbru/bigcalc/internal/ui"
)

// flagGroup is a titled section of the usage screen.
type flagGroup struct {
	title string
	names []string
}

// usageGroups orders the flags on the usage screen. Flags missing from every
// group are listed under "Other".
var usageGroups = []flagGroup{
	{"Expression", []string{"a", "op", "b", "engine"}},
	{"Modes", []string{"interactive", "batch", "input", "server", "port", "cache-size"}},
	{"Limits", []string{"timeout", "max-digits"}},
	{"Output", []string{"output", "o", "json", "quiet", "q", "v", "d", "details", "no-color"}},
	{"Misc", []string{"completion", "version"}},
}

// setCustomUsage installs a colored, grouped usage function on fs.
func setCustomUsage(fs *flag.FlagSet) {
	fs.Usage = func() {
		out := fs.Output()
		t := ui.GetCurrentTheme()
		if _, ok := os.LookupEnv("NO_COLOR"); ok || !ui.IsTerminal(out) {
			t = ui.NoColorTheme
		}

		fmt.Fprintf(out, "\n%sbigcalc%s - arbitrary-precision integer calculator\n\n", t.Bold, t.Reset)
		fmt.Fprintf(out, "%sUsage:%s\n", t.Warning, t.Reset)
		fmt.Fprintf(out, "  %s -a 123 -op '*' -b 456\n", fs.Name())
		fmt.Fprintf(out, "  %s -batch [-input input.txt] [-o output.txt]\n", fs.Name())
		fmt.Fprintf(out, "  %s -interactive | -server [-port 8080]\n", fs.Name())

		listed := make(map[string]bool)
		for _, g := range usageGroups {
			var flags []*flag.Flag
			for _, name := range g.names {
				if f := fs.Lookup(name); f != nil {
					flags = append(flags, f)
					listed[name] = true
				}
			}
			printFlagGroup(out, t, g.title, flags)
		}

		var rest []*flag.Flag
		fs.VisitAll(func(f *flag.Flag) {
			if !listed[f.Name] {
				rest = append(rest, f)
			}
		})
		printFlagGroup(out, t, "Other", rest)

		fmt.Fprintf(out, "\nSettings other than the expression can also come from %s* environment variables (e.g. %sMAX_DIGITS).\n\n",
			EnvPrefix, EnvPrefix)
	}
}

func printFlagGroup(out io.Writer, t ui.Theme, title string, flags []*flag.Flag) {
	if len(flags) == 0 {
		return
	}
	fmt.Fprintf(out, "\n%s%s:%s\n", t.Warning, title, t.Reset)
	for _, f := range flags {
		name, usage := flag.UnquoteUsage(f)
		sig := "-" + f.Name
		if name != "" {
			sig += " " + name
		}
		fmt.Fprintf(out, "  %s%-22s%s %s", t.Primary, sig, t.Reset, usage)
		if f.DefValue != "" && f.DefValue != "0" && f.DefValue != "false" {
			fmt.Fprintf(out, " %s(default %s)%s", t.Secondary, f.DefValue, t.Reset)
		}
		fmt.Fprintln(out)
	}
}
