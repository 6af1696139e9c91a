// Command bigcalc evaluates arithmetic on arbitrarily large signed decimal
// integers from the command line, an interactive menu, a batch file or an
// HTTP API.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"slices"

	"github.com/agbru/bigcalc/internal/app"
	apperrors "github.com/agbru/bigcalc/internal/errors"
)

func main() {
	os.Exit(run(os.Args, os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr *os.File) int {
	if app.IsVersionRequest(args[1:]) {
		info := app.ReadBuildInfo()
		if slices.Contains(args[1:], "-json") || slices.Contains(args[1:], "--json") {
			_ = json.NewEncoder(stdout).Encode(info)
		} else {
			fmt.Fprint(stdout, info)
		}
		return apperrors.ExitSuccess
	}

	application, err := app.New(args, stderr)
	if err != nil {
		if app.IsHelpError(err) {
			return apperrors.ExitSuccess
		}
		return apperrors.ExitErrorConfig
	}
	return application.Run(context.Background(), stdout)
}
