// Command mathcli is an interactive REPL over pkg/mathutils: evaluate
// expressions, bind variables, and solve equations from a terminal or a
// script piped on stdin.
package main

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-isatty"

	"github.com/Waigo01/math-utils-lib/internal/historystore"
	"github.com/Waigo01/math-utils-lib/pkg/mathutils"
)

// assignPattern recognizes a REPL-level variable binding, e.g. "x = 3+4".
// The library's own grammar rejects a bare "=" outside eq(...), so
// assignment is handled here, before the line ever reaches the parser.
var assignPattern = regexp.MustCompile(`^\s*([A-Za-z][A-Za-z0-9]*)\s*=\s*(.+)$`)

func main() {
	home, _ := os.UserHomeDir()
	cfg, err := loadCLIConfig(filepath.Join(home, ".mathutils.yaml"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "mathcli: config error: %v\n", err)
		os.Exit(1)
	}

	store, err := historystore.Open(filepath.Join(home, ".mathutils_history.db"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "mathcli: history store error: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	interactive := isatty.IsTerminal(os.Stdin.Fd())
	repl(os.Stdin, os.Stdout, cfg, store, interactive)
}

func repl(in *os.File, out *os.File, cfg cliConfig, store *historystore.Store, interactive bool) {
	vars := map[string]mathutils.Results{}
	scanner := bufio.NewScanner(in)

	for {
		if interactive {
			fmt.Fprint(out, cfg.Prompt)
		}
		if !scanner.Scan() {
			return
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "exit" || line == "quit" {
			return
		}

		start := time.Now()
		output, isErr := evalLine(line, vars, cfg)
		elapsed := time.Since(start)

		fmt.Fprintln(out, output)
		if interactive && elapsed > 200*time.Millisecond {
			fmt.Fprintf(out, "  (started %s)\n", humanize.Time(start))
		}
		if err := store.Record(line, output, isErr); err != nil {
			fmt.Fprintf(os.Stderr, "mathcli: history write failed: %v\n", err)
		}
	}
}

func evalLine(line string, vars map[string]mathutils.Results, cfg cliConfig) (string, bool) {
	ctx := mathutils.NewContextFromVariables(vars)

	if m := assignPattern.FindStringSubmatch(line); m != nil {
		name, expr := m[1], m[2]
		r, err := mathutils.QuickEval(expr, ctx)
		if err != nil {
			return fmt.Sprintf("error: %v", err), true
		}
		vars[name] = r
		return formatResults(mathutils.Round(r, cfg.RoundDecimals)), false
	}

	r, err := mathutils.QuickEval(line, ctx)
	if err != nil {
		return fmt.Sprintf("error: %v", err), true
	}
	return formatResults(mathutils.Round(r, cfg.RoundDecimals)), false
}

func formatResults(r mathutils.Results) string {
	parts := make([]string, len(r))
	for i, v := range r {
		parts[i] = v.String()
	}
	return strings.Join(parts, "  |  ")
}
