package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/funvibe/traitkit/internal/config"
	"github.com/funvibe/traitkit/internal/inspect"
)

const (
	ansiReset = "\x1b[0m"
	ansiGreen = "\x1b[32m"
	ansiDim   = "\x1b[2m"
)

func main() {
	jsonOut := flag.Bool("json", false, "emit the report as JSON")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: traitkit [-json] [config]\n\n")
		fmt.Fprintf(os.Stderr, "Classifies exported Go types by iterator capability.\n")
		fmt.Fprintf(os.Stderr, "config defaults to traitkit.yaml in the current directory.\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	configPath := "traitkit.yaml"
	if flag.NArg() > 0 {
		configPath = flag.Arg(0)
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		fatal(err)
	}
	if *jsonOut {
		cfg.Report.JSON = true
	}

	var reports []*inspect.Report
	for _, p := range cfg.Packages {
		pkgs, err := inspect.Load(p.Dir, p.Pattern)
		if err != nil {
			fatal(err)
		}
		for _, pkg := range pkgs {
			reports = append(reports, inspect.Classify(pkg.Types))
		}
	}

	if cfg.Report.JSON {
		printJSON(reports)
		return
	}
	printTable(reports, useColor(cfg.Report.Color))
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "traitkit: %v\n", err)
	os.Exit(1)
}

func useColor(mode string) bool {
	switch mode {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	default:
		return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
	}
}

func printJSON(reports []*inspect.Report) {
	var rows []inspect.Row
	for _, rep := range reports {
		rows = append(rows, rep.Rows...)
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(rows); err != nil {
		fatal(err)
	}
}

func printTable(reports []*inspect.Report, color bool) {
	for _, rep := range reports {
		for _, row := range rep.Rows {
			flags := ""
			if row.SinglePass {
				flags += " single-pass"
			}
			if row.Readable {
				flags += " readable"
			}
			if row.Writable {
				flags += " writable"
			}
			if row.Sized {
				flags += " sized"
			}
			line := fmt.Sprintf("%s.%s\t%s%s", row.Package, row.Type, row.Category, flags)
			if color {
				if row.Concept != "" {
					line = ansiGreen + line + ansiReset
				} else {
					line = ansiDim + line + ansiReset
				}
			}
			fmt.Println(line)
		}
	}
}
