// SPDX-License-Identifier: Apache-2.0
package main

import (
	"flag"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"fwdgen/internal/config"
	"fwdgen/internal/errors"
	"fwdgen/internal/expand"

	"github.com/davecgh/go-spew/spew"
	"github.com/fatih/color"
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"
)

type options struct {
	write      bool
	dump       bool
	configPath string
	noColor    bool
	verbosity  int
}

func main() {
	var opts options
	flag.BoolVar(&opts.write, "w", false, "write the expanded result back to the source file")
	flag.BoolVar(&opts.dump, "dump", false, "print the parsed declarations")
	flag.StringVar(&opts.configPath, "config", "", "path to fwd.toml (default: search upwards from the first input)")
	flag.BoolVar(&opts.noColor, "no-color", false, "disable colored output")
	flag.IntVar(&opts.verbosity, "v", 0, "log verbosity (0 = quiet, 2 = debug)")
	flag.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: fwd-cli [-w] [-dump] [-config fwd.toml] [-no-color] <file or dir>...")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(1)
	}

	commonlog.Configure(opts.verbosity, nil)

	cfg, err := loadConfig(opts.configPath, flag.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	color.NoColor = opts.noColor || !cfg.ColorEnabled(!color.NoColor)

	files, err := collectFiles(cfg, flag.Args())
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	startTime := time.Now()
	expander := expand.NewExpander(cfg)

	failed := 0
	for _, path := range files {
		if !processFile(expander, path, opts) {
			failed++
		}
	}

	duration := formatDuration(time.Since(startTime))

	if failed == 0 {
		color.Green("Successfully expanded %d file(s) in %s", len(files), duration)
	} else {
		color.Red("Expansion failed for %d of %d file(s) after %s", failed, len(files), duration)
		os.Exit(1)
	}
}

// processFile expands one file, reports its diagnostics and emits the result.
// It returns false when the file could not be expanded.
func processFile(expander *expand.Expander, path string, opts options) bool {
	res, err := expander.ExpandFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return false
	}

	errorReporter := errors.NewErrorReporter(path, res.Source)
	if len(res.Diagnostics) > 0 {
		fmt.Fprint(os.Stderr, errorReporter.FormatAll(res.Diagnostics))
	}

	if opts.dump {
		for _, exp := range res.Expansions {
			if exp.Decl != nil {
				spew.Fdump(os.Stdout, exp.Decl)
			}
		}
	}

	if res.HasErrors() {
		return false
	}

	if !opts.write {
		fmt.Print(res.Output)
		return true
	}

	if !res.Changed() {
		return true
	}
	info, err := os.Stat(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return false
	}
	if err := os.WriteFile(path, []byte(res.Output), info.Mode().Perm()); err != nil {
		fmt.Fprintf(os.Stderr, "failed to write %s: %v\n", path, err)
		return false
	}
	fmt.Printf("%s: expanded %d invocation(s)\n", path, len(res.Expansions))
	return true
}

func loadConfig(path, firstInput string) (*config.Config, error) {
	if path != "" {
		return config.LoadFile(path)
	}

	dir := firstInput
	if info, err := os.Stat(firstInput); err == nil && !info.IsDir() {
		dir = filepath.Dir(firstInput)
	}
	return config.FindAndLoad(dir)
}

// collectFiles expands directory arguments into the source files below them.
// Files named explicitly are kept whatever their extension.
func collectFiles(cfg *config.Config, args []string) ([]string, error) {
	var files []string

	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			files = append(files, arg)
			continue
		}

		err = filepath.WalkDir(arg, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if path != arg && d.Name()[0] == '.' {
					return filepath.SkipDir
				}
				return nil
			}
			if cfg.HasSourceExtension(path) {
				files = append(files, path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	return files, nil
}

func formatDuration(d time.Duration) string {
	switch {
	case d >= time.Minute:
		return fmt.Sprintf("%.2fmin", d.Minutes())
	case d >= time.Second:
		return fmt.Sprintf("%.2fs", d.Seconds())
	case d >= time.Millisecond:
		return fmt.Sprintf("%.1fms", float64(d.Nanoseconds())/1000000.0)
	case d >= time.Microsecond:
		return fmt.Sprintf("%.1fμs", float64(d.Nanoseconds())/1000.0)
	default:
		return fmt.Sprintf("%dns", d.Nanoseconds())
	}
}
