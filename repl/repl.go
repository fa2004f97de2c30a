// Package repl reads forwarding declarations line by line and prints what
// they expand to.
package repl

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"fwdgen/internal/expand"

	"github.com/fatih/color"
)

const PROMPT = ">> "

const pubPrefix = "pub "

func Start(in io.Reader, out io.Writer) {
	scanner := bufio.NewScanner(in)
	red := color.New(color.FgRed).SprintFunc()

	for {
		fmt.Fprint(out, PROMPT)
		if !scanner.Scan() {
			return
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		result, err := Eval(line)
		if err != nil {
			fmt.Fprintf(out, "%s: %s\n", red("error"), err)
			continue
		}
		fmt.Fprintln(out, result)
	}
}

// Eval expands one line, honouring a leading "pub ".
func Eval(line string) (string, error) {
	if rest, ok := strings.CutPrefix(line, pubPrefix); ok {
		return expand.FwdPub(strings.TrimSpace(rest))
	}
	return expand.Fwd(line)
}
