package codegen

import (
	"fmt"
	"strings"
)

const defaultUnit = "    "

// Printer renders generated functions as source text
type Printer struct {
	prefix string // prepended to every line but the first
	unit   string // one indentation level
	indent int
	output strings.Builder
}

// NewPrinter creates a new printer
func NewPrinter() *Printer {
	return &Printer{unit: defaultUnit}
}

// Helper methods

func (p *Printer) newline() {
	p.output.WriteString("\n")
	p.output.WriteString(p.prefix)
	for i := 0; i < p.indent; i++ {
		p.output.WriteString(p.unit)
	}
}

func (p *Printer) write(format string, args ...interface{}) {
	p.output.WriteString(fmt.Sprintf(format, args...))
}

// printCompact writes "fn a(self) { self.x.a() }" lines separated by "\n".
func (p *Printer) printCompact(fns FunctionSet) {
	for i, fn := range fns {
		if i > 0 {
			p.output.WriteString("\n")
		}
		p.printSignature(fn)
		p.write(" { ")
		p.printCall(fn.Body)
		p.write(" }")
	}
}

// printBlocks writes each function as a braced block, with a blank line
// between functions.
func (p *Printer) printBlocks(fns FunctionSet) {
	for i, fn := range fns {
		if i > 0 {
			p.output.WriteString("\n")
			p.newline()
		}
		p.printSignature(fn)
		p.write(" {")
		p.indent++
		p.newline()
		p.printCall(fn.Body)
		p.indent--
		p.newline()
		p.write("}")
	}
}

func (p *Printer) printSignature(fn Function) {
	if fn.Visibility == Public {
		p.write("pub ")
	}
	params := append([]string{fn.Receiver}, fn.Params...)
	p.write("fn %s(%s)", fn.Name, strings.Join(params, ", "))
	if fn.Return != "" {
		p.write(" -> %s", fn.Return)
	}
}

func (p *Printer) printCall(c ForwardCall) {
	p.write("self.%s.%s(%s)", c.Member, c.Method, strings.Join(c.Args, ", "))
	if c.Clone {
		p.write(".clone()")
	}
}
