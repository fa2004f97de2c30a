package expand

import (
	"fmt"
	"os"
	"strings"

	"fwdgen/grammar"
	"fwdgen/internal/ast"
	"fwdgen/internal/codegen"
	"fwdgen/internal/config"
	"fwdgen/internal/errors"
	"fwdgen/internal/parser"
	"fwdgen/internal/semantic"

	"github.com/alecthomas/participle/v2/lexer"
	"github.com/tliron/commonlog"
)

// Expander rewrites host files, replacing each configured macro invocation
// with the methods it generates.
type Expander struct {
	names  map[string]bool // macro names to look for
	public map[string]bool // macro names expanding to pub methods
	indent string
	log    commonlog.Logger
}

// Expansion is one invocation together with what it expands to.
type Expansion struct {
	Invocation grammar.Invocation
	Public     bool
	Decl       *ast.ForwardDecl
	Functions  codegen.FunctionSet
	Text       string // replacement text, empty when the invocation failed
}

// Result is the outcome of expanding one file.
type Result struct {
	Filename    string
	Source      string
	Output      string // rewritten file, empty when HasErrors
	Expansions  []*Expansion
	Diagnostics []errors.CompilerError
}

// NewExpander creates an expander for the macros named in cfg. A nil cfg
// uses config.Default().
func NewExpander(cfg *config.Config) *Expander {
	if cfg == nil {
		cfg = config.Default()
	}

	e := &Expander{
		names:  map[string]bool{},
		public: cfg.MacroNames(),
		indent: cfg.Expand.Indent,
		log:    commonlog.GetLogger("fwd.expand"),
	}
	for name := range e.public {
		e.names[name] = true
	}
	return e
}

// ExpandFile reads path and expands it. The error is only for I/O failures;
// problems in the file end up in Result.Diagnostics.
func (e *Expander) ExpandFile(path string) (*Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", path, err)
	}
	return e.ExpandSource(path, string(data)), nil
}

// ExpandSource expands every invocation in source.
func (e *Expander) ExpandSource(filename, source string) *Result {
	res := &Result{Filename: filename, Source: source}

	file, err := grammar.LexHost(filename, source)
	if err != nil {
		pos, _ := grammar.LexErrorPosition(err)
		res.Diagnostics = append(res.Diagnostics, errors.HostLexing(err.Error(), toASTPosition(pos)))
		e.log.Errorf("%s: %s", filename, err)
		return res
	}

	invocations, unbalanced := file.FindInvocations(e.names)
	for _, u := range unbalanced {
		res.Diagnostics = append(res.Diagnostics,
			errors.UnbalancedInvocation(u.Msg, u.Open.Value, toASTPosition(u.Pos)))
	}

	for _, inv := range invocations {
		exp := e.expandInvocation(filename, source, inv)
		res.Expansions = append(res.Expansions, exp.expansion)
		res.Diagnostics = append(res.Diagnostics, exp.diagnostics...)
	}

	if res.HasErrors() {
		e.log.Infof("%s: not rewritten, %d diagnostic(s)", filename, len(res.Diagnostics))
		return res
	}

	res.Output = splice(source, res.Expansions)
	e.log.Infof("%s: expanded %d invocation(s)", filename, len(res.Expansions))
	return res
}

type invocationResult struct {
	expansion   *Expansion
	diagnostics []errors.CompilerError
}

func (e *Expander) expandInvocation(filename, source string, inv grammar.Invocation) invocationResult {
	exp := &Expansion{Invocation: inv, Public: e.public[inv.Name]}
	out := invocationResult{expansion: exp}

	start := inv.BodyStart()
	base := parser.Position{Line: start.Line, Column: start.Column, Offset: start.Offset}
	pr := parser.ParseSourceWithTokens(filename, inv.Body(source), base)
	if pr.HasErrors() {
		out.diagnostics = pr.Diagnostics(filename)
		e.log.Debugf("%s:%d: %s! failed to parse", filename, inv.Start.Line, inv.Name)
		return out
	}
	exp.Decl = pr.Decl

	analyzer := semantic.NewAnalyzer()
	out.diagnostics = analyzer.Analyze(pr.Decl)
	if analyzer.HasErrors() {
		return out
	}

	vis := codegen.Private
	if exp.Public {
		vis = codegen.Public
	}
	exp.Functions = codegen.Synthesize(pr.Decl, vis)
	exp.Text = exp.Functions.FormatIndent(grammar.LineIndent(source, inv.Start.Offset), e.indent)
	e.log.Debugf("%s:%d: %s! generated %d method(s)", filename, inv.Start.Line, inv.Name, len(exp.Functions))
	return out
}

// splice replaces every invocation in source with its expansion text.
// Expansions are in source order and never overlap.
func splice(source string, expansions []*Expansion) string {
	var out strings.Builder
	last := 0
	for _, exp := range expansions {
		out.WriteString(source[last:exp.Invocation.Start.Offset])
		out.WriteString(exp.Text)
		last = exp.Invocation.End
	}
	out.WriteString(source[last:])
	return out.String()
}

// HasErrors reports whether any diagnostic is an error rather than a warning.
func (r *Result) HasErrors() bool {
	for _, d := range r.Diagnostics {
		if !d.IsWarning() {
			return true
		}
	}
	return false
}

// Changed reports whether the rewritten file differs from the input.
func (r *Result) Changed() bool {
	return !r.HasErrors() && r.Output != r.Source
}

// ExpansionAt returns the expansion whose invocation covers offset, or nil.
func (r *Result) ExpansionAt(offset int) *Expansion {
	for _, exp := range r.Expansions {
		if exp.Invocation.Contains(offset) {
			return exp
		}
	}
	return nil
}

func toASTPosition(pos lexer.Position) ast.Position {
	return ast.Position{Filename: pos.Filename, Offset: pos.Offset, Line: pos.Line, Column: pos.Column}
}
