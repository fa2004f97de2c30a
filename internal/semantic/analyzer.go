package semantic

import (
	"fwdgen/internal/ast"
	"fwdgen/internal/codegen"
	"fwdgen/internal/errors"
)

// Analyzer checks a parsed declaration for problems the grammar cannot
// express: names bound twice, and clones that would only copy a reference.
type Analyzer struct {
	decl    *ast.ForwardDecl
	errors  []errors.CompilerError
	methods *Scope
}

func NewAnalyzer() *Analyzer {
	return &Analyzer{}
}

// Analyze runs every check on decl and returns the diagnostics, errors and
// warnings alike, in source order.
func (a *Analyzer) Analyze(decl *ast.ForwardDecl) []errors.CompilerError {
	a.decl = decl
	a.errors = nil
	a.methods = NewScope(SymbolMethod)

	if decl == nil {
		return nil
	}

	for _, m := range decl.Methods {
		a.analyzeMethod(m)
	}
	return a.errors
}

// HasErrors reports whether the last Analyze produced anything besides warnings.
func (a *Analyzer) HasErrors() bool {
	for _, err := range a.errors {
		if !err.IsWarning() {
			return true
		}
	}
	return false
}

func (a *Analyzer) analyzeMethod(m *ast.Method) {
	if first, ok := a.methods.Declare(m.Name.Value, &m.Name); !ok {
		a.addCompilerError(errors.DuplicateMethod(m.Name.Value, m.Name.Pos, m.Name.EndPos, first.Position))
	}

	params := NewScope(SymbolParameter)
	for _, p := range m.Params {
		name := p.Pattern.Name
		if _, ok := params.Declare(name.Value, p); !ok {
			a.addCompilerError(errors.DuplicateParameter(m.Name.Value, name.Value, name.Pos, name.EndPos))
		}
	}

	a.checkCloneOfReference(m)
}

// checkCloneOfReference warns when the generated body clones a result whose
// declared type is itself a borrow.
func (a *Analyzer) checkCloneOfReference(m *ast.Method) {
	if !codegen.NeedsClone(m) {
		return
	}
	if _, isRef := m.Return.(*ast.RefType); !isRef {
		return
	}
	a.addCompilerError(errors.CloneOfReference(m.Name.Value, m.Return.String(), m.Return.NodePos(), m.Return.NodeEndPos()))
}

func (a *Analyzer) addCompilerError(err errors.CompilerError) {
	a.errors = append(a.errors, err)
}
