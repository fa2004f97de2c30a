package semantic

import "fwdgen/internal/ast"

type SymbolKind int

const (
	SymbolMethod SymbolKind = iota
	SymbolParameter
)

// Symbol is the first binding of a name in a scope.
type Symbol struct {
	Name     string
	Kind     SymbolKind
	Node     ast.Node
	Position ast.Position
}

// Scope holds the names bound at one level of a declaration: the methods of
// the list, or the parameters of a single method. Method names and parameter
// names live in different namespaces, so scopes do not nest.
type Scope struct {
	kind    SymbolKind
	symbols map[string]*Symbol
}

func NewScope(kind SymbolKind) *Scope {
	return &Scope{kind: kind, symbols: make(map[string]*Symbol)}
}

// Declare binds name to node. If name is already bound, the earlier symbol
// is returned with ok false and the scope is left unchanged.
func (s *Scope) Declare(name string, node ast.Node) (sym *Symbol, ok bool) {
	if prev, bound := s.symbols[name]; bound {
		return prev, false
	}
	sym = &Symbol{Name: name, Kind: s.kind, Node: node, Position: node.NodePos()}
	s.symbols[name] = sym
	return sym, true
}

func (s *Scope) Lookup(name string) *Symbol {
	return s.symbols[name]
}
