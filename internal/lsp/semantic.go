package lsp

import (
	"fwdgen/internal/ast"
	"fwdgen/internal/expand"
)

// SemanticToken represents a single LSP semantic token entry
// Line and StartChar are 0-based positions
// TokenType is an index into the SemanticTokenTypes array
// TokenModifiers is a bitmask based on SemanticTokenModifiers
type SemanticToken struct {
	Line           uint32
	StartChar      uint32
	Length         uint32
	TokenType      int // index into SemanticTokenTypes
	TokenModifiers int // bitmask
}

func collectSemanticTokens(result *expand.Result) []SemanticToken {
	var tokens []SemanticToken

	if result == nil {
		return tokens
	}

	// Invocations that failed to parse have no declaration
	for _, exp := range result.Expansions {
		tokens = append(tokens, walkForwardDecl(exp.Decl)...)
	}

	return tokens
}

func walkForwardDecl(decl *ast.ForwardDecl) []SemanticToken {
	var tokens []SemanticToken

	if decl == nil {
		return tokens
	}

	for _, m := range decl.Methods {
		tokens = append(tokens, walkMethod(m)...)
	}

	// Delegation target
	target := decl.Target
	tokens = append(tokens, makeToken(target.Pos, target.EndPos, target.String(), "property", 0)...)

	return tokens
}

func walkMethod(m *ast.Method) []SemanticToken {
	var tokens []SemanticToken

	if m == nil {
		return tokens
	}

	// "fn" keyword
	tokens = append(tokens, makeToken(m.Pos, ast.Position{}, "fn", "keyword", 0)...)

	// Method name
	tokens = append(tokens, makeToken(m.Name.Pos, m.Name.EndPos, m.Name.Value, "function", 1)...)

	// "self" closes the receiver
	rcv := m.Receiver
	selfPos := rcv.EndPos
	selfPos.Column -= len("self")
	tokens = append(tokens, makeToken(selfPos, rcv.EndPos, "self", "keyword", 0)...)

	for _, param := range m.Params {
		if param == nil {
			continue
		}
		name := param.Pattern.Name
		tokens = append(tokens, makeToken(name.Pos, name.EndPos, name.Value, "parameter", 1)...)
		tokens = append(tokens, walkType(param.Type)...)
	}

	if m.Return != nil {
		tokens = append(tokens, walkType(m.Return)...)
	}

	return tokens
}

func walkType(t ast.Type) []SemanticToken {
	var tokens []SemanticToken

	switch v := t.(type) {
	case *ast.RefType:
		tokens = append(tokens, walkType(v.Elem)...)
	case *ast.PtrType:
		tokens = append(tokens, walkType(v.Elem)...)
	case *ast.SliceType:
		tokens = append(tokens, walkType(v.Elem)...)
	case *ast.ArrayType:
		tokens = append(tokens, walkType(v.Elem)...)
	case *ast.TupleType:
		for _, elem := range v.Elems {
			tokens = append(tokens, walkType(elem)...)
		}
	case *ast.PathType:
		tokens = append(tokens, walkPath(v)...)
	case *ast.TraitObjectType:
		for _, bound := range v.Bounds {
			tokens = append(tokens, walkGenericArg(bound)...)
		}
	case *ast.QualifiedPathType:
		tokens = append(tokens, walkType(v.Self)...)
		if v.Trait != nil {
			tokens = append(tokens, walkPath(v.Trait)...)
		}
		// Associated items, like "Item" in "<I as Iterator>::Item"
		tokens = append(tokens, walkSegments(v.Segments)...)
	case *ast.FnPtrType:
		for _, in := range v.Inputs {
			tokens = append(tokens, makeToken(in.Name.Pos, in.Name.EndPos, in.Name.Value, "parameter", 0)...)
			tokens = append(tokens, walkType(in.Type)...)
		}
		if v.Output != nil {
			tokens = append(tokens, walkType(v.Output)...)
		}
	}

	return tokens
}

func walkPath(p *ast.PathType) []SemanticToken {
	if p == nil {
		return nil
	}
	return walkSegments(p.Segments)
}

func walkSegments(segments []*ast.PathSegment) []SemanticToken {
	var tokens []SemanticToken

	if len(segments) == 0 {
		return tokens
	}

	last := segments[len(segments)-1]
	for _, seg := range segments {
		// Leading segments of a qualified path, like "std::option"
		kind := "namespace"
		if seg == last {
			kind = "type"
		}
		tokens = append(tokens, makeToken(seg.Name.Pos, seg.Name.EndPos, seg.Name.Value, kind, 0)...)

		if seg.FnSugar {
			for _, in := range seg.Inputs {
				tokens = append(tokens, walkType(in)...)
			}
			if seg.Output != nil {
				tokens = append(tokens, walkType(seg.Output)...)
			}
			continue
		}
		for _, arg := range seg.Generics {
			tokens = append(tokens, walkGenericArg(arg)...)
		}
	}

	return tokens
}

func walkGenericArg(arg ast.GenericArg) []SemanticToken {
	switch v := arg.(type) {
	case *ast.LifetimeArg:
		return nil
	case *ast.BindingArg:
		// Associated type name, like "Item" in "Iterator<Item = u8>"
		tokens := makeToken(v.Name.Pos, v.Name.EndPos, v.Name.Value, "typeParameter", 0)
		return append(tokens, walkType(v.Type)...)
	case ast.Type:
		return walkType(v)
	}
	return nil
}

// makeToken creates a semantic token for a given position and text
func makeToken(pos, endPos ast.Position, value, tokenType string, declModifier int) []SemanticToken {
	if value == "" || pos.Line < 1 || pos.Column < 1 {
		return nil
	}

	length := endPos.Column - pos.Column
	if endPos.Line != pos.Line || length <= 0 {
		length = len(value)
	}

	return []SemanticToken{{
		Line:           uint32(pos.Line - 1),   // LSP uses 0-based line numbers
		StartChar:      uint32(pos.Column - 1), // LSP uses 0-based column numbers
		Length:         uint32(length),
		TokenType:      indexOf(tokenType, SemanticTokenTypes),
		TokenModifiers: declModifier << indexOf("declaration", SemanticTokenModifiers),
	}}
}

// indexOf returns the index of a string in a slice, or 0 if not found
func indexOf(target string, list []string) int {
	for i, v := range list {
		if v == target {
			return i
		}
	}
	return 0
}
