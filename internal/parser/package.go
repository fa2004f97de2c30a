package parser

import "fwdgen/internal/ast"

// ParseSource scans and parses one forwarding declaration. Scanner errors
// stop the parse, so at most one of the two error slices is non-empty and
// the declaration is nil whenever either is.
func ParseSource(path string, source string) (*ast.ForwardDecl, []ParseError, []ScanError) {
	return ParseSourceAt(path, source, Position{Line: 1, Column: 1})
}

// ParseSourceAt is ParseSource for a declaration embedded in a larger file;
// base is where source starts in that file.
func ParseSourceAt(path string, source string, base Position) (*ast.ForwardDecl, []ParseError, []ScanError) {
	res := parse(path, source, base)
	return res.Decl, res.ParseErrors, res.ScanErrors
}

// Parse parses a standalone declaration and returns its first diagnostic
// as the error.
func Parse(source string) (*ast.ForwardDecl, error) {
	res := parse("", source, Position{Line: 1, Column: 1})
	if err := res.Err(); err != nil {
		return nil, err
	}
	return res.Decl, nil
}
