// Package expand turns forwarding declarations into delegating methods,
// either one declaration at a time or by rewriting every invocation found in
// a host source file.
package expand

import (
	"fwdgen/internal/codegen"
	"fwdgen/internal/parser"
)

// Fwd parses a declaration body and returns the private delegating methods in
// compact form, one per line.
func Fwd(source string) (string, error) {
	return emit(source, codegen.Private)
}

// FwdPub is Fwd with every generated method marked pub.
func FwdPub(source string) (string, error) {
	return emit(source, codegen.Public)
}

func emit(source string, vis codegen.Visibility) (string, error) {
	decl, err := parser.Parse(source)
	if err != nil {
		return "", err
	}
	return codegen.Synthesize(decl, vis).String(), nil
}
