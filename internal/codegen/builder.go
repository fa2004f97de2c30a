package codegen

import "fwdgen/internal/ast"

// optionName is the wrapper whose results are handed back without cloning.
const optionName = "Option"

// EmitPrivate generates the delegating functions for decl.
func EmitPrivate(decl *ast.ForwardDecl) FunctionSet {
	return Synthesize(decl, Private)
}

// EmitPublic generates the same functions as EmitPrivate, each marked pub.
func EmitPublic(decl *ast.ForwardDecl) FunctionSet {
	return Synthesize(decl, Public)
}

// Synthesize lowers every method of decl into a Function calling the
// same-named method on the target member. The output is a pure function of
// decl and vis.
func Synthesize(decl *ast.ForwardDecl, vis Visibility) FunctionSet {
	if decl == nil {
		return nil
	}

	member := decl.Target.String()
	fns := make(FunctionSet, 0, len(decl.Methods))
	for _, m := range decl.Methods {
		fns = append(fns, buildFunction(m, member, vis))
	}
	return fns
}

func buildFunction(m *ast.Method, member string, vis Visibility) Function {
	fn := Function{
		Visibility: vis,
		Name:       m.Name.Value,
		Receiver:   m.Receiver.String(),
		Body: ForwardCall{
			Member: member,
			Method: m.Name.Value,
			Clone:  NeedsClone(m),
		},
	}

	for _, p := range m.Params {
		fn.Params = append(fn.Params, p.String())
		fn.Body.Args = append(fn.Body.Args, p.Pattern.Name.Value)
	}
	if m.Return != nil {
		fn.Return = m.Return.String()
	}

	return fn
}

// NeedsClone reports whether the forwarded result must be cloned: the
// method borrows self and returns something other than an Option.
func NeedsClone(m *ast.Method) bool {
	return m.Receiver.IsRef() && m.Return != nil && !IsOptionType(m.Return)
}

// IsOptionType reports whether t, looking through any references, is a path
// whose last segment is named Option. The check is by name only, so a user
// type called Option is treated the same way.
func IsOptionType(t ast.Type) bool {
	path, ok := ast.StripRefs(t).(*ast.PathType)
	if !ok {
		return false
	}
	last := path.LastSegment()
	return last != nil && last.Name.Value == optionName
}
