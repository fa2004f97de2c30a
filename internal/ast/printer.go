package ast

import (
	"strconv"
	"strings"
)

// String renders the declaration back into the forwarding mini-language.
func (d *ForwardDecl) String() string {
	var b strings.Builder

	for i, m := range d.Methods {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(m.String())
	}

	b.WriteString(" to self.")
	b.WriteString(d.Target.String())

	return b.String()
}

func (m *Method) String() string {
	var b strings.Builder

	b.WriteString("fn ")
	b.WriteString(m.Name.Value)
	b.WriteString("(")
	b.WriteString(m.ParamList())
	b.WriteString(")")

	if m.Return != nil {
		b.WriteString(" -> ")
		b.WriteString(m.Return.String())
	}

	return b.String()
}

// ParamList renders the receiver followed by the typed parameters, as declared.
func (m *Method) ParamList() string {
	parts := []string{m.Receiver.String()}
	for _, p := range m.Params {
		parts = append(parts, p.String())
	}
	return strings.Join(parts, ", ")
}

func (r *Receiver) String() string {
	var b strings.Builder

	switch r.Kind {
	case ByValueMutable:
		b.WriteString("mut ")
	case ByReference, ByMutableReference:
		b.WriteString("&")
		if r.Lifetime != "" {
			b.WriteString(r.Lifetime)
			b.WriteString(" ")
		}
		if r.Kind == ByMutableReference {
			b.WriteString("mut ")
		}
	}
	b.WriteString("self")

	return b.String()
}

func (p *Param) String() string {
	return p.Pattern.String() + ": " + p.Type.String()
}

func (p *Pattern) String() string {
	if p.Mut {
		return "mut " + p.Name.Value
	}
	return p.Name.Value
}

func (m *Member) String() string {
	if m.Named {
		return m.Name
	}
	return strconv.Itoa(m.Index)
}

func (i *Ident) String() string {
	return i.Value
}

func (t *RefType) String() string {
	var b strings.Builder

	b.WriteString("&")
	if t.Lifetime != "" {
		b.WriteString(t.Lifetime)
		b.WriteString(" ")
	}
	if t.Mut {
		b.WriteString("mut ")
	}
	b.WriteString(t.Elem.String())

	return b.String()
}

func (t *PtrType) String() string {
	if t.Mut {
		return "*mut " + t.Elem.String()
	}
	return "*const " + t.Elem.String()
}

func (t *PathType) String() string {
	var b strings.Builder

	writeBinder(&b, t.Lifetimes)
	if t.Global {
		b.WriteString("::")
	}
	writeSegments(&b, t.Segments)

	return b.String()
}

func (t *QualifiedPathType) String() string {
	var b strings.Builder

	b.WriteString("<")
	b.WriteString(t.Self.String())
	if t.Trait != nil {
		b.WriteString(" as ")
		b.WriteString(t.Trait.String())
	}
	b.WriteString(">::")
	writeSegments(&b, t.Segments)

	return b.String()
}

func (t *FnPtrType) String() string {
	var b strings.Builder

	writeBinder(&b, t.Lifetimes)
	if t.Unsafe {
		b.WriteString("unsafe ")
	}
	b.WriteString("fn(")
	for i, in := range t.Inputs {
		if i > 0 {
			b.WriteString(", ")
		}
		if in.Name.Value != "" {
			b.WriteString(in.Name.Value)
			b.WriteString(": ")
		}
		b.WriteString(in.Type.String())
	}
	b.WriteString(")")
	if t.Output != nil {
		b.WriteString(" -> ")
		b.WriteString(t.Output.String())
	}

	return b.String()
}

func (s *PathSegment) String() string {
	var b strings.Builder

	b.WriteString(s.Name.Value)

	if s.FnSugar {
		b.WriteString("(")
		b.WriteString(joinTypes(s.Inputs))
		b.WriteString(")")
		if s.Output != nil {
			b.WriteString(" -> ")
			b.WriteString(s.Output.String())
		}
		return b.String()
	}

	if len(s.Generics) > 0 {
		if s.Turbofish {
			b.WriteString("::")
		}
		b.WriteString("<")
		for i, g := range s.Generics {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(g.String())
		}
		b.WriteString(">")
	}

	return b.String()
}

func (t *TupleType) String() string {
	if len(t.Elems) == 1 && t.Trailing {
		return "(" + t.Elems[0].String() + ",)"
	}
	return "(" + joinTypes(t.Elems) + ")"
}

func (t *SliceType) String() string {
	return "[" + t.Elem.String() + "]"
}

func (t *ArrayType) String() string {
	return "[" + t.Elem.String() + "; " + t.Len + "]"
}

func (t *TraitObjectType) String() string {
	var b strings.Builder

	if t.Dyn {
		b.WriteString("dyn ")
	} else {
		b.WriteString("impl ")
	}
	for i, bound := range t.Bounds {
		if i > 0 {
			b.WriteString(" + ")
		}
		b.WriteString(bound.String())
	}

	return b.String()
}

func (*NeverType) String() string {
	return "!"
}

func (c *ConstArg) String() string {
	return c.Value
}

func (l *LifetimeArg) String() string {
	return l.Name
}

func (b *BindingArg) String() string {
	return b.Name.Value + " = " + b.Type.String()
}

func joinTypes(types []Type) string {
	parts := make([]string, len(types))
	for i, t := range types {
		parts[i] = t.String()
	}
	return strings.Join(parts, ", ")
}

func writeBinder(b *strings.Builder, lifetimes []string) {
	if len(lifetimes) == 0 {
		return
	}
	b.WriteString("for<")
	b.WriteString(strings.Join(lifetimes, ", "))
	b.WriteString("> ")
}

func writeSegments(b *strings.Builder, segments []*PathSegment) {
	for i, seg := range segments {
		if i > 0 {
			b.WriteString("::")
		}
		b.WriteString(seg.String())
	}
}
