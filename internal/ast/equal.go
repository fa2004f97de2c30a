package ast

// Equality ignores source positions: two declarations are equal when they
// would produce the same generated code.

func (d *ForwardDecl) Equal(other *ForwardDecl) bool {
	if d == nil || other == nil {
		return d == other
	}
	if !d.Target.Equal(other.Target) || len(d.Methods) != len(other.Methods) {
		return false
	}
	for i := range d.Methods {
		if !d.Methods[i].Equal(other.Methods[i]) {
			return false
		}
	}
	return true
}

func (m *Method) Equal(other *Method) bool {
	if m == nil || other == nil {
		return m == other
	}
	if m.Name.Value != other.Name.Value ||
		m.Receiver.Kind != other.Receiver.Kind ||
		m.Receiver.Lifetime != other.Receiver.Lifetime {
		return false
	}
	if len(m.Params) != len(other.Params) {
		return false
	}
	for i := range m.Params {
		if m.Params[i].String() != other.Params[i].String() {
			return false
		}
	}
	return TypesEqual(m.Return, other.Return)
}

func (m *Member) Equal(other Member) bool {
	if m.Named != other.Named {
		return false
	}
	if m.Named {
		return m.Name == other.Name
	}
	return m.Index == other.Index
}

// TypesEqual compares two possibly-nil type expressions by their rendering.
func TypesEqual(a, b Type) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.String() == b.String()
}
