package ast

type NodeType int

const (
	ILLEGAL NodeType = iota

	// Declarations
	FORWARD_DECL
	METHOD
	RECEIVER
	PARAM
	PATTERN
	MEMBER
	IDENT

	// Types
	REF_TYPE
	PTR_TYPE
	PATH_TYPE
	PATH_SEGMENT
	TUPLE_TYPE
	SLICE_TYPE
	ARRAY_TYPE
	TRAIT_OBJECT_TYPE
	NEVER_TYPE
	QUALIFIED_PATH_TYPE
	FN_PTR_TYPE
	CONST_ARG
	LIFETIME_ARG
	BINDING_ARG
)

var nodeTypeNames = [...]string{
	ILLEGAL:             "ILLEGAL",
	FORWARD_DECL:        "FORWARD_DECL",
	METHOD:              "METHOD",
	RECEIVER:            "RECEIVER",
	PARAM:               "PARAM",
	PATTERN:             "PATTERN",
	MEMBER:              "MEMBER",
	IDENT:               "IDENT",
	REF_TYPE:            "REF_TYPE",
	PTR_TYPE:            "PTR_TYPE",
	PATH_TYPE:           "PATH_TYPE",
	PATH_SEGMENT:        "PATH_SEGMENT",
	TUPLE_TYPE:          "TUPLE_TYPE",
	SLICE_TYPE:          "SLICE_TYPE",
	ARRAY_TYPE:          "ARRAY_TYPE",
	TRAIT_OBJECT_TYPE:   "TRAIT_OBJECT_TYPE",
	NEVER_TYPE:          "NEVER_TYPE",
	QUALIFIED_PATH_TYPE: "QUALIFIED_PATH_TYPE",
	FN_PTR_TYPE:         "FN_PTR_TYPE",
	CONST_ARG:           "CONST_ARG",
	LIFETIME_ARG:        "LIFETIME_ARG",
	BINDING_ARG:         "BINDING_ARG",
}

func (t NodeType) String() string {
	if t < 0 || int(t) >= len(nodeTypeNames) {
		return "NodeType(?)"
	}
	return nodeTypeNames[t]
}

type Node interface {
	NodePos() Position
	NodeEndPos() Position
	NodeType() NodeType
	String() string
}

func (d *ForwardDecl) NodePos() Position    { return d.Pos }
func (d *ForwardDecl) NodeEndPos() Position { return d.EndPos }
func (*ForwardDecl) NodeType() NodeType     { return FORWARD_DECL }

func (m *Method) NodePos() Position    { return m.Pos }
func (m *Method) NodeEndPos() Position { return m.EndPos }
func (*Method) NodeType() NodeType     { return METHOD }

func (r *Receiver) NodePos() Position    { return r.Pos }
func (r *Receiver) NodeEndPos() Position { return r.EndPos }
func (*Receiver) NodeType() NodeType     { return RECEIVER }

func (p *Param) NodePos() Position    { return p.Pos }
func (p *Param) NodeEndPos() Position { return p.EndPos }
func (*Param) NodeType() NodeType     { return PARAM }

func (p *Pattern) NodePos() Position    { return p.Pos }
func (p *Pattern) NodeEndPos() Position { return p.EndPos }
func (*Pattern) NodeType() NodeType     { return PATTERN }

func (m *Member) NodePos() Position    { return m.Pos }
func (m *Member) NodeEndPos() Position { return m.EndPos }
func (*Member) NodeType() NodeType     { return MEMBER }

func (i *Ident) NodePos() Position    { return i.Pos }
func (i *Ident) NodeEndPos() Position { return i.EndPos }
func (*Ident) NodeType() NodeType     { return IDENT }

func (t *RefType) NodePos() Position    { return t.Pos }
func (t *RefType) NodeEndPos() Position { return t.EndPos }
func (*RefType) NodeType() NodeType     { return REF_TYPE }

func (t *PtrType) NodePos() Position    { return t.Pos }
func (t *PtrType) NodeEndPos() Position { return t.EndPos }
func (*PtrType) NodeType() NodeType     { return PTR_TYPE }

func (t *PathType) NodePos() Position    { return t.Pos }
func (t *PathType) NodeEndPos() Position { return t.EndPos }
func (*PathType) NodeType() NodeType     { return PATH_TYPE }

func (s *PathSegment) NodePos() Position    { return s.Pos }
func (s *PathSegment) NodeEndPos() Position { return s.EndPos }
func (*PathSegment) NodeType() NodeType     { return PATH_SEGMENT }

func (t *TupleType) NodePos() Position    { return t.Pos }
func (t *TupleType) NodeEndPos() Position { return t.EndPos }
func (*TupleType) NodeType() NodeType     { return TUPLE_TYPE }

func (t *SliceType) NodePos() Position    { return t.Pos }
func (t *SliceType) NodeEndPos() Position { return t.EndPos }
func (*SliceType) NodeType() NodeType     { return SLICE_TYPE }

func (t *ArrayType) NodePos() Position    { return t.Pos }
func (t *ArrayType) NodeEndPos() Position { return t.EndPos }
func (*ArrayType) NodeType() NodeType     { return ARRAY_TYPE }

func (t *TraitObjectType) NodePos() Position    { return t.Pos }
func (t *TraitObjectType) NodeEndPos() Position { return t.EndPos }
func (*TraitObjectType) NodeType() NodeType     { return TRAIT_OBJECT_TYPE }

func (t *NeverType) NodePos() Position    { return t.Pos }
func (t *NeverType) NodeEndPos() Position { return t.EndPos }
func (*NeverType) NodeType() NodeType     { return NEVER_TYPE }

func (t *QualifiedPathType) NodePos() Position    { return t.Pos }
func (t *QualifiedPathType) NodeEndPos() Position { return t.EndPos }
func (*QualifiedPathType) NodeType() NodeType     { return QUALIFIED_PATH_TYPE }

func (t *FnPtrType) NodePos() Position    { return t.Pos }
func (t *FnPtrType) NodeEndPos() Position { return t.EndPos }
func (*FnPtrType) NodeType() NodeType     { return FN_PTR_TYPE }

func (c *ConstArg) NodePos() Position    { return c.Pos }
func (c *ConstArg) NodeEndPos() Position { return c.EndPos }
func (*ConstArg) NodeType() NodeType     { return CONST_ARG }

func (l *LifetimeArg) NodePos() Position    { return l.Pos }
func (l *LifetimeArg) NodeEndPos() Position { return l.EndPos }
func (*LifetimeArg) NodeType() NodeType     { return LIFETIME_ARG }

func (b *BindingArg) NodePos() Position    { return b.Pos }
func (b *BindingArg) NodeEndPos() Position { return b.EndPos }
func (*BindingArg) NodeType() NodeType     { return BINDING_ARG }
