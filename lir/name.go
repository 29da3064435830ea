package lir

import (
	"fmt"
	"strings"
)

// Local is a function-scope SSA name.
type Local int64

func (l Local) String() string {
	return fmt.Sprintf("%%%d", int64(l))
}

// Global is a fully-qualified symbol name: absent, a top-level identifier,
// or a member of a top-level identifier disambiguated by a signature.
type Global interface {
	isGlobal()
	String() string
}

// GlobalNone is the absent global name.
type GlobalNone struct{}

// Top is a top-level identifier.
type Top struct {
	ID string
}

// Member names a member of a top-level identifier. Owner must be a Top;
// the encoder rejects any other shape.
type Member struct {
	Owner Global
	Sig   Sig
}

func (GlobalNone) isGlobal() {}
func (Top) isGlobal()        {}
func (Member) isGlobal()     {}

func (GlobalNone) String() string { return "<none>" }
func (g Top) String() string      { return g.ID }

func (g Member) String() string {
	return g.Owner.String() + "." + g.Sig.String()
}

// Sig disambiguates members that share an owner.
type Sig interface {
	isSig()
	String() string
}

// SigField names a field member.
type SigField struct {
	ID string
}

// SigCtor names a constructor by its parameter types.
type SigCtor struct {
	Types []Type
}

// SigMethod names a method by identifier and parameter types.
type SigMethod struct {
	ID    string
	Types []Type
}

// SigProxy names a proxy forwarder by identifier and parameter types.
type SigProxy struct {
	ID    string
	Types []Type
}

// SigExtern names an externally-linked member.
type SigExtern struct {
	ID string
}

// SigGenerated names a compiler-synthesized member.
type SigGenerated struct {
	ID string
}

// SigDuplicate wraps another signature specialized over argument types.
type SigDuplicate struct {
	Of    Sig
	Types []Type
}

func (SigField) isSig()     {}
func (SigCtor) isSig()      {}
func (SigMethod) isSig()    {}
func (SigProxy) isSig()     {}
func (SigExtern) isSig()    {}
func (SigGenerated) isSig() {}
func (SigDuplicate) isSig() {}

func typeList(types []Type) string {
	parts := make([]string, len(types))
	for i, t := range types {
		parts[i] = t.String()
	}
	return strings.Join(parts, ",")
}

func (s SigField) String() string  { return "field." + s.ID }
func (s SigCtor) String() string   { return "ctor(" + typeList(s.Types) + ")" }
func (s SigMethod) String() string { return s.ID + "(" + typeList(s.Types) + ")" }
func (s SigProxy) String() string  { return "proxy." + s.ID + "(" + typeList(s.Types) + ")" }
func (s SigExtern) String() string { return "extern." + s.ID }

func (s SigGenerated) String() string { return "generated." + s.ID }

func (s SigDuplicate) String() string {
	return "dup." + s.Of.String() + "(" + typeList(s.Types) + ")"
}
