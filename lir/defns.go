package lir

import (
	"fmt"
)

// Defn is a top-level definition. Name is always a Global.
type Defn interface {
	isDefn()
	// Name returns the definition's global name, the key it is indexed
	// under in the serialized form.
	Name() Global
	String() string
}

// VarDefn is a mutable global variable.
type VarDefn struct {
	Attrs Attrs
	Nm    Global
	Type  Type
	Value Val
}

// ConstDefn is an immutable global constant.
type ConstDefn struct {
	Attrs Attrs
	Nm    Global
	Type  Type
	Value Val
}

// DeclareDefn declares a function without a body.
type DeclareDefn struct {
	Attrs Attrs
	Nm    Global
	Type  Type
}

// DefineDefn defines a function with its instruction stream.
type DefineDefn struct {
	Attrs Attrs
	Nm    Global
	Type  Type
	Insts []Inst
}

// TraitDefn defines a trait and the interfaces it extends.
type TraitDefn struct {
	Attrs  Attrs
	Nm     Global
	Ifaces []Global
}

// ClassDefn defines a class. Parent is nil for a root class.
type ClassDefn struct {
	Attrs  Attrs
	Nm     Global
	Parent Global
	Ifaces []Global
}

// ModuleDefn defines a module (a lazily-initialized singleton class).
// Parent is nil when the module extends nothing.
type ModuleDefn struct {
	Attrs  Attrs
	Nm     Global
	Parent Global
	Ifaces []Global
}

func (VarDefn) isDefn()     {}
func (ConstDefn) isDefn()   {}
func (DeclareDefn) isDefn() {}
func (DefineDefn) isDefn()  {}
func (TraitDefn) isDefn()   {}
func (ClassDefn) isDefn()   {}
func (ModuleDefn) isDefn()  {}

func (d VarDefn) Name() Global     { return d.Nm }
func (d ConstDefn) Name() Global   { return d.Nm }
func (d DeclareDefn) Name() Global { return d.Nm }
func (d DefineDefn) Name() Global  { return d.Nm }
func (d TraitDefn) Name() Global   { return d.Nm }
func (d ClassDefn) Name() Global   { return d.Nm }
func (d ModuleDefn) Name() Global  { return d.Nm }

func (d VarDefn) String() string {
	return fmt.Sprintf("var @%s: %s = %s", d.Nm, d.Type, d.Value)
}

func (d ConstDefn) String() string {
	return fmt.Sprintf("const @%s: %s = %s", d.Nm, d.Type, d.Value)
}

func (d DeclareDefn) String() string {
	return fmt.Sprintf("decl @%s: %s", d.Nm, d.Type)
}

func (d DefineDefn) String() string {
	return fmt.Sprintf("def @%s: %s (%d insts)", d.Nm, d.Type, len(d.Insts))
}

func (d TraitDefn) String() string {
	return fmt.Sprintf("trait @%s", d.Nm)
}

func (d ClassDefn) String() string {
	if d.Parent != nil {
		return fmt.Sprintf("class @%s <: %s", d.Nm, d.Parent)
	}
	return fmt.Sprintf("class @%s", d.Nm)
}

func (d ModuleDefn) String() string {
	if d.Parent != nil {
		return fmt.Sprintf("module @%s <: %s", d.Nm, d.Parent)
	}
	return fmt.Sprintf("module @%s", d.Nm)
}
