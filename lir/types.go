package lir

import (
	"fmt"
	"strings"
)

// Type is an IR type: a primitive (PrimType) or one of the composite forms
// below. Composites recurse through Type.
type Type interface {
	isType()
	String() string
}

// PrimType enumerates the primitive types. Declaration order matches the
// wire tag order; do not reorder.
type PrimType int32

const (
	NoneType PrimType = iota
	VoidType
	VarargType
	PtrType
	BoolType
	CharType
	ByteType
	UByteType
	ShortType
	UShortType
	IntType
	UIntType
	LongType
	ULongType
	FloatType
	DoubleType
	NullType
	NothingType
	VirtualType
	UnitType

	numPrimTypes = int32(iota)
)

var primTypeNames = [...]string{
	"none", "void", "...", "ptr", "bool", "char",
	"byte", "ubyte", "short", "ushort", "int", "uint",
	"long", "ulong", "float", "double", "null", "nothing",
	"virtual", "unit",
}

func (t PrimType) isType() {}

func (t PrimType) String() string {
	if t < 0 || int(t) >= len(primTypeNames) {
		return "type?"
	}
	return primTypeNames[t]
}

// ArrayValueType is a fixed-length in-memory array of Elem.
type ArrayValueType struct {
	Elem Type
	N    int32
}

// StructValueType is an in-memory aggregate of the element types.
type StructValueType struct {
	Elems []Type
}

// FunctionType is a function signature.
type FunctionType struct {
	Args []Type
	Ret  Type
}

// VarType is a mutable slot holding Elem.
type VarType struct {
	Elem Type
}

// ArrayType is a managed array reference over Elem.
type ArrayType struct {
	Elem     Type
	Nullable bool
}

// RefType is a named class, trait, or module reference.
type RefType struct {
	Name     Global
	Exact    bool
	Nullable bool
}

func (ArrayValueType) isType()  {}
func (StructValueType) isType() {}
func (FunctionType) isType()    {}
func (VarType) isType()         {}
func (ArrayType) isType()       {}
func (RefType) isType()         {}

func (t ArrayValueType) String() string {
	return fmt.Sprintf("[%s x %d]", t.Elem, t.N)
}

func (t StructValueType) String() string {
	return "{" + typeList(t.Elems) + "}"
}

func (t FunctionType) String() string {
	return "(" + typeList(t.Args) + ") => " + t.Ret.String()
}

func (t VarType) String() string {
	return "var[" + t.Elem.String() + "]"
}

func (t ArrayType) String() string {
	var b strings.Builder
	b.WriteString("array[")
	b.WriteString(t.Elem.String())
	b.WriteString("]")
	if t.Nullable {
		b.WriteString("?")
	}
	return b.String()
}

func (t RefType) String() string {
	var b strings.Builder
	if t.Exact {
		b.WriteString("!")
	}
	b.WriteString(t.Name.String())
	if t.Nullable {
		b.WriteString("?")
	}
	return b.String()
}
