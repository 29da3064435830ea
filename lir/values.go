package lir

import (
	"fmt"
	"strconv"
	"strings"
)

// Val is a typed IR value: a literal, a local SSA reference, or a global
// reference.
type Val interface {
	isVal()
	String() string
}

// NoneVal is the absent value.
type NoneVal struct{}

// TrueVal is the boolean true literal.
type TrueVal struct{}

// FalseVal is the boolean false literal.
type FalseVal struct{}

// NullVal is the null pointer literal. It has no tag of its own on the
// wire: it is serialized as ZeroVal{PtrType} and decodes as such, so
// callers must treat the two as aliases.
type NullVal struct{}

// UnitVal is the unit literal.
type UnitVal struct{}

// ZeroVal is the zero value of a type.
type ZeroVal struct {
	Of Type
}

// UndefVal is an undefined value of a type.
type UndefVal struct {
	Of Type
}

// Numeric literals.
type (
	ByteVal   int8
	ShortVal  int16
	IntVal    int32
	LongVal   int64
	FloatVal  float32
	DoubleVal float64
)

// StructVal is an aggregate literal.
type StructVal struct {
	Values []Val
}

// ArrayVal is a fixed array literal of Elem.
type ArrayVal struct {
	Elem   Type
	Values []Val
}

// CharsVal is a C-string literal.
type CharsVal string

// StringVal is a managed string literal.
type StringVal string

// LocalVal references a local SSA name.
type LocalVal struct {
	Name Local
	Type Type
}

// GlobalVal references a global symbol.
type GlobalVal struct {
	Name Global
	Type Type
}

// ConstVal wraps a value as a link-time constant.
type ConstVal struct {
	Value Val
}

// VirtualVal is an opaque 64-bit virtual value used by the optimizer.
type VirtualVal int64

func (NoneVal) isVal()    {}
func (TrueVal) isVal()    {}
func (FalseVal) isVal()   {}
func (NullVal) isVal()    {}
func (UnitVal) isVal()    {}
func (ZeroVal) isVal()    {}
func (UndefVal) isVal()   {}
func (ByteVal) isVal()    {}
func (ShortVal) isVal()   {}
func (IntVal) isVal()     {}
func (LongVal) isVal()    {}
func (FloatVal) isVal()   {}
func (DoubleVal) isVal()  {}
func (StructVal) isVal()  {}
func (ArrayVal) isVal()   {}
func (CharsVal) isVal()   {}
func (StringVal) isVal()  {}
func (LocalVal) isVal()   {}
func (GlobalVal) isVal()  {}
func (ConstVal) isVal()   {}
func (VirtualVal) isVal() {}

func valList(vals []Val) string {
	parts := make([]string, len(vals))
	for i, v := range vals {
		parts[i] = v.String()
	}
	return strings.Join(parts, ", ")
}

func (NoneVal) String() string  { return "<none>" }
func (TrueVal) String() string  { return "true" }
func (FalseVal) String() string { return "false" }
func (NullVal) String() string  { return "null" }
func (UnitVal) String() string  { return "unit" }

func (v ZeroVal) String() string  { return "zero[" + v.Of.String() + "]" }
func (v UndefVal) String() string { return "undef[" + v.Of.String() + "]" }

func (v ByteVal) String() string  { return strconv.FormatInt(int64(v), 10) + "b" }
func (v ShortVal) String() string { return strconv.FormatInt(int64(v), 10) + "s" }
func (v IntVal) String() string   { return strconv.FormatInt(int64(v), 10) }
func (v LongVal) String() string  { return strconv.FormatInt(int64(v), 10) + "L" }

func (v FloatVal) String() string {
	return strconv.FormatFloat(float64(v), 'g', -1, 32) + "f"
}

func (v DoubleVal) String() string {
	return strconv.FormatFloat(float64(v), 'g', -1, 64)
}

func (v StructVal) String() string {
	return "{" + valList(v.Values) + "}"
}

func (v ArrayVal) String() string {
	return "[" + v.Elem.String() + ": " + valList(v.Values) + "]"
}

func (v CharsVal) String() string  { return "c" + strconv.Quote(string(v)) }
func (v StringVal) String() string { return strconv.Quote(string(v)) }

func (v LocalVal) String() string {
	return fmt.Sprintf("%s: %s", v.Name, v.Type)
}

func (v GlobalVal) String() string {
	return fmt.Sprintf("@%s: %s", v.Name, v.Type)
}

func (v ConstVal) String() string { return "const " + v.Value.String() }

func (v VirtualVal) String() string {
	return "virtual(" + strconv.FormatInt(int64(v), 10) + ")"
}
