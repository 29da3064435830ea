package lir_test

import (
	"errors"
	"reflect"
	"testing"

	"github.com/lumenlang/lumen-ir/lir"
)

// allTypes exercises every Type variant, recursing through composites.
func allTypes() []lir.Type {
	prims := []lir.Type{
		lir.NoneType, lir.VoidType, lir.VarargType, lir.PtrType,
		lir.BoolType, lir.CharType, lir.ByteType, lir.UByteType,
		lir.ShortType, lir.UShortType, lir.IntType, lir.UIntType,
		lir.LongType, lir.ULongType, lir.FloatType, lir.DoubleType,
		lir.NullType, lir.NothingType, lir.VirtualType, lir.UnitType,
	}
	composites := []lir.Type{
		lir.ArrayValueType{Elem: lir.ByteType, N: 16},
		lir.StructValueType{Elems: []lir.Type{lir.IntType, lir.PtrType}},
		lir.FunctionType{Args: []lir.Type{lir.IntType, lir.VarargType}, Ret: lir.UnitType},
		lir.VarType{Elem: lir.LongType},
		lir.ArrayType{Elem: lir.CharType, Nullable: true},
		lir.RefType{Name: lir.Top{ID: "Box"}, Exact: true, Nullable: false},
		lir.RefType{
			Name: lir.Member{Owner: lir.Top{ID: "Box"}, Sig: lir.SigField{ID: "inner"}},
		},
	}
	return append(prims, composites...)
}

// allVals exercises every encodable Val variant except NullVal, whose
// round trip is lossy on purpose.
func allVals() []lir.Val {
	return []lir.Val{
		lir.NoneVal{},
		lir.TrueVal{},
		lir.FalseVal{},
		lir.UnitVal{},
		lir.ZeroVal{Of: lir.IntType},
		lir.UndefVal{Of: lir.PtrType},
		lir.ByteVal(-8),
		lir.ShortVal(-16),
		lir.IntVal(32),
		lir.LongVal(-64),
		lir.FloatVal(2.5),
		lir.DoubleVal(-0.125),
		lir.StructVal{Values: []lir.Val{lir.IntVal(1), lir.TrueVal{}}},
		lir.ArrayVal{Elem: lir.ByteType, Values: []lir.Val{lir.ByteVal(1), lir.ByteVal(2)}},
		lir.CharsVal("c-string"),
		lir.LocalVal{Name: lir.Local(42), Type: lir.IntType},
		lir.GlobalVal{Name: lir.Top{ID: "g"}, Type: lir.PtrType},
		lir.ConstVal{Value: lir.LongVal(7)},
		lir.StringVal("héllo"),
		lir.VirtualVal(1 << 33),
	}
}

func allSigs() []lir.Sig {
	return []lir.Sig{
		lir.SigField{ID: "x"},
		lir.SigCtor{Types: []lir.Type{lir.IntType}},
		lir.SigMethod{ID: "m", Types: []lir.Type{lir.IntType, lir.PtrType}},
		lir.SigProxy{ID: "p", Types: []lir.Type{lir.UnitType}},
		lir.SigExtern{ID: "malloc"},
		lir.SigGenerated{ID: "init"},
		lir.SigDuplicate{Of: lir.SigMethod{ID: "m", Types: nil}, Types: []lir.Type{lir.IntType}},
	}
}

// allOps exercises every Op variant.
func allOps() []lir.Op {
	obj := lir.LocalVal{Name: lir.Local(1), Type: lir.PtrType}
	field := lir.Member{Owner: lir.Top{ID: "Box"}, Sig: lir.SigField{ID: "inner"}}
	return []lir.Op{
		lir.OpCall{
			Type: lir.FunctionType{Args: []lir.Type{lir.IntType}, Ret: lir.IntType},
			Fn:   lir.GlobalVal{Name: lir.Top{ID: "f"}, Type: lir.PtrType},
			Args: []lir.Val{lir.IntVal(1)},
		},
		lir.OpLoad{Type: lir.IntType, Ptr: obj},
		lir.OpStore{Type: lir.IntType, Value: lir.IntVal(3), Ptr: obj},
		lir.OpElem{Type: lir.IntType, Ptr: obj, Indexes: []lir.Val{lir.IntVal(0), lir.IntVal(2)}},
		lir.OpExtract{Aggr: obj, Indexes: []int32{0, 1}},
		lir.OpInsert{Aggr: obj, Value: lir.IntVal(9), Indexes: []int32{2}},
		lir.OpStackalloc{Type: lir.LongType, N: lir.IntVal(4)},
		lir.OpBin{Op: lir.BinXor, Type: lir.IntType, L: lir.IntVal(1), R: lir.IntVal(2)},
		lir.OpComp{Op: lir.CompSle, Type: lir.IntType, L: lir.IntVal(1), R: lir.IntVal(2)},
		lir.OpConv{Op: lir.ConvSext, Type: lir.LongType, Value: lir.IntVal(-1)},
		lir.OpSelect{Cond: lir.TrueVal{}, ThenV: lir.IntVal(1), ElseV: lir.IntVal(2)},
		lir.OpClassalloc{Name: lir.Top{ID: "Box"}},
		lir.OpFieldload{Type: lir.IntType, Obj: obj, Name: field},
		lir.OpFieldstore{Type: lir.IntType, Obj: obj, Name: field, Value: lir.IntVal(5)},
		lir.OpMethod{Obj: obj, Sig: lir.SigMethod{ID: "get", Types: nil}},
		lir.OpDynmethod{Obj: obj, Sig: lir.SigProxy{ID: "call", Types: []lir.Type{lir.IntType}}},
		lir.OpModule{Name: lir.Top{ID: "Main"}},
		lir.OpAs{Type: lir.RefType{Name: lir.Top{ID: "Box"}}, Value: obj},
		lir.OpIs{Type: lir.RefType{Name: lir.Top{ID: "Box"}}, Value: obj},
		lir.OpBox{Type: lir.RefType{Name: lir.Top{ID: "Integer"}}, Value: lir.IntVal(1)},
		lir.OpUnbox{Type: lir.RefType{Name: lir.Top{ID: "Integer"}}, Value: obj},
		lir.OpSizeof{Type: lir.StructValueType{Elems: []lir.Type{lir.IntType}}},
		lir.OpCopy{Value: lir.IntVal(8)},
		lir.OpClosure{
			Type:     lir.FunctionType{Ret: lir.UnitType},
			Fn:       lir.GlobalVal{Name: lir.Top{ID: "fn"}, Type: lir.PtrType},
			Captures: []lir.Val{obj},
		},
		lir.OpVar{Type: lir.IntType},
		lir.OpVarload{Slot: obj},
		lir.OpVarstore{Slot: obj, Value: lir.IntVal(6)},
		lir.OpArrayalloc{Elem: lir.IntType, Init: lir.IntVal(10)},
		lir.OpArrayload{Elem: lir.IntType, Arr: obj, Idx: lir.IntVal(0)},
		lir.OpArraystore{Elem: lir.IntType, Arr: obj, Idx: lir.IntVal(1), Value: lir.IntVal(2)},
		lir.OpArraylength{Arr: obj},
	}
}

func allInsts() []lir.Inst {
	insts := []lir.Inst{
		lir.InstNone{},
		lir.InstLabel{Name: lir.Local(0), Params: []lir.LocalVal{
			{Name: lir.Local(1), Type: lir.IntType},
			{Name: lir.Local(2), Type: lir.PtrType},
		}},
		lir.InstLabel{Name: lir.Local(3)},
	}
	for i, op := range allOps() {
		insts = append(insts, lir.InstLet{
			Name:   lir.Local(int64(100 + i)),
			Op:     op,
			Unwind: lir.NextNone{},
		})
	}
	insts = append(insts,
		lir.InstLet{
			Name:   lir.Local(500),
			Op:     lir.OpCopy{Value: lir.IntVal(1)},
			Unwind: lir.NextUnwind{Name: lir.Local(9)},
		},
		lir.InstUnreachable{},
		lir.InstRet{Value: lir.UnitVal{}},
		lir.InstJump{To: lir.NextLabel{Name: lir.Local(0), Args: []lir.Val{lir.IntVal(1)}}},
		lir.InstIf{
			Cond: lir.TrueVal{},
			Then: lir.NextLabel{Name: lir.Local(1)},
			Else: lir.NextLabel{Name: lir.Local(2)},
		},
		lir.InstSwitch{
			Scrut:   lir.IntVal(0),
			Default: lir.NextLabel{Name: lir.Local(3)},
			Cases: []lir.Next{
				lir.NextCase{Value: lir.IntVal(1), Next: lir.NextLabel{Name: lir.Local(4)}},
			},
		},
		lir.InstThrow{Value: lir.NoneVal{}, Unwind: lir.NextNone{}},
	)
	return insts
}

func fullProgram() []lir.Defn {
	var valElems []lir.Type
	vals := allVals()
	for range vals {
		valElems = append(valElems, lir.PtrType)
	}

	defns := []lir.Defn{
		lir.VarDefn{
			Attrs: lir.Attrs{MayInline: true, Links: []string{"c", "m"}},
			Nm:    lir.Top{ID: "counter"},
			Type:  lir.LongType,
			Value: lir.LongVal(0),
		},
		lir.ConstDefn{
			Nm:    lir.Top{ID: "table"},
			Type:  lir.StructValueType{Elems: valElems},
			Value: lir.StructVal{Values: vals},
		},
		lir.DeclareDefn{
			Attrs: lir.Attrs{Extern: true},
			Nm:    lir.Member{Owner: lir.Top{ID: "libc"}, Sig: lir.SigExtern{ID: "malloc"}},
			Type:  lir.FunctionType{Args: []lir.Type{lir.LongType}, Ret: lir.PtrType},
		},
		lir.DefineDefn{
			Attrs: lir.Attrs{NoInline: true},
			Nm:    lir.Top{ID: "main"},
			Type:  lir.FunctionType{Args: nil, Ret: lir.UnitType},
			Insts: allInsts(),
		},
		lir.TraitDefn{
			Nm:     lir.Top{ID: "Ordered"},
			Ifaces: []lir.Global{lir.Top{ID: "Eq"}},
		},
		lir.ClassDefn{
			Attrs:  lir.Attrs{Dyn: true},
			Nm:     lir.Top{ID: "Box"},
			Parent: lir.Top{ID: "Object"},
			Ifaces: []lir.Global{lir.Top{ID: "Ordered"}},
		},
		lir.ClassDefn{Nm: lir.Top{ID: "Object"}},
		lir.ModuleDefn{
			Attrs:  lir.Attrs{Stub: true},
			Nm:     lir.Top{ID: "Main"},
			Parent: nil,
			Ifaces: nil,
		},
	}

	// One declaration per sig and type shape, so every leaf encoder arm
	// runs through the full pipeline.
	for i, sig := range allSigs() {
		defns = append(defns, lir.DeclareDefn{
			Nm:   lir.Member{Owner: lir.Top{ID: "Shapes"}, Sig: sig},
			Type: allTypes()[i],
		})
	}
	for i, ty := range allTypes() {
		defns = append(defns, lir.VarDefn{
			Nm:    lir.Top{ID: "shape" + string(rune('a'+i))},
			Type:  ty,
			Value: lir.ZeroVal{Of: ty},
		})
	}
	return defns
}

func TestRoundTripFullSurface(t *testing.T) {
	defns := fullProgram()
	if err := lir.Validate(defns); err != nil {
		t.Fatalf("Validate: %v", err)
	}

	data := lir.Serialize(defns)
	back, err := lir.Decode(data)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(back) != len(defns) {
		t.Fatalf("expected %d defns, got %d", len(defns), len(back))
	}
	for i := range defns {
		if !reflect.DeepEqual(back[i], defns[i]) {
			t.Errorf("defn %d mismatch:\n got %#v\nwant %#v", i, back[i], defns[i])
		}
	}
}

func TestRoundTripEmptyDefine(t *testing.T) {
	in := lir.DefineDefn{
		Nm:   lir.Top{ID: "empty"},
		Type: lir.FunctionType{Ret: lir.UnitType},
	}
	back, err := lir.Decode(lir.Serialize([]lir.Defn{in}))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !reflect.DeepEqual(back[0], in) {
		t.Errorf("got %#v", back[0])
	}
}

func TestDecodeBadMagic(t *testing.T) {
	data := lir.Serialize(nil)
	data[0] ^= 0xFF
	if _, err := lir.Decode(data); !errors.Is(err, lir.ErrInvalidMagic) {
		t.Errorf("expected ErrInvalidMagic, got %v", err)
	}
}

func TestDecodeCompatMismatch(t *testing.T) {
	data := lir.Serialize(nil)
	data[7] ^= 0xFF // low byte of the compat word
	if _, err := lir.Decode(data); !errors.Is(err, lir.ErrCompatMismatch) {
		t.Errorf("expected ErrCompatMismatch, got %v", err)
	}
}

func TestDecodeTruncated(t *testing.T) {
	data := lir.Serialize([]lir.Defn{
		lir.ConstDefn{Nm: lir.Top{ID: "c"}, Type: lir.IntType, Value: lir.IntVal(1)},
	})
	for _, cut := range []int{0, 3, 11, 15, len(data) - 1} {
		if _, err := lir.Decode(data[:cut]); err == nil {
			t.Errorf("cut at %d: expected error", cut)
		}
	}
}

func TestDecodeUnknownTag(t *testing.T) {
	data := lir.Serialize([]lir.Defn{lir.TraitDefn{Nm: lir.Top{ID: "t"}}})
	entries, err := lir.ReadIndex(data)
	if err != nil {
		t.Fatalf("ReadIndex: %v", err)
	}
	// Stomp the defn tag with a value no group owns.
	off := entries[0].Offset
	data[off] = 0x7F
	data[off+1] = 0xFF
	if _, err := lir.Decode(data); err == nil {
		t.Error("expected invalid tag error")
	}
}

func TestDecodeDefnAtOutOfBounds(t *testing.T) {
	data := lir.Serialize(nil)
	if _, err := lir.DecodeDefnAt(data, int32(len(data)+10)); err == nil {
		t.Error("expected out of bounds error")
	}
	if _, err := lir.DecodeDefnAt(data, -1); err == nil {
		t.Error("expected out of bounds error for negative offset")
	}
}

func TestDecodeImplausibleCount(t *testing.T) {
	// An index count far larger than the buffer must fail fast instead
	// of allocating.
	data := lir.Serialize(nil)
	data[12] = 0x7F // count becomes 0x7F000000
	if _, err := lir.Decode(data); err == nil {
		t.Error("expected implausible length error")
	}
}
