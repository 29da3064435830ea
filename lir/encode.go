package lir

import (
	"fmt"

	"github.com/lumenlang/lumen-ir/internal/binary"
)

// Serialize encodes an ordered definition sequence to the binary format.
//
// The layout is header, name index, then definition payloads. The index is
// written first with zero placeholders for the payload offsets; once the
// payloads are out, the encoder seeks back and patches each slot with the
// absolute offset of its payload, then restores the cursor to the end of
// the buffer.
//
// Serialize does not validate the input beyond the serialization
// preconditions: a volatile load or store, a Member whose owner is not a
// Top, and a Succ or Fail successor all panic. Run Validate first to get
// errors instead.
func Serialize(defns []Defn) []byte {
	w := binary.NewWriter()

	w.WriteI32(Magic)
	w.WriteI32(CompatVersion)
	w.WriteI32(Revision)

	// Name index: per entry, the definition's global name followed by a
	// placeholder offset slot to be patched once payloads are placed.
	slots := make([]int, len(defns))
	w.WriteI32(int32(len(defns)))
	for i, d := range defns {
		writeGlobal(w, d.Name())
		slots[i] = w.Position()
		w.WriteI32(0)
	}

	offsets := make([]int32, len(defns))
	for i, d := range defns {
		offsets[i] = int32(w.Position())
		writeDefn(w, d)
	}

	end := w.Position()
	for i, slot := range slots {
		w.Seek(slot)
		w.WriteI32(offsets[i])
	}
	w.Seek(end)

	return w.Bytes()
}

func writeDefn(w *binary.Writer, d Defn) {
	switch d := d.(type) {
	case VarDefn:
		w.WriteI32(TagVarDefn)
		writeAttrs(w, d.Attrs)
		writeGlobal(w, d.Nm)
		writeType(w, d.Type)
		writeVal(w, d.Value)
	case ConstDefn:
		w.WriteI32(TagConstDefn)
		writeAttrs(w, d.Attrs)
		writeGlobal(w, d.Nm)
		writeType(w, d.Type)
		writeVal(w, d.Value)
	case DeclareDefn:
		w.WriteI32(TagDeclareDefn)
		writeAttrs(w, d.Attrs)
		writeGlobal(w, d.Nm)
		writeType(w, d.Type)
	case DefineDefn:
		w.WriteI32(TagDefineDefn)
		writeAttrs(w, d.Attrs)
		writeGlobal(w, d.Nm)
		writeType(w, d.Type)
		writeInsts(w, d.Insts)
	case TraitDefn:
		w.WriteI32(TagTraitDefn)
		writeAttrs(w, d.Attrs)
		writeGlobal(w, d.Nm)
		writeGlobals(w, d.Ifaces)
	case ClassDefn:
		w.WriteI32(TagClassDefn)
		writeAttrs(w, d.Attrs)
		writeGlobal(w, d.Nm)
		writeGlobalOpt(w, d.Parent)
		writeGlobals(w, d.Ifaces)
	case ModuleDefn:
		w.WriteI32(TagModuleDefn)
		writeAttrs(w, d.Attrs)
		writeGlobal(w, d.Nm)
		writeGlobalOpt(w, d.Parent)
		writeGlobals(w, d.Ifaces)
	default:
		panic(fmt.Sprintf("lir: unknown defn %T", d))
	}
}

// writeAttrs emits the attribute set as a sequence. Set members go out in
// declaration order, links last, so equal inputs always produce identical
// bytes.
func writeAttrs(w *binary.Writer, a Attrs) {
	w.WriteI32(a.count())
	if a.MayInline {
		w.WriteI32(TagMayInlineAttr)
	}
	if a.InlineHint {
		w.WriteI32(TagInlineHintAttr)
	}
	if a.NoInline {
		w.WriteI32(TagNoInlineAttr)
	}
	if a.AlwaysInline {
		w.WriteI32(TagAlwaysInlineAttr)
	}
	if a.Dyn {
		w.WriteI32(TagDynAttr)
	}
	if a.Stub {
		w.WriteI32(TagStubAttr)
	}
	if a.Extern {
		w.WriteI32(TagExternAttr)
	}
	for _, link := range a.Links {
		w.WriteI32(TagLinkAttr)
		w.WriteName(link)
	}
}

func writeGlobal(w *binary.Writer, g Global) {
	switch g := g.(type) {
	case GlobalNone:
		w.WriteI32(TagNoneGlobal)
	case Top:
		w.WriteI32(TagTopGlobal)
		w.WriteName(g.ID)
	case Member:
		owner, ok := g.Owner.(Top)
		if !ok {
			panic(fmt.Sprintf("lir: member owner must be a top-level name, got %T", g.Owner))
		}
		w.WriteI32(TagMemberGlobal)
		w.WriteName(owner.ID)
		writeSig(w, g.Sig)
	default:
		panic(fmt.Sprintf("lir: unknown global %T", g))
	}
}

// writeGlobalOpt emits an optional global: a presence byte, then the global
// if present.
func writeGlobalOpt(w *binary.Writer, g Global) {
	if g == nil {
		w.WriteBool(false)
		return
	}
	w.WriteBool(true)
	writeGlobal(w, g)
}

func writeGlobals(w *binary.Writer, gs []Global) {
	w.WriteI32(int32(len(gs)))
	for _, g := range gs {
		writeGlobal(w, g)
	}
}

func writeSig(w *binary.Writer, s Sig) {
	switch s := s.(type) {
	case SigField:
		w.WriteI32(TagFieldSig)
		w.WriteName(s.ID)
	case SigCtor:
		w.WriteI32(TagCtorSig)
		writeTypes(w, s.Types)
	case SigMethod:
		w.WriteI32(TagMethodSig)
		w.WriteName(s.ID)
		writeTypes(w, s.Types)
	case SigProxy:
		w.WriteI32(TagProxySig)
		w.WriteName(s.ID)
		writeTypes(w, s.Types)
	case SigExtern:
		w.WriteI32(TagExternSig)
		w.WriteName(s.ID)
	case SigGenerated:
		w.WriteI32(TagGeneratedSig)
		w.WriteName(s.ID)
	case SigDuplicate:
		w.WriteI32(TagDuplicateSig)
		writeSig(w, s.Of)
		writeTypes(w, s.Types)
	default:
		panic(fmt.Sprintf("lir: unknown sig %T", s))
	}
}

func writeLocal(w *binary.Writer, l Local) {
	w.WriteI64(int64(l))
}

func writeType(w *binary.Writer, t Type) {
	switch t := t.(type) {
	case PrimType:
		if t < 0 || int32(t) >= numPrimTypes {
			panic(fmt.Sprintf("lir: unknown primitive type %d", t))
		}
		w.WriteI32(typeBase + int32(t))
	case ArrayValueType:
		w.WriteI32(TagArrayValueType)
		writeType(w, t.Elem)
		w.WriteI32(t.N)
	case StructValueType:
		w.WriteI32(TagStructValueType)
		writeTypes(w, t.Elems)
	case FunctionType:
		w.WriteI32(TagFunctionType)
		writeTypes(w, t.Args)
		writeType(w, t.Ret)
	case VarType:
		w.WriteI32(TagVarType)
		writeType(w, t.Elem)
	case ArrayType:
		w.WriteI32(TagArrayType)
		writeType(w, t.Elem)
		w.WriteBool(t.Nullable)
	case RefType:
		w.WriteI32(TagRefType)
		writeGlobal(w, t.Name)
		w.WriteBool(t.Exact)
		w.WriteBool(t.Nullable)
	default:
		panic(fmt.Sprintf("lir: unknown type %T", t))
	}
}

func writeTypes(w *binary.Writer, ts []Type) {
	w.WriteI32(int32(len(ts)))
	for _, t := range ts {
		writeType(w, t)
	}
}

func writeVal(w *binary.Writer, v Val) {
	switch v := v.(type) {
	case NoneVal:
		w.WriteI32(TagNoneVal)
	case TrueVal:
		w.WriteI32(TagTrueVal)
	case FalseVal:
		w.WriteI32(TagFalseVal)
	case NullVal:
		// Null has no tag in this revision; it rides on Zero of ptr and
		// decodes as ZeroVal{PtrType}.
		w.WriteI32(TagZeroVal)
		writeType(w, PtrType)
	case UnitVal:
		w.WriteI32(TagUnitVal)
	case ZeroVal:
		w.WriteI32(TagZeroVal)
		writeType(w, v.Of)
	case UndefVal:
		w.WriteI32(TagUndefVal)
		writeType(w, v.Of)
	case ByteVal:
		w.WriteI32(TagByteVal)
		w.Byte(byte(v))
	case ShortVal:
		w.WriteI32(TagShortVal)
		w.WriteI16(int16(v))
	case IntVal:
		w.WriteI32(TagIntVal)
		w.WriteI32(int32(v))
	case LongVal:
		w.WriteI32(TagLongVal)
		w.WriteI64(int64(v))
	case FloatVal:
		w.WriteI32(TagFloatVal)
		w.WriteF32(float32(v))
	case DoubleVal:
		w.WriteI32(TagDoubleVal)
		w.WriteF64(float64(v))
	case StructVal:
		w.WriteI32(TagStructVal)
		writeVals(w, v.Values)
	case ArrayVal:
		w.WriteI32(TagArrayVal)
		writeType(w, v.Elem)
		writeVals(w, v.Values)
	case CharsVal:
		w.WriteI32(TagCharsVal)
		w.WriteName(string(v))
	case LocalVal:
		w.WriteI32(TagLocalVal)
		writeLocal(w, v.Name)
		writeType(w, v.Type)
	case GlobalVal:
		w.WriteI32(TagGlobalVal)
		writeGlobal(w, v.Name)
		writeType(w, v.Type)
	case ConstVal:
		w.WriteI32(TagConstVal)
		writeVal(w, v.Value)
	case StringVal:
		w.WriteI32(TagStringVal)
		w.WriteName(string(v))
	case VirtualVal:
		w.WriteI32(TagVirtualVal)
		w.WriteI64(int64(v))
	default:
		panic(fmt.Sprintf("lir: unknown val %T", v))
	}
}

func writeVals(w *binary.Writer, vs []Val) {
	w.WriteI32(int32(len(vs)))
	for _, v := range vs {
		writeVal(w, v)
	}
}

func writeInsts(w *binary.Writer, insts []Inst) {
	w.WriteI32(int32(len(insts)))
	for _, inst := range insts {
		writeInst(w, inst)
	}
}

func writeInst(w *binary.Writer, inst Inst) {
	switch inst := inst.(type) {
	case InstNone:
		w.WriteI32(TagNoneInst)
	case InstLabel:
		w.WriteI32(TagLabelInst)
		writeLocal(w, inst.Name)
		w.WriteI32(int32(len(inst.Params)))
		for _, p := range inst.Params {
			writeVal(w, p)
		}
	case InstLet:
		if isNoneNext(inst.Unwind) {
			w.WriteI32(TagLetInst)
			writeLocal(w, inst.Name)
			writeOp(w, inst.Op)
		} else {
			w.WriteI32(TagLetUnwindInst)
			writeLocal(w, inst.Name)
			writeOp(w, inst.Op)
			writeNext(w, inst.Unwind)
		}
	case InstUnreachable:
		w.WriteI32(TagUnreachableInst)
	case InstRet:
		w.WriteI32(TagRetInst)
		writeVal(w, inst.Value)
	case InstJump:
		w.WriteI32(TagJumpInst)
		writeNext(w, inst.To)
	case InstIf:
		w.WriteI32(TagIfInst)
		writeVal(w, inst.Cond)
		writeNext(w, inst.Then)
		writeNext(w, inst.Else)
	case InstSwitch:
		w.WriteI32(TagSwitchInst)
		writeVal(w, inst.Scrut)
		writeNext(w, inst.Default)
		writeNexts(w, inst.Cases)
	case InstThrow:
		w.WriteI32(TagThrowInst)
		writeVal(w, inst.Value)
		writeNext(w, inst.Unwind)
	default:
		panic(fmt.Sprintf("lir: unknown inst %T", inst))
	}
}

func writeNext(w *binary.Writer, n Next) {
	if n == nil {
		n = NextNone{}
	}
	switch n := n.(type) {
	case NextNone:
		w.WriteI32(TagNoneNext)
	case NextUnwind:
		w.WriteI32(TagUnwindNext)
		writeLocal(w, n.Name)
	case NextLabel:
		w.WriteI32(TagLabelNext)
		writeLocal(w, n.Name)
		writeVals(w, n.Args)
	case NextCase:
		w.WriteI32(TagCaseNext)
		writeVal(w, n.Value)
		writeNext(w, n.Next)
	case NextSucc, NextFail:
		// No tags exist for these in the current revision; encoding one
		// would produce a stream no decoder agrees on.
		panic(fmt.Sprintf("lir: %T has no wire representation in revision %d", n, Revision))
	default:
		panic(fmt.Sprintf("lir: unknown next %T", n))
	}
}

func writeNexts(w *binary.Writer, ns []Next) {
	w.WriteI32(int32(len(ns)))
	for _, n := range ns {
		writeNext(w, n)
	}
}

func writeOp(w *binary.Writer, op Op) {
	switch op := op.(type) {
	case OpCall:
		w.WriteI32(TagCallOp)
		writeType(w, op.Type)
		writeVal(w, op.Fn)
		writeVals(w, op.Args)
	case OpLoad:
		if op.Volatile {
			panic("lir: volatile load cannot be serialized")
		}
		w.WriteI32(TagLoadOp)
		writeType(w, op.Type)
		writeVal(w, op.Ptr)
	case OpStore:
		if op.Volatile {
			panic("lir: volatile store cannot be serialized")
		}
		w.WriteI32(TagStoreOp)
		writeType(w, op.Type)
		writeVal(w, op.Value)
		writeVal(w, op.Ptr)
	case OpElem:
		w.WriteI32(TagElemOp)
		writeType(w, op.Type)
		writeVal(w, op.Ptr)
		writeVals(w, op.Indexes)
	case OpExtract:
		w.WriteI32(TagExtractOp)
		writeVal(w, op.Aggr)
		writeInts(w, op.Indexes)
	case OpInsert:
		w.WriteI32(TagInsertOp)
		writeVal(w, op.Aggr)
		writeVal(w, op.Value)
		writeInts(w, op.Indexes)
	case OpStackalloc:
		w.WriteI32(TagStackallocOp)
		writeType(w, op.Type)
		writeVal(w, op.N)
	case OpBin:
		if op.Op < 0 || int32(op.Op) >= numBins {
			panic(fmt.Sprintf("lir: unknown bin kind %d", op.Op))
		}
		w.WriteI32(TagBinOp)
		w.WriteI32(binBase + int32(op.Op))
		writeType(w, op.Type)
		writeVal(w, op.L)
		writeVal(w, op.R)
	case OpComp:
		if op.Op < 0 || int32(op.Op) >= numComps {
			panic(fmt.Sprintf("lir: unknown comp kind %d", op.Op))
		}
		w.WriteI32(TagCompOp)
		w.WriteI32(compBase + int32(op.Op))
		writeType(w, op.Type)
		writeVal(w, op.L)
		writeVal(w, op.R)
	case OpConv:
		if op.Op < 0 || int32(op.Op) >= numConvs {
			panic(fmt.Sprintf("lir: unknown conv kind %d", op.Op))
		}
		w.WriteI32(TagConvOp)
		w.WriteI32(convBase + int32(op.Op))
		writeType(w, op.Type)
		writeVal(w, op.Value)
	case OpSelect:
		w.WriteI32(TagSelectOp)
		writeVal(w, op.Cond)
		writeVal(w, op.ThenV)
		writeVal(w, op.ElseV)
	case OpClassalloc:
		w.WriteI32(TagClassallocOp)
		writeGlobal(w, op.Name)
	case OpFieldload:
		w.WriteI32(TagFieldloadOp)
		writeType(w, op.Type)
		writeVal(w, op.Obj)
		writeGlobal(w, op.Name)
	case OpFieldstore:
		w.WriteI32(TagFieldstoreOp)
		writeType(w, op.Type)
		writeVal(w, op.Obj)
		writeGlobal(w, op.Name)
		writeVal(w, op.Value)
	case OpMethod:
		w.WriteI32(TagMethodOp)
		writeVal(w, op.Obj)
		writeSig(w, op.Sig)
	case OpDynmethod:
		w.WriteI32(TagDynmethodOp)
		writeVal(w, op.Obj)
		writeSig(w, op.Sig)
	case OpModule:
		w.WriteI32(TagModuleOp)
		writeGlobal(w, op.Name)
	case OpAs:
		w.WriteI32(TagAsOp)
		writeType(w, op.Type)
		writeVal(w, op.Value)
	case OpIs:
		w.WriteI32(TagIsOp)
		writeType(w, op.Type)
		writeVal(w, op.Value)
	case OpBox:
		w.WriteI32(TagBoxOp)
		writeType(w, op.Type)
		writeVal(w, op.Value)
	case OpUnbox:
		w.WriteI32(TagUnboxOp)
		writeType(w, op.Type)
		writeVal(w, op.Value)
	case OpSizeof:
		w.WriteI32(TagSizeofOp)
		writeType(w, op.Type)
	case OpCopy:
		w.WriteI32(TagCopyOp)
		writeVal(w, op.Value)
	case OpClosure:
		w.WriteI32(TagClosureOp)
		writeType(w, op.Type)
		writeVal(w, op.Fn)
		writeVals(w, op.Captures)
	case OpVar:
		w.WriteI32(TagVarOp)
		writeType(w, op.Type)
	case OpVarload:
		w.WriteI32(TagVarloadOp)
		writeVal(w, op.Slot)
	case OpVarstore:
		w.WriteI32(TagVarstoreOp)
		writeVal(w, op.Slot)
		writeVal(w, op.Value)
	case OpArrayalloc:
		w.WriteI32(TagArrayallocOp)
		writeType(w, op.Elem)
		writeVal(w, op.Init)
	case OpArrayload:
		w.WriteI32(TagArrayloadOp)
		writeType(w, op.Elem)
		writeVal(w, op.Arr)
		writeVal(w, op.Idx)
	case OpArraystore:
		w.WriteI32(TagArraystoreOp)
		writeType(w, op.Elem)
		writeVal(w, op.Arr)
		writeVal(w, op.Idx)
		writeVal(w, op.Value)
	case OpArraylength:
		w.WriteI32(TagArraylengthOp)
		writeVal(w, op.Arr)
	default:
		panic(fmt.Sprintf("lir: unknown op %T", op))
	}
}

func writeInts(w *binary.Writer, ns []int32) {
	w.WriteI32(int32(len(ns)))
	for _, n := range ns {
		w.WriteI32(n)
	}
}
