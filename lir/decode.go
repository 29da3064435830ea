package lir

import (
	stderrors "errors"
	"strconv"

	"github.com/lumenlang/lumen-ir/errors"
	"github.com/lumenlang/lumen-ir/internal/binary"
)

// Header errors returned by Decode and the index reader.
var (
	ErrInvalidMagic   = stderrors.New("invalid IR magic number")
	ErrCompatMismatch = stderrors.New("incompatible IR format version")
)

// IndexEntry pairs a definition's global name with the absolute byte
// offset of its payload.
type IndexEntry struct {
	Name   Global
	Offset int32
}

// Decode decodes a full serialized definition sequence.
func Decode(data []byte) ([]Defn, error) {
	d := &decoder{r: binary.NewReader(data)}

	entries, err := d.index()
	if err != nil {
		return nil, err
	}

	defns := make([]Defn, len(entries))
	for i, e := range entries {
		// The nth index offset must point at the nth payload.
		if int(e.Offset) != d.r.Position() {
			return nil, errors.New(errors.PhaseDecode, errors.KindInvalidData).
				Path("index", strconv.Itoa(i)).
				Offset(int64(d.r.Position())).
				Detail("index offset %d does not match payload position %d", e.Offset, d.r.Position()).
				Build()
		}
		d.path = []string{"defns", strconv.Itoa(i)}
		defn, err := d.defn()
		if err != nil {
			return nil, err
		}
		defns[i] = defn
	}
	return defns, nil
}

// ReadIndex checks the header and decodes only the name index, leaving the
// definition payloads untouched.
func ReadIndex(data []byte) ([]IndexEntry, error) {
	d := &decoder{r: binary.NewReader(data)}
	return d.index()
}

// DecodeDefnAt decodes a single definition starting at the given payload
// offset, as recorded in the name index.
func DecodeDefnAt(data []byte, offset int32) (Defn, error) {
	if offset < 0 || int(offset) >= len(data) {
		return nil, errors.OutOfBounds(errors.PhaseDecode, int64(offset), len(data))
	}
	d := &decoder{r: binary.NewReader(data), path: []string{"defn"}}
	if err := d.r.Seek(int(offset)); err != nil {
		return nil, errors.OutOfBounds(errors.PhaseDecode, int64(offset), len(data))
	}
	return d.defn()
}

type decoder struct {
	r    *binary.Reader
	path []string
}

func (d *decoder) fail(cause error) error {
	return errors.Truncated(errors.PhaseDecode, d.path, int64(d.r.Position()), cause)
}

func (d *decoder) badTag(group string, tag int32) error {
	return errors.InvalidTag(errors.PhaseDecode, d.path, group, tag, int64(d.r.Position()))
}

func (d *decoder) tag() (int32, error) {
	t, err := d.r.ReadI32()
	if err != nil {
		return 0, d.fail(err)
	}
	return t, nil
}

// count reads a sequence length prefix and sanity-checks it against the
// remaining input so a corrupt stream cannot provoke a huge allocation.
func (d *decoder) count() (int, error) {
	n, err := d.r.ReadI32()
	if err != nil {
		return 0, d.fail(err)
	}
	if n < 0 || int(n) > d.r.Remaining() {
		return 0, errors.New(errors.PhaseDecode, errors.KindInvalidData).
			Path(d.path...).
			Offset(int64(d.r.Position())).
			Detail("implausible sequence length %d", n).
			Build()
	}
	return int(n), nil
}

func (d *decoder) name() (string, error) {
	s, err := d.r.ReadName()
	if err != nil {
		if stderrors.Is(err, binary.ErrInvalidUTF8) {
			return "", errors.New(errors.PhaseDecode, errors.KindInvalidUTF8).
				Path(d.path...).
				Offset(int64(d.r.Position())).
				Detail("name is not valid UTF-8").
				Build()
		}
		return "", d.fail(err)
	}
	return s, nil
}

func (d *decoder) index() ([]IndexEntry, error) {
	d.path = []string{"header"}

	magic, err := d.r.ReadI32()
	if err != nil {
		return nil, d.fail(err)
	}
	if magic != Magic {
		return nil, errors.Wrap(errors.PhaseDecode, errors.KindInvalidMagic, ErrInvalidMagic, "bad magic word")
	}
	compat, err := d.r.ReadI32()
	if err != nil {
		return nil, d.fail(err)
	}
	if compat != CompatVersion {
		return nil, errors.Wrap(errors.PhaseDecode, errors.KindCompatMismatch, ErrCompatMismatch, "unsupported compat version")
	}
	if _, err := d.r.ReadI32(); err != nil { // revision, informational
		return nil, d.fail(err)
	}

	d.path = []string{"index"}
	n, err := d.count()
	if err != nil {
		return nil, err
	}
	entries := make([]IndexEntry, n)
	for i := range entries {
		d.path = []string{"index", strconv.Itoa(i)}
		g, err := d.global()
		if err != nil {
			return nil, err
		}
		off, err := d.r.ReadI32()
		if err != nil {
			return nil, d.fail(err)
		}
		entries[i] = IndexEntry{Name: g, Offset: off}
	}
	return entries, nil
}

func (d *decoder) defn() (Defn, error) {
	tag, err := d.tag()
	if err != nil {
		return nil, err
	}
	switch tag {
	case TagVarDefn:
		attrs, err := d.attrs()
		if err != nil {
			return nil, err
		}
		name, err := d.global()
		if err != nil {
			return nil, err
		}
		ty, err := d.typ()
		if err != nil {
			return nil, err
		}
		v, err := d.val()
		if err != nil {
			return nil, err
		}
		return VarDefn{Attrs: attrs, Nm: name, Type: ty, Value: v}, nil
	case TagConstDefn:
		attrs, err := d.attrs()
		if err != nil {
			return nil, err
		}
		name, err := d.global()
		if err != nil {
			return nil, err
		}
		ty, err := d.typ()
		if err != nil {
			return nil, err
		}
		v, err := d.val()
		if err != nil {
			return nil, err
		}
		return ConstDefn{Attrs: attrs, Nm: name, Type: ty, Value: v}, nil
	case TagDeclareDefn:
		attrs, err := d.attrs()
		if err != nil {
			return nil, err
		}
		name, err := d.global()
		if err != nil {
			return nil, err
		}
		ty, err := d.typ()
		if err != nil {
			return nil, err
		}
		return DeclareDefn{Attrs: attrs, Nm: name, Type: ty}, nil
	case TagDefineDefn:
		attrs, err := d.attrs()
		if err != nil {
			return nil, err
		}
		name, err := d.global()
		if err != nil {
			return nil, err
		}
		ty, err := d.typ()
		if err != nil {
			return nil, err
		}
		insts, err := d.insts()
		if err != nil {
			return nil, err
		}
		return DefineDefn{Attrs: attrs, Nm: name, Type: ty, Insts: insts}, nil
	case TagTraitDefn:
		attrs, err := d.attrs()
		if err != nil {
			return nil, err
		}
		name, err := d.global()
		if err != nil {
			return nil, err
		}
		ifaces, err := d.globals()
		if err != nil {
			return nil, err
		}
		return TraitDefn{Attrs: attrs, Nm: name, Ifaces: ifaces}, nil
	case TagClassDefn:
		attrs, err := d.attrs()
		if err != nil {
			return nil, err
		}
		name, err := d.global()
		if err != nil {
			return nil, err
		}
		parent, err := d.globalOpt()
		if err != nil {
			return nil, err
		}
		ifaces, err := d.globals()
		if err != nil {
			return nil, err
		}
		return ClassDefn{Attrs: attrs, Nm: name, Parent: parent, Ifaces: ifaces}, nil
	case TagModuleDefn:
		attrs, err := d.attrs()
		if err != nil {
			return nil, err
		}
		name, err := d.global()
		if err != nil {
			return nil, err
		}
		parent, err := d.globalOpt()
		if err != nil {
			return nil, err
		}
		ifaces, err := d.globals()
		if err != nil {
			return nil, err
		}
		return ModuleDefn{Attrs: attrs, Nm: name, Parent: parent, Ifaces: ifaces}, nil
	default:
		return nil, d.badTag("defn", tag)
	}
}

func (d *decoder) attrs() (Attrs, error) {
	var a Attrs
	n, err := d.count()
	if err != nil {
		return a, err
	}
	for i := 0; i < n; i++ {
		tag, err := d.tag()
		if err != nil {
			return a, err
		}
		switch tag {
		case TagMayInlineAttr:
			a.MayInline = true
		case TagInlineHintAttr:
			a.InlineHint = true
		case TagNoInlineAttr:
			a.NoInline = true
		case TagAlwaysInlineAttr:
			a.AlwaysInline = true
		case TagDynAttr:
			a.Dyn = true
		case TagStubAttr:
			a.Stub = true
		case TagExternAttr:
			a.Extern = true
		case TagLinkAttr:
			link, err := d.name()
			if err != nil {
				return a, err
			}
			a.Links = append(a.Links, link)
		default:
			return a, d.badTag("attr", tag)
		}
	}
	return a, nil
}

func (d *decoder) global() (Global, error) {
	tag, err := d.tag()
	if err != nil {
		return nil, err
	}
	switch tag {
	case TagNoneGlobal:
		return GlobalNone{}, nil
	case TagTopGlobal:
		id, err := d.name()
		if err != nil {
			return nil, err
		}
		return Top{ID: id}, nil
	case TagMemberGlobal:
		owner, err := d.name()
		if err != nil {
			return nil, err
		}
		sig, err := d.sig()
		if err != nil {
			return nil, err
		}
		return Member{Owner: Top{ID: owner}, Sig: sig}, nil
	default:
		return nil, d.badTag("global", tag)
	}
}

func (d *decoder) globalOpt() (Global, error) {
	present, err := d.r.ReadBool()
	if err != nil {
		return nil, d.fail(err)
	}
	if !present {
		return nil, nil
	}
	return d.global()
}

func (d *decoder) globals() ([]Global, error) {
	n, err := d.count()
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, nil
	}
	gs := make([]Global, n)
	for i := range gs {
		if gs[i], err = d.global(); err != nil {
			return nil, err
		}
	}
	return gs, nil
}

func (d *decoder) sig() (Sig, error) {
	tag, err := d.tag()
	if err != nil {
		return nil, err
	}
	switch tag {
	case TagFieldSig:
		id, err := d.name()
		if err != nil {
			return nil, err
		}
		return SigField{ID: id}, nil
	case TagCtorSig:
		types, err := d.types()
		if err != nil {
			return nil, err
		}
		return SigCtor{Types: types}, nil
	case TagMethodSig:
		id, err := d.name()
		if err != nil {
			return nil, err
		}
		types, err := d.types()
		if err != nil {
			return nil, err
		}
		return SigMethod{ID: id, Types: types}, nil
	case TagProxySig:
		id, err := d.name()
		if err != nil {
			return nil, err
		}
		types, err := d.types()
		if err != nil {
			return nil, err
		}
		return SigProxy{ID: id, Types: types}, nil
	case TagExternSig:
		id, err := d.name()
		if err != nil {
			return nil, err
		}
		return SigExtern{ID: id}, nil
	case TagGeneratedSig:
		id, err := d.name()
		if err != nil {
			return nil, err
		}
		return SigGenerated{ID: id}, nil
	case TagDuplicateSig:
		of, err := d.sig()
		if err != nil {
			return nil, err
		}
		types, err := d.types()
		if err != nil {
			return nil, err
		}
		return SigDuplicate{Of: of, Types: types}, nil
	default:
		return nil, d.badTag("sig", tag)
	}
}

func (d *decoder) local() (Local, error) {
	id, err := d.r.ReadI64()
	if err != nil {
		return 0, d.fail(err)
	}
	return Local(id), nil
}

func (d *decoder) typ() (Type, error) {
	tag, err := d.tag()
	if err != nil {
		return nil, err
	}
	if tag >= typeBase && tag < typeBase+numPrimTypes {
		return PrimType(tag - typeBase), nil
	}
	switch tag {
	case TagArrayValueType:
		elem, err := d.typ()
		if err != nil {
			return nil, err
		}
		n, err := d.r.ReadI32()
		if err != nil {
			return nil, d.fail(err)
		}
		return ArrayValueType{Elem: elem, N: n}, nil
	case TagStructValueType:
		elems, err := d.types()
		if err != nil {
			return nil, err
		}
		return StructValueType{Elems: elems}, nil
	case TagFunctionType:
		args, err := d.types()
		if err != nil {
			return nil, err
		}
		ret, err := d.typ()
		if err != nil {
			return nil, err
		}
		return FunctionType{Args: args, Ret: ret}, nil
	case TagVarType:
		elem, err := d.typ()
		if err != nil {
			return nil, err
		}
		return VarType{Elem: elem}, nil
	case TagArrayType:
		elem, err := d.typ()
		if err != nil {
			return nil, err
		}
		nullable, err := d.r.ReadBool()
		if err != nil {
			return nil, d.fail(err)
		}
		return ArrayType{Elem: elem, Nullable: nullable}, nil
	case TagRefType:
		name, err := d.global()
		if err != nil {
			return nil, err
		}
		exact, err := d.r.ReadBool()
		if err != nil {
			return nil, d.fail(err)
		}
		nullable, err := d.r.ReadBool()
		if err != nil {
			return nil, d.fail(err)
		}
		return RefType{Name: name, Exact: exact, Nullable: nullable}, nil
	default:
		return nil, d.badTag("type", tag)
	}
}

func (d *decoder) types() ([]Type, error) {
	n, err := d.count()
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, nil
	}
	ts := make([]Type, n)
	for i := range ts {
		if ts[i], err = d.typ(); err != nil {
			return nil, err
		}
	}
	return ts, nil
}

func (d *decoder) val() (Val, error) {
	tag, err := d.tag()
	if err != nil {
		return nil, err
	}
	switch tag {
	case TagNoneVal:
		return NoneVal{}, nil
	case TagTrueVal:
		return TrueVal{}, nil
	case TagFalseVal:
		return FalseVal{}, nil
	case TagUnitVal:
		return UnitVal{}, nil
	case TagZeroVal:
		// NullVal is an alias of zero-of-ptr on the wire; it always
		// decodes as ZeroVal{PtrType}.
		ty, err := d.typ()
		if err != nil {
			return nil, err
		}
		return ZeroVal{Of: ty}, nil
	case TagUndefVal:
		ty, err := d.typ()
		if err != nil {
			return nil, err
		}
		return UndefVal{Of: ty}, nil
	case TagByteVal:
		b, err := d.r.ReadByte()
		if err != nil {
			return nil, d.fail(err)
		}
		return ByteVal(int8(b)), nil
	case TagShortVal:
		v, err := d.r.ReadI16()
		if err != nil {
			return nil, d.fail(err)
		}
		return ShortVal(v), nil
	case TagIntVal:
		v, err := d.r.ReadI32()
		if err != nil {
			return nil, d.fail(err)
		}
		return IntVal(v), nil
	case TagLongVal:
		v, err := d.r.ReadI64()
		if err != nil {
			return nil, d.fail(err)
		}
		return LongVal(v), nil
	case TagFloatVal:
		v, err := d.r.ReadF32()
		if err != nil {
			return nil, d.fail(err)
		}
		return FloatVal(v), nil
	case TagDoubleVal:
		v, err := d.r.ReadF64()
		if err != nil {
			return nil, d.fail(err)
		}
		return DoubleVal(v), nil
	case TagStructVal:
		vs, err := d.vals()
		if err != nil {
			return nil, err
		}
		return StructVal{Values: vs}, nil
	case TagArrayVal:
		elem, err := d.typ()
		if err != nil {
			return nil, err
		}
		vs, err := d.vals()
		if err != nil {
			return nil, err
		}
		return ArrayVal{Elem: elem, Values: vs}, nil
	case TagCharsVal:
		s, err := d.name()
		if err != nil {
			return nil, err
		}
		return CharsVal(s), nil
	case TagLocalVal:
		name, err := d.local()
		if err != nil {
			return nil, err
		}
		ty, err := d.typ()
		if err != nil {
			return nil, err
		}
		return LocalVal{Name: name, Type: ty}, nil
	case TagGlobalVal:
		name, err := d.global()
		if err != nil {
			return nil, err
		}
		ty, err := d.typ()
		if err != nil {
			return nil, err
		}
		return GlobalVal{Name: name, Type: ty}, nil
	case TagConstVal:
		v, err := d.val()
		if err != nil {
			return nil, err
		}
		return ConstVal{Value: v}, nil
	case TagStringVal:
		s, err := d.name()
		if err != nil {
			return nil, err
		}
		return StringVal(s), nil
	case TagVirtualVal:
		v, err := d.r.ReadI64()
		if err != nil {
			return nil, d.fail(err)
		}
		return VirtualVal(v), nil
	default:
		return nil, d.badTag("val", tag)
	}
}

func (d *decoder) vals() ([]Val, error) {
	n, err := d.count()
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, nil
	}
	vs := make([]Val, n)
	for i := range vs {
		if vs[i], err = d.val(); err != nil {
			return nil, err
		}
	}
	return vs, nil
}

func (d *decoder) insts() ([]Inst, error) {
	n, err := d.count()
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, nil
	}
	insts := make([]Inst, n)
	for i := range insts {
		if insts[i], err = d.inst(); err != nil {
			return nil, err
		}
	}
	return insts, nil
}

func (d *decoder) inst() (Inst, error) {
	tag, err := d.tag()
	if err != nil {
		return nil, err
	}
	switch tag {
	case TagNoneInst:
		return InstNone{}, nil
	case TagLabelInst:
		name, err := d.local()
		if err != nil {
			return nil, err
		}
		n, err := d.count()
		if err != nil {
			return nil, err
		}
		var params []LocalVal
		if n > 0 {
			params = make([]LocalVal, n)
		}
		for i := range params {
			v, err := d.val()
			if err != nil {
				return nil, err
			}
			p, ok := v.(LocalVal)
			if !ok {
				return nil, errors.New(errors.PhaseDecode, errors.KindInvalidData).
					Path(d.path...).
					Offset(int64(d.r.Position())).
					Detail("label parameter must be a local value, got %T", v).
					Build()
			}
			params[i] = p
		}
		return InstLabel{Name: name, Params: params}, nil
	case TagLetInst:
		name, err := d.local()
		if err != nil {
			return nil, err
		}
		op, err := d.op()
		if err != nil {
			return nil, err
		}
		return InstLet{Name: name, Op: op, Unwind: NextNone{}}, nil
	case TagLetUnwindInst:
		name, err := d.local()
		if err != nil {
			return nil, err
		}
		op, err := d.op()
		if err != nil {
			return nil, err
		}
		unwind, err := d.next()
		if err != nil {
			return nil, err
		}
		return InstLet{Name: name, Op: op, Unwind: unwind}, nil
	case TagUnreachableInst:
		return InstUnreachable{}, nil
	case TagRetInst:
		v, err := d.val()
		if err != nil {
			return nil, err
		}
		return InstRet{Value: v}, nil
	case TagJumpInst:
		to, err := d.next()
		if err != nil {
			return nil, err
		}
		return InstJump{To: to}, nil
	case TagIfInst:
		cond, err := d.val()
		if err != nil {
			return nil, err
		}
		then, err := d.next()
		if err != nil {
			return nil, err
		}
		els, err := d.next()
		if err != nil {
			return nil, err
		}
		return InstIf{Cond: cond, Then: then, Else: els}, nil
	case TagSwitchInst:
		scrut, err := d.val()
		if err != nil {
			return nil, err
		}
		def, err := d.next()
		if err != nil {
			return nil, err
		}
		cases, err := d.nexts()
		if err != nil {
			return nil, err
		}
		return InstSwitch{Scrut: scrut, Default: def, Cases: cases}, nil
	case TagThrowInst:
		v, err := d.val()
		if err != nil {
			return nil, err
		}
		unwind, err := d.next()
		if err != nil {
			return nil, err
		}
		return InstThrow{Value: v, Unwind: unwind}, nil
	default:
		return nil, d.badTag("inst", tag)
	}
}

func (d *decoder) next() (Next, error) {
	tag, err := d.tag()
	if err != nil {
		return nil, err
	}
	switch tag {
	case TagNoneNext:
		return NextNone{}, nil
	case TagUnwindNext:
		name, err := d.local()
		if err != nil {
			return nil, err
		}
		return NextUnwind{Name: name}, nil
	case TagLabelNext:
		name, err := d.local()
		if err != nil {
			return nil, err
		}
		args, err := d.vals()
		if err != nil {
			return nil, err
		}
		return NextLabel{Name: name, Args: args}, nil
	case TagCaseNext:
		v, err := d.val()
		if err != nil {
			return nil, err
		}
		n, err := d.next()
		if err != nil {
			return nil, err
		}
		return NextCase{Value: v, Next: n}, nil
	default:
		return nil, d.badTag("next", tag)
	}
}

func (d *decoder) nexts() ([]Next, error) {
	n, err := d.count()
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, nil
	}
	ns := make([]Next, n)
	for i := range ns {
		if ns[i], err = d.next(); err != nil {
			return nil, err
		}
	}
	return ns, nil
}

func (d *decoder) bin() (Bin, error) {
	tag, err := d.tag()
	if err != nil {
		return 0, err
	}
	if tag < binBase || tag >= binBase+numBins {
		return 0, d.badTag("bin", tag)
	}
	return Bin(tag - binBase), nil
}

func (d *decoder) comp() (Comp, error) {
	tag, err := d.tag()
	if err != nil {
		return 0, err
	}
	if tag < compBase || tag >= compBase+numComps {
		return 0, d.badTag("comp", tag)
	}
	return Comp(tag - compBase), nil
}

func (d *decoder) conv() (Conv, error) {
	tag, err := d.tag()
	if err != nil {
		return 0, err
	}
	if tag < convBase || tag >= convBase+numConvs {
		return 0, d.badTag("conv", tag)
	}
	return Conv(tag - convBase), nil
}

func (d *decoder) op() (Op, error) {
	tag, err := d.tag()
	if err != nil {
		return nil, err
	}
	switch tag {
	case TagCallOp:
		ty, err := d.typ()
		if err != nil {
			return nil, err
		}
		fn, err := d.val()
		if err != nil {
			return nil, err
		}
		args, err := d.vals()
		if err != nil {
			return nil, err
		}
		return OpCall{Type: ty, Fn: fn, Args: args}, nil
	case TagLoadOp:
		ty, err := d.typ()
		if err != nil {
			return nil, err
		}
		ptr, err := d.val()
		if err != nil {
			return nil, err
		}
		return OpLoad{Type: ty, Ptr: ptr}, nil
	case TagStoreOp:
		ty, err := d.typ()
		if err != nil {
			return nil, err
		}
		v, err := d.val()
		if err != nil {
			return nil, err
		}
		ptr, err := d.val()
		if err != nil {
			return nil, err
		}
		return OpStore{Type: ty, Value: v, Ptr: ptr}, nil
	case TagElemOp:
		ty, err := d.typ()
		if err != nil {
			return nil, err
		}
		ptr, err := d.val()
		if err != nil {
			return nil, err
		}
		indexes, err := d.vals()
		if err != nil {
			return nil, err
		}
		return OpElem{Type: ty, Ptr: ptr, Indexes: indexes}, nil
	case TagExtractOp:
		aggr, err := d.val()
		if err != nil {
			return nil, err
		}
		indexes, err := d.ints()
		if err != nil {
			return nil, err
		}
		return OpExtract{Aggr: aggr, Indexes: indexes}, nil
	case TagInsertOp:
		aggr, err := d.val()
		if err != nil {
			return nil, err
		}
		v, err := d.val()
		if err != nil {
			return nil, err
		}
		indexes, err := d.ints()
		if err != nil {
			return nil, err
		}
		return OpInsert{Aggr: aggr, Value: v, Indexes: indexes}, nil
	case TagStackallocOp:
		ty, err := d.typ()
		if err != nil {
			return nil, err
		}
		n, err := d.val()
		if err != nil {
			return nil, err
		}
		return OpStackalloc{Type: ty, N: n}, nil
	case TagBinOp:
		kind, err := d.bin()
		if err != nil {
			return nil, err
		}
		ty, err := d.typ()
		if err != nil {
			return nil, err
		}
		l, err := d.val()
		if err != nil {
			return nil, err
		}
		r, err := d.val()
		if err != nil {
			return nil, err
		}
		return OpBin{Op: kind, Type: ty, L: l, R: r}, nil
	case TagCompOp:
		kind, err := d.comp()
		if err != nil {
			return nil, err
		}
		ty, err := d.typ()
		if err != nil {
			return nil, err
		}
		l, err := d.val()
		if err != nil {
			return nil, err
		}
		r, err := d.val()
		if err != nil {
			return nil, err
		}
		return OpComp{Op: kind, Type: ty, L: l, R: r}, nil
	case TagConvOp:
		kind, err := d.conv()
		if err != nil {
			return nil, err
		}
		ty, err := d.typ()
		if err != nil {
			return nil, err
		}
		v, err := d.val()
		if err != nil {
			return nil, err
		}
		return OpConv{Op: kind, Type: ty, Value: v}, nil
	case TagSelectOp:
		cond, err := d.val()
		if err != nil {
			return nil, err
		}
		thenV, err := d.val()
		if err != nil {
			return nil, err
		}
		elseV, err := d.val()
		if err != nil {
			return nil, err
		}
		return OpSelect{Cond: cond, ThenV: thenV, ElseV: elseV}, nil
	case TagClassallocOp:
		name, err := d.global()
		if err != nil {
			return nil, err
		}
		return OpClassalloc{Name: name}, nil
	case TagFieldloadOp:
		ty, err := d.typ()
		if err != nil {
			return nil, err
		}
		obj, err := d.val()
		if err != nil {
			return nil, err
		}
		name, err := d.global()
		if err != nil {
			return nil, err
		}
		return OpFieldload{Type: ty, Obj: obj, Name: name}, nil
	case TagFieldstoreOp:
		ty, err := d.typ()
		if err != nil {
			return nil, err
		}
		obj, err := d.val()
		if err != nil {
			return nil, err
		}
		name, err := d.global()
		if err != nil {
			return nil, err
		}
		v, err := d.val()
		if err != nil {
			return nil, err
		}
		return OpFieldstore{Type: ty, Obj: obj, Name: name, Value: v}, nil
	case TagMethodOp:
		obj, err := d.val()
		if err != nil {
			return nil, err
		}
		sig, err := d.sig()
		if err != nil {
			return nil, err
		}
		return OpMethod{Obj: obj, Sig: sig}, nil
	case TagDynmethodOp:
		obj, err := d.val()
		if err != nil {
			return nil, err
		}
		sig, err := d.sig()
		if err != nil {
			return nil, err
		}
		return OpDynmethod{Obj: obj, Sig: sig}, nil
	case TagModuleOp:
		name, err := d.global()
		if err != nil {
			return nil, err
		}
		return OpModule{Name: name}, nil
	case TagAsOp:
		ty, err := d.typ()
		if err != nil {
			return nil, err
		}
		v, err := d.val()
		if err != nil {
			return nil, err
		}
		return OpAs{Type: ty, Value: v}, nil
	case TagIsOp:
		ty, err := d.typ()
		if err != nil {
			return nil, err
		}
		v, err := d.val()
		if err != nil {
			return nil, err
		}
		return OpIs{Type: ty, Value: v}, nil
	case TagBoxOp:
		ty, err := d.typ()
		if err != nil {
			return nil, err
		}
		v, err := d.val()
		if err != nil {
			return nil, err
		}
		return OpBox{Type: ty, Value: v}, nil
	case TagUnboxOp:
		ty, err := d.typ()
		if err != nil {
			return nil, err
		}
		v, err := d.val()
		if err != nil {
			return nil, err
		}
		return OpUnbox{Type: ty, Value: v}, nil
	case TagSizeofOp:
		ty, err := d.typ()
		if err != nil {
			return nil, err
		}
		return OpSizeof{Type: ty}, nil
	case TagCopyOp:
		v, err := d.val()
		if err != nil {
			return nil, err
		}
		return OpCopy{Value: v}, nil
	case TagClosureOp:
		ty, err := d.typ()
		if err != nil {
			return nil, err
		}
		fn, err := d.val()
		if err != nil {
			return nil, err
		}
		captures, err := d.vals()
		if err != nil {
			return nil, err
		}
		return OpClosure{Type: ty, Fn: fn, Captures: captures}, nil
	case TagVarOp:
		ty, err := d.typ()
		if err != nil {
			return nil, err
		}
		return OpVar{Type: ty}, nil
	case TagVarloadOp:
		slot, err := d.val()
		if err != nil {
			return nil, err
		}
		return OpVarload{Slot: slot}, nil
	case TagVarstoreOp:
		slot, err := d.val()
		if err != nil {
			return nil, err
		}
		v, err := d.val()
		if err != nil {
			return nil, err
		}
		return OpVarstore{Slot: slot, Value: v}, nil
	case TagArrayallocOp:
		elem, err := d.typ()
		if err != nil {
			return nil, err
		}
		init, err := d.val()
		if err != nil {
			return nil, err
		}
		return OpArrayalloc{Elem: elem, Init: init}, nil
	case TagArrayloadOp:
		elem, err := d.typ()
		if err != nil {
			return nil, err
		}
		arr, err := d.val()
		if err != nil {
			return nil, err
		}
		idx, err := d.val()
		if err != nil {
			return nil, err
		}
		return OpArrayload{Elem: elem, Arr: arr, Idx: idx}, nil
	case TagArraystoreOp:
		elem, err := d.typ()
		if err != nil {
			return nil, err
		}
		arr, err := d.val()
		if err != nil {
			return nil, err
		}
		idx, err := d.val()
		if err != nil {
			return nil, err
		}
		v, err := d.val()
		if err != nil {
			return nil, err
		}
		return OpArraystore{Elem: elem, Arr: arr, Idx: idx, Value: v}, nil
	case TagArraylengthOp:
		arr, err := d.val()
		if err != nil {
			return nil, err
		}
		return OpArraylength{Arr: arr}, nil
	default:
		return nil, d.badTag("op", tag)
	}
}

func (d *decoder) ints() ([]int32, error) {
	n, err := d.count()
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, nil
	}
	ns := make([]int32, n)
	for i := range ns {
		v, err := d.r.ReadI32()
		if err != nil {
			return nil, d.fail(err)
		}
		ns[i] = v
	}
	return ns, nil
}
