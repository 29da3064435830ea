package lir

// Binary format header words. A reader rejects streams whose magic does not
// match or whose compat version differs from CompatVersion. Revision tracks
// the wire format: any change to tag numbers or variant schemas bumps it.
const (
	// Magic is the serialized IR magic number (".LIR" in big-endian).
	Magic int32 = 0x2E4C4952

	// CompatVersion is the oldest reader generation able to consume
	// streams produced by this encoder.
	CompatVersion int32 = 1

	// Revision is the current wire format revision.
	Revision int32 = 3
)

// Each sum type owns a disjoint tag range starting on a multiple of 32, so a
// tag value identifies its group on sight when staring at hex dumps. Flat
// enums (Bin, Comp, Conv, PrimType) map to the wire as base + enum value;
// decoders recover the enum by subtracting the base. Tag values are a wire contract shared
// with every decoder: never reuse or reorder them within a revision.
const (
	attrBase   int32 = 0
	binBase    int32 = 32
	compBase   int32 = 64
	convBase   int32 = 96
	defnBase   int32 = 128
	globalBase int32 = 160
	sigBase    int32 = 192
	instBase   int32 = 224
	nextBase   int32 = 256
	opBase     int32 = 288
	typeBase   int32 = 352
	valBase    int32 = 416
)

// Attr tags.
const (
	TagMayInlineAttr int32 = attrBase + iota
	TagInlineHintAttr
	TagNoInlineAttr
	TagAlwaysInlineAttr
	TagDynAttr
	TagStubAttr
	TagExternAttr
	TagLinkAttr
)

// Defn tags.
const (
	TagVarDefn int32 = defnBase + iota
	TagConstDefn
	TagDeclareDefn
	TagDefineDefn
	TagTraitDefn
	TagClassDefn
	TagModuleDefn
)

// Global tags.
const (
	TagNoneGlobal int32 = globalBase + iota
	TagTopGlobal
	TagMemberGlobal
)

// Sig tags.
const (
	TagFieldSig int32 = sigBase + iota
	TagCtorSig
	TagMethodSig
	TagProxySig
	TagExternSig
	TagGeneratedSig
	TagDuplicateSig
)

// Inst tags. Let carries two tags: TagLetInst when the binding has no
// unwind successor and TagLetUnwindInst when it does.
const (
	TagNoneInst int32 = instBase + iota
	TagLabelInst
	TagLetInst
	TagLetUnwindInst
	TagUnreachableInst
	TagRetInst
	TagJumpInst
	TagIfInst
	TagSwitchInst
	TagThrowInst
)

// Next tags. The IR grammar also admits Succ and Fail successors; they have
// no tags in this revision and are rejected by the encoder.
const (
	TagNoneNext int32 = nextBase + iota
	TagUnwindNext
	TagLabelNext
	TagCaseNext
)

// Op tags.
const (
	TagCallOp int32 = opBase + iota
	TagLoadOp
	TagStoreOp
	TagElemOp
	TagExtractOp
	TagInsertOp
	TagStackallocOp
	TagBinOp
	TagCompOp
	TagConvOp
	TagSelectOp
	TagClassallocOp
	TagFieldloadOp
	TagFieldstoreOp
	TagMethodOp
	TagDynmethodOp
	TagModuleOp
	TagAsOp
	TagIsOp
	TagBoxOp
	TagUnboxOp
	TagSizeofOp
	TagCopyOp
	TagClosureOp
	TagVarOp
	TagVarloadOp
	TagVarstoreOp
	TagArrayallocOp
	TagArrayloadOp
	TagArraystoreOp
	TagArraylengthOp
)

// Type tags. The primitive tags mirror the PrimType enumeration order.
const (
	TagNoneType int32 = typeBase + iota
	TagVoidType
	TagVarargType
	TagPtrType
	TagBoolType
	TagCharType
	TagByteType
	TagUByteType
	TagShortType
	TagUShortType
	TagIntType
	TagUIntType
	TagLongType
	TagULongType
	TagFloatType
	TagDoubleType
	TagNullType
	TagNothingType
	TagVirtualType
	TagUnitType
	TagArrayValueType
	TagStructValueType
	TagFunctionType
	TagVarType
	TagArrayType
	TagRefType
)

// Val tags. NullVal has no tag of its own in this revision: it is encoded
// as TagZeroVal of PtrType and decodes as ZeroVal{PtrType}.
const (
	TagNoneVal int32 = valBase + iota
	TagTrueVal
	TagFalseVal
	TagZeroVal
	TagUndefVal
	TagByteVal
	TagShortVal
	TagIntVal
	TagLongVal
	TagFloatVal
	TagDoubleVal
	TagStructVal
	TagArrayVal
	TagCharsVal
	TagLocalVal
	TagGlobalVal
	TagUnitVal
	TagConstVal
	TagStringVal
	TagVirtualVal
)
