package lir

// Bin enumerates binary arithmetic operation kinds. The declaration order
// matches the wire tag order; do not reorder.
type Bin int32

const (
	BinIadd Bin = iota
	BinFadd
	BinIsub
	BinFsub
	BinImul
	BinFmul
	BinSdiv
	BinUdiv
	BinFdiv
	BinSrem
	BinUrem
	BinFrem
	BinShl
	BinLshr
	BinAshr
	BinAnd
	BinOr
	BinXor

	numBins = int32(iota)
)

var binNames = [...]string{
	"iadd", "fadd", "isub", "fsub", "imul", "fmul",
	"sdiv", "udiv", "fdiv", "srem", "urem", "frem",
	"shl", "lshr", "ashr", "and", "or", "xor",
}

func (b Bin) String() string {
	if b < 0 || int(b) >= len(binNames) {
		return "bin?"
	}
	return binNames[b]
}

// Comp enumerates comparison kinds. Declaration order matches the wire tag
// order; do not reorder.
type Comp int32

const (
	CompIeq Comp = iota
	CompIne
	CompUgt
	CompUge
	CompUlt
	CompUle
	CompSgt
	CompSge
	CompSlt
	CompSle
	CompFeq
	CompFne
	CompFgt
	CompFge
	CompFlt
	CompFle

	numComps = int32(iota)
)

var compNames = [...]string{
	"ieq", "ine", "ugt", "uge", "ult", "ule", "sgt", "sge",
	"slt", "sle", "feq", "fne", "fgt", "fge", "flt", "fle",
}

func (c Comp) String() string {
	if c < 0 || int(c) >= len(compNames) {
		return "comp?"
	}
	return compNames[c]
}

// Conv enumerates conversion kinds. Declaration order matches the wire tag
// order; do not reorder.
type Conv int32

const (
	ConvTrunc Conv = iota
	ConvZext
	ConvSext
	ConvFptrunc
	ConvFpext
	ConvFptoui
	ConvFptosi
	ConvUitofp
	ConvSitofp
	ConvPtrtoint
	ConvInttoptr
	ConvBitcast

	numConvs = int32(iota)
)

var convNames = [...]string{
	"trunc", "zext", "sext", "fptrunc", "fpext", "fptoui",
	"fptosi", "uitofp", "sitofp", "ptrtoint", "inttoptr", "bitcast",
}

func (c Conv) String() string {
	if c < 0 || int(c) >= len(convNames) {
		return "conv?"
	}
	return convNames[c]
}
