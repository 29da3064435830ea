package lir

import "testing"

// The tag values are a wire contract shared with every decoder. This table
// pins the numbers so that an accidental reorder or renumber fails loudly
// instead of silently producing streams nothing else can read.
func TestTagValuesArePinned(t *testing.T) {
	pinned := map[string]struct{ got, want int32 }{
		"MayInlineAttr": {TagMayInlineAttr, 0},
		"LinkAttr":      {TagLinkAttr, 7},
		"VarDefn":       {TagVarDefn, 128},
		"ModuleDefn":    {TagModuleDefn, 134},
		"NoneGlobal":    {TagNoneGlobal, 160},
		"MemberGlobal":  {TagMemberGlobal, 162},
		"FieldSig":      {TagFieldSig, 192},
		"DuplicateSig":  {TagDuplicateSig, 198},
		"NoneInst":      {TagNoneInst, 224},
		"LetInst":       {TagLetInst, 226},
		"LetUnwindInst": {TagLetUnwindInst, 227},
		"ThrowInst":     {TagThrowInst, 233},
		"NoneNext":      {TagNoneNext, 256},
		"CaseNext":      {TagCaseNext, 259},
		"CallOp":        {TagCallOp, 288},
		"ArraylengthOp": {TagArraylengthOp, 318},
		"NoneType":      {TagNoneType, 352},
		"UnitType":      {TagUnitType, 371},
		"RefType":       {TagRefType, 377},
		"NoneVal":       {TagNoneVal, 416},
		"ZeroVal":       {TagZeroVal, 419},
		"VirtualVal":    {TagVirtualVal, 435},
	}
	for name, p := range pinned {
		if p.got != p.want {
			t.Errorf("Tag%s = %d, want %d", name, p.got, p.want)
		}
	}
}

func TestTagGroupsAreDisjoint(t *testing.T) {
	groups := map[string]struct{ base, count int32 }{
		"attr":   {attrBase, 8},
		"bin":    {binBase, numBins},
		"comp":   {compBase, numComps},
		"conv":   {convBase, numConvs},
		"defn":   {defnBase, 7},
		"global": {globalBase, 3},
		"sig":    {sigBase, 7},
		"inst":   {instBase, 10},
		"next":   {nextBase, 4},
		"op":     {opBase, 31},
		"type":   {typeBase, 20 + 6},
		"val":    {valBase, 20},
	}

	owner := map[int32]string{}
	for name, g := range groups {
		for i := int32(0); i < g.count; i++ {
			tag := g.base + i
			if prev, taken := owner[tag]; taken {
				t.Errorf("tag %d claimed by both %s and %s", tag, prev, name)
			}
			owner[tag] = name
		}
	}
}

func TestEnumCountsMatchNames(t *testing.T) {
	if int(numBins) != len(binNames) {
		t.Errorf("bin: %d kinds, %d names", numBins, len(binNames))
	}
	if int(numComps) != len(compNames) {
		t.Errorf("comp: %d kinds, %d names", numComps, len(compNames))
	}
	if int(numConvs) != len(convNames) {
		t.Errorf("conv: %d kinds, %d names", numConvs, len(convNames))
	}
	if int(numPrimTypes) != len(primTypeNames) {
		t.Errorf("prim types: %d kinds, %d names", numPrimTypes, len(primTypeNames))
	}
}

func TestHeaderWords(t *testing.T) {
	if Magic != 0x2E4C4952 {
		t.Errorf("Magic = %#x", Magic)
	}
	if CompatVersion != 1 || Revision != 3 {
		t.Errorf("versions = %d/%d", CompatVersion, Revision)
	}
}
