package lir

// Attrs is the attribute set attached to a definition. The model is a set:
// consumers must not rely on the order attributes appear on the wire. The
// encoder emits set members in the field order below so that output stays
// reproducible.
type Attrs struct {
	MayInline    bool
	InlineHint   bool
	NoInline     bool
	AlwaysInline bool
	Dyn          bool
	Stub         bool
	Extern       bool
	Links        []string
}

// IsEmpty reports whether no attribute is set.
func (a Attrs) IsEmpty() bool {
	return !a.MayInline && !a.InlineHint && !a.NoInline && !a.AlwaysInline &&
		!a.Dyn && !a.Stub && !a.Extern && len(a.Links) == 0
}

func (a Attrs) count() int32 {
	n := int32(len(a.Links))
	for _, set := range [...]bool{
		a.MayInline, a.InlineHint, a.NoInline, a.AlwaysInline,
		a.Dyn, a.Stub, a.Extern,
	} {
		if set {
			n++
		}
	}
	return n
}
