package lir

import (
	"fmt"
	"strconv"

	"github.com/lumenlang/lumen-ir/errors"
)

// Validate checks a definition sequence against the serialization
// preconditions and returns a structured error for the first violation
// found, or nil. Serialize panics on the same conditions; callers that
// prefer errors run Validate first.
//
// Checked conditions:
//   - a Member global whose owner is not a Top
//   - a volatile load or store
//   - a Succ or Fail successor, which have no wire representation
func Validate(defns []Defn) error {
	v := &validator{}
	for i, d := range defns {
		v.path = []string{"defns", strconv.Itoa(i)}
		if err := v.defn(d); err != nil {
			return err
		}
	}
	return nil
}

type validator struct {
	path []string
}

func (v *validator) at(elem string, f func() error) error {
	v.path = append(v.path, elem)
	err := f()
	v.path = v.path[:len(v.path)-1]
	return err
}

func (v *validator) violation(detail string, args ...any) error {
	path := make([]string, len(v.path))
	copy(path, v.path)
	return errors.Precondition(path, fmt.Sprintf(detail, args...))
}

func (v *validator) defn(d Defn) error {
	if err := v.global(d.Name()); err != nil {
		return err
	}
	switch d := d.(type) {
	case VarDefn:
		if err := v.typ(d.Type); err != nil {
			return err
		}
		return v.val(d.Value)
	case ConstDefn:
		if err := v.typ(d.Type); err != nil {
			return err
		}
		return v.val(d.Value)
	case DeclareDefn:
		return v.typ(d.Type)
	case DefineDefn:
		if err := v.typ(d.Type); err != nil {
			return err
		}
		return v.at("insts", func() error {
			for i, inst := range d.Insts {
				if err := v.at(strconv.Itoa(i), func() error { return v.inst(inst) }); err != nil {
					return err
				}
			}
			return nil
		})
	case TraitDefn:
		return v.globalSlice(d.Ifaces)
	case ClassDefn:
		if d.Parent != nil {
			if err := v.global(d.Parent); err != nil {
				return err
			}
		}
		return v.globalSlice(d.Ifaces)
	case ModuleDefn:
		if d.Parent != nil {
			if err := v.global(d.Parent); err != nil {
				return err
			}
		}
		return v.globalSlice(d.Ifaces)
	default:
		return v.violation("unknown defn %T", d)
	}
}

func (v *validator) global(g Global) error {
	switch g := g.(type) {
	case GlobalNone, Top:
		return nil
	case Member:
		if _, ok := g.Owner.(Top); !ok {
			return v.violation("member owner must be a top-level name, got %T", g.Owner)
		}
		return v.sig(g.Sig)
	case nil:
		return v.violation("nil global")
	default:
		return v.violation("unknown global %T", g)
	}
}

func (v *validator) globalSlice(gs []Global) error {
	for _, g := range gs {
		if err := v.global(g); err != nil {
			return err
		}
	}
	return nil
}

func (v *validator) sig(s Sig) error {
	switch s := s.(type) {
	case SigCtor:
		return v.typeSlice(s.Types)
	case SigMethod:
		return v.typeSlice(s.Types)
	case SigProxy:
		return v.typeSlice(s.Types)
	case SigDuplicate:
		if err := v.sig(s.Of); err != nil {
			return err
		}
		return v.typeSlice(s.Types)
	default:
		return nil
	}
}

func (v *validator) typ(t Type) error {
	switch t := t.(type) {
	case ArrayValueType:
		return v.typ(t.Elem)
	case StructValueType:
		return v.typeSlice(t.Elems)
	case FunctionType:
		if err := v.typeSlice(t.Args); err != nil {
			return err
		}
		return v.typ(t.Ret)
	case VarType:
		return v.typ(t.Elem)
	case ArrayType:
		return v.typ(t.Elem)
	case RefType:
		return v.global(t.Name)
	default:
		return nil
	}
}

func (v *validator) typeSlice(ts []Type) error {
	for _, t := range ts {
		if err := v.typ(t); err != nil {
			return err
		}
	}
	return nil
}

func (v *validator) val(val Val) error {
	switch val := val.(type) {
	case ZeroVal:
		return v.typ(val.Of)
	case UndefVal:
		return v.typ(val.Of)
	case StructVal:
		return v.valSlice(val.Values)
	case ArrayVal:
		if err := v.typ(val.Elem); err != nil {
			return err
		}
		return v.valSlice(val.Values)
	case LocalVal:
		return v.typ(val.Type)
	case GlobalVal:
		if err := v.global(val.Name); err != nil {
			return err
		}
		return v.typ(val.Type)
	case ConstVal:
		return v.val(val.Value)
	default:
		return nil
	}
}

func (v *validator) valSlice(vs []Val) error {
	for _, val := range vs {
		if err := v.val(val); err != nil {
			return err
		}
	}
	return nil
}

func (v *validator) inst(inst Inst) error {
	switch inst := inst.(type) {
	case InstLabel:
		for _, p := range inst.Params {
			if err := v.typ(p.Type); err != nil {
				return err
			}
		}
		return nil
	case InstLet:
		if err := v.op(inst.Op); err != nil {
			return err
		}
		return v.next(inst.Unwind)
	case InstRet:
		return v.val(inst.Value)
	case InstJump:
		return v.next(inst.To)
	case InstIf:
		if err := v.val(inst.Cond); err != nil {
			return err
		}
		if err := v.next(inst.Then); err != nil {
			return err
		}
		return v.next(inst.Else)
	case InstSwitch:
		if err := v.val(inst.Scrut); err != nil {
			return err
		}
		if err := v.next(inst.Default); err != nil {
			return err
		}
		for _, c := range inst.Cases {
			if err := v.next(c); err != nil {
				return err
			}
		}
		return nil
	case InstThrow:
		if err := v.val(inst.Value); err != nil {
			return err
		}
		return v.next(inst.Unwind)
	default:
		return nil
	}
}

func (v *validator) next(n Next) error {
	switch n := n.(type) {
	case nil, NextNone, NextUnwind:
		return nil
	case NextLabel:
		return v.valSlice(n.Args)
	case NextCase:
		if err := v.val(n.Value); err != nil {
			return err
		}
		return v.next(n.Next)
	case NextSucc:
		return v.violation("succ successor has no wire representation in revision %d", Revision)
	case NextFail:
		return v.violation("fail successor has no wire representation in revision %d", Revision)
	default:
		return v.violation("unknown next %T", n)
	}
}

func (v *validator) op(op Op) error {
	switch op := op.(type) {
	case OpCall:
		if err := v.typ(op.Type); err != nil {
			return err
		}
		if err := v.val(op.Fn); err != nil {
			return err
		}
		return v.valSlice(op.Args)
	case OpLoad:
		if op.Volatile {
			return v.violation("volatile load cannot be serialized")
		}
		if err := v.typ(op.Type); err != nil {
			return err
		}
		return v.val(op.Ptr)
	case OpStore:
		if op.Volatile {
			return v.violation("volatile store cannot be serialized")
		}
		if err := v.typ(op.Type); err != nil {
			return err
		}
		if err := v.val(op.Value); err != nil {
			return err
		}
		return v.val(op.Ptr)
	case OpElem:
		if err := v.typ(op.Type); err != nil {
			return err
		}
		if err := v.val(op.Ptr); err != nil {
			return err
		}
		return v.valSlice(op.Indexes)
	case OpExtract:
		return v.val(op.Aggr)
	case OpInsert:
		if err := v.val(op.Aggr); err != nil {
			return err
		}
		return v.val(op.Value)
	case OpStackalloc:
		if err := v.typ(op.Type); err != nil {
			return err
		}
		return v.val(op.N)
	case OpBin:
		if err := v.typ(op.Type); err != nil {
			return err
		}
		if err := v.val(op.L); err != nil {
			return err
		}
		return v.val(op.R)
	case OpComp:
		if err := v.typ(op.Type); err != nil {
			return err
		}
		if err := v.val(op.L); err != nil {
			return err
		}
		return v.val(op.R)
	case OpConv:
		if err := v.typ(op.Type); err != nil {
			return err
		}
		return v.val(op.Value)
	case OpSelect:
		if err := v.val(op.Cond); err != nil {
			return err
		}
		if err := v.val(op.ThenV); err != nil {
			return err
		}
		return v.val(op.ElseV)
	case OpClassalloc:
		return v.global(op.Name)
	case OpFieldload:
		if err := v.typ(op.Type); err != nil {
			return err
		}
		if err := v.val(op.Obj); err != nil {
			return err
		}
		return v.global(op.Name)
	case OpFieldstore:
		if err := v.typ(op.Type); err != nil {
			return err
		}
		if err := v.val(op.Obj); err != nil {
			return err
		}
		if err := v.global(op.Name); err != nil {
			return err
		}
		return v.val(op.Value)
	case OpMethod:
		if err := v.val(op.Obj); err != nil {
			return err
		}
		return v.sig(op.Sig)
	case OpDynmethod:
		if err := v.val(op.Obj); err != nil {
			return err
		}
		return v.sig(op.Sig)
	case OpModule:
		return v.global(op.Name)
	case OpAs:
		if err := v.typ(op.Type); err != nil {
			return err
		}
		return v.val(op.Value)
	case OpIs:
		if err := v.typ(op.Type); err != nil {
			return err
		}
		return v.val(op.Value)
	case OpBox:
		if err := v.typ(op.Type); err != nil {
			return err
		}
		return v.val(op.Value)
	case OpUnbox:
		if err := v.typ(op.Type); err != nil {
			return err
		}
		return v.val(op.Value)
	case OpSizeof:
		return v.typ(op.Type)
	case OpCopy:
		return v.val(op.Value)
	case OpClosure:
		if err := v.typ(op.Type); err != nil {
			return err
		}
		if err := v.val(op.Fn); err != nil {
			return err
		}
		return v.valSlice(op.Captures)
	case OpVar:
		return v.typ(op.Type)
	case OpVarload:
		return v.val(op.Slot)
	case OpVarstore:
		if err := v.val(op.Slot); err != nil {
			return err
		}
		return v.val(op.Value)
	case OpArrayalloc:
		if err := v.typ(op.Elem); err != nil {
			return err
		}
		return v.val(op.Init)
	case OpArrayload:
		if err := v.typ(op.Elem); err != nil {
			return err
		}
		if err := v.val(op.Arr); err != nil {
			return err
		}
		return v.val(op.Idx)
	case OpArraystore:
		if err := v.typ(op.Elem); err != nil {
			return err
		}
		if err := v.val(op.Arr); err != nil {
			return err
		}
		if err := v.val(op.Idx); err != nil {
			return err
		}
		return v.val(op.Value)
	case OpArraylength:
		return v.val(op.Arr)
	default:
		return v.violation("unknown op %T", op)
	}
}
