// Package lir defines the Lumen compiler's intermediate representation and
// its binary serialization.
//
// The IR is an SSA-style, typed, control-flow-graph language. A program is a
// sequence of top-level definitions (Defn); function bodies are instruction
// streams (Inst) whose let-bindings reference an operation algebra (Op) over
// typed values (Val).
//
// # Serialization
//
// Serialize encodes a definition sequence into a compact, tagged byte
// stream. The stream starts with a fixed header, followed by a name index
// mapping each definition's global name to the absolute byte offset of its
// payload, followed by the payloads themselves:
//
//	data := lir.Serialize(defns)
//
// The index permits random access: a reader can locate a single definition
// by scanning only the index and seeking straight to its payload. Decode
// reverses the full stream:
//
//	defns, err := lir.Decode(data)
//
// DecodeDefnAt decodes exactly one definition starting at an index offset.
//
// # Wire contract
//
// Every variant of every sum type carries a distinct int32 tag, centralized
// in tags.go. Tag identities are stable across releases; reusing or
// reordering a tag is a breaking change gated by Revision. All multi-byte
// primitives are big-endian.
package lir
