// Package index resolves symbols in a serialized IR stream without
// decoding it.
//
// A serialized stream starts with a name index mapping each definition's
// global name to the absolute byte offset of its payload. Read parses only
// the header and that index; Lookup and Decode then reach individual
// definitions by seeking straight to their payloads:
//
//	tbl, err := index.Read(data)
//	defn, err := tbl.Decode(lir.Top{ID: "main"})
//
// This keeps symbol resolution O(index) rather than O(stream), which is the
// point of the two-pass layout the serializer produces.
package index
