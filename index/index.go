package index

import (
	"go.uber.org/zap"

	"github.com/lumenlang/lumen-ir/errors"
	"github.com/lumenlang/lumen-ir/lir"
)

// Table is a parsed name index over a serialized IR buffer. It borrows the
// buffer for its lifetime and never decodes payloads until asked.
type Table struct {
	data    []byte
	entries []lir.IndexEntry
	offsets map[string]int32
}

// Read checks the stream header and parses the name index. Definition
// payloads are left untouched.
func Read(data []byte) (*Table, error) {
	entries, err := lir.ReadIndex(data)
	if err != nil {
		return nil, err
	}

	offsets := make(map[string]int32, len(entries))
	for _, e := range entries {
		// Last entry wins for duplicate names, matching sequential
		// decode order.
		offsets[e.Name.String()] = e.Offset
	}

	Logger().Debug("index read",
		zap.Int("entries", len(entries)),
		zap.Int("bytes", len(data)))

	return &Table{data: data, entries: entries, offsets: offsets}, nil
}

// Len returns the number of index entries.
func (t *Table) Len() int {
	return len(t.entries)
}

// Entries returns the index entries in stream order. The returned slice is
// shared; callers must not mutate it.
func (t *Table) Entries() []lir.IndexEntry {
	return t.entries
}

// Lookup resolves a global name to its payload offset.
func (t *Table) Lookup(name lir.Global) (int32, bool) {
	off, ok := t.offsets[name.String()]
	if !ok {
		Logger().Debug("index miss", zap.String("name", name.String()))
	}
	return off, ok
}

// Decode resolves a global name and decodes just that definition.
func (t *Table) Decode(name lir.Global) (lir.Defn, error) {
	off, ok := t.Lookup(name)
	if !ok {
		return nil, errors.NotFound("definition", name.String())
	}
	return t.DecodeAt(off)
}

// DecodeAt decodes the single definition whose payload starts at the given
// offset.
func (t *Table) DecodeAt(offset int32) (lir.Defn, error) {
	if offset < 0 || int(offset) >= len(t.data) {
		return nil, errors.OutOfBounds(errors.PhaseIndex, int64(offset), len(t.data))
	}
	defn, err := lir.DecodeDefnAt(t.data, offset)
	if err != nil {
		return nil, err
	}
	Logger().Debug("definition decoded",
		zap.Int32("offset", offset),
		zap.String("name", defn.Name().String()))
	return defn, nil
}
