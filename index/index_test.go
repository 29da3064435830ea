package index_test

import (
	"errors"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	lirerrors "github.com/lumenlang/lumen-ir/errors"
	"github.com/lumenlang/lumen-ir/index"
	"github.com/lumenlang/lumen-ir/lir"
)

func sampleProgram() []lir.Defn {
	return []lir.Defn{
		lir.ConstDefn{Nm: lir.Top{ID: "answer"}, Type: lir.IntType, Value: lir.IntVal(42)},
		lir.DeclareDefn{
			Nm:   lir.Member{Owner: lir.Top{ID: "Box"}, Sig: lir.SigMethod{ID: "get", Types: nil}},
			Type: lir.FunctionType{Ret: lir.IntType},
		},
		lir.ClassDefn{Nm: lir.Top{ID: "Box"}, Parent: lir.Top{ID: "Object"}},
	}
}

func TestReadEmpty(t *testing.T) {
	tbl, err := index.Read(lir.Serialize(nil))
	require.NoError(t, err)
	assert.Equal(t, 0, tbl.Len())
	assert.Empty(t, tbl.Entries())
}

func TestLookupAndDecode(t *testing.T) {
	defns := sampleProgram()
	data := lir.Serialize(defns)

	tbl, err := index.Read(data)
	require.NoError(t, err)
	require.Equal(t, len(defns), tbl.Len())

	for i, d := range defns {
		off, ok := tbl.Lookup(d.Name())
		require.True(t, ok, "lookup %s", d.Name())
		assert.Equal(t, tbl.Entries()[i].Offset, off)

		got, err := tbl.Decode(d.Name())
		require.NoError(t, err)
		assert.Equal(t, d, got)
	}
}

func TestLookupMiss(t *testing.T) {
	tbl, err := index.Read(lir.Serialize(sampleProgram()))
	require.NoError(t, err)

	_, ok := tbl.Lookup(lir.Top{ID: "nope"})
	assert.False(t, ok)

	_, err = tbl.Decode(lir.Top{ID: "nope"})
	var serr *lirerrors.Error
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, lirerrors.KindNotFound, serr.Kind)
}

func TestDecodeAtOutOfBounds(t *testing.T) {
	tbl, err := index.Read(lir.Serialize(sampleProgram()))
	require.NoError(t, err)

	_, err = tbl.DecodeAt(1 << 20)
	var serr *lirerrors.Error
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, lirerrors.KindOutOfBounds, serr.Kind)
}

func TestReadRejectsBadHeader(t *testing.T) {
	data := lir.Serialize(nil)
	data[0] ^= 0xFF
	_, err := index.Read(data)
	assert.True(t, errors.Is(err, lir.ErrInvalidMagic))
}

func TestReadOnlyTouchesIndex(t *testing.T) {
	// Corrupting a payload must not affect index parsing; only a decode
	// of the damaged definition fails.
	defns := sampleProgram()
	data := lir.Serialize(defns)

	tbl, err := index.Read(data)
	require.NoError(t, err)

	off := tbl.Entries()[2].Offset
	data[off] = 0x7F

	tbl, err = index.Read(data)
	require.NoError(t, err)

	_, err = tbl.Decode(defns[0].Name())
	assert.NoError(t, err)
	_, err = tbl.Decode(defns[2].Name())
	assert.Error(t, err)
}

// The pinned byte streams guard the wire contract: header layout, index
// shape, and the exact tag numbers of a small definition.
func TestGoldenStreams(t *testing.T) {
	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)

	g.Assert(t, "empty", lir.Serialize(nil))

	g.Assert(t, "declare", lir.Serialize([]lir.Defn{
		lir.DeclareDefn{
			Nm: lir.Top{ID: "foo"},
			Type: lir.FunctionType{
				Args: []lir.Type{lir.IntType},
				Ret:  lir.IntType,
			},
		},
	}))
}
