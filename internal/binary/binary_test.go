package binary

import (
	"bytes"
	"errors"
	"io"
	"math"
	"testing"
)

func TestWriterBigEndianLayouts(t *testing.T) {
	w := NewWriter()
	w.WriteI16(0x0102)
	w.WriteI32(0x01020304)
	w.WriteI64(0x0102030405060708)

	want := []byte{
		0x01, 0x02,
		0x01, 0x02, 0x03, 0x04,
		0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08,
	}
	if !bytes.Equal(w.Bytes(), want) {
		t.Errorf("got % x, want % x", w.Bytes(), want)
	}
}

func TestWriterNegativeValues(t *testing.T) {
	w := NewWriter()
	w.WriteI32(-1)
	w.WriteI16(-2)
	w.WriteI64(-3)

	want := []byte{
		0xFF, 0xFF, 0xFF, 0xFF,
		0xFF, 0xFE,
		0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFD,
	}
	if !bytes.Equal(w.Bytes(), want) {
		t.Errorf("got % x, want % x", w.Bytes(), want)
	}
}

func TestWriterFloats(t *testing.T) {
	w := NewWriter()
	w.WriteF32(1.5)
	w.WriteF64(-2.25)

	want := []byte{0x3F, 0xC0, 0x00, 0x00}
	if !bytes.Equal(w.Bytes()[:4], want) {
		t.Errorf("f32: got % x, want % x", w.Bytes()[:4], want)
	}

	r := NewReader(w.Bytes())
	f32, err := r.ReadF32()
	if err != nil || f32 != 1.5 {
		t.Errorf("ReadF32: got %v, %v", f32, err)
	}
	f64, err := r.ReadF64()
	if err != nil || f64 != -2.25 {
		t.Errorf("ReadF64: got %v, %v", f64, err)
	}
}

func TestWriterFloatBitPatterns(t *testing.T) {
	w := NewWriter()
	w.WriteF64(math.NaN())
	r := NewReader(w.Bytes())
	got, err := r.ReadF64()
	if err != nil {
		t.Fatalf("ReadF64: %v", err)
	}
	if !math.IsNaN(got) {
		t.Errorf("NaN did not survive a round trip: got %v", got)
	}
}

func TestWriterName(t *testing.T) {
	w := NewWriter()
	w.WriteName("foo")

	want := []byte{0x00, 0x00, 0x00, 0x03, 'f', 'o', 'o'}
	if !bytes.Equal(w.Bytes(), want) {
		t.Errorf("got % x, want % x", w.Bytes(), want)
	}
}

func TestWriterNameEmpty(t *testing.T) {
	w := NewWriter()
	w.WriteName("")
	if !bytes.Equal(w.Bytes(), []byte{0, 0, 0, 0}) {
		t.Errorf("got % x, want 4 zero bytes", w.Bytes())
	}
}

func TestWriterBool(t *testing.T) {
	w := NewWriter()
	w.WriteBool(true)
	w.WriteBool(false)
	if !bytes.Equal(w.Bytes(), []byte{1, 0}) {
		t.Errorf("got % x, want 01 00", w.Bytes())
	}
}

func TestWriterSeekOverwrite(t *testing.T) {
	w := NewWriter()
	w.WriteI32(0x11111111)
	w.WriteI32(0) // placeholder
	w.WriteI32(0x33333333)

	end := w.Position()
	w.Seek(4)
	w.WriteI32(0x22222222)
	w.Seek(end)

	if w.Len() != 12 {
		t.Fatalf("overwrite moved end of buffer: len %d", w.Len())
	}
	if w.Position() != 12 {
		t.Errorf("cursor not restored: %d", w.Position())
	}
	want := []byte{
		0x11, 0x11, 0x11, 0x11,
		0x22, 0x22, 0x22, 0x22,
		0x33, 0x33, 0x33, 0x33,
	}
	if !bytes.Equal(w.Bytes(), want) {
		t.Errorf("got % x, want % x", w.Bytes(), want)
	}
}

func TestWriterSeekOutOfRangePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for out-of-range seek")
		}
	}()
	w := NewWriter()
	w.Byte(1)
	w.Seek(5)
}

func TestReaderInts(t *testing.T) {
	w := NewWriter()
	w.WriteI16(-300)
	w.WriteI32(1 << 30)
	w.WriteI64(-1 << 60)

	r := NewReader(w.Bytes())
	i16, err := r.ReadI16()
	if err != nil || i16 != -300 {
		t.Errorf("ReadI16: got %d, %v", i16, err)
	}
	i32, err := r.ReadI32()
	if err != nil || i32 != 1<<30 {
		t.Errorf("ReadI32: got %d, %v", i32, err)
	}
	i64, err := r.ReadI64()
	if err != nil || i64 != -1<<60 {
		t.Errorf("ReadI64: got %d, %v", i64, err)
	}
	if r.Remaining() != 0 {
		t.Errorf("remaining: got %d, want 0", r.Remaining())
	}
}

func TestReaderTruncated(t *testing.T) {
	r := NewReader([]byte{0x01, 0x02})
	if _, err := r.ReadI32(); !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Errorf("expected ErrUnexpectedEOF, got %v", err)
	}
}

func TestReaderName(t *testing.T) {
	w := NewWriter()
	w.WriteName("héllo")

	r := NewReader(w.Bytes())
	got, err := r.ReadName()
	if err != nil {
		t.Fatalf("ReadName: %v", err)
	}
	if got != "héllo" {
		t.Errorf("ReadName: got %q", got)
	}
}

func TestReaderNameInvalidUTF8(t *testing.T) {
	r := NewReader([]byte{0x00, 0x00, 0x00, 0x02, 0xFF, 0xFE})
	if _, err := r.ReadName(); !errors.Is(err, ErrInvalidUTF8) {
		t.Errorf("expected ErrInvalidUTF8, got %v", err)
	}
}

func TestReaderNameNegativeLength(t *testing.T) {
	r := NewReader([]byte{0xFF, 0xFF, 0xFF, 0xFF})
	if _, err := r.ReadName(); !errors.Is(err, ErrNegativeLength) {
		t.Errorf("expected ErrNegativeLength, got %v", err)
	}
}

func TestReaderSeek(t *testing.T) {
	r := NewReader([]byte{0x00, 0x00, 0x00, 0x07, 0xAA})
	if err := r.Seek(4); err != nil {
		t.Fatalf("Seek: %v", err)
	}
	b, err := r.ReadByte()
	if err != nil || b != 0xAA {
		t.Errorf("ReadByte after seek: got 0x%02x, %v", b, err)
	}
	if err := r.Seek(99); err == nil {
		t.Error("expected error for out-of-range seek")
	}
}
