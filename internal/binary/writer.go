package binary

import (
	"encoding/binary"
	"math"
)

// Writer provides positional writing utilities for IR binary encoding.
// All multi-byte values are big-endian. Writing at the end of the buffer
// appends; after a Seek, writes overwrite existing bytes without moving
// the logical end of the buffer.
type Writer struct {
	buf []byte
	pos int
}

// NewWriter creates a new Writer.
func NewWriter() *Writer {
	return &Writer{}
}

// Bytes returns the written bytes.
func (w *Writer) Bytes() []byte {
	return w.buf
}

// Len returns the number of bytes written.
func (w *Writer) Len() int {
	return len(w.buf)
}

// Position returns the current write offset.
func (w *Writer) Position() int {
	return w.pos
}

// Seek moves the write cursor to offset n. Panics if n is outside the
// written region.
func (w *Writer) Seek(n int) {
	if n < 0 || n > len(w.buf) {
		panic("binary: seek out of range")
	}
	w.pos = n
}

func (w *Writer) write(p []byte) {
	if end := w.pos + len(p); end > len(w.buf) {
		w.buf = append(w.buf, make([]byte, end-len(w.buf))...)
	}
	copy(w.buf[w.pos:], p)
	w.pos += len(p)
}

// Byte writes a single byte.
func (w *Writer) Byte(b byte) {
	w.write([]byte{b})
}

// WriteBytes writes a byte slice.
func (w *Writer) WriteBytes(data []byte) {
	w.write(data)
}

// WriteBool writes a boolean as a single byte, 1 for true and 0 for false.
func (w *Writer) WriteBool(v bool) {
	if v {
		w.Byte(1)
	} else {
		w.Byte(0)
	}
}

// WriteI16 writes a big-endian int16 (fixed 2 bytes).
func (w *Writer) WriteI16(v int16) {
	var buf [2]byte
	binary.BigEndian.PutUint16(buf[:], uint16(v))
	w.write(buf[:])
}

// WriteI32 writes a big-endian int32 (fixed 4 bytes).
func (w *Writer) WriteI32(v int32) {
	var buf [4]byte
	binary.BigEndian.PutUint32(buf[:], uint32(v))
	w.write(buf[:])
}

// WriteI64 writes a big-endian int64 (fixed 8 bytes).
func (w *Writer) WriteI64(v int64) {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], uint64(v))
	w.write(buf[:])
}

// WriteF32 writes a big-endian IEEE 754 float32 (fixed 4 bytes).
func (w *Writer) WriteF32(v float32) {
	var buf [4]byte
	binary.BigEndian.PutUint32(buf[:], math.Float32bits(v))
	w.write(buf[:])
}

// WriteF64 writes a big-endian IEEE 754 float64 (fixed 8 bytes).
func (w *Writer) WriteF64(v float64) {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], math.Float64bits(v))
	w.write(buf[:])
}

// WriteName writes a UTF-8 encoded name prefixed with its byte length as a
// big-endian int32. No trailing NUL is written.
func (w *Writer) WriteName(s string) {
	w.WriteI32(int32(len(s)))
	w.write([]byte(s))
}
