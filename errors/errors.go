package errors

import (
	"fmt"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseDecode   Phase = "decode"   // binary to IR
	PhaseValidate Phase = "validate" // serialization precondition checks
	PhaseIndex    Phase = "index"    // name index resolution
)

// Kind categorizes the error
type Kind string

const (
	KindInvalidMagic   Kind = "invalid_magic"
	KindCompatMismatch Kind = "compat_mismatch"
	KindInvalidTag     Kind = "invalid_tag"
	KindInvalidData    Kind = "invalid_data"
	KindTruncated      Kind = "truncated"
	KindInvalidUTF8    Kind = "invalid_utf8"
	KindPrecondition   Kind = "precondition"
	KindNotFound       Kind = "not_found"
	KindOutOfBounds    Kind = "out_of_bounds"
)

// Error is the structured error type used by the decoder, the validator,
// and the index reader.
type Error struct {
	Cause  error
	Phase  Phase
	Kind   Kind
	Detail string
	Path   []string
	Offset int64 // byte offset into the stream, -1 when unknown
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if len(e.Path) > 0 {
		b.WriteString(" at ")
		b.WriteString(strings.Join(e.Path, "."))
	}

	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}

	if e.Offset >= 0 {
		fmt.Fprintf(&b, " (offset %d)", e.Offset)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase:  phase,
			Kind:   kind,
			Offset: -1,
		},
	}
}

// Path sets the field path
func (b *Builder) Path(path ...string) *Builder {
	b.err.Path = path
	return b
}

// Offset sets the byte offset into the stream
func (b *Builder) Offset(off int64) *Builder {
	b.err.Offset = off
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns

// InvalidTag creates an error for a discriminant outside its group
func InvalidTag(phase Phase, path []string, group string, tag int32, offset int64) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidTag,
		Path:   path,
		Detail: fmt.Sprintf("no %s variant with tag %d", group, tag),
		Offset: offset,
	}
}

// Truncated wraps a short-read failure
func Truncated(phase Phase, path []string, offset int64, cause error) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindTruncated,
		Path:   path,
		Detail: "unexpected end of stream",
		Offset: offset,
		Cause:  cause,
	}
}

// Precondition creates a validation error for IR the serializer rejects
func Precondition(path []string, detail string) *Error {
	return &Error{
		Phase:  PhaseValidate,
		Kind:   KindPrecondition,
		Path:   path,
		Detail: detail,
		Offset: -1,
	}
}

// NotFound creates a not-found error for a symbol lookup
func NotFound(what, name string) *Error {
	return &Error{
		Phase:  PhaseIndex,
		Kind:   KindNotFound,
		Detail: fmt.Sprintf("%s %q not found", what, name),
		Offset: -1,
	}
}

// OutOfBounds creates an error for an index offset outside the buffer
func OutOfBounds(phase Phase, offset int64, length int) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindOutOfBounds,
		Detail: fmt.Sprintf("offset %d out of bounds (length %d)", offset, length),
		Offset: offset,
	}
}

// InvalidData creates an invalid data error
func InvalidData(phase Phase, path []string, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidData,
		Path:   path,
		Detail: detail,
		Offset: -1,
	}
}

// Wrap wraps an existing error with phase and kind context
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Detail: detail,
		Cause:  cause,
		Offset: -1,
	}
}
