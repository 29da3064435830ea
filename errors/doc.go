// Package errors provides structured error types for the lumen-ir library.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error
// category). The Error type includes rich context: a field path into the IR
// tree, the byte offset into the serialized stream, and a cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseDecode, errors.KindInvalidTag).
//		Path("defns", "3", "insts").
//		Offset(124).
//		Detail("no inst variant with tag %d", tag).
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.InvalidTag(errors.PhaseDecode, path, "op", tag, offset)
//	err := errors.NotFound("definition", "foo")
//
// All errors implement the standard error interface and support errors.Is/As.
package errors
