// Package utils holds the small cross-cutting helpers shared by the codec,
// structures, and snbt packages: structured error types, a scratch-buffer
// pool, and the configurable limits the decoder and parser enforce.
package utils

import "fmt"

// ParseError is a structural decode/parse failure carrying enough context to
// locate the fault in the source: a byte offset plus a short excerpt for
// binary input, or a line/column pair for text input.
type ParseError struct {
	Context string
	Offset  int64
	Line    int
	Column  int
	Excerpt []byte
	Cause   error
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s: %v (line %d, column %d)", e.Context, e.Cause, e.Line, e.Column)
	}
	if e.Excerpt != nil {
		return fmt.Sprintf("%s: %v (offset %d, near %q)", e.Context, e.Cause, e.Offset, e.Excerpt)
	}
	return fmt.Sprintf("%s: %v (offset %d)", e.Context, e.Cause, e.Offset)
}

// Unwrap provides compatibility with errors.Unwrap/errors.As.
func (e *ParseError) Unwrap() error {
	return e.Cause
}

// NewBinaryParseError builds a ParseError for the binary decoder, eliding the
// middle of excerpts longer than 10 bytes (keep first 4, last 3) so that long
// truncated arrays don't flood error messages.
func NewBinaryParseError(context string, cause error, offset int64, region []byte) *ParseError {
	return &ParseError{
		Context: context,
		Offset:  offset,
		Excerpt: elideExcerpt(region),
		Cause:   cause,
	}
}

// NewTextParseError builds a ParseError for the SNBT tokenizer/parser.
func NewTextParseError(context string, cause error, line, column int) *ParseError {
	return &ParseError{
		Context: context,
		Line:    line,
		Column:  column,
		Cause:   cause,
	}
}

func elideExcerpt(region []byte) []byte {
	if len(region) <= 10 {
		out := make([]byte, len(region))
		copy(out, region)
		return out
	}
	out := make([]byte, 0, len(region[:4])+3+len(region[len(region)-3:]))
	out = append(out, region[:4]...)
	out = append(out, '.', '.', '.')
	out = append(out, region[len(region)-3:]...)
	return out
}

// EncodingError reports a value that cannot be represented on the wire: out
// of range for its declared kind, or a string payload over the 16-bit length
// limit.
type EncodingError struct {
	Context string
	Cause   error
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("%s: %v", e.Context, e.Cause)
}

func (e *EncodingError) Unwrap() error {
	return e.Cause
}

// NewEncodingError wraps cause as an EncodingError.
func NewEncodingError(context string, cause error) error {
	if cause == nil {
		return nil
	}
	return &EncodingError{Context: context, Cause: cause}
}

// BufferError reports a caller-supplied stream that lacks a capability the
// operation needs (readable/writable/seekable).
type BufferError struct {
	Context string
	Cause   error
}

func (e *BufferError) Error() string {
	return fmt.Sprintf("%s: %v", e.Context, e.Cause)
}

func (e *BufferError) Unwrap() error {
	return e.Cause
}

// NewBufferError wraps cause as a BufferError.
func NewBufferError(context string, cause error) error {
	if cause == nil {
		return nil
	}
	return &BufferError{Context: context, Cause: cause}
}

// FileError reports a filesystem-boundary failure: missing path, not a
// regular file, or a corrupt compression header.
type FileError struct {
	Context string
	Cause   error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("%s: %v", e.Context, e.Cause)
}

func (e *FileError) Unwrap() error {
	return e.Cause
}

// NewFileError wraps cause as a FileError.
func NewFileError(context string, cause error) error {
	if cause == nil {
		return nil
	}
	return &FileError{Context: context, Cause: cause}
}

// DataError reports a structural violation discovered after a successful
// low-level parse, such as a root tag that is not Compound or List.
type DataError struct {
	Context string
	Cause   error
}

func (e *DataError) Error() string {
	return fmt.Sprintf("%s: %v", e.Context, e.Cause)
}

func (e *DataError) Unwrap() error {
	return e.Cause
}

// NewDataError wraps cause as a DataError.
func NewDataError(context string, cause error) error {
	if cause == nil {
		return nil
	}
	return &DataError{Context: context, Cause: cause}
}
