package utils

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseErrorMessageVariants(t *testing.T) {
	tests := []struct {
		name string
		err  *ParseError
		want string
	}{
		{
			name: "text error with line and column",
			err:  NewTextParseError("parse value", errors.New("unexpected token"), 3, 7),
			want: "parse value: unexpected token (line 3, column 7)",
		},
		{
			name: "binary error with short excerpt",
			err:  NewBinaryParseError("read int", errors.New("eof"), 12, []byte{1, 2, 3}),
			want: `read int: eof (offset 12, near "\x01\x02\x03")`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestElideExcerptKeepsShortRegionsWhole(t *testing.T) {
	short := []byte("abcdefghij")
	require.Equal(t, short, elideExcerpt(short))
}

func TestElideExcerptTrimsLongRegions(t *testing.T) {
	long := []byte("abcdefghijklmnop")
	got := elideExcerpt(long)
	require.Equal(t, "abcd...nop", string(got))
}

func TestWrappedErrorsUnwrap(t *testing.T) {
	cause := errors.New("boom")

	require.ErrorIs(t, NewEncodingError("encode", cause), cause)
	require.ErrorIs(t, NewBufferError("buffer", cause), cause)
	require.ErrorIs(t, NewFileError("file", cause), cause)
	require.ErrorIs(t, NewDataError("data", cause), cause)
}

func TestWrapConstructorsAreNilSafe(t *testing.T) {
	require.NoError(t, NewEncodingError("x", nil))
	require.NoError(t, NewBufferError("x", nil))
	require.NoError(t, NewFileError("x", nil))
	require.NoError(t, NewDataError("x", nil))
}
