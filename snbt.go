package nbt

import (
	"github.com/scigolib/nbt/internal/snbt"
)

// SNBTOptions configures SNBT parsing.
type SNBTOptions struct {
	MaxDepth int
}

// ReadSNBT parses src as a single stringified-NBT value.
func ReadSNBT(src string, opts SNBTOptions) (Tag, error) {
	var popts []snbt.ParserOption
	if opts.MaxDepth > 0 {
		popts = append(popts, snbt.WithParserMaxDepth(opts.MaxDepth))
	}
	return snbt.NewParser(src, popts...).Parse()
}

// WriteSNBT renders tag as compact, single-line SNBT.
func WriteSNBT(tag Tag) string {
	return snbt.Print(tag)
}

// WriteSNBTFormatted renders tag as Minecraft's multi-line formatted SNBT,
// indenting by indentSize spaces (1-16) per nesting level.
func WriteSNBTFormatted(tag Tag, indentSize int) (string, error) {
	return snbt.PrintFormatted(tag, indentSize)
}
