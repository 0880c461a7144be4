// Command nbtool dumps, converts, and inspects NBT data: binary (.nbt/.dat,
// Java or Bedrock byte order, with zlib/gzip envelopes) and SNBT text.
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/alecthomas/kong"

	"github.com/scigolib/nbt"
)

type dumpCmd struct {
	File string `arg:"" help:"Path to an NBT, .dat, or SNBT file; compression and byte order are auto-detected."`
}

func (c *dumpCmd) Run() error {
	root, err := nbt.AutoReadFile(c.File)
	if err != nil {
		return err
	}
	fmt.Printf("%s %q:\n", root.Tag().Kind(), root.RootName())
	root.Tag().Info()
	return nil
}

type convertCmd struct {
	In     string `arg:"" help:"Source file."`
	Out    string `arg:"" help:"Destination file."`
	ToDat  bool   `help:"Write the destination as a .dat envelope."`
	ToSnbt bool   `help:"Write the destination as SNBT text instead of binary."`
	Little bool   `help:"Use Bedrock (little-endian) binary encoding."`
	Gzip   bool   `help:"Compress the binary destination with gzip."`
	Zlib   bool   `help:"Compress the binary destination with zlib."`
}

func (c *convertCmd) Run() error {
	order := nbt.ByteOrder(nbt.BigEndian)
	if c.Little {
		order = nbt.LittleEndian
	}

	root, err := nbt.AutoReadFile(c.In)
	if err != nil {
		return err
	}

	if c.ToSnbt {
		return nbt.WriteSNBTFile(c.Out, root, true, 4)
	}

	mode := nbt.CompressionNone
	switch {
	case c.Gzip:
		mode = nbt.CompressionGzip
	case c.Zlib:
		mode = nbt.CompressionZlib
	}
	if c.ToDat {
		return nbt.WriteDatFile(c.Out, root, mode, order)
	}
	return nbt.WriteNBTFile(c.Out, root, mode, order)
}

type infoCmd struct {
	File string `arg:"" help:"Path to an NBT or SNBT file."`
}

func (c *infoCmd) Run() error {
	root, err := nbt.AutoReadFile(c.File)
	if err != nil {
		return err
	}
	tag := root.Tag()
	fmt.Printf("root name: %q\n", root.RootName())
	fmt.Printf("root kind: %s\n", tag.Kind())
	fmt.Printf("entries:   %d\n", tag.Len())
	if h := root.DatHeader; h != nil {
		fmt.Printf("tool version:  %d\n", h.ToolVersion)
		fmt.Printf("payload length: %d\n", h.PayloadLength)
	}
	return nil
}

var cli struct {
	Dump    dumpCmd    `cmd:"" help:"Print an indented diagnostic dump of a file's tag tree."`
	Convert convertCmd `cmd:"" help:"Convert between NBT, .dat, and SNBT."`
	Info    infoCmd    `cmd:"" help:"Summarize a file's root tag."`
}

func main() {
	ctx := kong.Parse(&cli,
		kong.Name("nbtool"),
		kong.Description("Inspect and convert Minecraft NBT data."),
		kong.UsageOnError(),
	)
	if err := ctx.Run(); err != nil {
		log.Fatalf("nbtool: %v", err)
	}
	os.Exit(0)
}
