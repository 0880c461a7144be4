package nbt

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func sampleCompound(t *testing.T) Tag {
	t.Helper()
	root := NewCompound()
	require.NoError(t, root.CompoundPut("name", mustString(t, "Steve")))
	require.NoError(t, root.CompoundPut("health", NewFloat(20)))
	require.NoError(t, root.CompoundPut("level", NewInt(42)))

	inventory := NewList(KindEnd)
	require.NoError(t, inventory.ListAppend(mustString(t, "sword")))
	require.NoError(t, inventory.ListAppend(mustString(t, "shield")))
	require.NoError(t, root.CompoundPut("inventory", inventory))

	return root
}

func mustString(t *testing.T, s string) Tag {
	t.Helper()
	tag, err := NewString(s)
	require.NoError(t, err)
	return tag
}

func TestReadWriteNBTRoundTrip(t *testing.T) {
	root := sampleCompound(t)

	var buf bytes.Buffer
	require.NoError(t, WriteNBT(&buf, root, "player", WriteOptions{}))

	got, name, err := ReadNBT(bytes.NewReader(buf.Bytes()), ReadOptions{})
	require.NoError(t, err)
	require.Equal(t, "player", name)
	require.True(t, root.Equal(got))
}

func TestReadWriteNBTLittleEndian(t *testing.T) {
	root := sampleCompound(t)

	var buf bytes.Buffer
	require.NoError(t, WriteNBT(&buf, root, "player", WriteOptions{Order: LittleEndian}))

	got, _, err := ReadNBT(bytes.NewReader(buf.Bytes()), ReadOptions{Order: LittleEndian})
	require.NoError(t, err)
	require.True(t, root.Equal(got))
}

func TestRootNBTNBTRoundTripWithGzip(t *testing.T) {
	root := NewRootNBT(sampleCompound(t), "player")

	var buf bytes.Buffer
	require.NoError(t, root.ToNBT(&buf, CompressionGzip, nil))

	got, err := FromNBT(bytes.NewReader(buf.Bytes()), CompressionGzip, nil)
	require.NoError(t, err)
	require.Equal(t, "player", got.RootName())
	require.True(t, root.Tag().Equal(got.Tag()))
}

func TestRootNBTDatRoundTripWithZlib(t *testing.T) {
	root := NewRootNBT(sampleCompound(t), "player")

	var buf bytes.Buffer
	require.NoError(t, root.ToDat(&buf, CompressionZlib, nil))

	got, err := FromDat(bytes.NewReader(buf.Bytes()), CompressionZlib, nil)
	require.NoError(t, err)
	require.True(t, root.Tag().Equal(got.Tag()))
}

func TestFromDatPopulatesDatHeader(t *testing.T) {
	root := NewRootNBT(sampleCompound(t), "player")

	var buf bytes.Buffer
	require.NoError(t, root.ToDat(&buf, CompressionNone, BigEndian))

	got, err := FromDat(bytes.NewReader(buf.Bytes()), CompressionNone, BigEndian)
	require.NoError(t, err)
	require.NotNil(t, got.DatHeader)
	require.Equal(t, int32(0x0A000000), got.DatHeader.ToolVersion)

	var body bytes.Buffer
	require.NoError(t, WriteNBT(&body, root.Tag(), root.RootName(), WriteOptions{Order: BigEndian}))
	require.Equal(t, int32(body.Len()), got.DatHeader.PayloadLength)
}

func TestAutoReadFileDetectsDatGzipAndLittleEndian(t *testing.T) {
	root := NewRootNBT(sampleCompound(t), "player")
	path := filepath.Join(t.TempDir(), "out.dat")
	require.NoError(t, WriteDatFile(path, root, CompressionGzip, LittleEndian))

	got, err := AutoReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "player", got.RootName())
	require.True(t, root.Tag().Equal(got.Tag()))
	require.NotNil(t, got.DatHeader)
}

func TestAutoReadFileDetectsSNBTText(t *testing.T) {
	root := NewRootNBT(sampleCompound(t), "player")
	path := filepath.Join(t.TempDir(), "out.snbt")
	require.NoError(t, WriteSNBTFile(path, root, false, 4))

	got, err := AutoReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "player", got.RootName())
	require.True(t, root.Tag().Equal(got.Tag()))
	require.Nil(t, got.DatHeader)
}

func TestTagDebugString(t *testing.T) {
	root := sampleCompound(t)
	out := root.DebugString()
	require.Contains(t, out, "Compound(")
	require.Contains(t, out, `name: <String "Steve">`)
}

func TestSniffCompressionDetectsHeaders(t *testing.T) {
	require.Equal(t, CompressionGzip, sniffCompression([]byte{0x1F, 0x8B, 0}))
	require.Equal(t, CompressionZlib, sniffCompression([]byte{0x78, 0x9C, 0}))
	require.Equal(t, CompressionNone, sniffCompression([]byte{0, 0, 0}))
	require.Equal(t, CompressionNone, sniffCompression(nil))
}

func TestRootNBTSNBTRoundTrip(t *testing.T) {
	root := NewRootNBT(sampleCompound(t), "player")

	text, err := root.ToSNBT(false, 4)
	require.NoError(t, err)

	got, err := FromSNBT(text)
	require.NoError(t, err)
	require.Equal(t, "player", got.RootName())
	require.True(t, root.Tag().Equal(got.Tag()))
}

func TestRootNBTSNBTFormattedRoundTrip(t *testing.T) {
	root := NewRootNBT(sampleCompound(t), "player")

	text, err := root.ToSNBT(true, 2)
	require.NoError(t, err)

	got, err := FromSNBT(text)
	require.NoError(t, err)
	require.True(t, root.Tag().Equal(got.Tag()))
}

func TestRootNBTPathIsNotImplemented(t *testing.T) {
	root := NewRootNBT(sampleCompound(t), "player")
	_, err := root.Path("player.inventory")
	require.ErrorIs(t, err, ErrNotImplemented)
}

func TestWriteSNBTCompactAndFormatted(t *testing.T) {
	tag := NewInt(5)
	require.Equal(t, "5", WriteSNBT(tag))

	out, err := WriteSNBTFormatted(tag, 4)
	require.NoError(t, err)
	require.Equal(t, "5", out)
}
