// Package nbt reads and writes Minecraft's Named Binary Tag format: the
// binary wire format (Java big-endian and Bedrock little-endian), the
// stringified text format (SNBT), and the on-disk ".dat" envelope with its
// zlib/gzip compression wrapper.
//
// The Tag type models all thirteen tag kinds as a single value; construct
// one with the New* functions and inspect it with the As* accessors. Use
// ReadNBT/WriteNBT for the binary format, ReadSNBT/WriteSNBT for text, and
// RootNBT for the named root plus the .dat file envelope.
package nbt
