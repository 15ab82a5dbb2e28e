package container

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/glorpus-work/pkginstall/pkg/model"
	"github.com/glorpus-work/pkginstall/pkg/sfo"
)

// PKGMagic is the big-endian signature at the start of a .pkg file.
const PKGMagic uint32 = 0x7F434E54

const (
	offEntryCount   = 0x10
	offTableOffset  = 0x18
	offContentID    = 0x40
	contentIDSize   = 0x24
	offContentFlags = 0x78
	pkgHeaderSize   = 0x80

	entrySize = 32
	// EntryParamSFO is the entry table id of the embedded param.sfo.
	EntryParamSFO uint32 = 0x1000

	maxEntries = 1 << 16
	maxSFOSize = 1 << 20
)

// Content flag bits of the .pkg header.
const (
	FlagFirstPatch      uint32 = 0x00100000
	FlagPatchGo         uint32 = 0x00200000
	FlagRemaster        uint32 = 0x00400000
	FlagPSCloud         uint32 = 0x00800000
	FlagGDAC            uint32 = 0x02000000
	FlagNonGame         uint32 = 0x04000000
	FlagSubsequentPatch uint32 = 0x40000000
	FlagDeltaPatch      uint32 = 0x41000000
	FlagCumulativePatch uint32 = 0x60000000
)

var contentFlagNames = []struct {
	bits uint32
	name string
}{
	{FlagFirstPatch, "FIRST_PATCH"},
	{FlagPatchGo, "PATCHGO"},
	{FlagRemaster, "REMASTER"},
	{FlagPSCloud, "PS_CLOUD"},
	{FlagGDAC, "GD_AC"},
	{FlagNonGame, "NON_GAME"},
	{FlagSubsequentPatch, "SUBSEQUENT_PATCH"},
	{FlagDeltaPatch, "DELTA_PATCH"},
	{FlagCumulativePatch, "CUMULATIVE_PATCH"},
}

// FlagTokens converts header content flags to tokens. Every *_PATCH token
// also adds the generic PATCH token.
func FlagTokens(flags uint32) []string {
	var tokens []string
	patch := false
	for _, f := range contentFlagNames {
		if flags&f.bits == f.bits {
			tokens = append(tokens, f.name)
			if strings.HasSuffix(f.name, "_PATCH") {
				patch = true
			}
		}
	}
	if patch {
		tokens = append(tokens, model.FlagPatch)
	}
	return tokens
}

func isPKGMagic(b []byte) bool {
	return len(b) >= 4 && binary.BigEndian.Uint32(b) == PKGMagic
}

type pkgEntry struct {
	id     uint32
	offset uint32
	size   uint32
}

func openPKG(path string) (*Package, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	info, err := f.Stat()
	if err != nil {
		return nil, err
	}
	size := info.Size()

	header := make([]byte, pkgHeaderSize)
	if _, err := io.ReadFull(f, header); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidHeader, err)
	}
	be := binary.BigEndian
	if be.Uint32(header) != PKGMagic {
		return nil, ErrInvalidHeader
	}

	contentID := string(bytes.TrimRight(header[offContentID:offContentID+contentIDSize], "\x00"))
	pkg := &Package{
		Path:      path,
		Format:    FormatPKG,
		ContentID: contentID,
		TitleID:   titleFromContentID(contentID),
		Flags:     FlagTokens(be.Uint32(header[offContentFlags:])),
		Root:      ".",
	}

	entry, err := findEntry(f, size, be.Uint32(header[offTableOffset:]), be.Uint32(header[offEntryCount:]), EntryParamSFO)
	if err != nil {
		return nil, err
	}
	if entry.size > maxSFOSize || int64(entry.offset)+int64(entry.size) > size {
		return nil, fmt.Errorf("%w: param.sfo entry out of range", ErrInvalidHeader)
	}
	data := make([]byte, entry.size)
	if _, err := f.ReadAt(data, int64(entry.offset)); err != nil {
		return nil, fmt.Errorf("failed to read param.sfo: %w", err)
	}
	if pkg.SFO, err = sfo.Parse(data); err != nil {
		return nil, err
	}

	if pkg.TitleID == "" {
		if id, ok := pkg.SFO.GetString(model.KeyTitleID); ok {
			pkg.TitleID = id
		}
	}
	if pkg.TitleID == "" {
		return nil, ErrNoTitleID
	}
	return pkg, nil
}

func findEntry(r io.ReaderAt, size int64, tableOffset, count, id uint32) (pkgEntry, error) {
	if count > maxEntries || int64(tableOffset)+int64(count)*entrySize > size {
		return pkgEntry{}, fmt.Errorf("%w: entry table out of range", ErrInvalidHeader)
	}

	table := make([]byte, int(count)*entrySize)
	if _, err := r.ReadAt(table, int64(tableOffset)); err != nil {
		return pkgEntry{}, fmt.Errorf("%w: %w", ErrInvalidHeader, err)
	}

	be := binary.BigEndian
	for i := 0; i < int(count); i++ {
		rec := table[i*entrySize : (i+1)*entrySize]
		if be.Uint32(rec[0:4]) != id {
			continue
		}
		return pkgEntry{
			id:     id,
			offset: be.Uint32(rec[16:20]),
			size:   be.Uint32(rec[20:24]),
		}, nil
	}
	return pkgEntry{}, ErrNoParamSFO
}
