// Package sfo reads and writes PSF system metadata files (param.sfo).
//
// A PSF file is a little-endian key/value table. The header is followed by a
// fixed-size index, a key table of NUL-terminated names and a data table that
// holds either UTF-8 strings or 32-bit integers.
package sfo

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/glorpus-work/pkginstall/pkg/errutils"
	"github.com/glorpus-work/pkginstall/pkg/model"
)

// Magic is the PSF signature, "\x00PSF" read as a little-endian uint32.
const Magic uint32 = 0x46535000

// DefaultVersion is the table version written by New.
const DefaultVersion uint32 = 0x0101

const (
	headerSize = 20
	indexSize  = 16
)

// Format is the encoding of an entry's value.
type Format uint16

// Value formats.
const (
	FormatSpecial Format = 0x0004
	FormatString  Format = 0x0204
	FormatInteger Format = 0x0404
)

// Entry is a single key/value pair.
type Entry struct {
	Key    string
	Format Format
	// MaxLen is the space reserved for the value in the data table.
	MaxLen uint32
	Data   []byte
}

// File is a parsed param.sfo.
type File struct {
	Version uint32
	entries []Entry
}

// New returns an empty File.
func New() *File {
	return &File{Version: DefaultVersion}
}

// Open reads and parses the file at path.
func Open(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errutils.Wrapf(err, "failed to read %s", path)
	}
	f, err := Parse(data)
	if err != nil {
		return nil, errutils.Wrapf(err, "failed to parse %s", path)
	}
	return f, nil
}

// Parse decodes a PSF table from data.
func Parse(data []byte) (*File, error) {
	if len(data) < headerSize {
		return nil, ErrTruncated
	}
	le := binary.LittleEndian
	if le.Uint32(data[0:4]) != Magic {
		return nil, ErrInvalidMagic
	}

	f := &File{Version: le.Uint32(data[4:8])}
	keyTable := le.Uint32(data[8:12])
	dataTable := le.Uint32(data[12:16])
	count := le.Uint32(data[16:20])

	if uint64(headerSize)+uint64(count)*indexSize > uint64(len(data)) {
		return nil, ErrTruncated
	}

	f.entries = make([]Entry, 0, count)
	for i := uint32(0); i < count; i++ {
		off := headerSize + i*indexSize
		rec := data[off : off+indexSize]

		keyOff := uint64(keyTable) + uint64(le.Uint16(rec[0:2]))
		format := Format(le.Uint16(rec[2:4]))
		length := le.Uint32(rec[4:8])
		maxLen := le.Uint32(rec[8:12])
		dataOff := uint64(dataTable) + uint64(le.Uint32(rec[12:16]))

		if keyOff >= uint64(len(data)) {
			return nil, fmt.Errorf("%w: key of entry %d", ErrTruncated, i)
		}
		key := data[keyOff:]
		if n := bytes.IndexByte(key, 0); n >= 0 {
			key = key[:n]
		}

		if dataOff+uint64(length) > uint64(len(data)) {
			return nil, fmt.Errorf("%w: value of %q", ErrTruncated, key)
		}
		value := make([]byte, length)
		copy(value, data[dataOff:dataOff+uint64(length)])

		f.entries = append(f.entries, Entry{
			Key:    string(key),
			Format: format,
			MaxLen: maxLen,
			Data:   value,
		})
	}

	return f, nil
}

func (f *File) lookup(key string) (*Entry, bool) {
	for i := range f.entries {
		if f.entries[i].Key == key {
			return &f.entries[i], true
		}
	}
	return nil, false
}

// Entry returns the raw entry for key.
func (f *File) Entry(key string) (Entry, bool) {
	e, ok := f.lookup(key)
	if !ok {
		return Entry{}, false
	}
	return *e, true
}

// GetString returns the string value of key with trailing NULs removed.
// Integer entries are not returned as strings.
func (f *File) GetString(key string) (string, bool) {
	e, ok := f.lookup(key)
	if !ok || (e.Format != FormatString && e.Format != FormatSpecial) {
		return "", false
	}
	return strings.TrimRight(string(e.Data), "\x00"), true
}

// GetInteger returns the integer value of key.
func (f *File) GetInteger(key string) (uint32, bool) {
	e, ok := f.lookup(key)
	if !ok || e.Format != FormatInteger || len(e.Data) < 4 {
		return 0, false
	}
	return binary.LittleEndian.Uint32(e.Data), true
}

// Keys returns the keys in table order.
func (f *File) Keys() []string {
	keys := make([]string, len(f.entries))
	for i, e := range f.entries {
		keys[i] = e.Key
	}
	return keys
}

// Entries returns a copy of all entries in table order.
func (f *File) Entries() []Entry {
	return append([]Entry(nil), f.entries...)
}

// SetString sets key to a NUL-terminated UTF-8 string.
func (f *File) SetString(key, value string) {
	data := append([]byte(value), 0)
	f.set(Entry{Key: key, Format: FormatString, MaxLen: align4(uint32(len(data))), Data: data})
}

// SetInteger sets key to a 32-bit integer.
func (f *File) SetInteger(key string, value uint32) {
	data := make([]byte, 4)
	binary.LittleEndian.PutUint32(data, value)
	f.set(Entry{Key: key, Format: FormatInteger, MaxLen: 4, Data: data})
}

// Delete removes key.
func (f *File) Delete(key string) {
	for i := range f.entries {
		if f.entries[i].Key == key {
			f.entries = append(f.entries[:i], f.entries[i+1:]...)
			return
		}
	}
}

func (f *File) set(e Entry) {
	if cur, ok := f.lookup(e.Key); ok {
		*cur = e
		return
	}
	f.entries = append(f.entries, e)
	sort.SliceStable(f.entries, func(i, j int) bool { return f.entries[i].Key < f.entries[j].Key })
}

// MarshalBinary encodes the table. Entries keep their order.
func (f *File) MarshalBinary() ([]byte, error) {
	le := binary.LittleEndian

	var keys bytes.Buffer
	keyOffsets := make([]uint32, len(f.entries))
	for i, e := range f.entries {
		keyOffsets[i] = uint32(keys.Len())
		keys.WriteString(e.Key)
		keys.WriteByte(0)
	}
	for keys.Len()%4 != 0 {
		keys.WriteByte(0)
	}

	var values bytes.Buffer
	dataOffsets := make([]uint32, len(f.entries))
	for i, e := range f.entries {
		if uint32(len(e.Data)) > e.MaxLen {
			return nil, fmt.Errorf("%w: value of %q exceeds its reserved length", ErrUnsupportedValue, e.Key)
		}
		dataOffsets[i] = uint32(values.Len())
		values.Write(e.Data)
		values.Write(make([]byte, e.MaxLen-uint32(len(e.Data))))
	}

	keyTable := uint32(headerSize + indexSize*len(f.entries))
	dataTable := keyTable + uint32(keys.Len())

	out := make([]byte, int(dataTable)+values.Len())
	le.PutUint32(out[0:4], Magic)
	le.PutUint32(out[4:8], f.Version)
	le.PutUint32(out[8:12], keyTable)
	le.PutUint32(out[12:16], dataTable)
	le.PutUint32(out[16:20], uint32(len(f.entries)))

	for i, e := range f.entries {
		rec := out[headerSize+i*indexSize:]
		le.PutUint16(rec[0:2], uint16(keyOffsets[i]))
		le.PutUint16(rec[2:4], uint16(e.Format))
		le.PutUint32(rec[4:8], uint32(len(e.Data)))
		le.PutUint32(rec[8:12], e.MaxLen)
		le.PutUint32(rec[12:16], dataOffsets[i])
	}
	copy(out[keyTable:], keys.Bytes())
	copy(out[dataTable:], values.Bytes())

	return out, nil
}

// WriteFile encodes f and writes it to path.
func (f *File) WriteFile(path string, perm os.FileMode) error {
	data, err := f.MarshalBinary()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, perm); err != nil {
		return errutils.Wrapf(err, "failed to write %s", path)
	}
	return nil
}

func align4(n uint32) uint32 {
	return (n + 3) &^ 3
}

// Reader opens param.sfo files from disk.
type Reader struct{}

// NewReader returns a Reader.
func NewReader() Reader {
	return Reader{}
}

// ReadFile parses the file at path and exposes it as model.Fields.
func (Reader) ReadFile(path string) (model.Fields, error) {
	f, err := Open(path)
	if err != nil {
		return nil, err
	}
	return f, nil
}
