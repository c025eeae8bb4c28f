// Package pak reads the game's PAK archives.
//
// An archive starts with a 12 byte header followed by a table of fixed size entry records.
// The final record does not describe a file: it points at the list of entry names, which
// are stored as length-prefixed strings in table order. All integers are little-endian.
package pak

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"unicode/utf8"

	"github.com/klauspost/compress/zlib"
	pkgerrors "github.com/pkg/errors"
)

const (
	// FlagStored marks an entry whose data is stored as is.
	FlagStored uint8 = 0
	// FlagZlib marks an entry whose data is zlib compressed.
	FlagZlib uint8 = 1

	headerSize = 12
	recordSize = 17

	// The name list starts this many bytes into the name list record's data.
	nameListSkip = 4
)

var (
	// ErrNoEntries is returned for archives whose header declares no records.
	ErrNoEntries = errors.New("archive has no entry table")
	// ErrInvalidName is returned when an entry name is not valid UTF-8.
	ErrInvalidName = errors.New("entry name is not valid UTF-8")
	// ErrUnknownFlags is returned when opening an entry with an unsupported encoding.
	ErrUnknownFlags = errors.New("unknown entry flags")
	// ErrSizeMismatch is returned when a compressed entry does not inflate to its declared size.
	ErrSizeMismatch = errors.New("entry size does not match its contents")
)

// Header is the fixed header at the start of every archive.
type Header struct {
	Magic      [4]byte
	Offset     uint32
	EntryCount uint32
}

// record mirrors the on-disk layout of an entry.
type record struct {
	Reserved   uint32
	StoredSize uint32
	Size       uint32
	Flags      uint8
	Offset     uint32
}

// Entry describes a single file inside an archive.
type Entry struct {
	Name string
	// StoredSize is the number of bytes the entry occupies in the archive.
	StoredSize uint32
	// Size is the size of the entry once decompressed.
	Size     uint32
	Flags    uint8
	Offset   uint32
	Reserved uint32

	src io.ReaderAt
}

// Compressed reports whether the entry data is zlib compressed.
func (e *Entry) Compressed() bool {
	return e.Flags == FlagZlib
}

// Open returns a reader over the entry's contents, decompressing them if needed. Reads fail
// with io.ErrUnexpectedEOF when the archive ends before the entry's stored data does.
func (e *Entry) Open() (io.ReadCloser, error) {
	stored := &exactReader{
		r:    io.NewSectionReader(e.src, int64(e.Offset), int64(e.StoredSize)),
		want: int64(e.StoredSize),
		short: func(got int64) error {
			return fmt.Errorf("entry '%s' has %d of %d stored bytes: %w", e.Name, got, e.StoredSize, io.ErrUnexpectedEOF)
		},
	}

	switch e.Flags {
	case FlagStored:
		return io.NopCloser(stored), nil
	case FlagZlib:
		r, err := zlib.NewReader(stored)
		if err != nil {
			return nil, pkgerrors.Wrapf(err, "failed to open compressed entry '%s'", e.Name)
		}

		inflated := &exactReader{
			r:    r,
			want: int64(e.Size),
			short: func(got int64) error {
				return fmt.Errorf("entry '%s' inflated to %d bytes, expected %d: %w", e.Name, got, e.Size, ErrSizeMismatch)
			},
		}
		return struct {
			io.Reader
			io.Closer
		}{inflated, r}, nil
	default:
		return nil, fmt.Errorf("%w %d for entry '%s'", ErrUnknownFlags, e.Flags, e.Name)
	}
}

// exactReader fails when r ends before want bytes or produces more than want bytes.
type exactReader struct {
	r     io.Reader
	want  int64
	got   int64
	short func(got int64) error
}

func (x *exactReader) Read(p []byte) (int, error) {
	n, err := x.r.Read(p)
	x.got += int64(n)

	if x.got > x.want {
		return n, x.short(x.got)
	}

	if err == io.EOF && x.got < x.want {
		return n, x.short(x.got)
	}

	return n, err
}

// Archive is an opened PAK archive.
type Archive struct {
	Header  Header
	entries []Entry
	closer  io.Closer
}

// Open reads the archive at path. The archive must be closed once its entries are no
// longer needed.
func Open(path string) (*Archive, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open archive '%s': %w", path, err)
	}

	archive, err := Read(file)
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("failed to read archive '%s': %w", path, err)
	}

	archive.closer = file
	return archive, nil
}

// Read parses an archive from r. Entry data is read lazily through r.
func Read(r io.ReaderAt) (*Archive, error) {
	stream := io.NewSectionReader(r, 0, 1<<63-1)

	archive := &Archive{}
	if err := binary.Read(stream, binary.LittleEndian, &archive.Header); err != nil {
		return nil, pkgerrors.Wrap(err, "failed to read header")
	}

	if archive.Header.EntryCount == 0 {
		return nil, ErrNoEntries
	}

	// The entry table follows the header directly.
	records := make([]record, 0, min(archive.Header.EntryCount, 1024))
	for i := uint32(0); i < archive.Header.EntryCount; i++ {
		rec := record{}
		if err := binary.Read(stream, binary.LittleEndian, &rec); err != nil {
			return nil, pkgerrors.Wrapf(err, "failed to read entry %d", i)
		}
		records = append(records, rec)
	}

	nameList := records[len(records)-1]
	records = records[:len(records)-1]

	if _, err := stream.Seek(int64(nameList.Offset)+nameListSkip, io.SeekStart); err != nil {
		return nil, pkgerrors.Wrap(err, "failed to seek to name list")
	}

	archive.entries = make([]Entry, 0, len(records))
	for i, rec := range records {
		name, err := readName(stream)
		if err != nil {
			return nil, pkgerrors.Wrapf(err, "failed to read name of entry %d", i)
		}

		archive.entries = append(archive.entries, Entry{
			Name:       name,
			StoredSize: rec.StoredSize,
			Size:       rec.Size,
			Flags:      rec.Flags,
			Offset:     rec.Offset,
			Reserved:   rec.Reserved,
			src:        r,
		})
	}

	return archive, nil
}

func readName(r io.Reader) (string, error) {
	var length uint16
	if err := binary.Read(r, binary.LittleEndian, &length); err != nil {
		return "", err
	}

	raw := make([]byte, length)
	if _, err := io.ReadFull(r, raw); err != nil {
		return "", err
	}

	if !utf8.Valid(raw) {
		return "", ErrInvalidName
	}

	return string(raw), nil
}

// Entries returns the files in the archive, in table order.
func (a *Archive) Entries() []Entry {
	return a.entries
}

// Close releases the file backing the archive, if any.
func (a *Archive) Close() error {
	if a.closer == nil {
		return nil
	}

	return a.closer.Close()
}
