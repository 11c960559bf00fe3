// Package romloader reads program images from plain files or from the first
// matching entry of a ZIP, 7z, gzip, tar.gz or RAR archive.
package romloader

import (
	"bytes"
	"errors"
	"fmt"
	"hash/crc32"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Magic bytes for format detection
var (
	magicZIP    = []byte{0x50, 0x4B, 0x03, 0x04}
	magicZIPEnd = []byte{0x50, 0x4B, 0x05, 0x06} // empty zip
	magic7z     = []byte{0x37, 0x7A, 0xBC, 0xAF, 0x27, 0x1C}
	magicGzip   = []byte{0x1F, 0x8B}
	magicRAR    = []byte{0x52, 0x61, 0x72, 0x21} // "Rar!"
)

// DefaultMaxSize is the image size limit used when Loader.MaxSize is zero.
const DefaultMaxSize = 8 * 1024 * 1024

var (
	// ErrNoImage is returned when an archive holds no entry with a known extension.
	ErrNoImage = errors.New("no program image found in archive")
	// ErrUnsupportedFormat is returned for files that are neither an archive
	// nor carry a known extension.
	ErrUnsupportedFormat = errors.New("unsupported file format")
	// ErrTooLarge is returned when an image exceeds the size limit.
	ErrTooLarge = errors.New("program image exceeds maximum size")
)

// Image is a loaded program image.
type Image struct {
	Data  []byte
	Name  string // base name of the file or archive entry
	CRC32 uint32 // IEEE checksum of Data
}

// FromBytes wraps in-memory data as an image.
func FromBytes(name string, data []byte) *Image {
	return &Image{
		Data:  data,
		Name:  name,
		CRC32: crc32.ChecksumIEEE(data),
	}
}

func (img *Image) String() string {
	return fmt.Sprintf("%s (%d bytes, crc32 %08x)", img.Name, len(img.Data), img.CRC32)
}

type format int

const (
	formatUnknown format = iota
	formatRaw
	formatZIP
	format7z
	formatGzip
	formatRAR
)

// Loader reads program images with a given set of extensions.
type Loader struct {
	// Extensions that identify a program image, e.g. ".ch8". Matching is
	// case-insensitive.
	Extensions []string
	// MaxSize caps the decoded image size in bytes. 0 selects DefaultMaxSize.
	MaxSize int
}

// Load reads the image at path using a Loader with the given extensions.
func Load(path string, extensions []string) (*Image, error) {
	l := Loader{Extensions: extensions}
	return l.Load(path)
}

// Load reads the image at path. Archives are recognized by magic bytes
// first and by extension second; anything else must carry one of the
// loader's extensions.
func (l *Loader) Load(path string) (*Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open image: %w", err)
	}
	defer f.Close()

	header := make([]byte, 16)
	n, err := io.ReadFull(f, header)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return nil, fmt.Errorf("read header: %w", err)
	}
	header = header[:n]

	switch l.detect(header, path) {
	case formatRaw:
		if _, err := f.Seek(0, io.SeekStart); err != nil {
			return nil, fmt.Errorf("seek image: %w", err)
		}
		data, err := l.readLimited(f)
		if err != nil {
			return nil, fmt.Errorf("read image: %w", err)
		}
		return FromBytes(filepath.Base(path), data), nil
	case formatZIP:
		return l.fromZIP(path)
	case format7z:
		return l.from7z(path)
	case formatGzip:
		return l.fromGzip(path)
	case formatRAR:
		return l.fromRAR(path)
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
}

func (l *Loader) detect(header []byte, path string) format {
	switch {
	case bytes.HasPrefix(header, magicZIP), bytes.HasPrefix(header, magicZIPEnd):
		return formatZIP
	case bytes.HasPrefix(header, magicRAR):
		return formatRAR
	case bytes.HasPrefix(header, magic7z):
		return format7z
	case bytes.HasPrefix(header, magicGzip):
		return formatGzip
	}

	lower := strings.ToLower(path)
	switch {
	case strings.HasSuffix(lower, ".zip"):
		return formatZIP
	case strings.HasSuffix(lower, ".7z"):
		return format7z
	case strings.HasSuffix(lower, ".gz"), strings.HasSuffix(lower, ".tgz"):
		return formatGzip
	case strings.HasSuffix(lower, ".rar"):
		return formatRAR
	}
	if l.matches(path) {
		return formatRaw
	}
	return formatUnknown
}

// matches reports whether name ends in one of the loader's extensions.
func (l *Loader) matches(name string) bool {
	lower := strings.ToLower(name)
	for _, ext := range l.Extensions {
		if strings.HasSuffix(lower, strings.ToLower(ext)) {
			return true
		}
	}
	return false
}

func (l *Loader) maxSize() int {
	if l.MaxSize > 0 {
		return l.MaxSize
	}
	return DefaultMaxSize
}

// readLimited reads all of r, failing once more than maxSize bytes arrive.
func (l *Loader) readLimited(r io.Reader) ([]byte, error) {
	limit := l.maxSize()
	data, err := io.ReadAll(io.LimitReader(r, int64(limit)+1))
	if err != nil {
		return nil, err
	}
	if len(data) > limit {
		return nil, fmt.Errorf("%w: more than %d bytes", ErrTooLarge, limit)
	}
	return data, nil
}

// entry reads a matched archive entry into an image.
func (l *Loader) entry(name string, r io.Reader) (*Image, error) {
	data, err := l.readLimited(r)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	return FromBytes(filepath.Base(name), data), nil
}
