package fileio

import (
	"bytes"
	"io"

	"github.com/go-enry/go-enry/v2"
)

// sniffSize matches the window enry inspects for NUL bytes.
const sniffSize = 8000

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

// BOM is the byte order mark a file starts with.
type BOM int

const (
	NoBOM BOM = iota
	BOMUTF8
	BOMUTF16LE
	BOMUTF16BE
)

func (b BOM) String() string {
	switch b {
	case BOMUTF8:
		return "utf-8 with BOM"
	case BOMUTF16LE:
		return "utf-16le"
	case BOMUTF16BE:
		return "utf-16be"
	}
	return "none"
}

// DetectBOM reports the byte order mark at the start of data.
func DetectBOM(data []byte) BOM {
	switch {
	case bytes.HasPrefix(data, bomUTF8):
		return BOMUTF8
	case bytes.HasPrefix(data, bomUTF16LE):
		return BOMUTF16LE
	case bytes.HasPrefix(data, bomUTF16BE):
		return BOMUTF16BE
	}
	return NoBOM
}

func hasBOM(sample []byte) bool {
	return DetectBOM(sample) != NoBOM
}

// LooksBinary reports whether sample is the start of a binary file.
// UTF-16 text is full of NUL bytes, so a byte order mark always means text.
func LooksBinary(sample []byte) bool {
	if len(sample) == 0 || hasBOM(sample) {
		return false
	}
	if len(sample) > sniffSize {
		sample = sample[:sniffSize]
	}
	return enry.IsBinary(sample)
}

// Sniff reads the head of path and reports whether it looks binary.
func Sniff(fsys FS, path string) (bool, error) {
	rc, err := fsys.Open(path)
	if err != nil {
		return false, err
	}
	defer rc.Close()

	head, err := io.ReadAll(io.LimitReader(rc, sniffSize))
	if err != nil {
		return false, wrap("read", path, err)
	}
	return LooksBinary(head), nil
}
