package fileio

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/SEPLEMBER/Oxy-test/internal/lineending"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// DefaultEncoding is used when no charset is configured.
const DefaultEncoding = "UTF-8"

// maxLineSize bounds a single scanned line.
const maxLineSize = 16 << 20

// Settings is the part of the user preferences text I/O depends on.
type Settings interface {
	FileEncoding() string
	LineEndingTarget() lineending.Target
}

// TextIO reads and writes whole documents as text in one charset, applying
// the configured line ending on write.
type TextIO struct {
	fs      FS
	charset string
	enc     encoding.Encoding
	utf8    bool
	ending  lineending.Target
}

// NewTextIO resolves charset (any WHATWG label, e.g. "utf-8", "windows-1251",
// "koi8-r") and binds it to fsys.
func NewTextIO(fsys FS, charset string, ending lineending.Target) (*TextIO, error) {
	if strings.TrimSpace(charset) == "" {
		charset = DefaultEncoding
	}
	enc, err := htmlindex.Get(charset)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedEncoding, charset)
	}
	name, _ := htmlindex.Name(enc)
	return &TextIO{
		fs:      fsys,
		charset: name,
		enc:     enc,
		utf8:    name == "utf-8",
		ending:  ending,
	}, nil
}

// FromSettings builds a TextIO from the user's preferences.
func FromSettings(fsys FS, s Settings) (*TextIO, error) {
	return NewTextIO(fsys, s.FileEncoding(), s.LineEndingTarget())
}

// FS returns the filesystem t reads from.
func (t *TextIO) FS() FS { return t.fs }

// Charset returns the canonical charset name, e.g. "utf-8".
func (t *TextIO) Charset() string { return t.charset }

func (t *TextIO) LineEnding() lineending.Target { return t.ending }

func (t *TextIO) decoder() transform.Transformer {
	return unicode.BOMOverride(t.baseDecoder())
}

func (t *TextIO) baseDecoder() transform.Transformer {
	if t.utf8 {
		// Validation happens on the decoded text; the UTF-8 decoder would
		// silently substitute U+FFFD instead.
		return encoding.Nop.NewDecoder()
	}
	return t.enc.NewDecoder()
}

// Decode converts raw file bytes into text. A byte order mark selects
// UTF-8 or UTF-16 regardless of the configured charset and is dropped.
func (t *TextIO) Decode(data []byte) (string, error) {
	text, _, err := t.DecodeBOM(data)
	return text, err
}

// DecodeBOM is Decode that also reports the byte order mark data started
// with, so the text can be written back the same way.
func (t *TextIO) DecodeBOM(data []byte) (string, BOM, error) {
	bom := DetectBOM(data)
	out, _, err := transform.Bytes(t.decoder(), data)
	if err != nil {
		return "", bom, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	if (t.utf8 || bom == BOMUTF8) && !utf8.Valid(out) {
		return "", bom, ErrDecode
	}
	return string(out), bom, nil
}

// Encode converts text into bytes of the configured charset after applying
// the configured line ending.
func (t *TextIO) Encode(text string) ([]byte, error) {
	return t.encode(lineending.Normalize(text, t.ending), NoBOM)
}

// encode writes text in the encoding bom names, or in the configured
// charset when there is none.
func (t *TextIO) encode(text string, bom BOM) ([]byte, error) {
	var enc encoding.Encoding
	switch bom {
	case BOMUTF8:
		return append(append([]byte(nil), bomUTF8...), text...), nil
	case BOMUTF16LE:
		enc = unicode.UTF16(unicode.LittleEndian, unicode.UseBOM)
	case BOMUTF16BE:
		enc = unicode.UTF16(unicode.BigEndian, unicode.UseBOM)
	default:
		if t.utf8 {
			return []byte(text), nil
		}
		enc = t.enc
	}
	out, err := enc.NewEncoder().Bytes([]byte(text))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEncode, err)
	}
	return out, nil
}

// ReadAll returns the decoded content of path.
func (t *TextIO) ReadAll(path string) (string, error) {
	text, _, err := t.ReadAllBOM(path)
	return text, err
}

// ReadAllBOM returns the decoded content of path and its byte order mark.
func (t *TextIO) ReadAllBOM(path string) (string, BOM, error) {
	data, err := t.fs.ReadFile(path)
	if err != nil {
		return "", NoBOM, err
	}
	text, bom, err := t.DecodeBOM(data)
	return text, bom, wrap("read", path, err)
}

// WriteAll encodes text and replaces the content of path.
func (t *TextIO) WriteAll(path, text string) error {
	return t.WriteAllBOM(path, text, NoBOM)
}

// WriteAllBOM is WriteAll for a file read with bom: UTF-8 and UTF-16
// files keep their encoding and byte order mark.
func (t *TextIO) WriteAllBOM(path, text string, bom BOM) error {
	return t.write(path, lineending.Normalize(text, t.ending), bom)
}

// Rewrite replaces the content of path with text encoded as-is, leaving its
// line endings alone. Batch replacement uses it so files keep their style.
func (t *TextIO) Rewrite(path, text string) error {
	return t.RewriteBOM(path, text, NoBOM)
}

// RewriteBOM is Rewrite for a file read with bom.
func (t *TextIO) RewriteBOM(path, text string, bom BOM) error {
	return t.write(path, text, bom)
}

func (t *TextIO) write(path, text string, bom BOM) error {
	data, err := t.encode(text, bom)
	if err != nil {
		return wrap("write", path, err)
	}
	return t.fs.WriteFile(path, data)
}

// ScanLines streams path line by line, calling fn with the 1-based line
// number and the line without its terminator. ctx is checked before every
// line; a non-nil error from fn stops the scan and is returned.
func (t *TextIO) ScanLines(ctx context.Context, path string, fn func(n int, line string) error) error {
	rc, err := t.fs.Open(path)
	if err != nil {
		return err
	}
	defer rc.Close()

	sc := bufio.NewScanner(transform.NewReader(rc, t.decoder()))
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	sc.Split(scanAnyLine)

	n := 0
	for sc.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		n++
		line := sc.Bytes()
		if t.utf8 && !utf8.Valid(line) {
			return wrap("read", path, fmt.Errorf("%w: line %d", ErrDecode, n))
		}
		if err := fn(n, string(line)); err != nil {
			return err
		}
	}
	if err := sc.Err(); err != nil {
		if errors.Is(err, bufio.ErrTooLong) {
			return wrap("read", path, fmt.Errorf("%w: line %d too long", ErrDecode, n+1))
		}
		return wrap("read", path, err)
	}
	return nil
}

// scanAnyLine is a bufio.SplitFunc that ends lines on "\n", "\r\n" or a
// lone "\r".
func scanAnyLine(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	if i := bytes.IndexAny(data, "\r\n"); i >= 0 {
		if data[i] == '\n' {
			return i + 1, data[:i], nil
		}
		if i+1 < len(data) {
			if data[i+1] == '\n' {
				return i + 2, data[:i], nil
			}
			return i + 1, data[:i], nil
		}
		if !atEOF {
			return 0, nil, nil // need the next byte to tell "\r" from "\r\n"
		}
		return i + 1, data[:i], nil
	}
	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}
