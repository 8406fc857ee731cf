package fileio

import (
	"errors"
	"fmt"
	"io/fs"
	"syscall"
)

// Kind classifies a file operation failure so callers can branch on it
// without inspecting messages.
type Kind int

const (
	KindIO Kind = iota // anything not covered below
	KindNotFound
	KindPermission
	KindNotDirectory
	KindDecode
	KindEncode
	KindBinary
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not found"
	case KindPermission:
		return "permission denied"
	case KindNotDirectory:
		return "not a directory"
	case KindDecode:
		return "decode failure"
	case KindEncode:
		return "encode failure"
	case KindBinary:
		return "binary content"
	}
	return "i/o failure"
}

// Sentinel errors for conditions the filesystem itself does not report.
var (
	ErrDecode              = errors.New("content is not valid in the configured encoding")
	ErrEncode              = errors.New("text cannot be represented in the configured encoding")
	ErrBinary              = errors.New("binary file")
	ErrUnsupportedEncoding = errors.New("unsupported encoding")
)

// Error is a failed file operation with its classified Kind.
type Error struct {
	Op   string // read, write, readdir, stat, open
	Path string
	Kind Kind
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s %s: %s: %v", e.Op, e.Path, e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// wrap classifies err and attaches op/path. nil stays nil.
func wrap(op, path string, err error) error {
	if err == nil {
		return nil
	}
	var fe *Error
	if errors.As(err, &fe) {
		return err
	}
	return &Error{Op: op, Path: path, Kind: classify(err), Err: err}
}

func classify(err error) Kind {
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return KindNotFound
	case errors.Is(err, fs.ErrPermission):
		return KindPermission
	case errors.Is(err, syscall.ENOTDIR):
		return KindNotDirectory
	case errors.Is(err, ErrDecode):
		return KindDecode
	case errors.Is(err, ErrEncode):
		return KindEncode
	case errors.Is(err, ErrBinary):
		return KindBinary
	}
	return KindIO
}

// KindOf reports the Kind of err. Errors that did not come through this
// package are classified on the spot.
func KindOf(err error) Kind {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Kind
	}
	return classify(err)
}
