// Package lineending converts text between line terminator conventions.
package lineending

import (
	"fmt"
	"strings"
)

// Target is the line terminator convention text is written with.
type Target int

const (
	// Unspecified leaves text exactly as it is.
	Unspecified Target = iota
	Unix
	Windows
	Mac
)

func (t Target) String() string {
	switch t {
	case Unix:
		return "unix"
	case Windows:
		return "windows"
	case Mac:
		return "mac"
	}
	return "default"
}

// Terminator returns the byte sequence that ends a line for t. Unspecified
// has none.
func (t Target) Terminator() string {
	switch t {
	case Unix:
		return "\n"
	case Windows:
		return "\r\n"
	case Mac:
		return "\r"
	}
	return ""
}

// ParseTarget accepts the names used in settings and on the command line.
func ParseTarget(name string) (Target, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "default", "unspecified", "none":
		return Unspecified, nil
	case "unix", "lf", "linux":
		return Unix, nil
	case "windows", "crlf", "dos":
		return Windows, nil
	case "mac", "macos", "cr":
		return Mac, nil
	}
	return Unspecified, fmt.Errorf("unknown line ending %q", name)
}

var (
	canonical = strings.NewReplacer("\r\n", "\n", "\r", "\n")
	toWindows = strings.NewReplacer("\n", "\r\n")
	toMac     = strings.NewReplacer("\n", "\r")
)

// Normalize rewrites every line terminator in text to target's. All of
// "\r\n", "\r" and "\n" are recognised on input. Unspecified is a
// pass-through and returns text unchanged.
func Normalize(text string, target Target) string {
	if target == Unspecified {
		return text
	}
	unix := canonical.Replace(text)
	switch target {
	case Windows:
		return toWindows.Replace(unix)
	case Mac:
		return toMac.Replace(unix)
	}
	return unix
}

// CountLines returns the number of lines in text when split on any
// terminator. Empty text is a single empty line and a trailing terminator
// opens a final empty line.
func CountLines(text string) int {
	n := 1
	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '\n':
			n++
		case '\r':
			n++
			if i+1 < len(text) && text[i+1] == '\n' {
				i++
			}
		}
	}
	return n
}
