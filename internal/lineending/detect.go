package lineending

// Style is the terminator convention observed in a text.
type Style int

const (
	None Style = iota // no terminators at all
	LF
	CRLF
	CR
	Mixed
)

func (s Style) String() string {
	switch s {
	case LF:
		return "LF"
	case CRLF:
		return "CRLF"
	case CR:
		return "CR"
	case Mixed:
		return "mixed"
	}
	return "none"
}

// Target maps an observed style to the conversion that preserves it.
func (s Style) Target() Target {
	switch s {
	case LF:
		return Unix
	case CRLF:
		return Windows
	case CR:
		return Mac
	}
	return Unspecified
}

// Detect reports which terminators text uses.
func Detect(text string) Style {
	var lf, crlf, cr int
	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '\n':
			lf++
		case '\r':
			if i+1 < len(text) && text[i+1] == '\n' {
				crlf++
				i++
			} else {
				cr++
			}
		}
	}

	kinds := 0
	style := None
	if lf > 0 {
		kinds++
		style = LF
	}
	if crlf > 0 {
		kinds++
		style = CRLF
	}
	if cr > 0 {
		kinds++
		style = CR
	}
	if kinds > 1 {
		return Mixed
	}
	return style
}
