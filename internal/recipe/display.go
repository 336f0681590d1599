// Package recipe decodes backend replies into recipe records and display states.
package recipe

// Kind is the display state of a reply
type Kind int

const (
	KindReady Kind = iota
	KindNoData
	KindParseError
	KindFailed
	KindText
)

// String returns the lowercase name of the kind
func (k Kind) String() string {
	switch k {
	case KindReady:
		return "ready"
	case KindNoData:
		return "no_data"
	case KindParseError:
		return "parse_error"
	case KindFailed:
		return "failed"
	case KindText:
		return "text"
	default:
		return "unknown"
	}
}

// Placeholder messages
const (
	MessageNoData     = "no data"
	MessageParseError = "failed to parse recipe data"
	errorPrefix       = "Error: "
)

// Display is what a caller shows for one reply
type Display struct {
	Kind    Kind
	Record  Record
	Message string
	// Transcription is what the backend understood from a voice note or question
	Transcription string
}

// Ready wraps a decoded record
func Ready(rec Record) Display {
	return Display{Kind: KindReady, Record: rec}
}

// NoData is shown when the reply carried no recipe
func NoData() Display {
	return Display{Kind: KindNoData, Message: MessageNoData}
}

// ParseFailure is shown when the reply could not be decoded
func ParseFailure() Display {
	return Display{Kind: KindParseError, Message: MessageParseError}
}

// Failed is shown when the request itself failed
func Failed(message string) Display {
	return Display{Kind: KindFailed, Message: errorPrefix + message}
}

// Text forwards a raw reply without parsing
func Text(body string) Display {
	return Display{Kind: KindText, Message: body}
}

// IsReady reports whether the display carries a record
func (d Display) IsReady() bool {
	return d.Kind == KindReady
}
