package batik

import "fmt"

// Kind classifies a live attribute failure.
type Kind int

const (
	KindMissingAttribute Kind = iota
	KindEmptyNotAllowed
	KindMalformedValue
	KindReadOnlyMutation
	KindIndexOutOfRange
)

func (k Kind) String() string {
	switch k {
	case KindMissingAttribute:
		return "missing attribute"
	case KindEmptyNotAllowed:
		return "empty value not allowed"
	case KindMalformedValue:
		return "malformed value"
	case KindReadOnlyMutation:
		return "read-only list"
	case KindIndexOutOfRange:
		return "index out of range"
	default:
		return "unknown"
	}
}

// Sentinels for errors.Is matching. Errors produced by the package carry
// element and attribute context; match against these to branch on kind.
var (
	ErrMissingAttribute = &Error{Kind: KindMissingAttribute}
	ErrEmptyNotAllowed  = &Error{Kind: KindEmptyNotAllowed}
	ErrMalformedValue   = &Error{Kind: KindMalformedValue}
	ErrReadOnlyMutation = &Error{Kind: KindReadOnlyMutation}
	ErrIndexOutOfRange  = &Error{Kind: KindIndexOutOfRange}
)

// Error describes a failure on a live attribute value. Message formatting is
// deliberately plain; hosts with a message catalog can rebuild their own text
// from the fields.
type Error struct {
	Kind    Kind
	Element string
	Attr    string
	Text    string // raw attribute text, set for malformed values
	Index   int    // offending index, set for range errors
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("attribute %q on element %q: %s", e.Attr, e.Element, e.Kind)
	switch e.Kind {
	case KindMalformedValue:
		return fmt.Sprintf("%s %q", msg, e.Text)
	case KindIndexOutOfRange:
		return fmt.Sprintf("%s (%d)", msg, e.Index)
	default:
		return msg
	}
}

// Is matches any error of the same kind, so sentinel comparison with
// errors.Is works regardless of context fields.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}
