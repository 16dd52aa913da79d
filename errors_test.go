package batik

import (
	"errors"
	"strings"
	"testing"

	pkgerrors "github.com/pkg/errors"
)

func TestErrorKindMatching(t *testing.T) {
	err := &Error{Kind: KindMalformedValue, Element: "e1", Attr: "x", Text: "abc"}

	if !errors.Is(err, ErrMalformedValue) {
		t.Error("contextual error does not match its sentinel")
	}
	if errors.Is(err, ErrMissingAttribute) {
		t.Error("error matches a sentinel of another kind")
	}

	wrapped := pkgerrors.Wrap(err, "reading x")
	if !errors.Is(wrapped, ErrMalformedValue) {
		t.Error("wrapped error does not match its sentinel")
	}
}

func TestErrorMessages(t *testing.T) {
	tests := []struct {
		err  *Error
		want string
	}{
		{&Error{Kind: KindMissingAttribute, Element: "e1", Attr: "x"}, "missing attribute"},
		{&Error{Kind: KindMalformedValue, Element: "e1", Attr: "x", Text: "abc"}, `"abc"`},
		{&Error{Kind: KindIndexOutOfRange, Element: "e1", Attr: "x", Index: 7}, "(7)"},
		{&Error{Kind: KindReadOnlyMutation, Element: "e1", Attr: "x"}, "read-only"},
		{&Error{Kind: KindEmptyNotAllowed, Element: "e1", Attr: "x"}, "empty"},
	}
	for _, tt := range tests {
		if got := tt.err.Error(); !strings.Contains(got, tt.want) {
			t.Errorf("Error() = %q, want substring %q", got, tt.want)
		}
	}
}
