package batik

// sourceBase carries the shared binding back-reference for both sources.
type sourceBase struct {
	b *AnimatedLengthList
}

func (s sourceBase) fail(kind Kind) *Error {
	return &Error{Kind: kind, Element: s.b.elem.ID(), Attr: s.b.ident.LocalName}
}

// baseSource derives list items by parsing the attribute's current text and
// writes mutations back to it.
type baseSource struct {
	sourceBase
}

func (s *baseSource) effective() *LengthList { return s.b.base }

func (s *baseSource) checkEdit() error { return nil }

// valueAsString returns the attribute text, falling back to the identity's
// default when the attribute is absent. ok is false when neither exists.
func (s *baseSource) valueAsString() (string, bool) {
	if text, ok := s.b.elem.Attr(s.b.ident.NamespaceURI, s.b.ident.LocalName); ok {
		return text, true
	}
	if s.b.ident.DefaultValue != "" {
		return s.b.ident.DefaultValue, true
	}
	return "", false
}

// writeBack stores the serialized list as the attribute text. The writing
// guard is held for exactly this store call so the resulting change event is
// recognized as self-caused; defer releases it on every exit path.
func (s *baseSource) writeBack(text string) error {
	s.b.changing = true
	defer func() { s.b.changing = false }()
	s.b.elem.SetAttr(s.b.ident.NamespaceURI, s.b.ident.LocalName, text)
	return nil
}

func (s *baseSource) revalidate(l *LengthList) error {
	if l.valid {
		return nil
	}
	text, ok := s.valueAsString()
	if !ok {
		return s.fail(KindMissingAttribute)
	}
	if text == "" {
		if !s.b.ident.EmptyAllowed {
			return s.fail(KindEmptyNotAllowed)
		}
		l.items = l.items[:0]
		l.valid = true
		return nil
	}
	items, err := s.b.parse(text, s.b.ident.Axis)
	if err != nil {
		// Cache the empty result so reads do not re-attempt a parse
		// that is known to fail.
		l.items = l.items[:0]
		l.valid = true
		ferr := s.fail(KindMalformedValue)
		ferr.Text = text
		return ferr
	}
	l.items = items
	l.valid = true
	return nil
}
