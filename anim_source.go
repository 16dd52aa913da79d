package batik

// animSource backs the override list. It has no text to parse, so it is valid
// permanently; reads fall through to the base list while no override is
// active, and structural edits are always rejected. The only way its content
// changes is AnimatedLengthList.SetAnimatedValue.
type animSource struct {
	sourceBase
}

func (s *animSource) effective() *LengthList {
	if s.b.hasAnim {
		return s.b.anim
	}
	return s.b.BaseVal()
}

func (s *animSource) revalidate(l *LengthList) error {
	l.valid = true
	return nil
}

func (s *animSource) checkEdit() error {
	return s.fail(KindReadOnlyMutation)
}

// writeBack is a no-op: there is no attribute text behind an override value.
func (s *animSource) writeBack(string) error { return nil }
