package batik

// listSource supplies a LengthList with backing content and write-back
// behavior. There are exactly two implementations: baseSource, parsed from
// and written to the attribute text, and animSource, populated only by bulk
// override assignment. The binding holds one list of each, never a mix.
type listSource interface {
	// effective returns the list whose items serve reads. The animated
	// source resolves to the base list while no override is active.
	effective() *LengthList

	// revalidate brings stale items up to date with the backing text.
	revalidate(l *LengthList) error

	// checkEdit reports whether structural edits are permitted.
	checkEdit() error

	// writeBack persists the serialized list after a mutation.
	writeBack(text string) error

	// fail builds a contextualized error of the given kind.
	fail(kind Kind) *Error
}

// LengthList is an ordered, lazily validated length container. Items are
// stale whenever valid is false and must not be read without revalidating.
type LengthList struct {
	src   listSource
	items []Length
	valid bool
	sep   string
}

func newLengthList(src listSource, sep string, valid bool) *LengthList {
	return &LengthList{src: src, sep: sep, valid: valid}
}

// Count returns the number of items, revalidating first.
func (l *LengthList) Count() (int, error) {
	eff := l.src.effective()
	if err := eff.src.revalidate(eff); err != nil {
		return 0, err
	}
	return len(eff.items), nil
}

// ItemAt returns a handle to the item at index. The handle stays usable until
// the list is next invalidated or restructured.
func (l *LengthList) ItemAt(index int) (ItemRef, error) {
	eff := l.src.effective()
	if err := eff.src.revalidate(eff); err != nil {
		return ItemRef{}, err
	}
	if index < 0 || index >= len(eff.items) {
		err := eff.src.fail(KindIndexOutOfRange)
		err.Index = index
		return ItemRef{}, err
	}
	return ItemRef{list: eff, index: index}, nil
}

// Clear removes all items.
func (l *LengthList) Clear() error {
	if err := l.src.checkEdit(); err != nil {
		return err
	}
	l.items = l.items[:0]
	l.valid = true
	return l.commit()
}

// Initialize replaces the whole list with a single item.
func (l *LengthList) Initialize(v Length) (ItemRef, error) {
	if err := l.src.checkEdit(); err != nil {
		return ItemRef{}, err
	}
	l.items = append(l.items[:0], v)
	l.valid = true
	if err := l.commit(); err != nil {
		return ItemRef{}, err
	}
	return ItemRef{list: l, index: 0}, nil
}

// InsertBefore inserts v so it ends up at index. An index past either end is
// clamped, per DOM list semantics.
func (l *LengthList) InsertBefore(v Length, index int) (ItemRef, error) {
	if err := l.src.checkEdit(); err != nil {
		return ItemRef{}, err
	}
	if err := l.src.revalidate(l); err != nil {
		return ItemRef{}, err
	}
	if index < 0 {
		index = 0
	}
	if index > len(l.items) {
		index = len(l.items)
	}
	l.items = append(l.items, Length{})
	copy(l.items[index+1:], l.items[index:])
	l.items[index] = v
	if err := l.commit(); err != nil {
		return ItemRef{}, err
	}
	return ItemRef{list: l, index: index}, nil
}

// ReplaceItem overwrites the item at index with v.
func (l *LengthList) ReplaceItem(v Length, index int) (ItemRef, error) {
	if err := l.src.checkEdit(); err != nil {
		return ItemRef{}, err
	}
	if err := l.src.revalidate(l); err != nil {
		return ItemRef{}, err
	}
	if index < 0 || index >= len(l.items) {
		err := l.src.fail(KindIndexOutOfRange)
		err.Index = index
		return ItemRef{}, err
	}
	l.items[index] = v
	if err := l.commit(); err != nil {
		return ItemRef{}, err
	}
	return ItemRef{list: l, index: index}, nil
}

// RemoveItem deletes and returns the item at index.
func (l *LengthList) RemoveItem(index int) (Length, error) {
	if err := l.src.checkEdit(); err != nil {
		return Length{}, err
	}
	if err := l.src.revalidate(l); err != nil {
		return Length{}, err
	}
	if index < 0 || index >= len(l.items) {
		err := l.src.fail(KindIndexOutOfRange)
		err.Index = index
		return Length{}, err
	}
	removed := l.items[index]
	l.items = append(l.items[:index], l.items[index+1:]...)
	if err := l.commit(); err != nil {
		return Length{}, err
	}
	return removed, nil
}

// AppendItem adds v at the end of the list.
func (l *LengthList) AppendItem(v Length) (ItemRef, error) {
	if err := l.src.checkEdit(); err != nil {
		return ItemRef{}, err
	}
	if err := l.src.revalidate(l); err != nil {
		return ItemRef{}, err
	}
	l.items = append(l.items, v)
	if err := l.commit(); err != nil {
		return ItemRef{}, err
	}
	return ItemRef{list: l, index: len(l.items) - 1}, nil
}

// Items returns a copy of the effective items, revalidating first.
func (l *LengthList) Items() ([]Length, error) {
	eff := l.src.effective()
	if err := eff.src.revalidate(eff); err != nil {
		return nil, err
	}
	return append([]Length(nil), eff.items...), nil
}

// String serializes the list's current items without revalidating. Meant for
// diagnostics; reads should go through Count/ItemAt.
func (l *LengthList) String() string {
	return serializeLengths(l.items, l.sep)
}

func (l *LengthList) commit() error {
	return l.src.writeBack(serializeLengths(l.items, l.sep))
}

// ItemRef is an index-qualified handle to one item of a list. Field mutation
// goes through the handle so the owning list can re-serialize its backing
// text; the item itself never holds a pointer back to its container.
type ItemRef struct {
	list  *LengthList
	index int
}

func (r ItemRef) Index() int { return r.index }

func (r ItemRef) Get() Length { return r.list.items[r.index] }

func (r ItemRef) Unit() Unit { return r.list.items[r.index].Unit }

func (r ItemRef) Value() float32 { return r.list.items[r.index].Value }

func (r ItemRef) Axis() Axis { return r.list.items[r.index].Axis }

// SetValue updates the magnitude in place and writes the list back.
func (r ItemRef) SetValue(v float32) error {
	r.list.items[r.index].Value = v
	return r.list.commit()
}

// SetUnit updates the unit in place and writes the list back.
func (r ItemRef) SetUnit(u Unit) error {
	r.list.items[r.index].Unit = u
	return r.list.commit()
}

// Set overwrites the item in place and writes the list back.
func (r ItemRef) Set(v Length) error {
	r.list.items[r.index] = v
	return r.list.commit()
}
