package batik

import (
	"errors"
	"testing"
)

func newTestBinding(t *testing.T, ident Ident) (*Element, *AnimatedLengthList) {
	t.Helper()
	doc := NewDocument()
	elem, err := doc.CreateElement("e1", "text")
	if err != nil {
		t.Fatalf("CreateElement: %v", err)
	}
	return elem, NewAnimatedLengthList(elem, ident)
}

func xIdent() Ident {
	return Ident{LocalName: "x", EmptyAllowed: true, Axis: AxisHorizontal}
}

func mustCount(t *testing.T, l *LengthList) int {
	t.Helper()
	n, err := l.Count()
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	return n
}

func attrText(t *testing.T, elem *Element, ident Ident) string {
	t.Helper()
	text, ok := elem.Attr(ident.NamespaceURI, ident.LocalName)
	if !ok {
		t.Fatalf("attribute %q not set", ident.LocalName)
	}
	return text
}

func TestCountAndItemAt(t *testing.T) {
	elem, b := newTestBinding(t, xIdent())
	elem.SetAttr("", "x", "10 20px 30%")

	if n := mustCount(t, b.BaseVal()); n != 3 {
		t.Fatalf("Count = %d, want 3", n)
	}
	it, err := b.BaseVal().ItemAt(1)
	if err != nil {
		t.Fatalf("ItemAt(1): %v", err)
	}
	if it.Unit() != UnitPx || it.Value() != 20 || it.Axis() != AxisHorizontal {
		t.Fatalf("ItemAt(1) = %v", it.Get())
	}
}

func TestItemAtOutOfRange(t *testing.T) {
	elem, b := newTestBinding(t, xIdent())
	elem.SetAttr("", "x", "10 20")

	for _, idx := range []int{-1, 2, 10} {
		_, err := b.BaseVal().ItemAt(idx)
		if !errors.Is(err, ErrIndexOutOfRange) {
			t.Errorf("ItemAt(%d) error = %v, want ErrIndexOutOfRange", idx, err)
		}
	}
}

func TestStructuralMutationsWriteBack(t *testing.T) {
	ident := xIdent()
	elem, b := newTestBinding(t, ident)
	elem.SetAttr("", "x", "10, 20")
	base := b.BaseVal()

	if _, err := base.AppendItem(Length{Unit: UnitPx, Value: 30}); err != nil {
		t.Fatalf("AppendItem: %v", err)
	}
	if got := attrText(t, elem, ident); got != "10 20 30px" {
		t.Fatalf("after append, text = %q", got)
	}

	if _, err := base.InsertBefore(Length{Unit: UnitNumber, Value: 5}, 0); err != nil {
		t.Fatalf("InsertBefore: %v", err)
	}
	if got := attrText(t, elem, ident); got != "5 10 20 30px" {
		t.Fatalf("after insert, text = %q", got)
	}

	if _, err := base.ReplaceItem(Length{Unit: UnitEms, Value: 1}, 1); err != nil {
		t.Fatalf("ReplaceItem: %v", err)
	}
	if got := attrText(t, elem, ident); got != "5 1em 20 30px" {
		t.Fatalf("after replace, text = %q", got)
	}

	removed, err := base.RemoveItem(2)
	if err != nil {
		t.Fatalf("RemoveItem: %v", err)
	}
	if removed.Value != 20 {
		t.Fatalf("RemoveItem returned %v", removed)
	}
	if got := attrText(t, elem, ident); got != "5 1em 30px" {
		t.Fatalf("after remove, text = %q", got)
	}

	if _, err := base.Initialize(Length{Unit: UnitNumber, Value: 7}); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	if got := attrText(t, elem, ident); got != "7" {
		t.Fatalf("after initialize, text = %q", got)
	}

	if err := base.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if got := attrText(t, elem, ident); got != "" {
		t.Fatalf("after clear, text = %q", got)
	}
}

func TestInsertBeforeClamps(t *testing.T) {
	ident := xIdent()
	elem, b := newTestBinding(t, ident)
	elem.SetAttr("", "x", "1 2")
	base := b.BaseVal()

	if _, err := base.InsertBefore(Length{Unit: UnitNumber, Value: 9}, 99); err != nil {
		t.Fatalf("InsertBefore(99): %v", err)
	}
	if _, err := base.InsertBefore(Length{Unit: UnitNumber, Value: 0}, -5); err != nil {
		t.Fatalf("InsertBefore(-5): %v", err)
	}
	if got := attrText(t, elem, ident); got != "0 1 2 9" {
		t.Fatalf("text = %q, want %q", got, "0 1 2 9")
	}
}

func TestReplaceRemoveOutOfRange(t *testing.T) {
	elem, b := newTestBinding(t, xIdent())
	elem.SetAttr("", "x", "1")
	base := b.BaseVal()

	if _, err := base.ReplaceItem(Length{}, 1); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("ReplaceItem(1) error = %v", err)
	}
	if _, err := base.RemoveItem(-1); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("RemoveItem(-1) error = %v", err)
	}
}

func TestItemWriteThrough(t *testing.T) {
	ident := xIdent()
	elem, b := newTestBinding(t, ident)
	elem.SetAttr("", "x", "10 20")
	base := b.BaseVal()

	it, err := base.ItemAt(0)
	if err != nil {
		t.Fatalf("ItemAt: %v", err)
	}
	if err := it.SetValue(99); err != nil {
		t.Fatalf("SetValue: %v", err)
	}
	if got := attrText(t, elem, ident); got != "99 20" {
		t.Fatalf("after SetValue, text = %q", got)
	}
	if err := it.SetUnit(UnitPercentage); err != nil {
		t.Fatalf("SetUnit: %v", err)
	}
	if got := attrText(t, elem, ident); got != "99% 20" {
		t.Fatalf("after SetUnit, text = %q", got)
	}

	// The write-through must not have invalidated the list.
	if !base.valid {
		t.Fatal("base list invalid after self-caused write")
	}
}

// A structural mutation writes the serialized list back to the attribute; the
// change event this causes must not invalidate the list again.
func TestGuardedWriteDoesNotReparse(t *testing.T) {
	ident := xIdent()
	elem, b := newTestBinding(t, ident)
	elem.SetAttr("", "x", "10 20")

	var parses int
	b.parse = func(text string, axis Axis) ([]Length, error) {
		parses++
		return ParseLengthList(text, axis)
	}

	base := b.BaseVal()
	mustCount(t, base)
	if parses != 1 {
		t.Fatalf("parses = %d after first read, want 1", parses)
	}

	if _, err := base.AppendItem(Length{Unit: UnitNumber, Value: 30}); err != nil {
		t.Fatalf("AppendItem: %v", err)
	}
	if n := mustCount(t, base); n != 3 {
		t.Fatalf("Count = %d, want 3", n)
	}
	if parses != 1 {
		t.Fatalf("parses = %d after self-caused write, want 1", parses)
	}

	// An external edit does invalidate and reparse.
	elem.SetAttr("", "x", "1")
	if n := mustCount(t, base); n != 1 {
		t.Fatalf("Count = %d after external edit, want 1", n)
	}
	if parses != 2 {
		t.Fatalf("parses = %d after external edit, want 2", parses)
	}
}

func TestCustomSeparator(t *testing.T) {
	ident := xIdent()
	ident.Separator = ", "
	elem, b := newTestBinding(t, ident)
	elem.SetAttr("", "x", "10 20")

	if _, err := b.BaseVal().AppendItem(Length{Unit: UnitNumber, Value: 30}); err != nil {
		t.Fatalf("AppendItem: %v", err)
	}
	if got := attrText(t, elem, ident); got != "10, 20, 30" {
		t.Fatalf("text = %q", got)
	}
}
