package batik

import (
	"github.com/blitline-dev/batik/internal/pkg/utils"
)

const defaultSeparator = " "

// Ident is the immutable identity of a length-list attribute. DefaultValue ""
// means the attribute has no default; a missing attribute then fails with
// ErrMissingAttribute. Separator "" means a single space.
type Ident struct {
	NamespaceURI string
	LocalName    string
	DefaultValue string
	EmptyAllowed bool
	Axis         Axis
	Separator    string
}

func (id Ident) separator() string {
	if id.Separator == "" {
		return defaultSeparator
	}
	return id.Separator
}

// AnimatedLengthList coordinates the two live values of one length-list
// attribute on one element: the base value parsed from the attribute text and
// the override value pushed by an animation driver. It registers itself for
// the attribute's change events on construction.
type AnimatedLengthList struct {
	elem  *Element
	ident Ident
	parse ParseFunc

	base *LengthList
	anim *LengthList

	// hasAnim selects which list serves external reads.
	hasAnim bool
	// changing suppresses invalidation for self-caused attribute writes.
	changing bool

	observers map[uint64]func()
	nextSub   uint64
}

// NewAnimatedLengthList binds the attribute named by ident on elem.
func NewAnimatedLengthList(elem *Element, ident Ident) *AnimatedLengthList {
	b := &AnimatedLengthList{
		elem:      elem,
		ident:     ident,
		parse:     ParseLengthList,
		observers: make(map[uint64]func()),
	}
	elem.WatchAttr(ident.NamespaceURI, ident.LocalName, b)
	return b
}

// Element returns the element the binding is attached to.
func (b *AnimatedLengthList) Element() *Element { return b.elem }

// Ident returns the attribute identity.
func (b *AnimatedLengthList) Ident() Ident { return b.ident }

// BaseVal returns the base list. The same instance is returned on every call.
func (b *AnimatedLengthList) BaseVal() *LengthList {
	if b.base == nil {
		b.base = newLengthList(&baseSource{sourceBase{b}}, b.ident.separator(), false)
	}
	return b.base
}

// AnimVal returns the animated list. The same instance is returned on every
// call. While no override is active its reads mirror BaseVal.
func (b *AnimatedLengthList) AnimVal() *LengthList {
	if b.anim == nil {
		b.anim = newLengthList(&animSource{sourceBase{b}}, b.ident.separator(), true)
	}
	return b.anim
}

// HasAnimatedValue reports whether an override is active.
func (b *AnimatedLengthList) HasAnimatedValue() bool { return b.hasAnim }

// SetAnimatedValue replaces the override value with the given unit/magnitude
// pairs and activates it. Existing override items are updated in place so the
// common same-length tick allocates nothing; the list grows or shrinks at the
// tail otherwise. Extra entries in the longer of the two slices are ignored.
func (b *AnimatedLengthList) SetAnimatedValue(units []Unit, values []float32) {
	anim := b.AnimVal()
	m := len(units)
	if len(values) < m {
		m = len(values)
	}
	i := 0
	for ; i < len(anim.items) && i < m; i++ {
		it := &anim.items[i]
		it.Unit = units[i]
		it.Value = values[i]
		it.Axis = b.ident.Axis
	}
	for ; i < m; i++ {
		anim.items = append(anim.items, Length{Unit: units[i], Value: values[i], Axis: b.ident.Axis})
	}
	if m < len(anim.items) {
		anim.items = anim.items[:m]
	}
	b.hasAnim = true
	b.notifyObservers()
}

// ClearAnimatedValue deactivates the override. The override items are kept
// but inert; reads reflect the base value again.
func (b *AnimatedLengthList) ClearAnimatedValue() {
	b.hasAnim = false
	b.notifyObservers()
}

// Subscription is an active observer registration.
type Subscription struct {
	id uint64
	b  *AnimatedLengthList
}

// Unsubscribe removes the observer.
func (s Subscription) Unsubscribe() {
	if s.b != nil {
		delete(s.b.observers, s.id)
	}
}

// Subscribe registers fn to run whenever the effective value may have
// changed. Notifications carry no payload; observers re-read BaseVal or
// AnimVal to learn the new value.
func (b *AnimatedLengthList) Subscribe(fn func()) Subscription {
	b.nextSub++
	b.observers[b.nextSub] = fn
	return Subscription{id: b.nextSub, b: b}
}

func (b *AnimatedLengthList) notifyObservers() {
	for _, fn := range b.observers {
		utils.CatchPanic(fn)
	}
}

// AttrChanged implements AttrWatcher. External text changes invalidate the
// base list; self-caused writes (guard held) do not. Observers are told only
// while no override masks the base value — the base is still kept consistent
// for when the override is later cleared.
func (b *AnimatedLengthList) AttrChanged(kind AttrChange, oldText, newText string) {
	if !b.changing && b.base != nil {
		b.base.valid = false
	}
	if !b.hasAnim {
		b.notifyObservers()
	}
}
