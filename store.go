package batik

import (
	"sort"
	"strings"

	"github.com/pkg/errors"
)

// AttrChange is the kind of an attribute change event.
type AttrChange int

const (
	AttrAdded AttrChange = iota
	AttrModified
	AttrRemoved
)

func (c AttrChange) String() string {
	switch c {
	case AttrAdded:
		return "added"
	case AttrModified:
		return "modified"
	case AttrRemoved:
		return "removed"
	default:
		return "unknown"
	}
}

// AttrWatcher receives change events for one attribute of one element.
type AttrWatcher interface {
	AttrChanged(kind AttrChange, oldText, newText string)
}

type attrKey struct {
	ns, local string
}

// Document is an in-memory attribute store: a flat set of elements addressed
// by id. It is the host side of the binding and is single-threaded like the
// rest of the core.
type Document struct {
	elements map[string]*Element
}

func NewDocument() *Document {
	return &Document{elements: make(map[string]*Element)}
}

// CreateElement adds an element with the given id and tag name.
func (d *Document) CreateElement(id, name string) (*Element, error) {
	if _, ok := d.elements[id]; ok {
		return nil, errors.Errorf("element %q already exists", id)
	}
	e := &Element{
		doc:      d,
		id:       id,
		name:     name,
		attrs:    make(map[attrKey]string),
		watchers: make(map[attrKey][]AttrWatcher),
	}
	d.elements[id] = e
	return e, nil
}

// Element returns the element with the given id, or nil.
func (d *Document) Element(id string) *Element {
	return d.elements[id]
}

// Element is a document node with namespaced text attributes. Every mutation
// dispatches added/modified/removed events to the attribute's watchers before
// returning.
type Element struct {
	doc      *Document
	id       string
	name     string
	attrs    map[attrKey]string
	watchers map[attrKey][]AttrWatcher
}

func (e *Element) ID() string { return e.id }

func (e *Element) Name() string { return e.name }

// Attr returns the attribute text and whether the attribute is set.
func (e *Element) Attr(ns, local string) (string, bool) {
	text, ok := e.attrs[attrKey{ns, local}]
	return text, ok
}

// SetAttr sets the attribute text and dispatches added or modified.
func (e *Element) SetAttr(ns, local, text string) {
	k := attrKey{ns, local}
	old, had := e.attrs[k]
	e.attrs[k] = text
	kind := AttrAdded
	if had {
		kind = AttrModified
	}
	e.dispatch(k, kind, old, text)
}

// RemoveAttr deletes the attribute and dispatches removed. Removing an
// attribute that is not set does nothing.
func (e *Element) RemoveAttr(ns, local string) {
	k := attrKey{ns, local}
	old, had := e.attrs[k]
	if !had {
		return
	}
	delete(e.attrs, k)
	e.dispatch(k, AttrRemoved, old, "")
}

// WatchAttr subscribes w to change events for the named attribute.
func (e *Element) WatchAttr(ns, local string, w AttrWatcher) {
	k := attrKey{ns, local}
	e.watchers[k] = append(e.watchers[k], w)
}

func (e *Element) dispatch(k attrKey, kind AttrChange, oldText, newText string) {
	for _, w := range e.watchers[k] {
		w.AttrChanged(kind, oldText, newText)
	}
}

// Snapshot captures the element's attributes as qualified-name → text.
// Qualified names are "local" or "ns|local".
func (e *Element) Snapshot() map[string]string {
	snap := make(map[string]string, len(e.attrs))
	for k, v := range e.attrs {
		snap[qualifiedName(k)] = v
	}
	return snap
}

// Restore sets every attribute from a snapshot, firing change events as any
// other text mutation would.
func (e *Element) Restore(snap map[string]string) {
	// Deterministic order keeps event sequences reproducible.
	names := make([]string, 0, len(snap))
	for name := range snap {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		k := splitQualifiedName(name)
		e.SetAttr(k.ns, k.local, snap[name])
	}
}

func qualifiedName(k attrKey) string {
	if k.ns == "" {
		return k.local
	}
	return k.ns + "|" + k.local
}

func splitQualifiedName(name string) attrKey {
	if ns, local, ok := strings.Cut(name, "|"); ok {
		return attrKey{ns, local}
	}
	return attrKey{"", name}
}
