// Package dom provides the minimal live element tree the overlay system
// is wired to. It stands in for the host UI framework's document: elements
// carry attributes, geometry, focus state, and per-event handler lists
// with bubbling dispatch.
//
// Tree shape, attributes, and handler lists are fixed at construction by
// the owning controller or session and carry no locking. Geometry and the
// focus flag are also touched from timer goroutines (deferred position
// refreshes, focus retries) and are mutex-guarded.
package dom

import "sync"

// Rect is an axis-aligned box in host coordinates.
type Rect struct {
	X, Y float64
	W, H float64
}

// Right returns the x coordinate of the right edge.
func (r Rect) Right() float64 { return r.X + r.W }

// Bottom returns the y coordinate of the bottom edge.
func (r Rect) Bottom() float64 { return r.Y + r.H }

// AttrAutoFocus marks an element as the focus target when its containing
// overlay finishes revealing.
const AttrAutoFocus = "autofocus"

// Element is a live node in the host tree.
type Element struct {
	Tag string
	ID  string

	// FocusFunc, when set, is invoked by Focus in addition to updating
	// the focus flag. The host bridge uses it to forward focus to the
	// real UI.
	FocusFunc func()

	attrs    map[string]string
	children []*Element
	parent   *Element
	handlers map[string][]Handler

	mu      sync.Mutex
	rect    Rect
	focused bool
}

// NewElement creates an element with the given tag.
func NewElement(tag string) *Element {
	return &Element{Tag: tag}
}

// AppendChild adds child to the end of e's children and sets its parent.
func (e *Element) AppendChild(child *Element) *Element {
	child.parent = e
	e.children = append(e.children, child)
	return e
}

// Children returns the child list. Callers must not mutate it.
func (e *Element) Children() []*Element {
	return e.children
}

// Parent returns the parent element, or nil for a root.
func (e *Element) Parent() *Element {
	return e.parent
}

// SetAttr sets an attribute value.
func (e *Element) SetAttr(key, value string) *Element {
	if e.attrs == nil {
		e.attrs = make(map[string]string)
	}
	e.attrs[key] = value
	return e
}

// Attr returns the attribute value and whether it is present.
func (e *Element) Attr(key string) (string, bool) {
	v, ok := e.attrs[key]
	return v, ok
}

// HasAttr reports whether the attribute is present.
func (e *Element) HasAttr(key string) bool {
	_, ok := e.attrs[key]
	return ok
}

// Rect returns the element's current geometry.
func (e *Element) Rect() Rect {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.rect
}

// SetRect replaces the element's geometry.
func (e *Element) SetRect(r Rect) {
	e.mu.Lock()
	e.rect = r
	e.mu.Unlock()
}

// MoveTo repositions the element without changing its size.
func (e *Element) MoveTo(x, y float64) {
	e.mu.Lock()
	e.rect.X = x
	e.rect.Y = y
	e.mu.Unlock()
}

// Focus marks the element focused and forwards to FocusFunc if set.
// Any previously focused element in the same tree keeps its flag; the
// host is responsible for exclusivity, matching real focus semantics
// where the bridge only requests focus.
func (e *Element) Focus() {
	e.mu.Lock()
	e.focused = true
	e.mu.Unlock()
	// FocusFunc runs outside the lock; the host bridge may read back.
	if e.FocusFunc != nil {
		e.FocusFunc()
	}
}

// Blur clears the focus flag.
func (e *Element) Blur() {
	e.mu.Lock()
	e.focused = false
	e.mu.Unlock()
}

// Focused reports whether Focus has been requested on this element.
func (e *Element) Focused() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.focused
}

// FindAutoFocus returns the first descendant of root (depth-first,
// document order) carrying the autofocus attribute, or nil if none
// exists. The root itself is not considered.
func FindAutoFocus(root *Element) *Element {
	if root == nil {
		return nil
	}
	for _, child := range root.children {
		if child.HasAttr(AttrAutoFocus) {
			return child
		}
		if found := FindAutoFocus(child); found != nil {
			return found
		}
	}
	return nil
}

// FindByID returns the first element in the subtree rooted at root
// (including root) whose ID matches, or nil.
func FindByID(root *Element, id string) *Element {
	if root == nil || id == "" {
		return nil
	}
	if root.ID == id {
		return root
	}
	for _, child := range root.children {
		if found := FindByID(child, id); found != nil {
			return found
		}
	}
	return nil
}
