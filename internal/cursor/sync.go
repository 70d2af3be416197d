// Package cursor keeps a shared sample index, an exclusive lock on it and an
// optional linked viewport consistent across any number of views.
package cursor

import (
	"fmt"

	"github.com/styx-analyse/styx-session/internal"
)

// NoOwner is the Owner of an unlocked State
const NoOwner = -1

// State is the shared cursor position, either Unlocked(index) or
// Locked(index, owner).
type State struct {
	Index  int
	Locked bool
	Owner  int
}

// Unlocked returns the unlocked state at index
func Unlocked(index int) State {
	return State{Index: index, Owner: NoOwner}
}

// LockedBy returns the state locked by owner at index
func LockedBy(index, owner int) State {
	return State{Index: index, Locked: true, Owner: owner}
}

// OwnedBy reports whether view id holds the lock
func (s State) OwnedBy(id int) bool {
	return s.Locked && s.Owner == id
}

func (s State) String() string {
	if s.Locked {
		return fmt.Sprintf("Locked(%d, %d)", s.Index, s.Owner)
	}
	return fmt.Sprintf("Unlocked(%d)", s.Index)
}

// Viewport is a visible x range in elapsed seconds
type Viewport struct {
	Min float64
	Max float64
}

// View receives the active slice and every cursor change
type View interface {
	ShowSlice(s *internal.Session)
	UpdateCursor(st State)
}

// ViewportView is a View that also follows the linked viewport
type ViewportView interface {
	View
	ApplyViewport(vp Viewport)
	ResetViewport()
}

type binding struct {
	id       int
	view     View
	applying bool
}

// Sync fans cursor and viewport events out to the registered views in
// registration order. It is not safe for concurrent use.
type Sync struct {
	views  []*binding
	nextID int
	slice  *internal.Session
	state  State
	linked bool
}

// NewSync creates a Sync with no views and no slice
func NewSync() *Sync {
	return &Sync{state: Unlocked(0)}
}

// Register adds a view and returns its id. Ids are never reused. The view
// immediately receives the current slice and cursor.
func (s *Sync) Register(v View) int {
	b := &binding{id: s.nextID, view: v}
	s.nextID++
	s.views = append(s.views, b)

	if s.slice != nil {
		v.ShowSlice(s.slice)
	}
	v.UpdateCursor(s.state)
	return b.id
}

// Unregister removes a view. A lock held by the view is released.
func (s *Sync) Unregister(id int) bool {
	for i, b := range s.views {
		if b.id != id {
			continue
		}
		s.views = append(s.views[:i], s.views[i+1:]...)
		if s.state.OwnedBy(id) {
			s.state = Unlocked(s.state.Index)
			s.broadcast()
		}
		return true
	}
	return false
}

// Views returns the registered view ids in registration order
func (s *Sync) Views() []int {
	ids := make([]int, len(s.views))
	for i, b := range s.views {
		ids[i] = b.id
	}
	return ids
}

// Publish makes slice the active range for every view and resets the
// cursor to Unlocked(0). Each call fully replaces the previous slice.
func (s *Sync) Publish(slice *internal.Session) {
	s.slice = slice
	s.state = Unlocked(0)
	for _, b := range s.views {
		b.view.ShowSlice(slice)
	}
	s.broadcast()
}

// Slice returns the active range, nil before the first Publish
func (s *Sync) Slice() *internal.Session {
	return s.slice
}

// State returns the current cursor state
func (s *Sync) State() State {
	return s.state
}

// Hover moves the cursor for view id. It is rejected while another view
// holds the lock. The lock state is left as is.
func (s *Sync) Hover(id, index int) bool {
	if s.find(id) == nil {
		return false
	}
	if s.state.Locked && s.state.Owner != id {
		return false
	}
	s.state.Index = s.clamp(index)
	s.broadcast()
	return true
}

// Click toggles the lock for view id: an unlocked cursor becomes locked by
// id at index, a cursor locked by id is released at index. A click from any
// other view while locked is rejected.
func (s *Sync) Click(id, index int) bool {
	if s.find(id) == nil {
		return false
	}
	switch {
	case !s.state.Locked:
		s.state = LockedBy(s.clamp(index), id)
	case s.state.Owner == id:
		s.state = Unlocked(s.clamp(index))
	default:
		return false
	}
	s.broadcast()
	return true
}

// Linked reports whether viewport changes are shared between views
func (s *Sync) Linked() bool {
	return s.linked
}

// SetLinked enables or disables the linked viewport. Disabling it reverts
// every view to its own full range.
func (s *Sync) SetLinked(on bool) {
	if s.linked == on {
		return
	}
	s.linked = on
	if on {
		return
	}
	for _, b := range s.views {
		if vv, ok := b.view.(ViewportView); ok {
			b.applying = true
			vv.ResetViewport()
			b.applying = false
		}
	}
}

// Viewport rebroadcasts a viewport change from view id to every other view.
// It reports false when the viewport is not linked or when id is itself
// applying an incoming viewport.
func (s *Sync) Viewport(id int, vp Viewport) bool {
	src := s.find(id)
	if src == nil || !s.linked || src.applying {
		return false
	}
	if vp.Min > vp.Max {
		vp.Min, vp.Max = vp.Max, vp.Min
	}
	for _, b := range s.views {
		if b.id == id {
			continue
		}
		vv, ok := b.view.(ViewportView)
		if !ok {
			continue
		}
		b.applying = true
		vv.ApplyViewport(vp)
		b.applying = false
	}
	return true
}

func (s *Sync) broadcast() {
	for _, b := range s.views {
		b.view.UpdateCursor(s.state)
	}
}

func (s *Sync) find(id int) *binding {
	for _, b := range s.views {
		if b.id == id {
			return b
		}
	}
	return nil
}

func (s *Sync) clamp(index int) int {
	n := s.slice.Len()
	if n == 0 || index < 0 {
		return 0
	}
	if index >= n {
		return n - 1
	}
	return index
}
