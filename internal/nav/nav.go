// Package nav holds the screen navigation state: the current view and a
// back-stack of how the user got there.
package nav

// View identifies a screen.
type View string

const (
	ViewEntry          View = "entry"
	ViewChart          View = "chart"
	ViewHistory        View = "history"
	ViewEdit           View = "edit"
	ViewCategories     View = "categories"
	ViewCreateCategory View = "createCategory"
	ViewEditCategory   View = "editCategory"
)

// Stack is the navigation machine. The zero value is not ready; use New.
//
// Invariant: Current() equals the top of the back-stack at all times. The
// one deliberate exception is SetView, which the entry/chart toggle uses to
// switch screens without recording a stack entry — going back from a toggled
// view follows whatever stack already existed. That asymmetry is load-bearing
// for the toggle's back-behaviour; do not "fix" it.
type Stack struct {
	current View
	stack   []View
}

// New starts at the entry screen with a single-element stack.
func New() *Stack {
	return &Stack{current: ViewEntry, stack: []View{ViewEntry}}
}

// Current returns the active view.
func (s *Stack) Current() View {
	return s.current
}

// Depth returns the back-stack depth.
func (s *Stack) Depth() int {
	return len(s.stack)
}

// Views returns a copy of the back-stack, oldest first.
func (s *Stack) Views() []View {
	return append([]View{}, s.stack...)
}

// Push navigates forward to v, recording it on the back-stack.
func (s *Stack) Push(v View) {
	s.stack = append(s.stack, v)
	s.current = v
}

// Back pops one entry. At the root it collapses to the entry screen with a
// single-element stack; there is no underflow.
func (s *Stack) Back() {
	if len(s.stack) > 1 {
		s.stack = s.stack[:len(s.stack)-1]
		s.current = s.stack[len(s.stack)-1]
		return
	}
	s.stack = []View{ViewEntry}
	s.current = ViewEntry
}

// ResetToHistory discards the stack and replaces it with [entry, history],
// so that back from history lands on entry regardless of how deep the user
// was before. Used after completing an edit or delete.
func (s *Stack) ResetToHistory() {
	s.reset(ViewHistory)
}

// ResetToCategories discards the stack and replaces it with
// [entry, categories]. Used after category create/update/delete.
func (s *Stack) ResetToCategories() {
	s.reset(ViewCategories)
}

// SetView switches the active view without touching the back-stack. Only the
// entry/chart toggle uses this; see the type comment.
func (s *Stack) SetView(v View) {
	s.current = v
}

func (s *Stack) reset(target View) {
	s.stack = []View{ViewEntry, target}
	s.current = target
}
