package versions

// Navigator performs a full page navigation to path. It is never a soft,
// client-side transition: each version root serves different content.
type Navigator interface {
	Navigate(path string)
}

// NavigatorFunc adapts a function to Navigator.
type NavigatorFunc func(path string)

func (f NavigatorFunc) Navigate(path string) { f(path) }

// Keys understood by Selector.Key, using DOM KeyboardEvent.key names.
const (
	KeyArrowUp    = "ArrowUp"
	KeyArrowDown  = "ArrowDown"
	KeyArrowLeft  = "ArrowLeft"
	KeyArrowRight = "ArrowRight"
	KeyEscape     = "Escape"
	KeyEnter      = "Enter"
	KeySpace      = " "
)

// KeyResult reports what a key press did.
type KeyResult struct {
	Handled      bool
	Navigated    bool
	RestoreFocus bool
}

// Selector is the state of one version dropdown: the version derived from
// the current path and whether the menu is open.
type Selector struct {
	rw      *Rewriter
	nav     Navigator
	path    string
	current string
	open    bool
}

// NewSelector returns a closed selector positioned at path.
func NewSelector(rw *Rewriter, nav Navigator, path string) *Selector {
	s := &Selector{rw: rw, nav: nav}
	s.SetPath(path)
	return s
}

// SetPath is called whenever the router reports a new location. The
// version is re-derived from the path every time.
func (s *Selector) SetPath(path string) {
	s.path = path
	s.current = s.rw.Detect(path)
}

// Path returns the last path reported by SetPath.
func (s *Selector) Path() string { return s.path }

// Current returns the detected version id.
func (s *Selector) Current() string { return s.current }

func (s *Selector) IsOpen() bool { return s.open }
func (s *Selector) Open()        { s.open = true }
func (s *Selector) Close()       { s.open = false }
func (s *Selector) Toggle()      { s.open = !s.open }

// Select switches to version id. It does nothing for the current, an
// unknown or a disabled version, or when the path has no counterpart in
// the target version. The menu is closed in every case. The return value
// reports whether a navigation was issued.
func (s *Selector) Select(id string) bool {
	defer s.Close()

	opt, ok := s.rw.set.Lookup(id)
	if !ok || !opt.Enabled || id == s.current {
		return false
	}
	target := s.rw.TargetPath(s.path, s.current, id)
	if target == "" {
		return false
	}
	s.nav.Navigate(target)
	return true
}

// Key handles a key press on the control. Arrow keys move to the next or
// previous enabled version and switch to it; Escape closes the menu and
// hands focus back to the trigger; Enter and Space toggle the menu.
func (s *Selector) Key(key string) KeyResult {
	switch key {
	case KeyArrowDown, KeyArrowRight:
		return s.step(1)
	case KeyArrowUp, KeyArrowLeft:
		return s.step(-1)
	case KeyEscape:
		s.Close()
		return KeyResult{Handled: true, RestoreFocus: true}
	case KeyEnter, KeySpace:
		s.Toggle()
		return KeyResult{Handled: true}
	}
	return KeyResult{}
}

func (s *Selector) step(dir int) KeyResult {
	next, ok := s.rw.set.Step(s.current, dir)
	if !ok || next.ID == s.current {
		return KeyResult{Handled: true}
	}
	return KeyResult{Handled: true, Navigated: s.Select(next.ID)}
}

// OutsideInteraction closes an open menu when a pointer or focus event
// happened outside the control.
func (s *Selector) OutsideInteraction(inside bool) {
	if s.open && !inside {
		s.open = false
	}
}
