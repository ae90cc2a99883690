package pointer

import "github.com/matzehuels/paddock/pkg/layout"

// Selection is the hover and selection state of one widget. Methods return
// updated copies; the widget stores the result.
type Selection struct {
	Selected int           `json:"selected"`
	Hover    *layout.Point `json:"hover,omitempty"`
}

// Empty returns a selection with nothing selected and no hover.
func Empty() Selection {
	return Selection{Selected: None}
}

// HasSelection reports whether an entity is selected.
func (s Selection) HasSelection() bool { return s.Selected != None }

// Hovering reports whether the pointer is over the surface.
func (s Selection) Hovering() bool { return s.Hover != nil }

// Select selects index i.
func (s Selection) Select(i int) Selection {
	s.Selected = i
	return s
}

// Toggle selects i, or clears the selection when i is already selected.
func (s Selection) Toggle(i int) Selection {
	if s.Selected == i {
		s.Selected = None
	} else {
		s.Selected = i
	}
	return s
}

// HoverAt records the pointer position.
func (s Selection) HoverAt(p layout.Point) Selection {
	s.Hover = &p
	return s
}

// Leave clears the pointer position.
func (s Selection) Leave() Selection {
	s.Hover = nil
	return s
}

// Reset clears selection and hover, as on a configuration change.
func (s Selection) Reset() Selection {
	return Empty()
}
