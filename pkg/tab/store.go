package tab

// slot is one entry of the element store. An empty slot (elem == nil) is a
// tombstone that reserves a position for a later note.
type slot struct {
	elem     *Element
	reserved int
}

func (s slot) empty() bool { return s.elem == nil }

func (s slot) position() int {
	if s.elem != nil {
		return s.elem.Position
	}
	return s.reserved
}

// store is an arena of element slots. Positions identify elements; slot
// offsets are storage only and never stand in for a position.
type store struct {
	slots []slot
}

// firstEmpty returns the offset of the first tombstone, or -1.
func (s *store) firstEmpty() int {
	for i, sl := range s.slots {
		if sl.empty() {
			return i
		}
	}
	return -1
}

// put stores e in the tombstone reserving its position, else in a new slot
// at the end. A tombstone is never handed to a different position.
func (s *store) put(e *Element) {
	for i, sl := range s.slots {
		if sl.empty() && sl.reserved == e.Position {
			s.slots[i].elem = e
			return
		}
	}
	s.slots = append(s.slots, slot{elem: e})
}

// reserve appends a tombstone for position p.
func (s *store) reserve(p int) {
	s.slots = append(s.slots, slot{reserved: p})
}

// find returns the live element at position p.
func (s *store) find(p int) (*Element, bool) {
	for _, sl := range s.slots {
		if sl.elem != nil && sl.elem.Position == p {
			return sl.elem, true
		}
	}
	return nil, false
}

// remove drops every slot at position p and moves everything after p one
// position earlier. It returns the number of slots removed.
func (s *store) remove(p int) int {
	kept := s.slots[:0]
	removed := 0
	for _, sl := range s.slots {
		if sl.position() == p {
			removed++
			continue
		}
		kept = append(kept, sl)
	}
	clear(s.slots[len(kept):])
	s.slots = kept
	if removed == 0 {
		return 0
	}
	for i := range s.slots {
		sl := &s.slots[i]
		if sl.position() < p {
			continue
		}
		if sl.elem != nil {
			sl.elem.LeftTranslate()
		} else {
			sl.reserved--
		}
	}
	return removed
}

// open moves everything at or after p one position later and leaves a
// tombstone reserving p immediately before the first slot that moved.
func (s *store) open(p int) {
	at := len(s.slots)
	for i := range s.slots {
		sl := &s.slots[i]
		if sl.position() < p {
			continue
		}
		if i < at {
			at = i
		}
		if sl.elem != nil {
			sl.elem.RightTranslate()
		} else {
			sl.reserved++
		}
	}
	s.slots = append(s.slots, slot{})
	copy(s.slots[at+1:], s.slots[at:])
	s.slots[at] = slot{reserved: p}
}

// live returns the stored elements in slot order.
func (s *store) live() []*Element {
	out := make([]*Element, 0, len(s.slots))
	for _, sl := range s.slots {
		if sl.elem != nil {
			out = append(out, sl.elem)
		}
	}
	return out
}

// next returns the position the next note should go to: the first
// tombstone's reservation, else one past the latest position.
func (s *store) next(fallback int) int {
	if i := s.firstEmpty(); i >= 0 {
		return s.slots[i].reserved
	}
	last, ok := -1, false
	for _, sl := range s.slots {
		if p := sl.position(); !ok || p > last {
			last, ok = p, true
		}
	}
	if !ok {
		return fallback
	}
	return last + 1
}
