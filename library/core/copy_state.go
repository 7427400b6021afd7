package core

// CopyState folds copy lifecycle events into the current BookCopy records.
// Copies are kept in registration order.
type CopyState struct {
	order  []CopyIDString
	copies map[CopyIDString]BookCopy
}

func NewCopyState() *CopyState {
	return &CopyState{copies: make(map[CopyIDString]BookCopy)}
}

// CopiesFrom replays history and returns every registered copy in registration order.
func CopiesFrom(history DomainEvents) []BookCopy {
	s := NewCopyState()
	for _, event := range history {
		s.Apply(event)
	}

	return s.Copies()
}

// Apply folds one event. Events for unregistered copies and non-copy events are ignored.
func (s *CopyState) Apply(event DomainEvent) {
	switch e := event.(type) {
	case BookCopyRegistered:
		if _, exists := s.copies[e.CopyID]; !exists {
			s.order = append(s.order, e.CopyID)
		}
		s.copies[e.CopyID] = e.Copy()

	case BookCopyIssued:
		s.update(e.CopyID, func(c *BookCopy) {
			c.Status = CopyIssued
			c.LastHandledBy = e.UserID
		})

	case BookCopyReturned:
		s.update(e.CopyID, func(c *BookCopy) {
			c.Status = CopyAvailable
			c.LastHandledBy = ""
		})

	case BookCopyStatusChanged:
		s.update(e.CopyID, func(c *BookCopy) {
			c.Status = e.ToStatus
			if e.ToStatus == CopyAvailable {
				c.LastHandledBy = ""
			}
		})
	}
}

// Copy returns the current state of one copy.
func (s *CopyState) Copy(id CopyIDString) (BookCopy, bool) {
	c, ok := s.copies[id]

	return c, ok
}

// Copies returns all copies in registration order.
func (s *CopyState) Copies() []BookCopy {
	copies := make([]BookCopy, 0, len(s.order))
	for _, id := range s.order {
		copies = append(copies, s.copies[id])
	}

	return copies
}

func (s *CopyState) update(id CopyIDString, mutate func(c *BookCopy)) {
	c, ok := s.copies[id]
	if !ok {
		return
	}

	mutate(&c)
	s.copies[id] = c
}
