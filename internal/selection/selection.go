// Package selection reconciles the Available pool of students with the
// operator's Chosen set.
package selection

import (
	"quiz-extensions/internal/domain"
)

// ExhaustedMessage is the placeholder shown when no Available entry is enabled.
const ExhaustedMessage = "No matching users found."

// Entry is one row of the Available pool. A placeholder entry carries only
// Message and never an Item.
type Entry struct {
	Item        domain.Item `json:"item"`
	Disabled    bool        `json:"disabled"`
	Placeholder bool        `json:"placeholder,omitempty"`
	Message     string      `json:"message,omitempty"`
}

// Set holds both pools. An Item's Available entry is disabled, not removed,
// while the Item is Chosen, so Recall can restore it. Set is not safe for
// concurrent use; the Controller serializes access.
type Set struct {
	available []Entry
	chosen    []domain.Item
	onChange  func(op string, item domain.Item)
}

// New returns an empty Set. onChange, when non-nil, fires once for every
// single Choose or Recall that changed the Chosen set.
func New(onChange func(op string, item domain.Item)) *Set {
	s := &Set{onChange: onChange}
	s.checkExhausted()
	return s
}

// LoadAvailable replaces the Available pool with a freshly fetched page.
// Entries already Chosen come back disabled.
func (s *Set) LoadAvailable(items []domain.Item) {
	s.available = make([]Entry, 0, len(items)+1)
	for _, it := range items {
		s.available = append(s.available, Entry{Item: it, Disabled: s.IsChosen(it.ID)})
	}
	s.checkExhausted()
}

// Choose appends item to Chosen. It is a no-op when the id is already Chosen.
func (s *Set) Choose(item domain.Item) bool {
	if s.IsChosen(item.ID) {
		return false
	}
	s.chosen = append(s.chosen, item)
	s.setDisabled(item.ID, true)
	s.checkExhausted()
	s.notify("choose", item)
	return true
}

// Recall removes id from Chosen and re-enables its Available entry. It is a
// no-op when id is not Chosen.
func (s *Set) Recall(id string) bool {
	idx := s.indexOf(id)
	if idx < 0 {
		return false
	}
	item := s.chosen[idx]
	s.chosen = append(s.chosen[:idx:idx], s.chosen[idx+1:]...)
	s.setDisabled(id, false)
	s.checkExhausted()
	s.notify("recall", item)
	return true
}

// Clear recalls the first Chosen item until none is left, so every per-item
// side effect runs once per element.
func (s *Set) Clear() int {
	n := 0
	for len(s.chosen) > 0 {
		s.Recall(s.chosen[0].ID)
		n++
	}
	return n
}

func (s *Set) IsEmpty() bool {
	return len(s.chosen) == 0
}

func (s *Set) IsChosen(id string) bool {
	return s.indexOf(id) >= 0
}

// Chosen returns a copy of the Chosen items in display order.
func (s *Set) Chosen() []domain.Item {
	out := make([]domain.Item, len(s.chosen))
	copy(out, s.chosen)
	return out
}

// ChosenIDs returns the Chosen ids in display order.
func (s *Set) ChosenIDs() []string {
	ids := make([]string, 0, len(s.chosen))
	for _, it := range s.chosen {
		ids = append(ids, it.ID)
	}
	return ids
}

// Available returns a copy of the Available pool, placeholder included.
func (s *Set) Available() []Entry {
	out := make([]Entry, len(s.available))
	copy(out, s.available)
	return out
}

// Exhausted reports whether the Available pool has no enabled entry.
func (s *Set) Exhausted() bool {
	return s.enabledCount() == 0
}

func (s *Set) indexOf(id string) int {
	for i, it := range s.chosen {
		if it.ID == id {
			return i
		}
	}
	return -1
}

func (s *Set) setDisabled(id string, disabled bool) {
	for i := range s.available {
		if !s.available[i].Placeholder && s.available[i].Item.ID == id {
			s.available[i].Disabled = disabled
		}
	}
}

func (s *Set) enabledCount() int {
	n := 0
	for _, e := range s.available {
		if !e.Placeholder && !e.Disabled {
			n++
		}
	}
	return n
}

// checkExhausted drops any stale placeholder before deciding whether to add
// one, so repeated calls never stack placeholders.
func (s *Set) checkExhausted() {
	kept := s.available[:0]
	for _, e := range s.available {
		if !e.Placeholder {
			kept = append(kept, e)
		}
	}
	s.available = kept
	if s.enabledCount() == 0 {
		s.available = append(s.available, Entry{Placeholder: true, Message: ExhaustedMessage})
	}
}

func (s *Set) notify(op string, item domain.Item) {
	if s.onChange != nil {
		s.onChange(op, item)
	}
}
