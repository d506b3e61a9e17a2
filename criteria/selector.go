// Package criteria implements the per-dimension participant filter: a picker
// with a pending selection that only becomes active on confirm.
package criteria

import (
	"fmt"
	"sort"

	"github.com/CreativVentures-hub/focus-group-ai/catalog"
	"github.com/CreativVentures-hub/focus-group-ai/model"
)

// Selector holds the selection state of one filter dimension. Dimensions are
// fully independent: a Selector never touches another Selector's state.
// Not safe for concurrent use; the owning draft serializes access.
type Selector struct {
	dimension string
	options   []model.Option

	// pending holds uncommitted picker state, committed the active selection.
	pending   map[string]bool
	committed map[string]bool
	open      bool
}

func NewSelector(dimension string, options []model.Option) *Selector {
	return &Selector{
		dimension: dimension,
		options:   options,
		pending:   map[string]bool{},
		committed: map[string]bool{},
	}
}

func (s *Selector) Dimension() string {
	return s.dimension
}

// Open starts a picker round: the pending selection is reset to the committed
// one, and the candidate list is returned, optionally filtered by query.
// On an already-open picker Open only re-runs the search; the query narrows
// the candidate list and pending toggles of the current round are kept.
func (s *Selector) Open(query string) []model.Option {
	if !s.open {
		s.pending = map[string]bool{}
		for label := range s.committed {
			s.pending[label] = true
		}
		s.open = true
	}
	return catalog.SearchOptions(s.options, query)
}

// Toggle flips membership of label in the pending selection. "Any" is an
// ordinary label here; it gets no special treatment before payload assembly.
func (s *Selector) Toggle(label string) error {
	if !s.knows(label) {
		return fmt.Errorf("criteria %s: unknown label %q", s.dimension, label)
	}
	if s.pending[label] {
		delete(s.pending, label)
	} else {
		s.pending[label] = true
	}
	return nil
}

// Confirm commits the pending selection and closes the picker.
func (s *Selector) Confirm() {
	s.committed = s.pending
	s.pending = map[string]bool{}
	s.open = false
}

// Close abandons the current picker round without committing; the next Open
// starts over from the committed selection.
func (s *Selector) Close() {
	s.open = false
}

// Clear empties the pending selection without committing it.
func (s *Selector) Clear() {
	s.pending = map[string]bool{}
}

// Remove drops a single label from the committed selection directly,
// without a picker round. Used by removable selection chips.
func (s *Selector) Remove(label string) {
	delete(s.committed, label)
}

// Selected returns the committed labels in stable order.
func (s *Selector) Selected() []string {
	labels := make([]string, 0, len(s.committed))
	for label := range s.committed {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	return labels
}

// SelectedValues returns the committed selection as the catalog's wire
// values, in the same order as Selected.
func (s *Selector) SelectedValues() []string {
	labels := s.Selected()
	values := make([]string, len(labels))
	for i, label := range labels {
		values[i] = s.value(label)
	}
	return values
}

// Pending returns the uncommitted labels in stable order.
func (s *Selector) Pending() []string {
	labels := make([]string, 0, len(s.pending))
	for label := range s.pending {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	return labels
}

func (s *Selector) Count() int {
	return len(s.committed)
}

// Summary is the picker button text: empty for no selection (the count badge
// is hidden), the sole label for one, a count for more.
func (s *Selector) Summary() string {
	switch len(s.committed) {
	case 0:
		return ""
	case 1:
		return s.Selected()[0]
	default:
		return fmt.Sprintf("%d selected", len(s.committed))
	}
}

func (s *Selector) knows(label string) bool {
	for _, opt := range s.options {
		if opt.Label == label {
			return true
		}
	}
	return false
}

func (s *Selector) value(label string) string {
	for _, opt := range s.options {
		if opt.Label == label {
			return opt.Value
		}
	}
	// committed labels always come from the option list; keep the label as a
	// last resort rather than dropping the selection
	return label
}
