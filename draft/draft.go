// Package draft owns the in-flight form state of one focus-group request:
// the session configuration, one criteria selector per filter dimension, and
// the submission lifecycle. Drafts live in memory only.
package draft

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/atomic"

	"github.com/CreativVentures-hub/focus-group-ai/catalog"
	"github.com/CreativVentures-hub/focus-group-ai/criteria"
	"github.com/CreativVentures-hub/focus-group-ai/model"
	"github.com/CreativVentures-hub/focus-group-ai/payload"
)

// The two category pickers share the selector machinery with the demographic
// dimensions but feed the single categories wire field.
const (
	DimensionBuyingBehaviors   = "buying_behaviors"
	DimensionProductCategories = "product_categories"
)

const DefaultParticipants = 10

var ErrSubmissionInFlight = fmt.Errorf("a submission is already in progress")

type Draft struct {
	ID string

	mu        sync.Mutex
	fields    model.SessionFields
	selectors map[string]*criteria.Selector
	cat       *catalog.Catalog

	submitting atomic.Bool
	cancel     context.CancelFunc

	createdAt time.Time
	updatedAt time.Time
}

func newDraft(id string, cat *catalog.Catalog, now time.Time) *Draft {
	selectors := map[string]*criteria.Selector{
		DimensionBuyingBehaviors:   criteria.NewSelector(DimensionBuyingBehaviors, cat.BuyingBehaviors),
		DimensionProductCategories: criteria.NewSelector(DimensionProductCategories, cat.ProductCategories),
	}
	for _, d := range cat.Dimensions {
		selectors[d.Name] = criteria.NewSelector(d.Name, d.Options)
	}

	fields := model.SessionFields{
		NumberOfParticipants: DefaultParticipants,
	}
	// the first enabled session type is preselected without user action
	if defaultType, ok := cat.DefaultSessionType(); ok {
		fields.SessionType = defaultType.Value
	}

	return &Draft{
		ID:        id,
		fields:    fields,
		selectors: selectors,
		cat:       cat,
		createdAt: now,
		updatedAt: now,
	}
}

// SetFields replaces the free-text form values. A disabled session type is
// rejected here, at the input level; an unknown or blank one is let through
// and caught by validation at submit time.
func (d *Draft) SetFields(fields model.SessionFields) error {
	if t, ok := d.cat.SessionType(fields.SessionType); ok && t.Disabled {
		return fmt.Errorf("session type %q is not available yet", t.Label)
	}

	questions := make([]model.Question, 0, len(fields.Questions))
	for _, q := range fields.Questions {
		if q.Text != "" {
			questions = append(questions, q)
		}
	}
	fields.Questions = questions

	d.mu.Lock()
	defer d.mu.Unlock()
	d.fields = fields
	d.updatedAt = time.Now()
	return nil
}

// Selector runs op against one dimension's selector under the draft lock.
func (d *Draft) Selector(dimension string, op func(*criteria.Selector) error) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	s, ok := d.selectors[dimension]
	if !ok {
		return fmt.Errorf("unknown criteria dimension %q", dimension)
	}

	err := op(s)
	if err != nil {
		return err
	}
	d.updatedAt = time.Now()
	return nil
}

// Snapshot captures the form state for validation and assembly. The payload
// sent downstream reflects exactly this moment.
func (d *Draft) Snapshot() payload.Form {
	d.mu.Lock()
	defer d.mu.Unlock()

	demographics := map[string][]string{}
	for _, name := range d.cat.DimensionNames() {
		demographics[name] = d.selectors[name].SelectedValues()
	}

	// snapshots carry the catalog's wire values; payload normalization is a
	// no-op on them but still guards free-form input
	return payload.Form{
		SessionFields:     d.fields,
		BuyingBehaviors:   d.selectors[DimensionBuyingBehaviors].SelectedValues(),
		ProductCategories: d.selectors[DimensionProductCategories].SelectedValues(),
		Demographics:      demographics,
	}
}

// BeginSubmit claims the draft's single submission slot. A second submit
// while one is outstanding gets ErrSubmissionInFlight and no network call.
func (d *Draft) BeginSubmit(cancel context.CancelFunc) error {
	if !d.submitting.CAS(false, true) {
		return ErrSubmissionInFlight
	}

	d.mu.Lock()
	d.cancel = cancel
	d.mu.Unlock()
	return nil
}

// EndSubmit releases the submission slot, whatever the outcome was.
func (d *Draft) EndSubmit() {
	d.mu.Lock()
	d.cancel = nil
	d.mu.Unlock()
	d.submitting.Store(false)
}

// CancelSubmit aborts the outstanding request, if any, returning the draft
// to idle. The form state is untouched so the user can retry.
func (d *Draft) CancelSubmit() bool {
	d.mu.Lock()
	cancel := d.cancel
	d.mu.Unlock()

	if cancel == nil {
		return false
	}
	cancel()
	return true
}

func (d *Draft) Submitting() bool {
	return d.submitting.Load()
}

// View is the client-facing representation of a draft.
type View struct {
	ID         string                   `json:"id"`
	Fields     model.SessionFields      `json:"fields"`
	Selections map[string]SelectionView `json:"selections"`
	Status     string                   `json:"status"`
	UpdatedAt  time.Time                `json:"updated_at"`
}

type SelectionView struct {
	Selected []string `json:"selected"`
	Count    int      `json:"count"`
	Summary  string   `json:"summary,omitempty"`
}

func (d *Draft) View() View {
	d.mu.Lock()
	defer d.mu.Unlock()

	selections := map[string]SelectionView{}
	for name, s := range d.selectors {
		selections[name] = SelectionView{
			Selected: s.Selected(),
			Count:    s.Count(),
			Summary:  s.Summary(),
		}
	}

	status := "idle"
	if d.submitting.Load() {
		status = "submitting"
	}

	return View{
		ID:         d.ID,
		Fields:     d.fields,
		Selections: selections,
		Status:     status,
		UpdatedAt:  d.updatedAt,
	}
}
