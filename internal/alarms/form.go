package alarms

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/khapa77/gong-dullabha/internal/weekday"
	"github.com/khapa77/gong-dullabha/pkg/models"
)

// Fields are the editable values of the alarm form. Days are canonical.
type Fields struct {
	Time     string
	Days     []int
	Duration int
	Active   bool
	Label    string
}

// Rules selects which fields must be filled before a submit goes out.
type Rules struct {
	RequireDays     bool
	RequireDuration bool
}

// DefaultRules mirrors what the Flask backend rejects: a missing time or a
// non-positive duration.
func DefaultRules() Rules {
	return Rules{RequireDuration: true}
}

// Form is the create/edit state machine behind the alarm dialog.
type Form struct {
	store *Store
	sync  *Syncer
	rules Rules

	mu         sync.Mutex
	editingID  int
	editing    bool
	fields     Fields
	submitting bool
}

func NewForm(store *Store, syncer *Syncer, rules Rules) *Form {
	f := &Form{store: store, sync: syncer, rules: rules}
	f.reset()
	return f
}

// BeginCreate clears the form for a new alarm. New alarms start active.
func (f *Form) BeginCreate() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reset()
}

// BeginEdit loads alarm id into the form. A stale or empty store is reloaded
// once before giving up with a StaleReferenceError.
func (f *Form) BeginEdit(ctx context.Context, id int) error {
	alarm, ok := f.store.Find(id)
	if !ok {
		if err := f.sync.Load(ctx); err != nil {
			return err
		}
		alarm, ok = f.store.Find(id)
	}
	if !ok {
		return &StaleReferenceError{ID: id}
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.editing = true
	f.editingID = id
	f.fields = Fields{
		Time:     alarm.Time,
		Days:     weekday.Normalize(alarm.Days),
		Duration: alarm.Duration,
		Active:   alarm.Active,
		Label:    alarm.Label,
	}
	return nil
}

// EditingID returns the alarm being edited, ok is false in Create.
func (f *Form) EditingID() (id int, ok bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.editingID, f.editing
}

func (f *Form) Fields() Fields {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := f.fields
	out.Days = append([]int(nil), f.fields.Days...)
	return out
}

func (f *Form) SetFields(v Fields) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v.Days = weekday.Normalize(v.Days)
	f.fields = v
}

// Validate checks the current fields without touching the network.
func (f *Form) Validate() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.rules.check(f.fields)
}

// Submit validates and then creates or updates depending on the state. On
// success the form returns to Create. On failure it keeps its state so the
// user can correct and retry.
func (f *Form) Submit(ctx context.Context) error {
	f.mu.Lock()
	if f.submitting {
		f.mu.Unlock()
		return ErrBusy
	}
	if err := f.rules.check(f.fields); err != nil {
		f.mu.Unlock()
		return err
	}
	f.submitting = true
	editing, id := f.editing, f.editingID
	in := models.AlarmInput{
		Time:     f.fields.Time,
		Days:     append([]int(nil), f.fields.Days...),
		Duration: f.fields.Duration,
		Active:   f.fields.Active,
		Label:    f.fields.Label,
	}
	f.mu.Unlock()

	var err error
	if editing {
		err = f.sync.Update(ctx, id, in)
	} else {
		_, err = f.sync.Create(ctx, in)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.submitting = false
	var reloadErr *ReloadError
	if err != nil && !errors.As(err, &reloadErr) {
		return err
	}
	// the write went through, so the dialog closes even if the reload failed
	f.reset()
	return err
}

// Close abandons the dialog and returns to Create.
func (f *Form) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reset()
}

func (f *Form) reset() {
	f.editing = false
	f.editingID = 0
	f.fields = Fields{Active: true}
}

func (r Rules) check(v Fields) error {
	if v.Time == "" {
		return &ValidationError{Field: "time", Message: "is required"}
	}
	if _, err := time.Parse("15:04", v.Time); err != nil || len(v.Time) != len("15:04") {
		return &ValidationError{Field: "time", Message: "must be HH:MM"}
	}
	if r.RequireDays && len(v.Days) == 0 {
		return &ValidationError{Field: "days", Message: "select at least one day"}
	}
	if !weekday.Valid(v.Days) {
		return &ValidationError{Field: "days", Message: "must be between Monday and Sunday"}
	}
	if v.Duration < 0 || (r.RequireDuration && v.Duration == 0) {
		return &ValidationError{Field: "duration", Message: "must be a positive number of seconds"}
	}
	return nil
}
