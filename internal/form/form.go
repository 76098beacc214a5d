// Package form implements the registration form controller: it holds field
// values, records one error per field, and builds the registration record once
// every field passes its rule.
//
// A Form is not safe for concurrent use; callers serialise events per form.
package form

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/noah-isme/k12-registration-api/internal/models"
	"github.com/noah-isme/k12-registration-api/internal/validation"
)

// State is the lifecycle stage of a form.
type State string

// Form states.
const (
	StateEditing   State = "editing"
	StateSubmitted State = "submitted"
)

var (
	// ErrUnknownField is returned for a field name outside the form definition.
	ErrUnknownField = errors.New("unknown form field")
	// ErrSubmitted is returned for any event received after a successful submit.
	ErrSubmitted = errors.New("form already submitted")
)

// Form is a single registration in progress.
type Form struct {
	values map[models.Field]string
	errors models.FieldErrors
	state  State
	record *models.Registration

	rules map[models.Field]validation.Validator
	now   func() time.Time
	newID func() string
}

// Option customises a Form.
type Option func(*Form)

// WithClock sets the clock used for the date-of-birth rule and the submission
// timestamp.
func WithClock(now func() time.Time) Option {
	return func(f *Form) {
		if now != nil {
			f.now = now
		}
	}
}

// WithIDGenerator sets the record identifier generator.
func WithIDGenerator(newID func() string) Option {
	return func(f *Form) {
		if newID != nil {
			f.newID = newID
		}
	}
}

// New returns an empty form in the editing state.
func New(opts ...Option) *Form {
	f := &Form{
		values: make(map[models.Field]string, len(models.Fields)),
		errors: models.FieldErrors{},
		state:  StateEditing,
		now:    time.Now,
		newID:  uuid.NewString,
	}
	for _, opt := range opts {
		opt(f)
	}
	f.rules = validation.Bindings(f.now)
	return f
}

// Change stores a new value and clears the field's recorded error without
// re-validating it.
func (f *Form) Change(field models.Field, value string) error {
	if err := f.accept(field); err != nil {
		return err
	}
	f.values[field] = value
	delete(f.errors, field)
	return nil
}

// Blur re-validates a single field against its current value and updates its
// error slot.
func (f *Form) Blur(field models.Field) (validation.Result, error) {
	if err := f.accept(field); err != nil {
		return validation.Result{}, err
	}
	res := f.rules[field](f.values[field])
	if res.Valid {
		delete(f.errors, field)
	} else {
		f.errors[field] = res.Reason
	}
	return res, nil
}

// Submit re-validates every field in one batch. On success it builds the
// registration record and moves the form to StateSubmitted; otherwise it
// returns the per-field errors and no record.
func (f *Form) Submit() (*models.Registration, models.FieldErrors, error) {
	return f.SubmitFunc(nil)
}

// SubmitFunc is Submit with a commit step. commit receives the built record
// before the state change; if it fails the form stays editable and the error
// is returned.
func (f *Form) SubmitFunc(commit func(models.Registration) error) (*models.Registration, models.FieldErrors, error) {
	if f.state == StateSubmitted {
		return nil, nil, ErrSubmitted
	}
	f.errors = validateAll(f.rules, f.values)
	if len(f.errors) > 0 {
		return nil, f.errors.Clone(), nil
	}
	record := models.NewRegistration(f.newID(), f.values, f.now().UTC())
	if commit != nil {
		if err := commit(record); err != nil {
			return nil, nil, err
		}
	}
	f.record = &record
	f.state = StateSubmitted
	out := record
	return &out, nil, nil
}

// State returns the current lifecycle stage.
func (f *Form) State() State {
	return f.state
}

// Values returns a copy of the current field values.
func (f *Form) Values() map[models.Field]string {
	out := make(map[models.Field]string, len(f.values))
	for k, v := range f.values {
		out[k] = v
	}
	return out
}

// Errors returns a copy of the recorded field errors.
func (f *Form) Errors() models.FieldErrors {
	return f.errors.Clone()
}

// Record returns the submitted registration, if any.
func (f *Form) Record() (models.Registration, bool) {
	if f.record == nil {
		return models.Registration{}, false
	}
	return *f.record, true
}

func (f *Form) accept(field models.Field) error {
	if f.state == StateSubmitted {
		return ErrSubmitted
	}
	if _, ok := f.rules[field]; !ok {
		return ErrUnknownField
	}
	return nil
}

// Validate runs every field rule against values, as a submit would, and
// returns the failures. Missing fields are validated as empty.
func Validate(values map[models.Field]string, now func() time.Time) models.FieldErrors {
	return validateAll(validation.Bindings(now), values)
}

func validateAll(rules map[models.Field]validation.Validator, values map[models.Field]string) models.FieldErrors {
	errs := models.FieldErrors{}
	for _, field := range models.Fields {
		if res := rules[field](values[field]); !res.Valid {
			errs[field] = res.Reason
		}
	}
	return errs
}
