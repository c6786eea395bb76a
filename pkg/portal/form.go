package portal

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
)

var (
	// ErrBusy is returned by Submit while a submission is in flight.
	ErrBusy = errors.New("portal: form is submitting")
	// ErrNotOpen is returned by Submit on a closed form.
	ErrNotOpen = errors.New("portal: form is not open")
	// ErrValidation wraps every client-side validation failure.
	ErrValidation = errors.New("portal: validation failed")
)

// FormState is the submission lifecycle state.
type FormState int

const (
	FormClosed FormState = iota
	FormOpen
	Submitting
)

// Required returns an ErrValidation error naming every blank field.
func Required(fields map[string]string) error {
	var missing []string
	for name, value := range fields {
		if strings.TrimSpace(value) == "" {
			missing = append(missing, name)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	sort.Strings(missing)
	return fmt.Errorf("%w: %s required", ErrValidation, strings.Join(missing, ", "))
}

// Form is a create or edit form over payload P. Validation runs before any
// call; on success the form closes and reload runs.
type Form[P any] struct {
	mu       sync.Mutex
	state    FormState
	values   P
	validate func(P) error
	submit   func(ctx context.Context, values P) error
	reload   func(ctx context.Context) error
	feedback *Feedback
}

// NewForm builds a closed form. validate and reload may be nil.
func NewForm[P any](submit func(ctx context.Context, values P) error, validate func(P) error, reload func(ctx context.Context) error) *Form[P] {
	return &Form[P]{submit: submit, validate: validate, reload: reload}
}

// Open shows the form with initial values. No call is made.
func (f *Form[P]) Open(initial P) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state == Submitting {
		return
	}
	f.state = FormOpen
	f.values = initial
	f.feedback = nil
}

// Edit replaces the field values of an open form.
func (f *Form[P]) Edit(fn func(*P)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state == FormOpen {
		fn(&f.values)
	}
}

// Cancel closes the form without submitting.
func (f *Form[P]) Cancel() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state == FormOpen {
		var zero P
		f.state = FormClosed
		f.values = zero
	}
}

// Submit validates and sends the values. On failure the form stays open with
// its values and an error message.
func (f *Form[P]) Submit(ctx context.Context) error {
	f.mu.Lock()
	switch f.state {
	case Submitting:
		f.mu.Unlock()
		return ErrBusy
	case FormClosed:
		f.mu.Unlock()
		return ErrNotOpen
	}
	values := f.values
	if f.validate != nil {
		if err := f.validate(values); err != nil {
			if !errors.Is(err, ErrValidation) {
				err = fmt.Errorf("%w: %v", ErrValidation, err)
			}
			f.feedback = failure(err)
			f.mu.Unlock()
			return err
		}
	}
	f.state = Submitting
	f.mu.Unlock()

	err := f.submit(ctx, values)

	f.mu.Lock()
	if err != nil {
		f.state = FormOpen
		f.feedback = failure(err)
		f.mu.Unlock()
		return err
	}
	var zero P
	f.state = FormClosed
	f.values = zero
	f.feedback = success("saved")
	reload := f.reload
	f.mu.Unlock()

	if reload != nil {
		if err := reload(ctx); err != nil && !errors.Is(err, ErrStale) {
			return err
		}
	}
	return nil
}

// State returns the submission state.
func (f *Form[P]) State() FormState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Values returns the current field values.
func (f *Form[P]) Values() P {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.values
}

// Feedback returns the current message, if any.
func (f *Form[P]) Feedback() *Feedback {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.feedback
}

// FanOut builds one row per roster student from a template and inserts them
// in a single call. An empty roster is a validation error and nothing is sent.
func FanOut[R any](ctx context.Context, roster []string, build func(studentID string) R, insert func(ctx context.Context, rows []R) error) (int, error) {
	if len(roster) == 0 {
		return 0, fmt.Errorf("%w: select at least one student", ErrValidation)
	}
	rows := make([]R, 0, len(roster))
	for _, id := range roster {
		rows = append(rows, build(id))
	}
	if err := insert(ctx, rows); err != nil {
		return 0, err
	}
	return len(rows), nil
}
