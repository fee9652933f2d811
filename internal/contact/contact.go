// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package contact implements the contact form. Submissions are validated,
// held for a fixed simulated latency and then discarded; nothing is stored
// or sent anywhere.
package contact

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"sort"
	"strings"
	"sync"
	"time"
)

const (
	// DefaultLatency is the simulated submission delay.
	DefaultLatency = 1 * time.Second

	// DefaultResetAfter is how long the success indicator stays up.
	DefaultResetAfter = 3 * time.Second
)

var (
	// ErrInvalid is wrapped by every ValidationError.
	ErrInvalid = errors.New("contact: invalid submission")

	// ErrBusy is returned when a submission is already waiting.
	ErrBusy = errors.New("contact: submission already in progress")
)

// Submission is the content of the contact form.
type Submission struct {
	Name    string
	Email   string
	Subject string
	Message string
}

// FieldErrors maps a form field name to its error message.
type FieldErrors map[string]string

// ValidationError reports which fields were rejected.
type ValidationError struct {
	Fields FieldErrors
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		names = append(names, k)
	}
	sort.Strings(names)
	return fmt.Sprintf("contact: invalid fields: %s", strings.Join(names, ", "))
}

func (e *ValidationError) Unwrap() error { return ErrInvalid }

// Validate mirrors the browser's native checks: every field must be
// non-empty and the email must look like local@domain. Field content is
// otherwise accepted as is. It returns nil when the submission is
// acceptable.
func (s Submission) Validate() FieldErrors {
	errs := FieldErrors{}

	required := func(field, value, label string) {
		if value == "" {
			errs[field] = label + " is required."
		}
	}
	required("name", s.Name, "Name")
	required("email", s.Email, "Email")
	required("subject", s.Subject, "Subject")
	required("message", s.Message, "Message")

	if _, bad := errs["email"]; !bad && !validEmail(s.Email) {
		errs["email"] = "Please enter a valid email address."
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

// validEmail accepts a bare address of the form local@domain, the same
// shape a browser's type=email input allows. Browsers strip surrounding
// whitespace from email inputs, so this does too.
func validEmail(s string) bool {
	s = strings.TrimSpace(s)
	addr, err := mail.ParseAddress(s)
	if err != nil || addr.Address != s {
		return false
	}
	at := strings.LastIndexByte(s, '@')
	return at > 0 && at < len(s)-1
}

// Status is the form's visible state.
type Status string

const (
	StatusIdle       Status = "idle"
	StatusSubmitting Status = "submitting"
	StatusSuccess    Status = "success"
)

// Options tunes the form timers. Zero durations select the defaults.
type Options struct {
	Latency    time.Duration
	ResetAfter time.Duration

	// OnChange, when set, is called after every status transition.
	OnChange func(Status)
}

// Form holds the state of one contact form instance.
type Form struct {
	latency    time.Duration
	resetAfter time.Duration
	onChange   func(Status)

	mu     sync.Mutex
	status Status
	fields Submission
	reset  *time.Timer
	gen    int // bumped whenever a pending reset is superseded
	closed bool
}

// NewForm returns an idle, empty form.
func NewForm(opts Options) *Form {
	if opts.Latency <= 0 {
		opts.Latency = DefaultLatency
	}
	if opts.ResetAfter <= 0 {
		opts.ResetAfter = DefaultResetAfter
	}
	return &Form{
		latency:    opts.Latency,
		resetAfter: opts.ResetAfter,
		onChange:   opts.OnChange,
		status:     StatusIdle,
	}
}

// ResetAfter returns how long the success indicator is shown.
func (f *Form) ResetAfter() time.Duration { return f.resetAfter }

// Status returns the current status.
func (f *Form) Status() Status {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.status
}

// Fields returns the current field values.
func (f *Form) Fields() Submission {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.fields
}

// Update replaces the field values.
func (f *Form) Update(s Submission) {
	f.mu.Lock()
	f.fields = s
	f.mu.Unlock()
}

// Submit validates the fields, waits out the simulated latency, discards
// the input, clears the fields and shows the success indicator. The
// indicator reverts to idle after ResetAfter. If ctx ends during the wait
// the form returns to idle with its fields intact.
func (f *Form) Submit(ctx context.Context) error {
	f.mu.Lock()
	if f.status == StatusSubmitting {
		f.mu.Unlock()
		return ErrBusy
	}
	if errs := f.fields.Validate(); errs != nil {
		f.mu.Unlock()
		return &ValidationError{Fields: errs}
	}
	f.stopResetLocked()
	f.status = StatusSubmitting
	f.mu.Unlock()
	f.notify(StatusSubmitting)

	wait := time.NewTimer(f.latency)
	defer wait.Stop()
	select {
	case <-ctx.Done():
		f.mu.Lock()
		f.status = StatusIdle
		f.mu.Unlock()
		f.notify(StatusIdle)
		return ctx.Err()
	case <-wait.C:
	}

	f.mu.Lock()
	f.fields = Submission{}
	f.status = StatusSuccess
	if !f.closed {
		f.gen++
		gen := f.gen
		f.reset = time.AfterFunc(f.resetAfter, func() { f.revert(gen) })
	}
	f.mu.Unlock()
	f.notify(StatusSuccess)
	return nil
}

// revert hides the success indicator unless the form was closed or a newer
// submission superseded this timer.
func (f *Form) revert(gen int) {
	f.mu.Lock()
	if f.closed || f.gen != gen || f.status != StatusSuccess {
		f.mu.Unlock()
		return
	}
	f.reset = nil
	f.status = StatusIdle
	f.mu.Unlock()
	f.notify(StatusIdle)
}

// Close cancels the pending indicator reset.
func (f *Form) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	f.stopResetLocked()
}

func (f *Form) stopResetLocked() {
	if f.reset != nil {
		f.reset.Stop()
		f.reset = nil
	}
	f.gen++
}

// View is the form state as rendered by the contact_form template.
type View struct {
	Fields       Submission
	Errors       FieldErrors
	Status       Status
	ResetAfterMS int64
}

// View returns the current state with errs attached for display.
func (f *Form) View(errs FieldErrors) View {
	f.mu.Lock()
	defer f.mu.Unlock()
	return View{
		Fields:       f.fields,
		Errors:       errs,
		Status:       f.status,
		ResetAfterMS: f.resetAfter.Milliseconds(),
	}
}

func (f *Form) notify(s Status) {
	if f.onChange != nil {
		f.onChange(s)
	}
}
