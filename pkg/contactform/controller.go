package contactform

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"
)

// DefaultResetDelay is how long Success is shown before reverting to Idle
const DefaultResetDelay = 5 * time.Second

const (
	MsgSubmitFailed = "Failed to send message"
	MsgNetworkError = "Network error. Please check if the server is running."
)

var (
	ErrSubmitInProgress = errors.New("contactform: submission already in progress")
	ErrInvalidForm      = errors.New("contactform: form has validation errors")
	ErrClosed           = errors.New("contactform: controller closed")
	ErrRejected         = errors.New("contactform: submission rejected")
	ErrTransport        = errors.New("contactform: transport failure")
)

type Status int

const (
	StatusIdle Status = iota
	StatusSubmitting
	StatusSuccess
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusSubmitting:
		return "submitting"
	case StatusSuccess:
		return "success"
	case StatusError:
		return "error"
	}
	return fmt.Sprintf("status(%d)", int(s))
}

// Result is the server's answer to one submission
type Result struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Submitter sends one submission and waits for the answer.
// A non-nil error means no usable answer was received.
type Submitter interface {
	Submit(ctx context.Context, form Form) (Result, error)
}

// State is a copy of the controller state for rendering
type State struct {
	Form   Form
	Errors FieldErrors
	Status Status
	// Reason is set in StatusError
	Reason string
	// Notice is the server's success message in StatusSuccess
	Notice string
}

type stopper interface {
	Stop() bool
}

type scheduleFunc func(d time.Duration, f func()) stopper

func realSchedule(d time.Duration, f func()) stopper {
	return time.AfterFunc(d, f)
}

type Option func(*Controller)

// WithResetDelay overrides DefaultResetDelay
func WithResetDelay(d time.Duration) Option {
	return func(c *Controller) { c.resetDelay = d }
}

// WithOnChange registers a callback invoked with a fresh State after every transition.
// It is called without the controller lock held.
func WithOnChange(fn func(State)) Option {
	return func(c *Controller) { c.onChange = fn }
}

func withSchedule(s scheduleFunc) Option {
	return func(c *Controller) { c.schedule = s }
}

// Controller owns one contact form and its submission state machine.
// At most one submission is in flight at a time.
type Controller struct {
	mu         sync.Mutex
	submitter  Submitter
	resetDelay time.Duration
	schedule   scheduleFunc
	onChange   func(State)

	form   Form
	errors FieldErrors
	status Status
	reason string
	notice string

	revert     stopper
	generation uint64
	closed     bool
}

func NewController(submitter Submitter, opts ...Option) *Controller {
	c := &Controller{
		submitter:  submitter,
		resetDelay: DefaultResetDelay,
		schedule:   realSchedule,
		errors:     FieldErrors{},
		status:     StatusIdle,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Snapshot returns a copy of the current state
func (c *Controller) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// SetField updates one field and clears only that field's error
func (c *Controller) SetField(field Field, value string) {
	c.mu.Lock()
	switch field {
	case FieldName:
		c.form.Name = value
	case FieldEmail:
		c.form.Email = value
	case FieldMessage:
		c.form.Message = value
	default:
		c.mu.Unlock()
		return
	}
	delete(c.errors, field)
	st := c.snapshotLocked()
	c.mu.Unlock()

	c.notify(st)
}

// Submit validates the form and, if valid, sends it and waits for the outcome.
// It returns nil on Success, ErrInvalidForm without any request when validation
// fails, ErrSubmitInProgress while another submission is pending, and an error
// wrapping ErrRejected or ErrTransport when the attempt ends in StatusError.
func (c *Controller) Submit(ctx context.Context) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	if c.status == StatusSubmitting {
		c.mu.Unlock()
		return ErrSubmitInProgress
	}

	c.errors = Validate(c.form)
	if !c.errors.Valid() {
		st := c.snapshotLocked()
		c.mu.Unlock()
		c.notify(st)
		return ErrInvalidForm
	}

	c.stopRevertLocked()
	c.status = StatusSubmitting
	c.reason = ""
	c.notice = ""
	form := c.form
	st := c.snapshotLocked()
	c.mu.Unlock()
	c.notify(st)

	res, err := c.submitter.Submit(ctx, form)

	c.mu.Lock()
	var outcome error
	switch {
	case err != nil:
		c.status = StatusError
		c.reason = MsgNetworkError
		outcome = fmt.Errorf("%w: %v", ErrTransport, err)
	case !res.Success:
		c.status = StatusError
		c.reason = res.Message
		if c.reason == "" {
			c.reason = MsgSubmitFailed
		}
		outcome = fmt.Errorf("%w: %s", ErrRejected, c.reason)
	default:
		c.status = StatusSuccess
		c.notice = res.Message
		c.form = Form{}
		c.errors = FieldErrors{}
		if !c.closed {
			c.armRevertLocked()
		}
	}
	st = c.snapshotLocked()
	c.mu.Unlock()
	c.notify(st)

	return outcome
}

// Close stops the pending Success -> Idle revert. Later submissions fail with ErrClosed.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	c.stopRevertLocked()
}

func (c *Controller) armRevertLocked() {
	c.generation++
	gen := c.generation
	c.revert = c.schedule(c.resetDelay, func() { c.revertToIdle(gen) })
}

func (c *Controller) stopRevertLocked() {
	if c.revert != nil {
		c.revert.Stop()
		c.revert = nil
	}
	// a callback that already started must see itself as stale
	c.generation++
}

func (c *Controller) revertToIdle(gen uint64) {
	c.mu.Lock()
	if c.closed || gen != c.generation || c.status != StatusSuccess {
		c.mu.Unlock()
		return
	}
	c.status = StatusIdle
	c.notice = ""
	c.revert = nil
	st := c.snapshotLocked()
	c.mu.Unlock()

	c.notify(st)
}

func (c *Controller) snapshotLocked() State {
	errs := make(FieldErrors, len(c.errors))
	for k, v := range c.errors {
		errs[k] = v
	}
	return State{
		Form:   c.form,
		Errors: errs,
		Status: c.status,
		Reason: c.reason,
		Notice: c.notice,
	}
}

func (c *Controller) notify(st State) {
	if c.onChange != nil {
		c.onChange(st)
	}
}
