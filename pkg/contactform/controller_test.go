package contactform

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

type MockSubmitter struct {
	mock.Mock
}

func (m *MockSubmitter) Submit(ctx context.Context, form Form) (Result, error) {
	args := m.Called(ctx, form)
	return args.Get(0).(Result), args.Error(1)
}

type fakeTimer struct {
	delay   time.Duration
	fire    func()
	stopped bool
}

func (t *fakeTimer) Stop() bool {
	was := !t.stopped
	t.stopped = true
	return was
}

// fakeScheduler records scheduled callbacks instead of running them
type fakeScheduler struct {
	mu     sync.Mutex
	timers []*fakeTimer
}

func (s *fakeScheduler) schedule(d time.Duration, f func()) stopper {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := &fakeTimer{delay: d, fire: f}
	s.timers = append(s.timers, t)
	return t
}

func (s *fakeScheduler) last() *fakeTimer {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.timers) == 0 {
		return nil
	}
	return s.timers[len(s.timers)-1]
}

func fill(c *Controller, f Form) {
	c.SetField(FieldName, f.Name)
	c.SetField(FieldEmail, f.Email)
	c.SetField(FieldMessage, f.Message)
}

func TestControllerStartsIdle(t *testing.T) {
	c := NewController(new(MockSubmitter))
	st := c.Snapshot()
	assert.Equal(t, StatusIdle, st.Status)
	assert.Empty(t, st.Errors)
	assert.Equal(t, Form{}, st.Form)
}

func TestSubmitInvalidFormSendsNothing(t *testing.T) {
	sub := new(MockSubmitter)
	c := NewController(sub)
	fill(c, Form{Name: "Jo", Email: "jo@x.co", Message: "short"})

	err := c.Submit(context.Background())
	assert.ErrorIs(t, err, ErrInvalidForm)

	st := c.Snapshot()
	assert.Equal(t, StatusIdle, st.Status, "status is unchanged")
	assert.Equal(t, "Message must be at least 10 characters long", st.Errors[FieldMessage])
	assert.NotContains(t, st.Errors, FieldName)
	sub.AssertNotCalled(t, "Submit", mock.Anything, mock.Anything)
}

func TestSetFieldClearsOnlyThatFieldError(t *testing.T) {
	c := NewController(new(MockSubmitter))
	require.ErrorIs(t, c.Submit(context.Background()), ErrInvalidForm)
	require.Len(t, c.Snapshot().Errors, 3)

	c.SetField(FieldEmail, "j")

	errs := c.Snapshot().Errors
	assert.NotContains(t, errs, FieldEmail)
	assert.Contains(t, errs, FieldName)
	assert.Contains(t, errs, FieldMessage)
}

func TestSubmitSuccess(t *testing.T) {
	sched := &fakeScheduler{}
	sub := new(MockSubmitter)
	form := Form{Name: "Jo", Email: "jo@x.co", Message: "Hello there friend"}
	sub.On("Submit", mock.Anything, form).Return(Result{Success: true, Message: "Message sent successfully!"}, nil).Once()

	c := NewController(sub, withSchedule(sched.schedule))
	fill(c, form)

	require.NoError(t, c.Submit(context.Background()))

	st := c.Snapshot()
	assert.Equal(t, StatusSuccess, st.Status)
	assert.Equal(t, Form{}, st.Form, "fields are cleared")
	assert.Equal(t, "Message sent successfully!", st.Notice)
	sub.AssertExpectations(t)

	timer := sched.last()
	require.NotNil(t, timer)
	assert.Equal(t, DefaultResetDelay, timer.delay)

	// Not before the delay elapses
	assert.Equal(t, StatusSuccess, c.Snapshot().Status)

	timer.fire()
	st = c.Snapshot()
	assert.Equal(t, StatusIdle, st.Status)
	assert.Empty(t, st.Notice)
}

func TestSubmitRejectedKeepsFields(t *testing.T) {
	form := Form{Name: "Jo", Email: "jo@x.co", Message: "Hello there friend"}

	t.Run("server message is surfaced", func(t *testing.T) {
		sub := new(MockSubmitter)
		sub.On("Submit", mock.Anything, form).Return(Result{Success: false, Message: "Server configuration error"}, nil)
		c := NewController(sub)
		fill(c, form)

		err := c.Submit(context.Background())
		assert.ErrorIs(t, err, ErrRejected)

		st := c.Snapshot()
		assert.Equal(t, StatusError, st.Status)
		assert.Equal(t, "Server configuration error", st.Reason)
		assert.Equal(t, form, st.Form, "fields are retained for retry")
	})

	t.Run("missing server message falls back", func(t *testing.T) {
		sub := new(MockSubmitter)
		sub.On("Submit", mock.Anything, form).Return(Result{}, nil)
		c := NewController(sub)
		fill(c, form)

		assert.ErrorIs(t, c.Submit(context.Background()), ErrRejected)
		assert.Equal(t, MsgSubmitFailed, c.Snapshot().Reason)
	})

	t.Run("transport failure is a network error", func(t *testing.T) {
		sub := new(MockSubmitter)
		sub.On("Submit", mock.Anything, form).Return(Result{}, errors.New("connection refused"))
		c := NewController(sub)
		fill(c, form)

		assert.ErrorIs(t, c.Submit(context.Background()), ErrTransport)
		st := c.Snapshot()
		assert.Equal(t, StatusError, st.Status)
		assert.Equal(t, MsgNetworkError, st.Reason)
	})
}

func TestSubmitFromErrorRetries(t *testing.T) {
	form := Form{Name: "Jo", Email: "jo@x.co", Message: "Hello there friend"}
	sub := new(MockSubmitter)
	sub.On("Submit", mock.Anything, form).Return(Result{}, errors.New("boom")).Once()
	sub.On("Submit", mock.Anything, form).Return(Result{Success: true}, nil).Once()

	c := NewController(sub, withSchedule((&fakeScheduler{}).schedule))
	fill(c, form)

	assert.Error(t, c.Submit(context.Background()))
	assert.NoError(t, c.Submit(context.Background()))
	assert.Equal(t, StatusSuccess, c.Snapshot().Status)
	sub.AssertNumberOfCalls(t, "Submit", 2)
}

// blockingSubmitter parks until released so the Submitting state can be observed
type blockingSubmitter struct {
	calls   atomic.Int32
	started chan struct{}
	release chan struct{}
}

func (b *blockingSubmitter) Submit(ctx context.Context, form Form) (Result, error) {
	b.calls.Add(1)
	b.started <- struct{}{}
	<-b.release
	return Result{Success: true, Message: "ok"}, nil
}

func TestSubmitIsNotReentrant(t *testing.T) {
	sub := &blockingSubmitter{started: make(chan struct{}, 1), release: make(chan struct{})}
	c := NewController(sub, withSchedule((&fakeScheduler{}).schedule))
	fill(c, Form{Name: "Jo", Email: "jo@x.co", Message: "Hello there friend"})

	done := make(chan error, 1)
	go func() { done <- c.Submit(context.Background()) }()
	<-sub.started

	assert.Equal(t, StatusSubmitting, c.Snapshot().Status)
	assert.ErrorIs(t, c.Submit(context.Background()), ErrSubmitInProgress)

	close(sub.release)
	require.NoError(t, <-done)
	assert.Equal(t, int32(1), sub.calls.Load())
	assert.Equal(t, StatusSuccess, c.Snapshot().Status)
}

func TestResubmitDuringSuccessCancelsRevert(t *testing.T) {
	sched := &fakeScheduler{}
	sub := new(MockSubmitter)
	sub.On("Submit", mock.Anything, mock.Anything).Return(Result{Success: true}, nil)
	c := NewController(sub, withSchedule(sched.schedule))

	fill(c, Form{Name: "Jo", Email: "jo@x.co", Message: "Hello there friend"})
	require.NoError(t, c.Submit(context.Background()))
	first := sched.last()

	fill(c, Form{Name: "Al", Email: "al@x.co", Message: "Second message here"})
	require.NoError(t, c.Submit(context.Background()))
	second := sched.last()

	assert.True(t, first.stopped)
	// A stale callback that raced past Stop must not revert the new Success early
	first.fire()
	assert.Equal(t, StatusSuccess, c.Snapshot().Status)

	second.fire()
	assert.Equal(t, StatusIdle, c.Snapshot().Status)
}

func TestCloseStopsRevert(t *testing.T) {
	sched := &fakeScheduler{}
	sub := new(MockSubmitter)
	sub.On("Submit", mock.Anything, mock.Anything).Return(Result{Success: true}, nil)
	c := NewController(sub, withSchedule(sched.schedule))
	fill(c, Form{Name: "Jo", Email: "jo@x.co", Message: "Hello there friend"})
	require.NoError(t, c.Submit(context.Background()))

	c.Close()
	timer := sched.last()
	assert.True(t, timer.stopped)

	timer.fire()
	assert.Equal(t, StatusSuccess, c.Snapshot().Status, "no transition after teardown")
	assert.ErrorIs(t, c.Submit(context.Background()), ErrClosed)
}

func TestOnChangeObservesTransitions(t *testing.T) {
	var mu sync.Mutex
	var statuses []Status

	sub := new(MockSubmitter)
	sub.On("Submit", mock.Anything, mock.Anything).Return(Result{Success: true}, nil)
	c := NewController(sub,
		withSchedule((&fakeScheduler{}).schedule),
		WithOnChange(func(st State) {
			mu.Lock()
			defer mu.Unlock()
			statuses = append(statuses, st.Status)
		}),
	)
	fill(c, Form{Name: "Jo", Email: "jo@x.co", Message: "Hello there friend"})
	require.NoError(t, c.Submit(context.Background()))

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []Status{StatusIdle, StatusIdle, StatusIdle, StatusSubmitting, StatusSuccess}, statuses)
}

func TestRealTimerRevertsAndLeavesNoGoroutines(t *testing.T) {
	defer goleak.VerifyNone(t)

	sub := new(MockSubmitter)
	sub.On("Submit", mock.Anything, mock.Anything).Return(Result{Success: true}, nil)
	c := NewController(sub, WithResetDelay(20*time.Millisecond))
	defer c.Close()

	fill(c, Form{Name: "Jo", Email: "jo@x.co", Message: "Hello there friend"})
	require.NoError(t, c.Submit(context.Background()))
	assert.Equal(t, StatusSuccess, c.Snapshot().Status)

	assert.Eventually(t, func() bool {
		return c.Snapshot().Status == StatusIdle
	}, time.Second, 5*time.Millisecond)
}

func TestStatusString(t *testing.T) {
	assert.Equal(t, "idle", StatusIdle.String())
	assert.Equal(t, "submitting", StatusSubmitting.String())
	assert.Equal(t, "success", StatusSuccess.String())
	assert.Equal(t, "error", StatusError.String())
	assert.Equal(t, "status(9)", Status(9).String())
}
