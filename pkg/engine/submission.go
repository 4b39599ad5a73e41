package engine

import (
	"github.com/felixgeelhaar/statekit"
	"go.uber.org/zap"
)

// SubmissionState is the lifecycle of the completion callback.
type SubmissionState string

const (
	SubmissionIdle       SubmissionState = stateIdle
	SubmissionSubmitting SubmissionState = stateSubmitting
	SubmissionSucceeded  SubmissionState = stateSucceeded
	SubmissionFailed     SubmissionState = stateFailed
)

// Machine state identifiers, kept untyped for the statekit builder.
const (
	stateIdle       = "idle"
	stateSubmitting = "submitting"
	stateSucceeded  = "succeeded"
	stateFailed     = "failed"
)

// Submission events.
const (
	eventSubmit  = "SUBMIT"
	eventResolve = "RESOLVE"
	eventReject  = "REJECT"
	eventReset   = "RESET"
)

type submissionContext struct{}

// submission wraps the statekit interpreter tracking
// idle -> submitting -> succeeded | failed. Failed and succeeded submissions
// may be retried; any state returns to idle on reset.
type submission struct {
	interp  *statekit.Interpreter[submissionContext]
	logger  *zap.Logger
	lastErr error
}

func newSubmission(logger *zap.Logger) (*submission, error) {
	machine, err := statekit.NewMachine[submissionContext]("stepform-submission").
		WithInitial(stateIdle).
		WithContext(submissionContext{}).
		State(stateIdle).
		On(eventSubmit).Target(stateSubmitting).Done().
		State(stateSubmitting).
		On(eventResolve).Target(stateSucceeded).
		On(eventReject).Target(stateFailed).
		On(eventReset).Target(stateIdle).Done().
		State(stateSucceeded).
		On(eventSubmit).Target(stateSubmitting).
		On(eventReset).Target(stateIdle).Done().
		State(stateFailed).
		On(eventSubmit).Target(stateSubmitting).
		On(eventReset).Target(stateIdle).Done().
		Build()
	if err != nil {
		return nil, err
	}

	interp := statekit.NewInterpreter(machine)
	interp.Start()
	return &submission{interp: interp, logger: logger}, nil
}

func (s *submission) current() SubmissionState {
	return SubmissionState(s.interp.State().Value)
}

func (s *submission) send(event string) {
	from := s.current()
	s.interp.Send(statekit.Event{Type: statekit.EventType(event)})
	if to := s.current(); to != from {
		s.logger.Debug("submission state changed",
			zap.String("from", string(from)),
			zap.String("to", string(to)),
		)
	}
}

func (s *submission) begin() {
	s.lastErr = nil
	s.send(eventSubmit)
}

func (s *submission) succeed() {
	s.send(eventResolve)
}

func (s *submission) fail(err error) {
	s.lastErr = err
	s.logger.Warn("completion callback failed", zap.Error(err))
	s.send(eventReject)
}

func (s *submission) reset() {
	s.lastErr = nil
	if s.current() == SubmissionIdle {
		return
	}
	s.send(eventReset)
}
