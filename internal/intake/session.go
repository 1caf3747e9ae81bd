// Package intake drives the two-step lead intake form: collecting answers,
// validating each step, scoring the case and notifying downstream webhooks.
package intake

import (
	"context"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sells-group/lead-intake/internal/model"
	"github.com/sells-group/lead-intake/internal/scorer"
	"github.com/sells-group/lead-intake/internal/validate"
)

// State is the position of a session in the intake flow.
type State int

const (
	StateStep1 State = iota + 1
	StateStep2
	StateSubmitted
)

func (s State) String() string {
	switch s {
	case StateStep1:
		return "step1"
	case StateStep2:
		return "step2"
	case StateSubmitted:
		return "submitted"
	default:
		return "unknown"
	}
}

// Confirmation is shown once the final step has been submitted, whether or
// not the webhooks were delivered.
const Confirmation = "Thank You! Your case information has been submitted successfully. " +
	"Our legal team will contact you within 1 hour using your preferred contact method."

// StepOneIP is reported for step 1; the address is only resolved at final submit.
const StepOneIP = "client"

// ClientInfo describes the browser context attached to every webhook.
type ClientInfo struct {
	UserAgent string
	Referrer  string
	URL       string
}

// SessionConfig wires a Session's collaborators.
type SessionConfig struct {
	Schema     *model.Schema
	Policy     validate.Policy
	Dispatcher Dispatcher
	IPResolver IPResolver
	Client     ClientInfo
	// ID overrides the generated session id.
	ID string
	// Now overrides the clock.
	Now func() time.Time
}

// Session is one visitor's pass through the intake form. It is owned by a
// single caller and is not safe for concurrent use; detached step-1 dispatches
// only ever see an answers snapshot.
type Session struct {
	id         string
	state      State
	answers    model.LeadAnswers
	schema     *model.Schema
	validator  *validate.Validator
	dispatcher Dispatcher
	resolver   IPResolver
	client     ClientInfo
	now        func() time.Time

	score   *model.CaseScore
	outcome *Outcome
	pending sync.WaitGroup
}

// NewSession creates a session positioned at step 1.
func NewSession(cfg SessionConfig) *Session {
	schema := cfg.Schema
	if schema == nil {
		schema = model.DefaultSchema()
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	resolver := cfg.IPResolver
	if resolver == nil {
		resolver = StaticIP(UnknownIP)
	}
	id := cfg.ID
	if id == "" {
		id = NewSessionID(now())
	}
	return &Session{
		id:         id,
		state:      StateStep1,
		answers:    model.LeadAnswers{},
		schema:     schema,
		validator:  validate.New(schema, cfg.Policy),
		dispatcher: cfg.Dispatcher,
		resolver:   resolver,
		client:     cfg.Client,
		now:        now,
	}
}

// NewSessionID returns "session_" followed by nine random base-36 characters
// and the unix time in milliseconds.
func NewSessionID(now time.Time) string {
	token := strings.ReplaceAll(uuid.NewString(), "-", "")[:9]
	return "session_" + token + strconv.FormatInt(now.UnixMilli(), 10)
}

// ID returns the session id sent with every webhook.
func (s *Session) ID() string { return s.id }

// State returns the current position in the flow.
func (s *Session) State() State { return s.state }

// Step returns 1 or 2 while the form is open and 0 once submitted.
func (s *Session) Step() int {
	switch s.state {
	case StateStep1:
		return 1
	case StateStep2:
		return 2
	default:
		return 0
	}
}

// Answers returns a copy of the accumulated answers.
func (s *Session) Answers() model.LeadAnswers { return s.answers.Clone() }

// Errors returns the field messages from the last validation.
func (s *Session) Errors() validate.Errors { return s.validator.Errors() }

// Score returns the case score computed at submit, or nil before.
func (s *Session) Score() *model.CaseScore { return s.score }

// Outcome returns the final-step dispatch outcome, or nil before submit or
// when no dispatcher is configured.
func (s *Session) Outcome() *Outcome { return s.outcome }

// Confirmation returns the thank-you text once submitted, else "".
func (s *Session) Confirmation() string {
	if s.state != StateSubmitted {
		return ""
	}
	return Confirmation
}

// Wait blocks until every detached step-1 dispatch has finished.
func (s *Session) Wait() { s.pending.Wait() }

// Next validates step 1 against inputs and, on success, merges them, fires
// the step-1 webhooks without waiting for them and moves to step 2. It
// returns false and leaves the session untouched when validation fails or
// the session is not at step 1.
func (s *Session) Next(ctx context.Context, inputs []model.FieldInput) bool {
	if s.state != StateStep1 {
		return false
	}
	candidate, ok := s.collectAndValidate(1, inputs)
	if !ok {
		return false
	}
	s.answers = candidate

	if s.dispatcher != nil {
		ev := s.event(1, StepOneIP)
		s.pending.Add(1)
		go func() {
			defer s.pending.Done()
			s.dispatcher.Dispatch(context.WithoutCancel(ctx), ev)
		}()
	}

	s.state = StateStep2
	return true
}

// Back returns from step 2 to step 1 keeping every answer.
func (s *Session) Back() bool {
	if s.state != StateStep2 {
		return false
	}
	s.state = StateStep1
	return true
}

// Submit validates step 2 and, on success, merges the inputs, scores the
// case and awaits the final dispatch before moving to the submitted state.
// Delivery failures never block the transition. It returns false when
// validation fails or the session is not at step 2.
func (s *Session) Submit(ctx context.Context, inputs []model.FieldInput) bool {
	if s.state != StateStep2 {
		return false
	}
	candidate, ok := s.collectAndValidate(2, inputs)
	if !ok {
		return false
	}
	s.answers = candidate

	score := scorer.CalculateCaseScore(s.answers)
	s.score = &score

	if s.dispatcher != nil {
		ev := s.event(2, s.resolver.Resolve(ctx))
		ev.Score = &score
		out := s.dispatcher.Dispatch(ctx, ev)
		s.outcome = &out
		if !out.Internal.OK() && !out.Internal.Skipped {
			zap.L().Warn("intake: final webhook not delivered",
				zap.String("session_id", s.id),
				zap.Error(out.Internal.Err),
			)
		}
	}

	s.state = StateSubmitted
	zap.L().Info("intake: lead submitted",
		zap.String("session_id", s.id),
		zap.Int("case_score", score.Score),
		zap.String("priority", string(score.Priority)),
	)
	return true
}

func (s *Session) collectAndValidate(step int, inputs []model.FieldInput) (model.LeadAnswers, bool) {
	candidate := s.answers.Clone()
	Collect(candidate, s.schema, inputs)
	if !s.validator.ValidateStep(step, candidate) {
		zap.L().Debug("intake: step validation failed",
			zap.String("session_id", s.id),
			zap.Int("step", step),
			zap.Int("errors", len(s.validator.Errors())),
		)
		return nil, false
	}
	return candidate, true
}

func (s *Session) event(step int, ip string) Event {
	return Event{
		Step:      step,
		Answers:   s.answers.Clone(),
		Timestamp: s.now(),
		Meta: model.Metadata{
			SessionID: s.id,
			IPAddress: ip,
			UserAgent: s.client.UserAgent,
			Referrer:  s.client.Referrer,
			URL:       s.client.URL,
		},
	}
}
