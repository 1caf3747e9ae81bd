package intake

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/lead-intake/internal/model"
)

// DefaultUserAgent identifies requests to the external automation endpoint.
const DefaultUserAgent = "AccidentLawyerFontana/1.0"

// Endpoints holds the webhook targets per step. An empty slot is skipped.
type Endpoints struct {
	Step1Internal string `yaml:"step1_internal" mapstructure:"step1_internal"`
	Step1External string `yaml:"step1_external" mapstructure:"step1_external"`
	Step2Internal string `yaml:"step2_internal" mapstructure:"step2_internal"`
	Step2External string `yaml:"step2_external" mapstructure:"step2_external"`
}

// forStep returns the internal and external URL for step.
func (e Endpoints) forStep(step int) (internal, external string) {
	if step == 1 {
		return e.Step1Internal, e.Step1External
	}
	return e.Step2Internal, e.Step2External
}

// Event is one dispatch request. Answers must be a snapshot the caller no
// longer mutates.
type Event struct {
	Step      int
	Answers   model.LeadAnswers
	Score     *model.CaseScore
	Meta      model.Metadata
	Timestamp time.Time
}

// Attempt records the result of one POST.
type Attempt struct {
	URL        string
	Skipped    bool
	StatusCode int
	Err        error
}

// OK reports whether the attempt was sent and got a 2xx response.
func (a Attempt) OK() bool {
	return !a.Skipped && a.Err == nil
}

// Outcome holds the independent results of the internal and external sends.
type Outcome struct {
	Internal Attempt
	External Attempt
}

// Dispatcher sends intake events to downstream receivers. Dispatch never
// returns an error: failures are reported per attempt in the Outcome.
type Dispatcher interface {
	Dispatch(ctx context.Context, ev Event) Outcome
}

// HTTPDispatcher posts JSON payloads to the configured endpoints.
type HTTPDispatcher struct {
	endpoints Endpoints
	client    *http.Client
	userAgent string
}

// DispatcherOption configures an HTTPDispatcher.
type DispatcherOption func(*HTTPDispatcher)

// WithHTTPClient replaces the default client.
func WithHTTPClient(c *http.Client) DispatcherOption {
	return func(d *HTTPDispatcher) { d.client = c }
}

// WithUserAgent sets the User-Agent sent to the external endpoint.
func WithUserAgent(ua string) DispatcherOption {
	return func(d *HTTPDispatcher) {
		if ua != "" {
			d.userAgent = ua
		}
	}
}

// NewHTTPDispatcher creates a dispatcher for the given endpoints. The default
// client has no timeout of its own.
func NewHTTPDispatcher(endpoints Endpoints, opts ...DispatcherOption) *HTTPDispatcher {
	d := &HTTPDispatcher{
		endpoints: endpoints,
		client:    &http.Client{},
		userAgent: DefaultUserAgent,
	}
	for _, o := range opts {
		o(d)
	}
	return d
}

// Dispatch sends the internal and external payloads for ev concurrently. The
// two sends are independent: neither waits on, cancels or retries the other.
func (d *HTTPDispatcher) Dispatch(ctx context.Context, ev Event) Outcome {
	internalURL, externalURL := d.endpoints.forStep(ev.Step)

	var out Outcome
	var g errgroup.Group

	g.Go(func() error {
		out.Internal = d.send(ctx, "internal", internalURL, BuildInternalPayload(ev), nil)
		return nil
	})
	g.Go(func() error {
		headers := map[string]string{
			"Accept":     "application/json",
			"User-Agent": d.userAgent,
		}
		out.External = d.send(ctx, "external", externalURL, BuildExternalPayload(ev), headers)
		return nil
	})
	_ = g.Wait()

	zap.L().Info("intake: webhooks dispatched",
		zap.Int("step", ev.Step),
		zap.String("session_id", ev.Meta.SessionID),
		zap.Bool("internal_ok", out.Internal.OK()),
		zap.Bool("external_ok", out.External.OK()),
	)
	return out
}

func (d *HTTPDispatcher) send(ctx context.Context, target, url string, payload any, headers map[string]string) Attempt {
	a := Attempt{URL: url}
	if strings.TrimSpace(url) == "" {
		a.Skipped = true
		return a
	}

	body, err := json.Marshal(payload)
	if err != nil {
		a.Err = eris.Wrapf(err, "intake: marshal %s payload", target)
		return a
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		a.Err = eris.Wrapf(err, "intake: create %s request", target)
		return a
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := d.client.Do(req)
	if err != nil {
		a.Err = eris.Wrapf(err, "intake: %s webhook request", target)
		zap.L().Warn("intake: webhook failed",
			zap.String("target", target),
			zap.String("url", url),
			zap.Error(a.Err),
		)
		return a
	}
	defer resp.Body.Close() //nolint:errcheck

	a.StatusCode = resp.StatusCode
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		a.Err = eris.Errorf("intake: %s webhook returned status %d", target, resp.StatusCode)
		zap.L().Warn("intake: webhook rejected",
			zap.String("target", target),
			zap.String("url", url),
			zap.Int("status", resp.StatusCode),
		)
	}
	return a
}

// BuildInternalPayload returns the full-fidelity body for ev.Step.
func BuildInternalPayload(ev Event) any {
	a := ev.Answers
	ts := ev.Timestamp.UTC().Format(time.RFC3339Nano)

	if ev.Step == 1 {
		return model.Step1Payload{
			Step:      1,
			Timestamp: ts,
			LeadData: model.StepLead{
				FirstName:        a.Get(model.FieldFirstName),
				Email:            a.Get(model.FieldEmail),
				Phone:            a.Get(model.FieldPhone),
				PreferredContact: preferredContact(a),
			},
			Metadata: ev.Meta,
		}
	}

	p := model.Step2Payload{
		Step:         2,
		Timestamp:    ts,
		CompleteLead: CompleteLeadFrom(a),
		Metadata:     ev.Meta,
	}
	if ev.Score != nil {
		p.CaseScore = ev.Score.Score
		p.Priority = ev.Score.Priority
	}
	return p
}

// BuildExternalPayload returns the flattened body for the automation endpoint.
// Email is always present so the receiver can join step-1 and step-2 events.
func BuildExternalPayload(ev Event) model.ExternalPayload {
	a := ev.Answers
	p := model.ExternalPayload{
		Step:             ev.Step,
		FirstName:        a.Get(model.FieldFirstName),
		Email:            a.Get(model.FieldEmail),
		Phone:            a.Get(model.FieldPhone),
		PreferredContact: preferredContact(a),
	}
	if ev.Step == 1 {
		return p
	}

	p.LastName = a.Get(model.FieldLastName)
	p.IncidentDate = a.Get(model.FieldIncidentDate)
	p.AccidentType = a.Get(model.FieldAccidentType)
	p.InjuryDescription = a.Get(model.FieldInjuryDescription)
	p.MedicalTreatment = a.List(model.FieldMedicalTreatment)
	p.HasInsurance = a.Get(model.FieldHasInsurance)
	p.PoliceReport = a.Get(model.FieldPoliceReport)
	p.FaultAssignment = a.Get(model.FieldFaultAssignment)
	p.AdditionalDetails = a.Get(model.FieldAdditionalDetails)
	p.SessionID = ev.Meta.SessionID
	if ev.Score != nil {
		score := ev.Score.Score
		p.CaseScore = &score
		p.Priority = ev.Score.Priority
	}
	return p
}

// CompleteLeadFrom flattens answers into the final-step lead shape.
func CompleteLeadFrom(a model.LeadAnswers) model.CompleteLead {
	treatment := a.List(model.FieldMedicalTreatment)
	if treatment == nil {
		treatment = []string{}
	}
	return model.CompleteLead{
		Email:             a.Get(model.FieldEmail),
		Phone:             a.Get(model.FieldPhone),
		PreferredContact:  a.Get(model.FieldPreferredContact),
		FullName:          strings.TrimSpace(a.Get(model.FieldFirstName) + " " + a.Get(model.FieldLastName)),
		FirstName:         a.Get(model.FieldFirstName),
		LastName:          a.Get(model.FieldLastName),
		IncidentDate:      a.Get(model.FieldIncidentDate),
		AccidentType:      a.Get(model.FieldAccidentType),
		InjuryDescription: a.Get(model.FieldInjuryDescription),
		MedicalTreatment:  treatment,
		HasInsurance:      a.Get(model.FieldHasInsurance),
		PoliceReport:      a.Get(model.FieldPoliceReport),
		FaultAssignment:   a.Get(model.FieldFaultAssignment),
		AdditionalDetails: a.Get(model.FieldAdditionalDetails),
	}
}

func preferredContact(a model.LeadAnswers) string {
	if v := a.Get(model.FieldPreferredContact); v != "" {
		return v
	}
	return "email"
}
