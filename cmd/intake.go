package main

import (
	"encoding/json"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/lead-intake/internal/intake"
	"github.com/sells-group/lead-intake/internal/model"
	"github.com/sells-group/lead-intake/internal/validate"
)

var intakeCmd = &cobra.Command{
	Use:   "intake [submission.json]",
	Short: "Replay an intake submission through the two-step form",
	Long: `Drives one session through step 1 and step 2 with the rendered form
controls listed in the submission file, sending the configured webhooks.

The submission file looks like:
  {
    "client": {"userAgent": "...", "referrer": "...", "url": "..."},
    "step1": [{"name": "email", "type": "email", "value": "jane@example.com"}],
    "step2": [{"name": "medicalTreatment", "type": "checkbox", "value": "er", "checked": true}]
  }`,
	Args: cobra.MaximumNArgs(1),
	RunE: runIntake,
}

func init() {
	intakeCmd.Flags().Bool("dry-run", false, "validate and score without sending webhooks")
	rootCmd.AddCommand(intakeCmd)
}

type submission struct {
	Client struct {
		UserAgent string `json:"userAgent"`
		Referrer  string `json:"referrer"`
		URL       string `json:"url"`
	} `json:"client"`
	Step1 []model.FieldInput `json:"step1"`
	Step2 []model.FieldInput `json:"step2"`
}

type intakeOutput struct {
	SessionID    string            `json:"sessionId"`
	State        string            `json:"state"`
	Errors       validate.Errors   `json:"errors,omitempty"`
	Score        *model.CaseScore  `json:"score,omitempty"`
	Confirmation string            `json:"confirmation,omitempty"`
	Deliveries   map[string]string `json:"deliveries,omitempty"`
}

func runIntake(cmd *cobra.Command, args []string) error {
	if err := cfg.Validate("intake"); err != nil {
		return err
	}
	data, err := readInput(cmd, args)
	if err != nil {
		return err
	}
	var sub submission
	if err := json.Unmarshal(data, &sub); err != nil {
		return eris.Wrap(err, "decode submission")
	}

	schema, err := initSchema(cfg.Intake)
	if err != nil {
		return err
	}

	sc := intake.SessionConfig{
		Schema: schema,
		Policy: validate.Policy{InjuryMinLength: cfg.Intake.InjuryMinLength},
		Client: intake.ClientInfo{
			UserAgent: sub.Client.UserAgent,
			Referrer:  sub.Client.Referrer,
			URL:       sub.Client.URL,
		},
	}
	if dry, _ := cmd.Flags().GetBool("dry-run"); !dry {
		sc.Dispatcher = initDispatcher(cfg.Intake)
		timeout := time.Duration(cfg.Intake.HTTPTimeoutSecs) * time.Second
		sc.IPResolver = intake.NewIpifyResolver(cfg.Intake.IPLookupURL, timeout)
	}

	sess := intake.NewSession(sc)
	ctx := cmd.Context()

	out := intakeOutput{SessionID: sess.ID()}
	if sess.Next(ctx, sub.Step1) {
		if sess.Submit(ctx, sub.Step2) {
			out.Score = sess.Score()
			out.Confirmation = sess.Confirmation()
		}
	}
	sess.Wait()

	out.State = sess.State().String()
	if errs := sess.Errors(); len(errs) > 0 {
		out.Errors = errs
	}
	if o := sess.Outcome(); o != nil {
		out.Deliveries = map[string]string{
			"internal": deliveryStatus(o.Internal),
			"external": deliveryStatus(o.External),
		}
	}

	zap.L().Info("intake replay finished",
		zap.String("session_id", out.SessionID),
		zap.String("state", out.State),
	)
	return writeJSONOut(cmd.OutOrStdout(), out)
}

func deliveryStatus(a intake.Attempt) string {
	switch {
	case a.Skipped:
		return "skipped"
	case a.OK():
		return "delivered"
	default:
		return "failed"
	}
}
