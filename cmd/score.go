package main

import (
	"encoding/json"
	"io"
	"os"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/lead-intake/internal/model"
	"github.com/sells-group/lead-intake/internal/scorer"
)

var scoreCmd = &cobra.Command{
	Use:   "score [answers.json]",
	Short: "Score a case from its intake answers",
	Long: `Reads intake answers as a JSON object keyed by field name and prints the
case score, priority tier and the rules that fired. Multi-select answers are
JSON arrays.

Examples:
  # Score answers from a file
  score answers.json

  # Score answers from stdin
  cat answers.json | score -`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScore,
}

var qualifyCmd = &cobra.Command{
	Use:   "qualify [answers.json]",
	Short: "Score and qualify a case from its intake answers",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runQualify,
}

func init() {
	qualifyCmd.Flags().String("now", "", "reference time for incident recency (RFC 3339, default: current time)")
	rootCmd.AddCommand(scoreCmd, qualifyCmd)
}

type scoreOutput struct {
	model.CaseScore
	Rules []scorer.RuleHit `json:"rules"`
}

func runScore(cmd *cobra.Command, args []string) error {
	answers, err := readAnswers(cmd, args)
	if err != nil {
		return err
	}
	out := scoreOutput{
		CaseScore: scorer.CalculateCaseScore(answers),
		Rules:     scorer.Breakdown(answers),
	}
	if out.Rules == nil {
		out.Rules = []scorer.RuleHit{}
	}
	return writeJSONOut(cmd.OutOrStdout(), out)
}

type qualifyOutput struct {
	model.CaseScore
	Qualification model.Qualification `json:"qualification"`
}

func runQualify(cmd *cobra.Command, args []string) error {
	answers, err := readAnswers(cmd, args)
	if err != nil {
		return err
	}

	now := time.Now()
	if raw, _ := cmd.Flags().GetString("now"); raw != "" {
		now, err = time.Parse(time.RFC3339, raw)
		if err != nil {
			return eris.Wrap(err, "parse --now")
		}
	}

	cs := scorer.CalculateCaseScore(answers)
	q := scorer.Qualify(scorer.QualifyInput{
		Score:        cs.Score,
		Priority:     cs.Priority,
		AccidentType: answers.Get(model.FieldAccidentType),
		IncidentDate: answers.Get(model.FieldIncidentDate),
	}, now)
	return writeJSONOut(cmd.OutOrStdout(), qualifyOutput{CaseScore: cs, Qualification: q})
}

// readAnswers decodes LeadAnswers from args[0], or stdin when absent or "-".
func readAnswers(cmd *cobra.Command, args []string) (model.LeadAnswers, error) {
	data, err := readInput(cmd, args)
	if err != nil {
		return nil, err
	}
	var answers model.LeadAnswers
	if err := json.Unmarshal(data, &answers); err != nil {
		return nil, eris.Wrap(err, "decode answers")
	}
	if answers == nil {
		answers = model.LeadAnswers{}
	}
	return answers, nil
}

func readInput(cmd *cobra.Command, args []string) ([]byte, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		return data, eris.Wrap(err, "read stdin")
	}
	data, err := os.ReadFile(args[0])
	return data, eris.Wrapf(err, "read %s", args[0])
}

func writeJSONOut(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return eris.Wrap(enc.Encode(v), "write output")
}
