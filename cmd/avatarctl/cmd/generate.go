package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"avatarstudio/internal/studio"
)

var (
	actorID     string
	voiceID     string
	script      string
	scriptFile  string
	aspectRatio string
	resolution  string
	extraPairs  []string
	dryRun      bool
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Submit a script and wait for the rendered video",
	Long: `Submit a generation request and block until the job reaches a
terminal state or the polling budget runs out. The command exits non-zero
only for local errors; provider-side failures are reported in the output.`,
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().StringVar(&actorID, "actor", "", "Pipio actor id (required)")
	generateCmd.Flags().StringVar(&voiceID, "voice", "", "Pipio voice id (required)")
	generateCmd.Flags().StringVar(&script, "script", "", "script text")
	generateCmd.Flags().StringVar(&scriptFile, "script-file", "", "read the script from a file")
	generateCmd.Flags().StringVar(&aspectRatio, "aspect-ratio", "", "aspect ratio, e.g. 16:9")
	generateCmd.Flags().StringVar(&resolution, "resolution", "", "resolution, e.g. 1080p")
	generateCmd.Flags().StringArrayVar(&extraPairs, "extra", nil, "provider-specific option as key=value (repeatable)")
	generateCmd.Flags().BoolVar(&dryRun, "dry-run", false, "print the payload without calling the API")
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	if scriptFile != "" {
		data, err := os.ReadFile(scriptFile)
		if err != nil {
			return fmt.Errorf("read script file: %w", err)
		}
		script = string(data)
	}

	extras, err := parseExtras(extraPairs)
	if err != nil {
		return err
	}
	req := studio.GenerationRequest{
		ActorID:     actorID,
		VoiceID:     voiceID,
		Script:      script,
		AspectRatio: aspectRatio,
		Resolution:  resolution,
		Extras:      extras,
	}

	if err := studio.Validate(req, apiKey); err != nil {
		return err
	}

	if dryRun {
		payload, _ := json.MarshalIndent(req.Payload(), "", "  ")
		fmt.Println(string(payload))
		return nil
	}

	logger := newLogger()
	orchestrator := studio.NewOrchestrator(newClient(&logger), &logger)
	outcome, err := orchestrator.Generate(cmd.Context(), req, apiKey)
	if err != nil {
		return err
	}
	printOutcome(outcome)
	return nil
}

func parseExtras(pairs []string) (map[string]any, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	extras := make(map[string]any, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid --extra %q, want key=value", pair)
		}
		switch value {
		case "true":
			extras[key] = true
		case "false":
			extras[key] = false
		default:
			extras[key] = value
		}
	}
	return extras, nil
}

func printOutcome(outcome *studio.Outcome) {
	if outputFormat == "json" {
		out, _ := json.MarshalIndent(map[string]any{
			"job_id":       outcome.JobID,
			"status":       outcome.Status,
			"status_label": studio.StatusLabel(outcome.Status),
			"result_url":   outcome.ResultURL,
			"timed_out":    outcome.TimedOut,
			"diagnostic":   outcome.Diagnostic,
			"raw_payload":  outcome.Payload,
		}, "", "  ")
		fmt.Println(string(out))
		return
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Field", "Value")
	table.Append("Job ID", dashIfEmpty(outcome.JobID))
	table.Append("Status", studio.StatusLabel(outcome.Status))
	table.Append("Result URL", dashIfEmpty(outcome.ResultURL))
	if outcome.TimedOut {
		table.Append("Timed Out", "yes")
	}
	if outcome.Diagnostic != "" {
		table.Append("Diagnostic", outcome.Diagnostic)
	}
	table.Render()
}

func dashIfEmpty(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
