package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"avatarstudio/internal/pipio"
	"avatarstudio/internal/studio"
)

var waitForJob bool

var statusCmd = &cobra.Command{
	Use:   "status <job-id>",
	Short: "Check or wait on an existing generation job",
	Args:  cobra.ExactArgs(1),
	RunE:  runStatus,
}

func init() {
	statusCmd.Flags().BoolVar(&waitForJob, "wait", false, "poll until the job reaches a terminal state")
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	if apiKey == "" {
		return fmt.Errorf("api key is required (--api-key or PIPIO_API_KEY)")
	}
	jobID := args[0]
	logger := newLogger()
	client := newClient(&logger)

	var (
		payload  pipio.Document
		status   string
		timedOut bool
	)
	if waitForJob {
		result := client.PollJob(cmd.Context(), apiKey, jobID)
		if result.Err != nil {
			return result.Err
		}
		payload, status, timedOut = result.Payload, result.Status, result.TimedOut
	} else {
		call, err := client.JobStatus(cmd.Context(), apiKey, jobID)
		if err != nil {
			return err
		}
		if call.StatusCode != 200 {
			return fmt.Errorf("status endpoint returned HTTP %d", call.StatusCode)
		}
		payload, status = call.Body, pipio.ExtractStatus(call.Body)
	}

	if outputFormat == "json" {
		out, _ := json.MarshalIndent(map[string]any{
			"job_id":      jobID,
			"status":      status,
			"timed_out":   timedOut,
			"result_url":  pipio.ExtractResultURL(payload),
			"raw_payload": payload,
		}, "", "  ")
		fmt.Println(string(out))
		return nil
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Field", "Value")
	table.Append("Job ID", jobID)
	table.Append("Status", studio.StatusLabel(status))
	table.Append("Result URL", dashIfEmpty(pipio.ExtractResultURL(payload)))
	if timedOut {
		table.Append("Timed Out", "yes")
	}
	table.Render()
	return nil
}
