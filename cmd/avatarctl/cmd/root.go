package cmd

import (
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"avatarstudio/internal/infra"
	"avatarstudio/internal/pipio"
)

var (
	apiKey       string
	generateURL  string
	statusURL    string
	pollInterval time.Duration
	pollTimeout  time.Duration
	outputFormat string
	verbose      bool
)

var rootCmd = &cobra.Command{
	Use:   "avatarctl",
	Short: "CLI for Pipio avatar video generation",
	Long: `avatarctl submits text scripts to the Pipio avatar-video API,
polls jobs until they finish, and prints the resulting video URL.`,
	SilenceUsage: true,
}

// Execute runs the command tree.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(func() {
		// .env is optional
		_ = godotenv.Load()
		if apiKey == "" {
			apiKey = os.Getenv("PIPIO_API_KEY")
		}
	})

	rootCmd.PersistentFlags().StringVar(&apiKey, "api-key", "", "Pipio API key (default from PIPIO_API_KEY)")
	rootCmd.PersistentFlags().StringVar(&generateURL, "generate-url", "", "generation endpoint override")
	rootCmd.PersistentFlags().StringVar(&statusURL, "status-url", "", "job status endpoint override ({job_id} placeholder)")
	rootCmd.PersistentFlags().DurationVar(&pollInterval, "poll-interval", 5*time.Second, "delay between status checks")
	rootCmd.PersistentFlags().DurationVar(&pollTimeout, "poll-timeout", 180*time.Second, "polling budget before giving up")
	rootCmd.PersistentFlags().StringVar(&outputFormat, "output", "table", "output format: table or json")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
}

func newLogger() infra.Logger {
	level := zerolog.WarnLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		Level(level).
		With().
		Timestamp().
		Logger()
}

func newClient(logger *infra.Logger) *pipio.Client {
	return pipio.NewClient(pipio.Options{
		GenerateURL:  generateURL,
		StatusURL:    statusURL,
		PollInterval: pollInterval,
		PollTimeout:  pollTimeout,
		Logger:       logger,
	})
}
