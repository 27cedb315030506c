package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mealpost/mealpost/pkg/config"
	"github.com/mealpost/mealpost/pkg/core"
	"github.com/mealpost/mealpost/pkg/logger"
)

var rootCmd = &cobra.Command{
	Use:   "mealpost",
	Short: "Mealpost generates and publishes a meal post for the current time of day",
	Long: `Mealpost picks a meal slot from the wall clock, generates a recipe and
social-media copy, safety-audits the copy, generates images and publishes
the result, reporting the estimated cost of the run.`,
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the content pipeline once",
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath, _ := cmd.Flags().GetString("config")
		offline, _ := cmd.Flags().GetBool("offline")

		cfg, err := config.LoadConfig(configPath)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		if offline {
			cfg.Offline = true
		}

		log := logger.New(os.Stderr, cfg.LogLevel)
		clients := BuildClients(cfg, &log)

		pipeline := core.NewPipeline(cfg, clients, nil, &log)
		state, err := pipeline.Execute(cmd.Context())
		if err != nil {
			return err
		}

		printSummary(state)
		return nil
	},
}

func init() {
	runCmd.Flags().String("config", "", "Directory containing config.yaml")
	runCmd.Flags().Bool("offline", false, "Run without external services, using local fallbacks")
	rootCmd.AddCommand(runCmd)
}

// Execute runs the CLI.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func printSummary(state *core.State) {
	fmt.Printf("Published: %v\n", state.PublishResult.Success)
	if state.PublishResult.PostID != "" {
		fmt.Printf("Post ID:   %s\n", state.PublishResult.PostID)
	}
	fmt.Printf("Cost:      %.4f\n", state.Ledger.Total())
	for vendor, cost := range state.Ledger.Breakdown() {
		fmt.Printf("  %-10s %.4f\n", vendor, cost)
	}
}
