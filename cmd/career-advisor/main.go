package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/upb/career-advisor/app"
	"github.com/upb/career-advisor/config"
	"github.com/upb/career-advisor/internal/observability"
	"go.uber.org/zap"
)

var version = "dev"

const defaultProfile = "I am a software developer with 3 years of experience in Python and web development. " +
	"I'm interested in transitioning to AI/ML engineering and want to understand what skills I need " +
	"and how to build my resume for this career path."

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var profile string

	rootCmd := &cobra.Command{
		Use:   "career-advisor",
		Short: "Run the Career Advisor AI crew pipeline",
		Long: `Career Advisor runs a team of LLM agents over a user profile and prints a
career plan: target roles, a skills gap analysis, resume guidance and a
learning path.

Requests go through OpenRouter first, trying every configured model and
base URL, and fall back to a direct OpenAI-compatible client.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAdvise(cmd.Context(), cmd.OutOrStdout(), profile)
		},
	}

	rootCmd.Flags().StringVar(&profile, "profile", defaultProfile,
		"User profile description including background, experience, interests, and career goals.")

	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newPlanCmd())

	return rootCmd
}

// loadDependencies reads configuration and wires the application.
func loadDependencies(ctx context.Context) (*app.Dependencies, error) {
	cfg, err := config.New(ctx)
	if err != nil {
		return nil, err
	}

	logger, err := observability.NewLogger(cfg.Observability.LogLevel, cfg.Observability.LogFormat)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	deps, err := app.NewDependencies(ctx, cfg, logger)
	if err != nil {
		_ = logger.Sync()
		return nil, err
	}
	return deps, nil
}

func runAdvise(ctx context.Context, out io.Writer, profile string) error {
	deps, err := loadDependencies(ctx)
	if err != nil {
		return err
	}
	defer deps.Close(ctx)

	deps.Logger.Info("starting career advisor pipeline for user profile",
		zap.String("environment", deps.Config.Environment))

	result, err := deps.Advisor.Run(ctx, profile, deps.ProviderConfig())
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(out, result)
	return err
}
