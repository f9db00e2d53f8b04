package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"wellness/internal/bootstrap"
	breathingdto "wellness/internal/modules/breathing/dto"
	practicedomain "wellness/internal/modules/practice/domain"
	quizdto "wellness/internal/modules/quiz/dto"
	"wellness/internal/platform/config"
	applog "wellness/internal/platform/log"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".wellness"
	}
	return filepath.Join(home, ".wellness")
}

func newRootCmd() *cobra.Command {
	var dataDir string

	root := &cobra.Command{
		Use:           "wellness",
		Short:         "Practice timer, breathing guide and progress tracker",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&dataDir, "data", defaultDataDir(), "data directory (config, local store, logs)")

	root.AddCommand(newTUICmd(&dataDir))
	root.AddCommand(newAuthCmd(&dataDir))
	root.AddCommand(newSessionCmd(&dataDir))
	root.AddCommand(newStatsCmd(&dataDir))
	root.AddCommand(newQuizCmd(&dataDir))
	root.AddCommand(newBreatheCmd(&dataDir))
	return root
}

// loadApp wires the application and points the logger at the data dir log
// file. The returned func releases both.
func loadApp(dataDir string) (*bootstrap.App, func(), error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, nil, fmt.Errorf("create data dir: %w", err)
	}
	cfg, err := config.Load(dataDir)
	if err != nil {
		return nil, nil, err
	}
	logFile, err := os.OpenFile(cfg.LogPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	applog.Configure(applog.Config{Level: cfg.LogLevel, Output: logFile})

	app, err := bootstrap.New(context.Background(), cfg)
	if err != nil {
		_ = logFile.Close()
		return nil, nil, err
	}
	return app, func() {
		_ = app.Close()
		_ = logFile.Close()
	}, nil
}

func newTUICmd(dataDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Run the terminal UI",
		RunE: func(_ *cobra.Command, _ []string) error {
			app, done, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			defer done()
			return bootstrap.RunTUI(app)
		},
	}
}

func newAuthCmd(dataDir *string) *cobra.Command {
	auth := &cobra.Command{Use: "auth", Short: "Account commands"}

	var email, password string
	credentialFlags := func(cmd *cobra.Command) {
		cmd.Flags().StringVar(&email, "email", "", "account email")
		cmd.Flags().StringVar(&password, "password", "", "account password (min 6 characters)")
		_ = cmd.MarkFlagRequired("email")
		_ = cmd.MarkFlagRequired("password")
	}

	signup := &cobra.Command{
		Use:   "signup",
		Short: "Create an account",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, done, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			defer done()
			out, err := app.AuthCLI.SignUp(cmd.Context(), email, password)
			if err != nil {
				return err
			}
			if out.ConfirmationRequired {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "check %s to confirm your account, then sign in\n", email)
				return nil
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "signed up as %s\n", out.User.Email)
			return nil
		},
	}
	credentialFlags(signup)

	signin := &cobra.Command{
		Use:   "signin",
		Short: "Sign in to an existing account",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, done, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			defer done()
			user, err := app.AuthCLI.SignIn(cmd.Context(), email, password)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "signed in as %s\n", user.Email)
			return nil
		},
	}
	credentialFlags(signin)

	signout := &cobra.Command{
		Use:   "signout",
		Short: "Sign out and forget the stored session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, done, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			defer done()
			if err := app.AuthCLI.SignOut(cmd.Context()); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "signed out")
			return nil
		},
	}

	whoami := &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in user",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, done, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			defer done()
			user, err := app.AuthCLI.WhoAmI(cmd.Context())
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", user.ID, user.Email)
			return nil
		},
	}

	auth.AddCommand(signup, signin, signout, whoami)
	return auth
}

func newSessionCmd(dataDir *string) *cobra.Command {
	session := &cobra.Command{Use: "session", Short: "Practice session commands"}

	session.AddCommand(&cobra.Command{
		Use:   "save <seconds>",
		Short: "Record a finished practice session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			seconds, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("seconds must be an integer: %w", err)
			}
			app, done, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			defer done()
			out, err := app.PracticeCLI.Save(cmd.Context(), seconds)
			if err != nil {
				return err
			}
			where := "locally"
			if out.Remote {
				where = "to your account"
			}
			verdict := "keep practicing"
			if out.Success {
				verdict = "successful session"
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "saved %s %s (%s)\n", practicedomain.FormatClock(out.DurationSeconds), where, verdict)
			return nil
		},
	})

	session.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List recorded sessions, newest first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, done, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			defer done()
			records, err := app.PracticeCLI.List(cmd.Context())
			if err != nil {
				return err
			}
			if len(records) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no sessions")
				return nil
			}
			for _, r := range records {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%t\n", r.Date.Format(time.RFC3339), practicedomain.FormatClock(r.DurationSeconds), r.Success)
			}
			return nil
		},
	})

	var exportDir string
	export := &cobra.Command{
		Use:   "export",
		Short: "Write one markdown journal note per session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, done, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			defer done()
			out, err := app.PracticeCLI.Export(cmd.Context(), exportDir)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "exported %d notes to %s\n", len(out.Paths), exportDir)
			return nil
		},
	}
	export.Flags().StringVar(&exportDir, "dir", "journal", "target directory")
	session.AddCommand(export)

	return session
}

func newStatsCmd(dataDir *string) *cobra.Command {
	var asJSON bool
	stats := &cobra.Command{
		Use:   "stats",
		Short: "Show streak, weekly goal and recent sessions",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, done, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			defer done()
			if asJSON {
				summary, err := app.ProgressCLI.Summary(cmd.Context())
				if err != nil {
					return err
				}
				return writeJSON(cmd.OutOrStdout(), summary)
			}
			report, err := app.ProgressCLI.Report(cmd.Context())
			if err != nil {
				return err
			}
			_, _ = fmt.Fprint(cmd.OutOrStdout(), report)
			return nil
		},
	}
	stats.Flags().BoolVar(&asJSON, "json", false, "print the summary as JSON")
	return stats
}

func newQuizCmd(dataDir *string) *cobra.Command {
	quiz := &cobra.Command{Use: "quiz", Short: "Assessment questionnaire"}

	var in quizdto.SubmitInput
	submit := &cobra.Command{
		Use:   "submit",
		Short: "Submit questionnaire answers",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, done, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			defer done()
			out, err := app.QuizCLI.Submit(cmd.Context(), in)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "submitted %s\n", out.ID)
			return nil
		},
	}
	submit.Flags().StringVar(&in.AgeRange, "age", "", "18-25|26-35|36-45|46+")
	submit.Flags().StringVar(&in.RelationshipStatus, "relationship", "", "single|dating|married|complicated")
	submit.Flags().StringVar(&in.ProblemDuration, "duration", "", "less-3months|3-6months|6-12months|1year+")
	submit.Flags().StringVar(&in.Frequency, "frequency", "", "always|often|sometimes|rarely")
	submit.Flags().IntVar(&in.AnxietyLevel, "anxiety", 5, "anxiety level 1..10")
	submit.Flags().StringSliceVar(&in.TriedSolutions, "tried", nil, "kegel,breathing,startstop,squeeze,medication,therapy,supplements,none")
	submit.Flags().StringVar(&in.MainConcern, "concern", "", "main concern (optional)")
	quiz.AddCommand(submit)
	return quiz
}

func newBreatheCmd(dataDir *string) *cobra.Command {
	var cycles int
	var period time.Duration
	breathe := &cobra.Command{
		Use:   "breathe",
		Short: "Guide a breathing exercise in the terminal",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, done, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			defer done()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			out := cmd.OutOrStdout()
			err = app.BreathingCLI.Guide(ctx, cycles, period, func(step breathingdto.StepOutput) {
				_, _ = fmt.Fprintf(out, "%-7s %2d  %s\n", step.Phase, step.Countdown, step.Label)
			})
			if ctx.Err() != nil {
				return nil
			}
			return err
		},
	}
	breathe.Flags().IntVar(&cycles, "cycles", 3, "number of 16 step breathing cycles")
	breathe.Flags().DurationVar(&period, "period", time.Second, "tick period")
	return breathe
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
