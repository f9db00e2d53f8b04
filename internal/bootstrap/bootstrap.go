package bootstrap

import (
	"context"
	"database/sql"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	authinadapter "wellness/internal/modules/auth/adapter/in"
	authoutadapter "wellness/internal/modules/auth/adapter/out"
	authout "wellness/internal/modules/auth/port/out"
	authservice "wellness/internal/modules/auth/service"
	authusecase "wellness/internal/modules/auth/usecase"
	breathinginadapter "wellness/internal/modules/breathing/adapter/in"
	breathingservice "wellness/internal/modules/breathing/service"
	breathingusecase "wellness/internal/modules/breathing/usecase"
	practiceinadapter "wellness/internal/modules/practice/adapter/in"
	practiceoutadapter "wellness/internal/modules/practice/adapter/out"
	practiceout "wellness/internal/modules/practice/port/out"
	practiceservice "wellness/internal/modules/practice/service"
	practiceusecase "wellness/internal/modules/practice/usecase"
	progressinadapter "wellness/internal/modules/progress/adapter/in"
	progressoutadapter "wellness/internal/modules/progress/adapter/out"
	progressservice "wellness/internal/modules/progress/service"
	progressusecase "wellness/internal/modules/progress/usecase"
	quizinadapter "wellness/internal/modules/quiz/adapter/in"
	quizoutadapter "wellness/internal/modules/quiz/adapter/out"
	quizout "wellness/internal/modules/quiz/port/out"
	quizservice "wellness/internal/modules/quiz/service"
	quizusecase "wellness/internal/modules/quiz/usecase"
	"wellness/internal/platform/clock"
	"wellness/internal/platform/config"
	"wellness/internal/platform/id"
	"wellness/internal/platform/kv"
	applog "wellness/internal/platform/log"
	"wellness/internal/platform/sqlitedb"
	"wellness/internal/platform/supabase"
	uiapp "wellness/internal/ui/app"
)

type App struct {
	AuthCLI      authinadapter.CLIHandler
	PracticeCLI  practiceinadapter.CLIHandler
	ProgressCLI  progressinadapter.CLIHandler
	BreathingCLI breathinginadapter.CLIHandler
	QuizCLI      quizinadapter.CLIHandler

	db *sql.DB
}

// backend groups the adapters that differ between the hosted and the
// self-hosted deployment.
type backend struct {
	provider authout.Provider
	sessions practiceout.RemoteSessionStore
	quiz     quizout.ResponseStore
	db       *sql.DB
}

func New(ctx context.Context, cfg config.Config) (*App, error) {
	clk := clock.SystemClock{}
	ids := id.UUID{}

	be, err := newBackend(ctx, cfg, clk, ids)
	if err != nil {
		return nil, err
	}

	authSvc := authservice.NewAuthService(clk, be.provider, authoutadapter.NewFileSessionStore(cfg.AuthSessionPath()), nil)
	authUC := authusecase.NewInteractor(authSvc)

	practiceUC := practiceusecase.NewInteractor(
		practiceservice.NewSessionService(
			clk,
			be.sessions,
			practiceoutadapter.NewLocalSessionStore(kv.NewFileStore(cfg.LocalStorePath())),
			practiceoutadapter.NewMarkdownJournal(),
		),
		practiceoutadapter.NewAuthIdentityAdapter(authUC),
	)

	progressUC := progressusecase.NewInteractor(progressservice.NewProgressService(
		clk,
		progressoutadapter.NewPracticeRecordSource(practiceUC),
	))

	quizUC := quizusecase.NewInteractor(
		quizservice.NewQuizService(be.quiz),
		quizoutadapter.NewAuthIdentityAdapter(authUC),
	)

	breathingUC := breathingusecase.NewInteractor(breathingservice.NewGuideService())

	bootLog := applog.WithComponent("bootstrap")
	bootLog.Debug().Str("backend", string(cfg.Backend)).Str("data_dir", cfg.DataDir).Msg("application wired")

	return &App{
		AuthCLI:      authinadapter.NewCLIHandler(authUC),
		PracticeCLI:  practiceinadapter.NewCLIHandler(practiceUC),
		ProgressCLI:  progressinadapter.NewCLIHandler(progressUC),
		BreathingCLI: breathinginadapter.NewCLIHandler(breathingUC),
		QuizCLI:      quizinadapter.NewCLIHandler(quizUC),
		db:           be.db,
	}, nil
}

func newBackend(ctx context.Context, cfg config.Config, clk clock.Clock, ids id.Generator) (backend, error) {
	switch cfg.Backend {
	case config.BackendSupabase:
		client := supabase.New(cfg.SupabaseURL, cfg.SupabaseAnonKey)
		return backend{
			provider: authoutadapter.NewSupabaseProvider(client, clk),
			sessions: practiceoutadapter.NewSupabaseSessionStore(client),
			quiz:     quizoutadapter.NewSupabaseResponseStore(client),
		}, nil
	case config.BackendSQLite:
		db, err := sqlitedb.Open(ctx, cfg.DBPath)
		if err != nil {
			return backend{}, fmt.Errorf("open sqlite backend: %w", err)
		}
		return backend{
			provider: authoutadapter.NewSQLiteProvider(db, clk, ids),
			sessions: practiceoutadapter.NewSQLiteSessionStore(db, ids),
			quiz:     quizoutadapter.NewSQLiteResponseStore(db, clk, ids),
			db:       db,
		}, nil
	default:
		return backend{}, fmt.Errorf("unsupported backend %q", string(cfg.Backend))
	}
}

// Close releases the database handle of the self-hosted backend.
func (a *App) Close() error {
	if a.db == nil {
		return nil
	}
	return a.db.Close()
}

func RunTUI(app *App) error {
	model := uiapp.NewModel(app.AuthCLI, app.PracticeCLI, app.ProgressCLI, app.QuizCLI)
	sub := app.AuthCLI.Subscribe(model.AuthListener())
	defer sub.Unsubscribe()

	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err := program.Run()
	return err
}
