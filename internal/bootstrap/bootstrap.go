package bootstrap

import (
	"context"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	contentinadapter "jornada/internal/modules/content/adapter/in"
	contentoutadapter "jornada/internal/modules/content/adapter/out"
	contentout "jornada/internal/modules/content/port/out"
	contentservice "jornada/internal/modules/content/service"
	contentusecase "jornada/internal/modules/content/usecase"
	dictionaryinadapter "jornada/internal/modules/dictionary/adapter/in"
	dictionaryoutadapter "jornada/internal/modules/dictionary/adapter/out"
	dictionaryservice "jornada/internal/modules/dictionary/service"
	dictionaryusecase "jornada/internal/modules/dictionary/usecase"
	journalinadapter "jornada/internal/modules/journal/adapter/in"
	journaloutadapter "jornada/internal/modules/journal/adapter/out"
	journalservice "jornada/internal/modules/journal/service"
	journalusecase "jornada/internal/modules/journal/usecase"
	planinadapter "jornada/internal/modules/plan/adapter/in"
	planoutadapter "jornada/internal/modules/plan/adapter/out"
	planservice "jornada/internal/modules/plan/service"
	planusecase "jornada/internal/modules/plan/usecase"
	progressinadapter "jornada/internal/modules/progress/adapter/in"
	progressoutadapter "jornada/internal/modules/progress/adapter/out"
	progressservice "jornada/internal/modules/progress/service"
	progressusecase "jornada/internal/modules/progress/usecase"
	"jornada/internal/platform/clock"
	"jornada/internal/platform/config"
	"jornada/internal/platform/id"
	"jornada/internal/platform/logging"
	uiapp "jornada/internal/ui/app"
)

type App struct {
	PlanCLI       planinadapter.CLIHandler
	ProgressCLI   progressinadapter.CLIHandler
	ContentCLI    contentinadapter.CLIHandler
	DictionaryCLI dictionaryinadapter.CLIHandler
	JournalCLI    journalinadapter.CLIHandler

	Logger *zap.Logger
	closer func() error
}

type Options struct {
	Verbose bool
	// Console mirrors warnings to a terminal stream. Nil for the TUI.
	Console io.Writer
}

func New(ctx context.Context, cfg config.Config, opts Options) (*App, error) {
	logger, err := logging.New(logging.Options{
		Path:    cfg.LogPath,
		Level:   cfg.LogLevel,
		Verbose: opts.Verbose,
		Console: opts.Console,
	})
	if err != nil {
		return nil, fmt.Errorf("new logger: %w", err)
	}
	clk := clock.SystemClock{}

	planSvc, err := planservice.NewPlanService(ctx, planoutadapter.NewEmbeddedPlanSource(), clk, cfg.Location)
	if err != nil {
		return nil, fmt.Errorf("new plan service: %w", err)
	}
	planUC := planusecase.NewInteractor(planSvc)

	progressUC := progressusecase.NewInteractor(progressservice.NewProgressService(
		planSvc.Plan(),
		progressoutadapter.NewFileProgressStore(cfg.ProgressPath),
		clk,
		id.UUID{},
		progressservice.Options{
			Location:      cfg.Location,
			SyncIndicator: cfg.SyncIndicator,
			Logger:        logger,
		},
	))

	generator, err := newGenerator(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	textCache, err := contentoutadapter.NewSQLiteTextCache(cfg.CacheDBPath)
	if err != nil {
		return nil, fmt.Errorf("new text cache: %w", err)
	}
	gateway := contentservice.NewGatewayService(generator, textCache, clk, logger)
	contentUC := contentusecase.NewInteractor(contentservice.NewReadingService(
		gateway,
		contentoutadapter.NewPlanScheduleAdapter(planUC),
		contentoutadapter.NewProgressKeeperAdapter(progressUC),
		logger,
	))
	contentCLI := contentinadapter.NewCLIHandler(contentUC)

	dictionarySvc, err := dictionaryservice.NewDictionaryService(ctx,
		dictionaryoutadapter.NewEmbeddedTermSource(),
		dictionaryoutadapter.NewContentLookupAdapter(contentUC),
		logger,
	)
	if err != nil {
		_ = textCache.Close()
		return nil, fmt.Errorf("new dictionary service: %w", err)
	}

	journalUC := journalusecase.NewInteractor(journalservice.NewJournalService(
		journaloutadapter.NewReflectionAdapter(progressUC, planUC),
		journaloutadapter.NewVaultJournalStore(),
		logger,
	), cfg.JournalDir)

	logger.Debug("bootstrap complete",
		zap.String("data_dir", cfg.DataDir),
		zap.Bool("generation", cfg.GenerationEnabled()),
		zap.String("model", cfg.Model),
	)

	return &App{
		PlanCLI:       planinadapter.NewCLIHandler(planUC),
		ProgressCLI:   progressinadapter.NewCLIHandler(progressUC, contentCLI),
		ContentCLI:    contentCLI,
		DictionaryCLI: dictionaryinadapter.NewCLIHandler(dictionaryusecase.NewInteractor(dictionarySvc)),
		JournalCLI:    journalinadapter.NewCLIHandler(journalUC),
		Logger:        logger,
		closer: func() error {
			_ = logger.Sync()
			return textCache.Close()
		},
	}, nil
}

// newGenerator picks the Gemini client when a key is configured. Without
// one every generated feature degrades to its offline fallback.
func newGenerator(ctx context.Context, cfg config.Config, logger *zap.Logger) (contentout.Generator, error) {
	if !cfg.GenerationEnabled() {
		logger.Info("no api key configured; generation disabled")
		return contentoutadapter.NewDisabledGenerator(), nil
	}
	generator, err := contentoutadapter.NewGenaiGenerator(ctx, contentoutadapter.GenaiOptions{
		APIKey:            cfg.APIKey,
		Model:             cfg.Model,
		Timeout:           cfg.RequestTimeout,
		RequestsPerMinute: cfg.RequestsPerMinute,
	})
	if err != nil {
		return nil, fmt.Errorf("new generator: %w", err)
	}
	return generator, nil
}

func (a *App) Close() error {
	if a == nil || a.closer == nil {
		return nil
	}
	return a.closer()
}

func RunTUI(app *App) error {
	model := uiapp.NewModel(app.PlanCLI, app.ProgressCLI, app.ContentCLI, app.DictionaryCLI)
	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err := program.Run()
	return err
}
