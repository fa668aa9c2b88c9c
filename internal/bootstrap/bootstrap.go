package bootstrap

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/hashicorp/go-hclog"

	hookinadapter "focustrack/internal/modules/hook/adapter/in"
	hookoutadapter "focustrack/internal/modules/hook/adapter/out"
	hookservice "focustrack/internal/modules/hook/service"
	hookusecase "focustrack/internal/modules/hook/usecase"
	monitorinadapter "focustrack/internal/modules/monitor/adapter/in"
	monitoroutadapter "focustrack/internal/modules/monitor/adapter/out"
	monitorin "focustrack/internal/modules/monitor/port/in"
	monitorservice "focustrack/internal/modules/monitor/service"
	monitorusecase "focustrack/internal/modules/monitor/usecase"
	reportinadapter "focustrack/internal/modules/report/adapter/in"
	reportoutadapter "focustrack/internal/modules/report/adapter/out"
	reportservice "focustrack/internal/modules/report/service"
	reportusecase "focustrack/internal/modules/report/usecase"
	sessioninadapter "focustrack/internal/modules/session/adapter/in"
	sessionoutadapter "focustrack/internal/modules/session/adapter/out"
	sessionout "focustrack/internal/modules/session/port/out"
	sessionservice "focustrack/internal/modules/session/service"
	sessionusecase "focustrack/internal/modules/session/usecase"
	timerinadapter "focustrack/internal/modules/timer/adapter/in"
	timeroutadapter "focustrack/internal/modules/timer/adapter/out"
	timerservice "focustrack/internal/modules/timer/service"
	timerusecase "focustrack/internal/modules/timer/usecase"
	"focustrack/internal/platform/clock"
	"focustrack/internal/platform/config"
	"focustrack/internal/platform/id"
	"focustrack/internal/platform/idle"
	uiapp "focustrack/internal/ui/app"
)

const tickInterval = time.Second

type App struct {
	Config config.Config
	Logger hclog.Logger

	TimerTUI   timerinadapter.TUIHandler
	TimerCLI   timerinadapter.CLIHandler
	MonitorTUI monitorinadapter.TUIHandler
	Notices    *monitoroutadapter.ChannelNotifier
	SessionCLI sessioninadapter.CLIHandler
	SessionTUI sessioninadapter.TUIHandler
	ReportCLI  reportinadapter.CLIHandler
	ReportTUI  reportinadapter.TUIHandler
	HookCLI    hookinadapter.CLIHandler

	monitorUC monitorin.Usecase
	closers   []func()
}

// New wires every module around one timer engine. Close releases the engine,
// the monitor and the store.
func New(cfg config.Config, logger hclog.Logger) (*App, error) {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	clk := clock.SystemClock{}
	app := &App{Config: cfg, Logger: logger}

	store, watchNames, err := openStore(cfg, clk, app)
	if err != nil {
		return nil, err
	}

	hookUC := hookusecase.NewInteractor(hookservice.NewHookService(
		hookoutadapter.NewFileManifestStore(cfg.HooksPath()),
		hookoutadapter.NewGRPCHost(logger.Named("hook")),
		logger.Named("hook"),
	))

	sessionUC := sessionusecase.NewInteractor(
		sessionservice.NewSessionService(id.UUID{}, store),
		sessionoutadapter.NewBlobWatcher(cfg.DataDir, watchNames, logger.Named("session")),
		hookUC,
		clk,
		logger.Named("session"),
	)

	engine, err := timerservice.NewEngine(
		timerservice.EngineConfig{Minutes: cfg.Settings.DefaultMinutes, Categories: cfg.Settings.Categories},
		timeroutadapter.NewIntervalTickSource(tickInterval),
		timeroutadapter.NewSessionRecorderBridge(sessionUC),
		clk,
		logger.Named("timer"),
	)
	if err != nil {
		app.Close()
		return nil, fmt.Errorf("new timer engine: %w", err)
	}
	app.closers = append([]func(){engine.Close}, app.closers...)
	timerUC := timerusecase.NewInteractor(engine)

	notices := monitoroutadapter.NewChannelNotifier()
	monitor := monitorservice.NewMonitor(
		monitoroutadapter.NewTimerBridge(timerUC),
		notices,
		clock.SystemScheduler{},
		cfg.ReminderDelay(),
		logger.Named("monitor"),
	)
	app.closers = append([]func(){monitor.Close}, app.closers...)
	monitorUC := monitorusecase.NewInteractor(monitor, logger.Named("monitor"))

	reportUC := reportusecase.NewInteractor(reportservice.NewReportService(
		reportoutadapter.NewSessionSourceBridge(sessionUC),
		reportoutadapter.NewFileNoteStore(),
		clk,
		time.Local,
	))

	app.TimerTUI = timerinadapter.NewTUIHandler(timerUC)
	app.TimerCLI = timerinadapter.NewCLIHandler(timerUC)
	app.MonitorTUI = monitorinadapter.NewTUIHandler(monitorUC)
	app.Notices = notices
	app.SessionCLI = sessioninadapter.NewCLIHandler(sessionUC)
	app.SessionTUI = sessioninadapter.NewTUIHandler(sessionUC)
	app.ReportCLI = reportinadapter.NewCLIHandler(reportUC)
	app.ReportTUI = reportinadapter.NewTUIHandler(reportUC)
	app.HookCLI = hookinadapter.NewCLIHandler(hookUC)
	app.monitorUC = monitorUC
	return app, nil
}

func openStore(cfg config.Config, clk clock.Clock, app *App) (sessionout.BlobStore, []string, error) {
	switch cfg.Settings.Store {
	case config.StoreSQLite:
		store, err := sessionoutadapter.NewSQLiteBlobStore(cfg.DBPath, clk)
		if err != nil {
			return nil, nil, fmt.Errorf("open sqlite store: %w", err)
		}
		app.closers = append(app.closers, func() {
			if err := store.Close(); err != nil {
				app.Logger.Warn("close sqlite store", "error", err)
			}
		})
		base := filepath.Base(cfg.DBPath)
		return store, []string{base, base + "-wal"}, nil
	default:
		return sessionoutadapter.NewFileBlobStore(cfg.DataDir), []string{sessionoutadapter.BlobFileName(sessionservice.BlobKey)}, nil
	}
}

// Close stops the monitor, then the engine (waiting for in-flight saves),
// then the store.
func (a *App) Close() {
	for _, fn := range a.closers {
		fn()
	}
	a.closers = nil
}

// SignalSource maps SIGUSR1/SIGUSR2 to focus changes for headless runs.
func (a *App) SignalSource() *monitorinadapter.SignalSource {
	return monitorinadapter.NewSignalSource(a.monitorUC, a.Logger.Named("monitor"))
}

// IdleSource is nil unless idle detection is enabled in the settings.
func (a *App) IdleSource() *monitorinadapter.IdleSource {
	if !a.Config.Settings.Idle.Enabled {
		return nil
	}
	return monitorinadapter.NewIdleSource(
		a.monitorUC,
		idle.NewProvider(),
		a.Config.IdleThreshold(),
		a.Config.IdlePollInterval(),
		a.Logger.Named("monitor"),
	)
}

func RunTUI(ctx context.Context, app *App) error {
	model := uiapp.NewModel(ctx, uiapp.Ports{
		Timer:   app.TimerTUI,
		Focus:   app.MonitorTUI,
		Notices: app.Notices,
		Session: app.SessionTUI,
		Report:  app.ReportTUI,
	})
	defer model.Shutdown()

	sources, cancel := context.WithCancel(ctx)
	defer cancel()
	if src := app.IdleSource(); src != nil {
		go func() {
			if err := src.Run(sources); err != nil {
				app.Logger.Warn("idle detection stopped", "error", err)
			}
		}()
	}

	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithReportFocus(), tea.WithContext(ctx))
	_, err := program.Run()
	return err
}
