package bootstrap

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	logsinadapter "evwatch/internal/modules/logs/adapter/in"
	logsin "evwatch/internal/modules/logs/port/in"
	logsservice "evwatch/internal/modules/logs/service"
	logsusecase "evwatch/internal/modules/logs/usecase"
	monitorinadapter "evwatch/internal/modules/monitor/adapter/in"
	monitoroutadapter "evwatch/internal/modules/monitor/adapter/out"
	monitorservice "evwatch/internal/modules/monitor/service"
	monitorusecase "evwatch/internal/modules/monitor/usecase"
	"evwatch/internal/platform/clock"
	"evwatch/internal/platform/config"
	"evwatch/internal/platform/id"
	"evwatch/internal/platform/logging"
	uiapp "evwatch/internal/ui/app"
)

type App struct {
	Config config.Config
	Logger *zap.Logger

	MonitorCLI monitorinadapter.CLIHandler
	MonitorTUI monitorinadapter.TUIHandler
	LogsCLI    logsinadapter.CLIHandler
	LogsUC     logsin.Usecase
}

func New(cfg config.Config) (*App, error) {
	logger, err := logging.New(cfg.LogPath)
	if err != nil {
		return nil, fmt.Errorf("new logger: %w", err)
	}

	clk := clock.SystemClock{}
	tagger := id.RandomChargerTag{}

	// Both modules share the one HTTP gateway to the detection backend.
	gateway := monitoroutadapter.NewHTTPAnalysisGateway(cfg.BaseURL, cfg.RequestTimeout, logger)
	monitorSvc := monitorservice.NewMonitorService(tagger, gateway)
	monitorUC := monitorusecase.NewInteractor(monitorSvc)

	logsSvc := logsservice.NewLogsService(clk, gateway, monitorSvc)
	logsUC := logsusecase.NewInteractor(logsSvc)

	return &App{
		Config:     cfg,
		Logger:     logger,
		MonitorCLI: monitorinadapter.NewCLIHandler(monitorUC),
		MonitorTUI: monitorinadapter.NewTUIHandler(monitorUC),
		LogsCLI:    logsinadapter.NewCLIHandler(logsUC),
		LogsUC:     logsUC,
	}, nil
}

func RunTUI(app *App) error {
	defer func() { _ = app.Logger.Sync() }()
	model := uiapp.NewModel(app.Config.BaseURL, app.MonitorTUI, app.LogsUC)
	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err := program.Run()
	return err
}
