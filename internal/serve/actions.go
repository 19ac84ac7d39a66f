package serve

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/jverma/quiz-solver/models"
	"github.com/jverma/quiz-solver/pkg/db"
	"github.com/jverma/quiz-solver/pkg/fetcher"
	"github.com/jverma/quiz-solver/pkg/pipeline"
	"github.com/jverma/quiz-solver/pkg/renderer"
	"github.com/jverma/quiz-solver/pkg/submitter"
)

// ServeAction starts the HTTP front door with the full solver behind it.
func ServeAction(c *cli.Context) error {
	logLevel := slog.LevelInfo
	if c.Bool("quiet") {
		logLevel = slog.LevelError
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))
	slog.SetDefault(logger)

	config, err := models.LoadConfig(c.String("config"))
	if err != nil {
		return err
	}
	if c.IsSet("listen") {
		config.ListenAddr = c.String("listen")
	}
	if c.IsSet("secret") {
		config.ExpectedSecret = c.String("secret")
	}
	if config.ExpectedSecret == "" {
		logger.Warn("no expected secret configured, all tasks will be refused")
	}

	var tasks *db.DB
	if config.DBPath != "" {
		tasks, err = db.Open(config.DBPath)
		if err != nil {
			return fmt.Errorf("failed to open task log: %w", err)
		}
		defer tasks.Close()
	}

	browser := renderer.New(renderer.Config{
		RemoteURL: config.BrowserURL,
		Timeout:   config.RenderTimeout,
		Logger:    logger,
	})
	defer browser.Close()

	solver := &pipeline.Solver{
		Render: browser,
		Fetch:  fetcher.New(config.FetchTimeout),
		Submit: submitter.New(config.SubmitTimeout),
		Logger: logger,
	}

	handler := &Handler{
		ExpectedSecret: config.ExpectedSecret,
		Solver:         solver,
		Tasks:          tasks,
		Logger:         logger,
	}

	logger.Info("front door listening", "addr", config.ListenAddr)
	if err := http.ListenAndServe(config.ListenAddr, handler.Routes()); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}
