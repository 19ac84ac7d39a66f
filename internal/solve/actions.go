// Package solve is the one-shot CLI entry: render, solve and optionally
// submit a single quiz page, printing the payload as JSON.
package solve

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/jverma/quiz-solver/models"
	"github.com/jverma/quiz-solver/pkg/fetcher"
	"github.com/jverma/quiz-solver/pkg/pipeline"
	"github.com/jverma/quiz-solver/pkg/renderer"
	"github.com/jverma/quiz-solver/pkg/submitter"
)

// SolveAction runs the pipeline once for the given URL.
func SolveAction(c *cli.Context) error {
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

	browser := renderer.New(renderer.Config{
		RemoteURL: config.BrowserURL,
		Timeout:   config.RenderTimeout,
		Logger:    logger,
	})
	defer browser.Close()

	solver := &pipeline.Solver{
		Render: browser,
		Fetch:  fetcher.New(config.FetchTimeout),
		Logger: logger,
	}
	if !c.Bool("no-submit") {
		solver.Submit = submitter.New(config.SubmitTimeout)
	}

	task := models.TaskRequest{
		Email:  c.String("email"),
		Secret: c.String("secret"),
		URL:    c.String("url"),
	}

	payload, result, err := solver.Solve(c.Context, task)
	if err != nil {
		return err
	}

	out := map[string]any{"payload": payload}
	if result != nil {
		out["result"] = result
	}
	encoded, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	fmt.Println(string(encoded))
	return nil
}
