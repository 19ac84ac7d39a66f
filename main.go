package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/jverma/quiz-solver/internal/serve"
	"github.com/jverma/quiz-solver/internal/solve"
	"github.com/jverma/quiz-solver/pkg/help"
)

func main() {
	app := &cli.App{
		Name:  "quiz-solver",
		Usage: "solve quiz pages: find the dataset, compute the answer, submit it",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "config",
				Usage: "path to YAML config file",
				Value: "config.yaml",
			},
			&cli.BoolFlag{
				Name:  "quiet",
				Usage: "only log errors",
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "run the HTTP front door",
				Action: serve.ServeAction,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "listen",
						Usage: "listen address (overrides config)",
					},
					&cli.StringFlag{
						Name:  "secret",
						Usage: "expected task secret (overrides config)",
					},
				},
			},
			{
				Name:   "solve",
				Usage:  "solve a single quiz page and print the payload",
				Action: solve.SolveAction,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "url",
						Usage:    "quiz page URL",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "email",
						Usage:    "email sent with the payload",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "secret",
						Usage: "secret sent with the payload",
					},
					&cli.BoolFlag{
						Name:  "no-submit",
						Usage: "skip the final POST, print the payload only",
					},
				},
			},
			{
				Name:  "quickstart",
				Usage: "print usage examples and pipeline overview",
				Action: func(c *cli.Context) error {
					fmt.Print(help.QuickstartYAML)
					return nil
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
