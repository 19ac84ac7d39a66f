// Package pipeline sequences the page-to-answer extraction: render the
// quiz page, find the submission target, locate and normalize the dataset,
// classify the instruction, compute the answer, submit the payload.
//
// Only two things are fatal to a task: a page with no discoverable
// submission target, and a failed final POST. Everything else degrades
// into a sentinel or descriptive answer inside an otherwise valid payload.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jverma/quiz-solver/models"
	"github.com/jverma/quiz-solver/pkg/classify"
	"github.com/jverma/quiz-solver/pkg/compute"
	"github.com/jverma/quiz-solver/pkg/scan"
	"github.com/jverma/quiz-solver/pkg/tabular"
)

// Release frees a task-scoped rendering resource. Always called, error or
// not, once a renderer hands out a snapshot.
type Release func()

// Renderer produces a fully rendered snapshot of a page, JavaScript
// executed and network settled, plus a live origin evaluator.
type Renderer interface {
	Render(ctx context.Context, pageURL string) (*scan.Snapshot, Release, error)
}

// Submitter delivers the final payload to the submission target and
// returns the target's parsed response.
type Submitter interface {
	Submit(ctx context.Context, submitURL string, payload models.ResultPayload) (map[string]any, error)
}

// Solver wires the collaborators around the core pipeline. A nil Submit
// skips the final POST and returns the payload only.
type Solver struct {
	Render Renderer
	Fetch  scan.ResourceFetcher
	Submit Submitter
	Logger *slog.Logger
}

// Solve runs one task end to end. The returned payload always carries the
// discovered submit_url; the response is whatever the submission target
// answered (nil when submission was skipped).
func (s *Solver) Solve(ctx context.Context, task models.TaskRequest) (models.ResultPayload, map[string]any, error) {
	log := s.Logger
	if log == nil {
		log = slog.Default()
	}

	var payload models.ResultPayload

	snap, release, err := s.Render.Render(ctx, task.URL)
	if err != nil {
		return payload, nil, fmt.Errorf("failed to render %s: %w", task.URL, err)
	}
	defer release()

	submitURL, err := scan.FindSubmitURL(snap)
	if err != nil {
		return payload, nil, err
	}
	log.Info("submit target resolved", "url", task.URL, "submit_url", submitURL)

	payload = models.ResultPayload{
		Email:     task.Email,
		Secret:    task.Secret,
		URL:       task.URL,
		SubmitURL: submitURL,
	}

	locator := &scan.Locator{Fetch: s.Fetch, Logger: log}
	ds, err := locator.Locate(ctx, snap)
	switch {
	case errors.Is(err, scan.ErrNoDataset):
		log.Warn("no dataset found", "url", task.URL)
		payload.Answer = models.AnswerNoDataset
	case err != nil:
		return payload, nil, err
	case ds.HasAnswer:
		// A literal answer embedded on the page skips classification
		// and computation entirely.
		log.Info("literal answer found on page", "url", task.URL)
		payload.Answer = ds.Answer
	default:
		frame := tabular.Normalize(ds.Table)
		instr := s.classifyPage(snap, log)
		res := compute.Answer(frame, instr)
		payload.Answer = res.Answer
		payload.Attachment = res.Attachment
		log.Info("answer computed",
			"url", task.URL, "op", string(instr.Op), "source", ds.SourceURL)
	}

	if s.Submit == nil {
		return payload, nil, nil
	}

	resp, err := s.Submit.Submit(ctx, submitURL, payload)
	if err != nil {
		return payload, nil, fmt.Errorf("failed to submit answer to %s: %w", submitURL, err)
	}
	return payload, resp, nil
}

// classifyPage runs the instruction rules over the readable article text,
// falling back to the full page text when nothing matches there. Non-English
// pages are reported since the rules only know English phrasings.
func (s *Solver) classifyPage(snap *scan.Snapshot, log *slog.Logger) classify.Instruction {
	article := snap.ArticleText()
	if !classify.IsEnglish(article) {
		log.Warn("page text does not read as English, classification is best-effort",
			"url", snap.BaseURL)
	}
	instr := classify.Classify(article)
	if instr.Op == classify.OpUnknown {
		instr = classify.Classify(snap.Text())
	}
	return instr
}
