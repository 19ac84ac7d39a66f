// Package serve is the HTTP front door: it authenticates incoming quiz
// tasks and hands them to the solver pipeline.
package serve

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/jverma/quiz-solver/models"
	"github.com/jverma/quiz-solver/pkg/db"
)

// TaskSolver runs one task end to end. *pipeline.Solver satisfies it;
// tests inject fakes.
type TaskSolver interface {
	Solve(ctx context.Context, task models.TaskRequest) (models.ResultPayload, map[string]any, error)
}

// Handler exposes the front door routes. ExpectedSecret is injected
// configuration: an empty value means the server is misconfigured and
// every task is refused.
type Handler struct {
	ExpectedSecret string
	Solver         TaskSolver
	Tasks          *db.DB // nil disables the audit log
	Logger         *slog.Logger
}

// Routes builds the chi router.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Get("/", h.handleHome)
	r.Post("/quiz", h.handleQuiz)
	r.Get("/tasks", h.handleTasks)
	return r
}

func (h *Handler) handleHome(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("quiz-solver endpoint running\n"))
}

// handleQuiz validates the task request and runs the pipeline
// synchronously. The result field carries whatever the submission target
// answered.
func (h *Handler) handleQuiz(w http.ResponseWriter, r *http.Request) {
	var task models.TaskRequest
	if err := json.NewDecoder(r.Body).Decode(&task); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "Invalid JSON"})
		return
	}

	if h.ExpectedSecret == "" {
		writeJSON(w, http.StatusInternalServerError, map[string]any{"error": "Server misconfigured: expected secret not set"})
		return
	}
	if task.Secret != h.ExpectedSecret {
		writeJSON(w, http.StatusForbidden, map[string]any{"error": "Forbidden"})
		return
	}
	if task.Email == "" || task.URL == "" {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "Missing email or url"})
		return
	}

	payload, result, err := h.Solver.Solve(r.Context(), task)
	h.recordTask(task, payload, err)
	if err != nil {
		h.logger().Error("task failed", "url", task.URL, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]any{"error": err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"status": "done", "result": result})
}

func (h *Handler) handleTasks(w http.ResponseWriter, r *http.Request) {
	if h.Tasks == nil {
		writeJSON(w, http.StatusNotFound, map[string]any{"error": "task log disabled"})
		return
	}
	records, err := h.Tasks.ListTasks(50)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]any{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"tasks": records})
}

func (h *Handler) recordTask(task models.TaskRequest, payload models.ResultPayload, taskErr error) {
	if h.Tasks == nil {
		return
	}
	status := db.StatusDone
	errText := ""
	if taskErr != nil {
		status = db.StatusFailed
		errText = taskErr.Error()
	}
	if _, err := h.Tasks.RecordTask(task.Email, task.URL, payload.SubmitURL, payload.Answer, status, errText); err != nil {
		h.logger().Error("failed to record task", "url", task.URL, "error", err)
	}
}

func (h *Handler) logger() *slog.Logger {
	if h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
