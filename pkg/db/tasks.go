package db

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// TaskRecord is one audit log entry: what was asked, where the answer
// went, and how it ended.
type TaskRecord struct {
	TaskID    string
	Email     string
	URL       string
	SubmitURL string
	Answer    string
	Status    string
	Error     string
	CreatedAt time.Time
}

const (
	StatusDone   = "done"
	StatusFailed = "failed"
)

// RecordTask inserts an audit entry and returns its id. The answer is
// stored as JSON so numeric and string answers round-trip alike.
func (db *DB) RecordTask(email, url, submitURL string, answer any, status, taskErr string) (string, error) {
	answerJSON, err := json.Marshal(answer)
	if err != nil {
		return "", fmt.Errorf("failed to encode answer: %w", err)
	}

	taskID := uuid.NewString()
	_, err = db.Exec(`
		INSERT INTO tasks (task_id, email, url, submit_url, answer, status, error)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, taskID, email, url, submitURL, string(answerJSON), status, taskErr)
	if err != nil {
		return "", fmt.Errorf("failed to insert task: %w", err)
	}
	return taskID, nil
}

// ListTasks returns the most recent entries, newest first.
func (db *DB) ListTasks(limit int) ([]TaskRecord, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := db.Query(`
		SELECT task_id, email, url, submit_url, answer, status, error, created_at
		FROM tasks ORDER BY created_at DESC, task_id LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query tasks: %w", err)
	}
	defer rows.Close()

	var records []TaskRecord
	for rows.Next() {
		var r TaskRecord
		if err := rows.Scan(&r.TaskID, &r.Email, &r.URL, &r.SubmitURL, &r.Answer, &r.Status, &r.Error, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}
