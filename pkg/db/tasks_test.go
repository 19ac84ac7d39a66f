package db

import (
	"path/filepath"
	"testing"
)

func setupTestDB(t *testing.T) *DB {
	t.Helper()
	database, err := Open(filepath.Join(t.TempDir(), "tasks.db"))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { database.Close() })
	return database
}

func TestOpenCreatesSchema(t *testing.T) {
	database := setupTestDB(t)

	var name string
	err := database.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name='tasks'").Scan(&name)
	if err != nil {
		t.Fatalf("tasks table missing after Open(): %v", err)
	}
}

func TestRecordAndListTasks(t *testing.T) {
	database := setupTestDB(t)

	id1, err := database.RecordTask("a@example.com", "https://quiz.example/1",
		"https://quiz.example/submit", int64(6), StatusDone, "")
	if err != nil {
		t.Fatalf("RecordTask() error = %v", err)
	}
	if id1 == "" {
		t.Fatal("RecordTask() returned empty id")
	}
	_, err = database.RecordTask("b@example.com", "https://quiz.example/2",
		"", nil, StatusFailed, "submit url not found on page")
	if err != nil {
		t.Fatalf("RecordTask() error = %v", err)
	}

	records, err := database.ListTasks(10)
	if err != nil {
		t.Fatalf("ListTasks() error = %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("ListTasks() returned %d records, want 2", len(records))
	}

	byEmail := map[string]TaskRecord{}
	for _, r := range records {
		byEmail[r.Email] = r
	}
	done := byEmail["a@example.com"]
	if done.Answer != "6" {
		t.Errorf("Answer = %q, want JSON-encoded 6", done.Answer)
	}
	if done.Status != StatusDone || done.SubmitURL != "https://quiz.example/submit" {
		t.Errorf("record = %+v, want done status with submit url", done)
	}
	failed := byEmail["b@example.com"]
	if failed.Status != StatusFailed || failed.Error == "" {
		t.Errorf("record = %+v, want failed status with error text", failed)
	}
	if failed.Answer != "null" {
		t.Errorf("Answer = %q, want JSON null for absent answer", failed.Answer)
	}
}

func TestListTasksLimit(t *testing.T) {
	database := setupTestDB(t)

	for i := 0; i < 5; i++ {
		if _, err := database.RecordTask("a@example.com", "https://quiz.example/1",
			"", "x", StatusDone, ""); err != nil {
			t.Fatalf("RecordTask() error = %v", err)
		}
	}

	records, err := database.ListTasks(3)
	if err != nil {
		t.Fatalf("ListTasks() error = %v", err)
	}
	if len(records) != 3 {
		t.Errorf("ListTasks(3) returned %d records, want 3", len(records))
	}
}
