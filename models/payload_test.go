package models

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestResultPayload_WithoutSubmitURL(t *testing.T) {
	p := ResultPayload{
		Email:     "student@example.com",
		Secret:    "s3cret",
		URL:       "https://quiz.example/task/1",
		Answer:    int64(6),
		SubmitURL: "https://quiz.example/submit",
	}

	stripped := p.WithoutSubmitURL()
	if stripped.SubmitURL != "" {
		t.Errorf("SubmitURL = %q, want empty", stripped.SubmitURL)
	}
	if stripped.Email != p.Email || stripped.Secret != p.Secret || stripped.URL != p.URL || stripped.Answer != p.Answer {
		t.Error("WithoutSubmitURL() changed fields other than SubmitURL")
	}
	if p.SubmitURL == "" {
		t.Error("WithoutSubmitURL() mutated the receiver")
	}

	body, err := json.Marshal(stripped)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if strings.Contains(string(body), "submit_url") {
		t.Errorf("serialized form %s still carries submit_url", body)
	}
	if strings.Contains(string(body), "attachment") {
		t.Errorf("serialized form %s carries empty attachment", body)
	}
}

func TestResultPayload_AnswerShapes(t *testing.T) {
	tests := []struct {
		name   string
		answer any
		want   string
	}{
		{"integer", int64(6), `"answer":6`},
		{"float", 2.5, `"answer":2.5`},
		{"sentinel", AnswerNoDataset, `"answer":"unable to locate dataset"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body, err := json.Marshal(ResultPayload{Answer: tt.answer})
			if err != nil {
				t.Fatalf("Marshal() error = %v", err)
			}
			if !strings.Contains(string(body), tt.want) {
				t.Errorf("serialized form %s, want it to contain %s", body, tt.want)
			}
		})
	}
}
