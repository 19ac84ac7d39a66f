package models

// TaskRequest is the body of an incoming quiz task: who answers, the shared
// secret, and the quiz page to solve.
type TaskRequest struct {
	Email  string `json:"email"`
	Secret string `json:"secret"`
	URL    string `json:"url"`
}

// Answer sentinels produced by the pipeline when no numeric or graphical
// result could be computed.
const (
	AnswerNoDataset    = "unable to locate dataset"
	AnswerNone         = "no_answer_generated"
	AnswerAttachedPlot = "attached_plot"
)

// ResultPayload is what gets posted to the discovered submission target.
// Answer is a number (int64/float64), a string sentinel, a literal answer
// lifted from the page, or an error description. SubmitURL is control
// metadata: WithoutSubmitURL strips it before transmission.
type ResultPayload struct {
	Email      string `json:"email"`
	Secret     string `json:"secret"`
	URL        string `json:"url"`
	Answer     any    `json:"answer"`
	Attachment string `json:"attachment,omitempty"`
	SubmitURL  string `json:"submit_url,omitempty"`
}

// WithoutSubmitURL returns a copy ready for transmission: identical fields
// with the submit_url dropped from the serialized form.
func (p ResultPayload) WithoutSubmitURL() ResultPayload {
	p.SubmitURL = ""
	return p
}
