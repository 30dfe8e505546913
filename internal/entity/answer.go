package entity

type AnswerStatus string

const (
	StatusOK                 AnswerStatus = "ok"
	StatusInvalidInput       AnswerStatus = "invalid_input"
	StatusBlocked            AnswerStatus = "blocked"
	StatusNotReady           AnswerStatus = "not_ready"
	StatusLowContext         AnswerStatus = "low_context"
	StatusLowConfidence      AnswerStatus = "low_confidence"
	StatusGenerationFailed   AnswerStatus = "generation_failed"
	StatusServiceUnavailable AnswerStatus = "service_unavailable"
)

// Confidence is the label attached to an answer. Rejected answers always carry ConfidenceLow,
// answered ones carry one of the bucket labels.
type Confidence string

const (
	ConfidenceLow Confidence = "low"

	ConfidenceLowBucket    Confidence = "low_confidence"
	ConfidenceMediumBucket Confidence = "medium_confidence"
	ConfidenceHighBucket   Confidence = "high_confidence"
)

type AskRequest struct {
	Question string `json:"question"`
	TopK     int    `json:"top_k"`
}

type AnswerResponse struct {
	Answer     string       `json:"answer"`
	Sources    []Source     `json:"sources"`
	Status     AnswerStatus `json:"status"`
	Confidence Confidence   `json:"confidence"`
	TraceID    string       `json:"trace_id"`
}

type IngestStatus string

const (
	IngestStatusIngested IngestStatus = "ingested"
	IngestStatusSkipped  IngestStatus = "skipped"
	IngestStatusError    IngestStatus = "error"
)

type IngestResult struct {
	Status           IngestStatus `json:"status"`
	Chunks           int          `json:"chunks,omitempty"`
	Message          string       `json:"message,omitempty"`
	DocumentsIndexed int          `json:"documents_indexed,omitempty"`
}

type ReadinessStatus string

const (
	ReadinessReady    ReadinessStatus = "ready"
	ReadinessNotReady ReadinessStatus = "not_ready"
)

type ReadyResponse struct {
	Status           ReadinessStatus `json:"status"`
	DocumentsIndexed int             `json:"documents_indexed"`
}

type EvaluationResponse struct {
	Status            string            `json:"status"`
	Description       string            `json:"description"`
	MinSimilarity     float64           `json:"min_similarity_score"`
	MinChunksRequired int               `json:"min_chunks_required"`
	TopKDefault       int               `json:"top_k_default"`
	ConfidenceBuckets map[string]string `json:"confidence_buckets"`
	Statuses          []AnswerStatus    `json:"statuses"`
}

// IngestErrorResponse is the body of a failed ingestion request.
type IngestErrorResponse struct {
	Status  IngestStatus `json:"status"`
	Error   string       `json:"error"`
	Message string       `json:"message"`
}
