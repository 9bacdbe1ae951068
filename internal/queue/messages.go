package queue

// DocumentMsg asks the worker to (re)extract knowledge points for a document.
type DocumentMsg struct {
	DocumentID int64 `json:"document_id"`
}

// FinetuneMsg asks the worker to assemble a training file and submit the
// fine-tuning job identified by JobID.
type FinetuneMsg struct {
	JobID        string  `json:"job_id"`
	MinWeight    float64 `json:"min_weight"`
	SystemPrompt string  `json:"system_prompt"`
}
