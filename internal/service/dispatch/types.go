package dispatch

// RecipientResult reports the delivery outcome for one recipient.
type RecipientResult struct {
	Email   string `json:"email"`
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// BatchResult aggregates a dispatch run. Results preserve the order the
// recipients were resolved in, and SentCount+ErrorCount always equals
// len(Results).
type BatchResult struct {
	BatchID    string            `json:"batch_id"`
	Success    bool              `json:"success"`
	SentCount  int               `json:"sent_count"`
	ErrorCount int               `json:"error_count"`
	Results    []RecipientResult `json:"results"`
}

func aggregate(results []RecipientResult) *BatchResult {
	batch := &BatchResult{Results: results}
	for _, r := range results {
		if r.Success {
			batch.SentCount++
		} else {
			batch.ErrorCount++
		}
	}
	batch.Success = batch.SentCount > 0
	return batch
}
