package huggingface

// ClassifyRequest is the zero-shot classification request body.
type ClassifyRequest struct {
	Inputs     string             `json:"inputs"`
	Parameters ClassifyParameters `json:"parameters"`
}

// ClassifyParameters holds the candidate labels for zero-shot classification.
type ClassifyParameters struct {
	CandidateLabels []string `json:"candidate_labels"`
	MultiLabel      bool     `json:"multi_label,omitempty"`
}

// ClassifyResponse is the zero-shot classification response.
// Labels and Scores are parallel slices ordered by descending score.
type ClassifyResponse struct {
	Sequence string    `json:"sequence"`
	Labels   []string  `json:"labels"`
	Scores   []float64 `json:"scores"`
}

// ErrorResponse is the error body returned by the Inference API.
type ErrorResponse struct {
	Error string `json:"error"`
}
