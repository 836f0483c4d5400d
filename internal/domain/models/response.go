package models

// GenerateResponse is the success envelope for POST /api/generate.
type GenerateResponse struct {
	Success  bool     `json:"success"`
	Output   string   `json:"output"`
	Metadata Metadata `json:"metadata"`
}

// Metadata describes a completed generation. Timestamp is RFC 3339 UTC.
type Metadata struct {
	UserID    string `json:"userId"`
	Model     string `json:"model"`
	Timestamp string `json:"timestamp"`
}

// ErrorResponse is the failure envelope. Details is populated only for
// validation failures.
type ErrorResponse struct {
	Error   string  `json:"error"`
	Details []Issue `json:"details,omitempty"`
}
