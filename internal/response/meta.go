package response

// Meta describes how an evaluation was produced.
type Meta struct {
	RequestID  string `json:"request_id,omitempty"`
	Provider   string `json:"provider,omitempty"`
	Model      string `json:"model,omitempty"`
	Structured bool   `json:"structured"`
	ElapsedMs  int64  `json:"elapsed_ms"`
}
