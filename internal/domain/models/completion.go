package models

// Message is a single role-tagged entry in a chat completion request,
// following the OpenAI API schema the upstream speaks.
type Message struct {
	Role    string `json:"role"` // "system" or "user" here
	Content string `json:"content"`
}

// CompletionRequest is the body sent to the upstream /chat/completions
// endpoint. Only the fields this service actually sets are modeled.
type CompletionRequest struct {
	Model    string    `json:"model"`
	Messages []Message `json:"messages"`

	// Stream switches the upstream into SSE delivery.
	Stream bool `json:"stream,omitempty"`
}

// CompletionResponse is a buffered upstream response.
type CompletionResponse struct {
	ID      string   `json:"id"`
	Object  string   `json:"object"`
	Created int64    `json:"created"`
	Model   string   `json:"model"`
	Choices []Choice `json:"choices"`
	Usage   *Usage   `json:"usage,omitempty"`
}

// Choice is one completion alternative. The service only ever reads the
// first one.
type Choice struct {
	Index        int     `json:"index"`
	Message      Message `json:"message"`
	FinishReason string  `json:"finish_reason"`
}

// Usage reports upstream token accounting. Logged, never surfaced.
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// FirstChoiceText returns the first choice's content, or "" when the
// response carries no usable text.
func (r *CompletionResponse) FirstChoiceText() string {
	if len(r.Choices) == 0 {
		return ""
	}
	return r.Choices[0].Message.Content
}

// CompletionChunk is a single SSE event in a streaming response.
//
// Example event:
// data: {"id":"chatcmpl-123","object":"chat.completion.chunk","created":1234567890,"model":"EugeneSchwartzZPRO","choices":[{"index":0,"delta":{"content":"Hello"},"finish_reason":null}]}
type CompletionChunk struct {
	ID      string        `json:"id"`
	Object  string        `json:"object"`
	Created int64         `json:"created"`
	Model   string        `json:"model"`
	Choices []ChunkChoice `json:"choices"`
}

// ChunkChoice holds the incremental delta for one choice.
type ChunkChoice struct {
	Index int        `json:"index"`
	Delta ChunkDelta `json:"delta"`

	// FinishReason is null until the final chunk.
	FinishReason *string `json:"finish_reason"`
}

// ChunkDelta is the incremental content of a streaming chunk. Role appears
// only in the first chunk.
type ChunkDelta struct {
	Role    string `json:"role,omitempty"`
	Content string `json:"content,omitempty"`
}

// DeltaText extracts the content fragment from the first choice's delta.
func (c *CompletionChunk) DeltaText() string {
	if len(c.Choices) == 0 {
		return ""
	}
	return c.Choices[0].Delta.Content
}
