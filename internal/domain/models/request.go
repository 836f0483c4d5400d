package models

// Known model identifiers. These are the only presets the service exposes;
// the upstream rejects anything else anyway.
const (
	ModelEugeneSchwartz = "EugeneSchwartzZPRO"
	ModelVSLScript      = "5MVSLScript"
)

// GenerateRequest is a copy generation request as received on the wire.
// Fields outside the schema are ignored by the JSON decoder.
type GenerateRequest struct {
	// Model selects the upstream persona preset.
	Model string `json:"model" validate:"required,oneof=EugeneSchwartzZPRO 5MVSLScript"`

	// Prompt is the raw user instruction, passed to the model unmodified.
	Prompt string `json:"prompt" validate:"min=10"`

	// Context holds optional hints folded into the system prompt.
	Context *GenerationContext `json:"context,omitempty"`
}

// GenerationContext carries the optional structured hints. Each field is
// independent; an empty value is treated the same as an absent one.
type GenerationContext struct {
	Audience  string   `json:"audience,omitempty"`
	Product   string   `json:"product,omitempty"`
	Tone      string   `json:"tone,omitempty"`
	WordCount *float64 `json:"wordCount,omitempty" validate:"omitempty,gt=0"`
}

// IsEmpty reports whether no context field carries a usable value.
func (c *GenerationContext) IsEmpty() bool {
	if c == nil {
		return true
	}
	return c.Audience == "" && c.Product == "" && c.Tone == "" && c.WordCount == nil
}
