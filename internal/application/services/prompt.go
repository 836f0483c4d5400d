package services

import (
	"strconv"
	"strings"

	"github.com/copymastery/copyengine/internal/domain/models"
)

// BuildSystemPrompt folds the optional context fields into one system
// instruction. The field order and labels are fixed so identical contexts
// always produce byte-identical prompts. Returns "" when there is nothing to
// say; the caller treats that as "no system message", not an empty one.
func BuildSystemPrompt(gc *models.GenerationContext) string {
	if gc.IsEmpty() {
		return ""
	}

	parts := make([]string, 0, 4)
	if gc.Audience != "" {
		parts = append(parts, "Target Audience: "+gc.Audience)
	}
	if gc.Product != "" {
		parts = append(parts, "Product/Service: "+gc.Product)
	}
	if gc.Tone != "" {
		parts = append(parts, "Tone: "+gc.Tone)
	}
	if gc.WordCount != nil {
		parts = append(parts, "Target Word Count: approximately "+formatWordCount(*gc.WordCount)+" words")
	}
	return strings.Join(parts, "\n")
}

// BuildMessages assembles the upstream message list: the system instruction
// when context supplied one, then exactly one user message carrying the raw
// prompt unmodified.
func BuildMessages(req *models.GenerateRequest) []models.Message {
	messages := make([]models.Message, 0, 2)
	if system := BuildSystemPrompt(req.Context); system != "" {
		messages = append(messages, models.Message{Role: "system", Content: system})
	}
	messages = append(messages, models.Message{Role: "user", Content: req.Prompt})
	return messages
}

// formatWordCount renders 5 as "5", not "5.000000".
func formatWordCount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
