package providers

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/copymastery/copyengine/internal/domain/models"
	"github.com/copymastery/copyengine/internal/domain/services"
	"github.com/copymastery/copyengine/internal/infrastructure/config"
)

// fallbackOutput is returned when the upstream answers successfully but with
// no usable text. Upstream emptiness is not an error condition.
const fallbackOutput = "No response generated"

// PoeProvider talks to the Poe chat-completions API (OpenAI wire format).
// One request, one upstream call, no retries. Every transport or protocol
// fault is logged with its cause and collapsed into *models.GenerationError
// so upstream detail never leaks to callers.
type PoeProvider struct {
	config     config.ProviderConfig
	httpClient *http.Client
	logger     *zap.Logger
}

// NewPoeProvider creates a provider instance with a pooled transport.
func NewPoeProvider(cfg config.ProviderConfig, logger *zap.Logger) services.CompletionProvider {
	return &PoeProvider{
		config: cfg,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		logger: logger,
	}
}

// Complete sends one buffered completion request and returns the first
// choice's text, or the fixed fallback when the upstream returns nothing.
func (p *PoeProvider) Complete(ctx context.Context, model string, messages []models.Message) (string, error) {
	httpReq, err := p.createHTTPRequest(ctx, &models.CompletionRequest{
		Model:    model,
		Messages: messages,
	})
	if err != nil {
		return "", p.wrapFailure("failed to create HTTP request", err)
	}

	resp, err := p.httpClient.Do(httpReq)
	if err != nil {
		return "", p.wrapFailure("HTTP request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", p.wrapFailure("upstream returned non-200 status",
			fmt.Errorf("status %d: %s", resp.StatusCode, string(body)))
	}

	var completion models.CompletionResponse
	if err := json.NewDecoder(resp.Body).Decode(&completion); err != nil {
		return "", p.wrapFailure("failed to decode upstream response", err)
	}

	text := completion.FirstChoiceText()
	if text == "" {
		return fallbackOutput, nil
	}
	return text, nil
}

// StreamCompletion sends the request in streaming mode and feeds each
// non-empty delta to sink as it arrives. The failure-wrapping policy applies
// to the stream as a whole, not per fragment.
func (p *PoeProvider) StreamCompletion(ctx context.Context, model string, messages []models.Message, sink func(fragment string)) error {
	httpReq, err := p.createHTTPRequest(ctx, &models.CompletionRequest{
		Model:    model,
		Messages: messages,
		Stream:   true,
	})
	if err != nil {
		return p.wrapFailure("failed to create HTTP request", err)
	}

	resp, err := p.httpClient.Do(httpReq)
	if err != nil {
		return p.wrapFailure("HTTP request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return p.wrapFailure("upstream returned non-200 status",
			fmt.Errorf("status %d: %s", resp.StatusCode, string(body)))
	}

	if err := p.scanStream(ctx, resp.Body, sink); err != nil {
		return p.wrapFailure("streaming failed", err)
	}
	return nil
}

// createHTTPRequest builds the POST to {base_url}/chat/completions.
func (p *PoeProvider) createHTTPRequest(ctx context.Context, req *models.CompletionRequest) (*http.Request, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.config.BaseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+p.config.APIKey)

	return httpReq, nil
}

// scanStream reads SSE events until [DONE], delivering non-empty deltas to
// sink. Chunks that fail to parse are skipped rather than aborting the
// stream.
func (p *PoeProvider) scanStream(ctx context.Context, body io.Reader, sink func(string)) error {
	scanner := bufio.NewScanner(body)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	for scanner.Scan() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		line := scanner.Text()
		if line == "" || strings.HasPrefix(line, ":") {
			continue
		}

		if !strings.HasPrefix(line, "data: ") {
			continue
		}
		data := strings.TrimPrefix(line, "data: ")

		if data == "[DONE]" {
			return nil
		}

		var chunk models.CompletionChunk
		if err := json.Unmarshal([]byte(data), &chunk); err != nil {
			p.logger.Debug("skipping unparseable stream chunk", zap.Error(err))
			continue
		}

		if fragment := chunk.DeltaText(); fragment != "" {
			sink(fragment)
		}
	}

	return scanner.Err()
}

// wrapFailure logs the real cause and returns the uniform generation error.
func (p *PoeProvider) wrapFailure(msg string, cause error) error {
	p.logger.Error("poe api error", zap.String("detail", msg), zap.Error(cause))
	return &models.GenerationError{Cause: fmt.Errorf("%s: %w", msg, cause)}
}
