package services

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/copymastery/copyengine/internal/domain/models"
)

// mockProvider records invocations so tests can assert the upstream is never
// reached on failure paths.
type mockProvider struct {
	completeCalls int
	streamCalls   int
	output        string
	fragments     []string
	err           error
	lastModel     string
	lastMessages  []models.Message
}

func (m *mockProvider) Complete(_ context.Context, model string, messages []models.Message) (string, error) {
	m.completeCalls++
	m.lastModel = model
	m.lastMessages = messages
	if m.err != nil {
		return "", m.err
	}
	return m.output, nil
}

func (m *mockProvider) StreamCompletion(_ context.Context, model string, messages []models.Message, sink func(string)) error {
	m.streamCalls++
	m.lastModel = model
	m.lastMessages = messages
	if m.err != nil {
		return m.err
	}
	for _, f := range m.fragments {
		sink(f)
	}
	return nil
}

func newTestPipeline(provider *mockProvider, allowSynthetic bool) *Pipeline {
	resolver := NewIdentityResolver(allowSynthetic, models.Identity{
		ID:       "agent_1",
		Username: "test-user",
	}, zap.NewNop())
	p := NewPipeline(resolver, NewRequestValidator(), provider, zap.NewNop())
	p.now = func() time.Time {
		return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	}
	return p
}

func authedHeader() http.Header {
	return headerWith(HeaderUserID, "user_123", HeaderUsername, "jane")
}

func TestPipeline_Generate_Success(t *testing.T) {
	provider := &mockProvider{output: "Here is your sales letter..."}
	p := newTestPipeline(provider, false)

	body := []byte(`{"model": "EugeneSchwartzZPRO", "prompt": "Write a sales letter for protein powder"}`)
	resp, err := p.Generate(context.Background(), authedHeader(), body)

	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Equal(t, "Here is your sales letter...", resp.Output)
	assert.Equal(t, "user_123", resp.Metadata.UserID)
	assert.Equal(t, models.ModelEugeneSchwartz, resp.Metadata.Model)
	assert.Equal(t, "2025-06-01T12:00:00Z", resp.Metadata.Timestamp)

	assert.Equal(t, 1, provider.completeCalls)
	require.Len(t, provider.lastMessages, 1)
	assert.Equal(t, "user", provider.lastMessages[0].Role)
}

func TestPipeline_Generate_ContextBecomesSystemMessage(t *testing.T) {
	provider := &mockProvider{output: "ok output"}
	p := newTestPipeline(provider, false)

	body := []byte(`{
		"model": "5MVSLScript",
		"prompt": "Create a VSL script for a productivity app",
		"context": {"audience": "X", "wordCount": 5}
	}`)
	_, err := p.Generate(context.Background(), authedHeader(), body)

	require.NoError(t, err)
	require.Len(t, provider.lastMessages, 2)
	assert.Equal(t, "system", provider.lastMessages[0].Role)
	assert.Equal(t, "Target Audience: X\nTarget Word Count: approximately 5 words", provider.lastMessages[0].Content)
	assert.Equal(t, "Create a VSL script for a productivity app", provider.lastMessages[1].Content)
}

func TestPipeline_Generate_UnauthorizedShortCircuits(t *testing.T) {
	provider := &mockProvider{output: "never seen"}
	p := newTestPipeline(provider, false)

	// Body is also invalid; the auth failure must win and validation must
	// never report.
	_, err := p.Generate(context.Background(), http.Header{}, []byte(`{}`))

	assert.ErrorIs(t, err, models.ErrUnauthorized)
	assert.Zero(t, provider.completeCalls)
}

func TestPipeline_Generate_ValidationShortCircuits(t *testing.T) {
	provider := &mockProvider{output: "never seen"}
	p := newTestPipeline(provider, false)

	body := []byte(`{"model": "EugeneSchwartzZPRO", "prompt": "short"}`)
	_, err := p.Generate(context.Background(), authedHeader(), body)

	var validationErr *models.ValidationError
	assert.ErrorAs(t, err, &validationErr)
	assert.Zero(t, provider.completeCalls)
}

func TestPipeline_Generate_SyntheticIdentity(t *testing.T) {
	provider := &mockProvider{output: "generated"}
	p := newTestPipeline(provider, true)

	body := []byte(`{"model": "EugeneSchwartzZPRO", "prompt": "Write a sales letter for protein powder"}`)
	resp, err := p.Generate(context.Background(), http.Header{}, body)

	require.NoError(t, err)
	assert.Equal(t, "agent_1", resp.Metadata.UserID)
}

func TestPipeline_Generate_ProviderFailurePropagates(t *testing.T) {
	provider := &mockProvider{err: &models.GenerationError{Cause: assert.AnError}}
	p := newTestPipeline(provider, false)

	body := []byte(`{"model": "EugeneSchwartzZPRO", "prompt": "Write a sales letter for protein powder"}`)
	_, err := p.Generate(context.Background(), authedHeader(), body)

	var genErr *models.GenerationError
	require.ErrorAs(t, err, &genErr)
	assert.Equal(t, models.GenerationFailedMessage, genErr.Error())
}

func TestPipeline_StreamGenerate(t *testing.T) {
	provider := &mockProvider{fragments: []string{"Hello", " ", "world"}}
	p := newTestPipeline(provider, false)

	var got []string
	body := []byte(`{"model": "EugeneSchwartzZPRO", "prompt": "Write a sales letter for protein powder"}`)
	err := p.StreamGenerate(context.Background(), authedHeader(), body, func(fragment string) {
		got = append(got, fragment)
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"Hello", " ", "world"}, got)
	assert.Equal(t, 1, provider.streamCalls)
	assert.Zero(t, provider.completeCalls)
}

func TestPipeline_StreamGenerate_GatedLikeGenerate(t *testing.T) {
	provider := &mockProvider{fragments: []string{"x"}}
	p := newTestPipeline(provider, false)

	err := p.StreamGenerate(context.Background(), http.Header{}, []byte(`{}`), func(string) {
		t.Fatal("sink must not be invoked")
	})

	assert.ErrorIs(t, err, models.ErrUnauthorized)
	assert.Zero(t, provider.streamCalls)
}
