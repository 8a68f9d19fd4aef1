package llm_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/logosbot/logos/internal/conversation"
	"github.com/logosbot/logos/internal/llm"
)

// completionServer fakes the chat-completion endpoint. It records the
// request body and replies with the configured content or status.
type completionServer struct {
	*httptest.Server

	lastRequest map[string]any
	content     string
	status      int
}

func newCompletionServer(t *testing.T, content string, status int) *completionServer {
	t.Helper()

	cs := &completionServer{content: content, status: status}
	cs.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		cs.lastRequest = body

		if cs.status != http.StatusOK {
			http.Error(w, `{"error":{"message":"rate limit reached"}}`, cs.status)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"id":"cmpl-1","object":"chat.completion","choices":[{"index":0,"message":{"role":"assistant","content":%q},"finish_reason":"stop"}]}`, cs.content)
	}))
	t.Cleanup(cs.Server.Close)
	return cs
}

func newTestClient(t *testing.T, server *completionServer) *llm.Client {
	t.Helper()

	client, err := llm.NewClient(llm.Config{
		APIKey:  "test-key",
		BaseURL: server.URL,
	}, zerolog.Nop())
	require.NoError(t, err)
	return client
}

func TestNewClient_RequiresAPIKey(t *testing.T) {
	_, err := llm.NewClient(llm.Config{}, zerolog.Nop())
	assert.Error(t, err)
}

func TestClient_CompleteReturnsFirstChoice(t *testing.T) {
	server := newCompletionServer(t, "NO", http.StatusOK)
	client := newTestClient(t, server)

	turns := []conversation.Turn{
		{Role: conversation.RoleSystem, Content: "referee"},
		{Role: conversation.RoleUser, Content: "an argument"},
	}

	text, err := client.Complete(context.Background(), turns, llm.ModelReferee, llm.RefereeTemperature)
	require.NoError(t, err)
	assert.Equal(t, "NO", text)

	// The ordered window, model, and temperature all reach the endpoint.
	assert.Equal(t, llm.ModelReferee, server.lastRequest["model"])
	assert.InDelta(t, llm.RefereeTemperature, server.lastRequest["temperature"], 0.001)

	msgs, ok := server.lastRequest["messages"].([]any)
	require.True(t, ok)
	require.Len(t, msgs, 2)
	first, ok := msgs[0].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "system", first["role"])
}

func TestClient_CompleteWrapsEndpointFailure(t *testing.T) {
	server := newCompletionServer(t, "", http.StatusTooManyRequests)
	client := newTestClient(t, server)

	turns := []conversation.Turn{{Role: conversation.RoleUser, Content: "hi"}}

	_, err := client.Complete(context.Background(), turns, llm.ModelReferee, llm.RefereeTemperature)
	require.Error(t, err)
	assert.True(t, llm.IsCompletionError(err))

	var ce *llm.CompletionError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, "complete", ce.Op)
}

func TestClient_OneLineStance(t *testing.T) {
	server := newCompletionServer(t, "Free will is an illusion and always was.", http.StatusOK)
	client := newTestClient(t, server)

	stance, err := client.OneLineStance(context.Background(), "Spinoza", "Sartre", "free will")
	require.NoError(t, err)
	assert.Equal(t, "Free will is an illusion and always was.", stance)

	// Stance generation stays near-deterministic.
	assert.InDelta(t, llm.StanceTemperature, server.lastRequest["temperature"], 0.001)
	assert.Equal(t, llm.ModelPersona, server.lastRequest["model"])
}

func TestPrompts_CarryTerminationContract(t *testing.T) {
	assert.Contains(t, llm.OpponentSystemPrompt("tabs vs spaces"), `reply with "CONCLUDE"`)
	assert.Contains(t, llm.PersonaSystemPrompt("A", "B", "t", "s"), `reply with exactly "CONCLUDE"`)
	assert.Contains(t, llm.RefereeSystemPrompt("t"), `Reply exactly "NO"`)
	assert.True(t, strings.Contains(llm.CritiqueSystemPrompt, "Debate Strategist"))
}
