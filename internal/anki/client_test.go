package anki

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// capturedAction 记录一次AnkiConnect调用
type capturedAction struct {
	Action string
	Params json.RawMessage
}

// newConnectStubServer 启动一个按动作返回预设result的AnkiConnect桩服务
func newConnectStubServer(t *testing.T, results map[string]string) (*httptest.Server, *[]capturedAction) {
	captured := &[]capturedAction{}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req struct {
			Action  string          `json:"action"`
			Version int             `json:"version"`
			Params  json.RawMessage `json:"params"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, apiVersion, req.Version)

		*captured = append(*captured, capturedAction{Action: req.Action, Params: req.Params})

		result, ok := results[req.Action]
		require.True(t, ok, "unexpected action: %s", req.Action)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"result": ` + result + `, "error": null}`))
	}))

	return server, captured
}

func TestHTTPClientCreateDeck(t *testing.T) {
	server, captured := newConnectStubServer(t, map[string]string{
		"createDeck": "1519323742721",
	})
	defer server.Close()

	client := NewHTTPClient(WithEndpoint(server.URL))

	deckID, err := client.CreateDeck(context.Background(), "  Go Basics  ")

	require.NoError(t, err)
	assert.Equal(t, int64(1519323742721), deckID)

	require.Len(t, *captured, 1)
	assert.Equal(t, "createDeck", (*captured)[0].Action)

	var params createDeckParams
	require.NoError(t, json.Unmarshal((*captured)[0].Params, &params))
	assert.Equal(t, "Go Basics", params.Deck, "deck name should be trimmed before submission")
}

func TestHTTPClientCreateDeckEmptyName(t *testing.T) {
	client := NewHTTPClient()

	_, err := client.CreateDeck(context.Background(), "   ")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "deck name cannot be empty")
}

func TestHTTPClientAddNotes(t *testing.T) {
	server, captured := newConnectStubServer(t, map[string]string{
		"addNotes": "[12345, null, 67890]",
	})
	defer server.Close()

	client := NewHTTPClient(WithEndpoint(server.URL))

	notes := []Note{
		NewBasicNote("Deck", "Q1", "A1\n"),
		NewBasicNote("Deck", "Q2", "A2"),
		NewBasicNote("Deck", "Q3", "A3"),
	}

	result, err := client.AddNotes(context.Background(), notes)

	require.NoError(t, err)
	require.Len(t, result, 3)
	require.NotNil(t, result[0])
	assert.Equal(t, int64(12345), *result[0])
	assert.Nil(t, result[1], "duplicate or rejected note maps to nil")
	require.NotNil(t, result[2])
	assert.Equal(t, int64(67890), *result[2])

	require.Len(t, *captured, 1)
	var params addNotesParams
	require.NoError(t, json.Unmarshal((*captured)[0].Params, &params))
	require.Len(t, params.Notes, 3)
	assert.Equal(t, "Deck", params.Notes[0].DeckName)
	assert.Equal(t, ModelBasic, params.Notes[0].ModelName)
	assert.Equal(t, "Q1", params.Notes[0].Fields[FieldFront])
	assert.Equal(t, "A1\n", params.Notes[0].Fields[FieldBack])
	require.NotNil(t, params.Notes[0].Options)
	assert.False(t, params.Notes[0].Options.AllowDuplicate)
	assert.NotNil(t, params.Notes[0].Tags)
}

func TestHTTPClientAddNotesValidationGate(t *testing.T) {
	server, captured := newConnectStubServer(t, map[string]string{
		"addNotes": "[111]",
	})
	defer server.Close()

	logger, hook := logtest.NewNullLogger()
	client := NewHTTPClient(WithEndpoint(server.URL), WithLogger(logger))

	notes := []Note{
		{DeckName: "Deck", ModelName: ModelBasic},
		NewBasicNote("Deck", "Q", "A"),
		{DeckName: "Deck", ModelName: ModelBasic, Fields: map[string]string{FieldFront: "Q"}},
	}

	result, err := client.AddNotes(context.Background(), notes)

	require.NoError(t, err)
	require.Len(t, result, 1)
	require.NotNil(t, result[0])
	assert.Equal(t, int64(111), *result[0])

	// 只有结构完整的那一条进入批量提交
	require.Len(t, *captured, 1)
	var params addNotesParams
	require.NoError(t, json.Unmarshal((*captured)[0].Params, &params))
	require.Len(t, params.Notes, 1)
	assert.Equal(t, "Q", params.Notes[0].Fields[FieldFront])

	var skipped []interface{}
	for _, entry := range hook.Entries {
		if entry.Message == "Skipping invalid note" {
			skipped = append(skipped, entry.Data["index"])
		}
	}
	assert.Equal(t, []interface{}{0, 2}, skipped)
}

func TestHTTPClientAddNotesNoValidNotes(t *testing.T) {
	called := false
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer server.Close()

	client := NewHTTPClient(WithEndpoint(server.URL))

	t.Run("all notes invalid", func(t *testing.T) {
		result, err := client.AddNotes(context.Background(), []Note{
			{},
			{DeckName: "Deck"},
		})

		require.NoError(t, err)
		assert.NotNil(t, result)
		assert.Empty(t, result)
		assert.False(t, called, "no network call should be made without valid notes")
	})

	t.Run("empty input", func(t *testing.T) {
		result, err := client.AddNotes(context.Background(), nil)

		require.NoError(t, err)
		assert.NotNil(t, result)
		assert.Empty(t, result)
		assert.False(t, called)
	})
}

func TestHTTPClientAddCard(t *testing.T) {
	server, captured := newConnectStubServer(t, map[string]string{
		"guiAddCards": "987654321",
	})
	defer server.Close()

	client := NewHTTPClient(WithEndpoint(server.URL))

	noteID, err := client.AddCard(context.Background(), "Deck", "  Front  ", "Back\n")

	require.NoError(t, err)
	assert.Equal(t, int64(987654321), noteID)

	require.Len(t, *captured, 1)
	assert.Equal(t, "guiAddCards", (*captured)[0].Action)

	var params addCardParams
	require.NoError(t, json.Unmarshal((*captured)[0].Params, &params))
	assert.Equal(t, "Deck", params.Note.DeckName)
	assert.Equal(t, "Front", params.Note.Fields[FieldFront], "single card fields are trimmed")
	assert.Equal(t, "Back", params.Note.Fields[FieldBack])
}

func TestHTTPClientAddCardMissingArguments(t *testing.T) {
	client := NewHTTPClient()

	tests := []struct {
		name  string
		deck  string
		front string
		back  string
	}{
		{"empty deck", "", "f", "b"},
		{"blank front", "d", "   ", "b"},
		{"empty back", "d", "f", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := client.AddCard(context.Background(), tt.deck, tt.front, tt.back)
			assert.Error(t, err)
			assert.Contains(t, err.Error(), "all required")
		})
	}
}

func TestHTTPClientSync(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		server, captured := newConnectStubServer(t, map[string]string{
			"sync": "null",
		})
		defer server.Close()

		client := NewHTTPClient(WithEndpoint(server.URL))

		err := client.Sync(context.Background())

		require.NoError(t, err)
		require.Len(t, *captured, 1)
		assert.Equal(t, "sync", (*captured)[0].Action)
		assert.JSONEq(t, "{}", string((*captured)[0].Params))
	})

	t.Run("failure is reported to the caller", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"result": null, "error": "sync failed: auth required"}`))
		}))
		defer server.Close()

		client := NewHTTPClient(WithEndpoint(server.URL))

		err := client.Sync(context.Background())

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "AnkiConnect error: sync failed: auth required")
	})
}

func TestHTTPClientVersion(t *testing.T) {
	server, _ := newConnectStubServer(t, map[string]string{
		"version": "6",
	})
	defer server.Close()

	client := NewHTTPClient(WithEndpoint(server.URL))

	version, err := client.Version(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 6, version)
}

func TestHTTPClientResponseValidation(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		expectedMsg string
	}{
		{
			name:        "three fields",
			body:        `{"result": 1, "error": null, "extra": true}`,
			expectedMsg: "expected 2 fields, got 3",
		},
		{
			name:        "missing error field",
			body:        `{"result": 1, "ok": null}`,
			expectedMsg: "missing required error field",
		},
		{
			name:        "missing result field",
			body:        `{"error": null, "extra": 1}`,
			expectedMsg: "missing required result field",
		},
		{
			name:        "api error",
			body:        `{"result": null, "error": "deck was not found"}`,
			expectedMsg: "AnkiConnect error: deck was not found",
		},
		{
			name:        "invalid json",
			body:        `not json at all`,
			expectedMsg: "invalid response from AnkiConnect",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			client := NewHTTPClient(WithEndpoint(server.URL))

			_, err := client.Version(context.Background())

			assert.Error(t, err)
			assert.Contains(t, err.Error(), tt.expectedMsg)
		})
	}
}

func TestHTTPClientConnectionError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client := NewHTTPClient(WithEndpoint(server.URL))

	err := client.Sync(context.Background())

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "cannot connect to Anki")
}

func TestAnkiConfigAndOptions(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, "http://127.0.0.1:8765", cfg.Endpoint)
	assert.Equal(t, 30*time.Second, cfg.Timeout)

	WithEndpoint("http://localhost:9999")(cfg)
	WithTimeout(5 * time.Second)(cfg)

	assert.Equal(t, "http://localhost:9999", cfg.Endpoint)
	assert.Equal(t, 5*time.Second, cfg.Timeout)
}

// TestIntegrationAnkiConnect 集成测试，需要本机运行带AnkiConnect插件的Anki
func TestIntegrationAnkiConnect(t *testing.T) {
	if os.Getenv("ANKI_INTEGRATION") == "" {
		t.Skip("Skipping integration test: ANKI_INTEGRATION not set")
	}

	client := NewHTTPClient()

	version, err := client.Version(context.Background())

	require.NoError(t, err)
	assert.GreaterOrEqual(t, version, 6)
}
