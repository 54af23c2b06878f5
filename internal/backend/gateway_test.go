package backend

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"LocalChat/internal/chat"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
)

func newTestGateway(url string) *Gateway {
	return NewGateway(url, otel.Tracer("test"), otel.Meter("test"))
}

func TestListModels(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/tags", r.URL.Path)
		json.NewEncoder(w).Encode(TagsResponse{Models: []ModelInfo{
			{Name: "llama3.2:latest", Size: 2_000_000_000},
			{Name: "deepseek-r1:8b", Size: 5_000_000_000},
		}})
	}))
	defer srv.Close()

	models, err := newTestGateway(srv.URL).ListModels(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"llama3.2:latest", "deepseek-r1:8b"}, models)
}

func TestListModelsBackendDown(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	models, err := newTestGateway(srv.URL).ListModels(context.Background())
	assert.Empty(t, models)

	kind, ok := ErrorKind(err)
	require.True(t, ok)
	assert.Equal(t, KindUnavailable, kind)
}

func TestListModelsMalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer srv.Close()

	_, err := newTestGateway(srv.URL).ListModels(context.Background())
	kind, ok := ErrorKind(err)
	require.True(t, ok)
	assert.Equal(t, KindUnavailable, kind)
}

func TestChat(t *testing.T) {
	var gotReq ChatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/chat", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))

		var resp ChatResponse
		resp.Model = gotReq.Model
		resp.Message.Role = "assistant"
		resp.Message.Content = "<think>considering greeting</think>Hello there!"
		resp.Done = true
		json.NewEncoder(w).Encode(resp)
	}))
	defer srv.Close()

	messages := []chat.Message{
		chat.System("sys"),
		chat.User("Hi"),
	}

	raw, err := newTestGateway(srv.URL).Chat(context.Background(), "llama3.2:latest", messages)
	require.NoError(t, err)
	assert.Equal(t, "<think>considering greeting</think>Hello there!", raw)

	assert.Equal(t, "llama3.2:latest", gotReq.Model)
	assert.False(t, gotReq.Stream)
	require.Len(t, gotReq.Messages, 2)
	assert.Equal(t, map[string]string{"role": "system", "content": "sys"}, gotReq.Messages[0])
	assert.Equal(t, map[string]string{"role": "user", "content": "Hi"}, gotReq.Messages[1])
}

func TestChatUnknownModel(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"model 'nope' not found"}`, http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := newTestGateway(srv.URL).Chat(context.Background(), "nope", nil)
	kind, ok := ErrorKind(err)
	require.True(t, ok)
	assert.Equal(t, KindBackendError, kind)
	assert.Contains(t, err.Error(), "not found", "backend detail is carried along")
}

func TestChatUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	_, err := newTestGateway(srv.URL).Chat(context.Background(), "m", nil)
	kind, ok := ErrorKind(err)
	require.True(t, ok)
	assert.Equal(t, KindBackendError, kind)
}

func TestChatMalformedPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("{"))
	}))
	defer srv.Close()

	_, err := newTestGateway(srv.URL).Chat(context.Background(), "m", nil)
	kind, ok := ErrorKind(err)
	require.True(t, ok)
	assert.Equal(t, KindInvalidResponse, kind)
}

func TestChatRejectsUnknownReplyRole(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var resp ChatResponse
		resp.Message.Role = "oracle"
		resp.Message.Content = "hi"
		json.NewEncoder(w).Encode(resp)
	}))
	defer srv.Close()

	_, err := newTestGateway(srv.URL).Chat(context.Background(), "m", nil)
	kind, ok := ErrorKind(err)
	require.True(t, ok)
	assert.Equal(t, KindInvalidResponse, kind)
}

func TestErrorKindPlainError(t *testing.T) {
	_, ok := ErrorKind(assert.AnError)
	assert.False(t, ok)
}
