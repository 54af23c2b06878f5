// Package backend wraps the Ollama HTTP API behind the gateway the rest of
// the application talks to. All failures surface as typed errors; logging of
// completed exchanges is the caller's job so that one log record always
// corresponds to one real exchange.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"LocalChat/internal/chat"

	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// DefaultBaseURL is the standard local Ollama endpoint.
const DefaultBaseURL = "http://localhost:11434"

// Gateway is the model-backend client. Safe for concurrent use.
type Gateway struct {
	baseURL    string
	httpClient *http.Client
	tracer     trace.Tracer
	meter      metric.Meter
}

// NewGateway creates a gateway for the given base URL (DefaultBaseURL when
// empty). Tracer and meter may be nil-like no-op instances from the otel
// globals.
func NewGateway(baseURL string, tracer trace.Tracer, meter metric.Meter) *Gateway {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Gateway{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 60 * time.Second},
		tracer:     tracer,
		meter:      meter,
	}
}

// ListModels fetches the identifiers of all models the backend serves.
// Any failure - backend down, bad status, undecodable body - comes back as a
// KindUnavailable error with an empty list; callers show an empty selection
// and keep going.
func (g *Gateway) ListModels(ctx context.Context) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+"/api/tags", nil)
	if err != nil {
		return nil, &Error{Kind: KindUnavailable, Message: "failed to create request", Cause: err}
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, &Error{Kind: KindUnavailable, Message: "backend unreachable (is Ollama running?)", Cause: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{Kind: KindUnavailable, Message: "failed to read response", Cause: err}
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &Error{Kind: KindUnavailable, Message: fmt.Sprintf("API error: %s - %s", resp.Status, string(body))}
	}

	var tags TagsResponse
	if err := json.Unmarshal(body, &tags); err != nil {
		return nil, &Error{Kind: KindUnavailable, Message: "failed to unmarshal response", Cause: err}
	}

	names := make([]string, len(tags.Models))
	for i, m := range tags.Models {
		names[i] = m.Name
	}
	return names, nil
}

// Chat submits the assembled prompt to the named model and returns the raw
// response text, reasoning markers included. One attempt, no retry: a failed
// call surfaces immediately so the orchestrator can stop the turn without
// fabricating an assistant message.
func (g *Gateway) Chat(ctx context.Context, model string, messages []chat.Message) (string, error) {
	ctx, span := g.tracer.Start(ctx, "ollama_chat_call")
	defer span.End()

	start := time.Now()

	reqMessages := make([]map[string]string, len(messages))
	for i, msg := range messages {
		reqMessages[i] = map[string]string{
			"role":    msg.Role.String(),
			"content": msg.Content,
		}
	}

	reqBody := ChatRequest{
		Model:    model,
		Messages: reqMessages,
		Stream:   false,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", &Error{Kind: KindBackendError, Message: "failed to marshal request", Cause: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/api/chat", bytes.NewBuffer(jsonData))
	if err != nil {
		return "", &Error{Kind: KindBackendError, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("content-type", "application/json")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return "", &Error{Kind: KindBackendError, Message: "failed to send request", Cause: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &Error{Kind: KindBackendError, Message: "failed to read response", Cause: err}
	}

	if resp.StatusCode != http.StatusOK {
		return "", &Error{Kind: KindBackendError, Message: fmt.Sprintf("API error: %s - %s", resp.Status, string(body))}
	}

	var apiResp ChatResponse
	if err := json.Unmarshal(body, &apiResp); err != nil {
		return "", &Error{Kind: KindInvalidResponse, Message: "failed to unmarshal response", Cause: err}
	}

	if _, err := chat.ParseRole(apiResp.Message.Role); err != nil {
		return "", &Error{Kind: KindInvalidResponse, Message: "unexpected reply role", Cause: err}
	}

	g.recordDuration(ctx, time.Since(start))

	return apiResp.Message.Content, nil
}

// recordDuration feeds the request-duration histogram. Metric setup failure
// only costs the data point, never the call.
func (g *Gateway) recordDuration(ctx context.Context, d time.Duration) {
	histogram, err := g.meter.Float64Histogram(
		"http.client.request.duration",
		metric.WithDescription("HTTP request duration in milliseconds"),
	)
	if err == nil {
		histogram.Record(ctx, float64(d.Milliseconds()))
	}
}
