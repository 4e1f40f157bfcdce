package relay

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"
)

// Executor performs a single upstream attempt under a hard deadline.
type Executor struct {
	client      *http.Client
	postHeaders map[string]string
}

// NewExecutor creates an executor attaching the given headers to POST
// attempts. The per-attempt deadline is passed to Execute, not fixed on
// the client, so the same executor serves every descriptor.
func NewExecutor(postHeaders map[string]string) *Executor {
	return &Executor{
		client:      &http.Client{},
		postHeaders: postHeaders,
	}
}

// Execute performs the descriptor's network call and normalizes the result.
// The deadline covers connection, request and full body read; on expiry the
// in-flight call is cancelled and the underlying connection released. It
// never retries: retry across candidates is the coordinator's job.
func (e *Executor) Execute(ctx context.Context, d AttemptDescriptor, timeout time.Duration) AttemptOutcome {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var body io.Reader
	if d.Method == http.MethodPost && d.Payload != nil {
		raw, err := json.Marshal(d.Payload)
		if err != nil {
			return AttemptOutcome{Label: d.Label, FailureReason: failureReasonUnreachable}
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, d.Method, d.Target, body)
	if err != nil {
		return AttemptOutcome{Label: d.Label, FailureReason: failureReasonUnreachable}
	}
	if d.Method == http.MethodPost {
		for k, v := range e.postHeaders {
			req.Header.Set(k, v)
		}
	}

	resp, err := e.client.Do(req)
	if err != nil {
		return AttemptOutcome{Label: d.Label, FailureReason: failureReasonUnreachable}
	}
	defer resp.Body.Close()

	// A body read failure is treated as an empty body, not a fatal error.
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		raw = nil
	}

	return AttemptOutcome{
		Succeeded:  resp.StatusCode >= 200 && resp.StatusCode < 300,
		HTTPStatus: resp.StatusCode,
		Body:       parseBody(raw),
		Label:      d.Label,
	}
}

// parseBody attempts JSON parsing; a non-JSON body is carried through as
// raw text unmodified, never discarded.
func parseBody(raw []byte) interface{} {
	if len(raw) == 0 {
		return nil
	}
	var parsed interface{}
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return string(raw)
	}
	return parsed
}
