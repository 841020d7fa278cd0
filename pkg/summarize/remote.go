package summarize

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// RemoteClient delegates to a jotter server's /api/summarize endpoint,
// so the credential stays on the server.
//
// The server builds its own prompt, so Complete expects the raw note text;
// pair it with a Gateway created by NewRemoteGateway.
type RemoteClient struct {
	endpoint string
	client   *http.Client
}

// NewRemoteClient targets the server at baseURL (e.g. "http://localhost:8080").
func NewRemoteClient(baseURL string, hc *http.Client) *RemoteClient {
	if hc == nil {
		hc = &http.Client{}
	}
	return &RemoteClient{
		endpoint: strings.TrimRight(baseURL, "/") + "/api/summarize",
		client:   hc,
	}
}

type remoteRequest struct {
	Text string `json:"text"`
}

type remoteResponse struct {
	Summary string `json:"summary"`
	Error   string `json:"error"`
}

// Complete posts text and returns the server's summary.
func (c *RemoteClient) Complete(ctx context.Context, text string) (string, error) {
	body, err := json.Marshal(remoteRequest{Text: text})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrTransport, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: failed to read response: %v", ErrTransport, err)
	}

	var out remoteResponse
	decodeErr := json.Unmarshal(respBody, &out)
	if resp.StatusCode != http.StatusOK {
		if decodeErr == nil && out.Error != "" {
			return "", fmt.Errorf("%w: server error (%d): %s", ErrTransport, resp.StatusCode, out.Error)
		}
		return "", fmt.Errorf("%w: server error (%d)", ErrTransport, resp.StatusCode)
	}
	if decodeErr != nil {
		return "", fmt.Errorf("%w: failed to parse response: %v", ErrTransport, decodeErr)
	}
	return out.Summary, nil
}

// NewRemoteGateway wires a RemoteClient into a Gateway that sends the note
// text unchanged instead of a locally built prompt.
func NewRemoteGateway(baseURL string, hc *http.Client, opts ...Option) *Gateway {
	g := NewGateway(NewRemoteClient(baseURL, hc), opts...)
	g.raw = true
	return g
}

var _ Client = (*RemoteClient)(nil)
