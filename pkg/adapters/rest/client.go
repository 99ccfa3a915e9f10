package rest

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"

	"github.com/miriamsimone/video-generation-pipeline/pkg/domain"
)

// Client is a SequenceStore backed by a remote sequence API.
type Client struct {
	baseURL string
	httpc   *http.Client
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(c *http.Client) ClientOption {
	return func(cl *Client) {
		cl.httpc = c
	}
}

// NewClient returns a client for the sequence API at baseURL.
func NewClient(baseURL string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   http.DefaultClient,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// GetSequence implements ports.SequenceStore.
func (c *Client) GetSequence(ctx context.Context, pathID string) (*domain.Sequence, error) {
	data, err := c.get(ctx, "/timeline/"+url.PathEscape(pathID), fmt.Sprintf("sequence %q", pathID))
	if err != nil {
		return nil, err
	}
	var seq domain.Sequence
	if err := json.Unmarshal(data, &seq); err != nil {
		return nil, fmt.Errorf("%w: %q manifest: %v", domain.ErrMalformedSequence, pathID, err)
	}
	if err := seq.Validate(); err != nil {
		return nil, err
	}
	return &seq, nil
}

// GetFrame implements ports.SequenceStore.
func (c *Client) GetFrame(ctx context.Context, pathID, file string) ([]byte, error) {
	what := fmt.Sprintf("frame %q of %q", file, pathID)
	return c.get(ctx, "/frames/"+url.PathEscape(pathID)+"/"+url.PathEscape(file), what)
}

// ListSequences implements ports.SequenceStore.
func (c *Client) ListSequences(ctx context.Context) ([]string, error) {
	data, err := c.get(ctx, "/timelines", "timeline index")
	if err != nil {
		return nil, err
	}
	var body timelinesResponse
	if err := json.Unmarshal(data, &body); err != nil {
		return nil, fmt.Errorf("rest: decode timeline index: %w", err)
	}
	sort.Strings(body.Timelines)
	return body.Timelines, nil
}

func (c *Client) get(ctx context.Context, path, what string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("rest: build request: %w", err)
	}
	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("rest: %s: %w", what, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("rest: %s: %w", what, domain.ErrSequenceNotFound)
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("rest: %s: unexpected status %s", what, resp.Status)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("rest: %s: read body: %w", what, err)
	}
	return data, nil
}
