package nlp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"resume-insight/internal/analysis"
)

const (
	entitiesPath   = "/v1/entities"
	similarityPath = "/v1/similarity"
)

// Client calls the inference sidecar. It is safe for concurrent use: the
// underlying models are loaded once by the sidecar and treated as read-only
// shared resources, so one Client serves all requests.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient constructs a sidecar client. timeout <= 0 falls back to 30s.
func NewClient(baseURL string, timeout time.Duration) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, fmt.Errorf("NLP_BASE_URL is required")
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}, nil
}

var (
	sharedMu     sync.Mutex
	sharedOnce   map[string]*sync.Once
	sharedClient map[string]*Client
	sharedErr    map[string]error
)

// Shared returns a process-wide client for the given base URL, initialized
// exactly once. Concurrent requests share the returned handle without
// locking; the Client is never mutated after construction.
func Shared(baseURL string, timeout time.Duration) (*Client, error) {
	sharedMu.Lock()
	if sharedOnce == nil {
		sharedOnce = make(map[string]*sync.Once)
		sharedClient = make(map[string]*Client)
		sharedErr = make(map[string]error)
	}
	once, ok := sharedOnce[baseURL]
	if !ok {
		once = new(sync.Once)
		sharedOnce[baseURL] = once
	}
	sharedMu.Unlock()

	once.Do(func() {
		client, err := NewClient(baseURL, timeout)
		sharedMu.Lock()
		sharedClient[baseURL] = client
		sharedErr[baseURL] = err
		sharedMu.Unlock()
	})

	sharedMu.Lock()
	defer sharedMu.Unlock()
	return sharedClient[baseURL], sharedErr[baseURL]
}

type entitiesRequest struct {
	Text string `json:"text"`
}

type entitiesResponse struct {
	Entities []analysis.Entity `json:"entities"`
	Error    string            `json:"error,omitempty"`
}

type similarityRequest struct {
	TextA string `json:"textA"`
	TextB string `json:"textB"`
}

type similarityResponse struct {
	Score float64 `json:"score"`
	Error string  `json:"error,omitempty"`
}

// ExtractEntities asks the NER model to tag spans in text.
func (c *Client) ExtractEntities(ctx context.Context, text string) ([]analysis.Entity, error) {
	var resp entitiesResponse
	if err := c.post(ctx, entitiesPath, entitiesRequest{Text: text}, &resp); err != nil {
		return nil, err
	}
	if resp.Error != "" {
		return nil, fmt.Errorf("%w: %s", ErrUnavailable, resp.Error)
	}
	return resp.Entities, nil
}

// Similarity asks the embedding model to score two texts on [-1,1].
func (c *Client) Similarity(ctx context.Context, textA, textB string) (float64, error) {
	var resp similarityResponse
	if err := c.post(ctx, similarityPath, similarityRequest{TextA: textA, TextB: textB}, &resp); err != nil {
		return 0, err
	}
	if resp.Error != "" {
		return 0, fmt.Errorf("%w: %s", ErrUnavailable, resp.Error)
	}
	return resp.Score, nil
}

func (c *Client) post(ctx context.Context, path string, payload, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal %s request: %w", path, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build %s request: %w", path, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrUnavailable, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("%w: %s: read body: %v", ErrUnavailable, path, err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: %s: status %d: %s", ErrUnavailable, path, resp.StatusCode, truncate(string(raw), 200))
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("%w: %s: decode: %v", ErrUnavailable, path, err)
	}
	return nil
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}

var (
	_ analysis.EntityExtractor  = (*Client)(nil)
	_ analysis.SimilarityScorer = (*Client)(nil)
)
