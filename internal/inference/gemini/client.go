package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"redline/internal/config"
	"redline/internal/domain"
	"redline/internal/inference"
	"redline/internal/port"
)

const defaultBaseURL = "https://generativelanguage.googleapis.com"

// Client implements port.InferenceClient against Google's Gemini Files API:
// documents are uploaded, polled until processed, referenced in a
// generateContent call, and deleted afterwards.
type Client struct {
	apiKey  string
	model   string
	baseURL string
	client  *http.Client
}

// NewClient creates a Gemini-backed inference client.
func NewClient(cfg *config.GeminiConfig) *Client {
	model := cfg.Model
	if model == "" {
		model = "gemini-2.0-flash"
	}
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	timeout := time.Duration(cfg.TimeoutSecs) * time.Second
	if timeout == 0 {
		timeout = 120 * time.Second
	}
	return &Client{
		apiKey:  cfg.APIKey,
		model:   model,
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

// geminiFile models the file resource in API responses.
type geminiFile struct {
	Name     string `json:"name"`
	URI      string `json:"uri"`
	MIMEType string `json:"mimeType"`
	State    string `json:"state"`
}

func (f *geminiFile) toRemoteFile() *port.RemoteFile {
	return &port.RemoteFile{
		Name:     f.Name,
		URI:      f.URI,
		MIMEType: f.MIMEType,
		State:    toFileState(f.State),
	}
}

// toFileState normalizes Gemini file states ("ACTIVE" means processed).
func toFileState(state string) domain.RemoteFileState {
	switch state {
	case "ACTIVE":
		return domain.FileStateReady
	case "PROCESSING":
		return domain.FileStateProcessing
	case "FAILED":
		return domain.FileStateFailed
	default:
		return domain.FileStatePending
	}
}

func (c *Client) Upload(ctx context.Context, content []byte, displayName, contentType string) (*port.RemoteFile, error) {
	url := fmt.Sprintf("%s/upload/v1beta/files?uploadType=media", c.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("creating upload request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("X-Goog-Upload-Protocol", "raw")
	req.Header.Set("X-Goog-Upload-File-Name", displayName)
	req.Header.Set("x-goog-api-key", c.apiKey)

	body, err := c.do(req)
	if err != nil {
		return nil, err
	}

	var resp struct {
		File geminiFile `json:"file"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("unmarshaling upload response: %w", err)
	}
	if resp.File.Name == "" {
		return nil, fmt.Errorf("upload response missing file name")
	}
	return resp.File.toRemoteFile(), nil
}

func (c *Client) GetState(ctx context.Context, name string) (domain.RemoteFileState, error) {
	url := fmt.Sprintf("%s/v1beta/%s", c.baseURL, name)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("creating state request: %w", err)
	}
	req.Header.Set("x-goog-api-key", c.apiKey)

	body, err := c.do(req)
	if err != nil {
		return "", err
	}

	var file geminiFile
	if err := json.Unmarshal(body, &file); err != nil {
		return "", fmt.Errorf("unmarshaling file state: %w", err)
	}
	return toFileState(file.State), nil
}

// generateResponse models the generateContent API response.
type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
		FinishReason string `json:"finishReason"`
	} `json:"candidates"`
}

func (c *Client) Generate(ctx context.Context, file *port.RemoteFile, instruction string) (string, error) {
	reqBody := map[string]interface{}{
		"contents": []map[string]interface{}{
			{
				"role": "user",
				"parts": []map[string]interface{}{
					{
						"file_data": map[string]interface{}{
							"mime_type": file.MIMEType,
							"file_uri":  file.URI,
						},
					},
					{
						"text": instruction,
					},
				},
			},
		},
		"generationConfig": map[string]interface{}{
			"maxOutputTokens": 8192,
		},
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent", c.baseURL, c.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(bodyBytes))
	if err != nil {
		return "", fmt.Errorf("creating generate request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.apiKey)

	body, err := c.do(req)
	if err != nil {
		return "", err
	}

	var resp generateResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("unmarshaling response: %w", err)
	}
	if len(resp.Candidates) == 0 {
		return "", fmt.Errorf("empty response from API: no candidates")
	}
	if len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("empty response from API: no parts")
	}
	return resp.Candidates[0].Content.Parts[0].Text, nil
}

func (c *Client) Delete(ctx context.Context, name string) error {
	url := fmt.Sprintf("%s/v1beta/%s", c.baseURL, name)
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, url, nil)
	if err != nil {
		return fmt.Errorf("creating delete request: %w", err)
	}
	req.Header.Set("x-goog-api-key", c.apiKey)

	_, err = c.do(req)
	return err
}

// do executes a request and classifies failures: transport errors wrap
// domain.ErrConnectivity, 401/403 wrap domain.ErrInvalidCredential, and 429
// becomes *inference.RateLimitError. Callers never inspect message text.
func (c *Client) do(req *http.Request) ([]byte, error) {
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrConnectivity, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading response: %v", domain.ErrConnectivity, err)
	}

	switch {
	case resp.StatusCode == http.StatusOK:
		return body, nil
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, fmt.Errorf("%w (status %d)", domain.ErrInvalidCredential, resp.StatusCode)
	case resp.StatusCode == http.StatusTooManyRequests:
		retryAfter := inference.ParseRetryAfterHeader(resp.Header.Get("Retry-After"))
		return nil, inference.NewRateLimitError("gemini", fmt.Errorf("gemini API error (status %d): %s", resp.StatusCode, truncate(string(body), 200)), retryAfter)
	default:
		return nil, fmt.Errorf("gemini API error (status %d): %s", resp.StatusCode, truncate(string(body), 500))
	}
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
