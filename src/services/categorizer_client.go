package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"
)

// categorizerHTTPClient talks to the categorization service over HTTP. The
// service is opaque: it takes the raw export and returns the same delimited
// format with categories filled in.
type categorizerHTTPClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewCategorizerClient creates a client for the categorization service at
// baseURL.
func NewCategorizerClient(baseURL string, timeout time.Duration) CategorizerClient {
	return &categorizerHTTPClient{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *categorizerHTTPClient) Categorize(ctx context.Context, filename string, file io.Reader) (string, error) {
	var body strings.Builder
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return "", fmt.Errorf("building multipart request: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return "", fmt.Errorf("copying upload into request: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("finalizing multipart request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/categorize", strings.NewReader(body.String()))
	if err != nil {
		return "", fmt.Errorf("building categorize request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("calling categorization service: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading categorization response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("categorization service returned %d: %s", resp.StatusCode, decodeServiceError(respBody, resp.Status))
	}
	return string(respBody), nil
}

// decodeServiceError extracts a human-readable message from an upstream
// error payload: a JSON object with a detail/message/error field, or the
// plain-text body, or the HTTP status as a last resort.
func decodeServiceError(body []byte, fallback string) string {
	var payload map[string]any
	if err := json.Unmarshal(body, &payload); err == nil {
		for _, key := range []string{"detail", "message", "error"} {
			if v, ok := payload[key].(string); ok && strings.TrimSpace(v) != "" {
				return v
			}
		}
	}
	if text := strings.TrimSpace(string(body)); text != "" {
		return text
	}
	return fallback
}
