package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/AryamanRoy/Raseed-FinanceAI/src/models"
)

// advisorRequest is the payload forwarded to the advisor service: the query,
// prior turns and a textual context block summarizing the current batch.
type advisorRequest struct {
	Message string               `json:"message"`
	History []models.ChatMessage `json:"history"`
	Context string               `json:"context"`
}

type advisorResponse struct {
	Response string `json:"response"`
}

type advisorServiceImpl struct {
	baseURL    string
	httpClient *http.Client
	reports    ReportService
	hasData    func() bool
}

// NewAdvisorService creates the advisor boundary. reports supplies the
// batch summary used as conversation context; hasData gates calls so the
// advisor is never asked about an empty batch.
func NewAdvisorService(baseURL string, timeout time.Duration, reports ReportService, hasData func() bool) AdvisorService {
	return &advisorServiceImpl{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		reports:    reports,
		hasData:    hasData,
	}
}

func (s *advisorServiceImpl) Ask(ctx context.Context, message string, history []models.ChatMessage) (string, error) {
	if s.baseURL == "" {
		return "", ErrAdvisorMisconfigured
	}
	if !s.hasData() {
		return "", ErrNoBatch
	}

	payload, err := json.Marshal(advisorRequest{
		Message: message,
		History: history,
		Context: s.buildContextBlock(),
	})
	if err != nil {
		return "", fmt.Errorf("encoding advisor request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/chat", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("building advisor request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrAdvisorUnreachable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading advisor response: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return "", fmt.Errorf("%w: %s", ErrAdvisorMisconfigured, decodeServiceError(body, resp.Status))
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return "", fmt.Errorf("advisor service returned %d: %s", resp.StatusCode, decodeServiceError(body, resp.Status))
	}

	var parsed advisorResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("decoding advisor response: %w", err)
	}
	if strings.TrimSpace(parsed.Response) == "" {
		return "", fmt.Errorf("advisor service returned an empty reply")
	}
	return parsed.Response, nil
}

// buildContextBlock renders the scoped snapshot and top categories as plain
// text for the advisor's prompt.
func (s *advisorServiceImpl) buildContextBlock() string {
	summary := s.reports.Summary(Scope{})
	categories := s.reports.Categories(Scope{})

	var b strings.Builder
	fmt.Fprintf(&b, "Month: %s\n", summary.Month)
	fmt.Fprintf(&b, "Income: %.2f\nExpenses: %.2f\nBalance: %.2f\n",
		summary.Snapshot.Income, summary.Snapshot.Expenses, summary.Snapshot.Balance)
	fmt.Fprintf(&b, "Savings rate: %.1f%%\n", summary.Snapshot.SavingsRatePercent)
	fmt.Fprintf(&b, "Health score: %d/100\n", summary.Snapshot.HealthScore)

	if len(categories.Totals) > 0 {
		b.WriteString("Top expense categories:\n")
		limit := len(categories.Totals)
		if limit > 5 {
			limit = 5
		}
		for _, ct := range categories.Totals[:limit] {
			fmt.Fprintf(&b, "- %s: %.2f\n", ct.Category, ct.Amount)
		}
	}
	return b.String()
}
