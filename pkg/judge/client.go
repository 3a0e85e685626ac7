package judge

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/shrey0196/beatcoders-dev/pkg/logger"
)

// TestCase 채점 대상 테스트 케이스
type TestCase struct {
	Input       map[string]interface{} `json:"input"`
	Output      interface{}            `json:"output"`
	Description string                 `json:"description,omitempty"`
}

// CaseResult 테스트 케이스 하나의 채점 결과
type CaseResult struct {
	Passed bool   `json:"passed"`
	Error  string `json:"error,omitempty"`
}

// Client 외부 코드 실행 샌드박스 HTTP 클라이언트
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient 샌드박스 클라이언트 생성
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// executeRequest 샌드박스에 보낼 요청
type executeRequest struct {
	Code           string                 `json:"code"`
	Input          map[string]interface{} `json:"input"`
	ExpectedOutput interface{}            `json:"expectedOutput"`
}

// executeResponse 샌드박스로부터 받는 응답
type executeResponse struct {
	Passed bool        `json:"passed"`
	Actual interface{} `json:"actual,omitempty"`
	Error  string      `json:"error,omitempty"`
}

// RunTests runs the submitted code against every test case in order.
// A sandbox failure on one case is recorded in that case's result and
// never aborts the remaining cases.
func (c *Client) RunTests(ctx context.Context, code string, cases []TestCase) []CaseResult {
	results := make([]CaseResult, 0, len(cases))

	for i, tc := range cases {
		result, err := c.runCase(ctx, code, tc)
		if err != nil {
			logger.Warn("Judge execution failed for test case",
				"case", i,
				"error", err,
			)
			results = append(results, CaseResult{Passed: false, Error: err.Error()})
			continue
		}
		results = append(results, result)
	}

	return results
}

// runCase 테스트 케이스 하나 실행
func (c *Client) runCase(ctx context.Context, code string, tc TestCase) (CaseResult, error) {
	reqBody := executeRequest{
		Code:           code,
		Input:          tc.Input,
		ExpectedOutput: tc.Output,
	}

	data, err := json.Marshal(reqBody)
	if err != nil {
		return CaseResult{}, fmt.Errorf("failed to marshal execute request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/execute", bytes.NewReader(data))
	if err != nil {
		return CaseResult{}, fmt.Errorf("failed to build execute request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return CaseResult{}, fmt.Errorf("sandbox request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return CaseResult{}, fmt.Errorf("sandbox returned status %d", resp.StatusCode)
	}

	var execResp executeResponse
	if err := json.NewDecoder(resp.Body).Decode(&execResp); err != nil {
		return CaseResult{}, fmt.Errorf("failed to decode sandbox response: %w", err)
	}

	return CaseResult{Passed: execResp.Passed, Error: execResp.Error}, nil
}

// HealthCheck 샌드박스 상태 확인
func (c *Client) HealthCheck(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("sandbox health check failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("sandbox is not healthy: status %d", resp.StatusCode)
	}

	return nil
}
