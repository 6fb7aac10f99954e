package router

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

	"github.com/civicdata-il/protokol/internal/model"
)

// OllamaProvider runs extraction against a local Ollama endpoint.
type OllamaProvider struct {
	baseURL    string
	modelName  string
	httpClient *http.Client

	mu        sync.Mutex
	probed    bool
	available bool
}

type ollamaRequest struct {
	Model   string        `json:"model"`
	Prompt  string        `json:"prompt"`
	Stream  bool          `json:"stream"`
	Options ollamaOptions `json:"options,omitempty"`
}

type ollamaOptions struct {
	Temperature float64 `json:"temperature,omitempty"`
	NumPredict  int     `json:"num_predict,omitempty"` // Max tokens
}

type ollamaResponse struct {
	Model    string `json:"model"`
	Response string `json:"response"`
	Done     bool   `json:"done"`

	PromptEvalCount int `json:"prompt_eval_count,omitempty"`
	EvalCount       int `json:"eval_count,omitempty"`
}

type ollamaError struct {
	Error string `json:"error"`
}

// NewOllamaProvider builds a local provider from router configuration
func NewOllamaProvider(cfg model.RouterConfig) *OllamaProvider {
	host := cfg.LocalHost
	if host == "" {
		host = "http://localhost:11434"
	}

	timeout := time.Duration(cfg.LocalTimeout) * time.Second
	if timeout == 0 {
		timeout = 60 * time.Second // Local models can be slow
	}

	return &OllamaProvider{
		baseURL:    strings.TrimSuffix(host, "/"),
		modelName:  cfg.LocalModel,
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (p *OllamaProvider) Name() Method { return MethodOllama }

// Available probes the endpoint once and caches the answer. A provider that
// recovers after a transient outage is not retried until Reset is called.
func (p *OllamaProvider) Available(ctx context.Context) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.probed {
		return p.available
	}
	p.probed = true
	p.available = p.probe(ctx)
	return p.available
}

// Reset clears the cached availability so the next call probes again
func (p *OllamaProvider) Reset() {
	p.mu.Lock()
	p.probed = false
	p.mu.Unlock()
}

func (p *OllamaProvider) probe(ctx context.Context) bool {
	probeCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(probeCtx, http.MethodGet, p.baseURL+"/api/tags", nil)
	if err != nil {
		return false
	}
	resp, err := p.httpClient.Do(req)
	if err != nil {
		return false
	}
	defer func() { _ = resp.Body.Close() }()

	return resp.StatusCode == http.StatusOK
}

func (p *OllamaProvider) Extract(ctx context.Context, text string, typ ExtractionType) Result {
	if !p.Available(ctx) {
		return Result{Method: MethodOllama, Error: "ollama not available"}
	}

	apiReq := ollamaRequest{
		Model:  p.modelName,
		Prompt: localPrompt(text, typ),
		Stream: false,
		Options: ollamaOptions{
			Temperature: 0.1,
			NumPredict:  500,
		},
	}

	resp, err := p.generate(ctx, apiReq)
	if err != nil {
		return Result{Method: MethodOllama, Error: err.Error()}
	}

	data, confidence := parseModelResponse(resp.Response, typ, 0.75, 0.5)

	return Result{
		Success:     true,
		Data:        data,
		Confidence:  confidence,
		Method:      MethodOllama,
		RawResponse: resp.Response,
		TokensUsed:  resp.PromptEvalCount + resp.EvalCount,
	}
}

func (p *OllamaProvider) generate(ctx context.Context, apiReq ollamaRequest) (*ollamaResponse, error) {
	body, err := json.Marshal(apiReq)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/api/generate", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	httpResp, err := p.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = httpResp.Body.Close() }()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if httpResp.StatusCode != http.StatusOK {
		var apiErr ollamaError
		if err := json.Unmarshal(respBody, &apiErr); err == nil && apiErr.Error != "" {
			return nil, fmt.Errorf("API error (%d): %s", httpResp.StatusCode, apiErr.Error)
		}
		return nil, fmt.Errorf("API error (%d): %s", httpResp.StatusCode, string(respBody))
	}

	var resp ollamaResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return nil, fmt.Errorf("unmarshal response: %w", err)
	}
	return &resp, nil
}
