package router

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/sashabaranov/go-openai"
	"golang.org/x/time/rate"

	"github.com/civicdata-il/protokol/internal/model"
)

// OpenAIProvider runs extraction against a hosted chat-completions API.
// It self-enforces a per-minute request budget: requests beyond budget are
// rejected locally with no network call.
type OpenAIProvider struct {
	client    *openai.Client
	modelName string
	timeout   time.Duration
	limiter   *rate.Limiter

	mu        sync.Mutex
	probed    bool
	available bool
}

// NewOpenAIProvider builds the cloud provider. Returns a provider even
// without credentials; it just reports unavailable.
func NewOpenAIProvider(cfg model.RouterConfig) *OpenAIProvider {
	var client *openai.Client
	if cfg.CloudAPIKey != "" {
		clientCfg := openai.DefaultConfig(cfg.CloudAPIKey)
		if cfg.CloudBaseURL != "" {
			clientCfg.BaseURL = cfg.CloudBaseURL
		}
		client = openai.NewClientWithConfig(clientCfg)
	}

	modelName := cfg.CloudModel
	if modelName == "" {
		modelName = openai.GPT4oMini
	}

	timeout := time.Duration(cfg.CloudTimeout) * time.Second
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	rpm := cfg.CloudRequestsPerMinute
	if rpm <= 0 {
		rpm = 15
	}

	return &OpenAIProvider{
		client:    client,
		modelName: modelName,
		timeout:   timeout,
		limiter:   rate.NewLimiter(rate.Every(time.Minute/time.Duration(rpm)), rpm),
	}
}

func (p *OpenAIProvider) Name() Method { return MethodOpenAI }

// Available requires credentials and a working endpoint. The probe result is
// cached; call Reset to probe again after an outage.
func (p *OpenAIProvider) Available(ctx context.Context) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.probed {
		return p.available
	}
	p.probed = true

	if p.client == nil {
		p.available = false
		return false
	}

	probeCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	_, err := p.client.ListModels(probeCtx)
	p.available = err == nil
	return p.available
}

// Reset clears the cached availability so the next call probes again
func (p *OpenAIProvider) Reset() {
	p.mu.Lock()
	p.probed = false
	p.mu.Unlock()
}

func (p *OpenAIProvider) Extract(ctx context.Context, text string, typ ExtractionType) Result {
	if !p.Available(ctx) {
		return Result{Method: MethodOpenAI, Error: "cloud provider not available"}
	}

	if !p.limiter.Allow() {
		return Result{Method: MethodOpenAI, Error: "rate limit exceeded"}
	}

	reqCtx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	resp, err := p.client.CreateChatCompletion(reqCtx, openai.ChatCompletionRequest{
		Model: p.modelName,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: "You extract structured data from Hebrew municipal protocols, answering only in the requested format.",
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: cloudPrompt(text, typ),
			},
		},
		MaxTokens:   500,
		Temperature: 0.1,
	})
	if err != nil {
		return Result{Method: MethodOpenAI, Error: err.Error()}
	}
	if len(resp.Choices) == 0 {
		return Result{Method: MethodOpenAI, Error: "no response choices"}
	}

	raw := strings.TrimSpace(resp.Choices[0].Message.Content)
	data, confidence := parseModelResponse(raw, typ, 0.85, 0.6)

	return Result{
		Success:     true,
		Data:        data,
		Confidence:  confidence,
		Method:      MethodOpenAI,
		RawResponse: raw,
		TokensUsed:  resp.Usage.TotalTokens,
	}
}
