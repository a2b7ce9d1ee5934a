package agent

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	logger "github.com/sirupsen/logrus"

	"github.com/go-resty/resty/v2"
)

// OpenAIInvoker calls an OpenAI-compatible chat-completions endpoint with
// streaming enabled and concatenates the fragment stream into one reply.
// There is no internal retry: the pipeline attempts each agent call exactly
// once per request.
type OpenAIInvoker struct {
	http  *resty.Client
	model string
}

func NewOpenAIInvoker(cfg Config) *OpenAIInvoker {
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	// tolerate a configured URL that already includes the completions path
	baseURL = strings.TrimSuffix(baseURL, "/chat/completions")

	httpClient := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(cfg.Timeout).
		SetAuthToken(cfg.APIKey).
		SetHeader("Content-Type", "application/json")

	logger.WithFields(logger.Fields{
		"base_url": baseURL,
		"model":    cfg.Model,
		"api_key":  maskKey(cfg.APIKey),
	}).Debug("agent client configured")

	return &OpenAIInvoker{http: httpClient, model: cfg.Model}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	Stream      bool          `json:"stream"`
}

type streamChunk struct {
	Choices []struct {
		Delta struct {
			Content string `json:"content"`
		} `json:"delta"`
	} `json:"choices"`
}

// Invoke posts the prompt pair and drains the SSE stream. The stream is
// finite and non-restartable; cancellation of ctx aborts it mid-flight and
// discards whatever was read.
func (c *OpenAIInvoker) Invoke(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	messages := make([]chatMessage, 0, 2)
	if systemPrompt != "" {
		messages = append(messages, chatMessage{Role: "system", Content: systemPrompt})
	}
	messages = append(messages, chatMessage{Role: "user", Content: userPrompt})

	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(chatRequest{Model: c.model, Messages: messages, Temperature: 0.5, Stream: true}).
		SetDoNotParseResponse(true).
		Post("/chat/completions")
	if err != nil {
		return "", fmt.Errorf("agent request: %w", err)
	}

	body := resp.RawBody()
	defer body.Close()

	if resp.StatusCode() < 200 || resp.StatusCode() >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(body, 4*1024))
		return "", fmt.Errorf("agent returned status %d: %s", resp.StatusCode(), apiErrorMessage(detail, resp.Status()))
	}

	return drainStream(ctx, body)
}

// drainStream concatenates SSE "data:" fragments until the [DONE] sentinel
// or EOF.
func drainStream(ctx context.Context, body io.Reader) (string, error) {
	var reply strings.Builder

	scanner := bufio.NewScanner(body)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return "", fmt.Errorf("agent stream canceled: %w", err)
		}

		line := strings.TrimSpace(scanner.Text())
		if !strings.HasPrefix(line, "data:") {
			continue
		}
		payload := strings.TrimSpace(strings.TrimPrefix(line, "data:"))
		if payload == "[DONE]" {
			break
		}

		var chunk streamChunk
		if err := json.Unmarshal([]byte(payload), &chunk); err != nil {
			return "", fmt.Errorf("decode stream chunk: %w", err)
		}
		for _, choice := range chunk.Choices {
			reply.WriteString(choice.Delta.Content)
		}
	}
	if err := scanner.Err(); err != nil {
		return "", fmt.Errorf("read agent stream: %w", err)
	}

	return reply.String(), nil
}

func apiErrorMessage(body []byte, fallback string) string {
	var eresp struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &eresp); err == nil && eresp.Error.Message != "" {
		return eresp.Error.Message
	}
	return fallback
}

func maskKey(key string) string {
	if key == "" {
		return "(unset)"
	}
	if len(key) <= 4 {
		return "****"
	}
	return "****" + key[len(key)-4:]
}
