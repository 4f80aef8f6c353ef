package providers

import (
	"encoding/json"
	"fmt"
)

// FamilyC is an Anthropic-style adapter: the system prompt is a top-level
// request field rather than a message with role "system", a version header
// is required on every call, and there is no embeddings endpoint.
type FamilyC struct {
	// AnthropicVersion is sent as the required version header.
	AnthropicVersion string
}

func (FamilyC) Family() string { return "C" }

func (FamilyC) Supports(kind Kind) bool {
	switch kind {
	case KindChat, KindGenerate:
		return true
	default:
		return false
	}
}

func (f FamilyC) version() string {
	if f.AnthropicVersion == "" {
		return "2023-06-01"
	}
	return f.AnthropicVersion
}

type anthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type anthropicRequest struct {
	Model       string             `json:"model"`
	System      string             `json:"system,omitempty"`
	Messages    []anthropicMessage `json:"messages"`
	Temperature *float64           `json:"temperature,omitempty"`
	MaxTokens   int                `json:"max_tokens"`
	TopP        *float64           `json:"top_p,omitempty"`
}

type anthropicContentBlock struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type anthropicUsage struct {
	InputTokens  int `json:"input_tokens"`
	OutputTokens int `json:"output_tokens"`
}

type anthropicResponse struct {
	Content []anthropicContentBlock `json:"content"`
	Usage   anthropicUsage          `json:"usage"`
}

func (f FamilyC) BuildRequest(inst *ProviderInstance, req *LogicalRequest) (string, string, map[string]string, []byte, error) {
	if req.Kind != KindChat && req.Kind != KindGenerate {
		return "", "", nil, nil, &ConfigError{Field: "kind", Message: fmt.Sprintf("family C does not support %q", req.Kind)}
	}

	var system string
	messages := make([]anthropicMessage, 0, len(req.Messages))
	for _, m := range req.Messages {
		if m.Role == RoleSystem {
			system = m.Content
			continue
		}
		messages = append(messages, anthropicMessage{Role: m.Role, Content: m.Content})
	}

	maxTokens := 1024
	if req.Params.MaxTokens != nil {
		maxTokens = *req.Params.MaxTokens
	}

	body := anthropicRequest{
		Model:       req.Model,
		System:      system,
		Messages:    messages,
		Temperature: req.Params.Temperature,
		MaxTokens:   maxTokens,
		TopP:        req.Params.TopP,
	}
	bodyBytes, err := json.Marshal(body)
	if err != nil {
		return "", "", nil, nil, err
	}

	headers := map[string]string{
		"Content-Type":      "application/json",
		"x-api-key":         inst.APIKey(),
		"anthropic-version": f.version(),
	}
	return "POST", inst.APIBase() + "/v1/messages", headers, bodyBytes, nil
}

func (FamilyC) ParseResponse(kind Kind, raw []byte) (*NormalizedReply, error) {
	if kind != KindChat && kind != KindGenerate {
		return nil, &UpstreamFormatError{Family: "C", Cause: fmt.Errorf("unsupported kind %q", kind)}
	}
	var resp anthropicResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, &UpstreamFormatError{Family: "C", Cause: err}
	}
	var text string
	for _, block := range resp.Content {
		if block.Type == "text" {
			text += block.Text
		}
	}
	return &NormalizedReply{
		Kind: KindChat,
		Text: text,
		Usage: TokenUsage{
			PromptTokens:     resp.Usage.InputTokens,
			CompletionTokens: resp.Usage.OutputTokens,
			TotalTokens:      resp.Usage.InputTokens + resp.Usage.OutputTokens,
		},
	}, nil
}
