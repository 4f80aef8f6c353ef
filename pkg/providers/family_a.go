package providers

import (
	"encoding/json"
	"fmt"
)

// FamilyA is an OpenAI-compatible chat completion adapter: POST
// {api_base}/chat/completions with a Bearer key, and POST
// {api_base}/embeddings for embeddings.
type FamilyA struct{}

func (FamilyA) Family() string { return "A" }

func (FamilyA) Supports(kind Kind) bool {
	switch kind {
	case KindChat, KindGenerate, KindEmbed:
		return true
	default:
		return false
	}
}

type openAIChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type openAIChatRequest struct {
	Model       string              `json:"model"`
	Messages    []openAIChatMessage `json:"messages"`
	Temperature *float64            `json:"temperature,omitempty"`
	MaxTokens   *int                `json:"max_tokens,omitempty"`
	TopP        *float64            `json:"top_p,omitempty"`
	Stream      bool                `json:"stream"`
}

type openAIChatChoice struct {
	Message openAIChatMessage `json:"message"`
}

type openAIUsage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

type openAIChatResponse struct {
	Choices []openAIChatChoice `json:"choices"`
	Usage   openAIUsage        `json:"usage"`
}

type openAIEmbedRequest struct {
	Model          string   `json:"model"`
	Input          []string `json:"input"`
	EncodingFormat string   `json:"encoding_format,omitempty"`
}

type openAIEmbedDatum struct {
	Index     int       `json:"index"`
	Embedding []float64 `json:"embedding"`
}

type openAIEmbedResponse struct {
	Data  []openAIEmbedDatum `json:"data"`
	Usage openAIUsage        `json:"usage"`
}

func buildOpenAIChatBody(req *LogicalRequest) ([]byte, error) {
	messages := make([]openAIChatMessage, 0, len(req.Messages))
	for _, m := range req.Messages {
		messages = append(messages, openAIChatMessage{Role: m.Role, Content: m.Content})
	}
	body := openAIChatRequest{
		Model:       req.Model,
		Messages:    messages,
		Temperature: req.Params.Temperature,
		MaxTokens:   req.Params.MaxTokens,
		TopP:        req.Params.TopP,
		Stream:      false,
	}
	raw, err := json.Marshal(body)
	if err != nil || len(req.Params.Extra) == 0 {
		return raw, err
	}
	merged := make(map[string]any)
	if err := json.Unmarshal(raw, &merged); err != nil {
		return nil, err
	}
	for k, v := range req.Params.Extra {
		if _, taken := merged[k]; !taken {
			merged[k] = v
		}
	}
	return json.Marshal(merged)
}

func parseOpenAIChatResponse(family string, raw []byte) (*NormalizedReply, error) {
	var resp openAIChatResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, &UpstreamFormatError{Family: family, Cause: err}
	}
	if len(resp.Choices) == 0 {
		return nil, &UpstreamFormatError{Family: family, Cause: fmt.Errorf("response had no choices")}
	}
	return &NormalizedReply{
		Kind: KindChat,
		Text: resp.Choices[0].Message.Content,
		Usage: TokenUsage{
			PromptTokens:     resp.Usage.PromptTokens,
			CompletionTokens: resp.Usage.CompletionTokens,
			TotalTokens:      resp.Usage.TotalTokens,
		},
	}, nil
}

func buildOpenAIEmbedBody(req *LogicalRequest) ([]byte, error) {
	body := openAIEmbedRequest{
		Model:          req.Model,
		Input:          req.Texts,
		EncodingFormat: req.Params.EncodingFormat,
	}
	return json.Marshal(body)
}

func parseOpenAIEmbedResponse(family string, raw []byte) (*NormalizedReply, error) {
	var resp openAIEmbedResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, &UpstreamFormatError{Family: family, Cause: err}
	}
	vectors := make([][]float64, len(resp.Data))
	for _, d := range resp.Data {
		if d.Index < 0 || d.Index >= len(vectors) {
			return nil, &UpstreamFormatError{Family: family, Cause: fmt.Errorf("embedding index %d out of range", d.Index)}
		}
		vectors[d.Index] = d.Embedding
	}
	return &NormalizedReply{
		Kind:    KindEmbed,
		Vectors: vectors,
		Usage: TokenUsage{
			PromptTokens: resp.Usage.PromptTokens,
			TotalTokens:  resp.Usage.TotalTokens,
		},
	}, nil
}

func (FamilyA) BuildRequest(inst *ProviderInstance, req *LogicalRequest) (string, string, map[string]string, []byte, error) {
	headers := map[string]string{
		"Content-Type":  "application/json",
		"Authorization": "Bearer " + inst.APIKey(),
	}
	switch req.Kind {
	case KindChat, KindGenerate:
		body, err := buildOpenAIChatBody(req)
		return "POST", inst.APIBase() + "/chat/completions", headers, body, err
	case KindEmbed:
		body, err := buildOpenAIEmbedBody(req)
		return "POST", inst.APIBase() + "/embeddings", headers, body, err
	default:
		return "", "", nil, nil, &ConfigError{Field: "kind", Message: fmt.Sprintf("family A does not support %q", req.Kind)}
	}
}

func (FamilyA) ParseResponse(kind Kind, raw []byte) (*NormalizedReply, error) {
	switch kind {
	case KindChat, KindGenerate:
		return parseOpenAIChatResponse("A", raw)
	case KindEmbed:
		return parseOpenAIEmbedResponse("A", raw)
	default:
		return nil, &UpstreamFormatError{Family: "A", Cause: fmt.Errorf("unsupported kind %q", kind)}
	}
}
