package providers

import (
	"encoding/json"
	"fmt"
)

// FamilyD is a Gemini-style adapter: the model id is a path suffix, the
// request body carries contents/parts instead of a flat messages list, and
// embeddings live under a separate path producing a "values" vector.
type FamilyD struct{}

func (FamilyD) Family() string { return "D" }

func (FamilyD) Supports(kind Kind) bool {
	switch kind {
	case KindChat, KindGenerate, KindEmbed:
		return true
	default:
		return false
	}
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiGenerationConfig struct {
	Temperature     *float64 `json:"temperature,omitempty"`
	TopP            *float64 `json:"topP,omitempty"`
	MaxOutputTokens *int     `json:"maxOutputTokens,omitempty"`
}

type geminiRequest struct {
	Contents         []geminiContent         `json:"contents"`
	GenerationConfig *geminiGenerationConfig `json:"generationConfig,omitempty"`
}

type geminiCandidate struct {
	Content geminiContent `json:"content"`
}

type geminiUsageMetadata struct {
	PromptTokenCount     int `json:"promptTokenCount"`
	CandidatesTokenCount int `json:"candidatesTokenCount"`
	TotalTokenCount      int `json:"totalTokenCount"`
}

type geminiResponse struct {
	Candidates    []geminiCandidate   `json:"candidates"`
	UsageMetadata geminiUsageMetadata `json:"usageMetadata"`
}

type geminiEmbedRequest struct {
	Content geminiContent `json:"content"`
}

type geminiEmbedResponse struct {
	Embedding struct {
		Values []float64 `json:"values"`
	} `json:"embedding"`
}

func geminiRoleFor(role string) string {
	if role == RoleAssistant {
		return "model"
	}
	return "user"
}

func (FamilyD) BuildRequest(inst *ProviderInstance, req *LogicalRequest) (string, string, map[string]string, []byte, error) {
	headers := map[string]string{"Content-Type": "application/json"}

	switch req.Kind {
	case KindChat, KindGenerate:
		contents := make([]geminiContent, 0, len(req.Messages))
		for _, m := range req.Messages {
			if m.Role == RoleSystem {
				// no distinct system channel modeled for this family; fold
				// it in as a leading user turn.
				contents = append(contents, geminiContent{Role: "user", Parts: []geminiPart{{Text: m.Content}}})
				continue
			}
			contents = append(contents, geminiContent{Role: geminiRoleFor(m.Role), Parts: []geminiPart{{Text: m.Content}}})
		}
		cfg := &geminiGenerationConfig{
			Temperature:     req.Params.Temperature,
			TopP:            req.Params.TopP,
			MaxOutputTokens: req.Params.MaxTokens,
		}
		body, err := json.Marshal(geminiRequest{Contents: contents, GenerationConfig: cfg})
		if err != nil {
			return "", "", nil, nil, err
		}
		url := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s", inst.APIBase(), req.Model, inst.APIKey())
		return "POST", url, headers, body, nil

	case KindEmbed:
		if len(req.Texts) != 1 {
			return "", "", nil, nil, &ConfigError{Field: "texts", Message: "family D embeds one text per call"}
		}
		body, err := json.Marshal(geminiEmbedRequest{
			Content: geminiContent{Parts: []geminiPart{{Text: req.Texts[0]}}},
		})
		if err != nil {
			return "", "", nil, nil, err
		}
		url := fmt.Sprintf("%s/v1beta/models/%s:embedContent?key=%s", inst.APIBase(), req.Model, inst.APIKey())
		return "POST", url, headers, body, nil

	default:
		return "", "", nil, nil, &ConfigError{Field: "kind", Message: fmt.Sprintf("family D does not support %q", req.Kind)}
	}
}

func (FamilyD) ParseResponse(kind Kind, raw []byte) (*NormalizedReply, error) {
	switch kind {
	case KindChat, KindGenerate:
		var resp geminiResponse
		if err := json.Unmarshal(raw, &resp); err != nil {
			return nil, &UpstreamFormatError{Family: "D", Cause: err}
		}
		if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
			return nil, &UpstreamFormatError{Family: "D", Cause: fmt.Errorf("response had no candidates")}
		}
		var text string
		for _, part := range resp.Candidates[0].Content.Parts {
			text += part.Text
		}
		return &NormalizedReply{
			Kind: KindChat,
			Text: text,
			Usage: TokenUsage{
				PromptTokens:     resp.UsageMetadata.PromptTokenCount,
				CompletionTokens: resp.UsageMetadata.CandidatesTokenCount,
				TotalTokens:      resp.UsageMetadata.TotalTokenCount,
			},
		}, nil

	case KindEmbed:
		var resp geminiEmbedResponse
		if err := json.Unmarshal(raw, &resp); err != nil {
			return nil, &UpstreamFormatError{Family: "D", Cause: err}
		}
		return &NormalizedReply{
			Kind:    KindEmbed,
			Vectors: [][]float64{resp.Embedding.Values},
		}, nil

	default:
		return nil, &UpstreamFormatError{Family: "D", Cause: fmt.Errorf("unsupported kind %q", kind)}
	}
}
