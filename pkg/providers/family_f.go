package providers

import (
	"encoding/json"
	"fmt"
)

// FamilyF is an OpenAI-style chat adapter whose embeddings endpoint returns
// vectors aligned with input order rather than carrying an explicit index
// per datum.
type FamilyF struct{}

func (FamilyF) Family() string { return "F" }

func (FamilyF) Supports(kind Kind) bool {
	switch kind {
	case KindChat, KindGenerate, KindEmbed:
		return true
	default:
		return false
	}
}

type familyFEmbedDatum struct {
	Embedding []float64 `json:"embedding"`
}

type familyFEmbedResponse struct {
	Data  []familyFEmbedDatum `json:"data"`
	Usage openAIUsage         `json:"usage"`
}

func (FamilyF) BuildRequest(inst *ProviderInstance, req *LogicalRequest) (string, string, map[string]string, []byte, error) {
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
		return "", "", nil, nil, &ConfigError{Field: "kind", Message: fmt.Sprintf("family F does not support %q", req.Kind)}
	}
}

func (FamilyF) ParseResponse(kind Kind, raw []byte) (*NormalizedReply, error) {
	switch kind {
	case KindChat, KindGenerate:
		return parseOpenAIChatResponse("F", raw)
	case KindEmbed:
		var resp familyFEmbedResponse
		if err := json.Unmarshal(raw, &resp); err != nil {
			return nil, &UpstreamFormatError{Family: "F", Cause: err}
		}
		vectors := make([][]float64, len(resp.Data))
		for i, d := range resp.Data {
			vectors[i] = d.Embedding
		}
		return &NormalizedReply{
			Kind:    KindEmbed,
			Vectors: vectors,
			Usage: TokenUsage{
				PromptTokens: resp.Usage.PromptTokens,
				TotalTokens:  resp.Usage.TotalTokens,
			},
		}, nil
	default:
		return nil, &UpstreamFormatError{Family: "F", Cause: fmt.Errorf("unsupported kind %q", kind)}
	}
}
