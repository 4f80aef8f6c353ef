package providers

import "fmt"

// FamilyE is an OpenAI-style chat adapter with no embeddings endpoint.
type FamilyE struct{}

func (FamilyE) Family() string { return "E" }

func (FamilyE) Supports(kind Kind) bool {
	switch kind {
	case KindChat, KindGenerate:
		return true
	default:
		return false
	}
}

func (FamilyE) BuildRequest(inst *ProviderInstance, req *LogicalRequest) (string, string, map[string]string, []byte, error) {
	if req.Kind != KindChat && req.Kind != KindGenerate {
		return "", "", nil, nil, &ConfigError{Field: "kind", Message: fmt.Sprintf("family E does not support %q", req.Kind)}
	}
	headers := map[string]string{
		"Content-Type":  "application/json",
		"Authorization": "Bearer " + inst.APIKey(),
	}
	body, err := buildOpenAIChatBody(req)
	return "POST", inst.APIBase() + "/chat/completions", headers, body, err
}

func (FamilyE) ParseResponse(kind Kind, raw []byte) (*NormalizedReply, error) {
	if kind != KindChat && kind != KindGenerate {
		return nil, &UpstreamFormatError{Family: "E", Cause: fmt.Errorf("unsupported kind %q", kind)}
	}
	return parseOpenAIChatResponse("E", raw)
}
