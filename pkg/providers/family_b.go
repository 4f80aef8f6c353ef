package providers

import "fmt"

// FamilyB is an Azure-OpenAI-style variant of family A's JSON shape: the
// same chat/embeddings bodies, but a versioned, deployment-scoped URL path
// and an api-key header instead of a bearer token.
type FamilyB struct {
	// APIVersion is the query-string api-version pinned for every call.
	APIVersion string
}

func (FamilyB) Family() string { return "B" }

func (FamilyB) Supports(kind Kind) bool {
	switch kind {
	case KindChat, KindGenerate, KindEmbed:
		return true
	default:
		return false
	}
}

func (f FamilyB) apiVersion() string {
	if f.APIVersion == "" {
		return "2024-02-01"
	}
	return f.APIVersion
}

func (f FamilyB) BuildRequest(inst *ProviderInstance, req *LogicalRequest) (string, string, map[string]string, []byte, error) {
	headers := map[string]string{
		"Content-Type": "application/json",
		"api-key":      inst.APIKey(),
	}
	// inst.Model() is the deployment name for this family; api_base already
	// carries the resource host.
	deployment := inst.Model()
	switch req.Kind {
	case KindChat, KindGenerate:
		body, err := buildOpenAIChatBody(req)
		url := fmt.Sprintf("%s/openai/deployments/%s/chat/completions?api-version=%s", inst.APIBase(), deployment, f.apiVersion())
		return "POST", url, headers, body, err
	case KindEmbed:
		body, err := buildOpenAIEmbedBody(req)
		url := fmt.Sprintf("%s/openai/deployments/%s/embeddings?api-version=%s", inst.APIBase(), deployment, f.apiVersion())
		return "POST", url, headers, body, err
	default:
		return "", "", nil, nil, &ConfigError{Field: "kind", Message: fmt.Sprintf("family B does not support %q", req.Kind)}
	}
}

func (FamilyB) ParseResponse(kind Kind, raw []byte) (*NormalizedReply, error) {
	switch kind {
	case KindChat, KindGenerate:
		return parseOpenAIChatResponse("B", raw)
	case KindEmbed:
		return parseOpenAIEmbedResponse("B", raw)
	default:
		return nil, &UpstreamFormatError{Family: "B", Cause: fmt.Errorf("unsupported kind %q", kind)}
	}
}
