package providers

// Kind identifies which operation a LogicalRequest carries out.
type Kind string

const (
	KindChat     Kind = "chat"
	KindGenerate Kind = "generate"
	KindEmbed    Kind = "embed"
)

// Message role constants.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is a single turn in a conversation, provider-agnostic until an
// adapter transforms it into its family's wire shape.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Params carries the recognized, forwarded call parameters plus any
// vendor-specific extras a caller wants passed through transparently.
type Params struct {
	Temperature    *float64
	MaxTokens      *int
	TopP           *float64
	EncodingFormat string

	// Extra holds parameters outside the recognized set. The OpenAI-shaped
	// chat body (families A, B, E and F) adds them as top-level fields,
	// never overriding a field it already sets; the other request bodies do
	// not carry them.
	Extra map[string]any
}

// LogicalRequest is the normalized call shape the Load Balancer dispatches
// through an Adapter. Exactly one of Messages, Prompt, or Texts is set,
// matching Kind.
type LogicalRequest struct {
	ID     string
	Kind   Kind
	Model  string
	Params Params

	// Pin restricts selection to one family; empty means any enabled family.
	Pin string

	Messages []Message // chat
	Prompt   string     // generate (wrapped into a single user message by the facade)
	Texts    []string   // embed (single input is a length-1 slice)
}

// TokenUsage tracks token consumption reported by an upstream. Families
// that omit usage from their response leave this zeroed.
type TokenUsage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// NormalizedReply is the adapter's parsed result, kind-matched to the
// LogicalRequest that produced it.
type NormalizedReply struct {
	Kind Kind

	Text       string      // chat / generate
	Vectors    [][]float64 // embed, order-aligned with the request's Texts
	Usage      TokenUsage
	ProviderID string // instance identifier that served the request
}

// Adapter translates one LogicalRequest into an HTTP call for one upstream
// family and parses its reply. Adapters are pure and stateless; they never
// retry — a single HTTP attempt per call into the adapter, per family.
type Adapter interface {
	// Family returns the adapter's family tag (e.g. "A").
	Family() string

	// Supports reports whether this family implements the given kind.
	Supports(kind Kind) bool

	// BuildRequest returns the HTTP method, URL, headers, and JSON body for
	// dispatching req against inst.
	BuildRequest(inst *ProviderInstance, req *LogicalRequest) (method, url string, headers map[string]string, body []byte, err error)

	// ParseResponse parses a 2xx HTTP response body into a NormalizedReply.
	ParseResponse(kind Kind, respBody []byte) (*NormalizedReply, error)
}
