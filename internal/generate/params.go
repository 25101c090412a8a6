package generate

// Params are the resolved generation parameters for one request.
type Params struct {
	Model        string  `json:"model,omitempty"`
	System       string  `json:"system,omitempty"`
	MaxTokens    int     `json:"max_tokens,omitempty"`
	Temperature  float64 `json:"temperature,omitempty"`
	Continuation string  `json:"continuation,omitempty"`
}

const (
	defaultMaxTokens = 4096
	maxMaxTokens     = 64000
)

// ResolveParams merges per-request overrides onto configured defaults and
// clamps the result to sane bounds.
func ResolveParams(base, override Params) Params {
	out := base
	if override.Model != "" {
		out.Model = override.Model
	}
	if override.System != "" {
		out.System = override.System
	}
	if override.MaxTokens > 0 {
		out.MaxTokens = override.MaxTokens
	}
	if override.Temperature > 0 {
		out.Temperature = override.Temperature
	}
	out.Continuation = override.Continuation

	if out.MaxTokens <= 0 || out.MaxTokens > maxMaxTokens {
		out.MaxTokens = defaultMaxTokens
	}
	if out.Temperature < 0 {
		out.Temperature = 0
	}
	if out.Temperature > 1 {
		out.Temperature = 1
	}
	return out
}
