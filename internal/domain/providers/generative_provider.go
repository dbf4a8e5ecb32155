package providers

import (
	"context"
	"errors"
)

// Sentinel errors reported by generative providers. Callers use these to
// decide retry behavior and client-facing status codes; auth and quota
// failures are never retried.
var (
	ErrGenerativeUnauthorized = errors.New("generative provider rejected credentials")
	ErrGenerativeQuota        = errors.New("generative provider quota exceeded")
	ErrGenerativeUnavailable  = errors.New("generative provider unavailable")
	ErrGenerativeEmpty        = errors.New("generative provider returned no text")
)

// Prompt is a rendered instruction pair for a constrained-JSON generation.
type Prompt struct {
	System string
	User   string
}

// GenerativeProvider generates constrained JSON from a prompt. The returned
// text has markdown code fences already stripped but is otherwise raw: the
// caller is responsible for parsing and schema validation.
type GenerativeProvider interface {
	GenerateAnalysis(ctx context.Context, prompt Prompt) (string, error)
}
