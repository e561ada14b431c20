package generation

import "context"

// SamplingConfig is the fixed sampling configuration for a model call.
type SamplingConfig struct {
	// Temperature controls randomness; the adapter always uses a low value.
	Temperature float32

	// MaxOutputTokens bounds the reply length.
	MaxOutputTokens int32
}

// Reply is the provider-neutral result of a model call.
type Reply struct {
	// Text is the raw reply text, possibly empty.
	Text string

	// BlockReason is set when the provider blocked the prompt (e.g. safety
	// filtering); empty otherwise.
	BlockReason string

	// FinishReason is the provider's reason for ending generation, when
	// surfaced.
	FinishReason string
}

// ModelClient is the boundary to the external generative model. This
// interface separates the adapter's parsing and bounding logic from any
// particular provider SDK.
type ModelClient interface {
	// Generate sends the prompt with the given sampling configuration and
	// returns the model's reply.
	Generate(ctx context.Context, prompt string, cfg SamplingConfig) (Reply, error)
}
