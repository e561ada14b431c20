// Package gemini adapts Google's Gemini API to the generation.ModelClient
// interface. It owns all genai SDK specifics so the rest of the codebase
// stays provider-neutral.
package gemini
