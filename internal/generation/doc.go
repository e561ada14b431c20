// Package generation turns normalized text into validated flashcard or quiz
// records via an external LLM. It abstracts the model behind the ModelClient
// interface (implemented for Gemini in internal/platform/gemini), builds the
// directive prompts, and defensively parses the model's free-form reply:
// boundary extraction of the outermost JSON array, schema decoding, advisory
// per-record validation, and bounding to the requested count.
package generation
