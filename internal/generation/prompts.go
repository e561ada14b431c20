package generation

import "fmt"

// MaxInputChars is the ceiling on normalized text handed to the model,
// applied at this boundary regardless of any bounding done upstream.
const MaxInputChars = 25000

const flashcardPromptFormat = `You are a study assistant that turns source material into flashcards.

Create maximal %d flashcards from the source text below. Cover the most important facts and concepts first.

Respond with a single JSON array and absolutely nothing else: no introduction, no explanation, no markdown code fences. Each element of the array must be an object with exactly these fields:
- "front": string, a clear question or prompt about the material
- "back": string, the concise answer

Never put unescaped line breaks inside a string value.

Source text:
%s`

const quizPromptFormat = `You are a study assistant that turns source material into a multiple-choice quiz.

Create maximal %d quiz questions from the source text below.

Respond with a single JSON array and absolutely nothing else: no introduction, no explanation, no markdown code fences. Each element of the array must be an object with exactly these fields:
- "question": string, the question text
- "options": array of exactly 4 strings
- "correctAnswerIndices": array of integers between 0 and 3, the positions of the correct options

Every question must have at least one correct option. The incorrect options must be plausible but clearly wrong to someone who knows the material; never make them obviously absurd.

Never put unescaped line breaks inside a string value.

Source text:
%s`

func flashcardPrompt(text string, count int) string {
	return fmt.Sprintf(flashcardPromptFormat, count, text)
}

func quizPrompt(text string, count int) string {
	return fmt.Sprintf(quizPromptFormat, count, text)
}
