package generate

import "strings"

// DefaultSystem is used when neither configuration nor the request
// supplies a system prompt.
const DefaultSystem = `You are a writing assistant embedded in a note-taking tool. The user message contains a note, optionally followed by a "Linked context:" section holding the content of notes it references. Continue or transform the note as it implies. Ground your output in the linked context where relevant. Respond with the generated text only, no preamble.`

// BuildPrompt frames expanded note content as the user message.
func BuildPrompt(notePath, text string) string {
	var sb strings.Builder
	sb.WriteString("Note: ")
	sb.WriteString(notePath)
	sb.WriteString("\n---\n")
	sb.WriteString(text)
	return sb.String()
}
