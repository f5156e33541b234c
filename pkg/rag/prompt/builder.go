package prompt

import (
	"fmt"
	"strings"

	"ragchat-be/internal/entity"
)

// BuildGrounded assembles the completion prompt for one chat turn: the
// retrieved documents as the only allowed data source, then the question.
func BuildGrounded(query string, results []entity.SearchResult) string {
	var b strings.Builder

	b.WriteString("<grounded_reference_material>\n")
	b.WriteString("CRITICAL: This is the ONLY data source. Do NOT use outside knowledge.\n")
	b.WriteString("Each document is separated by headers. Treat them as distinct sources.\n\n")
	for i, res := range results {
		label := res.Document.Title
		if label == "" {
			label = fmt.Sprintf("Document %d", i+1)
		}
		b.WriteString(fmt.Sprintf("\n--- CONTENT OF: %s ---\n", label))
		b.WriteString(res.Document.Text)
		b.WriteString(fmt.Sprintf("\n--- END OF: %s ---\n", label))
	}
	b.WriteString("</grounded_reference_material>\n\n")

	b.WriteString("<task_instructions>\n")
	b.WriteString("You are a diligent assistant answering based on the provided content.\n")
	b.WriteString("1. Answer ONLY using the text in <grounded_reference_material>.\n")
	b.WriteString("2. Answer directly; never ask 'Do you want me to...'.\n")
	b.WriteString("3. If the material does not cover the question, say so briefly.\n")
	b.WriteString("4. Do NOT emit citation markers; citations are handled separately by the system.\n")
	b.WriteString("</task_instructions>\n\n")

	b.WriteString("Question: ")
	b.WriteString(query)
	return b.String()
}

// BuildSuggestions asks the model for three short follow-up questions,
// phrased as the user would type them, returned as a plain JSON array.
func BuildSuggestions(history []entity.Message) string {
	var b strings.Builder

	b.WriteString("Based on the conversation below, generate 3 short, concise questions ")
	b.WriteString("(at most 8 words each) that deepen the topic or explore related aspects. ")
	b.WriteString("The questions will be used as user input to continue the conversation, ")
	b.WriteString("so write them as an interested user would. Prioritize the most recent messages.\n\n")

	b.WriteString("Conversation history:\n")
	for _, msg := range history {
		b.WriteString(fmt.Sprintf("%s: %s\n", msg.Role, msg.Content))
	}

	b.WriteString("\nRespond with ONLY a JSON array of 3 strings, e.g. ")
	b.WriteString(`["...","...","..."]`)
	return b.String()
}
