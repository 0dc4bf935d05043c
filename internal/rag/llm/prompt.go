package llm

import (
	"fmt"
	"strings"

	"github.com/Wissal65/RAG-Application/internal/config"
)

// BuildQueryPrompt assembles the user prompt: retrieved excerpts first, then
// recent conversation turns, then the question.
func BuildQueryPrompt(query string, matches []string, messageHistory []string) string {
	var b strings.Builder

	b.WriteString("Document excerpts:\n")
	b.WriteString(strings.Join(matches, "\n---\n"))

	if len(messageHistory) > 0 {
		b.WriteString("\n\nRecent conversation (JSON, question and answer pairs):\n")
		b.WriteString(strings.Join(messageHistory, "\n"))
	}

	b.WriteString(fmt.Sprintf("\n\nUser Question: %s", query))
	return b.String()
}

// BuildSummaryPrompt truncates the document to the configured input limit.
func BuildSummaryPrompt(text string) string {
	if len(text) > config.SummaryInputLimit {
		text = text[:config.SummaryInputLimit] + "..."
	}
	return fmt.Sprintf("Please provide a concise summary of the following document. Include the main topics, key points, and important information. Keep the summary under %d words.\n\nDocument:\n%s\n\nSummary:", config.SummaryMaxWords, text)
}
