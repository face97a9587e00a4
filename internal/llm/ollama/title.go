package ollama

import (
	"fmt"
	"regexp"
	"strings"
)

var thinkBlock = regexp.MustCompile(`(?s)^<think>.*?</think>(\s*)`)

// TitlePrompt asks the model to summarize prompt as a short conversation title.
func TitlePrompt(prompt string) string {
	return fmt.Sprintf(
		"Generate a concise and informative title (at most 10 words) summarizing the prompt. "+
			"Respond with only the title as plain text. Do not include any explanations, formatting, "+
			"or additional content. The prompt to summarize is: ```%s```",
		prompt,
	)
}

// CleanTitle strips a leading reasoning block and surrounding quote or emphasis marks.
func CleanTitle(raw string) string {
	title := thinkBlock.ReplaceAllString(strings.TrimSpace(raw), "")
	title = strings.TrimSpace(title)
	title = strings.Trim(title, `"`)
	title = strings.Trim(title, "*")
	return strings.TrimSpace(title)
}

const untitled = "New chat"

// SessionTitle builds the stored conversation title from the model name and raw title output.
func SessionTitle(model, raw string) string {
	title := CleanTitle(raw)
	if title == "" {
		title = untitled
	}
	return model + ": " + title
}
