package translate

import (
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

const promptTemplate = `You are an expert American comic translator and localization editor.
Context about the comic: %CONTEXT%

Task:
- Translate the input English (often OCR text) into fluent Simplified Chinese suitable for comic speech balloons.

Rules:
1. Prefer natural Chinese phrasing; do NOT translate word-for-word.
2. Maintain the speaker's tone, emotion, and rhythm.
3. Proper nouns: prioritize official DC/Marvel Chinese names (heroes, villains, organizations, locations, aliases). If uncertain, keep the original English (or transliterate).
4. OCR artifacts: treat line breaks and stray periods as layout markers, not sentence boundaries. Re-segment by meaning.
5. Output formatting:
   - Use standard Chinese punctuation（，。！？…）
   - Do NOT put every short phrase on its own line.
   - Only use line breaks to separate different speakers or different speech bubbles/paragraphs.
   - Inside a paragraph, do NOT insert manual line breaks.
   - If the text likely comes from multiple bubbles, merge into 1-2 coherent paragraphs when possible.
6. Return ONLY the translated text. No explanations. Do NOT wrap the whole output in quotes.`

// systemPrompt renders the translation instructions with the user's comic
// context (series, characters, setting) baked in.
func systemPrompt(context string) string {
	return strings.Replace(promptTemplate, "%CONTEXT%", context, 1)
}

// userTextPart builds the text portion of the user message. With no OCR
// text and vision enabled the model is asked to read the image itself.
func userTextPart(req Request) openai.ChatMessagePart {
	text := "Original Text:\n"
	switch {
	case strings.TrimSpace(req.Text) != "":
		text += req.Text
	case req.UseVision && req.Image != nil:
		text = "Please read the English text in the image and translate it to Simplified Chinese."
	}
	return openai.ChatMessagePart{Type: openai.ChatMessagePartTypeText, Text: text}
}
