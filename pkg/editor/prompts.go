package editor

import "fmt"

const chatSystemPrompt = `You are an AI assistant integrated into a collaborative text editor. You can:

1. Have normal conversations with users
2. Help improve and edit text
3. Provide suggestions and feedback
4. Insert content directly into the user's document

Be helpful, concise, and professional.

When the user asks you to add content to their document, finish your reply with a fenced json block in exactly this shape:

` + "```json" + `
{"toolResults":[{"toolName":"insertToEditor","result":{"type":"append","content":"<text to insert>"}}]}
` + "```" + `

Use "type":"replace" instead of "append" when the user asks you to rewrite their current selection. Emit the block only when a document change was requested; otherwise reply with plain text.`

// ChatSystemPrompt builds the fixed assistant instructions, injecting
// the selected text as editing context when present.
func ChatSystemPrompt(selectedText string) string {
	if selectedText == "" {
		return chatSystemPrompt
	}
	return fmt.Sprintf("%s\n\nThe user has selected this text in the editor: %q", chatSystemPrompt, selectedText)
}

// Greeting is the assistant message every new session starts with.
const Greeting = "Hello! I'm your AI assistant with advanced capabilities. I can help you edit text and insert content directly into your editor. Try asking me to 'draft a summary and insert it' or select text and use the floating toolbar!"
