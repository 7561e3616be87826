package document

// seedTemplate is the fixed initial content for new editing sessions.
// It mirrors the onboarding document of the web editor.
const seedTemplate = `Welcome to the AI-Powered Collaborative Editor

This is a modern text editor with advanced AI integration. Here are some features to try:

- Select any text to see the floating toolbar with AI editing options
- Use the chat sidebar to interact with the AI assistant
- Ask the AI to search the web and insert information directly into your document
- Request specific text improvements like "make this more professional" or "shorten this paragraph"

Try asking: "Search for the latest developments in AI and insert a summary here" or select this paragraph and use the floating toolbar!

Example Commands:

- "Find the latest news about Next.js 15 and insert it below"
- "Search for React best practices and add them to this document"
- "What are the current trends in web development?"
`

// Seed returns a buffer pre-filled with the onboarding template.
func Seed() *Buffer {
	return NewBuffer(normalizeNewlines(seedTemplate))
}
