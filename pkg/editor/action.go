package editor

import "fmt"

// Action selects the rewrite instruction for a suggestion request.
type Action string

const (
	ActionEdit         Action = "edit"
	ActionImprove      Action = "improve"
	ActionShorten      Action = "shorten"
	ActionExpand       Action = "expand"
	ActionProfessional Action = "professional"
	ActionCasual       Action = "casual"
)

var instructionTemplates = map[Action]string{
	ActionEdit:         `Please improve and edit this text while maintaining its core meaning. Make it more clear, concise, and engaging: "%s"`,
	ActionImprove:      `Please enhance this text by improving its vocabulary, flow, and overall quality while keeping the same message: "%s"`,
	ActionShorten:      `Please make this text more concise while preserving all important information: "%s"`,
	ActionExpand:       `Please expand on this text with more detail and context: "%s"`,
	ActionProfessional: `Please rewrite this text in a more professional tone: "%s"`,
	ActionCasual:       `Please rewrite this text in a more casual, friendly tone: "%s"`,
}

// InstructionFor renders the prompt for an action. Unknown actions fall
// back to the edit template; this is a silent default, not an error.
func InstructionFor(action Action, text string) string {
	tmpl, ok := instructionTemplates[action]
	if !ok {
		tmpl = instructionTemplates[ActionEdit]
	}
	return fmt.Sprintf(tmpl, text)
}

// KnownAction reports whether the action is one of the six recognized
// values. Callers use it for logging only, never to reject.
func KnownAction(action Action) bool {
	_, ok := instructionTemplates[action]
	return ok
}
