package editor

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ToolInsertToEditor is the only document-mutation tool the assistant
// can invoke.
const ToolInsertToEditor = "insertToEditor"

// ToolAction is the tagged payload of a tool result. The closed set of
// variants keeps dispatch exhaustive instead of string-tag driven.
type ToolAction interface {
	actionType() string
}

// AppendAction inserts content after end-of-document.
type AppendAction struct {
	Content string
}

// ReplaceAction replaces the selection captured when the turn was
// sent.
type ReplaceAction struct {
	Content string
}

func (AppendAction) actionType() string  { return "append" }
func (ReplaceAction) actionType() string { return "replace" }

// ToolResult pairs a tool name with its parsed action.
type ToolResult struct {
	ToolName string
	Action   ToolAction
}

// MarshalJSON emits the wire shape the web client renders:
// {"toolName": ..., "result": {"type": ..., "content": ...}}.
func (t ToolResult) MarshalJSON() ([]byte, error) {
	var content string
	switch a := t.Action.(type) {
	case AppendAction:
		content = a.Content
	case ReplaceAction:
		content = a.Content
	default:
		return nil, fmt.Errorf("unknown tool action %T", t.Action)
	}
	return json.Marshal(map[string]interface{}{
		"toolName": t.ToolName,
		"result": map[string]string{
			"type":    t.Action.actionType(),
			"content": content,
		},
	})
}

type toolResultWire struct {
	ToolName string `json:"toolName"`
	Result   struct {
		Type    string `json:"type"`
		Content string `json:"content"`
	} `json:"result"`
}

type toolEnvelopeWire struct {
	ToolResults []toolResultWire `json:"toolResults"`
}

// ParseToolDirectives splits an assistant reply into its displayable
// text and any tool results carried in a trailing fenced JSON block.
// Replies without a directive block pass through unchanged.
func ParseToolDirectives(reply string) (string, []ToolResult) {
	block, rest, found := extractTrailingFence(reply)
	if !found {
		return reply, nil
	}

	var envelope toolEnvelopeWire
	if err := json.Unmarshal([]byte(block), &envelope); err != nil || len(envelope.ToolResults) == 0 {
		// Not a directive block after all; leave the reply intact.
		return reply, nil
	}

	results := make([]ToolResult, 0, len(envelope.ToolResults))
	for _, w := range envelope.ToolResults {
		if w.ToolName != ToolInsertToEditor {
			continue
		}
		switch w.Result.Type {
		case "append":
			results = append(results, ToolResult{ToolName: w.ToolName, Action: AppendAction{Content: w.Result.Content}})
		case "replace":
			results = append(results, ToolResult{ToolName: w.ToolName, Action: ReplaceAction{Content: w.Result.Content}})
		}
	}

	return strings.TrimSpace(rest), results
}

// extractTrailingFence returns the content of a ```/```json block at
// the end of the reply and the text before it.
func extractTrailingFence(reply string) (block, rest string, found bool) {
	trimmed := strings.TrimSpace(reply)
	if !strings.HasSuffix(trimmed, "```") {
		return "", reply, false
	}

	body := strings.TrimSuffix(trimmed, "```")
	idx := strings.LastIndex(body, "```")
	if idx < 0 {
		return "", reply, false
	}

	block = body[idx+3:]
	block = strings.TrimPrefix(block, "json")
	block = strings.TrimSpace(block)

	rest = body[:idx]
	return block, rest, true
}
