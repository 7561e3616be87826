package editor

import (
	"encoding/json"
	"testing"
)

func TestParseToolDirectives(t *testing.T) {
	tests := []struct {
		name        string
		reply       string
		wantContent string
		wantResults int
	}{
		{
			name:        "plain reply passes through",
			reply:       "Just chatting, no document changes.",
			wantContent: "Just chatting, no document changes.",
			wantResults: 0,
		},
		{
			name: "json fenced directive",
			reply: "Here you go.\n```json\n" +
				`{"toolResults":[{"toolName":"insertToEditor","result":{"type":"append","content":"new text"}}]}` +
				"\n```",
			wantContent: "Here you go.",
			wantResults: 1,
		},
		{
			name: "bare fence without language tag",
			reply: "Done.\n```\n" +
				`{"toolResults":[{"toolName":"insertToEditor","result":{"type":"replace","content":"x"}}]}` +
				"\n```",
			wantContent: "Done.",
			wantResults: 1,
		},
		{
			name:        "trailing code fence that is not a directive",
			reply:       "Use this snippet:\n```go\nfmt.Println(\"hi\")\n```",
			wantContent: "Use this snippet:\n```go\nfmt.Println(\"hi\")\n```",
			wantResults: 0,
		},
		{
			name: "unknown tool name skipped",
			reply: "Hm.\n```json\n" +
				`{"toolResults":[{"toolName":"deleteEverything","result":{"type":"append","content":"x"}}]}` +
				"\n```",
			wantContent: "Hm.",
			wantResults: 0,
		},
		{
			name: "unknown action type skipped",
			reply: "Hm.\n```json\n" +
				`{"toolResults":[{"toolName":"insertToEditor","result":{"type":"prepend","content":"x"}}]}` +
				"\n```",
			wantContent: "Hm.",
			wantResults: 0,
		},
		{
			name:        "malformed json left intact",
			reply:       "Oops.\n```json\n{not valid json\n```",
			wantContent: "Oops.\n```json\n{not valid json\n```",
			wantResults: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			content, results := ParseToolDirectives(tt.reply)
			if content != tt.wantContent {
				t.Errorf("content = %q, want %q", content, tt.wantContent)
			}
			if len(results) != tt.wantResults {
				t.Errorf("results = %d, want %d", len(results), tt.wantResults)
			}
		})
	}
}

func TestParseToolDirectivesActions(t *testing.T) {
	reply := "Both.\n```json\n" +
		`{"toolResults":[` +
		`{"toolName":"insertToEditor","result":{"type":"append","content":"tail"}},` +
		`{"toolName":"insertToEditor","result":{"type":"replace","content":"body"}}` +
		`]}` + "\n```"

	_, results := ParseToolDirectives(reply)
	if len(results) != 2 {
		t.Fatalf("results = %d, want 2", len(results))
	}

	app, ok := results[0].Action.(AppendAction)
	if !ok || app.Content != "tail" {
		t.Errorf("first action = %#v", results[0].Action)
	}
	rep, ok := results[1].Action.(ReplaceAction)
	if !ok || rep.Content != "body" {
		t.Errorf("second action = %#v", results[1].Action)
	}
}

func TestToolResultMarshal(t *testing.T) {
	tr := ToolResult{ToolName: ToolInsertToEditor, Action: AppendAction{Content: "hello"}}

	data, err := json.Marshal(tr)
	if err != nil {
		t.Fatalf("Marshal error: %v", err)
	}

	want := `{"result":{"content":"hello","type":"append"},"toolName":"insertToEditor"}`
	if string(data) != want {
		t.Errorf("Marshal = %s, want %s", data, want)
	}
}
