package editor

import (
	"strings"
	"testing"
)

func TestInstructionFor(t *testing.T) {
	tests := []struct {
		name     string
		action   Action
		wantPart string
	}{
		{name: "shorten", action: ActionShorten, wantPart: "more concise"},
		{name: "expand", action: ActionExpand, wantPart: "expand on this text"},
		{name: "improve", action: ActionImprove, wantPart: "vocabulary, flow"},
		{name: "professional", action: ActionProfessional, wantPart: "professional tone"},
		{name: "casual", action: ActionCasual, wantPart: "casual, friendly tone"},
		{name: "edit", action: ActionEdit, wantPart: "improve and edit"},
		{name: "unknown falls back to edit", action: Action("summarize"), wantPart: "improve and edit"},
		{name: "empty falls back to edit", action: Action(""), wantPart: "improve and edit"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := InstructionFor(tt.action, "some text")
			if !strings.Contains(got, tt.wantPart) {
				t.Errorf("InstructionFor(%q) = %q, want substring %q", tt.action, got, tt.wantPart)
			}
			if !strings.Contains(got, `"some text"`) {
				t.Errorf("InstructionFor(%q) does not embed the selected text: %q", tt.action, got)
			}
		})
	}
}

func TestKnownAction(t *testing.T) {
	for _, a := range []Action{ActionEdit, ActionImprove, ActionShorten, ActionExpand, ActionProfessional, ActionCasual} {
		if !KnownAction(a) {
			t.Errorf("KnownAction(%q) = false", a)
		}
	}
	if KnownAction(Action("summarize")) {
		t.Errorf("KnownAction(summarize) = true")
	}
}
