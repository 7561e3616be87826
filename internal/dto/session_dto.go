package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateSessionResponse struct {
	Id string `json:"id"`
}

type DocumentResponse struct {
	Content   string   `json:"content"`
	Length    int      `json:"length"`
	Selection RangeDTO `json:"selection"`
}

type RangeDTO struct {
	From int `json:"from"`
	To   int `json:"to"`
}

type PointDTO struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type ChatMessageResponse struct {
	Id          uuid.UUID       `json:"id"`
	Role        string          `json:"role"`
	Content     string          `json:"content"`
	CreatedAt   time.Time       `json:"created_at"`
	ToolResults []ToolResultDTO `json:"tool_results,omitempty"`
}

type ToolResultDTO struct {
	ToolName string        `json:"toolName"`
	Result   ToolResultOut `json:"result"`
}

type ToolResultOut struct {
	Type    string `json:"type"`
	Content string `json:"content"`
}

type UndoRedoResponse struct {
	Applied  bool             `json:"applied"`
	Document DocumentResponse `json:"document"`
}
