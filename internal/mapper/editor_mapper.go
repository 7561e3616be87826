package mapper

import (
	"github.com/Aditya0026/collaborative-editor/internal/dto"
	"github.com/Aditya0026/collaborative-editor/pkg/document"
	"github.com/Aditya0026/collaborative-editor/pkg/editor"

	"github.com/google/uuid"
)

func ToRangeDTO(r document.Range) dto.RangeDTO {
	return dto.RangeDTO{From: r.From, To: r.To}
}

func ToDocumentDTO(buf *document.Buffer) dto.DocumentResponse {
	return dto.DocumentResponse{
		Content:   buf.Text(),
		Length:    buf.Length(),
		Selection: ToRangeDTO(buf.Selection()),
	}
}

func ToChatMessageDTO(msg editor.ChatMessage) dto.ChatMessageResponse {
	out := dto.ChatMessageResponse{
		Id:        msg.Id,
		Role:      msg.Role,
		Content:   msg.Content,
		CreatedAt: msg.CreatedAt,
	}
	for _, tr := range msg.ToolResults {
		switch action := tr.Action.(type) {
		case editor.AppendAction:
			out.ToolResults = append(out.ToolResults, dto.ToolResultDTO{
				ToolName: tr.ToolName,
				Result:   dto.ToolResultOut{Type: "append", Content: action.Content},
			})
		case editor.ReplaceAction:
			out.ToolResults = append(out.ToolResults, dto.ToolResultDTO{
				ToolName: tr.ToolName,
				Result:   dto.ToolResultOut{Type: "replace", Content: action.Content},
			})
		}
	}
	return out
}

func ToChatMessageDTOs(msgs []editor.ChatMessage) []dto.ChatMessageResponse {
	out := make([]dto.ChatMessageResponse, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, ToChatMessageDTO(m))
	}
	return out
}

func ToPreviewDTO(p editor.Preview) dto.PreviewResponse {
	resp := dto.PreviewResponse{
		Original:   p.Original,
		Suggestion: p.Suggestion,
		Selection:  ToRangeDTO(p.Selection),
		Phase:      string(p.Phase),
		Error:      p.Err,
	}
	if p.RequestID != uuid.Nil {
		resp.RequestId = p.RequestID.String()
	}
	return resp
}
