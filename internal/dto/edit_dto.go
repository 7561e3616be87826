package dto

type UpdateSelectionRequest struct {
	From int `json:"from" validate:"min=0"`
	To   int `json:"to" validate:"min=0"`
}

type SelectionStateResponse struct {
	Selection    RangeDTO  `json:"selection"`
	SelectedText string    `json:"selected_text"`
	Anchor       *PointDTO `json:"anchor,omitempty"`
}

type RequestEditRequest struct {
	Action string `json:"action" validate:"required"`
}

type PreviewResponse struct {
	RequestId  string   `json:"request_id,omitempty"`
	Original   string   `json:"original"`
	Suggestion string   `json:"suggestion"`
	Selection  RangeDTO `json:"selection"`
	Phase      string   `json:"phase"`
	Error      string   `json:"error,omitempty"`
}

type ConfirmResponse struct {
	Summary  ChatMessageResponse `json:"summary"`
	Document DocumentResponse    `json:"document"`
}
