package dto

type SendChatRequest struct {
	Chat string `json:"chat" validate:"required"`
}

type SendChatResponse struct {
	Reply    ChatMessageResponse `json:"reply"`
	Document DocumentResponse    `json:"document"`
}

type GetChatHistoryResponse struct {
	Messages []ChatMessageResponse `json:"messages"`
}
