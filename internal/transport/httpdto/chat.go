package httpdto

// ChatMessageRequest is used for POST /v1/chat/message
type ChatMessageRequest struct {
	ChatID  int64  `json:"chat_id" binding:"required"`
	Message string `json:"message" binding:"required"`
}

// ChatMessageResponse carries the model reply for one turn.
type ChatMessageResponse struct {
	Response string `json:"response"`
}

// TranscriptEntryDTO is one displayed line of a transcript.
type TranscriptEntryDTO struct {
	From string `json:"from"`
	Text string `json:"text"`
}

// ChatTranscriptDTO is the display history of one chat.
type ChatTranscriptDTO struct {
	ChatID   int64                `json:"chat_id"`
	Messages []TranscriptEntryDTO `json:"messages"`
}

// HistoryResponse is returned by GET /v1/chat/history, chats in
// first-encounter order.
type HistoryResponse struct {
	Chats []ChatTranscriptDTO `json:"chats"`
}
