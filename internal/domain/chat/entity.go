package chat

// Prompt roles understood by the inference service.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Transcript speakers shown to clients.
const (
	SpeakerUser = "user"
	SpeakerBot  = "bot"
)

// Turn is one user message and the model's reply. Turns are append-only;
// the serial id carries insertion order within a chat.
type Turn struct {
	ID       int64  `json:"id"`
	ChatID   int64  `json:"chat_id"`
	UserID   int64  `json:"user_id"`
	Message  string `json:"message"`
	Response string `json:"response"`
}

// PromptMessage is one role-tagged entry of the context sent downstream.
type PromptMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// TranscriptEntry is one line of a chat transcript for display.
type TranscriptEntry struct {
	From string `json:"from"`
	Text string `json:"text"`
}

// Transcript is the full display history of a single chat.
type Transcript struct {
	ChatID   int64             `json:"chat_id"`
	Messages []TranscriptEntry `json:"messages"`
}
