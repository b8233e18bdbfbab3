package chat

// Request is the body a visitor posts to the chat endpoint.
type Request struct {
	Message string `json:"message"`
}

// Reply is the only response shape the chat endpoint produces.
type Reply struct {
	Reply string `json:"reply"`
}

// Conversation roles understood by chat-completion APIs.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one role-tagged turn sent upstream.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Client-facing reply texts. Nothing else is ever returned on failure.
const (
	ReplyMethodNotAllowed = "Method Not Allowed"
	ReplyMissingAPIKey    = "Server configuration error (API Key missing)."
	ReplyUpstreamError    = "OpenAI service error."
	ReplyInternalError    = "Internal Server Error"
	ReplyRateLimited      = "Too many requests. Please try again later."
)
