package dto

import (
	"time"

	"github.com/arda/campushub/internal/app/models"
)

// SendMessageRequest posts a message to a club channel
type SendMessageRequest struct {
	Message     string `json:"message" binding:"required,max=4000"`
	MessageType string `json:"messageType,omitempty"`
}

// ChatMessageResponse represents one chat message
type ChatMessageResponse struct {
	ID          int64         `json:"id"`
	ClubID      int64         `json:"clubId"`
	SenderID    int64         `json:"senderId"`
	Message     string        `json:"message"`
	MessageType string        `json:"messageType"`
	SentAt      time.Time     `json:"sentAt"`
	Sender      *UserResponse `json:"sender,omitempty"`
}

// ChatChannelResponse represents a club channel visible to the caller
type ChatChannelResponse struct {
	ClubID      int64      `json:"clubId"`
	ClubName    string     `json:"clubName"`
	LastMessage *string    `json:"lastMessage,omitempty"`
	LastSentAt  *time.Time `json:"lastSentAt,omitempty"`
}

// ToChatMessageResponse maps a chat message model to its response shape
func ToChatMessageResponse(m *models.ChatMessage) ChatMessageResponse {
	resp := ChatMessageResponse{
		ID:          m.ID,
		ClubID:      m.ClubID,
		SenderID:    m.SenderID,
		Message:     m.Message,
		MessageType: m.MessageType,
		SentAt:      m.SentAt,
	}
	if m.Sender != nil {
		sender := ToUserResponse(m.Sender)
		resp.Sender = &sender
	}
	return resp
}
