package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/arda/campushub/internal/app/auth"
	"github.com/arda/campushub/internal/app/models"
	"github.com/arda/campushub/internal/app/models/dto"
	"github.com/arda/campushub/internal/pkg/apperrors"
)

// ChatService defines the interface for club chat operations.
// Messages are delivered by polling; there is no push transport.
type ChatService interface {
	Channels(ctx context.Context, userID int64) ([]dto.ChatChannelResponse, error)
	ListMessages(ctx context.Context, clubID int64, before *time.Time, limit int, actor Principal) ([]dto.ChatMessageResponse, error)
	SendMessage(ctx context.Context, clubID int64, req *dto.SendMessageRequest, actor Principal) (*dto.ChatMessageResponse, error)
}

// chatServiceImpl implements ChatService
type chatServiceImpl struct {
	chat   ChatStore
	authz  *auth.AuthorizationService
	logger zerolog.Logger
}

// NewChatService creates a new ChatService
func NewChatService(chat ChatStore, authz *auth.AuthorizationService, logger zerolog.Logger) ChatService {
	return &chatServiceImpl{chat: chat, authz: authz, logger: logger}
}

// Channels lists the chat channels of clubs the user belongs to
func (s *chatServiceImpl) Channels(ctx context.Context, userID int64) ([]dto.ChatChannelResponse, error) {
	channels, err := s.chat.ListChannelsForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	responses := make([]dto.ChatChannelResponse, 0, len(channels))
	for _, ch := range channels {
		responses = append(responses, dto.ChatChannelResponse{
			ClubID:      ch.ClubID,
			ClubName:    ch.ClubName,
			LastMessage: ch.LastMessage,
			LastSentAt:  ch.LastSentAt,
		})
	}
	return responses, nil
}

// ListMessages retrieves a channel's messages, members only
func (s *chatServiceImpl) ListMessages(ctx context.Context, clubID int64, before *time.Time, limit int, actor Principal) ([]dto.ChatMessageResponse, error) {
	if err := s.validateMember(ctx, clubID, actor); err != nil {
		return nil, err
	}
	messages, err := s.chat.ListByClub(ctx, clubID, before, limit)
	if err != nil {
		return nil, err
	}
	responses := make([]dto.ChatMessageResponse, 0, len(messages))
	for i := range messages {
		responses = append(responses, dto.ToChatMessageResponse(&messages[i]))
	}
	return responses, nil
}

// SendMessage posts a message to a channel, members only
func (s *chatServiceImpl) SendMessage(ctx context.Context, clubID int64, req *dto.SendMessageRequest, actor Principal) (*dto.ChatMessageResponse, error) {
	if err := s.validateMember(ctx, clubID, actor); err != nil {
		return nil, err
	}

	messageType := req.MessageType
	if messageType == "" {
		messageType = "text"
	}
	message := &models.ChatMessage{
		ClubID:      clubID,
		SenderID:    actor.ID,
		Message:     req.Message,
		MessageType: messageType,
	}
	if err := s.chat.Insert(ctx, message); err != nil {
		return nil, err
	}

	resp := dto.ToChatMessageResponse(message)
	return &resp, nil
}

func (s *chatServiceImpl) validateMember(ctx context.Context, clubID int64, actor Principal) error {
	if actor.IsAdmin() {
		return nil
	}
	isMember, err := s.authz.IsApprovedMember(ctx, clubID, actor.ID)
	if err != nil {
		return err
	}
	if !isMember {
		return apperrors.ErrPermissionDenied
	}
	return nil
}
