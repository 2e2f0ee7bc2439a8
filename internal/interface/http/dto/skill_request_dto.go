package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/skillswap/backend/internal/domain/entity"
	"github.com/skillswap/backend/internal/usecase/skillrequest"
)

type CreateSkillRequestRequest struct {
	Message string `json:"message" binding:"required"`
}

type SkillRequestResponse struct {
	ID               uuid.UUID  `json:"id"`
	SenderID         uuid.UUID  `json:"sender_id"`
	SenderUsername   string     `json:"sender_username,omitempty"`
	ReceiverID       uuid.UUID  `json:"receiver_id"`
	ReceiverUsername string     `json:"receiver_username,omitempty"`
	SkillID          uuid.UUID  `json:"skill_id"`
	SkillTitle       string     `json:"skill_title,omitempty"`
	Message          string     `json:"message"`
	Status           string     `json:"status"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
	AcceptedAt       *time.Time `json:"accepted_at"`
	CompletedAt      *time.Time `json:"completed_at"`
}

type RequestListsResponse struct {
	Sent     []SkillRequestResponse `json:"sent"`
	Received []SkillRequestResponse `json:"received"`
}

type CompleteRequestResponse struct {
	Request        SkillRequestResponse `json:"request"`
	ReviewUnlocked bool                 `json:"review_unlocked"`
}

func ToSkillRequestResponse(r *entity.SkillRequest) SkillRequestResponse {
	return SkillRequestResponse{
		ID:               r.ID,
		SenderID:         r.SenderID,
		SenderUsername:   r.SenderUsername,
		ReceiverID:       r.ReceiverID,
		ReceiverUsername: r.ReceiverUsername,
		SkillID:          r.SkillID,
		SkillTitle:       r.SkillTitle,
		Message:          r.Message,
		Status:           string(r.Status),
		CreatedAt:        r.CreatedAt,
		UpdatedAt:        r.UpdatedAt,
		AcceptedAt:       r.AcceptedAt,
		CompletedAt:      r.CompletedAt,
	}
}

func ToSkillRequestResponses(requests []*entity.SkillRequest) []SkillRequestResponse {
	responses := make([]SkillRequestResponse, 0, len(requests))
	for _, r := range requests {
		responses = append(responses, ToSkillRequestResponse(r))
	}
	return responses
}

func ToRequestListsResponse(lists *skillrequest.RequestLists) RequestListsResponse {
	return RequestListsResponse{
		Sent:     ToSkillRequestResponses(lists.Sent),
		Received: ToSkillRequestResponses(lists.Received),
	}
}

func ToCompleteRequestResponse(result *skillrequest.CompleteResult) CompleteRequestResponse {
	return CompleteRequestResponse{
		Request:        ToSkillRequestResponse(result.Request),
		ReviewUnlocked: result.ReviewUnlocked,
	}
}

type PostMessageRequest struct {
	Content string `json:"content" binding:"required"`
}

type RequestMessageResponse struct {
	ID             uuid.UUID `json:"id"`
	RequestID      uuid.UUID `json:"request_id"`
	SenderID       uuid.UUID `json:"sender_id"`
	SenderUsername string    `json:"sender_username,omitempty"`
	Content        string    `json:"content"`
	IsRead         bool      `json:"is_read"`
	CreatedAt      time.Time `json:"created_at"`
}

func ToRequestMessageResponse(m *entity.RequestMessage) RequestMessageResponse {
	return RequestMessageResponse{
		ID:             m.ID,
		RequestID:      m.RequestID,
		SenderID:       m.SenderID,
		SenderUsername: m.SenderUsername,
		Content:        m.Body,
		IsRead:         m.IsRead,
		CreatedAt:      m.CreatedAt,
	}
}

func ToRequestMessageResponses(messages []*entity.RequestMessage) []RequestMessageResponse {
	responses := make([]RequestMessageResponse, 0, len(messages))
	for _, m := range messages {
		responses = append(responses, ToRequestMessageResponse(m))
	}
	return responses
}
