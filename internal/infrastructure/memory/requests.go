package memory

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/skillswap/backend/internal/domain/entity"
	"github.com/skillswap/backend/internal/domain/valueobject"
	"github.com/skillswap/backend/internal/pkg/apperror"
)

type SkillRequestRepository struct {
	s *Store
}

func (r *SkillRequestRepository) Create(ctx context.Context, request *entity.SkillRequest) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if existing := r.findActive(request.SenderID, request.SkillID); existing != nil {
		return apperror.DuplicateRequest(existing.ID.String())
	}
	cp := *request
	r.s.requests[request.ID] = &cp
	return nil
}

func (r *SkillRequestRepository) UpdateStatus(ctx context.Context, request *entity.SkillRequest, from valueobject.RequestStatus) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	stored, ok := r.s.requests[request.ID]
	if !ok {
		return false, apperror.ErrRequestNotFound
	}
	if stored.Status != from {
		return false, nil
	}
	stored.Status = request.Status
	stored.UpdatedAt = request.UpdatedAt
	stored.AcceptedAt = request.AcceptedAt
	stored.CompletedAt = request.CompletedAt
	return true, nil
}

func (r *SkillRequestRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.SkillRequest, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	req, ok := r.s.requests[id]
	if !ok {
		return nil, apperror.ErrRequestNotFound
	}
	return r.decorate(req), nil
}

func (r *SkillRequestRepository) FindActive(ctx context.Context, senderID, skillID uuid.UUID) (*entity.SkillRequest, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	if req := r.findActive(senderID, skillID); req != nil {
		return r.decorate(req), nil
	}
	return nil, nil
}

func (r *SkillRequestRepository) findActive(senderID, skillID uuid.UUID) *entity.SkillRequest {
	for _, req := range r.s.requests {
		if req.SenderID == senderID && req.SkillID == skillID && req.Status.IsActive() {
			return req
		}
	}
	return nil
}

func (r *SkillRequestRepository) ListBySender(ctx context.Context, senderID uuid.UUID, status *valueobject.RequestStatus, limit int) ([]*entity.SkillRequest, error) {
	return r.list(func(req *entity.SkillRequest) bool { return req.SenderID == senderID }, status, limit), nil
}

func (r *SkillRequestRepository) ListByReceiver(ctx context.Context, receiverID uuid.UUID, status *valueobject.RequestStatus, limit int) ([]*entity.SkillRequest, error) {
	return r.list(func(req *entity.SkillRequest) bool { return req.ReceiverID == receiverID }, status, limit), nil
}

func (r *SkillRequestRepository) list(match func(*entity.SkillRequest) bool, status *valueobject.RequestStatus, limit int) []*entity.SkillRequest {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	result := make([]*entity.SkillRequest, 0)
	for _, req := range r.s.requests {
		if !match(req) || (status != nil && req.Status != *status) {
			continue
		}
		result = append(result, r.decorate(req))
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.After(result[j].CreatedAt) })
	return page(result, limit, 0)
}

func (r *SkillRequestRepository) CountByStatusForSender(ctx context.Context, senderID uuid.UUID) (map[valueobject.RequestStatus]int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	counts := make(map[valueobject.RequestStatus]int)
	for _, req := range r.s.requests {
		if req.SenderID == senderID {
			counts[req.Status]++
		}
	}
	return counts, nil
}

func (r *SkillRequestRepository) CountForReceiver(ctx context.Context, receiverID uuid.UUID) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	n := 0
	for _, req := range r.s.requests {
		if req.ReceiverID == receiverID {
			n++
		}
	}
	return n, nil
}

func (r *SkillRequestRepository) decorate(req *entity.SkillRequest) *entity.SkillRequest {
	cp := *req
	cp.SenderUsername = r.s.usernameOf(req.SenderID)
	cp.ReceiverUsername = r.s.usernameOf(req.ReceiverID)
	cp.SkillTitle = r.s.skillTitleOf(req.SkillID)
	return &cp
}

type RequestMessageRepository struct {
	s *Store
}

func (r *RequestMessageRepository) Create(ctx context.Context, message *entity.RequestMessage) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.requests[message.RequestID]; !ok {
		return apperror.ErrRequestNotFound
	}
	cp := *message
	r.s.messages = append(r.s.messages, &cp)
	return nil
}

// ListByRequest сообщения хранятся в порядке добавления, то есть по времени создания.
func (r *RequestMessageRepository) ListByRequest(ctx context.Context, requestID uuid.UUID) ([]*entity.RequestMessage, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	result := make([]*entity.RequestMessage, 0)
	for _, m := range r.s.messages {
		if m.RequestID == requestID {
			cp := *m
			cp.SenderUsername = r.s.usernameOf(m.SenderID)
			result = append(result, &cp)
		}
	}
	return result, nil
}

func (r *RequestMessageRepository) MarkIncomingRead(ctx context.Context, requestID, readerID uuid.UUID) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	req, ok := r.s.requests[requestID]
	if !ok || !req.IsParticipant(readerID) {
		return 0, nil
	}
	var n int64
	for _, m := range r.s.messages {
		if m.RequestID == requestID && m.SenderID != readerID && !m.IsRead {
			m.IsRead = true
			n++
		}
	}
	return n, nil
}

func (r *RequestMessageRepository) CountUnreadForUser(ctx context.Context, userID uuid.UUID) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	n := 0
	for _, m := range r.s.messages {
		if m.IsRead || m.SenderID == userID {
			continue
		}
		if req, ok := r.s.requests[m.RequestID]; ok && req.IsParticipant(userID) {
			n++
		}
	}
	return n, nil
}
