package persistence

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/skillswap/backend/internal/domain/entity"
	"github.com/skillswap/backend/internal/domain/valueobject"
	"github.com/skillswap/backend/internal/pkg/apperror"
)

type skillRequestRow struct {
	ID               uuid.UUID  `db:"id"`
	SenderID         uuid.UUID  `db:"sender_id"`
	ReceiverID       uuid.UUID  `db:"receiver_id"`
	SkillID          uuid.UUID  `db:"skill_id"`
	Message          string     `db:"message"`
	Status           string     `db:"status"`
	CreatedAt        time.Time  `db:"created_at"`
	UpdatedAt        time.Time  `db:"updated_at"`
	AcceptedAt       *time.Time `db:"accepted_at"`
	CompletedAt      *time.Time `db:"completed_at"`
	SenderUsername   string     `db:"sender_username"`
	ReceiverUsername string     `db:"receiver_username"`
	SkillTitle       string     `db:"skill_title"`
}

func (r skillRequestRow) toEntity() *entity.SkillRequest {
	return &entity.SkillRequest{
		ID:               r.ID,
		SenderID:         r.SenderID,
		ReceiverID:       r.ReceiverID,
		SkillID:          r.SkillID,
		Message:          r.Message,
		Status:           valueobject.RequestStatus(r.Status),
		CreatedAt:        r.CreatedAt,
		UpdatedAt:        r.UpdatedAt,
		AcceptedAt:       r.AcceptedAt,
		CompletedAt:      r.CompletedAt,
		SenderUsername:   r.SenderUsername,
		ReceiverUsername: r.ReceiverUsername,
		SkillTitle:       r.SkillTitle,
	}
}

const skillRequestSelect = `
	SELECT r.id, r.sender_id, r.receiver_id, r.skill_id, r.message, r.status,
	       r.created_at, r.updated_at, r.accepted_at, r.completed_at,
	       su.username AS sender_username, ru.username AS receiver_username, s.title AS skill_title
	FROM skill_requests r
	JOIN users su ON su.id = r.sender_id
	JOIN users ru ON ru.id = r.receiver_id
	JOIN skills s ON s.id = r.skill_id
`

type SkillRequestRepository struct {
	db *sqlx.DB
}

func NewSkillRequestRepository(db *sqlx.DB) *SkillRequestRepository {
	return &SkillRequestRepository{db: db}
}

// Create проверку активной заявки выполняет частичный уникальный индекс
// skill_requests_active_key, поэтому параллельные вставки не проходят обе.
func (r *SkillRequestRepository) Create(ctx context.Context, request *entity.SkillRequest) error {
	query := `
		INSERT INTO skill_requests (id, sender_id, receiver_id, skill_id, message, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := r.db.ExecContext(ctx, query,
		request.ID, request.SenderID, request.ReceiverID, request.SkillID,
		request.Message, string(request.Status), request.CreatedAt, request.UpdatedAt,
	)
	if constraint, ok := uniqueViolation(err); ok && constraint == constraintActiveRequest {
		existing, findErr := r.FindActive(ctx, request.SenderID, request.SkillID)
		if findErr != nil || existing == nil {
			return apperror.ErrDuplicateRequest
		}
		return apperror.DuplicateRequest(existing.ID.String())
	}
	if err != nil {
		return dbError(err, "не удалось создать заявку")
	}
	return nil
}

func (r *SkillRequestRepository) UpdateStatus(ctx context.Context, request *entity.SkillRequest, from valueobject.RequestStatus) (bool, error) {
	query := `
		UPDATE skill_requests
		SET status = $2, updated_at = $3, accepted_at = $4, completed_at = $5
		WHERE id = $1 AND status = $6
	`
	result, err := r.db.ExecContext(ctx, query,
		request.ID, string(request.Status), request.UpdatedAt,
		request.AcceptedAt, request.CompletedAt, string(from),
	)
	if err != nil {
		return false, dbError(err, "не удалось обновить статус заявки")
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, dbError(err, "не удалось проверить результат обновления")
	}
	return rows == 1, nil
}

func (r *SkillRequestRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.SkillRequest, error) {
	var row skillRequestRow
	if err := r.db.GetContext(ctx, &row, skillRequestSelect+` WHERE r.id = $1`, id); err != nil {
		return nil, notFoundOr(err, apperror.ErrRequestNotFound, "не удалось получить заявку")
	}
	return row.toEntity(), nil
}

func (r *SkillRequestRepository) FindActive(ctx context.Context, senderID, skillID uuid.UUID) (*entity.SkillRequest, error) {
	active := make([]string, 0, len(valueobject.ActiveRequestStatuses))
	for _, s := range valueobject.ActiveRequestStatuses {
		active = append(active, string(s))
	}

	var row skillRequestRow
	query := skillRequestSelect + ` WHERE r.sender_id = $1 AND r.skill_id = $2 AND r.status = ANY($3) LIMIT 1`
	err := r.db.GetContext(ctx, &row, query, senderID, skillID, pq.Array(active))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, dbError(err, "не удалось найти активную заявку")
	}
	return row.toEntity(), nil
}

func (r *SkillRequestRepository) ListBySender(ctx context.Context, senderID uuid.UUID, status *valueobject.RequestStatus, limit int) ([]*entity.SkillRequest, error) {
	return r.list(ctx, "r.sender_id", senderID, status, limit)
}

func (r *SkillRequestRepository) ListByReceiver(ctx context.Context, receiverID uuid.UUID, status *valueobject.RequestStatus, limit int) ([]*entity.SkillRequest, error) {
	return r.list(ctx, "r.receiver_id", receiverID, status, limit)
}

func (r *SkillRequestRepository) list(ctx context.Context, column string, userID uuid.UUID, status *valueobject.RequestStatus, limit int) ([]*entity.SkillRequest, error) {
	query := skillRequestSelect + ` WHERE ` + column + ` = $1`
	args := []any{userID}
	if status != nil {
		args = append(args, string(*status))
		query += fmt.Sprintf(" AND r.status = $%d", len(args))
	}
	query += " ORDER BY r.created_at DESC"
	if limit > 0 {
		args = append(args, limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	var rows []skillRequestRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, dbError(err, "не удалось получить заявки")
	}
	result := make([]*entity.SkillRequest, 0, len(rows))
	for _, row := range rows {
		result = append(result, row.toEntity())
	}
	return result, nil
}

func (r *SkillRequestRepository) CountByStatusForSender(ctx context.Context, senderID uuid.UUID) (map[valueobject.RequestStatus]int, error) {
	var rows []struct {
		Status string `db:"status"`
		Count  int    `db:"count"`
	}
	query := `SELECT status, COUNT(*) AS count FROM skill_requests WHERE sender_id = $1 GROUP BY status`
	if err := r.db.SelectContext(ctx, &rows, query, senderID); err != nil {
		return nil, dbError(err, "не удалось посчитать заявки")
	}
	result := make(map[valueobject.RequestStatus]int, len(rows))
	for _, row := range rows {
		result[valueobject.RequestStatus(row.Status)] = row.Count
	}
	return result, nil
}

func (r *SkillRequestRepository) CountForReceiver(ctx context.Context, receiverID uuid.UUID) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM skill_requests WHERE receiver_id = $1`, receiverID); err != nil {
		return 0, dbError(err, "не удалось посчитать заявки")
	}
	return count, nil
}

type requestMessageRow struct {
	ID             uuid.UUID `db:"id"`
	RequestID      uuid.UUID `db:"request_id"`
	SenderID       uuid.UUID `db:"sender_id"`
	Body           string    `db:"body"`
	IsRead         bool      `db:"is_read"`
	CreatedAt      time.Time `db:"created_at"`
	SenderUsername string    `db:"sender_username"`
}

type RequestMessageRepository struct {
	db *sqlx.DB
}

func NewRequestMessageRepository(db *sqlx.DB) *RequestMessageRepository {
	return &RequestMessageRepository{db: db}
}

func (r *RequestMessageRepository) Create(ctx context.Context, message *entity.RequestMessage) error {
	query := `
		INSERT INTO request_messages (id, request_id, sender_id, body, is_read, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.db.ExecContext(ctx, query,
		message.ID, message.RequestID, message.SenderID, message.Body, message.IsRead, message.CreatedAt,
	)
	if err != nil {
		return dbError(err, "не удалось сохранить сообщение")
	}
	return nil
}

func (r *RequestMessageRepository) ListByRequest(ctx context.Context, requestID uuid.UUID) ([]*entity.RequestMessage, error) {
	query := `
		SELECT m.id, m.request_id, m.sender_id, m.body, m.is_read, m.created_at, u.username AS sender_username
		FROM request_messages m
		JOIN users u ON u.id = m.sender_id
		WHERE m.request_id = $1
		ORDER BY m.created_at, m.id
	`
	var rows []requestMessageRow
	if err := r.db.SelectContext(ctx, &rows, query, requestID); err != nil {
		return nil, dbError(err, "не удалось получить переписку")
	}

	result := make([]*entity.RequestMessage, 0, len(rows))
	for _, row := range rows {
		result = append(result, &entity.RequestMessage{
			ID:             row.ID,
			RequestID:      row.RequestID,
			SenderID:       row.SenderID,
			Body:           row.Body,
			IsRead:         row.IsRead,
			CreatedAt:      row.CreatedAt,
			SenderUsername: row.SenderUsername,
		})
	}
	return result, nil
}

// MarkIncomingRead для постороннего читателя не затрагивает ни одной строки.
func (r *RequestMessageRepository) MarkIncomingRead(ctx context.Context, requestID, readerID uuid.UUID) (int64, error) {
	query := `
		UPDATE request_messages m
		SET is_read = TRUE
		FROM skill_requests r
		WHERE m.request_id = r.id
		  AND r.id = $1
		  AND m.sender_id <> $2
		  AND m.is_read = FALSE
		  AND $2 IN (r.sender_id, r.receiver_id)
	`
	result, err := r.db.ExecContext(ctx, query, requestID, readerID)
	if err != nil {
		return 0, dbError(err, "не удалось отметить сообщения прочитанными")
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return 0, dbError(err, "не удалось проверить результат обновления")
	}
	return rows, nil
}

func (r *RequestMessageRepository) CountUnreadForUser(ctx context.Context, userID uuid.UUID) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM request_messages m
		JOIN skill_requests r ON r.id = m.request_id
		WHERE m.is_read = FALSE
		  AND m.sender_id <> $1
		  AND $1 IN (r.sender_id, r.receiver_id)
	`
	var count int
	if err := r.db.GetContext(ctx, &count, query, userID); err != nil {
		return 0, dbError(err, "не удалось посчитать непрочитанные сообщения")
	}
	return count, nil
}
