package persistence

import (
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"github.com/skillswap/backend/internal/pkg/apperror"
)

const pqUniqueViolation = "23505"

// Имена уникальных ограничений из migrations/001_init.sql.
const (
	constraintUserEmail      = "users_email_key"
	constraintUserUsername   = "users_username_key"
	constraintUserSkill      = "user_skills_unique_key"
	constraintCategoryName   = "categories_name_key"
	constraintActiveRequest  = "skill_requests_active_key"
	constraintReviewPerActor = "reviews_reviewer_request_key"
)

// uniqueViolation возвращает имя нарушенного уникального ограничения.
func uniqueViolation(err error) (string, bool) {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation {
		return pqErr.Constraint, true
	}
	return "", false
}

func dbError(err error, message string) error {
	return apperror.Wrap(err, apperror.ErrCodeDatabaseError, message)
}

// notFoundOr переводит sql.ErrNoRows в доменную ошибку.
func notFoundOr(err error, notFound *apperror.AppError, message string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return notFound
	}
	return dbError(err, message)
}

func nullableString(s sql.NullString) string {
	if s.Valid {
		return s.String
	}
	return ""
}
