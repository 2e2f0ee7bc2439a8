package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

type ErrorCode string

const (
	ErrCodeNotFound          ErrorCode = "NOT_FOUND"
	ErrCodeUnauthorized      ErrorCode = "UNAUTHORIZED"
	ErrCodeForbidden         ErrorCode = "FORBIDDEN"
	ErrCodeBadRequest        ErrorCode = "BAD_REQUEST"
	ErrCodeConflict          ErrorCode = "CONFLICT"
	ErrCodeInternal          ErrorCode = "INTERNAL_ERROR"
	ErrCodeValidation        ErrorCode = "VALIDATION_ERROR"
	ErrCodeDatabaseError     ErrorCode = "DATABASE_ERROR"
	ErrCodeInvalidTransition ErrorCode = "INVALID_TRANSITION"
	ErrCodeInvalidState      ErrorCode = "INVALID_STATE"
	ErrCodeDuplicateRequest  ErrorCode = "DUPLICATE_REQUEST"
	ErrCodeDuplicateReview   ErrorCode = "DUPLICATE_REVIEW"
	ErrCodeSelfRequest       ErrorCode = "SELF_REQUEST"
)

// DetailExistingRequestID ключ в Details, по которому клиент находит уже существующую заявку.
const DetailExistingRequestID = "existing_request_id"

type AppError struct {
	Code       ErrorCode
	Message    string
	HTTPStatus int
	Cause      error
	Details    map[string]string
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// Is сравнивает ошибки по коду, чтобы errors.Is работал с предопределёнными значениями.
func (e *AppError) Is(target error) bool {
	var t *AppError
	if !errors.As(target, &t) {
		return false
	}
	return e.Code == t.Code && e.Message == t.Message
}

func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: codeToHTTPStatus(code),
	}
}

func Wrap(err error, code ErrorCode, message string) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: codeToHTTPStatus(code),
		Cause:      err,
	}
}

// WithDetail возвращает копию ошибки с дополнительным полем.
func (e *AppError) WithDetail(key, value string) *AppError {
	cp := *e
	cp.Details = make(map[string]string, len(e.Details)+1)
	for k, v := range e.Details {
		cp.Details[k] = v
	}
	cp.Details[key] = value
	return &cp
}

// DuplicateRequest сообщает о существующей активной заявке и несёт её ID.
func DuplicateRequest(existingID string) *AppError {
	return ErrDuplicateRequest.WithDetail(DetailExistingRequestID, existingID)
}

func codeToHTTPStatus(code ErrorCode) int {
	switch code {
	case ErrCodeNotFound:
		return http.StatusNotFound
	case ErrCodeUnauthorized:
		return http.StatusUnauthorized
	case ErrCodeForbidden:
		return http.StatusForbidden
	case ErrCodeBadRequest, ErrCodeValidation, ErrCodeSelfRequest:
		return http.StatusBadRequest
	case ErrCodeConflict, ErrCodeInvalidTransition, ErrCodeInvalidState,
		ErrCodeDuplicateRequest, ErrCodeDuplicateReview:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func CodeOf(err error) ErrorCode {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ""
}

func IsNotFound(err error) bool {
	return CodeOf(err) == ErrCodeNotFound
}

func IsForbidden(err error) bool {
	return CodeOf(err) == ErrCodeForbidden
}

func IsValidation(err error) bool {
	return CodeOf(err) == ErrCodeValidation
}

func IsInvalidTransition(err error) bool {
	return CodeOf(err) == ErrCodeInvalidTransition
}

func IsDuplicate(err error) bool {
	code := CodeOf(err)
	return code == ErrCodeDuplicateRequest || code == ErrCodeDuplicateReview
}

var (
	ErrSkillNotFound        = New(ErrCodeNotFound, "навык не найден")
	ErrCategoryNotFound     = New(ErrCodeNotFound, "категория не найдена")
	ErrRequestNotFound      = New(ErrCodeNotFound, "заявка не найдена")
	ErrNotificationNotFound = New(ErrCodeNotFound, "уведомление не найдено")
	ErrUserSkillNotFound    = New(ErrCodeNotFound, "навык пользователя не найден")
	ErrUserNotFound         = New(ErrCodeNotFound, "пользователь не найден")
	ErrUnauthorized         = New(ErrCodeUnauthorized, "требуется авторизация")
	ErrForbidden            = New(ErrCodeForbidden, "недостаточно прав")
	ErrInvalidCredentials   = New(ErrCodeUnauthorized, "неверные учетные данные")
	ErrInvalidTransition    = New(ErrCodeInvalidTransition, "недопустимый переход статуса заявки")
	ErrRequestNotCompleted  = New(ErrCodeInvalidState, "отзыв можно оставить только по завершённой заявке")
	ErrDuplicateRequest     = New(ErrCodeDuplicateRequest, "у вас уже есть активная заявка на этот навык")
	ErrDuplicateReview      = New(ErrCodeDuplicateReview, "вы уже оставили отзыв по этой заявке")
	ErrSelfRequest          = New(ErrCodeSelfRequest, "нельзя отправить заявку на собственный навык")
	ErrEmailTaken           = New(ErrCodeConflict, "email уже зарегистрирован")
	ErrUsernameTaken        = New(ErrCodeConflict, "имя пользователя занято")
	ErrCategoryExists       = New(ErrCodeConflict, "категория с таким названием уже существует")
	ErrUserSkillExists      = New(ErrCodeConflict, "такой навык уже добавлен в профиль")
)
