package skillrequest_test

import (
	"errors"

	"github.com/skillswap/backend/internal/pkg/apperror"
)

func asAppError(err error, target **apperror.AppError) bool {
	return errors.As(err, target)
}
