package pgrepo

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/fsdevblog/lms-backend/internal/domain"
)

// Коды ошибок postgres, которые имеют смысл для бизнес-слоя.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// convertErr заворачивает ошибку драйвера в доменную. Отсутствие строки и нарушение внешнего ключа
// становятся ErrRecordNotFound, нарушение уникальности ErrDuplicateKey, остальное ErrUnknown.
func convertErr(err error, format string, formatArgs ...any) error {
	if err == nil {
		return nil
	}

	op := fmt.Sprintf(format, formatArgs...)
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("[repository/%s] %w", op, domain.ErrRecordNotFound)
	}

	kind := domain.ErrUnknown
	detail := err.Error()

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			kind = domain.ErrDuplicateKey
		case pgForeignKeyViolation:
			kind = domain.ErrRecordNotFound
		}
		if pgErr.ConstraintName != "" {
			detail = pgErr.ConstraintName + ": " + pgErr.Message
		}
	}

	return fmt.Errorf("[repository/%s] %w: %s", op, kind, detail)
}
