package pgrepo

import (
	"context"
	"time"

	"github.com/fsdevblog/lms-backend/internal/domain"
	"github.com/fsdevblog/lms-backend/internal/repository/repoargs"
	"github.com/fsdevblog/lms-backend/pkg/uow"
)

const passwordResetColumns = "id, created_at, user_id, token_hash, expires_at"

type PasswordResetRepository struct {
	conn uow.DBTX
}

func NewPasswordResetRepository(conn uow.DBTX) *PasswordResetRepository {
	return &PasswordResetRepository{conn: conn}
}

func (p *PasswordResetRepository) Create(
	ctx context.Context,
	args repoargs.CreatePasswordReset,
) (*domain.PasswordReset, error) {
	var reset domain.PasswordReset
	err := p.conn.QueryRow(ctx,
		`INSERT INTO password_resets (user_id, token_hash, expires_at)
		VALUES ($1, $2, $3)
		RETURNING `+passwordResetColumns,
		args.UserID, args.TokenHash, args.ExpiresAt,
	).Scan(&reset.ID, &reset.CreatedAt, &reset.UserID, &reset.TokenHash, &reset.ExpiresAt)
	if err != nil {
		return nil, convertErr(err, "creating password reset for user %d", args.UserID)
	}
	return &reset, nil
}

// FindActiveByTokenHash ищет не просроченный на момент now токен. Возвращает domain.ErrRecordNotFound
// если токена нет или он просрочен.
func (p *PasswordResetRepository) FindActiveByTokenHash(
	ctx context.Context,
	tokenHash string,
	now time.Time,
) (*domain.PasswordReset, error) {
	var reset domain.PasswordReset
	err := p.conn.QueryRow(ctx,
		`SELECT `+passwordResetColumns+` FROM password_resets WHERE token_hash = $1 AND expires_at > $2`,
		tokenHash, now,
	).Scan(&reset.ID, &reset.CreatedAt, &reset.UserID, &reset.TokenHash, &reset.ExpiresAt)
	if err != nil {
		return nil, convertErr(err, "finding password reset by token hash")
	}
	return &reset, nil
}

// DeleteByUserID удаляет все токены юзера.
func (p *PasswordResetRepository) DeleteByUserID(ctx context.Context, userID int64) error {
	if _, err := p.conn.Exec(ctx, `DELETE FROM password_resets WHERE user_id = $1`, userID); err != nil {
		return convertErr(err, "deleting password resets for user %d", userID)
	}
	return nil
}

// DeleteExpired удаляет не более limit просроченных на момент now токенов. Возвращает кол-во удаленных.
func (p *PasswordResetRepository) DeleteExpired(ctx context.Context, now time.Time, limit uint) (int64, error) {
	tag, err := p.conn.Exec(ctx,
		`DELETE FROM password_resets WHERE id IN (
			SELECT id FROM password_resets WHERE expires_at <= $1 ORDER BY id LIMIT $2
		)`,
		now, int64(limit), //nolint:gosec
	)
	if err != nil {
		return 0, convertErr(err, "deleting expired password resets")
	}
	return tag.RowsAffected(), nil
}
