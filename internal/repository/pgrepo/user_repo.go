package pgrepo

import (
	"context"
	"strings"

	"github.com/fsdevblog/lms-backend/internal/domain"
	"github.com/fsdevblog/lms-backend/internal/repository/repoargs"
	"github.com/fsdevblog/lms-backend/pkg/uow"
	"github.com/jackc/pgx/v5"
)

const userColumns = "id, created_at, updated_at, full_name, email, encrypted_password, avatar_url, role"

type UserRepository struct {
	conn uow.DBTX
}

func NewUserRepository(conn uow.DBTX) *UserRepository {
	return &UserRepository{conn: conn}
}

// CreateUser создает юзера. В случае конфликта email возвращает ошибку domain.ErrDuplicateKey,
// во всех других случаях - domain.ErrUnknown.
func (u *UserRepository) CreateUser(ctx context.Context, args repoargs.CreateUser) (*domain.User, error) {
	row := u.conn.QueryRow(ctx,
		`INSERT INTO users (full_name, email, encrypted_password, avatar_url, role)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+userColumns,
		args.FullName, strings.ToLower(args.Email), args.Password, args.AvatarURL, string(args.Role),
	)
	user, err := scanUser(row)
	if err != nil {
		return nil, convertErr(err, "creating user %s", args.Email)
	}
	return user, nil
}

// FindUserByEmail ищет юзера по email без учета регистра. Возвращает domain.ErrRecordNotFound если запись не найдена.
func (u *UserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	row := u.conn.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE lower(email) = lower($1)`,
		email,
	)
	user, err := scanUser(row)
	if err != nil {
		return nil, convertErr(err, "finding user by email %s", email)
	}
	return user, nil
}

// FindUserByID возвращает domain.ErrRecordNotFound если запись не найдена.
func (u *UserRepository) FindUserByID(ctx context.Context, id int64) (*domain.User, error) {
	row := u.conn.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	user, err := scanUser(row)
	if err != nil {
		return nil, convertErr(err, "finding user by id %d", id)
	}
	return user, nil
}

// UpdateUser обновляет не nil поля args. Возвращает обновленную запись.
func (u *UserRepository) UpdateUser(ctx context.Context, id int64, args repoargs.UpdateUser) (*domain.User, error) {
	row := u.conn.QueryRow(ctx,
		`UPDATE users SET
			full_name = COALESCE($2, full_name),
			avatar_url = COALESCE($3, avatar_url),
			updated_at = now()
		WHERE id = $1
		RETURNING `+userColumns,
		id, args.FullName, args.AvatarURL,
	)
	user, err := scanUser(row)
	if err != nil {
		return nil, convertErr(err, "updating user %d", id)
	}
	return user, nil
}

// UpdatePassword записывает новый хеш пароля. Возвращает domain.ErrRecordNotFound если юзера нет.
func (u *UserRepository) UpdatePassword(ctx context.Context, id int64, encryptedPassword string) error {
	tag, err := u.conn.Exec(ctx,
		`UPDATE users SET encrypted_password = $2, updated_at = now() WHERE id = $1`,
		id, encryptedPassword,
	)
	if err != nil {
		return convertErr(err, "updating password for user %d", id)
	}
	if tag.RowsAffected() == 0 {
		return convertErr(pgx.ErrNoRows, "updating password for user %d", id)
	}
	return nil
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var user domain.User
	var role string
	if err := row.Scan(
		&user.ID,
		&user.CreatedAt,
		&user.UpdatedAt,
		&user.FullName,
		&user.Email,
		&user.Password,
		&user.AvatarURL,
		&role,
	); err != nil {
		return nil, err //nolint:wrapcheck
	}
	user.Role = domain.RoleType(role)
	return &user, nil
}
