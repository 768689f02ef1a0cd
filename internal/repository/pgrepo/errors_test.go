package pgrepo

import (
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/fsdevblog/lms-backend/internal/domain"
)

func TestConvertErr(t *testing.T) {
	var cases = []struct {
		name string
		err  error
		want error
	}{
		{name: "no rows", err: pgx.ErrNoRows, want: domain.ErrRecordNotFound},
		{
			name: "unique email",
			err:  &pgconn.PgError{Code: pgUniqueViolation, ConstraintName: "users_email_key", Message: "duplicate"},
			want: domain.ErrDuplicateKey,
		},
		{
			name: "missing user",
			err:  &pgconn.PgError{Code: pgForeignKeyViolation, ConstraintName: "password_resets_user_id_fkey"},
			want: domain.ErrRecordNotFound,
		},
		{name: "other", err: errors.New("conn reset"), want: domain.ErrUnknown},
	}

	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			got := convertErr(tt.err, "op %d", 1)
			assert.ErrorIs(t, got, tt.want)
			assert.Contains(t, got.Error(), "[repository/op 1]")
		})
	}

	assert.NoError(t, convertErr(nil, "noop"))
}
