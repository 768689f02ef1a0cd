package validation

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsPassword(t *testing.T) {
	cases := []struct {
		password string
		want     bool
	}{
		{password: "abc#12", want: true},
		{password: "Str0ng!Passw0rd!", want: true},
		{password: "ab#1", want: false},
		{password: "Str0ng!Passw0rd!!", want: false},
		{password: "nodigits!!", want: false},
		{password: "nospecial12", want: false},
		{password: "space #12", want: false},
		{password: "кириллица#1", want: false},
	}

	for _, tc := range cases {
		t.Run(tc.password, func(t *testing.T) {
			assert.Equal(t, tc.want, IsPassword(tc.password))
		})
	}
}

func TestRegister(t *testing.T) {
	v := validator.New()
	require.NoError(t, Register(v))

	type form struct {
		Password string `validate:"lms_password"`
	}
	require.NoError(t, v.Struct(form{Password: "abc#12"}))
	require.Error(t, v.Struct(form{Password: "weak"}))
}
