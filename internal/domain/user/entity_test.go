package user

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUser(t *testing.T) {
	tests := []struct {
		name        string
		userName    string
		email       string
		password    string
		wantErr     bool
		errExpected error
	}{
		{name: "正常なユーザー作成", userName: "tanaka", email: "tanaka@example.com", password: "secret123"},
		{name: "ユーザー名未指定", userName: "", email: "tanaka@example.com", password: "secret123", wantErr: true, errExpected: ErrNameRequired},
		{name: "メール未指定", userName: "tanaka", email: "", password: "secret123", wantErr: true, errExpected: ErrEmailRequired},
		{name: "パスワード未指定", userName: "tanaka", email: "tanaka@example.com", password: "", wantErr: true, errExpected: ErrPasswordRequired},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u, err := NewUser(tt.userName, tt.email, tt.password, "09012345678")
			if tt.wantErr {
				assert.ErrorIs(t, err, tt.errExpected)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.userName, u.Name)
			assert.NotEqual(t, tt.password, u.PasswordHash)
		})
	}
}

func TestUser_VerifyPassword(t *testing.T) {
	u, err := NewUser("tanaka", "tanaka@example.com", "secret123", "09012345678")
	require.NoError(t, err)

	assert.NoError(t, u.VerifyPassword("secret123"))
	assert.ErrorIs(t, u.VerifyPassword("wrong-password"), ErrInvalidPassword)
}

func TestUser_VerifyEmail(t *testing.T) {
	u, err := NewUser("tanaka", "tanaka@example.com", "secret123", "09012345678")
	require.NoError(t, err)

	assert.NoError(t, u.VerifyEmail("tanaka@example.com"))
	assert.ErrorIs(t, u.VerifyEmail("other@example.com"), ErrInvalidEmail)
}
