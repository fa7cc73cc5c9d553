package service

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/orbitx-mcn/orbitx-go/internal/model"
)

var testUser = model.User{Name: "Jakir Hosen", Role: "admin"}

func TestAuthService_Login(t *testing.T) {
	svc := NewAuthService(StaticVerifier{
		Username: "Jakirhosen150",
		Password: "525477JAKIR@",
		User:     testUser,
	}, zerolog.Nop())

	tests := []struct {
		name     string
		username string
		password string
		wantOK   bool
	}{
		{"valid", "Jakirhosen150", "525477JAKIR@", true},
		{"wrong password", "Jakirhosen150", "nope", false},
		{"wrong user", "x", "525477JAKIR@", false},
		{"both wrong", "x", "y", false},
		{"empty", "", "", false},
		{"case matters", "jakirhosen150", "525477JAKIR@", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := svc.Login(tt.username, tt.password)
			if !tt.wantOK {
				assert.ErrorIs(t, err, ErrInvalidCredentials)
				assert.Nil(t, resp)
				return
			}
			require.NoError(t, err)
			assert.True(t, resp.Success)
			assert.Equal(t, SessionToken, resp.Token)
			assert.Equal(t, testUser, resp.User)
		})
	}
}

func TestBcryptVerifier(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)
	v := BcryptVerifier{Username: "ops", PasswordHash: hash, User: testUser}

	user, ok := v.Verify("ops", "s3cret")
	assert.True(t, ok)
	assert.Equal(t, testUser, user)

	_, ok = v.Verify("ops", "wrong")
	assert.False(t, ok)

	_, ok = v.Verify("other", "s3cret")
	assert.False(t, ok)
}
