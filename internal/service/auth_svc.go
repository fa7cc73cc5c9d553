package service

import (
	"crypto/subtle"
	"errors"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/orbitx-mcn/orbitx-go/internal/model"
)

// ErrInvalidCredentials is the only login failure; unknown user and wrong
// password are not distinguished.
var ErrInvalidCredentials = errors.New("invalid credentials")

// SessionToken is the fixed opaque token issued on login. It never expires
// and is not tracked server-side.
const SessionToken = "orbitx-mock-token"

// CredentialVerifier checks a username/password pair.
type CredentialVerifier interface {
	Verify(username, password string) (model.User, bool)
}

// StaticVerifier compares against one plaintext pair. Suitable for demos
// only.
type StaticVerifier struct {
	Username string
	Password string
	User     model.User
}

func (v StaticVerifier) Verify(username, password string) (model.User, bool) {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(v.Username))
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(v.Password))
	if userOK&passOK != 1 {
		return model.User{}, false
	}
	return v.User, true
}

// BcryptVerifier compares against a username and a bcrypt password hash.
type BcryptVerifier struct {
	Username     string
	PasswordHash []byte
	User         model.User
}

func (v BcryptVerifier) Verify(username, password string) (model.User, bool) {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(v.Username)) == 1
	// Always run the hash comparison so timing does not reveal the username.
	passOK := bcrypt.CompareHashAndPassword(v.PasswordHash, []byte(password)) == nil
	if !userOK || !passOK {
		return model.User{}, false
	}
	return v.User, true
}

type AuthService struct {
	verifier CredentialVerifier
	logger   zerolog.Logger
}

func NewAuthService(verifier CredentialVerifier, logger zerolog.Logger) *AuthService {
	return &AuthService{verifier: verifier, logger: logger}
}

// Login checks the credentials and issues the session token.
func (s *AuthService) Login(username, password string) (*model.LoginResponse, error) {
	user, ok := s.verifier.Verify(username, password)
	if !ok {
		s.logger.Info().Msg("login rejected")
		return nil, ErrInvalidCredentials
	}
	s.logger.Info().Str("user", user.Name).Msg("login accepted")
	return &model.LoginResponse{
		Success: true,
		Token:   SessionToken,
		User:    user,
	}, nil
}
