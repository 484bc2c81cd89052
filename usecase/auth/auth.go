package auth

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"go.uber.org/zap"

	"github.com/taskforge/backend/domain"
	"github.com/taskforge/backend/repository"
)

// Token is the issued credential returned on login.
type Token struct {
	AccessToken string    `json:"access_token"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// UseCase issues stateless JWT credentials. Identity verification beyond
// "the user exists" is out of scope; the middleware only resolves the
// actor id for downstream operations.
type UseCase struct {
	users  repository.UserRepository
	secret string
	issuer string
	logger *zap.Logger
}

func New(users repository.UserRepository, secret, issuer string, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		users:  users,
		secret: secret,
		issuer: issuer,
		logger: logger,
	}
}

// Login checks the user exists and signs a token carrying the user id.
func (uc *UseCase) Login(ctx context.Context, email string, ttl time.Duration) (*Token, error) {
	if ttl <= 0 {
		ttl = time.Hour
	}

	user, err := uc.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	expiresAt := time.Now().Add(ttl)
	claims := jwt.MapClaims{
		"user_id": user.ID,
		"iss":     uc.issuer,
		"exp":     expiresAt.Unix(),
		"iat":     time.Now().Unix(),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(uc.secret))
	if err != nil {
		return nil, domain.WrapError(domain.ErrCodeInternal, "token signing failed", err)
	}

	return &Token{
		AccessToken: signed,
		ExpiresAt:   expiresAt,
	}, nil
}
