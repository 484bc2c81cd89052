package user

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/taskforge/backend/domain"
	"github.com/taskforge/backend/repository"
)

type RegisterInput struct {
	Name  string
	Email string
	Role  domain.Role
}

type UpdateInput struct {
	Name  string
	Email string
	Role  domain.Role
}

type UseCase struct {
	users    repository.UserRepository
	cache    repository.Cache
	cacheTTL time.Duration
	logger   *zap.Logger
}

func New(users repository.UserRepository, cache repository.Cache, cacheTTL time.Duration, logger *zap.Logger) *UseCase {
	if cacheTTL <= 0 {
		cacheTTL = 10 * time.Minute
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		users:    users,
		cache:    cache,
		cacheTTL: cacheTTL,
		logger:   logger,
	}
}

func (uc *UseCase) Register(ctx context.Context, input RegisterInput) (*domain.User, error) {
	if input.Email == "" || input.Name == "" {
		return nil, domain.ErrInvalidPayload
	}
	role := input.Role
	if role == "" {
		role = domain.RoleUser
	}
	if !domain.ValidRole(role) {
		return nil, domain.ErrInvalidPayload
	}

	if _, err := uc.users.GetByEmail(ctx, input.Email); err == nil {
		return nil, domain.ErrEmailTaken
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	user := &domain.User{
		Name:  input.Name,
		Email: input.Email,
		Role:  role,
	}
	if err := uc.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// GetUser serves from the cache when one is wired in and falls through to
// the store otherwise; behavior is identical with the cache absent.
func (uc *UseCase) GetUser(ctx context.Context, id string) (*domain.User, error) {
	if cached := uc.fromCache(ctx, id); cached != nil {
		return cached, nil
	}

	user, err := uc.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	uc.toCache(ctx, user)
	return user, nil
}

func (uc *UseCase) UpdateUser(ctx context.Context, id string, input UpdateInput) (*domain.User, error) {
	user, err := uc.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if input.Name != "" {
		user.Name = input.Name
	}
	if input.Email != "" {
		user.Email = input.Email
	}
	if input.Role != "" {
		if !domain.ValidRole(input.Role) {
			return nil, domain.ErrInvalidPayload
		}
		user.Role = input.Role
	}

	if err := uc.users.Update(ctx, user); err != nil {
		return nil, err
	}
	uc.invalidate(ctx, id)
	return user, nil
}

func (uc *UseCase) DeleteUser(ctx context.Context, id string) error {
	if err := uc.users.Delete(ctx, id); err != nil {
		return err
	}
	uc.invalidate(ctx, id)
	return nil
}

func (uc *UseCase) fromCache(ctx context.Context, id string) *domain.User {
	if uc.cache == nil {
		return nil
	}
	value, ok, err := uc.cache.Get(ctx, repository.UserCacheKey(id))
	if err != nil {
		uc.logger.Warn("user cache read failed", zap.Error(err))
		return nil
	}
	if !ok {
		return nil
	}
	var cached domain.User
	if err := json.Unmarshal([]byte(value), &cached); err != nil {
		return nil
	}
	return &cached
}

func (uc *UseCase) toCache(ctx context.Context, user *domain.User) {
	if uc.cache == nil {
		return
	}
	payload, err := json.Marshal(user)
	if err != nil {
		return
	}
	if err := uc.cache.Set(ctx, repository.UserCacheKey(user.ID), string(payload), uc.cacheTTL); err != nil {
		uc.logger.Warn("user cache write failed", zap.Error(err))
	}
}

func (uc *UseCase) invalidate(ctx context.Context, id string) {
	if uc.cache == nil {
		return
	}
	if err := uc.cache.Invalidate(ctx, repository.UserCacheKey(id)); err != nil {
		uc.logger.Warn("user cache invalidation failed", zap.Error(err))
	}
}
