package redisrepo

import (
	"context"
	"encoding/json"
	"fmt"

	stderrors "errors"

	"github.com/nebulahq/auth-service/internal/infrastructure/redis"
	"github.com/nebulahq/auth-service/internal/models"
	pkgerrors "github.com/nebulahq/auth-service/pkg/errors"
)

// UserRepository stores users as JSON values in Redis. It serves
// deployments where several instances must share one user set; entries
// carry no TTL but the store is still not durable storage.
type UserRepository struct {
	client redis.RedisClient
}

func NewUserRepository(client redis.RedisClient) *UserRepository {
	return &UserRepository{client: client}
}

func emailKey(email string) string { return fmt.Sprintf("user:email:%s", email) }

func idKey(id string) string { return fmt.Sprintf("user:id:%s", id) }

func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	if user == nil {
		return pkgerrors.ErrNilUser
	}
	if user.ID == "" || user.Email == "" || user.PasswordHash == "" {
		return fmt.Errorf("%w: id, email and password hash are required", pkgerrors.ErrInvalidInput)
	}

	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("%w: failed to marshal user", pkgerrors.ErrInternal)
	}

	// SetNX keeps email uniqueness atomic across instances.
	ok, err := r.client.SetNX(ctx, emailKey(user.Email), string(data), 0)
	if err != nil {
		return fmt.Errorf("%w: failed to store user: %v", pkgerrors.ErrInternal, err)
	}
	if !ok {
		return fmt.Errorf("%w: email %s", pkgerrors.ErrUserAlreadyExists, user.Email)
	}

	if err := r.client.Set(ctx, idKey(user.ID), user.Email, 0); err != nil {
		return fmt.Errorf("%w: failed to index user by id: %v", pkgerrors.ErrInternal, err)
	}
	return nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if email == "" {
		return nil, fmt.Errorf("%w: email cannot be empty", pkgerrors.ErrInvalidInput)
	}

	data, err := r.client.Get(ctx, emailKey(email))
	if stderrors.Is(err, redis.ErrKeyNotFound) {
		return nil, fmt.Errorf("%w: email %s", pkgerrors.ErrUserNotFound, email)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: failed to get user: %v", pkgerrors.ErrInternal, err)
	}

	var user models.User
	if err := json.Unmarshal([]byte(data), &user); err != nil {
		return nil, fmt.Errorf("%w: failed to unmarshal user: %v", pkgerrors.ErrInternal, err)
	}
	return &user, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: id cannot be empty", pkgerrors.ErrInvalidInput)
	}

	email, err := r.client.Get(ctx, idKey(id))
	if stderrors.Is(err, redis.ErrKeyNotFound) {
		return nil, fmt.Errorf("%w: id %s", pkgerrors.ErrUserNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: failed to get user: %v", pkgerrors.ErrInternal, err)
	}
	return r.GetByEmail(ctx, email)
}
