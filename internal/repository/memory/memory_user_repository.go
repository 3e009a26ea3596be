package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/nebulahq/auth-service/internal/models"
	pkgerrors "github.com/nebulahq/auth-service/pkg/errors"
)

// UserRepository keeps users in process memory, keyed by email. Nothing
// survives a restart. The map is guarded so concurrent handlers can
// register and look up users without coordination at the call site.
type UserRepository struct {
	mu      sync.RWMutex
	byEmail map[string]models.User
	byID    map[string]string
}

func NewUserRepository() *UserRepository {
	return &UserRepository{
		byEmail: make(map[string]models.User),
		byID:    make(map[string]string),
	}
}

func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	if user == nil {
		return pkgerrors.ErrNilUser
	}
	if user.ID == "" || user.Email == "" || user.PasswordHash == "" {
		return fmt.Errorf("%w: id, email and password hash are required", pkgerrors.ErrInvalidInput)
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byEmail[user.Email]; exists {
		return fmt.Errorf("%w: email %s", pkgerrors.ErrUserAlreadyExists, user.Email)
	}
	r.byEmail[user.Email] = *user
	r.byID[user.ID] = user.Email
	return nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if email == "" {
		return nil, fmt.Errorf("%w: email cannot be empty", pkgerrors.ErrInvalidInput)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.byEmail[email]
	if !ok {
		return nil, fmt.Errorf("%w: email %s", pkgerrors.ErrUserNotFound, email)
	}
	return &user, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: id cannot be empty", pkgerrors.ErrInvalidInput)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	email, ok := r.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: id %s", pkgerrors.ErrUserNotFound, id)
	}
	user := r.byEmail[email]
	return &user, nil
}
