package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	stderrors "errors"

	"github.com/google/uuid"
	"github.com/nebulahq/auth-service/internal/infrastructure/auth"
	"github.com/nebulahq/auth-service/internal/infrastructure/kafka"
	"github.com/nebulahq/auth-service/internal/infrastructure/observability"
	"github.com/nebulahq/auth-service/internal/models"
	"github.com/nebulahq/auth-service/internal/repository"
	pkgerrors "github.com/nebulahq/auth-service/pkg/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/crypto/bcrypt"
)

type RegisterInput struct {
	FirstName string
	LastName  string
	Email     string
	Username  string
	Password  string
}

type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (string, error)
	Login(ctx context.Context, email, password string) (models.TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (string, bool)
	Profile(ctx context.Context, userID string) (*models.User, error)
}

type authService struct {
	userRepo repository.UserRepository
	tokens   *auth.Manager
	events   kafka.Publisher
}

func NewAuthService(userRepo repository.UserRepository, tokens *auth.Manager, events kafka.Publisher) *authService {
	return &authService{
		userRepo: userRepo,
		tokens:   tokens,
		events:   events,
	}
}

func (s *authService) Register(ctx context.Context, input RegisterInput) (string, error) {
	tracer := otel.Tracer("auth-service")
	ctx, span := tracer.Start(ctx, "Register")
	defer span.End()

	if input.Email == "" || input.Username == "" || input.Password == "" {
		span.SetStatus(codes.Error, "empty email, username or password")
		return "", fmt.Errorf("%w: email, username and password are required", pkgerrors.ErrInvalidInput)
	}

	existing, err := s.userRepo.GetByEmail(ctx, input.Email)
	if existing != nil {
		span.SetStatus(codes.Error, "email already registered")
		slog.Warn("email already registered",
			"email", input.Email,
			"existing_id", existing.ID)
		return "", fmt.Errorf("%w: email %s", pkgerrors.ErrUserAlreadyExists, input.Email)
	}
	if err != nil && !stderrors.Is(err, pkgerrors.ErrUserNotFound) {
		span.RecordError(err)
		span.SetStatus(codes.Error, "user check failed")
		slog.Error("failed to check user existence",
			"email", input.Email,
			"error", err)
		return "", fmt.Errorf("%w: failed to check user existence", pkgerrors.ErrInternal)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "password hashing failed")
		slog.Error("failed to hash password",
			"email", input.Email,
			"error", err)
		return "", fmt.Errorf("%w: failed to hash password", pkgerrors.ErrInternal)
	}

	user := &models.User{
		ID:           uuid.NewString(),
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Email:        input.Email,
		Username:     input.Username,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "user creation failed")
		slog.Error("failed to create user",
			"email", input.Email,
			"error", err)
		if stderrors.Is(err, pkgerrors.ErrUserAlreadyExists) {
			return "", err
		}
		return "", fmt.Errorf("%w: failed to create user", pkgerrors.ErrInternal)
	}

	s.publishEvent(user, "user_registered")

	slog.Info("user registered successfully",
		"user_id", user.ID,
		"email", user.Email,
		"username", user.Username)

	return user.ID, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (models.TokenPair, error) {
	tracer := otel.Tracer("auth-service")
	ctx, span := tracer.Start(ctx, "Login")
	defer span.End()

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		span.SetStatus(codes.Error, "user lookup failed")
		slog.Error("failed to login", "email", email, "error", err)
		return models.TokenPair{}, pkgerrors.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		span.SetStatus(codes.Error, "invalid password")
		slog.Error("invalid password", "email", email)
		return models.TokenPair{}, pkgerrors.ErrInvalidCredentials
	}

	pair, err := s.tokens.IssuePair(user.ID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "token issuance failed")
		slog.Error("failed to issue token pair", "user_id", user.ID, "error", err)
		return models.TokenPair{}, fmt.Errorf("failed to issue tokens: %w", err)
	}
	observability.TokensIssued.WithLabelValues(auth.TokenTypeAccess).Inc()
	observability.TokensIssued.WithLabelValues(auth.TokenTypeRefresh).Inc()

	s.publishEvent(user, "user_logged_in")

	slog.Info("user logged in", "email", email, "user_id", user.ID)
	return pair, nil
}

func (s *authService) Refresh(ctx context.Context, refreshToken string) (string, bool) {
	tracer := otel.Tracer("auth-service")
	_, span := tracer.Start(ctx, "Refresh")
	defer span.End()

	access, ok := s.tokens.Refresh(refreshToken)
	if !ok {
		span.SetStatus(codes.Error, "refresh token rejected")
		observability.TokenValidations.WithLabelValues(auth.TokenTypeRefresh, "rejected").Inc()
		slog.Warn("refresh token rejected")
		return "", false
	}
	observability.TokenValidations.WithLabelValues(auth.TokenTypeRefresh, "accepted").Inc()
	observability.TokensIssued.WithLabelValues(auth.TokenTypeAccess).Inc()

	slog.Info("access token refreshed")
	return access, true
}

func (s *authService) Profile(ctx context.Context, userID string) (*models.User, error) {
	tracer := otel.Tracer("auth-service")
	ctx, span := tracer.Start(ctx, "Profile")
	defer span.End()

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "profile lookup failed")
		slog.Error("failed to get profile", "user_id", userID, "error", err)
		return nil, err
	}
	return user, nil
}

// publishEvent sends an auth event fire-and-forget with bounded retries.
// Delivery failures are logged, never surfaced to the caller.
func (s *authService) publishEvent(user *models.User, eventType string) {
	event := map[string]interface{}{
		"event_type": eventType,
		"user_id":    user.ID,
		"email":      user.Email,
		"created_at": time.Now().UTC().Format(time.RFC3339),
	}
	eventBytes, err := json.Marshal(event)
	if err != nil {
		slog.Error("failed to marshal kafka event",
			"user_id", user.ID,
			"event_type", eventType,
			"error", err)
		return
	}

	go func() {
		retries := 3
		for i := 0; i < retries; i++ {
			if err := s.events.Send(context.Background(), "auth-events", user.ID, eventBytes); err == nil {
				return
			}
			time.Sleep(time.Second * time.Duration(i+1))
		}
		slog.Error("failed to send auth event after retries",
			"user_id", user.ID,
			"event_type", eventType)
	}()
}
