package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"docshare/internal/auth"
	"docshare/internal/model"
	"docshare/internal/repository"
)

var validate = validator.New()

// RegisterInput is the data needed to create an account.
type RegisterInput struct {
	Username string `json:"username" validate:"required,max=20"`
	Email    string `json:"email" validate:"required,email,max=120"`
	Password string `json:"password" validate:"required,min=6"`
}

// IdentityService manages accounts and turns session tokens into principals.
type IdentityService interface {
	Register(ctx context.Context, in RegisterInput) (*model.User, error)
	// Authenticate checks a username and password. Unknown users, inactive
	// users and wrong passwords all yield ErrInvalidCredentials.
	Authenticate(ctx context.Context, username, password string) (*model.User, error)
	// Login authenticates and issues a session token.
	Login(ctx context.Context, username, password string) (string, *model.User, error)
	// ResolveCurrent maps a session token to the principal it names. Missing,
	// invalid or expired tokens resolve to model.Anonymous without an error.
	ResolveCurrent(ctx context.Context, token string) (model.Principal, error)
}

type identityService struct {
	db     repository.Querier
	users  repository.UserRepository
	hasher auth.PasswordHasher
	tokens *auth.TokenManager
	now    func() time.Time
}

func NewIdentityService(db repository.Querier, users repository.UserRepository, hasher auth.PasswordHasher, tokens *auth.TokenManager) IdentityService {
	return &identityService{
		db:     db,
		users:  users,
		hasher: hasher,
		tokens: tokens,
		now:    time.Now,
	}
}

func (s *identityService) Register(ctx context.Context, in RegisterInput) (_ *model.User, err error) {
	ctx, span := tracer.Start(ctx, "IdentityService.Register")
	defer func() { endSpan(span, err) }()

	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.TrimSpace(in.Email)
	if err := validate.Struct(in); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidInput, describeValidation(err))
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u, err := s.users.Create(ctx, s.db, &model.User{
		ID:           uuid.NewString(),
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: hash,
		Active:       true,
		CreatedAt:    s.now().UTC(),
	})
	switch {
	case repository.IsUniqueViolationOn(err, repository.ConstraintUsersUsername):
		return nil, fmt.Errorf("%w: username is taken", ErrDuplicateIdentity)
	case repository.IsUniqueViolationOn(err, repository.ConstraintUsersEmail):
		return nil, fmt.Errorf("%w: email is taken", ErrDuplicateIdentity)
	case errors.Is(err, repository.ErrUniqueViolation):
		return nil, ErrDuplicateIdentity
	case err != nil:
		return nil, fmt.Errorf("create user: %w", err)
	}
	span.SetAttributes(attribute.String("user.id", u.ID))
	return u, nil
}

func (s *identityService) Authenticate(ctx context.Context, username, password string) (_ *model.User, err error) {
	ctx, span := tracer.Start(ctx, "IdentityService.Authenticate")
	defer func() { endSpan(span, err) }()

	u, err := s.users.FindByUsername(ctx, s.db, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	if !u.Active {
		return nil, ErrInvalidCredentials
	}
	if err := s.hasher.Verify(u.PasswordHash, password); err != nil {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

func (s *identityService) Login(ctx context.Context, username, password string) (string, *model.User, error) {
	u, err := s.Authenticate(ctx, username, password)
	if err != nil {
		return "", nil, err
	}
	token, err := s.tokens.Issue(u)
	if err != nil {
		return "", nil, fmt.Errorf("issue token: %w", err)
	}
	return token, u, nil
}

func (s *identityService) ResolveCurrent(ctx context.Context, token string) (model.Principal, error) {
	if token == "" {
		return model.Anonymous, nil
	}
	claims, err := s.tokens.Parse(token)
	if err != nil {
		return model.Anonymous, nil
	}

	u, err := s.users.FindByID(ctx, s.db, claims.UserID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Anonymous, nil
		}
		return model.Anonymous, fmt.Errorf("load user: %w", err)
	}
	if !u.Active {
		return model.Anonymous, nil
	}
	return model.Principal{UserID: u.ID, Username: u.Username}, nil
}

// describeValidation names the first field that failed, in the JSON spelling.
func describeValidation(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err.Error()
	}
	e := verrs[0]
	field := strings.ToLower(e.Field())
	switch e.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return field + " must be a valid email address"
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, e.Param())
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, e.Param())
	default:
		return fmt.Sprintf("%s failed on '%s'", field, e.Tag())
	}
}
