package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/shandysiswandi/artmatch/internal/identity/entity"
	"github.com/shandysiswandi/artmatch/internal/pkg/goerror"
	"github.com/shandysiswandi/artmatch/internal/pkg/idempotency"
)

type RegisterInput struct {
	Email    string `validate:"required,email,max=255"`
	Password string `validate:"required,password"`
}

type RegisterOutput struct {
	ID    int64
	Email string
}

func (s *Usecase) Register(ctx context.Context, in RegisterInput) (*RegisterOutput, error) {
	ctx, span := s.startSpan(ctx, "Register")
	defer span.End()

	in.Email = strings.TrimSpace(strings.ToLower(in.Email))

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	emailKey, err := s.hmac.Hash(in.Email)
	if err != nil {
		slog.ErrorContext(ctx, "failed to hash registration key", "error", err)
		return nil, goerror.NewServer(err)
	}

	var out *RegisterOutput
	err = s.idemp.Exec(ctx, "identity:register:"+string(emailKey), func(ctx context.Context) error {
		var err error
		out, err = s.register(ctx, in)
		return err
	},
		idempotency.WithLockDuration(s.cfg.GetSecond("modules.identity.register_lock_seconds")),
		idempotency.WithStateTTL(s.cfg.GetSecond("modules.identity.register_lock_seconds")),
		idempotency.WithReleaseOnFailure(),
	)

	var gerr *goerror.Error
	switch {
	case err == nil:
		return out, nil
	case errors.Is(err, idempotency.ErrAlreadyInProgress):
		slog.WarnContext(ctx, "registration already in progress", "email", in.Email)
		return nil, goerror.NewBusiness("Registration already in progress", goerror.CodeConflict)
	case errors.Is(err, idempotency.ErrAlreadyCompleted), errors.Is(err, idempotency.ErrAlreadyFailed):
		return nil, goerror.NewBusiness("Email already in use", goerror.CodeConflict)
	case errors.As(err, &gerr):
		return nil, gerr
	default:
		slog.ErrorContext(ctx, "failed to run idempotent registration", "email", in.Email, "error", err)
		return nil, goerror.NewServer(err)
	}
}

func (s *Usecase) register(ctx context.Context, in RegisterInput) (*RegisterOutput, error) {
	exists, err := s.repoDB.ExistsUserByEmail(ctx, in.Email)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo check user email", "email", in.Email, "error", err)
		return nil, goerror.NewServer(err)
	}
	if exists {
		slog.WarnContext(ctx, "email already registered", "email", in.Email)
		return nil, goerror.NewBusiness("Email already in use", goerror.CodeConflict)
	}

	hashed, err := s.hashPassword(ctx, in.Password)
	if err != nil {
		slog.ErrorContext(ctx, "failed to hash password", "error", err)
		return nil, goerror.NewServerMessage(err, "Registration failed")
	}

	user := entity.NewUser{ID: s.uid.Generate(), Email: in.Email}
	err = s.repoDB.NewUser(ctx, user, hashed)
	if errors.Is(err, goerror.ErrConflict) {
		slog.WarnContext(ctx, "email registered concurrently", "email", in.Email)
		return nil, goerror.NewBusiness("Email already in use", goerror.CodeConflict)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo create user", "email", in.Email, "error", err)
		return nil, goerror.NewServer(err)
	}

	slog.InfoContext(ctx, "user registered", "user_id", user.ID)

	return &RegisterOutput{ID: user.ID, Email: user.Email}, nil
}
