// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"

	deliverycontext "passport/internal/delivery/context"
	"passport/internal/domain/entity"
	domainerrors "passport/internal/domain/errors"
	"passport/internal/domain/repository"
	"passport/internal/domain/service"
	"passport/internal/errors"
	"passport/internal/usecase"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/fx"
)

// accountService implements the AccountUsecase interface.
type accountService struct {
	userRepo repository.UserRepository
	hasher   service.PasswordHasher
	tokens   service.TokenService
	validate *validator.Validate
	logger   *slog.Logger
}

// AccountServiceParams holds dependencies for the account service, injected by Fx.
type AccountServiceParams struct {
	fx.In

	UserRepo     repository.UserRepository
	Hasher       service.PasswordHasher
	TokenService service.TokenService
	Logger       *slog.Logger
}

// NewAccountService is the constructor for accountService. It receives all dependencies as interfaces.
func NewAccountService(params AccountServiceParams) usecase.AccountUsecase {
	return &accountService{
		userRepo: params.UserRepo,
		hasher:   params.Hasher,
		tokens:   params.TokenService,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		logger:   params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *accountService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Register orchestrates the complete registration process. Input shape is
// validated before any lookup; the existence checks only scope the conflict
// message, with precedence email+username > email > username. The unique
// indexes in the store decide concurrent registrations.
func (srv *accountService) Register(ctx context.Context, input *usecase.RegisterInput) error {
	if input == nil {
		return errors.Wrap(domainerrors.ErrValidationFailed.WithDetails("request body is required"), "register input rejected")
	}

	if err := srv.validate.Struct(input); err != nil {
		return errors.Wrap(domainerrors.ErrValidationFailed.WithDetails(err.Error()), "register input rejected")
	}

	srv.log(ctx).Info("Starting registration", slog.String("email", input.Email))

	emailTaken, err := srv.exists(ctx, func() (*entity.User, error) {
		return srv.userRepo.FindByEmail(ctx, input.Email)
	})
	if err != nil {
		return errors.Wrap(err, "failed to check email existence")
	}

	usernameTaken, err := srv.exists(ctx, func() (*entity.User, error) {
		return srv.userRepo.FindByUsername(ctx, input.Username)
	})
	if err != nil {
		return errors.Wrap(err, "failed to check username existence")
	}

	switch {
	case emailTaken && usernameTaken:
		return domainerrors.ErrEmailAndUsernameTaken.WrapMessage("registration rejected")
	case emailTaken:
		return domainerrors.ErrEmailTaken.WrapMessage("registration rejected")
	case usernameTaken:
		return domainerrors.ErrUsernameTaken.WrapMessage("registration rejected")
	}

	passwordHash, err := srv.hasher.Hash(input.Password)
	if err != nil {
		srv.log(ctx).Error("Failed to hash password during registration", slog.Any("error", err))

		return domainerrors.ErrPasswordHashFailed.WrapMessage("registration rejected")
	}

	newUser := &entity.User{
		Username:     input.Username,
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Email:        input.Email,
		PasswordHash: passwordHash,
	}

	if err := srv.userRepo.Create(ctx, newUser); err != nil {
		// A concurrent registration may slip past the advisory checks; the
		// store's unique index is the source of truth.
		switch {
		case errors.Is(err, repository.ErrDuplicateEmail):
			return domainerrors.ErrEmailTaken.WrapMessage("registration lost uniqueness race")
		case errors.Is(err, repository.ErrDuplicateUsername):
			return domainerrors.ErrUsernameTaken.WrapMessage("registration lost uniqueness race")
		}

		return errors.Wrap(err, "failed to create user")
	}

	srv.log(ctx).Debug("Registration completed", slog.Any("userID", newUser.ID))

	return nil
}

// Login verifies the credentials and issues a bearer token. Unknown email
// and wrong password produce the same error so callers cannot probe which
// addresses are registered.
func (srv *accountService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.LoginOutput, error) {
	if input == nil {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed.WithDetails("request body is required"), "login input rejected")
	}

	if err := srv.validate.Struct(input); err != nil {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed.WithDetails(err.Error()), "login input rejected")
	}

	srv.log(ctx).Debug("Starting login", slog.String("email", input.Email))

	user, err := srv.userRepo.FindByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrInvalidCredentials.WrapMessage("login failed")
		}

		return nil, errors.Wrap(err, "failed to find user by email")
	}

	ok, err := srv.hasher.Check(input.Password, user.PasswordHash)
	if err != nil {
		srv.log(ctx).Error("Stored credential hash unreadable", slog.Any("userID", user.ID), slog.Any("error", err))

		return nil, domainerrors.ErrPasswordHashFailed.WrapMessage("login failed")
	}
	if !ok {
		srv.log(ctx).Warn("Password mismatch", slog.String("email", input.Email))

		return nil, domainerrors.ErrInvalidCredentials.WrapMessage("login failed")
	}

	token, err := srv.tokens.Issue(user.ID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to issue token")
	}

	srv.log(ctx).Debug("Login succeeded", slog.Any("userID", user.ID))

	return &usecase.LoginOutput{Token: token, UserID: user.ID}, nil
}

// GetInfo returns the public projection of the authenticated user.
// Credential material never leaves this layer.
func (srv *accountService) GetInfo(ctx context.Context, userID uuid.UUID) (*entity.PublicUser, error) {
	user, err := srv.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrUserNotFound.WrapMessage("account no longer exists")
		}

		return nil, errors.Wrap(err, "failed to find user by id")
	}

	return user.Public(), nil
}

// UpdateInfo rewrites username, first and last name of the authenticated
// user. A username held by a different account is a conflict; re-submitting
// the caller's own username is not.
func (srv *accountService) UpdateInfo(ctx context.Context, userID uuid.UUID, input *usecase.UpdateInfoInput) (*usecase.UpdateInfoOutput, error) {
	if input == nil {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed.WithDetails("request body is required"), "update input rejected")
	}

	srv.log(ctx).Info("Updating account info", slog.Any("userID", userID))

	user, err := srv.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrUserNotFound.WrapMessage("update rejected")
		}

		return nil, errors.Wrap(err, "failed to find user by id")
	}

	if err := srv.validate.Struct(input); err != nil {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed.WithDetails(err.Error()), "update input rejected")
	}

	holder, err := srv.userRepo.FindByUsername(ctx, input.Username)
	if err != nil && !errors.Is(err, repository.ErrUserNotFound) {
		return nil, errors.Wrap(err, "failed to check username collision")
	}
	if holder != nil && holder.ID != user.ID {
		return nil, domainerrors.ErrUsernameTaken.WrapMessage("update rejected")
	}

	user.Username = input.Username
	user.FirstName = input.FirstName
	user.LastName = input.LastName

	result, err := srv.userRepo.Update(ctx, user)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicateUsername):
			return nil, domainerrors.ErrUsernameTaken.WrapMessage("update lost uniqueness race")
		case errors.Is(err, repository.ErrUserNotFound):
			return nil, domainerrors.ErrUserNotFound.WrapMessage("update rejected")
		}

		return nil, errors.Wrap(err, "failed to update user")
	}

	srv.log(ctx).Debug("Account info updated", slog.Any("userID", userID))

	return &usecase.UpdateInfoOutput{Result: result}, nil
}

// Delete removes the authenticated user's own account. A userId supplied in
// the request must match the token's subject; there is no admin capability.
func (srv *accountService) Delete(ctx context.Context, userID uuid.UUID, input *usecase.DeleteInput) error {
	if input != nil && input.UserID != "" {
		requested, err := uuid.Parse(input.UserID)
		if err != nil {
			return errors.Wrap(domainerrors.ErrValidationFailed.WithDetails("userId is not a valid id"), "delete rejected")
		}
		if requested != userID {
			srv.log(ctx).Warn("Cross-account delete attempt", slog.Any("userID", userID), slog.Any("requested", requested))

			return domainerrors.ErrOwnershipViolation.WrapMessage("delete rejected")
		}
	}

	if err := srv.userRepo.Delete(ctx, userID); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return domainerrors.ErrUserNotFound.WrapMessage("delete rejected")
		}

		return errors.Wrap(err, "failed to delete user")
	}

	srv.log(ctx).Info("Account deleted", slog.Any("userID", userID))

	return nil
}

// exists folds a lookup into a boolean, treating not-found as absence and
// any other failure as a store fault.
func (srv *accountService) exists(_ context.Context, find func() (*entity.User, error)) (bool, error) {
	_, err := find()
	if err == nil {
		return true, nil
	}
	if errors.Is(err, repository.ErrUserNotFound) {
		return false, nil
	}

	return false, err
}
