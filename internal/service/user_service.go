// Package service implements the domain rules for the user directory and the
// tweet engine. Every operation returns a result envelope by value: failures
// are part of the envelope, never a raised fault.
package service

import (
	"context"
	"log/slog"

	"tweetapp/internal/middleware"
	"tweetapp/internal/models"
	"tweetapp/internal/repository"
)

// Messages carried on user directory envelopes.
const (
	MsgUserCreated      = "User registered successfully"
	MsgLoginSuccess     = "Login successful"
	MsgAccountFound     = "Account found"
	MsgPasswordChanged  = "Password changed successfully"
	MsgUsersFound       = "Users retrieved successfully"
	MsgPasswordMismatch = "Password and confirm password do not match"
	MsgLoginTaken       = "Login id is already in use"
	MsgEmailTaken       = "Email is already in use"
	MsgWrongPassword    = "Incorrect password"
	MsgContactMismatch  = "Email and contact number do not match our records"
	MsgUserNotFound     = "User does not exist"
	MsgNoUsersFound     = "No users found"
	MsgInternalError    = "Something went wrong, please try again later"
)

// UserService owns user identity rules: registration uniqueness, credential
// checks and password recovery.
type UserService struct {
	users repository.UserRepository
	seq   repository.SequenceRepository
}

// NewUserService returns a new UserService.
func NewUserService(users repository.UserRepository, seq repository.SequenceRepository) *UserService {
	return &UserService{users: users, seq: seq}
}

// failUser logs the underlying fault and converts it to a generic
// INTERNAL_ERROR envelope. Raw fault details never reach the caller.
func (s *UserService) failUser(ctx context.Context, op string, err error) *models.UserResponse {
	middleware.Logger.ErrorContext(ctx, "user directory operation failed",
		slog.String("operation", op),
		slog.String("error", err.Error()),
	)
	return models.UserFailure(models.StatusInternalError, MsgInternalError)
}

// Register creates a new account. Checks run in a fixed order so only the
// first failing rule is revealed: password match, then login id uniqueness,
// then email uniqueness.
func (s *UserService) Register(ctx context.Context, candidate models.User) *models.UserResponse {
	if candidate.Password != candidate.ConfirmPassword {
		return models.UserFailure(models.StatusConflict, MsgPasswordMismatch)
	}

	existing, err := s.users.GetByLoginID(ctx, candidate.LoginID)
	if err != nil {
		return s.failUser(ctx, "register", err)
	}
	if existing != nil {
		return models.UserFailure(models.StatusConflict, MsgLoginTaken)
	}

	existing, err = s.users.GetByEmail(ctx, candidate.Email)
	if err != nil {
		return s.failUser(ctx, "register", err)
	}
	if existing != nil {
		return models.UserFailure(models.StatusConflict, MsgEmailTaken)
	}

	id, err := s.seq.Next(ctx, models.UserSequence)
	if err != nil {
		return s.failUser(ctx, "register", err)
	}

	candidate.ID = id
	candidate.ConfirmPassword = ""
	if err := s.users.Create(ctx, &candidate); err != nil {
		// The unique indexes are the backstop for registrations racing
		// past the checks above; surface those as a conflict, not a fault.
		if appErr, ok := err.(*models.AppError); ok && appErr.Code == models.StatusConflict {
			return models.UserFailure(models.StatusConflict, appErr.Message)
		}
		return s.failUser(ctx, "register", err)
	}

	return models.UserSuccess(MsgUserCreated)
}

// Login checks the stored credential for the login id. Success issues no
// session or token; the envelope is the whole outcome.
func (s *UserService) Login(ctx context.Context, loginID, password string) *models.UserResponse {
	user, err := s.users.GetByLoginID(ctx, loginID)
	if err != nil {
		return s.failUser(ctx, "login", err)
	}
	if user == nil {
		return models.UserFailure(models.StatusNotFound, MsgUserNotFound)
	}
	if user.Password != password {
		return models.UserFailure(models.StatusConflict, MsgWrongPassword)
	}
	return models.UserSuccess(MsgLoginSuccess)
}

// ForgotPassword acknowledges that an account exists for the login id.
// It sends and generates nothing.
func (s *UserService) ForgotPassword(ctx context.Context, loginID string) *models.UserResponse {
	user, err := s.users.GetByLoginID(ctx, loginID)
	if err != nil {
		return s.failUser(ctx, "forgot_password", err)
	}
	if user == nil {
		return models.UserFailure(models.StatusNotFound, MsgUserNotFound)
	}
	return models.UserSuccess(MsgAccountFound)
}

// ResetPassword overwrites the stored password once the candidate's password
// pair matches and its email and contact number both match the stored record.
func (s *UserService) ResetPassword(ctx context.Context, loginID string, candidate models.User) *models.UserResponse {
	user, err := s.users.GetByLoginID(ctx, loginID)
	if err != nil {
		return s.failUser(ctx, "reset_password", err)
	}
	if user == nil {
		return models.UserFailure(models.StatusNotFound, MsgUserNotFound)
	}
	if candidate.Password != candidate.ConfirmPassword {
		return models.UserFailure(models.StatusConflict, MsgPasswordMismatch)
	}
	if user.Email != candidate.Email || user.ContactNumber != candidate.ContactNumber {
		return models.UserFailure(models.StatusConflict, MsgContactMismatch)
	}

	user.Password = candidate.Password
	if err := s.users.Update(ctx, user); err != nil {
		return s.failUser(ctx, "reset_password", err)
	}
	return models.UserSuccess(MsgPasswordChanged)
}

// ListAllUsers returns every user in storage-native order.
func (s *UserService) ListAllUsers(ctx context.Context) *models.UserResponse {
	users, err := s.users.List(ctx)
	if err != nil {
		return s.failUser(ctx, "list_all_users", err)
	}
	if len(users) == 0 {
		return models.UserFailure(models.StatusNotFound, MsgNoUsersFound)
	}
	return models.UserSuccess(MsgUsersFound, users...)
}

// SearchByUserName returns users whose login id contains the fragment.
func (s *UserService) SearchByUserName(ctx context.Context, fragment string) *models.UserResponse {
	users, err := s.users.SearchByLoginID(ctx, fragment)
	if err != nil {
		return s.failUser(ctx, "search_by_user_name", err)
	}
	if len(users) == 0 {
		return models.UserFailure(models.StatusNotFound, MsgNoUsersFound)
	}
	return models.UserSuccess(MsgUsersFound, users...)
}

// GetByUserName looks up the single user with the exact login id, wrapped in
// the same list-shaped envelope as search for interface uniformity.
func (s *UserService) GetByUserName(ctx context.Context, loginID string) *models.UserResponse {
	user, err := s.users.GetByLoginID(ctx, loginID)
	if err != nil {
		return s.failUser(ctx, "get_by_user_name", err)
	}
	if user == nil {
		return models.UserFailure(models.StatusNotFound, MsgNoUsersFound)
	}
	return models.UserSuccess(MsgUsersFound, *user)
}
