package users

import (
	"context"
	"errors"

	"github.com/google/uuid"
	pkgerrors "github.com/zxclownhd/fishing-app/pkg/errors"
	"gorm.io/gorm"
)

// PasswordHasher hashes and verifies credentials.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, encoded string) (bool, error)
}

// SessionRevoker ends the sessions of a user except the one identified by keepAccessID.
type SessionRevoker interface {
	RevokeAll(ctx context.Context, userID, keepAccessID string) error
}

// ChangePasswordInput carries the password change request together with the
// access id of the calling session, which stays valid.
type ChangePasswordInput struct {
	CurrentPassword string
	NewPassword     string
	AccessID        string
}

// ProfileService is the self-service surface behind /me.
type ProfileService interface {
	Get(ctx context.Context, userID uuid.UUID) (*UserDTO, error)
	UpdateDisplayName(ctx context.Context, userID uuid.UUID, displayName string) (*UserDTO, error)
	ChangePassword(ctx context.Context, userID uuid.UUID, input ChangePasswordInput) error
}

type ProfileServiceParams struct {
	Repo     *Repository
	Hasher   PasswordHasher
	Sessions SessionRevoker
}

type profileService struct {
	repo     *Repository
	hasher   PasswordHasher
	sessions SessionRevoker
}

func NewProfileService(params ProfileServiceParams) (ProfileService, error) {
	if params.Repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user repo is required")
	}
	if params.Hasher == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "password hasher is required")
	}
	if params.Sessions == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "session revoker is required")
	}
	return &profileService{repo: params.Repo, hasher: params.Hasher, sessions: params.Sessions}, nil
}

func (s *profileService) Get(ctx context.Context, userID uuid.UUID) (*UserDTO, error) {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, userLookupError(err)
	}
	return FromModel(user), nil
}

func (s *profileService) UpdateDisplayName(ctx context.Context, userID uuid.UUID, displayName string) (*UserDTO, error) {
	name, err := NormalizeDisplayName(displayName)
	if err != nil {
		return nil, err
	}
	if err := s.repo.UpdateDisplayName(ctx, userID, name); err != nil {
		if conflict := ConflictFromUnique(err); conflict != nil {
			return nil, conflict
		}
		return nil, userLookupError(err)
	}
	return s.Get(ctx, userID)
}

// ChangePassword verifies the current password, stores the new hash and ends
// every other session of the user.
func (s *profileService) ChangePassword(ctx context.Context, userID uuid.UUID, input ChangePasswordInput) error {
	if input.CurrentPassword == "" {
		return fieldError("currentPassword", "currentPassword is required")
	}
	if err := CheckPassword("newPassword", input.NewPassword); err != nil {
		return err
	}

	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return userLookupError(err)
	}
	ok, err := s.hasher.Verify(input.CurrentPassword, user.PasswordHash)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "verify password")
	}
	if !ok {
		return fieldError("currentPassword", "Current password is incorrect")
	}

	hash, err := s.hasher.Hash(input.NewPassword)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}
	if err := s.repo.UpdatePasswordHash(ctx, userID, hash); err != nil {
		return userLookupError(err)
	}
	if err := s.sessions.RevokeAll(ctx, userID.String(), input.AccessID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "revoke sessions")
	}
	return nil
}

func userLookupError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return pkgerrors.New(pkgerrors.CodeNotFound, "User not found")
	}
	return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load user")
}
