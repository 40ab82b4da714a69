package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"anoa.com/askhub/internal/model"
	"anoa.com/askhub/internal/repository"
	"anoa.com/askhub/pkg/apperror"
	"anoa.com/askhub/pkg/storage"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type UpdateProfileInput struct {
	Name     *string `json:"name" form:"name"`
	Password *string `json:"password" form:"password"`
}

// AvatarFile is an uploaded avatar image.
type AvatarFile struct {
	Reader   io.Reader
	FileName string
}

type ProfileService interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (*model.User, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, input UpdateProfileInput, avatar *AvatarFile) (*model.User, error)
}

type profileService struct {
	userRepo     repository.UserRepository
	imageStorage storage.ImageStorage
}

func NewProfileService(userRepo repository.UserRepository, imageStorage storage.ImageStorage) ProfileService {
	return &profileService{
		userRepo:     userRepo,
		imageStorage: imageStorage,
	}
}

func (s *profileService) GetProfile(ctx context.Context, userID uuid.UUID) (*model.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.New(404, "user not found", apperror.ErrNotFound)
		}
		return nil, err
	}
	user.PasswordHash = ""
	return user, nil
}

func (s *profileService) UpdateProfile(ctx context.Context, userID uuid.UUID, input UpdateProfileInput, avatar *AvatarFile) (*model.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.New(404, "user not found", apperror.ErrNotFound)
		}
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if len(name) < 2 || len(name) > 100 {
			return nil, apperror.New(400, "name must be between 2 and 100 characters", apperror.ErrBadRequest)
		}
		user.Name = name
	}

	if input.Password != nil && *input.Password != "" {
		if len(*input.Password) < 8 {
			return nil, apperror.New(400, "password must be at least 8 characters", apperror.ErrBadRequest)
		}
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(*input.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		user.PasswordHash = string(hashedPassword)
	}

	if avatar != nil && avatar.Reader != nil && s.imageStorage != nil {
		url, err := s.imageStorage.UploadImage(ctx, avatar.Reader, "avatars", avatar.FileName)
		if err != nil {
			return nil, err
		}
		if user.AvatarURL != nil {
			// Best-effort cleanup of the previous avatar.
			_ = s.imageStorage.DeleteImage(ctx, *user.AvatarURL)
		}
		user.AvatarURL = &url
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	user.PasswordHash = ""
	return user, nil
}
