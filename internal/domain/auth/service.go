package auth

import (
	"context"

	"github.com/Fede-Barberis/Finance-Manager/internal/domain/user"
	appErrors "github.com/Fede-Barberis/Finance-Manager/internal/errors"

	"golang.org/x/crypto/bcrypt"
)

type Login struct {
	Email    string
	Password string
}

type Service struct {
	Repository  user.Repository
	UserService *user.Service
}

func NewService(repo user.Repository, userSvc *user.Service) *Service {
	return &Service{
		Repository:  repo,
		UserService: userSvc,
	}
}

func (s *Service) Login(ctx context.Context, login Login) (*user.User, error) {
	entity, err := s.Repository.GetByEmail(ctx, login.Email)
	if err != nil {
		if appErr, ok := appErrors.AsAppError(err); ok && appErr.Code == appErrors.ErrUserNotFound.Code {
			return nil, appErrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := PasswordValidate(login.Password, entity.Password); err != nil {
		return nil, err
	}

	return entity, nil
}

func (s *Service) Register(ctx context.Context, entity *user.User) error {
	exists, err := s.emailExists(ctx, entity.Email)
	if err != nil {
		return err
	}
	if exists {
		return appErrors.ErrEmailAlreadyExists
	}

	if err := PasswordRequirements(entity.Password); err != nil {
		return err
	}

	return s.UserService.Create(ctx, entity)
}

func (s *Service) emailExists(ctx context.Context, email string) (bool, error) {
	_, err := s.Repository.GetByEmail(ctx, email)
	if err != nil {
		if appErr, ok := appErrors.AsAppError(err); ok && appErr.Code == appErrors.ErrUserNotFound.Code {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func PasswordRequirements(password string) error {
	if len(password) < 8 {
		return appErrors.NewValidationError("password", "la contraseña debe tener al menos 8 caracteres")
	}
	return nil
}

func PasswordValidate(plain, hashed string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain)); err != nil {
		return appErrors.ErrInvalidCredentials.WithError(err)
	}
	return nil
}
