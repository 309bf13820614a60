package services

import (
	"strings"

	"gym_backend/internal/auth"
	"gym_backend/internal/dto"
	"gym_backend/internal/logger"
	"gym_backend/internal/models"
	"gym_backend/internal/repositories"
	"gym_backend/pkg/apperrors"

	"gorm.io/gorm"
)

// AdminSeed - данные первого администратора из конфигурации
type AdminSeed struct {
	Email    string
	Password string
	Name     string
	GymID    uint
}

type AuthService interface {
	Login(db *gorm.DB, req *dto.LoginRequest) (*dto.LoginResponse, error)
	// CreateUser - новый сотрудник; роль по умолчанию staff
	CreateUser(db *gorm.DB, req *dto.CreateUserRequest) (*dto.UserResponse, error)
	// SeedAdmin создает администратора, если таблица users пуста
	SeedAdmin(db *gorm.DB, seed AdminSeed) (bool, error)
}

type authService struct {
	userRepo repositories.UserRepository
	tokens   *auth.TokenManager
}

func NewAuthService(userRepo repositories.UserRepository, tokens *auth.TokenManager) AuthService {
	return &authService{
		userRepo: userRepo,
		tokens:   tokens,
	}
}

// Login - вход сотрудника
func (s *authService) Login(db *gorm.DB, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.userRepo.FindByEmail(db, req.Email)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if !auth.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, apperrors.ErrInvalidCredentials
	}

	token, err := s.tokens.Generate(user.ID, string(user.Role), user.GymID, user.Name)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.LoginResponse{
		Token: token,
		GymID: user.GymID,
		Name:  user.Name,
	}, nil
}

func (s *authService) CreateUser(db *gorm.DB, req *dto.CreateUserRequest) (*dto.UserResponse, error) {
	if err := auth.ValidatePassword(req.Password); err != nil {
		return nil, apperrors.ValidationError(err.Error(), map[string]string{"password": err.Error()})
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	role := models.UserRole(req.Role)
	if role == "" {
		role = models.UserRoleStaff
	}

	user := &models.User{
		Email:        req.Email,
		PasswordHash: hash,
		Name:         strings.TrimSpace(req.Name),
		Role:         role,
		GymID:        req.GymID,
	}
	if err := s.userRepo.Create(db, user); err != nil {
		return nil, err
	}

	return &dto.UserResponse{
		ID:    user.ID,
		Email: user.Email,
		Name:  user.Name,
		Role:  string(user.Role),
		GymID: user.GymID,
	}, nil
}

func (s *authService) SeedAdmin(db *gorm.DB, seed AdminSeed) (bool, error) {
	if seed.Email == "" || seed.Password == "" {
		return false, nil
	}

	created := false
	err := db.Transaction(func(tx *gorm.DB) error {
		count, err := s.userRepo.Count(tx)
		if err != nil {
			return err
		}
		if count > 0 {
			return nil
		}

		hash, err := auth.HashPassword(seed.Password)
		if err != nil {
			return err
		}
		if err := s.userRepo.Create(tx, &models.User{
			Email:        seed.Email,
			PasswordHash: hash,
			Name:         seed.Name,
			Role:         models.UserRoleAdmin,
			GymID:        seed.GymID,
		}); err != nil {
			return err
		}
		created = true
		return nil
	})
	if err != nil {
		return false, err
	}

	if created {
		logger.Info("First admin created", "email", seed.Email, "gym_id", seed.GymID)
	}
	return created, nil
}
