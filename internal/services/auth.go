package services

import (
	"errors"
	"time"

	"github.com/masna/backend/internal/config"
	"github.com/masna/backend/internal/models"
	"github.com/masna/backend/internal/policy"
	"github.com/masna/backend/internal/utils"
	"github.com/masna/backend/pkg/logger"
	"github.com/masna/backend/pkg/response"
	"gorm.io/gorm"
)

type AuthService struct {
	db        *gorm.DB
	jwtConfig *config.JWTConfig
}

func NewAuthService(db *gorm.DB, jwtCfg *config.JWTConfig) *AuthService {
	return &AuthService{db: db, jwtConfig: jwtCfg}
}

type RegisterRequest struct {
	Email        string   `json:"email" binding:"required,email"`
	Password     string   `json:"password" binding:"required,min=6"`
	FullName     string   `json:"full_name" binding:"required"`
	Role         string   `json:"role" binding:"required,oneof=idea_creator executor employer admin"`
	Bio          string   `json:"bio"`
	Skills       []string `json:"skills"`
	PortfolioURL string   `json:"portfolio_url"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpireAt    time.Time `json:"expire_at"`
}

type UpdateProfileRequest struct {
	FullName     string   `json:"full_name"`
	Bio          string   `json:"bio"`
	Skills       []string `json:"skills"`
	PortfolioURL string   `json:"portfolio_url"`
	AvatarURL    string   `json:"avatar_url"`
}

// Register creates a new user account. Emails are unique.
func (s *AuthService) Register(req *RegisterRequest) (*models.User, error) {
	if !policy.ValidRole(req.Role) {
		return nil, response.NewBadRequest("invalid role")
	}

	var count int64
	if err := s.db.Model(&models.User{}).Where("email = ?", req.Email).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, response.NewConflict("email already registered")
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := models.User{
		Email:          req.Email,
		HashedPassword: hash,
		FullName:       req.FullName,
		Role:           req.Role,
		Bio:            req.Bio,
		Skills:         models.StringList(req.Skills),
		PortfolioURL:   req.PortfolioURL,
		IsActive:       true,
	}

	if err := s.db.Create(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// Login authenticates a user by email and password and returns a JWT.
func (s *AuthService) Login(req *LoginRequest) (*LoginResponse, error) {
	var user models.User
	if err := s.db.Where("email = ?", req.Email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewUnauthorized("incorrect email or password")
		}
		return nil, err
	}

	if !user.IsActive || !utils.CheckPassword(req.Password, user.HashedPassword) {
		return nil, response.NewUnauthorized("incorrect email or password")
	}

	expireHours := s.jwtConfig.ExpireHour
	token, err := utils.GenerateToken(user.ID, user.Email, user.Role, expireHours)
	if err != nil {
		return nil, err
	}

	return &LoginResponse{
		AccessToken: token,
		TokenType:   "bearer",
		ExpireAt:    time.Now().Add(time.Duration(expireHours) * time.Hour),
	}, nil
}

// GetProfile returns the user with the given id.
func (s *AuthService) GetProfile(userID uint) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("user not found")
		}
		return nil, err
	}
	return &user, nil
}

// UpdateProfile updates the caller's own profile fields.
func (s *AuthService) UpdateProfile(userID uint, req *UpdateProfileRequest) (*models.User, error) {
	user, err := s.GetProfile(userID)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if req.FullName != "" {
		updates["full_name"] = req.FullName
	}
	if req.Bio != "" {
		updates["bio"] = req.Bio
	}
	if req.Skills != nil {
		updates["skills"] = models.StringList(req.Skills)
	}
	if req.PortfolioURL != "" {
		updates["portfolio_url"] = req.PortfolioURL
	}
	if req.AvatarURL != "" {
		updates["avatar_url"] = req.AvatarURL
	}

	if len(updates) > 0 {
		if err := s.db.Model(user).Updates(updates).Error; err != nil {
			return nil, err
		}
	}
	return s.GetProfile(userID)
}

// CreateAdminIfNotExists seeds a default admin account on an empty user table.
func (s *AuthService) CreateAdminIfNotExists() error {
	var count int64
	if err := s.db.Model(&models.User{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := utils.HashPassword("admin123")
	if err != nil {
		return err
	}

	admin := models.User{
		Email:          "admin@masna.local",
		HashedPassword: hash,
		FullName:       "Administrator",
		Role:           models.RoleAdmin,
		IsActive:       true,
		IsVerified:     true,
	}
	if err := s.db.Create(&admin).Error; err != nil {
		return err
	}

	logger.Warnf("[Auth] Created default admin %s with initial password, change it immediately", admin.Email)
	return nil
}
