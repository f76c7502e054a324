package service

import (
	"errors"
	"quizdom_backend/internal/config"
	"quizdom_backend/internal/model"
	"quizdom_backend/internal/repository"
	"quizdom_backend/internal/util"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService struct {
	Users  *repository.UserRepository
	jwtCfg config.JWTConfig
}

func NewAuthService(users *repository.UserRepository, jwtCfg config.JWTConfig) *AuthService {
	return &AuthService{Users: users, jwtCfg: jwtCfg}
}

type RegisterParams struct {
	Name           string
	Email          string
	Password       string
	FullName       string
	EducationLevel string
	DateOfBirth    time.Time
}

// Register 注册普通用户。邮箱与用户名各自唯一，
// 先查后插只是为了给出准确的错误信息，最终由唯一索引兜底。
func (s *AuthService) Register(params RegisterParams) (*model.User, error) {
	if _, err := s.Users.FindByEmail(params.Email); err == nil {
		return nil, util.ErrEmailRegistered
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if _, err := s.Users.FindByName(params.Name); err == nil {
		return nil, util.ErrNameTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(params.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Name:           params.Name,
		Email:          params.Email,
		Password:       string(hashed),
		FullName:       params.FullName,
		EducationLevel: params.EducationLevel,
		DateOfBirth:    params.DateOfBirth,
		Role:           model.RoleUser,
	}

	if err := s.Users.Create(user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, util.ErrEmailRegistered
		}
		return nil, err
	}
	return user, nil
}

// Login 校验凭据并签发 JWT。用户不存在与密码错误返回同一错误，
// 不向调用方泄露邮箱是否已注册。
func (s *AuthService) Login(email, password string) (string, *model.User, error) {
	user, err := s.Users.FindByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, util.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", nil, util.ErrInvalidCredentials
	}

	token, err := util.GenerateJWT(user, s.jwtCfg.Secret, s.jwtCfg.ExpireTime)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}
