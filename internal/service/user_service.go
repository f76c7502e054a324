package service

import (
	"quizdom_backend/internal/model"
	"quizdom_backend/internal/repository"
)

type UserService struct {
	Users *repository.UserRepository
}

func NewUserService(users *repository.UserRepository) *UserService {
	return &UserService{Users: users}
}

// ListUsers 管理端用户列表，只含普通用户。
func (s *UserService) ListUsers() ([]model.User, error) {
	return s.Users.ListByRole(model.RoleUser)
}
