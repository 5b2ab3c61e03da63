package service

import (
	"errors"
	"fmt"

	"Orbit_Community/internal/model"
	"Orbit_Community/internal/pkg"
	"Orbit_Community/internal/repository/redis"

	"golang.org/x/crypto/bcrypt"
)

type UserService struct {
	repo       UserStore
	rToken     *redis.TokenRepository
	activation *ActivationService
	tokens     *pkg.TokenManager
}

func NewUserService(repo UserStore, tokens *pkg.TokenManager, activation *ActivationService) *UserService {
	return &UserService{
		repo:       repo,
		rToken:     &redis.TokenRepository{},
		activation: activation,
		tokens:     tokens,
	}
}

// Register 先建未激活账号，激活码走邮件
func (s *UserService) Register(username, password, name, email string) (*model.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Username: username,
		Password: string(hash),
		Name:     name,
		Email:    email,
	}
	if err := s.repo.Create(user); err != nil {
		return nil, err
	}

	if err := s.activation.SendCode(email); err != nil {
		return nil, err
	}
	return user, nil
}

// Activate 校验激活码并点亮账号
func (s *UserService) Activate(email, code string) error {
	ok, err := s.activation.VerifyCode(email, code)
	if err != nil {
		return err
	}
	if !ok {
		return errors.New("verification failed")
	}

	user, err := s.repo.FindByEmail(email)
	if err != nil {
		return err
	}
	return s.repo.Activate(user)
}

func (s *UserService) Login(username, password string) (*pkg.Pair, error) {
	user, err := s.repo.FindByUsername(username)
	if err != nil {
		return nil, errors.New("user not found")
	}
	if !user.Activated {
		return nil, errors.New("account not activated")
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return nil, errors.New("invalid password")
	}

	token, err := s.tokens.GeneratePair(user.ID)
	if err != nil {
		return nil, err
	}
	// access token 写入 redis 白名单
	if err := s.rToken.AddUserToken(user.ID, token.AccessToken); err != nil {
		return nil, err
	}
	return token, nil
}

func (s *UserService) Logout(userID uint64) error {
	return s.rToken.DeleteUserToken(userID)
}

func (s *UserService) Refresh(refreshToken string) (*pkg.Pair, error) {
	return s.tokens.Refresh(refreshToken)
}

// ChangePassword 登录态修改密码，改完强制重新登录
func (s *UserService) ChangePassword(userID uint64, oldPassword, newPassword string) error {
	user, err := s.repo.FindByID(userID)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(oldPassword)); err != nil {
		return errors.New("old password is incorrect")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	if err := s.repo.UpdatePassword(user, string(hash)); err != nil {
		return err
	}
	return s.Logout(userID)
}

func (s *UserService) Get(userID uint64) (*model.User, error) {
	user, err := s.repo.FindByID(userID)
	if err != nil {
		return nil, fmt.Errorf("%w: user %d", pkg.ErrNotFound, userID)
	}
	return user, nil
}
