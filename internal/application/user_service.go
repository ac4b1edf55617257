package application

import (
	"context"

	"github.com/sanosuguru/go-room-reservation/internal/domain/user"
)

// UserService はユーザーの登録・退会・認証を司る
type UserService struct {
	userRepo user.Repository
}

// NewUserService は新しい UserService を作成する
func NewUserService(userRepo user.Repository) *UserService {
	return &UserService{userRepo: userRepo}
}

// JoinInput は会員登録の入力
type JoinInput struct {
	Name        string
	Email       string
	Password    string
	PhoneNumber string
}

// LeaveInput は退会の入力
// 本人確認としてメールアドレスとパスワードの両方の一致を要求する
type LeaveInput struct {
	UserID   string
	Email    string
	Password string
}

// LoginInput はログインの入力
type LoginInput struct {
	Email    string
	Password string
}

// Join は新しいユーザーを登録する
func (s *UserService) Join(ctx context.Context, input JoinInput) (*user.User, error) {
	u, err := user.NewUser(input.Name, input.Email, input.Password, input.PhoneNumber)
	if err != nil {
		return nil, err
	}
	if err := s.userRepo.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// Leave はユーザーを退会させる
func (s *UserService) Leave(ctx context.Context, input LeaveInput) error {
	u, err := s.userRepo.GetByID(ctx, input.UserID)
	if err != nil {
		return err
	}
	if err := u.VerifyEmail(input.Email); err != nil {
		return err
	}
	if err := u.VerifyPassword(input.Password); err != nil {
		return err
	}
	return s.userRepo.Delete(ctx, u.ID)
}

// Login は認証情報を検証し、一致すればユーザーを返す
func (s *UserService) Login(ctx context.Context, input LoginInput) (*user.User, error) {
	u, err := s.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if err := u.VerifyPassword(input.Password); err != nil {
		return nil, err
	}
	return u, nil
}

// GetUser はIDからユーザーを取得する
func (s *UserService) GetUser(ctx context.Context, id string) (*user.User, error) {
	return s.userRepo.GetByID(ctx, id)
}
