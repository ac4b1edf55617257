package user

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

// User はユーザーエンティティを表す
// PasswordHash は bcrypt ハッシュで、照合は VerifyPassword を通してのみ行う
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	PhoneNumber  string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewUser は新しいユーザーを作成する（パスワードは平文で受け取りハッシュ化する）
func NewUser(name, email, password, phoneNumber string) (*User, error) {
	if name == "" {
		return nil, ErrNameRequired
	}
	if email == "" {
		return nil, ErrEmailRequired
	}
	hash, err := HashPassword(password)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	return &User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		PhoneNumber:  phoneNumber,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

// HashPassword はパスワードを bcrypt でハッシュ化する
func HashPassword(password string) (string, error) {
	if password == "" {
		return "", ErrPasswordRequired
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword はパスワードの一致を検証する
func (u *User) VerifyPassword(password string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return ErrInvalidPassword
	}
	return nil
}

// VerifyEmail はメールアドレスの一致を検証する（退会時の本人確認に使う）
func (u *User) VerifyEmail(email string) error {
	if email != u.Email {
		return ErrInvalidEmail
	}
	return nil
}
