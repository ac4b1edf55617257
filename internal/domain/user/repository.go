package user

import "context"

// Repository はユーザーリポジトリのインターフェース
type Repository interface {
	// Create は新しいユーザーを作成する
	Create(ctx context.Context, user *User) error

	// GetByID はIDからユーザーを取得する
	GetByID(ctx context.Context, id string) (*User, error)

	// GetByEmail はメールアドレスからユーザーを取得する（ログインに使う）
	GetByEmail(ctx context.Context, email string) (*User, error)

	// Delete はユーザーを削除する
	Delete(ctx context.Context, id string) error
}
