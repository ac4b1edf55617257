package user

import "errors"

// User ドメインのエラー定義
var (
	ErrUserNotFound     = errors.New("ユーザーが見つかりません")
	ErrNameRequired     = errors.New("ユーザー名は必須です")
	ErrEmailRequired    = errors.New("メールアドレスは必須です")
	ErrPasswordRequired = errors.New("パスワードは必須です")
	ErrInvalidPassword  = errors.New("パスワードが一致しません")
	ErrInvalidEmail     = errors.New("メールアドレスが一致しません")
	ErrEmailTaken       = errors.New("既に登録済みのメールアドレスです")
)
