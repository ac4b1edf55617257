package room

import "errors"

// Room ドメインのエラー定義
var (
	ErrRoomNotFound         = errors.New("ルームが見つかりません")
	ErrRoomNameRequired     = errors.New("ルーム名は必須です")
	ErrInvalidOperatingTime = errors.New("運営時間の設定が不正です")
	ErrOutOfOperatingTime   = errors.New("運営時間外の予約はできません")
	ErrRoomNotAvailable     = errors.New("現在利用できないルームです")

	// ErrRoomLockTimeout はルーム行ロックの待ちが上限を超えたことを表す
	// 致命的な失敗ではなく、呼び出し側でリトライ可能
	ErrRoomLockTimeout = errors.New("ルームロックの取得がタイムアウトしました")
)
