package reservation

import "errors"

// Reservation ドメインのエラー定義
var (
	ErrReservationNotFound = errors.New("予約が見つかりません")
	ErrScheduleConflict    = errors.New("既に予約されている時間帯です")
	ErrInvalidTimeRange    = errors.New("予約時間の指定が不正です")
	ErrTooShortReservation = errors.New("予約時間が短すぎます")
	ErrInvalidStatus       = errors.New("現在の状態では実行できない操作です")
	ErrAlreadyExpired      = errors.New("期限切れの予約は取り消せません")
	ErrUserIDRequired      = errors.New("ユーザーIDは必須です")
	ErrRoomIDRequired      = errors.New("ルームIDは必須です")
)
