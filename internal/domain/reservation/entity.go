package reservation

import "time"

// Status は予約の状態を表す
type Status string

const (
	// StatusWaitPayment は予約生成直後（決済フェーズ導入までの暫定初期状態）
	StatusWaitPayment Status = "wait_payment"
	// StatusReserved はカレンダーを占有する確定予約
	StatusReserved Status = "reserved"
	// StatusConfirmed は決済完了
	StatusConfirmed Status = "confirmed"
	// StatusCanceled はユーザー取消
	StatusCanceled Status = "canceled"
	// StatusExpired は決済時間超過
	StatusExpired Status = "expired"
)

// Reservation は予約エンティティを表す
// startAt < endAt はサービス層が構築前に保証する
type Reservation struct {
	ID        string
	UserID    string
	RoomID    string
	StartAt   time.Time
	EndAt     time.Time
	Status    Status
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewReservation は新しい予約を作成する（初期状態は wait_payment）
func NewReservation(userID, roomID string, startAt, endAt time.Time) *Reservation {
	now := time.Now()
	return &Reservation{
		UserID:    userID,
		RoomID:    roomID,
		StartAt:   startAt,
		EndAt:     endAt,
		Status:    StatusWaitPayment,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Reserve は予約をカレンダー占有状態にする
// 現行の単一フェーズ運用では作成直後にそのまま呼ばれる
func (r *Reservation) Reserve() error {
	if r.Status != StatusWaitPayment {
		return ErrInvalidStatus
	}
	r.Status = StatusReserved
	r.UpdatedAt = time.Now()
	return nil
}

// Confirm は決済完了として予約を確定する（wait_payment からのみ遷移可能）
func (r *Reservation) Confirm() error {
	if r.Status != StatusWaitPayment {
		return ErrInvalidStatus
	}
	r.Status = StatusConfirmed
	r.UpdatedAt = time.Now()
	return nil
}

// Expire は決済待ちの予約を期限切れにする（wait_payment 以外では何もしない）
func (r *Reservation) Expire() {
	if r.Status != StatusWaitPayment {
		return
	}
	r.Status = StatusExpired
	r.UpdatedAt = time.Now()
}

// Cancel は予約を取消状態にする
// 物理削除はせず履歴として残す。期限切れの予約は取り消せない
func (r *Reservation) Cancel() error {
	if r.Status == StatusExpired {
		return ErrAlreadyExpired
	}
	r.Status = StatusCanceled
	r.UpdatedAt = time.Now()
	return nil
}

// Update はルームと時間帯を差し替える（状態は変えない）
func (r *Reservation) Update(roomID string, startAt, endAt time.Time) {
	r.RoomID = roomID
	r.StartAt = startAt
	r.EndAt = endAt
	r.UpdatedAt = time.Now()
}

// Validate は予約の必須項目を検証する
func (r *Reservation) Validate() error {
	if r.UserID == "" {
		return ErrUserIDRequired
	}
	if r.RoomID == "" {
		return ErrRoomIDRequired
	}
	return nil
}
