package policy

import (
	"time"

	"github.com/sanosuguru/go-room-reservation/internal/domain/room"
	"github.com/sanosuguru/go-room-reservation/internal/domain/user"
)

// OperatingTimePolicy は運営時間外の予約を拒否する
// 包含判定そのものはルームの責務なので委譲する
type OperatingTimePolicy struct{}

// Validate は予約時間帯が運営時間に収まっているかを検証する
func (OperatingTimePolicy) Validate(startAt, endAt time.Time, r *room.Room, _ *user.User) error {
	return r.ValidateOperatingTime(startAt, endAt)
}
