package policy

import (
	"time"

	"github.com/sanosuguru/go-room-reservation/internal/domain/reservation"
	"github.com/sanosuguru/go-room-reservation/internal/domain/room"
	"github.com/sanosuguru/go-room-reservation/internal/domain/user"
)

// MinimumDuration は予約の最短時間
const MinimumDuration = time.Hour

// MinimumDurationPolicy は最短予約時間を下回る予約を拒否する
type MinimumDurationPolicy struct{}

// Validate は予約時間が最短時間以上かを検証する
func (MinimumDurationPolicy) Validate(startAt, endAt time.Time, _ *room.Room, _ *user.User) error {
	if endAt.Sub(startAt) < MinimumDuration {
		return reservation.ErrTooShortReservation
	}
	return nil
}
