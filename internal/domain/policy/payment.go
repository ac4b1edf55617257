package policy

import (
	"time"

	"github.com/sanosuguru/go-room-reservation/internal/domain/room"
	"github.com/sanosuguru/go-room-reservation/internal/domain/user"
)

// PaymentPolicy は決済フェーズ導入のためのプレースホルダ
// 決済導入時には確定時点の wait_payment ガードをここに実装する
type PaymentPolicy struct{}

// Validate は現時点では常に通過する
func (PaymentPolicy) Validate(_, _ time.Time, _ *room.Room, _ *user.User) error {
	return nil
}
