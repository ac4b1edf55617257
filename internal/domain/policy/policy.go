package policy

import (
	"time"

	"github.com/sanosuguru/go-room-reservation/internal/domain/room"
	"github.com/sanosuguru/go-room-reservation/internal/domain/user"
)

// Policy は予約を受け付ける前に評価する独立した業務ルール
// 新しい制約はサービス層に手を入れずに Policy の追加で対応する
type Policy interface {
	// Validate は予約候補を検証し、違反があればエラーを返す
	Validate(startAt, endAt time.Time, r *room.Room, u *user.User) error
}

// Default は予約作成時に適用するポリシーを順序付きで返す
// 各ポリシーは独立しており、最初の違反で打ち切る
func Default() []Policy {
	return []Policy{
		MinimumDurationPolicy{},
		OperatingTimePolicy{},
		PaymentPolicy{},
	}
}

// ValidateAll は全ポリシーを順に評価し、最初の違反を返す
func ValidateAll(policies []Policy, startAt, endAt time.Time, r *room.Room, u *user.User) error {
	for _, p := range policies {
		if err := p.Validate(startAt, endAt, r, u); err != nil {
			return err
		}
	}
	return nil
}
