package reservation

import (
	"context"
	"time"

	"github.com/sanosuguru/go-room-reservation/internal/domain/transaction"
)

// Repository は予約リポジトリのインターフェース
// 重複判定クエリはルーム行ロックを保持するトランザクション内で実行すること
type Repository interface {
	// Create は新しい予約を作成する（トランザクション必須）
	Create(ctx context.Context, tx transaction.Tx, reservation *Reservation) error

	// GetByIDAndUserID は予約IDと所有ユーザーIDの両方が一致する予約を取得する
	// 他人の予約は「存在しない」扱いになり、存在自体を漏らさない
	GetByIDAndUserID(ctx context.Context, id, userID string) (*Reservation, error)

	// GetByIDAndUserIDForUpdate は予約行を排他ロック付きで取得する（トランザクション必須）
	// 変更・取消はこちらで取り直した最新の状態に対して行うこと
	GetByIDAndUserIDForUpdate(ctx context.Context, tx transaction.Tx, id, userID string) (*Reservation, error)

	// GetByUserIDAndStatus はユーザーの予約一覧を状態で絞って取得する（登録順）
	GetByUserIDAndStatus(ctx context.Context, userID string, status Status) ([]*Reservation, error)

	// Update は予約の内容・状態を永続化する（トランザクション必須）
	Update(ctx context.Context, tx transaction.Tx, reservation *Reservation) error

	// ExistsOverlapping は指定ルーム・状態の予約に時間帯の重なりがあるかを返す
	// 半開区間判定（r.start < end AND r.end > start）で、端点の一致は重なりとしない
	ExistsOverlapping(ctx context.Context, tx transaction.Tx, roomID string, status Status, startAt, endAt time.Time) (bool, error)

	// ExistsOverlappingExceptSelf は自分自身の予約を除いた重複判定を行う（更新時に使う）
	ExistsOverlappingExceptSelf(ctx context.Context, tx transaction.Tx, roomID string, status Status, startAt, endAt time.Time, excludeID string) (bool, error)

	// GetStaleWaitPayment は wait_payment のまま放置された予約を取得する
	GetStaleWaitPayment(ctx context.Context, olderThan time.Duration) ([]*Reservation, error)
}
