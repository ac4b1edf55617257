package room

import (
	"context"

	"github.com/sanosuguru/go-room-reservation/internal/domain/transaction"
)

// Repository はルームリポジトリのインターフェース
type Repository interface {
	// Create は新しいルームを作成する
	Create(ctx context.Context, room *Room) error

	// GetByID はIDからルームを取得する
	GetByID(ctx context.Context, id string) (*Room, error)

	// GetByIDForUpdate はルーム行を排他ロック付きで取得する（トランザクション必須）
	// 同一ルームに対する予約判定はこのロックの下で直列化される
	GetByIDForUpdate(ctx context.Context, tx transaction.Tx, id string) (*Room, error)

	// List はルーム一覧を取得する
	List(ctx context.Context) ([]*Room, error)

	// Update はルームの状態（available等）を永続化する
	Update(ctx context.Context, room *Room) error
}
