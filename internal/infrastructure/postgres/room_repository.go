package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/sanosuguru/go-room-reservation/internal/domain/room"
	"github.com/sanosuguru/go-room-reservation/internal/domain/transaction"
)

type roomRow struct {
	ID           string    `db:"id"`
	Name         string    `db:"name"`
	Available    bool      `db:"available"`
	Description  string    `db:"description"`
	OpenMinutes  int       `db:"open_minutes"`
	CloseMinutes int       `db:"close_minutes"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

func (r *roomRow) toEntity() *room.Room {
	return &room.Room{
		ID:          r.ID,
		Name:        r.Name,
		Available:   r.Available,
		Description: r.Description,
		OpenTime:    room.MinutesOfDay(r.OpenMinutes),
		CloseTime:   room.MinutesOfDay(r.CloseMinutes),
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

const roomColumns = `id, name, available, description, open_minutes, close_minutes, created_at, updated_at`

type RoomRepository struct{ db *sqlx.DB }

func NewRoomRepository(db *sqlx.DB) *RoomRepository { return &RoomRepository{db: db} }

func (r *RoomRepository) Create(ctx context.Context, rm *room.Room) error {
	query := `INSERT INTO rooms (name, available, description, open_minutes, close_minutes, created_at, updated_at) VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`
	if err := r.db.QueryRowContext(ctx, query,
		rm.Name, rm.Available, rm.Description,
		rm.OpenTime.Minutes(), rm.CloseTime.Minutes(),
		rm.CreatedAt, rm.UpdatedAt,
	).Scan(&rm.ID); err != nil {
		return fmt.Errorf("ルーム作成に失敗: %w", err)
	}
	return nil
}

func (r *RoomRepository) GetByID(ctx context.Context, id string) (*room.Room, error) {
	var row roomRow
	query := `SELECT ` + roomColumns + ` FROM rooms WHERE id = $1`
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, room.ErrRoomNotFound
		}
		return nil, fmt.Errorf("ルーム取得に失敗: %w", err)
	}
	return row.toEntity(), nil
}

// GetByIDForUpdate はルーム行を FOR UPDATE で取得する
// 先行トランザクションがコミットまたはロールバックするまでブロックし、
// lock_timeout 超過は呼び出し側でリトライ可能なエラーとして返す
func (r *RoomRepository) GetByIDForUpdate(ctx context.Context, tx transaction.Tx, id string) (*room.Room, error) {
	sqlxTx := UnwrapTx(tx)
	if sqlxTx == nil {
		return nil, fmt.Errorf("トランザクションの型が不正です")
	}

	var row roomRow
	query := `SELECT ` + roomColumns + ` FROM rooms WHERE id = $1 FOR UPDATE`
	if err := sqlxTx.GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, room.ErrRoomNotFound
		}
		// 55P03: lock_not_available
		var pgErr *pq.Error
		if errors.As(err, &pgErr) && pgErr.Code == "55P03" {
			return nil, room.ErrRoomLockTimeout
		}
		return nil, fmt.Errorf("ルームロック取得に失敗: %w", err)
	}
	return row.toEntity(), nil
}

func (r *RoomRepository) List(ctx context.Context) ([]*room.Room, error) {
	var rows []roomRow
	query := `SELECT ` + roomColumns + ` FROM rooms ORDER BY name`
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("ルーム一覧取得に失敗: %w", err)
	}
	rooms := make([]*room.Room, len(rows))
	for i, row := range rows {
		rooms[i] = row.toEntity()
	}
	return rooms, nil
}

func (r *RoomRepository) Update(ctx context.Context, rm *room.Room) error {
	query := `UPDATE rooms SET name = $1, available = $2, description = $3, open_minutes = $4, close_minutes = $5, updated_at = $6 WHERE id = $7`
	result, err := r.db.ExecContext(ctx, query,
		rm.Name, rm.Available, rm.Description,
		rm.OpenTime.Minutes(), rm.CloseTime.Minutes(),
		rm.UpdatedAt, rm.ID,
	)
	if err != nil {
		return fmt.Errorf("ルーム更新に失敗: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return room.ErrRoomNotFound
	}
	return nil
}

var _ room.Repository = (*RoomRepository)(nil)
