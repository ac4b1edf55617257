package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/sanosuguru/go-room-reservation/internal/domain/reservation"
	"github.com/sanosuguru/go-room-reservation/internal/domain/transaction"
)

type reservationRow struct {
	ID        string    `db:"id"`
	UserID    string    `db:"user_id"`
	RoomID    string    `db:"room_id"`
	StartAt   time.Time `db:"start_at"`
	EndAt     time.Time `db:"end_at"`
	Status    string    `db:"status"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

func (r *reservationRow) toEntity() *reservation.Reservation {
	return &reservation.Reservation{
		ID:        r.ID,
		UserID:    r.UserID,
		RoomID:    r.RoomID,
		StartAt:   r.StartAt,
		EndAt:     r.EndAt,
		Status:    reservation.Status(r.Status),
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

const reservationColumns = `id, user_id, room_id, start_at, end_at, status, created_at, updated_at`

type ReservationRepository struct{ db *sqlx.DB }

func NewReservationRepository(db *sqlx.DB) *ReservationRepository {
	return &ReservationRepository{db: db}
}

func (r *ReservationRepository) Create(ctx context.Context, tx transaction.Tx, res *reservation.Reservation) error {
	sqlxTx := UnwrapTx(tx)
	if sqlxTx == nil {
		return fmt.Errorf("トランザクションの型が不正です")
	}
	query := `INSERT INTO reservations (user_id, room_id, start_at, end_at, status, created_at, updated_at) VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`
	if err := sqlxTx.QueryRowContext(ctx, query,
		res.UserID, res.RoomID, res.StartAt, res.EndAt, string(res.Status), res.CreatedAt, res.UpdatedAt,
	).Scan(&res.ID); err != nil {
		return fmt.Errorf("予約作成に失敗: %w", err)
	}
	return nil
}

// GetByIDAndUserID は予約IDと所有者IDの両方が一致する行だけを返す
// 所有者違いは存在しない予約と区別せず ErrReservationNotFound になる
func (r *ReservationRepository) GetByIDAndUserID(ctx context.Context, id, userID string) (*reservation.Reservation, error) {
	var row reservationRow
	query := `SELECT ` + reservationColumns + ` FROM reservations WHERE id = $1 AND user_id = $2`
	if err := r.db.GetContext(ctx, &row, query, id, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, reservation.ErrReservationNotFound
		}
		return nil, fmt.Errorf("予約取得に失敗: %w", err)
	}
	return row.toEntity(), nil
}

// GetByIDAndUserIDForUpdate は予約行を FOR UPDATE で取得する
// ルーム行ロック取得後に呼び、並行する取消や期限切れのコミット結果を必ず読む
func (r *ReservationRepository) GetByIDAndUserIDForUpdate(ctx context.Context, tx transaction.Tx, id, userID string) (*reservation.Reservation, error) {
	sqlxTx := UnwrapTx(tx)
	if sqlxTx == nil {
		return nil, fmt.Errorf("トランザクションの型が不正です")
	}
	var row reservationRow
	query := `SELECT ` + reservationColumns + ` FROM reservations WHERE id = $1 AND user_id = $2 FOR UPDATE`
	if err := sqlxTx.GetContext(ctx, &row, query, id, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, reservation.ErrReservationNotFound
		}
		return nil, fmt.Errorf("予約取得に失敗: %w", err)
	}
	return row.toEntity(), nil
}

func (r *ReservationRepository) GetByUserIDAndStatus(ctx context.Context, userID string, status reservation.Status) ([]*reservation.Reservation, error) {
	var rows []reservationRow
	query := `SELECT ` + reservationColumns + ` FROM reservations WHERE user_id = $1 AND status = $2 ORDER BY created_at, id`
	if err := r.db.SelectContext(ctx, &rows, query, userID, string(status)); err != nil {
		return nil, fmt.Errorf("予約一覧取得に失敗: %w", err)
	}
	result := make([]*reservation.Reservation, len(rows))
	for i, row := range rows {
		result[i] = row.toEntity()
	}
	return result, nil
}

func (r *ReservationRepository) Update(ctx context.Context, tx transaction.Tx, res *reservation.Reservation) error {
	sqlxTx := UnwrapTx(tx)
	if sqlxTx == nil {
		return fmt.Errorf("トランザクションの型が不正です")
	}
	query := `UPDATE reservations SET room_id = $1, start_at = $2, end_at = $3, status = $4, updated_at = $5 WHERE id = $6`
	result, err := sqlxTx.ExecContext(ctx, query,
		res.RoomID, res.StartAt, res.EndAt, string(res.Status), res.UpdatedAt, res.ID,
	)
	if err != nil {
		return fmt.Errorf("予約更新に失敗: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return reservation.ErrReservationNotFound
	}
	return nil
}

// ExistsOverlapping は半開区間の交差判定を行う
// 複合インデックス (room_id, status, start_at, end_at) を前提にしている
func (r *ReservationRepository) ExistsOverlapping(ctx context.Context, tx transaction.Tx, roomID string, status reservation.Status, startAt, endAt time.Time) (bool, error) {
	sqlxTx := UnwrapTx(tx)
	if sqlxTx == nil {
		return false, fmt.Errorf("トランザクションの型が不正です")
	}
	var exists bool
	query := `SELECT EXISTS (
		SELECT 1 FROM reservations
		WHERE room_id = $1 AND status = $2 AND start_at < $4 AND end_at > $3
	)`
	if err := sqlxTx.GetContext(ctx, &exists, query, roomID, string(status), startAt, endAt); err != nil {
		return false, fmt.Errorf("重複判定に失敗: %w", err)
	}
	return exists, nil
}

func (r *ReservationRepository) ExistsOverlappingExceptSelf(ctx context.Context, tx transaction.Tx, roomID string, status reservation.Status, startAt, endAt time.Time, excludeID string) (bool, error) {
	sqlxTx := UnwrapTx(tx)
	if sqlxTx == nil {
		return false, fmt.Errorf("トランザクションの型が不正です")
	}
	var exists bool
	query := `SELECT EXISTS (
		SELECT 1 FROM reservations
		WHERE room_id = $1 AND status = $2 AND start_at < $4 AND end_at > $3 AND id <> $5
	)`
	if err := sqlxTx.GetContext(ctx, &exists, query, roomID, string(status), startAt, endAt, excludeID); err != nil {
		return false, fmt.Errorf("重複判定に失敗: %w", err)
	}
	return exists, nil
}

func (r *ReservationRepository) GetStaleWaitPayment(ctx context.Context, olderThan time.Duration) ([]*reservation.Reservation, error) {
	var rows []reservationRow
	query := `SELECT ` + reservationColumns + ` FROM reservations WHERE status = 'wait_payment' AND created_at < $1`
	if err := r.db.SelectContext(ctx, &rows, query, time.Now().Add(-olderThan)); err != nil {
		return nil, fmt.Errorf("決済待ち予約取得に失敗: %w", err)
	}
	result := make([]*reservation.Reservation, len(rows))
	for i, row := range rows {
		result[i] = row.toEntity()
	}
	return result, nil
}

var _ reservation.Repository = (*ReservationRepository)(nil)
