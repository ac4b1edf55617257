package application

import (
	"context"
	"fmt"
	"time"

	"github.com/sanosuguru/go-room-reservation/internal/domain/policy"
	"github.com/sanosuguru/go-room-reservation/internal/domain/reservation"
	"github.com/sanosuguru/go-room-reservation/internal/domain/room"
	"github.com/sanosuguru/go-room-reservation/internal/domain/transaction"
	"github.com/sanosuguru/go-room-reservation/internal/domain/user"
	"github.com/sanosuguru/go-room-reservation/internal/pkg/clock"
	"github.com/sanosuguru/go-room-reservation/internal/pkg/metrics"
)

// ReservationService は予約の受付・変更・取消を司る
// 競合資源はルームのカレンダーなので、予約判定は常にルーム行の排他ロック下で行う
type ReservationService struct {
	txManager       transaction.Manager
	reservationRepo reservation.Repository
	roomRepo        room.Repository
	userRepo        user.Repository
	policies        []policy.Policy
	clk             clock.Clock
	metrics         *metrics.Metrics
}

// NewReservationService は新しい ReservationService を作成する
// metrics は nil を許容する
func NewReservationService(
	txManager transaction.Manager,
	rr reservation.Repository,
	roomRepo room.Repository,
	userRepo user.Repository,
	policies []policy.Policy,
	clk clock.Clock,
	m *metrics.Metrics,
) *ReservationService {
	return &ReservationService{
		txManager:       txManager,
		reservationRepo: rr,
		roomRepo:        roomRepo,
		userRepo:        userRepo,
		policies:        policies,
		clk:             clk,
		metrics:         m,
	}
}

// ReserveInput は予約作成の入力
type ReserveInput struct {
	RoomID  string
	UserID  string
	StartAt time.Time
	EndAt   time.Time
}

// UpdateInput は予約変更の入力
type UpdateInput struct {
	ReservationID string
	RoomID        string
	UserID        string
	Password      string
	StartAt       time.Time
	EndAt         time.Time
}

// CancelInput は予約取消の入力
type CancelInput struct {
	ReservationID string
	UserID        string
	Password      string
}

// ReservationSummary は予約操作の結果として返す要約
type ReservationSummary struct {
	UserName string
	RoomName string
	StartAt  time.Time
	EndAt    time.Time
}

// Reserve は新しい予約を受け付ける
// ルーム行ロック → ポリシー検証 → 重複判定 → 永続化 を1トランザクションで行う
func (s *ReservationService) Reserve(ctx context.Context, input ReserveInput) (*ReservationSummary, error) {
	u, err := s.userRepo.GetByID(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	if err := s.validateTimeRange(input.StartAt, input.EndAt); err != nil {
		return nil, err
	}

	tx, err := s.txManager.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("トランザクション開始に失敗: %w", err)
	}
	defer tx.Rollback()

	lockStart := time.Now()
	rm, err := s.roomRepo.GetByIDForUpdate(ctx, tx, input.RoomID)
	s.observeLockWait("reserve", lockStart)
	if err != nil {
		return nil, err
	}

	if err := rm.EnsureAvailable(); err != nil {
		s.countReservation("room_unavailable")
		return nil, err
	}

	if err := policy.ValidateAll(s.policies, input.StartAt, input.EndAt, rm, u); err != nil {
		s.countReservation("rejected")
		return nil, err
	}

	// ロック保持中の判定なので、先行トランザクションのコミット結果が必ず見える
	exists, err := s.reservationRepo.ExistsOverlapping(ctx, tx, rm.ID, reservation.StatusReserved, input.StartAt, input.EndAt)
	if err != nil {
		return nil, err
	}
	if exists {
		s.countReservation("conflict")
		return nil, reservation.ErrScheduleConflict
	}

	res := reservation.NewReservation(u.ID, rm.ID, input.StartAt, input.EndAt)
	if err := res.Validate(); err != nil {
		return nil, err
	}
	// 現行は決済フェーズなしの単一フェーズ運用
	if err := res.Reserve(); err != nil {
		return nil, err
	}

	if err := s.reservationRepo.Create(ctx, tx, res); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("コミットに失敗: %w", err)
	}

	s.countReservation("success")
	s.addActiveReservations(res.Status, 1)
	return &ReservationSummary{
		UserName: u.Name,
		RoomName: rm.Name,
		StartAt:  res.StartAt,
		EndAt:    res.EndAt,
	}, nil
}

// Update は予約のルーム・時間帯を変更する
// 予約ID＋ユーザーIDの二重キー照合が唯一の認可チェックで、
// 他人の予約は「見つからない」として扱う
func (s *ReservationService) Update(ctx context.Context, input UpdateInput) (*ReservationSummary, error) {
	res, err := s.reservationRepo.GetByIDAndUserID(ctx, input.ReservationID, input.UserID)
	if err != nil {
		return nil, err
	}

	u, err := s.userRepo.GetByID(ctx, input.UserID)
	if err != nil {
		return nil, err
	}
	if err := u.VerifyPassword(input.Password); err != nil {
		return nil, err
	}

	tx, err := s.txManager.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("トランザクション開始に失敗: %w", err)
	}
	defer tx.Rollback()

	lockStart := time.Now()
	rm, err := s.roomRepo.GetByIDForUpdate(ctx, tx, input.RoomID)
	s.observeLockWait("update", lockStart)
	if err != nil {
		return nil, err
	}
	if err := rm.EnsureAvailable(); err != nil {
		return nil, err
	}

	// ロック取得後に予約を取り直す
	// 事前チェック後にコミットされた取消や期限切れを上書きしないため
	res, err = s.reservationRepo.GetByIDAndUserIDForUpdate(ctx, tx, input.ReservationID, input.UserID)
	if err != nil {
		return nil, err
	}
	if res.Status != reservation.StatusReserved {
		return nil, reservation.ErrInvalidStatus
	}

	// 自分自身の予約は除外して判定する（時間短縮や同一枠での変更を妨げない）
	exists, err := s.reservationRepo.ExistsOverlappingExceptSelf(
		ctx, tx, rm.ID, reservation.StatusReserved, input.StartAt, input.EndAt, res.ID)
	if err != nil {
		return nil, err
	}
	if exists {
		s.countReservation("conflict")
		return nil, reservation.ErrScheduleConflict
	}

	res.Update(rm.ID, input.StartAt, input.EndAt)
	if err := s.reservationRepo.Update(ctx, tx, res); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("コミットに失敗: %w", err)
	}

	return &ReservationSummary{
		UserName: u.Name,
		RoomName: rm.Name,
		StartAt:  res.StartAt,
		EndAt:    res.EndAt,
	}, nil
}

// Cancel は予約を取消状態にする（物理削除はしない）
func (s *ReservationService) Cancel(ctx context.Context, input CancelInput) error {
	u, err := s.userRepo.GetByID(ctx, input.UserID)
	if err != nil {
		return err
	}
	if err := u.VerifyPassword(input.Password); err != nil {
		return err
	}

	res, err := s.reservationRepo.GetByIDAndUserID(ctx, input.ReservationID, input.UserID)
	if err != nil {
		return err
	}

	tx, err := s.txManager.Begin(ctx)
	if err != nil {
		return fmt.Errorf("トランザクション開始に失敗: %w", err)
	}
	defer tx.Rollback()

	// 取消もカレンダーの可視性に関わるため、ルーム単位の直列化に乗せる
	lockStart := time.Now()
	if _, err := s.roomRepo.GetByIDForUpdate(ctx, tx, res.RoomID); err != nil {
		return err
	}
	s.observeLockWait("cancel", lockStart)

	// ロック取得後の最新状態に対して取消判定を行う
	res, err = s.reservationRepo.GetByIDAndUserIDForUpdate(ctx, tx, input.ReservationID, input.UserID)
	if err != nil {
		return err
	}
	prevStatus := res.Status
	if err := res.Cancel(); err != nil {
		return err
	}
	if err := s.reservationRepo.Update(ctx, tx, res); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("コミットに失敗: %w", err)
	}
	s.addActiveReservations(prevStatus, -1)
	return nil
}

// GetUserReservations はユーザーの reserved 状態の予約一覧を登録順で返す
func (s *ReservationService) GetUserReservations(ctx context.Context, userID string) ([]*ReservationSummary, error) {
	u, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	reservations, err := s.reservationRepo.GetByUserIDAndStatus(ctx, userID, reservation.StatusReserved)
	if err != nil {
		return nil, err
	}

	roomNames := make(map[string]string)
	summaries := make([]*ReservationSummary, 0, len(reservations))
	for _, res := range reservations {
		name, ok := roomNames[res.RoomID]
		if !ok {
			rm, err := s.roomRepo.GetByID(ctx, res.RoomID)
			if err != nil {
				return nil, err
			}
			name = rm.Name
			roomNames[res.RoomID] = name
		}
		summaries = append(summaries, &ReservationSummary{
			UserName: u.Name,
			RoomName: name,
			StartAt:  res.StartAt,
			EndAt:    res.EndAt,
		})
	}
	return summaries, nil
}

// ExpireStaleReservations は wait_payment のまま放置された予約を期限切れにする
func (s *ReservationService) ExpireStaleReservations(ctx context.Context, olderThan time.Duration) (int, error) {
	stale, err := s.reservationRepo.GetStaleWaitPayment(ctx, olderThan)
	if err != nil {
		return 0, err
	}
	if len(stale) == 0 {
		return 0, nil
	}

	tx, err := s.txManager.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("トランザクション開始に失敗: %w", err)
	}
	defer tx.Rollback()

	count := 0
	for _, res := range stale {
		res.Expire()
		if res.Status != reservation.StatusExpired {
			continue
		}
		if err := s.reservationRepo.Update(ctx, tx, res); err != nil {
			return 0, err
		}
		count++
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("コミットに失敗: %w", err)
	}
	return count, nil
}

// validateTimeRange は start < end かつ start が現在より未来であることを検証する
func (s *ReservationService) validateTimeRange(startAt, endAt time.Time) error {
	if !startAt.Before(endAt) {
		return reservation.ErrInvalidTimeRange
	}
	if !startAt.After(s.clk.Now()) {
		return reservation.ErrInvalidTimeRange
	}
	return nil
}

func (s *ReservationService) countReservation(status string) {
	if s.metrics == nil {
		return
	}
	s.metrics.ReservationsTotal.WithLabelValues(status).Inc()
}

func (s *ReservationService) addActiveReservations(status reservation.Status, delta float64) {
	if s.metrics == nil {
		return
	}
	s.metrics.ActiveReservations.WithLabelValues(string(status)).Add(delta)
}

func (s *ReservationService) observeLockWait(operation string, since time.Time) {
	if s.metrics == nil {
		return
	}
	s.metrics.RoomLockWaitDuration.WithLabelValues(operation).Observe(time.Since(since).Seconds())
}
