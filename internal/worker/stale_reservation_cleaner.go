package worker

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/sanosuguru/go-room-reservation/internal/pkg/logger"
)

// ReservationExpirer は支払い待ちのまま放置された予約を期限切れにするインターフェース
type ReservationExpirer interface {
	ExpireStaleReservations(ctx context.Context, olderThan time.Duration) (int, error)
}

// StaleReservationCleaner は支払い待ち予約を定期的に期限切れにするワーカー
type StaleReservationCleaner struct {
	reservationService ReservationExpirer
	interval           time.Duration
	olderThan          time.Duration
	stopCh             chan struct{}
	doneCh             chan struct{}
}

// NewStaleReservationCleaner は新しいクリーナーを作成
func NewStaleReservationCleaner(
	rs ReservationExpirer,
	interval time.Duration,
	olderThan time.Duration,
) *StaleReservationCleaner {
	return &StaleReservationCleaner{
		reservationService: rs,
		interval:           interval,
		olderThan:          olderThan,
		stopCh:             make(chan struct{}),
		doneCh:             make(chan struct{}),
	}
}

// Start はクリーナーを開始
func (c *StaleReservationCleaner) Start(ctx context.Context) {
	logger.Info("支払い待ち予約クリーナー開始",
		zap.Duration("interval", c.interval),
		zap.Duration("older_than", c.olderThan),
	)

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()
	defer close(c.doneCh)

	for {
		select {
		case <-ctx.Done():
			logger.Info("支払い待ち予約クリーナー停止（コンテキストキャンセル）")
			return
		case <-c.stopCh:
			logger.Info("支払い待ち予約クリーナー停止（シグナル受信）")
			return
		case <-ticker.C:
			c.cleanup(ctx)
		}
	}
}

// Stop はクリーナーを停止
func (c *StaleReservationCleaner) Stop() {
	close(c.stopCh)
	<-c.doneCh
}

// cleanup は支払い待ちのまま放置された予約を期限切れにする
func (c *StaleReservationCleaner) cleanup(ctx context.Context) {
	log := logger.Get()
	log.Debug("支払い待ち予約のクリーンアップ開始")

	count, err := c.reservationService.ExpireStaleReservations(ctx, c.olderThan)
	if err != nil {
		log.Error("支払い待ち予約のクリーンアップ失敗", zap.Error(err))
		return
	}

	if count > 0 {
		log.Info("支払い待ち予約を期限切れに変更", zap.Int("count", count))
	} else {
		log.Debug("期限切れ対象の予約なし")
	}
}
