package application

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/sanosuguru/go-room-reservation/internal/domain/room"
	redisinfra "github.com/sanosuguru/go-room-reservation/internal/infrastructure/redis"
	"github.com/sanosuguru/go-room-reservation/internal/pkg/logger"
)

// RoomService はルームの管理系操作を司る
type RoomService struct {
	roomRepo room.Repository
	cache    *redisinfra.RoomCache
	cacheTTL time.Duration
}

// NewRoomService は新しい RoomService を作成する
// cache は nil を許容する
func NewRoomService(roomRepo room.Repository, cache *redisinfra.RoomCache, cacheTTL time.Duration) *RoomService {
	return &RoomService{roomRepo: roomRepo, cache: cache, cacheTTL: cacheTTL}
}

// CreateRoomInput はルーム作成の入力
type CreateRoomInput struct {
	Name        string
	Available   bool
	Description string
	OpenTime    string // "15:04" 形式
	CloseTime   string
}

// CreateRoom は新しいルームを作成する
func (s *RoomService) CreateRoom(ctx context.Context, input CreateRoomInput) (*room.Room, error) {
	openTime, err := room.ParseTimeOfDay(input.OpenTime)
	if err != nil {
		return nil, room.ErrInvalidOperatingTime
	}
	closeTime, err := room.ParseTimeOfDay(input.CloseTime)
	if err != nil {
		return nil, room.ErrInvalidOperatingTime
	}

	rm, err := room.NewRoom(input.Name, input.Available, input.Description, openTime, closeTime)
	if err != nil {
		return nil, err
	}
	if err := s.roomRepo.Create(ctx, rm); err != nil {
		return nil, err
	}
	s.invalidateCache(ctx)
	return rm, nil
}

// GetRoom はIDからルームを取得する
func (s *RoomService) GetRoom(ctx context.Context, id string) (*room.Room, error) {
	return s.roomRepo.GetByID(ctx, id)
}

// ListRooms はルーム一覧を返す（キャッシュ優先）
func (s *RoomService) ListRooms(ctx context.Context) ([]*room.Room, error) {
	if s.cache != nil {
		rooms, err := s.cache.GetRooms(ctx)
		if err == nil {
			return rooms, nil
		}
		if !errors.Is(err, redisinfra.ErrCacheMiss) {
			logger.Warn("ルームキャッシュ取得に失敗", zap.Error(err))
		}
	}

	rooms, err := s.roomRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.SetRooms(ctx, rooms, s.cacheTTL); err != nil {
			logger.Warn("ルームキャッシュ保存に失敗", zap.Error(err))
		}
	}
	return rooms, nil
}

// EnableRoom はルームを利用可能にする（冪等）
func (s *RoomService) EnableRoom(ctx context.Context, id string) (*room.Room, error) {
	rm, err := s.roomRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	rm.Enable()
	if err := s.roomRepo.Update(ctx, rm); err != nil {
		return nil, err
	}
	s.invalidateCache(ctx)
	return rm, nil
}

// DisableRoom はルームを利用不可にする（冪等）
func (s *RoomService) DisableRoom(ctx context.Context, id string) (*room.Room, error) {
	rm, err := s.roomRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	rm.Disable()
	if err := s.roomRepo.Update(ctx, rm); err != nil {
		return nil, err
	}
	s.invalidateCache(ctx)
	return rm, nil
}

func (s *RoomService) invalidateCache(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx); err != nil {
		logger.Warn("ルームキャッシュ無効化に失敗", zap.Error(err))
	}
}
