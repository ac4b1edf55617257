package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/sanosuguru/go-room-reservation/internal/domain/room"
)

var (
	ErrCacheMiss = errors.New("キャッシュが見つかりません")
)

const roomListKey = "rooms:list"

// RoomCache はルーム一覧のキャッシュを管理する
// ルームの追加・有効化・無効化のたびに無効化される
type RoomCache struct {
	client *redis.Client
}

// NewRoomCache は新しいRoomCacheインスタンスを作成する
func NewRoomCache(client *redis.Client) *RoomCache {
	return &RoomCache{client: client}
}

// GetRooms はルーム一覧をキャッシュから取得する
func (c *RoomCache) GetRooms(ctx context.Context) ([]*room.Room, error) {
	data, err := c.client.Get(ctx, roomListKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrCacheMiss
		}
		return nil, fmt.Errorf("キャッシュ取得に失敗: %w", err)
	}
	var rooms []*room.Room
	if err := json.Unmarshal(data, &rooms); err != nil {
		return nil, fmt.Errorf("キャッシュの復元に失敗: %w", err)
	}
	return rooms, nil
}

// SetRooms はルーム一覧をキャッシュに保存する
func (c *RoomCache) SetRooms(ctx context.Context, rooms []*room.Room, ttl time.Duration) error {
	data, err := json.Marshal(rooms)
	if err != nil {
		return fmt.Errorf("キャッシュの直列化に失敗: %w", err)
	}
	if err := c.client.Set(ctx, roomListKey, data, ttl).Err(); err != nil {
		return fmt.Errorf("キャッシュ保存に失敗: %w", err)
	}
	return nil
}

// Invalidate はルーム一覧キャッシュを無効化する
func (c *RoomCache) Invalidate(ctx context.Context) error {
	if err := c.client.Del(ctx, roomListKey).Err(); err != nil {
		return fmt.Errorf("キャッシュ無効化に失敗: %w", err)
	}
	return nil
}
