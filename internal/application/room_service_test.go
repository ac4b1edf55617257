package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/sanosuguru/go-room-reservation/internal/domain/room"
)

func TestRoomService_CreateRoom(t *testing.T) {
	ctx := context.Background()

	t.Run("正常にルームを作成できる", func(t *testing.T) {
		mockRepo := new(MockRoomRepository)
		mockRepo.On("Create", ctx, mock.MatchedBy(func(r *room.Room) bool {
			return r.Name == "会議室A" && r.OpenTime.Hour == 9 && r.CloseTime.Hour == 22
		})).Return(nil)

		service := NewRoomService(mockRepo, nil, 0)

		rm, err := service.CreateRoom(ctx, CreateRoomInput{
			Name:        "会議室A",
			Available:   true,
			Description: "窓際の小会議室",
			OpenTime:    "09:00",
			CloseTime:   "22:00",
		})

		require.NoError(t, err)
		assert.Equal(t, "会議室A", rm.Name)
		assert.True(t, rm.Available)

		mockRepo.AssertExpectations(t)
	})

	t.Run("時刻の形式が不正な場合はエラー", func(t *testing.T) {
		mockRepo := new(MockRoomRepository)
		service := NewRoomService(mockRepo, nil, 0)

		_, err := service.CreateRoom(ctx, CreateRoomInput{
			Name:        "会議室A",
			Available:   true,
			Description: "テスト",
			OpenTime:    "25:00",
			CloseTime:   "22:00",
		})

		assert.ErrorIs(t, err, room.ErrInvalidOperatingTime)
		mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("開店が閉店以降の場合はエラー", func(t *testing.T) {
		mockRepo := new(MockRoomRepository)
		service := NewRoomService(mockRepo, nil, 0)

		_, err := service.CreateRoom(ctx, CreateRoomInput{
			Name:        "会議室A",
			Available:   true,
			Description: "テスト",
			OpenTime:    "22:00",
			CloseTime:   "09:00",
		})

		assert.ErrorIs(t, err, room.ErrInvalidOperatingTime)
	})

	t.Run("名前未指定の場合はエラー", func(t *testing.T) {
		mockRepo := new(MockRoomRepository)
		service := NewRoomService(mockRepo, nil, 0)

		_, err := service.CreateRoom(ctx, CreateRoomInput{
			Name:        "",
			Available:   true,
			Description: "テスト",
			OpenTime:    "09:00",
			CloseTime:   "22:00",
		})

		assert.ErrorIs(t, err, room.ErrRoomNameRequired)
	})
}

func TestRoomService_ListRooms(t *testing.T) {
	ctx := context.Background()

	t.Run("キャッシュなしでもリポジトリから取得できる", func(t *testing.T) {
		mockRepo := new(MockRoomRepository)
		rooms := []*room.Room{
			{ID: "room-1", Name: "会議室A"},
			{ID: "room-2", Name: "会議室B"},
		}
		mockRepo.On("List", ctx).Return(rooms, nil)

		service := NewRoomService(mockRepo, nil, 0)

		got, err := service.ListRooms(ctx)

		require.NoError(t, err)
		assert.Len(t, got, 2)

		mockRepo.AssertExpectations(t)
	})
}

func TestRoomService_EnableDisable(t *testing.T) {
	ctx := context.Background()

	t.Run("利用不可のルームを利用可能にできる", func(t *testing.T) {
		mockRepo := new(MockRoomRepository)
		rm := &room.Room{ID: "room-123", Name: "会議室A", Available: false}
		mockRepo.On("GetByID", ctx, "room-123").Return(rm, nil)
		mockRepo.On("Update", ctx, mock.MatchedBy(func(r *room.Room) bool {
			return r.Available
		})).Return(nil)

		service := NewRoomService(mockRepo, nil, 0)

		got, err := service.EnableRoom(ctx, "room-123")

		require.NoError(t, err)
		assert.True(t, got.Available)

		mockRepo.AssertExpectations(t)
	})

	t.Run("利用可能なルームを利用不可にできる", func(t *testing.T) {
		mockRepo := new(MockRoomRepository)
		rm := &room.Room{ID: "room-123", Name: "会議室A", Available: true}
		mockRepo.On("GetByID", ctx, "room-123").Return(rm, nil)
		mockRepo.On("Update", ctx, mock.MatchedBy(func(r *room.Room) bool {
			return !r.Available
		})).Return(nil)

		service := NewRoomService(mockRepo, nil, 0)

		got, err := service.DisableRoom(ctx, "room-123")

		require.NoError(t, err)
		assert.False(t, got.Available)

		mockRepo.AssertExpectations(t)
	})

	t.Run("ルームが存在しない場合はエラー", func(t *testing.T) {
		mockRepo := new(MockRoomRepository)
		mockRepo.On("GetByID", ctx, "nonexistent").Return(nil, room.ErrRoomNotFound)

		service := NewRoomService(mockRepo, nil, 0)

		_, err := service.EnableRoom(ctx, "nonexistent")

		assert.ErrorIs(t, err, room.ErrRoomNotFound)
		mockRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})
}
