package handler

import (
	"context"
	"time"

	"github.com/sanosuguru/go-room-reservation/internal/application"
	"github.com/sanosuguru/go-room-reservation/internal/domain/room"
	"github.com/sanosuguru/go-room-reservation/internal/domain/user"
)

// ReservationServiceInterface は予約サービスのインターフェース
type ReservationServiceInterface interface {
	Reserve(ctx context.Context, input application.ReserveInput) (*application.ReservationSummary, error)
	Update(ctx context.Context, input application.UpdateInput) (*application.ReservationSummary, error)
	Cancel(ctx context.Context, input application.CancelInput) error
	GetUserReservations(ctx context.Context, userID string) ([]*application.ReservationSummary, error)
	ExpireStaleReservations(ctx context.Context, olderThan time.Duration) (int, error)
}

// RoomServiceInterface はルームサービスのインターフェース
type RoomServiceInterface interface {
	CreateRoom(ctx context.Context, input application.CreateRoomInput) (*room.Room, error)
	GetRoom(ctx context.Context, id string) (*room.Room, error)
	ListRooms(ctx context.Context) ([]*room.Room, error)
	EnableRoom(ctx context.Context, id string) (*room.Room, error)
	DisableRoom(ctx context.Context, id string) (*room.Room, error)
}

// UserServiceInterface はユーザーサービスのインターフェース
type UserServiceInterface interface {
	Join(ctx context.Context, input application.JoinInput) (*user.User, error)
	Leave(ctx context.Context, input application.LeaveInput) error
	Login(ctx context.Context, input application.LoginInput) (*user.User, error)
	GetUser(ctx context.Context, id string) (*user.User, error)
}
