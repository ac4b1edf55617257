package room

import (
	"fmt"
	"time"
)

// TimeOfDay は日付を持たない時刻を表す（ルームの運営時間に使う）
type TimeOfDay struct {
	Hour   int
	Minute int
}

// ParseTimeOfDay は "15:04" 形式の文字列から TimeOfDay を作成する
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return TimeOfDay{}, fmt.Errorf("時刻の形式が不正です: %w", err)
	}
	return TimeOfDay{Hour: t.Hour(), Minute: t.Minute()}, nil
}

// TimeOfDayOf は日時からローカルの時刻部分を取り出す
func TimeOfDayOf(t time.Time) TimeOfDay {
	return TimeOfDay{Hour: t.Hour(), Minute: t.Minute()}
}

// MinutesOfDay は TimeOfDay を 0時からの経過分に変換する
func MinutesOfDay(m int) TimeOfDay {
	return TimeOfDay{Hour: m / 60, Minute: m % 60}
}

// Minutes は0時からの経過分を返す
func (t TimeOfDay) Minutes() int {
	return t.Hour*60 + t.Minute
}

// Before は t が other より前かを返す
func (t TimeOfDay) Before(other TimeOfDay) bool {
	return t.Minutes() < other.Minutes()
}

// After は t が other より後かを返す
func (t TimeOfDay) After(other TimeOfDay) bool {
	return t.Minutes() > other.Minutes()
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// Room はルームエンティティを表す
// Available への直接代入は禁止で、Enable / Disable / EnsureAvailable を通して扱う
type Room struct {
	ID          string
	Name        string
	Available   bool
	Description string
	OpenTime    TimeOfDay
	CloseTime   TimeOfDay
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewRoom は新しいルームを作成する
// openTime < closeTime が成立しない場合は構築自体が失敗する
func NewRoom(name string, available bool, description string, openTime, closeTime TimeOfDay) (*Room, error) {
	if name == "" {
		return nil, ErrRoomNameRequired
	}
	if !openTime.Before(closeTime) {
		return nil, ErrInvalidOperatingTime
	}
	now := time.Now()
	return &Room{
		Name:        name,
		Available:   available,
		Description: description,
		OpenTime:    openTime,
		CloseTime:   closeTime,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// ValidateOperatingTime は予約時間帯が運営時間に完全に収まっているかを検証する
// 開始・終了それぞれのローカル時刻で包含判定する（境界の一致は許容）
func (r *Room) ValidateOperatingTime(startAt, endAt time.Time) error {
	start := TimeOfDayOf(startAt)
	end := TimeOfDayOf(endAt)
	if start.Before(r.OpenTime) || end.After(r.CloseTime) {
		return ErrOutOfOperatingTime
	}
	return nil
}

// EnsureAvailable はルームが利用可能であることを保証する
// 予約系の操作はルーム行ロック取得後に必ずこれを呼ぶ
func (r *Room) EnsureAvailable() error {
	if !r.Available {
		return ErrRoomNotAvailable
	}
	return nil
}

// Enable はルームを利用可能にする（既に有効なら何もしない）
func (r *Room) Enable() {
	if r.Available {
		return
	}
	r.Available = true
	r.UpdatedAt = time.Now()
}

// Disable はルームを利用不可にする（既に無効なら何もしない）
func (r *Room) Disable() {
	if !r.Available {
		return
	}
	r.Available = false
	r.UpdatedAt = time.Now()
}
