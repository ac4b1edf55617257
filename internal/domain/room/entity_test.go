package room

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRoom(t *testing.T) {
	tests := []struct {
		name        string
		roomName    string
		openTime    TimeOfDay
		closeTime   TimeOfDay
		wantErr     bool
		errExpected error
	}{
		{
			name: "正常なルーム作成", roomName: "room-A",
			openTime: TimeOfDay{Hour: 9}, closeTime: TimeOfDay{Hour: 18},
			wantErr: false,
		},
		{
			name: "ルーム名未指定", roomName: "",
			openTime: TimeOfDay{Hour: 9}, closeTime: TimeOfDay{Hour: 18},
			wantErr: true, errExpected: ErrRoomNameRequired,
		},
		{
			name: "開店時刻と閉店時刻が同じ", roomName: "room-A",
			openTime: TimeOfDay{Hour: 9}, closeTime: TimeOfDay{Hour: 9},
			wantErr: true, errExpected: ErrInvalidOperatingTime,
		},
		{
			name: "開店時刻が閉店時刻より後", roomName: "room-A",
			openTime: TimeOfDay{Hour: 18}, closeTime: TimeOfDay{Hour: 9},
			wantErr: true, errExpected: ErrInvalidOperatingTime,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := NewRoom(tt.roomName, true, "desc", tt.openTime, tt.closeTime)
			if tt.wantErr {
				assert.ErrorIs(t, err, tt.errExpected)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.roomName, r.Name)
			assert.True(t, r.Available)
		})
	}
}

func TestRoom_ValidateOperatingTime(t *testing.T) {
	r := createTestRoom(t, TimeOfDay{Hour: 9}, TimeOfDay{Hour: 18})
	day := time.Date(2025, 6, 1, 0, 0, 0, 0, time.Local)

	tests := []struct {
		name    string
		start   time.Time
		end     time.Time
		wantErr error
	}{
		{"運営時間内", day.Add(10 * time.Hour), day.Add(12 * time.Hour), nil},
		{"開店時刻ちょうどから", day.Add(9 * time.Hour), day.Add(10 * time.Hour), nil},
		{"閉店時刻ちょうどまで", day.Add(17 * time.Hour), day.Add(18 * time.Hour), nil},
		{"開始が開店前", day.Add(8 * time.Hour), day.Add(10 * time.Hour), ErrOutOfOperatingTime},
		{"終了が閉店後", day.Add(17 * time.Hour), day.Add(19 * time.Hour), ErrOutOfOperatingTime},
		{"全体が運営時間外", day.Add(19 * time.Hour), day.Add(21 * time.Hour), ErrOutOfOperatingTime},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := r.ValidateOperatingTime(tt.start, tt.end)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestRoom_EnsureAvailable(t *testing.T) {
	r := createTestRoom(t, TimeOfDay{Hour: 9}, TimeOfDay{Hour: 18})
	assert.NoError(t, r.EnsureAvailable())

	r.Disable()
	assert.ErrorIs(t, r.EnsureAvailable(), ErrRoomNotAvailable)
}

func TestRoom_EnableDisable_Idempotent(t *testing.T) {
	r := createTestRoom(t, TimeOfDay{Hour: 9}, TimeOfDay{Hour: 18})

	r.Enable()
	assert.True(t, r.Available)

	r.Disable()
	r.Disable()
	assert.False(t, r.Available)

	r.Enable()
	r.Enable()
	assert.True(t, r.Available)
}

func TestParseTimeOfDay(t *testing.T) {
	tod, err := ParseTimeOfDay("09:30")
	require.NoError(t, err)
	assert.Equal(t, 9, tod.Hour)
	assert.Equal(t, 30, tod.Minute)
	assert.Equal(t, 570, tod.Minutes())
	assert.Equal(t, "09:30", tod.String())

	_, err = ParseTimeOfDay("930")
	assert.Error(t, err)
}

func createTestRoom(t *testing.T, open, close TimeOfDay) *Room {
	r, err := NewRoom("room-A", true, "4人用の会議室", open, close)
	require.NoError(t, err)
	return r
}
