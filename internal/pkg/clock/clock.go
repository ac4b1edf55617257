package clock

import "time"

// Clock は現在時刻の取得を抽象化する
// サービス層が time.Now を直接呼ばないようにし、時刻依存のテストを決定的にする
type Clock interface {
	// Now は現在時刻を返す
	Now() time.Time
}

// SystemClock はシステム時刻をそのまま返す Clock 実装
type SystemClock struct{}

// New はシステム時刻を使う Clock を作成する
func New() Clock {
	return SystemClock{}
}

// Now は現在のシステム時刻を返す
func (SystemClock) Now() time.Time {
	return time.Now()
}

// FixedClock は固定時刻を返す Clock 実装（テスト用）
type FixedClock struct {
	T time.Time
}

// NewFixed は常に t を返す Clock を作成する
func NewFixed(t time.Time) FixedClock {
	return FixedClock{T: t}
}

// Now は固定された時刻を返す
func (c FixedClock) Now() time.Time {
	return c.T
}
