package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/sanosuguru/go-room-reservation/internal/domain/reservation"
	"github.com/sanosuguru/go-room-reservation/internal/domain/room"
	"github.com/sanosuguru/go-room-reservation/internal/domain/user"
	"github.com/sanosuguru/go-room-reservation/internal/pkg/logger"
)

// FieldError は入力値検証に失敗したフィールドの情報
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ErrorResponse はエラーレスポンスの統一フォーマット
// fieldErrors はリクエスト検証失敗時のみ埋まり、それ以外は空配列
type ErrorResponse struct {
	Code        string       `json:"code"`
	Message     string       `json:"message"`
	Status      int          `json:"status"`
	Timestamp   time.Time    `json:"timestamp"`
	Path        string       `json:"path"`
	FieldErrors []FieldError `json:"fieldErrors"`
}

// errorMapping はドメインエラーとHTTPレスポンスの対応表
// 予約の存在有無を漏らさないため、所有者違いも NOT_FOUND_RESERVATION として返す
type errorMapping struct {
	err    error
	code   string
	status int
}

var errorMappings = []errorMapping{
	{user.ErrUserNotFound, "NOT_FOUND_USER", http.StatusNotFound},
	{room.ErrRoomNotFound, "NOT_FOUND_ROOM", http.StatusNotFound},
	{reservation.ErrReservationNotFound, "NOT_FOUND_RESERVATION", http.StatusNotFound},
	{room.ErrRoomNotAvailable, "ROOM_NOT_AVAILABLE", http.StatusMethodNotAllowed},
	{room.ErrInvalidOperatingTime, "INVALID_OPERATING_TIME", http.StatusBadRequest},
	{room.ErrOutOfOperatingTime, "OUT_OF_OPERATING_TIME", http.StatusBadRequest},
	{room.ErrRoomNameRequired, "INVALID_REQUEST", http.StatusBadRequest},
	{reservation.ErrTooShortReservation, "TOO_SHORT_RESERVATION", http.StatusBadRequest},
	{reservation.ErrInvalidTimeRange, "INVALID_TIME_RANGE", http.StatusBadRequest},
	{reservation.ErrScheduleConflict, "SCHEDULE_CONFLICT", http.StatusConflict},
	{reservation.ErrAlreadyExpired, "ALREADY_EXPIRED", http.StatusConflict},
	{reservation.ErrInvalidStatus, "INVALID_STATUS", http.StatusConflict},
	{user.ErrInvalidPassword, "INVALID_PASSWORD", http.StatusBadRequest},
	{user.ErrInvalidEmail, "INVALID_EMAIL", http.StatusBadRequest},
	{user.ErrEmailTaken, "EMAIL_TAKEN", http.StatusConflict},
	{user.ErrNameRequired, "INVALID_REQUEST", http.StatusBadRequest},
	{user.ErrEmailRequired, "INVALID_REQUEST", http.StatusBadRequest},
	{user.ErrPasswordRequired, "INVALID_REQUEST", http.StatusBadRequest},
	// ロック待ちタイムアウトだけはリトライ可能な失敗として扱う
	{room.ErrRoomLockTimeout, "ROOM_LOCK_TIMEOUT", http.StatusServiceUnavailable},
}

// CustomHTTPErrorHandler はドメインエラーを統一フォーマットに変換する
func CustomHTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	path := c.Request().URL.Path
	resp := ErrorResponse{
		Code:        "INTERNAL_SERVER_ERROR",
		Message:     "サーバー内部エラーが発生しました",
		Status:      http.StatusInternalServerError,
		Timestamp:   time.Now(),
		Path:        path,
		FieldErrors: []FieldError{},
	}

	var ve *ValidationError
	var he *echo.HTTPError

	switch {
	case errors.As(err, &ve):
		resp.Code = "INVALID_REQUEST"
		resp.Message = "リクエストの値が正しくありません"
		resp.Status = http.StatusBadRequest
		resp.FieldErrors = ve.FieldErrors

	case errors.As(err, &he):
		resp.Status = he.Code
		resp.Code = http.StatusText(he.Code)
		if m, ok := he.Message.(string); ok {
			resp.Message = m
		} else {
			resp.Message = http.StatusText(he.Code)
		}

	default:
		mapped := false
		for _, m := range errorMappings {
			if errors.Is(err, m.err) {
				resp.Code = m.code
				resp.Message = m.err.Error()
				resp.Status = m.status
				mapped = true
				break
			}
		}
		// 想定外のエラーは詳細を返さず、サーバー側で全文ログを残す
		if !mapped {
			logger.Error("予期しないエラー",
				zap.String("path", path),
				zap.Error(err),
			)
		}
	}

	if resp.Status >= 500 && resp.Code != "INTERNAL_SERVER_ERROR" {
		logger.Error("サーバーエラー",
			zap.Int("status", resp.Status),
			zap.String("path", path),
			zap.Error(err),
		)
	}

	if err := c.JSON(resp.Status, resp); err != nil {
		logger.Error("エラーレスポンス送信失敗", zap.Error(err))
	}
}
