package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/sanosuguru/go-room-reservation/internal/api/middleware"
	"github.com/sanosuguru/go-room-reservation/internal/application"
)

type ReservationHandler struct {
	service ReservationServiceInterface
}

func NewReservationHandler(s ReservationServiceInterface) *ReservationHandler {
	return &ReservationHandler{service: s}
}

type CreateReservationRequest struct {
	RoomID  string    `json:"room_id" validate:"required"`
	StartAt time.Time `json:"start_at" validate:"required"`
	EndAt   time.Time `json:"end_at" validate:"required"`
}

type UpdateReservationRequest struct {
	Password string    `json:"password" validate:"required"`
	RoomID   string    `json:"room_id" validate:"required"`
	StartAt  time.Time `json:"start_at" validate:"required"`
	EndAt    time.Time `json:"end_at" validate:"required"`
}

type CancelReservationRequest struct {
	Password string `json:"password" validate:"required"`
}

type ReservationSummaryResponse struct {
	UserName string    `json:"user_name"`
	RoomName string    `json:"room_name"`
	StartAt  time.Time `json:"start_at"`
	EndAt    time.Time `json:"end_at"`
}

func toSummaryResponse(s *application.ReservationSummary) ReservationSummaryResponse {
	return ReservationSummaryResponse{
		UserName: s.UserName,
		RoomName: s.RoomName,
		StartAt:  s.StartAt,
		EndAt:    s.EndAt,
	}
}

// Create godoc
// @Summary 予約を作成
// @Description ルームの時間帯を予約します
// @Tags reservations
// @Accept json
// @Produce json
// @Param request body CreateReservationRequest true "予約情報"
// @Success 201 {object} ReservationSummaryResponse
// @Failure 400 {object} api.ErrorResponse
// @Failure 404 {object} api.ErrorResponse
// @Failure 405 {object} api.ErrorResponse "ルームが利用不可"
// @Failure 409 {object} api.ErrorResponse "時間帯の重複"
// @Router /reservations [post]
func (h *ReservationHandler) Create(c echo.Context) error {
	userID := middleware.UserID(c)
	if userID == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "認証が必要です")
	}

	var req CreateReservationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "無効なリクエスト")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	summary, err := h.service.Reserve(c.Request().Context(), application.ReserveInput{
		RoomID:  req.RoomID,
		UserID:  userID,
		StartAt: req.StartAt,
		EndAt:   req.EndAt,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toSummaryResponse(summary))
}

// Update godoc
// @Summary 予約を変更
// @Description 予約のルーム・時間帯を変更します
// @Tags reservations
// @Accept json
// @Produce json
// @Param id path string true "予約ID"
// @Param request body UpdateReservationRequest true "変更内容"
// @Success 200 {object} ReservationSummaryResponse
// @Failure 400 {object} api.ErrorResponse
// @Failure 404 {object} api.ErrorResponse "所有者以外にも返る"
// @Failure 409 {object} api.ErrorResponse
// @Router /reservations/{id} [put]
func (h *ReservationHandler) Update(c echo.Context) error {
	userID := middleware.UserID(c)
	if userID == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "認証が必要です")
	}

	var req UpdateReservationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "無効なリクエスト")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	summary, err := h.service.Update(c.Request().Context(), application.UpdateInput{
		ReservationID: c.Param("id"),
		RoomID:        req.RoomID,
		UserID:        userID,
		Password:      req.Password,
		StartAt:       req.StartAt,
		EndAt:         req.EndAt,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toSummaryResponse(summary))
}

// List godoc
// @Summary 自分の予約一覧を取得
// @Description reserved 状態の予約を登録順で返します
// @Tags reservations
// @Produce json
// @Success 200 {array} ReservationSummaryResponse
// @Failure 401 {object} api.ErrorResponse
// @Router /reservations [get]
func (h *ReservationHandler) List(c echo.Context) error {
	userID := middleware.UserID(c)
	if userID == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "認証が必要です")
	}

	summaries, err := h.service.GetUserReservations(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	resp := make([]ReservationSummaryResponse, len(summaries))
	for i, s := range summaries {
		resp[i] = toSummaryResponse(s)
	}
	return c.JSON(http.StatusOK, resp)
}

// Cancel godoc
// @Summary 予約を取り消し
// @Description 予約を取消状態にします（履歴として残ります）
// @Tags reservations
// @Accept json
// @Param id path string true "予約ID"
// @Param request body CancelReservationRequest true "本人確認"
// @Success 204
// @Failure 400 {object} api.ErrorResponse "パスワード不一致"
// @Failure 404 {object} api.ErrorResponse "所有者以外にも返る"
// @Failure 409 {object} api.ErrorResponse "期限切れの予約"
// @Router /reservations/{id} [delete]
func (h *ReservationHandler) Cancel(c echo.Context) error {
	userID := middleware.UserID(c)
	if userID == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "認証が必要です")
	}

	var req CancelReservationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "無効なリクエスト")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if err := h.service.Cancel(c.Request().Context(), application.CancelInput{
		ReservationID: c.Param("id"),
		UserID:        userID,
		Password:      req.Password,
	}); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
