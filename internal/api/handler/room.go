package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/sanosuguru/go-room-reservation/internal/application"
	"github.com/sanosuguru/go-room-reservation/internal/domain/room"
)

type RoomHandler struct {
	service RoomServiceInterface
}

func NewRoomHandler(s RoomServiceInterface) *RoomHandler {
	return &RoomHandler{service: s}
}

type CreateRoomRequest struct {
	Name        string `json:"name" validate:"required,max=50"`
	Available   bool   `json:"available"`
	Description string `json:"description" validate:"required,max=100"`
	OpenTime    string `json:"open_time" validate:"required"`
	CloseTime   string `json:"close_time" validate:"required"`
}

type RoomResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Available   bool      `json:"available"`
	Description string    `json:"description"`
	OpenTime    string    `json:"open_time"`
	CloseTime   string    `json:"close_time"`
	CreatedAt   time.Time `json:"created_at"`
}

func toRoomResponse(r *room.Room) RoomResponse {
	return RoomResponse{
		ID:          r.ID,
		Name:        r.Name,
		Available:   r.Available,
		Description: r.Description,
		OpenTime:    r.OpenTime.String(),
		CloseTime:   r.CloseTime.String(),
		CreatedAt:   r.CreatedAt,
	}
}

// Create godoc
// @Summary ルームを作成
// @Tags rooms
// @Accept json
// @Produce json
// @Param request body CreateRoomRequest true "ルーム情報"
// @Success 201 {object} RoomResponse
// @Failure 400 {object} api.ErrorResponse
// @Router /rooms [post]
func (h *RoomHandler) Create(c echo.Context) error {
	var req CreateRoomRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "無効なリクエスト")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	rm, err := h.service.CreateRoom(c.Request().Context(), application.CreateRoomInput{
		Name:        req.Name,
		Available:   req.Available,
		Description: req.Description,
		OpenTime:    req.OpenTime,
		CloseTime:   req.CloseTime,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toRoomResponse(rm))
}

// List godoc
// @Summary ルーム一覧を取得
// @Tags rooms
// @Produce json
// @Success 200 {array} RoomResponse
// @Router /rooms [get]
func (h *RoomHandler) List(c echo.Context) error {
	rooms, err := h.service.ListRooms(c.Request().Context())
	if err != nil {
		return err
	}
	resp := make([]RoomResponse, len(rooms))
	for i, r := range rooms {
		resp[i] = toRoomResponse(r)
	}
	return c.JSON(http.StatusOK, resp)
}

// GetByID godoc
// @Summary ルームを取得
// @Tags rooms
// @Produce json
// @Param id path string true "ルームID"
// @Success 200 {object} RoomResponse
// @Failure 404 {object} api.ErrorResponse
// @Router /rooms/{id} [get]
func (h *RoomHandler) GetByID(c echo.Context) error {
	rm, err := h.service.GetRoom(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toRoomResponse(rm))
}

// Enable godoc
// @Summary ルームを利用可能にする（冪等）
// @Tags rooms
// @Produce json
// @Param id path string true "ルームID"
// @Success 200 {object} RoomResponse
// @Failure 404 {object} api.ErrorResponse
// @Router /rooms/{id}/enable [post]
func (h *RoomHandler) Enable(c echo.Context) error {
	rm, err := h.service.EnableRoom(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toRoomResponse(rm))
}

// Disable godoc
// @Summary ルームを利用不可にする（冪等）
// @Tags rooms
// @Produce json
// @Param id path string true "ルームID"
// @Success 200 {object} RoomResponse
// @Failure 404 {object} api.ErrorResponse
// @Router /rooms/{id}/disable [post]
func (h *RoomHandler) Disable(c echo.Context) error {
	rm, err := h.service.DisableRoom(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toRoomResponse(rm))
}
