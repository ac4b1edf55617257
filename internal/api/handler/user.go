package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sanosuguru/go-room-reservation/internal/api/middleware"
	"github.com/sanosuguru/go-room-reservation/internal/application"
)

type UserHandler struct {
	service UserServiceInterface
	issuer  *middleware.TokenIssuer
}

func NewUserHandler(s UserServiceInterface, issuer *middleware.TokenIssuer) *UserHandler {
	return &UserHandler{service: s, issuer: issuer}
}

type JoinRequest struct {
	Name        string `json:"name" validate:"required,max=30"`
	Email       string `json:"email" validate:"required,email,max=50"`
	Password    string `json:"password" validate:"required,min=8"`
	PhoneNumber string `json:"phone_number" validate:"required,max=11"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LeaveRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type UserResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type LoginResponse struct {
	Token string `json:"token"`
}

// Join godoc
// @Summary 会員登録
// @Tags users
// @Accept json
// @Produce json
// @Param request body JoinRequest true "登録情報"
// @Success 201 {object} UserResponse
// @Failure 400 {object} api.ErrorResponse
// @Failure 409 {object} api.ErrorResponse "メールアドレス重複"
// @Router /users [post]
func (h *UserHandler) Join(c echo.Context) error {
	var req JoinRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "無効なリクエスト")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	u, err := h.service.Join(c.Request().Context(), application.JoinInput{
		Name:        req.Name,
		Email:       req.Email,
		Password:    req.Password,
		PhoneNumber: req.PhoneNumber,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, UserResponse{ID: u.ID, Name: u.Name, Email: u.Email})
}

// Login godoc
// @Summary ログイン
// @Description 認証に成功するとアクセストークンを返します
// @Tags users
// @Accept json
// @Produce json
// @Param request body LoginRequest true "認証情報"
// @Success 200 {object} LoginResponse
// @Failure 400 {object} api.ErrorResponse
// @Failure 404 {object} api.ErrorResponse
// @Router /auth/login [post]
func (h *UserHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "無効なリクエスト")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	u, err := h.service.Login(c.Request().Context(), application.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return err
	}

	token, err := h.issuer.Generate(u.ID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "トークン発行に失敗しました")
	}
	return c.JSON(http.StatusOK, LoginResponse{Token: token})
}

// Leave godoc
// @Summary 退会
// @Description メールアドレスとパスワードの両方が一致した場合のみ退会できます
// @Tags users
// @Accept json
// @Param request body LeaveRequest true "本人確認"
// @Success 204
// @Failure 400 {object} api.ErrorResponse
// @Failure 404 {object} api.ErrorResponse
// @Router /users/me [delete]
func (h *UserHandler) Leave(c echo.Context) error {
	userID := middleware.UserID(c)
	if userID == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "認証が必要です")
	}

	var req LeaveRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "無効なリクエスト")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if err := h.service.Leave(c.Request().Context(), application.LeaveInput{
		UserID:   userID,
		Email:    req.Email,
		Password: req.Password,
	}); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
