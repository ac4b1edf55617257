package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePinger struct{ err error }

func (f fakePinger) PingContext(ctx context.Context) error { return f.err }

func TestHealthHandler_Check(t *testing.T) {
	e := NewTestEcho()

	doCheck := func(h *HealthHandler) (*httptest.ResponseRecorder, HealthResponse) {
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		require.NoError(t, h.Check(c))

		var resp HealthResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		return rec, resp
	}

	t.Run("DBが応答すれば200", func(t *testing.T) {
		rec, resp := doCheck(NewHealthHandler(fakePinger{}))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "ok", resp.Status)
		assert.Equal(t, "ok", resp.Database)
		assert.NotEmpty(t, resp.Timestamp)
	})

	t.Run("DBが応答しなければ503", func(t *testing.T) {
		rec, resp := doCheck(NewHealthHandler(fakePinger{err: errors.New("connection refused")}))
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
		assert.Equal(t, "unavailable", resp.Status)
		assert.Equal(t, "down", resp.Database)
	})

	t.Run("DBなしの構成では生存確認のみ", func(t *testing.T) {
		rec, resp := doCheck(NewHealthHandler(nil))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "ok", resp.Status)
		assert.Empty(t, resp.Database)
	})
}
