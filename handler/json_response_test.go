package handler_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/svgstore/handler"
)

func TestJSON(t *testing.T) {
	t.Parallel()

	t.Run("encodes value as is", func(t *testing.T) {
		t.Parallel()
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/", nil)

		err := handler.JSON(map[string]any{"success": true, "count": 0, "images": []string{}}).Render(w, r)
		require.NoError(t, err)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "application/json; charset=utf-8", w.Header().Get("Content-Type"))
		assert.JSONEq(t, `{"success":true,"count":0,"images":[]}`, w.Body.String())
	})

	t.Run("status and headers", func(t *testing.T) {
		t.Parallel()
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodPost, "/", nil)

		err := handler.JSON(struct{}{},
			handler.WithJSONStatus(http.StatusCreated),
			handler.WithJSONHeader("Location", "/images/a.svg"),
		).Render(w, r)
		require.NoError(t, err)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, "/images/a.svg", w.Header().Get("Location"))
	})
}

func TestError(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	w := httptest.NewRecorder()

	err := handler.Error(boom).Render(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.ErrorIs(t, err, boom)
	assert.Empty(t, w.Body.String())

	err = handler.Error(nil).Render(w, httptest.NewRequest(http.MethodGet, "/", nil))
	var httpErr handler.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusInternalServerError, httpErr.Code)
}
