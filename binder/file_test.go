package binder_test

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/svgstore/binder"
)

type uploadRequest struct {
	Image  []*multipart.FileHeader `file:"image"`
	Avatar *multipart.FileHeader   `file:"avatar"`
}

type part struct {
	field, filename, contentType, body string
}

func multipartRequest(t *testing.T, parts ...part) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for _, p := range parts {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", `form-data; name="`+p.field+`"; filename="`+p.filename+`"`)
		if p.contentType != "" {
			h.Set("Content-Type", p.contentType)
		}
		w, err := mw.CreatePart(h)
		require.NoError(t, err)
		_, err = w.Write([]byte(p.body))
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	r := httptest.NewRequest(http.MethodPost, "/upload", &buf)
	r.Header.Set("Content-Type", mw.FormDataContentType())
	return r
}

func TestFile(t *testing.T) {
	t.Parallel()

	t.Run("binds headers by field", func(t *testing.T) {
		t.Parallel()
		r := multipartRequest(t,
			part{"image", "a.svg", "image/svg+xml", "<svg/>"},
			part{"avatar", "me.png", "image/png", "png"},
		)

		var req uploadRequest
		require.NoError(t, binder.File(0)(r, &req))

		require.Len(t, req.Image, 1)
		assert.Equal(t, "a.svg", req.Image[0].Filename)
		assert.Equal(t, int64(6), req.Image[0].Size)
		assert.Equal(t, "image/svg+xml", req.Image[0].Header.Get("Content-Type"))
		require.NotNil(t, req.Avatar)
		assert.Equal(t, "me.png", req.Avatar.Filename)
		assert.Equal(t, 2, binder.FileCount(r))
	})

	t.Run("multiple parts under one field", func(t *testing.T) {
		t.Parallel()
		r := multipartRequest(t,
			part{"image", "a.svg", "", "a"},
			part{"image", "b.svg", "", "b"},
		)

		var req uploadRequest
		require.NoError(t, binder.File(binder.DefaultMaxMemory)(r, &req))
		assert.Len(t, req.Image, 2)
		assert.Nil(t, req.Avatar)
	})

	t.Run("not multipart", func(t *testing.T) {
		t.Parallel()
		r := httptest.NewRequest(http.MethodPost, "/upload", strings.NewReader(`{}`))
		r.Header.Set("Content-Type", "application/json")

		var req uploadRequest
		assert.ErrorIs(t, binder.File(0)(r, &req), binder.ErrBinderNotApplicable)
		assert.Equal(t, 0, binder.FileCount(r))
	})

	t.Run("body over limit keeps MaxBytesError", func(t *testing.T) {
		t.Parallel()
		r := multipartRequest(t, part{"image", "big.svg", "", strings.Repeat("x", 4096)})
		w := httptest.NewRecorder()
		r.Body = http.MaxBytesReader(w, r.Body, 1024)

		var req uploadRequest
		err := binder.File(0)(r, &req)
		require.Error(t, err)
		assert.ErrorIs(t, err, binder.ErrFailedToParseForm)

		var maxBytesErr *http.MaxBytesError
		assert.ErrorAs(t, err, &maxBytesErr)
	})

	t.Run("malformed body", func(t *testing.T) {
		t.Parallel()
		r := httptest.NewRequest(http.MethodPost, "/upload", strings.NewReader("garbage"))
		r.Header.Set("Content-Type", "multipart/form-data; boundary=xyz")

		var req uploadRequest
		assert.ErrorIs(t, binder.File(0)(r, &req), binder.ErrFailedToParseForm)
	})

	t.Run("unsupported field type", func(t *testing.T) {
		t.Parallel()
		r := multipartRequest(t, part{"image", "a.svg", "", "a"})

		var req struct {
			Image string `file:"image"`
		}
		assert.ErrorIs(t, binder.File(0)(r, &req), binder.ErrFailedToParseForm)
	})
}
