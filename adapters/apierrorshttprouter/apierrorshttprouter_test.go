package apierrorshttprouter

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/apierrors/apierrors"
)

func newRouter(t *testing.T) (*httprouter.Router, *apierrors.Formatter) {
	t.Helper()
	f, err := apierrors.New(apierrors.DefaultConfig())
	require.NoError(t, err)

	r := httprouter.New()
	Mount(r, f)
	return r, f
}

func do(r http.Handler, method, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func bodyJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func TestWrap(t *testing.T) {
	r, f := newRouter(t)
	r.GET("/items/:id", Wrap(f, func(w http.ResponseWriter, req *http.Request, ps httprouter.Params) error {
		return apierrors.NotFound()
	}))

	rec := do(r, http.MethodGet, "/items/42")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "application/problem+json", rec.Header().Get("Content-Type"))
	assert.Equal(t, "Not found.", bodyJSON(t, rec)["title"])
}

func TestWrapSuccess(t *testing.T) {
	r, f := newRouter(t)
	r.GET("/ok", Wrap(f, func(w http.ResponseWriter, req *http.Request, ps httprouter.Params) error {
		w.WriteHeader(http.StatusNoContent)
		return nil
	}))

	rec := do(r, http.MethodGet, "/ok")
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestMountNotFound(t *testing.T) {
	r, _ := newRouter(t)

	rec := do(r, http.MethodGet, "/nowhere")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Not found.", bodyJSON(t, rec)["title"])
}

func TestMountMethodNotAllowed(t *testing.T) {
	r, f := newRouter(t)
	r.GET("/only-get", Wrap(f, func(w http.ResponseWriter, req *http.Request, ps httprouter.Params) error {
		w.WriteHeader(http.StatusOK)
		return nil
	}))

	rec := do(r, http.MethodPost, "/only-get")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	body := bodyJSON(t, rec)
	assert.Equal(t, "Method not allowed.", body["title"])
	assert.Equal(t, []any{`Method "POST" not allowed.`}, body["detail"])
}

func TestMountPanicHandler(t *testing.T) {
	r, f := newRouter(t)
	r.GET("/boom", Wrap(f, func(w http.ResponseWriter, req *http.Request, ps httprouter.Params) error {
		panic("unreachable state")
	}))

	rec := do(r, http.MethodGet, "/boom")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Server error.", bodyJSON(t, rec)["title"])
}
