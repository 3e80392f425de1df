package apierrorsmux

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/apierrors/apierrors"
)

func newRouter(t *testing.T) (*mux.Router, *apierrors.Formatter) {
	t.Helper()
	f, err := apierrors.New(apierrors.DefaultConfig())
	require.NoError(t, err)

	r := mux.NewRouter()
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

func TestHandler(t *testing.T) {
	r, f := newRouter(t)
	r.Handle("/items/{id}", Handler(f, func(w http.ResponseWriter, req *http.Request) error {
		return apierrors.NotFound()
	})).Methods(http.MethodGet)

	rec := do(r, http.MethodGet, "/items/42")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "application/problem+json", rec.Header().Get("Content-Type"))
	assert.Equal(t, "Not found.", bodyJSON(t, rec)["title"])
}

func TestHandlerSuccess(t *testing.T) {
	r, f := newRouter(t)
	r.Handle("/ok", Handler(f, func(w http.ResponseWriter, req *http.Request) error {
		w.WriteHeader(http.StatusNoContent)
		return nil
	}))

	rec := do(r, http.MethodGet, "/ok")
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestMount(t *testing.T) {
	r, f := newRouter(t)
	r.Handle("/only-get", Handler(f, func(w http.ResponseWriter, req *http.Request) error {
		w.WriteHeader(http.StatusOK)
		return nil
	})).Methods(http.MethodGet)

	rec := do(r, http.MethodGet, "/nowhere")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Not found.", bodyJSON(t, rec)["title"])

	rec = do(r, http.MethodPost, "/only-get")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	body := bodyJSON(t, rec)
	assert.Equal(t, "Method not allowed.", body["title"])
	assert.Equal(t, []any{`Method "POST" not allowed.`}, body["detail"])
}
