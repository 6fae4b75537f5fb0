package router

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shandysiswandi/artmatch/internal/pkg/goerror"
	"github.com/shandysiswandi/artmatch/internal/pkg/jwt"
	"github.com/shandysiswandi/artmatch/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubJWT struct {
	claims jwt.Claims
	err    error
}

func (s stubJWT) Generate(int64, string) (string, error) { return "token", nil }
func (s stubJWT) Verify(string) (jwt.Claims, error)      { return s.claims, s.err }

type stubUUID struct{}

func (stubUUID) Generate() string { return "generated-cid" }

type created struct {
	ID int64 `json:"id,string"`
}

func (created) StatusCode() int { return http.StatusCreated }
func (created) Message() string { return "Photo uploaded" }

func newTestRouter(t *testing.T, verifier jwt.JWT, checks ...HealthCheck) *Router {
	t.Helper()
	return NewRouter(Config{UUID: stubUUID{}, JWT: verifier, HealthChecks: checks})
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestRouter_Welcome(t *testing.T) {
	ro := newTestRouter(t, stubJWT{})

	rec := httptest.NewRecorder()
	ro.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Welcome to ArtMatch API", decode(t, rec)["message"])
	assert.Equal(t, "generated-cid", rec.Header().Get(HeaderCorrelationID))
}

func TestRouter_Health(t *testing.T) {
	ro := newTestRouter(t, stubJWT{}, HealthCheck{Name: "db", Check: func(_ context.Context) error { return nil }})
	rec := httptest.NewRecorder()
	ro.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	ro = newTestRouter(t, stubJWT{}, HealthCheck{Name: "db", Check: func(_ context.Context) error { return errors.New("down") }})
	rec = httptest.NewRecorder()
	ro.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestRouter_Authentication(t *testing.T) {
	claims := jwt.Claims{UserID: 7, UserEmail: "a@b.c"}
	ro := newTestRouter(t, stubJWT{claims: claims})
	ro.GET("/api/v1/gallery/photos", func(r *Request) (any, error) {
		return map[string]int64{"user_id": jwt.GetAuth(r.Context()).UserID}, nil
	})

	rec := httptest.NewRecorder()
	ro.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/gallery/photos", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/gallery/photos", nil)
	req.Header.Set("Authorization", "Bearer abc")
	rec = httptest.NewRecorder()
	ro.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, map[string]any{"user_id": float64(7)}, decode(t, rec)["data"])

	ro = newTestRouter(t, stubJWT{err: jwt.ErrTokenExpired})
	ro.GET("/api/v1/gallery/photos", func(*Request) (any, error) { return nil, nil })
	rec = httptest.NewRecorder()
	ro.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Invalid or expired token", decode(t, rec)["message"])
}

func TestRouter_PublicEndpoint(t *testing.T) {
	ro := newTestRouter(t, stubJWT{err: jwt.ErrInvalidToken})
	ro.POST("/api/v1/identity/login", func(*Request) (any, error) {
		return created{ID: 1}, nil
	})

	rec := httptest.NewRecorder()
	ro.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/identity/login", strings.NewReader(`{}`)))

	assert.Equal(t, http.StatusCreated, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, "Photo uploaded", body["message"])
	assert.Equal(t, map[string]any{"id": "1"}, body["data"])
}

func TestRouter_Errors(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantMsg  string
		wantErr  map[string]any
	}{
		{
			name:     "business",
			err:      goerror.NewBusiness("Invalid email or password", goerror.CodeUnauthorized),
			wantCode: http.StatusUnauthorized,
			wantMsg:  "Invalid email or password",
		},
		{
			name:     "validation",
			err:      goerror.NewInvalidInput(validator.FieldErrors{"email": "email must be a valid email address"}),
			wantCode: http.StatusUnprocessableEntity,
			wantMsg:  "Validation error",
			wantErr:  map[string]any{"email": "email must be a valid email address"},
		},
		{
			name:     "plain error",
			err:      errors.New("boom"),
			wantCode: http.StatusInternalServerError,
			wantMsg:  "Internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ro := newTestRouter(t, stubJWT{})
			ro.POST("/api/v1/identity/register", func(*Request) (any, error) { return nil, tt.err })

			rec := httptest.NewRecorder()
			ro.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/identity/register", nil))

			assert.Equal(t, tt.wantCode, rec.Code)
			body := decode(t, rec)
			assert.Equal(t, tt.wantMsg, body["message"])
			if tt.wantErr != nil {
				assert.Equal(t, tt.wantErr, body["error"])
			}
		})
	}
}

func TestRouter_RecoverAndNotFound(t *testing.T) {
	ro := newTestRouter(t, stubJWT{})
	ro.GET("/health/panic", func(*Request) (any, error) { panic("boom") })

	req := httptest.NewRequest(http.MethodGet, "/health/panic", nil)
	req.Header.Set("Authorization", "Bearer x")
	rec := httptest.NewRecorder()
	ro.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	rec = httptest.NewRecorder()
	ro.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRouter_Stream(t *testing.T) {
	ro := newTestRouter(t, stubJWT{})
	ro.GET("/api/v1/gallery/photos/:id/content", func(*Request) (any, error) {
		return &Stream{Body: io.NopCloser(strings.NewReader("jpeg")), ContentType: "image/jpeg", Size: 4}, nil
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/gallery/photos/1/content", nil)
	req.Header.Set("Authorization", "Bearer x")
	rec := httptest.NewRecorder()
	ro.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/jpeg", rec.Header().Get("Content-Type"))
	assert.Equal(t, "jpeg", rec.Body.String())
}

func TestChain_Order(t *testing.T) {
	var order []string
	mw := func(name string) Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	h := Chain(http.HandlerFunc(func(http.ResponseWriter, *http.Request) { order = append(order, "handler") }), mw("a"), nil, mw("b"))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, []string{"a", "b", "handler"}, order)
}

func TestRequest_ReadSingleFile(t *testing.T) {
	build := func(field string, data []byte) *http.Request {
		var buf bytes.Buffer
		mw := multipart.NewWriter(&buf)
		require.NoError(t, mw.WriteField("note", "ignored"))
		part, err := mw.CreatePart(map[string][]string{
			"Content-Disposition": {`form-data; name="` + field + `"; filename="me.jpg"`},
			"Content-Type":        {"image/jpeg"},
		})
		require.NoError(t, err)
		_, err = part.Write(data)
		require.NoError(t, err)
		require.NoError(t, mw.Close())

		req := httptest.NewRequest(http.MethodPost, "/", &buf)
		req.Header.Set("Content-Type", mw.FormDataContentType())
		return req
	}

	data, ct, err := (&Request{Request: build("file", []byte("abc"))}).ReadSingleFile("file", 10)
	require.NoError(t, err)
	assert.Equal(t, []byte("abc"), data)
	assert.Equal(t, "image/jpeg", ct)

	_, _, err = (&Request{Request: build("file", bytes.Repeat([]byte("a"), 11))}).ReadSingleFile("file", 10)
	var gerr *goerror.Error
	require.ErrorAs(t, err, &gerr)
	assert.Equal(t, goerror.CodeTooLarge, gerr.Code())

	_, _, err = (&Request{Request: build("other", []byte("abc"))}).ReadSingleFile("file", 10)
	require.ErrorAs(t, err, &gerr)
	assert.Equal(t, goerror.CodeInvalidInput, gerr.Code())
}

func TestRealIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.1:1234"
	assert.Equal(t, "10.0.0.1", realIP(req))

	req.Header.Set("X-Forwarded-For", "203.0.113.9, 10.0.0.1")
	assert.Equal(t, "203.0.113.9", realIP(req))
}

func TestNormalizeCID(t *testing.T) {
	assert.Empty(t, normalizeCID("a\r\nb"))
	assert.Equal(t, "abc", normalizeCID("  abc "))
	assert.Len(t, normalizeCID(strings.Repeat("x", 200)), 128)
}

func TestRequest_ReadForm(t *testing.T) {
	build := func(withFile bool, data []byte) *http.Request {
		var buf bytes.Buffer
		mw := multipart.NewWriter(&buf)
		require.NoError(t, mw.WriteField("name", " baroque_rembrandt_night_watch "))
		require.NoError(t, mw.WriteField("style", "oil"))
		if withFile {
			fw, err := mw.CreateFormFile("file", "night_watch.jpg")
			require.NoError(t, err)
			_, err = fw.Write(data)
			require.NoError(t, err)
		}
		require.NoError(t, mw.Close())

		req := httptest.NewRequest(http.MethodPost, "/", &buf)
		req.Header.Set("Content-Type", mw.FormDataContentType())
		return req
	}

	form, err := (&Request{Request: build(true, []byte("art"))}).ReadForm("file", 10)
	require.NoError(t, err)
	assert.Equal(t, &Form{
		Values:   map[string]string{"name": "baroque_rembrandt_night_watch", "style": "oil"},
		File:     []byte("art"),
		Filename: "night_watch.jpg",
	}, form)

	var gerr *goerror.Error
	_, err = (&Request{Request: build(true, bytes.Repeat([]byte("a"), 11))}).ReadForm("file", 10)
	require.ErrorAs(t, err, &gerr)
	assert.Equal(t, goerror.CodeTooLarge, gerr.Code())

	_, err = (&Request{Request: build(false, nil)}).ReadForm("file", 10)
	require.ErrorAs(t, err, &gerr)
	assert.Equal(t, goerror.CodeInvalidInput, gerr.Code())

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("{}"))
	req.Header.Set("Content-Type", "application/json")
	_, err = (&Request{Request: req}).ReadForm("file", 10)
	require.ErrorAs(t, err, &gerr)
	assert.Equal(t, goerror.CodeInvalidFormat, gerr.Code())
}
