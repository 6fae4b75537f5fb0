package inbound

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shandysiswandi/artmatch/internal/gallery/entity"
	"github.com/shandysiswandi/artmatch/internal/gallery/usecase"
	"github.com/shandysiswandi/artmatch/internal/pkg/goerror"
	"github.com/shandysiswandi/artmatch/internal/pkg/jwt"
	"github.com/shandysiswandi/artmatch/internal/pkg/router"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockUC struct{ mock.Mock }

func (m *mockUC) UploadPhoto(_ context.Context, in usecase.UploadPhotoInput) (*usecase.PhotoOutput, error) {
	args := m.Called(in)
	out, _ := args.Get(0).(*usecase.PhotoOutput)
	return out, args.Error(1)
}

func (m *mockUC) ListPhotos(_ context.Context, in usecase.ListPhotosInput) (*usecase.ListPhotosOutput, error) {
	args := m.Called(in)
	out, _ := args.Get(0).(*usecase.ListPhotosOutput)
	return out, args.Error(1)
}

func (m *mockUC) GetPhoto(_ context.Context, in usecase.GetPhotoInput) (*usecase.PhotoOutput, error) {
	args := m.Called(in)
	out, _ := args.Get(0).(*usecase.PhotoOutput)
	return out, args.Error(1)
}

func (m *mockUC) DeletePhoto(_ context.Context, in usecase.DeletePhotoInput) error {
	return m.Called(in).Error(0)
}

type stubVerifier struct{}

func (stubVerifier) Generate(int64, string) (string, error) { return "", nil }
func (stubVerifier) Verify(string) (jwt.Claims, error)      { return jwt.Claims{UserID: 7}, nil }

var uploadedAt = time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

func setup(t *testing.T) (*router.Router, *mockUC) {
	t.Helper()
	m := &mockUC{}
	t.Cleanup(func() { m.AssertExpectations(t) })

	ro := router.NewRouter(router.Config{JWT: stubVerifier{}})
	RegisterHTTPEndpoint(ro, m, 16)
	return ro, m
}

func do(ro http.Handler, req *http.Request) *httptest.ResponseRecorder {
	req.Header.Set("Authorization", "Bearer token")
	rec := httptest.NewRecorder()
	ro.ServeHTTP(rec, req)
	return rec
}

func multipartBody(t *testing.T, field string, data []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile(field, "selfie.png")
	require.NoError(t, err)
	_, err = fw.Write(data)
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func TestHTTPEndpoint_UploadPhoto(t *testing.T) {
	t.Run("Created", func(t *testing.T) {
		ro, m := setup(t)
		m.On("UploadPhoto", usecase.UploadPhotoInput{Data: []byte("png-bytes")}).Return(&usecase.PhotoOutput{
			ID:          11,
			ContentType: "image/png",
			Size:        9,
			FaceStatus:  entity.FaceStatusPending,
			UploadedAt:  uploadedAt,
			URL:         "https://cdn/7/a.png",
		}, nil)

		body, ct := multipartBody(t, "file", []byte("png-bytes"))
		req := httptest.NewRequest(http.MethodPost, "/api/v1/gallery/photos", body)
		req.Header.Set("Content-Type", ct)
		rec := do(ro, req)

		assert.Equal(t, http.StatusCreated, rec.Code)
		var out struct {
			Message string         `json:"message"`
			Data    map[string]any `json:"data"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
		assert.Equal(t, "Photo uploaded", out.Message)
		assert.Equal(t, "11", out.Data["id"])
		assert.Equal(t, "pending", out.Data["face_status"])
		assert.Equal(t, "https://cdn/7/a.png", out.Data["url"])
	})

	t.Run("TooLarge", func(t *testing.T) {
		ro, _ := setup(t)

		body, ct := multipartBody(t, "file", bytes.Repeat([]byte("x"), 17))
		req := httptest.NewRequest(http.MethodPost, "/api/v1/gallery/photos", body)
		req.Header.Set("Content-Type", ct)
		rec := do(ro, req)

		assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	})

	t.Run("MissingField", func(t *testing.T) {
		ro, _ := setup(t)

		body, ct := multipartBody(t, "image", []byte("x"))
		req := httptest.NewRequest(http.MethodPost, "/api/v1/gallery/photos", body)
		req.Header.Set("Content-Type", ct)
		rec := do(ro, req)

		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})
}

func TestHTTPEndpoint_ListPhotos(t *testing.T) {
	ro, m := setup(t)
	m.On("ListPhotos", usecase.ListPhotosInput{Page: 2, Size: 20}).Return(&usecase.ListPhotosOutput{
		Photos: []usecase.PhotoOutput{{ID: 1, FaceStatus: entity.FaceStatusDetected, UploadedAt: uploadedAt}},
		Total:  21,
		Page:   2,
		Size:   20,
	}, nil)

	rec := do(ro, httptest.NewRequest(http.MethodGet, "/api/v1/gallery/photos?page=2", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	var out struct {
		Data struct {
			Photos []map[string]any `json:"photos"`
		} `json:"data"`
		Meta map[string]any `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	require.Len(t, out.Data.Photos, 1)
	assert.Equal(t, "detected", out.Data.Photos[0]["face_status"])
	assert.Equal(t, map[string]any{"total": float64(21), "page": float64(2), "size": float64(20)}, out.Meta)
}

func TestHTTPEndpoint_ListPhotosBadQuery(t *testing.T) {
	ro, _ := setup(t)

	rec := do(ro, httptest.NewRequest(http.MethodGet, "/api/v1/gallery/photos?size=lots", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHTTPEndpoint_GetAndDeletePhoto(t *testing.T) {
	ro, m := setup(t)
	m.On("GetPhoto", usecase.GetPhotoInput{ID: 5}).Return(nil, goerror.NewBusiness("Photo not found", goerror.CodeNotFound))
	m.On("DeletePhoto", usecase.DeletePhotoInput{ID: 6}).Return(nil)

	rec := do(ro, httptest.NewRequest(http.MethodGet, "/api/v1/gallery/photos/5", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(ro, httptest.NewRequest(http.MethodDelete, "/api/v1/gallery/photos/6", nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = do(ro, httptest.NewRequest(http.MethodGet, "/api/v1/gallery/photos/abc", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
