package participant

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/de-tools/ternak-atlas/pkg/models/api"
	"github.com/de-tools/ternak-atlas/pkg/models/domain"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockService struct {
	mock.Mock
}

func (m *mockService) Create(ctx context.Context, in domain.ParticipantInput) (*domain.Participant, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Participant), args.Error(1)
}

func (m *mockService) ListAll(ctx context.Context) ([]domain.Participant, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Participant), args.Error(1)
}

func (m *mockService) GetByID(ctx context.Context, id string) (*domain.Participant, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Participant), args.Error(1)
}

func (m *mockService) Update(ctx context.Context, id string, patch domain.ParticipantPatch) (*domain.Participant, error) {
	args := m.Called(ctx, id, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Participant), args.Error(1)
}

func (m *mockService) Delete(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *mockService) SetPerformanceStatus(ctx context.Context, id string, status string) (*domain.Participant, error) {
	args := m.Called(ctx, id, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Participant), args.Error(1)
}

func budi() *domain.Participant {
	return &domain.Participant{
		ID:           "p-1",
		FullName:     "Budi Santoso",
		NIK:          "3201",
		Address:      "Desa Sukamaju",
		Phone:        "0812",
		Gender:       "L",
		CycleStatus:  "aktif",
		EnrolledAt:   time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		InitialCount: 10,
		ReturnTarget: 12,
	}
}

func newRouter(svc *mockService) http.Handler {
	h := NewHandler(svc)
	r := chi.NewRouter()
	r.Get("/participants", h.List)
	r.Post("/participants", h.Create)
	r.Get("/participants/{id}", h.Get)
	r.Patch("/participants/{id}", h.Update)
	r.Delete("/participants/{id}", h.Delete)
	r.Put("/participants/{id}/performance-status", h.SetPerformanceStatus)
	return r
}

func do(t *testing.T, handler http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	return v
}

func TestHandler_List(t *testing.T) {
	svc := new(mockService)
	svc.On("ListAll", mock.Anything).Return([]domain.Participant{*budi()}, nil)

	rec := do(t, newRouter(svc), http.MethodGet, "/participants", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	got := decode[[]api.Participant](t, rec)
	require.Len(t, got, 1)
	assert.Equal(t, "Budi Santoso", got[0].FullName)
	assert.Equal(t, "2024-01-15", got[0].EnrolledAt)
}

func TestHandler_Create(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		svc := new(mockService)
		svc.On("Create", mock.Anything, mock.MatchedBy(func(in domain.ParticipantInput) bool {
			return in.NIK == "3201" &&
				in.EnrolledAt.Equal(time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)) &&
				*in.InitialCount == 10 &&
				in.CurrentCount != nil && *in.CurrentCount == 50
		})).Return(budi(), nil)

		body := `{"nama_lengkap":"Budi Santoso","nik":"3201","alamat":"Desa Sukamaju","no_hp":"0812",
			"jenis_kelamin":"L","status_siklus":"aktif","tanggal_bergabung":"2024-01-15",
			"jumlah_awal":10,"target_pengembalian":12,"jumlah_saat_ini":50}`
		rec := do(t, newRouter(svc), http.MethodPost, "/participants", body)

		assert.Equal(t, http.StatusCreated, rec.Code)
		got := decode[map[string]any](t, rec)
		assert.Equal(t, "p-1", got["id"])
		assert.NotContains(t, got, "jumlah_saat_ini")
		svc.AssertExpectations(t)
	})

	t.Run("validation error", func(t *testing.T) {
		svc := new(mockService)
		svc.On("Create", mock.Anything, mock.Anything).
			Return(nil, &domain.ValidationError{Field: domain.FieldNIK})

		rec := do(t, newRouter(svc), http.MethodPost, "/participants", `{"nama_lengkap":"Budi"}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		got := decode[api.Error](t, rec)
		assert.Equal(t, domain.FieldNIK, got.Field)
	})

	t.Run("malformed date", func(t *testing.T) {
		svc := new(mockService)
		rec := do(t, newRouter(svc), http.MethodPost, "/participants", `{"tanggal_bergabung":"15/01/2024"}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, domain.FieldEnrolledAt, decode[api.Error](t, rec).Field)
		svc.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("duplicate nik", func(t *testing.T) {
		svc := new(mockService)
		svc.On("Create", mock.Anything, mock.Anything).
			Return(nil, &domain.ConflictError{Message: "NIK sudah terdaftar pada peternak lain"})

		rec := do(t, newRouter(svc), http.MethodPost, "/participants", `{"nik":"3201"}`)

		assert.Equal(t, http.StatusConflict, rec.Code)
		assert.Equal(t, "NIK sudah terdaftar pada peternak lain", decode[api.Error](t, rec).Message)
	})

	t.Run("invalid body", func(t *testing.T) {
		rec := do(t, newRouter(new(mockService)), http.MethodPost, "/participants", `{`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestHandler_GetUpdateDelete(t *testing.T) {
	svc := new(mockService)
	router := newRouter(svc)

	svc.On("GetByID", mock.Anything, "p-1").Return(budi(), nil)
	svc.On("GetByID", mock.Anything, "missing").Return(nil, &domain.NotFoundError{Entity: "participant", ID: "missing"})

	rec := do(t, router, http.MethodGet, "/participants/p-1", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, router, http.MethodGet, "/participants/missing", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	updated := budi()
	updated.Phone = "0899"
	svc.On("Update", mock.Anything, "p-1", mock.MatchedBy(func(p domain.ParticipantPatch) bool {
		return p.Phone != nil && *p.Phone == "0899" && p.NIK == nil
	})).Return(updated, nil)

	rec = do(t, router, http.MethodPatch, "/participants/p-1", `{"no_hp":"0899"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "0899", decode[api.Participant](t, rec).Phone)

	svc.On("Delete", mock.Anything, "p-1").Return(true, nil)
	rec = do(t, router, http.MethodDelete, "/participants/p-1", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, decode[api.DeleteResponse](t, rec).Success)

	svc.On("Delete", mock.Anything, "p-2").Return(false, errors.New("disk full"))
	rec = do(t, router, http.MethodDelete, "/participants/p-2", "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "internal server error", decode[api.Error](t, rec).Message)

	svc.AssertExpectations(t)
}

func TestHandler_SetPerformanceStatus(t *testing.T) {
	svc := new(mockService)
	rated := budi()
	rated.PerformanceStatus = "baik"
	svc.On("SetPerformanceStatus", mock.Anything, "p-1", "baik").Return(rated, nil)

	rec := do(t, newRouter(svc), http.MethodPut, "/participants/p-1/performance-status", `{"status_kinerja":"baik"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "baik", decode[api.Participant](t, rec).PerformanceStatus)
}
