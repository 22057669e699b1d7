package booking

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tenniscourt/internal/database"
	"tenniscourt/internal/repository"
)

type errorResponse struct {
	Success bool `json:"success"`
	Error   struct {
		Code    string         `json:"code"`
		Message string         `json:"message"`
		Details map[string]any `json:"details"`
	} `json:"error"`
}

type reservationEnvelope struct {
	Success bool `json:"success"`
	Data    struct {
		Reservation struct {
			ID              int64     `json:"id"`
			CourtID         int64     `json:"court_id"`
			End             time.Time `json:"end"`
			DurationMinutes int       `json:"duration_minutes"`
		} `json:"reservation"`
	} `json:"data"`
}

func setupRouter(t *testing.T) (*gin.Engine, *repository.Store) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := database.Connect(fmt.Sprintf("file:booking_%s?mode=memory&cache=shared", t.Name()), database.Options{Quiet: true})
	require.NoError(t, err)
	require.NoError(t, repository.Migrate(db))
	store := repository.NewStore(db)

	handler := NewHandler(NewService(newTestSession(t), store, nil))

	router := gin.New()
	handler.RegisterRoutes(router.Group("/api/v1"))
	return router, store
}

func performRequest(router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func TestHandler_CreateReservation(t *testing.T) {
	router, store := setupRouter(t)

	body := map[string]any{
		"court_id":         1,
		"client_id":        1,
		"participant_id":   2,
		"start_time":       slot.Format(time.RFC3339),
		"duration_minutes": 60,
	}
	resp := performRequest(router, http.MethodPost, "/api/v1/reservations", body)
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())

	var created reservationEnvelope
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &created))
	assert.True(t, created.Success)
	assert.Equal(t, int64(1), created.Data.Reservation.ID)
	assert.Equal(t, 60, created.Data.Reservation.DurationMinutes)
	assert.True(t, created.Data.Reservation.End.Equal(slot.Add(time.Hour)))

	stored, err := store.ListReservations(t.Context())
	require.NoError(t, err)
	require.Len(t, stored, 1)

	body["start_time"] = slot.Add(45 * time.Minute).Format(time.RFC3339)
	resp = performRequest(router, http.MethodPost, "/api/v1/reservations", body)
	require.Equal(t, http.StatusConflict, resp.Code)

	var errResp errorResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &errResp))
	assert.Equal(t, "TIME_UNAVAILABLE", errResp.Error.Code)
	assert.Equal(t, "court", errResp.Error.Details["resource"])
}

func TestHandler_CreateReservation_RoleMismatch(t *testing.T) {
	router, _ := setupRouter(t)

	resp := performRequest(router, http.MethodPost, "/api/v1/reservations", map[string]any{
		"court_id":         1,
		"client_id":        1,
		"participant_id":   1,
		"start_time":       slot.Format(time.RFC3339),
		"duration_minutes": 60,
	})
	require.Equal(t, http.StatusUnprocessableEntity, resp.Code)

	var errResp errorResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &errResp))
	assert.Equal(t, "ROLE_MISMATCH", errResp.Error.Code)
	assert.Equal(t, "participant", errResp.Error.Details["side"])
}

func TestHandler_BadInput(t *testing.T) {
	router, _ := setupRouter(t)

	resp := performRequest(router, http.MethodPost, "/api/v1/reservations", map[string]any{"court_id": 1})
	assert.Equal(t, http.StatusBadRequest, resp.Code)

	resp = performRequest(router, http.MethodGet, "/api/v1/reservations/abc", nil)
	assert.Equal(t, http.StatusBadRequest, resp.Code)

	resp = performRequest(router, http.MethodGet, "/api/v1/reservations/42", nil)
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestHandler_TrainingAndBookings(t *testing.T) {
	router, _ := setupRouter(t)

	resp := performRequest(router, http.MethodPost, "/api/v1/trainings", map[string]any{
		"trainer_id":       1,
		"court_id":         1,
		"client_ids":       []int64{1},
		"participant_ids":  []int64{2},
		"equipment_ids":    []int64{1},
		"start_time":       slot.Format(time.RFC3339),
		"duration_minutes": 60,
	})
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())

	resp = performRequest(router, http.MethodPost, "/api/v1/trainings/1/members", map[string]any{
		"person_id": 3,
		"side":      "participant",
	})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	resp = performRequest(router, http.MethodGet, "/api/v1/people/3/bookings", nil)
	require.Equal(t, http.StatusOK, resp.Code)

	var out struct {
		Data PersonBookings `json:"data"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &out))
	assert.Len(t, out.Data.Trainings, 1)
	assert.Empty(t, out.Data.TrainingsBought)
}

func TestHandler_PayAndCancelAreNotImplemented(t *testing.T) {
	router, _ := setupRouter(t)

	resp := performRequest(router, http.MethodPost, "/api/v1/reservations", map[string]any{
		"court_id":         1,
		"client_id":        3,
		"participant_id":   3,
		"start_time":       slot.Format(time.RFC3339),
		"duration_minutes": 60,
	})
	require.Equal(t, http.StatusCreated, resp.Code)

	resp = performRequest(router, http.MethodGet, "/api/v1/reservations/1/price", nil)
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), `"price":40`)

	resp = performRequest(router, http.MethodPost, "/api/v1/reservations/1/pay", nil)
	assert.Equal(t, http.StatusNotImplemented, resp.Code)

	resp = performRequest(router, http.MethodDelete, "/api/v1/reservations/1", nil)
	assert.Equal(t, http.StatusNotImplemented, resp.Code)
}
