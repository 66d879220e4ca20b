package handlers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	apierrors "github.com/yukikurage/ocean-hazard-api/internal/errors"
	"github.com/yukikurage/ocean-hazard-api/internal/models"
	"github.com/yukikurage/ocean-hazard-api/internal/services"
)

type reportResponse struct {
	Report models.HazardReport `json:"report"`
}

type reportsResponse struct {
	Reports []models.HazardReport `json:"reports"`
}

func setupReportRouter(t *testing.T) (testEnv, http.Handler) {
	t.Helper()
	env := setupTestEnv(t)
	handler := NewHazardReportHandler(env.reportService)

	r := newTestRouter()
	r.POST("/api/hazard-reports", handler.CreateHazardReport)
	r.GET("/api/hazard-reports", handler.ListHazardReports)
	r.GET("/api/hazard-reports/nearby", handler.NearbyHazardReports)
	r.GET("/api/hazard-reports/user/:userId", handler.ListUserHazardReports)
	r.GET("/api/hazard-reports/:id", handler.GetHazardReport)
	return env, r
}

func TestHazardReportHandler_Create(t *testing.T) {
	_, r := setupReportRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/hazard-reports", map[string]interface{}{
		"description": "Oil spill emergency near dock",
		"latitude":    13.05,
		"longitude":   80.28,
		"userId":      "u1",
		"imageUrl":    "https://cdn.example.com/a.jpg",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var response reportResponse
	decode(t, w, &response)
	assert.NotEmpty(t, response.Report.ID)
	assert.Equal(t, "u1", response.Report.UserID)
	require.NotNil(t, response.Report.ImageURL)
	assert.Equal(t, "https://cdn.example.com/a.jpg", *response.Report.ImageURL)
	assert.Nil(t, response.Report.AudioURL)
	assert.NotContains(t, w.Body.String(), "priority")
}

func TestHazardReportHandler_Create_ZeroCoordinatesAccepted(t *testing.T) {
	_, r := setupReportRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/hazard-reports", map[string]interface{}{
		"description": "Null island swell",
		"latitude":    0,
		"longitude":   0,
		"userId":      "u1",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
}

func TestHazardReportHandler_Create_MissingUser(t *testing.T) {
	_, r := setupReportRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/hazard-reports", map[string]interface{}{
		"description": "Debris",
		"latitude":    13.05,
		"longitude":   80.28,
	})
	require.Equal(t, http.StatusUnauthorized, w.Code)

	var apiErr apierrors.APIError
	decode(t, w, &apiErr)
	assert.Equal(t, "User ID required", apiErr.Message)
}

func TestHazardReportHandler_Create_InvalidData(t *testing.T) {
	_, r := setupReportRouter(t)

	tests := []struct {
		name    string
		payload interface{}
	}{
		{"missing description", map[string]interface{}{"latitude": 1, "longitude": 1, "userId": "u1"}},
		{"missing latitude", map[string]interface{}{"description": "x", "longitude": 1, "userId": "u1"}},
		{"latitude out of range", map[string]interface{}{"description": "x", "latitude": 95, "longitude": 1, "userId": "u1"}},
		{"latitude wrong type", map[string]interface{}{"description": "x", "latitude": "north", "longitude": 1, "userId": "u1"}},
		{"malformed json", `{"description":`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(t, r, http.MethodPost, "/api/hazard-reports", tt.payload)
			require.Equal(t, http.StatusBadRequest, w.Code)

			var apiErr apierrors.APIError
			decode(t, w, &apiErr)
			assert.Equal(t, "Invalid data", apiErr.Message)
		})
	}

	w := doJSON(t, r, http.MethodGet, "/api/hazard-reports", nil)
	var response reportsResponse
	decode(t, w, &response)
	assert.Empty(t, response.Reports)
}

func TestHazardReportHandler_ListAndFilter(t *testing.T) {
	env, r := setupReportRouter(t)

	for _, in := range []struct{ desc, user string }{{"first", "u1"}, {"second", "u2"}, {"third", "u1"}} {
		_, err := env.reportService.CreateHazardReport(services.CreateReportInput{
			Description: in.desc, Latitude: 13.05, Longitude: 80.28,
		}, in.user)
		require.NoError(t, err)
	}

	w := doJSON(t, r, http.MethodGet, "/api/hazard-reports", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var all reportsResponse
	decode(t, w, &all)
	require.Len(t, all.Reports, 3)
	for i := 1; i < len(all.Reports); i++ {
		assert.False(t, all.Reports[i].CreatedAt.After(all.Reports[i-1].CreatedAt))
	}

	w = doJSON(t, r, http.MethodGet, "/api/hazard-reports/user/u1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var mine reportsResponse
	decode(t, w, &mine)
	require.Len(t, mine.Reports, 2)
	for _, rep := range mine.Reports {
		assert.Equal(t, "u1", rep.UserID)
	}

	w = doJSON(t, r, http.MethodGet, "/api/hazard-reports/"+mine.Reports[0].ID, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/hazard-reports/missing", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestHazardReportHandler_Nearby(t *testing.T) {
	env, r := setupReportRouter(t)

	_, err := env.reportService.CreateHazardReport(services.CreateReportInput{
		Description: "close", Latitude: 13.05, Longitude: 80.28,
	}, "u1")
	require.NoError(t, err)
	_, err = env.reportService.CreateHazardReport(services.CreateReportInput{
		Description: "far", Latitude: 8.08, Longitude: 77.55,
	}, "u1")
	require.NoError(t, err)

	w := doJSON(t, r, http.MethodGet, "/api/hazard-reports/nearby?lat=13.06&lng=80.28&radiusKm=5", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Reports []services.NearbyReport `json:"reports"`
	}
	decode(t, w, &response)
	require.Len(t, response.Reports, 1)
	assert.Equal(t, "close", response.Reports[0].Description)
	assert.InDelta(t, 1.11, response.Reports[0].DistanceKm, 0.05)

	w = doJSON(t, r, http.MethodGet, "/api/hazard-reports/nearby?lat=north", nil)
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/hazard-reports/nearby?lat=13&lng=80&radiusKm=-3", nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHazardReportHandler_ListPaginated(t *testing.T) {
	env, r := setupReportRouter(t)

	for _, desc := range []string{"a", "b", "c"} {
		_, err := env.reportService.CreateHazardReport(services.CreateReportInput{
			Description: desc, Latitude: 13.05, Longitude: 80.28,
		}, "u1")
		require.NoError(t, err)
	}

	w := doJSON(t, r, http.MethodGet, "/api/hazard-reports?page=2&limit=2", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Reports    []models.HazardReport `json:"reports"`
		Pagination struct {
			Page  int   `json:"page"`
			Limit int   `json:"limit"`
			Total int64 `json:"total"`
		} `json:"pagination"`
	}
	decode(t, w, &response)
	require.Len(t, response.Reports, 1)
	assert.Equal(t, 2, response.Pagination.Page)
	assert.Equal(t, int64(3), response.Pagination.Total)

	w = doJSON(t, r, http.MethodGet, "/api/hazard-reports", nil)
	assert.NotContains(t, w.Body.String(), "pagination")

	w = doJSON(t, r, http.MethodGet, "/api/hazard-reports?page=100000000000000001&limit=100", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	decode(t, w, &response)
	assert.Empty(t, response.Reports)
	assert.Equal(t, int64(3), response.Pagination.Total)
}
