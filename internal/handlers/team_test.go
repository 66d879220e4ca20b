package handlers

import (
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/ocean-hazard-api/internal/dto"
	"github.com/yukikurage/ocean-hazard-api/internal/models"
)

type memberResponse struct {
	User dto.TeamMemberDTO `json:"user"`
}

func setupTeamRouter(t *testing.T) http.Handler {
	t.Helper()
	env := setupTestEnv(t)
	handler := NewTeamHandler(env.teamService)

	r := newTestRouter()
	r.GET("/api/admin/team", handler.ListMembers)
	r.POST("/api/admin/team", handler.CreateMember)
	r.PUT("/api/admin/team/:id/status", handler.UpdateMemberStatus)
	return r
}

func TestTeamHandler_CreateAndList(t *testing.T) {
	r := setupTeamRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/admin/team", map[string]interface{}{
		"name":     "Priya Raman",
		"email":    "priya@coast.gov",
		"role":     "field_officer",
		"isOnline": true,
		"location": map[string]float64{"lat": 13.08, "lng": 80.27},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created memberResponse
	decode(t, w, &created)
	assert.True(t, strings.HasPrefix(created.User.ID, "admin-"))
	assert.Equal(t, models.RoleFieldOfficer, created.User.Role)
	require.NotNil(t, created.User.Location)
	assert.Equal(t, 13.08, created.User.Location.Lat)

	w = doJSON(t, r, http.MethodGet, "/api/admin/team", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var list struct {
		Users []dto.TeamMemberDTO `json:"users"`
	}
	decode(t, w, &list)
	require.Len(t, list.Users, 1)
	assert.Equal(t, created.User.ID, list.Users[0].ID)
}

func TestTeamHandler_CreateRejectsUnknownRole(t *testing.T) {
	r := setupTeamRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/admin/team", map[string]interface{}{
		"name":  "X",
		"email": "x@coast.gov",
		"role":  "captain",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTeamHandler_UpdateStatus(t *testing.T) {
	r := setupTeamRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/admin/team", map[string]interface{}{
		"name":     "Priya Raman",
		"email":    "priya@coast.gov",
		"role":     "supervisor",
		"location": map[string]float64{"lat": 13.08, "lng": 80.27},
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var created memberResponse
	decode(t, w, &created)

	w = doJSON(t, r, http.MethodPut, "/api/admin/team/"+created.User.ID+"/status", map[string]interface{}{"isOnline": true})
	require.Equal(t, http.StatusOK, w.Code)

	var updated memberResponse
	decode(t, w, &updated)
	assert.True(t, updated.User.IsOnline)
	require.NotNil(t, updated.User.Location)
	assert.Equal(t, 80.27, updated.User.Location.Lng)

	w = doJSON(t, r, http.MethodPut, "/api/admin/team/"+created.User.ID+"/status", map[string]interface{}{})
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, r, http.MethodPut, "/api/admin/team/admin-missing/status", map[string]interface{}{"isOnline": false})
	require.Equal(t, http.StatusNotFound, w.Code)
}
