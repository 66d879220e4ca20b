package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/ocean-hazard-api/internal/config"
	"github.com/yukikurage/ocean-hazard-api/internal/constants"
	"github.com/yukikurage/ocean-hazard-api/internal/database"
	"github.com/yukikurage/ocean-hazard-api/internal/repository"
	"github.com/yukikurage/ocean-hazard-api/internal/services"
	"gorm.io/gorm"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type testEnv struct {
	db            *gorm.DB
	authService   *services.AuthService
	reportService *services.ReportService
	triageService *services.TriageService
	teamService   *services.TeamService
	teamRepo      repository.TeamMemberRepository
}

func setupTestEnv(t *testing.T) testEnv {
	t.Helper()

	db, err := database.Connect(config.DatabaseConfig{Driver: "sqlite", Path: ":memory:"}, "error")
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() {
		_ = database.Close(db)
	})

	reportRepo := repository.NewHazardReportRepository(db)
	teamRepo := repository.NewTeamMemberRepository(db)

	return testEnv{
		db:            db,
		authService:   services.NewAuthService(repository.NewUserRepository(db)),
		reportService: services.NewReportService(reportRepo, nil, nil),
		triageService: services.NewTriageService(reportRepo, repository.NewAdminReportRepository(db), teamRepo, nil),
		teamService:   services.NewTeamService(teamRepo, nil),
		teamRepo:      teamRepo,
	}
}

func newTestRouter() *gin.Engine {
	r := gin.New()
	store := cookie.NewStore([]byte("secret"))
	r.Use(sessions.Sessions(constants.SessionCookieName, store))
	return r
}

func doJSON(t *testing.T, r http.Handler, method, path string, payload interface{}, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	var body *bytes.Reader
	switch p := payload.(type) {
	case nil:
		body = bytes.NewReader(nil)
	case string:
		body = bytes.NewReader([]byte(p))
	default:
		data, err := json.Marshal(p)
		require.NoError(t, err)
		body = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v), w.Body.String())
}
