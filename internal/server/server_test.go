package server

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"anoa.com/ecoinsight/internal/catalog"
	"anoa.com/ecoinsight/internal/config"
	"anoa.com/ecoinsight/internal/middleware"
	achievementHttp "anoa.com/ecoinsight/internal/modules/achievement/delivery/http"
	achievementMock "anoa.com/ecoinsight/internal/modules/achievement/service/mock"
	ledgerService "anoa.com/ecoinsight/internal/modules/ledger/service"
	profileHttp "anoa.com/ecoinsight/internal/modules/profile/delivery/http"
	profileMock "anoa.com/ecoinsight/internal/modules/profile/service/mock"
	rewardHttp "anoa.com/ecoinsight/internal/modules/reward/delivery/http"
	rewardService "anoa.com/ecoinsight/internal/modules/reward/service"
	userHttp "anoa.com/ecoinsight/internal/modules/user/delivery/http"
	userMock "anoa.com/ecoinsight/internal/modules/user/repository/mock"
	userService "anoa.com/ecoinsight/internal/modules/user/service"
	wasteHttp "anoa.com/ecoinsight/internal/modules/waste/delivery/http"
	wasteMock "anoa.com/ecoinsight/internal/modules/waste/service/mock"
	"github.com/gin-gonic/gin"
	"go.uber.org/mock/gomock"
)

func testRouter(t *testing.T, users *userMock.MockUserRepository) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	ctrl := gomock.NewController(t)

	cfg := &config.Config{AppEnv: "development", MaxUploadBytes: 1 << 20}
	h := handlers{
		auth:        userHttp.NewAuthHandler(userService.NewAuthService(users, "secret", 0)),
		waste:       wasteHttp.NewWasteHandler(wasteMock.NewMockWasteService(ctrl), cfg.MaxUploadBytes),
		profile:     profileHttp.NewProfileHandler(profileMock.NewMockProfileService(ctrl)),
		achievement: achievementHttp.NewAchievementHandler(achievementMock.NewMockAchievementService(ctrl)),
		reward:      rewardHttp.NewRewardHandler(rewardService.NewRewardService(ledgerService.NewLedgerService(users), catalog.Default())),
		health:      healthHandler(users),
	}
	return newRouter(cfg, middleware.NewAuthMiddleware("secret"), h)
}

func TestRouterHealth(t *testing.T) {
	ctrl := gomock.NewController(t)
	users := userMock.NewMockUserRepository(ctrl)
	r := testRouter(t, users)

	users.EXPECT().Ping(gomock.Any()).Return(nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/health", nil))
	if w.Code != http.StatusOK {
		t.Errorf("healthy status = %d", w.Code)
	}

	users.EXPECT().Ping(gomock.Any()).Return(errors.New("db down"))
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/health", nil))
	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("unhealthy status = %d", w.Code)
	}
}

func TestRouterProtectsUserRoutes(t *testing.T) {
	ctrl := gomock.NewController(t)
	r := testRouter(t, userMock.NewMockUserRepository(ctrl))

	routes := []struct{ method, path string }{
		{http.MethodPost, "/api/classify"},
		{http.MethodGet, "/api/waste/history"},
		{http.MethodGet, "/api/waste/search"},
		{http.MethodGet, "/api/user/points"},
		{http.MethodGet, "/api/user/profile"},
		{http.MethodGet, "/api/user/achievements"},
		{http.MethodPost, "/api/user/redeem"},
	}
	for _, rt := range routes {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(rt.method, rt.path, nil))
		if w.Code != http.StatusUnauthorized {
			t.Errorf("%s %s status = %d, want 401", rt.method, rt.path, w.Code)
		}
	}
}

func TestRouterPublicRoutes(t *testing.T) {
	ctrl := gomock.NewController(t)
	r := testRouter(t, userMock.NewMockUserRepository(ctrl))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/rewards", nil))
	if w.Code != http.StatusOK {
		t.Errorf("rewards status = %d", w.Code)
	}

	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", bytes.NewBufferString(`{"email":"nope"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Errorf("register status = %d, want 400", w.Code)
	}
}

func TestServerHandlerServesRouter(t *testing.T) {
	ctrl := gomock.NewController(t)
	users := userMock.NewMockUserRepository(ctrl)
	s := &Server{engine: testRouter(t, users), cfg: &config.Config{AppEnv: "development"}}

	users.EXPECT().Ping(gomock.Any()).Return(nil)
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/health", nil))
	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", w.Code, http.StatusOK)
	}
}
