package handler_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/xxxsen/common/webapi"

	"github.com/rvermeer/authd/internal/handler"
	"github.com/rvermeer/authd/internal/middleware"
	"github.com/rvermeer/authd/internal/repo"
	"github.com/rvermeer/authd/internal/service"
	"github.com/rvermeer/authd/test/testutil"
)

type noopSender struct{}

func (noopSender) Send(to, subject, body string) error {
	return nil
}

func setupRouter(t *testing.T) (http.Handler, *repo.UserRepo, func()) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	conn, cleanup := testutil.OpenTestDB(t)
	userRepo := repo.NewUserRepo(conn)

	jwtSecret := []byte("test-secret")
	notifier := service.NewMailNotifier(noopSender{})
	authService := service.NewAuthService(userRepo, notifier, jwtSecret, time.Hour, "https://app.example.com")

	deps := handler.RouterDeps{
		Auth:      handler.NewAuthHandler(authService, time.Hour),
		JWTSecret: jwtSecret,
	}

	engine, err := webapi.NewEngine(
		"/api",
		"",
		webapi.WithRegister(func(group *gin.RouterGroup) {
			handler.RegisterRoutes(group, deps)
		}),
		webapi.WithExtraMiddlewares(
			middleware.RequestID(),
			middleware.CORS(nil),
		),
	)
	require.NoError(t, err)

	return engine, userRepo, cleanup
}
