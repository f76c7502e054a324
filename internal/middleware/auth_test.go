package middleware

import (
	"net/http"
	"net/http/httptest"
	"quizdom_backend/internal/model"
	"quizdom_backend/internal/util"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newRoleRouter(claims *util.Claims, roles ...model.UserRole) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(func(c *gin.Context) {
		if claims != nil {
			c.Set("user", claims)
		}
	})
	router.Use(RoleMiddleware(roles...))
	router.GET("/ping", func(c *gin.Context) {
		util.Success(c, nil)
	})
	return router
}

func ping(router *gin.Engine) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	router.ServeHTTP(w, req)
	return w
}

func TestRoleMiddlewareAllowsMatchingRole(t *testing.T) {
	router := newRoleRouter(&util.Claims{UserID: 1, Role: model.RoleUser}, model.RoleUser)
	assert.Equal(t, http.StatusOK, ping(router).Code)
}

// 管理员令牌不能走用户侧作答路由
func TestRoleMiddlewareRejectsAdminOnUserRoutes(t *testing.T) {
	router := newRoleRouter(&util.Claims{UserID: 1, Role: model.RoleAdmin}, model.RoleUser)
	assert.Equal(t, http.StatusForbidden, ping(router).Code)
}

func TestRoleMiddlewareRejectsUserOnAdminRoutes(t *testing.T) {
	router := newRoleRouter(&util.Claims{UserID: 1, Role: model.RoleUser}, model.RoleAdmin)
	assert.Equal(t, http.StatusForbidden, ping(router).Code)
}

func TestRoleMiddlewareRejectsMissingIdentity(t *testing.T) {
	router := newRoleRouter(nil, model.RoleUser)
	assert.Equal(t, http.StatusUnauthorized, ping(router).Code)
}
