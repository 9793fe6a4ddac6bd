package bootstrap

import (
	"database/sql"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	httpapi "github.com/time-matcha/timematcha-backend/internal/api/http"
	"github.com/time-matcha/timematcha-backend/internal/api/middleware"
	"github.com/time-matcha/timematcha-backend/internal/answers"
	"github.com/time-matcha/timematcha-backend/internal/dashboard"
	"github.com/time-matcha/timematcha-backend/internal/identity"
	projhttp "github.com/time-matcha/timematcha-backend/internal/projects/http"
	projrepo "github.com/time-matcha/timematcha-backend/internal/projects/repository"
)

type RouterDeps struct {
	ServiceName string
	Version     string
	CORSOrigins string
	SQLDB       *sql.DB
	Pool        *pgxpool.Pool
	Redis       *redis.Client
}

func BuildRouter(dep RouterDeps) *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(corsConfig(dep.CORSOrigins)))

	healthHandler := httpapi.NewHealthHandler(dep.ServiceName, dep.Version, dep.Pool, dep.Redis)
	healthHandler.RegisterRoutes(r)

	api := r.Group("/api/v1")
	api.Use(middleware.NewRateLimiter(10, 30).Middleware())

	identityRepo := identity.NewRepo(dep.Pool)
	projectRepo := projrepo.NewProjectRepository(dep.SQLDB)
	answerRepo := answers.NewRepo(dep.Pool)

	cache := dashboard.NewCache(dep.Redis)
	dashboardSvc := dashboard.NewService(projectRepo, answerRepo, cache)

	// Identity minting stays outside WithUser: first-time callers have no
	// anon id yet.
	identity.Register(api.Group("/identity"), identityRepo)

	api.Use(identity.WithUser(identityRepo))

	projectsGroup := api.Group("/projects")
	projhttp.New(projectRepo, cache).Register(projectsGroup)
	answers.Register(projectsGroup, answerRepo, projectRepo, cache)
	dashboard.Register(projectsGroup, dashboardSvc)

	return r
}

func corsConfig(origins string) cors.Config {
	cfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "X-Anon-Id", "X-User-Name", "X-User-Avatar"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}
	if origins == "" || origins == "*" {
		cfg.AllowAllOrigins = true
		return cfg
	}
	cfg.AllowOrigins = strings.Split(origins, ",")
	return cfg
}
