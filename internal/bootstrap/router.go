package bootstrap

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	httpapi "github.com/eplus-at/eplus-resources/internal/api/http"
	"github.com/eplus-at/eplus-resources/internal/api/http/middleware"
	simhttp "github.com/eplus-at/eplus-resources/internal/energyplus_simulation/http"
	"github.com/eplus-at/eplus-resources/internal/platform/logger"
	reshttp "github.com/eplus-at/eplus-resources/internal/resource_management/http"
)

type RouterDeps struct {
	ServiceName    string
	Version        string
	AllowedOrigins []string
	SimRatePerMin  int
	Log            *logger.Logger

	DB    httpapi.Pinger
	Redis httpapi.Pinger

	Resources   reshttp.ResourceService
	Simulations simhttp.SimulationService
}

func BuildRouter(dep RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID(dep.Log))

	corsCfg := cors.Config{
		AllowOrigins:  dep.AllowedOrigins,
		AllowMethods:  []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Content-Type", "X-User-Id", middleware.RequestIDHeader},
		ExposeHeaders: []string{middleware.RequestIDHeader},
	}
	if len(dep.AllowedOrigins) == 0 {
		corsCfg.AllowAllOrigins = true
	}
	r.Use(cors.New(corsCfg))

	healthHandler := httpapi.NewHealthHandler(dep.ServiceName, dep.Version, dep.DB, dep.Redis)
	healthHandler.RegisterRoutes(r)

	api := r.Group("/api/v1")

	if dep.Resources != nil {
		reshttp.New(dep.Resources).Register(api.Group("/resources"))
	}

	if dep.Simulations != nil {
		limiter := middleware.NewRateLimiter(dep.SimRatePerMin, dep.SimRatePerMin)
		simhttp.New(dep.Simulations).Register(api.Group("/simulations"), limiter.Handler())
	}

	return r
}
