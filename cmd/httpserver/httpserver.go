// Package httpserver manages server creation and api routing.
package httpserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/go-petr/pet-bank-datagen/internal/datasetdelivery"
	"github.com/go-petr/pet-bank-datagen/internal/datasetservice"
	"github.com/go-petr/pet-bank-datagen/internal/identity"
	"github.com/go-petr/pet-bank-datagen/internal/middleware"
	"github.com/go-petr/pet-bank-datagen/pkg/configpkg"
	"github.com/go-petr/pet-bank-datagen/pkg/metricspkg"
	"github.com/go-petr/pet-bank-datagen/pkg/web"
)

// Server holds handlers router, metrics registry and configuration.
type Server struct {
	Engine   *gin.Engine
	Registry *prometheus.Registry
	Config   configpkg.Config
}

// ServeHTTP implements the http.Handler interface for the Server type.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Engine.ServeHTTP(w, r)
}

type localesData struct {
	Locales []string `json:"locales"`
}

// New creates Server type with instantiated domains and routes.
//
// Datasets are generated in memory from an empty population with the config values
// as request defaults.
func New(logger zerolog.Logger, config configpkg.Config) (*Server, error) {
	registry := prometheus.NewRegistry()

	recorder, err := metricspkg.NewRecorder(registry)
	if err != nil {
		return nil, errors.New("cannot register metrics")
	}

	datasetService := datasetservice.New(nil)
	datasetHandler := datasetdelivery.NewHandler(datasetService, recorder, datasetservice.ParamsFromConfig(config))

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(middleware.RequestLogger(logger))
	engine.Use(gin.Recovery())

	engine.GET("/healthz", func(gctx *gin.Context) {
		gctx.Status(http.StatusOK)
	})
	engine.GET("/metrics", gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))
	engine.GET("/locales", func(gctx *gin.Context) {
		gctx.JSON(http.StatusOK, web.Response{Data: localesData{Locales: identity.Locales()}})
	})

	engine.POST("/datasets", datasetHandler.Generate)

	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		err := v.RegisterValidation("locale", datasetdelivery.ValidLocale)
		if err != nil {
			return nil, errors.New("cannot register locale validator")
		}
	}

	server := &Server{
		Engine:   engine,
		Registry: registry,
		Config:   config,
	}

	return server, nil
}
