package api

import (
	"context"
	"net/http"
	"time"

	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/epimap/epimap-api/geo"
	"github.com/epimap/epimap-api/logmodule"
	"github.com/epimap/epimap-api/schema"
	"github.com/epimap/epimap-api/store"
)

var log *logrus.Entry

func init() {
	log = logrus.WithField("prefix", "gin")
}

// Server to run a http server instance
type Server struct {
	// Server instance
	server *http.Server

	// Stores
	store store.MongoStore

	// Derived series served by the map endpoints
	rows      []schema.CountryDay
	byCountry map[string][]schema.CountryDay

	// World boundary data and its name index
	boundary schema.FeatureCollection
	index    geo.FeatureIndex
}

// NewServer new instance of server
func NewServer(mongoStore store.MongoStore, rows []schema.CountryDay, boundary schema.FeatureCollection) *Server {
	byCountry := make(map[string][]schema.CountryDay)
	for _, row := range rows {
		byCountry[row.Country] = append(byCountry[row.Country], row)
	}

	return &Server{
		store:     mongoStore,
		rows:      rows,
		byCountry: byCountry,
		boundary:  boundary,
		index:     geo.NewFeatureIndex(boundary),
	}
}

// Run to run the server
func (s *Server) Run(addr string) error {
	s.server = &http.Server{
		Addr:    addr,
		Handler: s.setupRouter(),
	}

	return s.server.ListenAndServe()
}

func (s *Server) setupRouter() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(sentrygin.New(sentrygin.Options{
		Repanic:         true,
		WaitForDelivery: false,
		Timeout:         10 * time.Second,
	}))

	apiRoute := r.Group("/v1")
	apiRoute.Use(logmodule.Ginrus("API"))
	apiRoute.Use(cors.New(cors.Config{
		AllowMethods:     []string{"GET"},
		AllowHeaders:     []string{"Origin"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		AllowAllOrigins:  true,
		MaxAge:           12 * time.Hour,
	}))
	{
		apiRoute.GET("/columns", s.getColumns)
		apiRoute.GET("/styles/:column", s.getStyles)
		apiRoute.GET("/range/:column", s.getRange)
		apiRoute.GET("/series/:country", s.getSeries)
		apiRoute.GET("/unmatched", s.getUnmatched)
	}

	mapRoute := r.Group("/maps")
	mapRoute.Use(logmodule.Ginrus("Map"))
	{
		mapRoute.GET("/:column", s.getMap)
	}

	chartRoute := r.Group("/charts")
	chartRoute.Use(logmodule.Ginrus("Chart"))
	{
		chartRoute.GET("/:country", s.getChart)
	}

	r.GET("/healthz", s.healthz)

	return r
}

// Shutdown to shutdown the server
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// shouldInterupt sends error message and determine if it should interupt the current flow
func shouldInterupt(err error, c *gin.Context) bool {
	if err == nil {
		return false
	}

	log.Error(err)
	abortWithEncoding(c, http.StatusInternalServerError, errorInternalServer)
	return true
}

func (s *Server) healthz(c *gin.Context) {
	// Ping db
	err := s.store.Ping()
	if shouldInterupt(err, c) {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "OK",
		"version": viper.GetString("server.version"),
	})
}

func abortWithEncoding(c *gin.Context, code int, obj ErrorResponse, errors ...error) {
	for _, err := range errors {
		c.Error(err)
	}
	c.JSON(code, obj)
	c.Abort()
}
