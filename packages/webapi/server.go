package webapi

import (
	"context"
	"net/http"

	"github.com/cockroachdb/errors"
	"github.com/gin-gonic/gin"
	"github.com/iotaledger/hive.go/logger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/iotaledger/fungible/packages/fungible"
	"github.com/iotaledger/fungible/packages/jsonmodels"
	"github.com/iotaledger/fungible/packages/objects"
	"github.com/iotaledger/fungible/packages/primarystore"
)

// region Server ///////////////////////////////////////////////////////////////////////////////////////////////////////

// Server exposes read access to the Ledger and the prometheus metrics over HTTP.
type Server struct {
	engine        *gin.Engine
	server        *http.Server
	ledger        *fungible.Ledger
	primaryStores *primarystore.PrimaryStores
	log           *logger.Logger
}

// New creates a Server with all routes registered.
func New(ledger *fungible.Ledger, primaryStores *primarystore.PrimaryStores, registry *prometheus.Registry, log *logger.Logger) (server *Server) {
	gin.SetMode(gin.ReleaseMode)

	server = &Server{
		engine:        gin.New(),
		ledger:        ledger,
		primaryStores: primaryStores,
		log:           log,
	}
	server.engine.Use(gin.Recovery())

	server.engine.GET("/metrics", gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{EnableOpenMetrics: true})))
	server.engine.GET("/classes/:metadata", server.getClass)
	server.engine.GET("/stores/:store", server.getStore)
	server.engine.GET("/accounts/:owner/primarystores/:metadata", server.getPrimaryStore)

	return server
}

// Handler returns the http.Handler that serves all routes.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Start serves the routes on the given address in the background.
func (s *Server) Start(bindAddress string) {
	s.server = &http.Server{Addr: bindAddress, Handler: s.engine}

	go func() {
		s.log.Infof("You can now access the API using: http://%s", bindAddress)
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.log.Errorw("Stopping API server due to an error", "err", err)
		}
	}()
}

// Shutdown stops the Server gracefully.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}

	return s.server.Shutdown(ctx)
}

func (s *Server) getClass(c *gin.Context) {
	address, err := objects.AddressFromBase58(c.Param("metadata"))
	if err != nil {
		c.JSON(http.StatusBadRequest, jsonmodels.NewErrorResponse(err))
		return
	}

	response, err := jsonmodels.ClassResponseFromLedger(s.ledger, fungible.MetadataFromAddress(address))
	if err != nil {
		c.JSON(statusCode(err), jsonmodels.NewErrorResponse(err))
		return
	}

	c.JSON(http.StatusOK, response)
}

func (s *Server) getStore(c *gin.Context) {
	address, err := objects.AddressFromBase58(c.Param("store"))
	if err != nil {
		c.JSON(http.StatusBadRequest, jsonmodels.NewErrorResponse(err))
		return
	}

	response, err := jsonmodels.StoreResponseFromLedger(s.ledger, fungible.StoreFromAddress(address))
	if err != nil {
		c.JSON(statusCode(err), jsonmodels.NewErrorResponse(err))
		return
	}

	c.JSON(http.StatusOK, response)
}

func (s *Server) getPrimaryStore(c *gin.Context) {
	owner, err := objects.AddressFromBase58(c.Param("owner"))
	if err != nil {
		c.JSON(http.StatusBadRequest, jsonmodels.NewErrorResponse(err))
		return
	}
	address, err := objects.AddressFromBase58(c.Param("metadata"))
	if err != nil {
		c.JSON(http.StatusBadRequest, jsonmodels.NewErrorResponse(err))
		return
	}

	response, err := jsonmodels.StoreResponseFromLedger(s.ledger, primarystore.Store(owner, fungible.MetadataFromAddress(address)))
	if err != nil {
		c.JSON(statusCode(err), jsonmodels.NewErrorResponse(err))
		return
	}

	c.JSON(http.StatusOK, response)
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// statusCode maps Ledger errors to HTTP status codes.
func statusCode(err error) int {
	if errors.Is(err, fungible.ErrNotFound) {
		return http.StatusNotFound
	}

	return http.StatusInternalServerError
}
