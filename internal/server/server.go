// Package server exposes the webhook over HTTP.
package server

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"line-kakeibo-bot/internal/clients/line"
	"line-kakeibo-bot/internal/logger"
)

const (
	livenessBody = "hello world!"
	callbackBody = "OK"
)

type dispatcher interface {
	HandleEvent(ctx context.Context, ev line.Event) error
}

type lineConfig interface {
	Secret() string
}

type appConfig interface {
	Port() int
}

type Server struct {
	router     *gin.Engine
	dispatcher dispatcher
	secret     string
	port       int
}

func New(lineConf lineConfig, appConf appConfig, dispatcher dispatcher) *Server {
	s := &Server{
		dispatcher: dispatcher,
		secret:     lineConf.Secret(),
		port:       appConf.Port(),
	}
	s.router = s.newRouter()
	return s
}

func (s *Server) newRouter() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/", s.handleLiveness)
	router.POST("/callback", s.handleCallback)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	return router
}

func (s *Server) handleLiveness(c *gin.Context) {
	c.String(http.StatusOK, livenessBody)
}

// handleCallback verifies the signature, then dispatches every event of
// the envelope synchronously. 400 is reserved for signature failures;
// dispatch faults are 500; everything else, including error replies
// sent to the user, is 200.
func (s *Server) handleCallback(c *gin.Context) {
	events, err := line.ParseRequest(s.secret, c.Request)
	if errors.Is(err, line.ErrInvalidSignature) {
		c.String(http.StatusBadRequest, "bad request")
		return
	}
	if err != nil {
		logger.Error("undecodable webhook body", zap.Error(err))
		c.String(http.StatusInternalServerError, "error")
		return
	}

	for _, ev := range events {
		if err := s.dispatcher.HandleEvent(c.Request.Context(), ev); err != nil {
			logger.Error("failed to handle event", zap.String("type", ev.Type), zap.Error(err))
			c.String(http.StatusInternalServerError, "error")
			return
		}
	}
	c.String(http.StatusOK, callbackBody)
}

func (s *Server) Run() error {
	addr := fmt.Sprintf(":%d", s.port)
	logger.Info("listening", zap.String("addr", addr))
	return http.ListenAndServe(addr, s.router)
}

// Router exposes the handler so tests can drive it without a listener.
func (s *Server) Router() http.Handler {
	return s.router
}
