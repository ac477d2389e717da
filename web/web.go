// Package web wires the HTTP server of the panel: routing, sessions,
// translations and the background job scheduler.
package web

import (
	"context"
	"embed"
	"errors"
	"io"
	"net"
	"net/http"
	"strconv"

	"github.com/healthai/riskpanel/config"
	"github.com/healthai/riskpanel/logger"
	"github.com/healthai/riskpanel/util/common"
	"github.com/healthai/riskpanel/util/crypto"
	"github.com/healthai/riskpanel/util/random"
	"github.com/healthai/riskpanel/web/controller"
	"github.com/healthai/riskpanel/web/job"
	"github.com/healthai/riskpanel/web/locale"
	"github.com/healthai/riskpanel/web/middleware"
	"github.com/healthai/riskpanel/web/service"
	"github.com/healthai/riskpanel/web/session"

	"github.com/gin-contrib/gzip"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/memstore"
	"github.com/gin-gonic/gin"
	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

//go:embed translation/*
var i18nFS embed.FS

const checkpointSchedule = "@every 5m"

// Server is the panel's web server together with its scheduled jobs.
type Server struct {
	httpServer *http.Server
	listener   net.Listener

	index      *controller.IndexController
	prediction *controller.PredictionController
	admin      *controller.UserAdminController

	db                *gorm.DB
	userService       *service.UserService
	authService       *service.AuthService
	predictionService *service.PredictionService
	userAdminService  *service.UserAdminService

	cron *cron.Cron

	ctx    context.Context
	cancel context.CancelFunc
}

// NewServer creates a server backed by db with a cancellable context.
func NewServer(db *gorm.DB) *Server {
	ctx, cancel := context.WithCancel(context.Background())
	users := service.NewUserService(db)
	return &Server{
		db:                db,
		userService:       users,
		authService:       service.NewAuthService(users),
		predictionService: service.NewPredictionService(db),
		userAdminService:  service.NewUserAdminService(users),
		ctx:               ctx,
		cancel:            cancel,
	}
}

func (s *Server) newSessionStore() (sessions.Store, error) {
	secret := config.GetSessionSecret()
	if secret == "" {
		logger.Warning("RISKPANEL_SESSION_SECRET is not set, using a random one")
		secret = random.Seq(32)
	}
	authKey, encKey, err := crypto.DeriveSessionKeys(secret)
	if err != nil {
		return nil, err
	}
	store := memstore.NewStore(authKey, encKey)
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   config.GetSessionMaxAge() * 60,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return store, nil
}

func (s *Server) initRouter() (*gin.Engine, error) {
	if config.IsDebug() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.DefaultWriter = io.Discard
		gin.DefaultErrorWriter = io.Discard
		gin.SetMode(gin.ReleaseMode)
	}

	if err := locale.InitLocalizer(i18nFS); err != nil {
		return nil, err
	}
	store, err := s.newSessionStore()
	if err != nil {
		return nil, err
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestID())
	engine.Use(gzip.Gzip(gzip.DefaultCompression))
	engine.Use(sessions.Sessions(session.CookieName, store))
	engine.Use(locale.LocalizerMiddleware())
	engine.Use(middleware.ValidateSession(s.userService))

	g := engine.Group("/")
	s.index = controller.NewIndexController(g, s.authService, config.GetSessionMaxAge())

	api := engine.Group("/panel/api")
	s.prediction = controller.NewPredictionController(api, s.predictionService)
	s.admin = controller.NewUserAdminController(api, s.userAdminService, s.predictionService)

	engine.NoRoute(func(c *gin.Context) {
		c.AbortWithStatus(http.StatusNotFound)
	})

	return engine, nil
}

// newHTTPServer serves handler with request contexts derived from the server
// context, so in-flight requests see the cancellation made by Stop.
func (s *Server) newHTTPServer(handler http.Handler) *http.Server {
	return &http.Server{
		Handler: handler,
		BaseContext: func(net.Listener) context.Context {
			return s.ctx
		},
	}
}

func (s *Server) startTask() {
	if _, err := s.cron.AddJob(checkpointSchedule, job.NewCheckpointJob(s.db)); err != nil {
		logger.Warning("Add checkpoint job error", err)
	}
}

// Start initializes and starts the web server.
func (s *Server) Start() (err error) {
	defer func() {
		if err != nil {
			_ = s.Stop()
		}
	}()

	s.cron = cron.New(cron.WithSeconds())
	s.cron.Start()

	engine, err := s.initRouter()
	if err != nil {
		return err
	}

	listenAddr := net.JoinHostPort(config.GetListen(), strconv.Itoa(config.GetPort()))
	listener, err := net.Listen("tcp", listenAddr)
	if err != nil {
		return err
	}
	logger.Info("Web server running HTTP on", listener.Addr())

	s.listener = listener
	s.httpServer = s.newHTTPServer(engine)

	go func() {
		defer common.Recover("web server")
		if err := s.httpServer.Serve(listener); err != nil && err != http.ErrServerClosed {
			logger.Error("web server stopped:", err)
		}
	}()

	s.startTask()
	return nil
}

// Stop shuts down the web server and the cron scheduler.
func (s *Server) Stop() error {
	s.cancel()
	if s.cron != nil {
		s.cron.Stop()
	}
	var err1, err2 error
	if s.httpServer != nil {
		err1 = s.httpServer.Shutdown(context.Background())
	}
	// Shutdown already closes the listener
	if s.listener != nil {
		if err := s.listener.Close(); err != nil && !errors.Is(err, net.ErrClosed) {
			err2 = err
		}
	}
	return common.Combine(err1, err2)
}
