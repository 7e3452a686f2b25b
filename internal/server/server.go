package server

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	ratelimit "github.com/JGLTechnologies/gin-rate-limit"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/devusSs/hostbridge/internal/server/responses"
	"github.com/devusSs/hostbridge/internal/server/routes"
	"github.com/devusSs/hostbridge/pkg/log"
)

// Custom errors
var (
	ErrorCritical = fmt.Errorf("critical error")
)

// Config for the http server
type Config struct {
	Port uint
	// Origins of the host UI (for cors purposes)
	FrontendURLs []string
	// Requests per client and RateWindow
	RateLimit uint
	// Defaults to one second
	RateWindow  time.Duration
	ExecTimeout time.Duration
	Console     bool
	Debug       bool
}

// Server is the main struct for the http server
// wrapped around Gin
type Server struct {
	port         uint
	frontendURLs []string
	rateLimit    uint
	rateWindow   time.Duration
	execTimeout  time.Duration

	logger *log.Logger
	engine *gin.Engine
}

// Applies middlewares to the gin engine
// like recovery, custom logging, cors and rate limiting
//
// The rate limit store is kept in redis if redisClient is not nil,
// in memory otherwise
func (s *Server) ApplyMiddlewares(redisClient *redis.Client) error {
	if len(s.frontendURLs) == 0 {
		return fmt.Errorf("no frontend urls configured")
	}
	if s.rateLimit == 0 {
		return fmt.Errorf("rate limit must be greater than zero")
	}

	s.engine.Use(gin.Recovery())
	s.engine.Use(s.customLogger())
	s.engine.Use(cors.New(cors.Config{
		AllowOrigins:  s.frontendURLs,
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodPut},
		AllowHeaders:  []string{"Origin", "Content-Type"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}))

	var store ratelimit.Store
	if redisClient != nil {
		store = ratelimit.RedisStore(&ratelimit.RedisOptions{
			RedisClient: redisClient,
			Rate:        s.rateWindow,
			Limit:       s.rateLimit,
		})
		s.logger.Debug("using redis rate limit store")
	} else {
		store = ratelimit.InMemoryStore(&ratelimit.InMemoryOptions{
			Rate:  s.rateWindow,
			Limit: s.rateLimit,
		})
		s.logger.Debug("using in-memory rate limit store")
	}

	keyFunc := func(c *gin.Context) string {
		return c.ClientIP()
	}

	errorHandler := func(c *gin.Context, info ratelimit.Info) {
		c.JSON(http.StatusTooManyRequests, responses.Error{
			Code:      http.StatusTooManyRequests,
			ErrorCode: responses.CodeTooManyRequests,
			ErrorMessage: fmt.Sprintf(
				"rate limit hit, wait %v",
				time.Until(info.ResetTime),
			),
		})
	}

	s.engine.Use(ratelimit.RateLimiter(store, &ratelimit.Options{
		ErrorHandler: errorHandler,
		KeyFunc:      keyFunc,
	}))

	s.logger.Info("Applied middlewares successfully")

	return nil
}

// SetupRoutes sets up the routes for the gin engine
func (s *Server) SetupRoutes(host routes.Host) error {
	if host == nil {
		return fmt.Errorf("host is nil")
	}

	systemHandlers := routes.NewSystemHandlers(host, s.execTimeout)

	s.engine.NoRoute(routes.NoRoute)
	s.engine.NoMethod(routes.NoMethod)

	base := s.engine.Group("/")
	{
		base.GET("/", routes.HomeRoute)

		sys := base.Group("/system")
		{
			sys.GET("/info", systemHandlers.GetInfoRoute)
			sys.GET("/disk", systemHandlers.GetDiskRoute)
			sys.POST("/exec", systemHandlers.PostExecRoute)
			sys.POST("/open", systemHandlers.PostOpenRoute)
		}

		fs := base.Group("/fs")
		{
			fs.GET("/exists", routes.ExistsRoute)
			fs.GET("/read", routes.ReadFileRoute)
			fs.PUT("/write", routes.WriteFileRoute)
		}
	}

	s.logger.Info("Setup routes properly")

	return nil
}

// Handler returns the underlying http handler
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Start starts the server and listens for incoming requests
//
// Blocks until the context is canceled or a critical error occurs
func (s *Server) Start(ctx context.Context, errChan chan error, wg *sync.WaitGroup) {
	defer wg.Done()

	srv := &http.Server{
		Addr:              fmt.Sprintf("localhost:%d", s.port),
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		s.logger.Info("Starting server on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- fmt.Errorf("%w: %v", ErrorCritical, err)
		}
	}()

	<-ctx.Done()

	s.logger.Debug("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		errChan <- fmt.Errorf("%w: %v", ErrorCritical, err)
		return
	}

	s.logger.Debug("Server shutdown complete")
}

func (s *Server) customLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Debug(
			"[%s] %s %s %d %v",
			c.Request.Method,
			c.Request.URL.Path,
			c.ClientIP(),
			c.Writer.Status(),
			time.Since(start),
		)
	}
}

// NewServer creates a new server instance
func NewServer(cfg Config) *Server {
	gin.SetMode(gin.ReleaseMode)
	if cfg.Debug {
		gin.SetMode(gin.DebugMode)
	}

	logger := log.NewLogger(
		log.WithOwnLogFile("server.log"),
		log.WithName("http"),
		log.WithConsole(cfg.Console),
		log.WithDebug(cfg.Debug),
	)

	if cfg.RateWindow <= 0 {
		cfg.RateWindow = time.Second
	}

	engine := gin.New()
	engine.RedirectTrailingSlash = true
	engine.RedirectFixedPath = false
	engine.HandleMethodNotAllowed = true
	engine.ForwardedByClientIP = false
	engine.UseRawPath = false
	engine.UnescapePathValues = true

	s := &Server{
		port:         cfg.Port,
		frontendURLs: cfg.FrontendURLs,
		rateLimit:    cfg.RateLimit,
		rateWindow:   cfg.RateWindow,
		execTimeout:  cfg.ExecTimeout,
		logger:       logger,
		engine:       engine,
	}

	s.logger.Info("Server initialized successfully")

	return s
}
