// Package server contains the HTTP handlers for the application's API endpoints.
package server

import (
	"context"
	"fmt"
	"strings"

	"tweetapp/internal/cache"
	"tweetapp/internal/config"
	"tweetapp/internal/database"
	"tweetapp/internal/middleware"
	"tweetapp/internal/notifications"
	"tweetapp/internal/observability"
	"tweetapp/internal/repository"
	"tweetapp/internal/service"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Server holds all dependencies and provides handlers
type Server struct {
	config          *config.Config
	db              *gorm.DB
	redis           *redis.Client
	promMiddleware  *fiberprometheus.FiberPrometheus
	tracingShutdown func(context.Context) error
	userRepo        repository.UserRepository
	tweetRepo       repository.TweetRepository
	seqRepo         repository.SequenceRepository
	notifier        *notifications.Notifier
	userService     *service.UserService
	tweetService    *service.TweetService
}

// NewServer creates a new server instance with all dependencies
func NewServer(cfg *config.Config) (*Server, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	cache.InitRedis(cfg.RedisURL)
	redisClient := cache.GetClient()

	return NewServerWithDeps(cfg, db, redisClient)
}

// NewServerWithDeps creates a Server using already-initialized dependencies.
// Use this in tests or when a bootstrap layer establishes DB/Redis itself.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) (*Server, error) {
	userRepo := repository.NewUserRepository(db)
	tweetRepo := repository.NewTweetRepository(db)
	seqRepo := repository.NewSequenceRepository(db)

	tracingShutdown, err := observability.InitTracing(observability.TracingConfig{
		ServiceName:    "tweetapp-api",
		ServiceVersion: "1.0",
		Environment:    cfg.Env,
		Enabled:        cfg.TracingEnabled,
		Exporter:       cfg.TracingExporter,
		OTLPEndpoint:   cfg.TracingOTLPURL,
		SamplerRatio:   cfg.TracingSampleRatio,
	})
	if err != nil {
		return nil, fmt.Errorf("tracing init failed: %w", err)
	}

	server := &Server{
		config:          cfg,
		db:              db,
		redis:           redisClient,
		promMiddleware:  middleware.InitMetrics("tweetapp-api"),
		tracingShutdown: tracingShutdown,
		userRepo:        userRepo,
		tweetRepo:       tweetRepo,
		seqRepo:         seqRepo,
	}

	if redisClient != nil {
		server.notifier = notifications.NewNotifier(redisClient)
	}

	server.userService = service.NewUserService(userRepo, seqRepo)
	server.tweetService = service.NewTweetService(tweetRepo, userRepo, seqRepo, server.notifier)

	return server, nil
}

// SetupMiddleware registers the global middleware chain on the app.
func (s *Server) SetupMiddleware(app *fiber.App) {
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(middleware.ContextMiddleware())
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(strings.Split(s.config.AllowedOrigins, ","), ","),
		AllowHeaders: "Origin, Content-Type, Accept",
		AllowMethods: "GET, POST, PUT, DELETE",
	}))

	s.promMiddleware.RegisterAt(app, "/metrics")
	app.Use(s.promMiddleware.Middleware)
}

// SetupRoutes registers the API routes. Static segments are registered before
// the :username wildcard so /all and /users/all are not captured by it.
func (s *Server) SetupRoutes(app *fiber.App) {
	api := app.Group("/api/v1.0/tweets")

	api.Post("/register", s.RegisterUser)
	api.Post("/login", s.Login)
	api.Get("/all", s.GetAllTweets)
	api.Get("/users/all", s.GetAllUsers)
	api.Get("/user/search/:username", s.SearchByUserName)
	api.Get("/user/:username", s.GetByUserName)

	api.Get("/:username/forgot", s.ForgotPassword)
	api.Post("/:username/resetpassword", s.ResetPassword)
	api.Get("/:username", s.GetAllTweetsOfUser)
	api.Post("/:username/add", s.PostNewTweet)
	api.Put("/:username/update/:id", s.UpdateTweet)
	api.Delete("/:username/delete/:id", s.DeleteTweet)
	api.Put("/:username/like/:id", s.LikeTweet)
	api.Post("/:username/reply/:id", s.ReplyToTweet)
}

// Shutdown releases server-held resources.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.tracingShutdown != nil {
		if err := s.tracingShutdown(ctx); err != nil {
			return err
		}
	}
	if s.redis != nil {
		return s.redis.Close()
	}
	return nil
}

// requestContext returns the request context enriched with the :username
// path parameter, when the matched route carries one, so the context-aware
// logger can attribute deep-layer log lines to the acting user.
func (s *Server) requestContext(c *fiber.Ctx) context.Context {
	return middleware.WithLoginID(c.UserContext(), c.Params("username"))
}

// parseID reads a numeric path parameter and writes a 400 response on failure.
func (s *Server) parseID(c *fiber.Ctx, name string) (uint, bool) {
	id, err := c.ParamsInt(name)
	if err != nil || id < 0 {
		_ = c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("invalid %s parameter", name),
		})
		return 0, false
	}
	return uint(id), true
}
