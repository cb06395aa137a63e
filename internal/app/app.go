package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"fitzone/internal/config"
	"fitzone/internal/domain/admin"
	"fitzone/internal/domain/aichat"
	"fitzone/internal/domain/auth"
	"fitzone/internal/domain/booking"
	"fitzone/internal/domain/cart"
	"fitzone/internal/domain/classes"
	"fitzone/internal/domain/notification"
	"fitzone/internal/domain/order"
	"fitzone/internal/domain/payment"
	"fitzone/internal/domain/pricing"
	"fitzone/internal/domain/product"
	"fitzone/internal/domain/realtime"
	"fitzone/internal/domain/sitecontent"
	"fitzone/internal/domain/upload"
	"fitzone/internal/middleware"
	"fitzone/internal/pkg/cache"
	"fitzone/internal/pkg/events"
	"fitzone/internal/pkg/jwt"
	"fitzone/internal/pkg/logger"
	"fitzone/internal/pkg/metrics"
	"fitzone/internal/pkg/response"
	"fitzone/internal/scheduler"
)

type Deps struct {
	Config *config.Config
	DB     *gorm.DB
	Log    logrus.FieldLogger
	// Cache defaults to an in-process cache.
	Cache cache.Cache
	// Broker receives every domain event besides the websocket hub. Optional.
	Broker events.Publisher

	// Overrides for tests.
	PaymentGateway payment.Gateway
	ChatGenerator  aichat.Generator
	Storage        upload.Storage
}

type App struct {
	Router    *gin.Engine
	Hub       *realtime.Hub
	Limiter   *middleware.RateLimiter
	Scheduler *scheduler.Scheduler
	JWT       *jwt.Service

	cache cache.Cache
}

func New(d Deps) (*App, error) {
	cfg := d.Config
	log := logger.OrDiscard(d.Log)
	if d.Cache == nil {
		d.Cache = cache.NewMemorySize(cfg.CacheMaxEntries)
	}

	j := jwt.New(cfg.JWTSecret, cfg.JWTTTL)
	hub := realtime.NewHub(log.WithField("component", "realtime"))
	inbox := notification.NewService(notification.NewRepository(d.DB), log.WithField("component", "notification"))
	pub := events.Multi{hub, inbox, d.Broker}

	// repositories
	userRepo := auth.NewUserRepository(d.DB)
	classRepo := classes.NewRepository(d.DB)
	bookingRepo := booking.NewRepository(d.DB)
	productRepo := product.NewRepository(d.DB)
	cartRepo := cart.NewRepository(d.DB)
	orderRepo := order.NewRepository(d.DB)
	txnRepo := payment.NewRepository(d.DB)
	uploadRepo := upload.NewRepository(d.DB)

	// services
	authService := auth.NewService(userRepo, j, log.WithField("component", "auth"))
	classService := classes.NewService(classRepo, userRepo, log.WithField("component", "classes"))
	bookingService := booking.NewService(bookingRepo, classRepo, pub, log.WithField("component", "booking"))
	recurringService := booking.NewRecurringService(bookingRepo, classRepo, pub, cfg.RecurringHorizonDays, log.WithField("component", "recurring"))
	siteService := sitecontent.NewService(
		sitecontent.NewRepository[sitecontent.TeamMember](d.DB),
		sitecontent.NewRepository[sitecontent.Testimonial](d.DB),
		d.Cache, cfg.CacheTTL, log.WithField("component", "sitecontent"),
	)
	productService := product.NewService(productRepo, d.Cache, cfg.CacheTTL, log.WithField("component", "product"))
	cartService := cart.NewService(cartRepo, productRepo, log.WithField("component", "cart"))
	orderService := order.NewService(orderRepo, productService, pub, log.WithField("component", "order"))

	gateway := d.PaymentGateway
	if gateway == nil && cfg.PaymentsEnabled() {
		gateway = payment.NewRazorpayGateway(cfg.RazorpayKeyID, cfg.RazorpayKeySecret)
	}
	paymentService := payment.NewService(txnRepo, orderService, gateway, payment.Config{
		KeyID:         cfg.RazorpayKeyID,
		KeySecret:     cfg.RazorpayKeySecret,
		WebhookSecret: cfg.RazorpayWebhookSecret,
	}, log.WithField("component", "payment"))

	generator := d.ChatGenerator
	if generator == nil && cfg.GeminiAPIKey != "" {
		generator = aichat.NewGeminiClient(cfg.GeminiAPIKey, cfg.GeminiModel, cfg.GeminiBaseURL, cfg.AIChatTimeout)
	}
	chatService := aichat.NewService(generator, log.WithField("component", "aichat"))

	storage, err := newStorage(cfg, d.Storage)
	if err != nil {
		return nil, err
	}
	uploadService := upload.NewService(uploadRepo, storage, log.WithField("component", "upload"))

	adminService := admin.NewService(userRepo, classRepo, bookingRepo, orderService)

	// handlers
	authHandler := auth.NewHandler(authService)
	classHandler := classes.NewHandler(classService)
	bookingHandler := booking.NewHandler(bookingService, recurringService)
	siteHandler := sitecontent.NewHandler(siteService)
	productHandler := product.NewHandler(productService)
	cartHandler := cart.NewHandler(cartService)
	pricingHandler := pricing.NewHandler(cartService, orderService)
	orderHandler := order.NewHandler(orderService)
	paymentHandler := payment.NewHandler(paymentService, log.WithField("component", "payment"))
	chatHandler := aichat.NewHandler(chatService)
	uploadHandler := upload.NewHandler(uploadService)
	wsHandler := realtime.NewHandler(hub, j, cfg.CORSAllowedOrigins)
	adminHandler := admin.NewHandler(adminService)
	inboxHandler := notification.NewHandler(inbox)

	limiter := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	limit := middleware.RateLimit(limiter)

	r := gin.New()
	if err := r.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		return nil, fmt.Errorf("trusted proxies: %w", err)
	}
	r.Use(
		middleware.RequestID(),
		middleware.ErrorLogger(log.WithField("component", "http")),
		middleware.Metrics(),
		middleware.CORS(cfg.CORSAllowedOrigins),
	)

	r.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"status": "ok", "time": time.Now().UTC()})
	})
	r.GET("/metrics", gin.WrapH(metrics.Handler()))
	if local, ok := storage.(*upload.LocalStorage); ok {
		r.Static(cfg.UploadsURLBase, local.BaseDir())
	}
	r.NoRoute(func(c *gin.Context) {
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Route not found")
	})

	api := r.Group("/api")
	{
		authHandler.RegisterPublicRoutes(api, limit)
		classHandler.RegisterPublicRoutes(api)
		siteHandler.RegisterPublicRoutes(api)
		productHandler.RegisterPublicRoutes(api)
		chatHandler.RegisterPublicRoutes(api, limit)
		paymentHandler.RegisterWebhookRoutes(api)
		wsHandler.RegisterRoutes(api)
	}

	protected := api.Group("", middleware.JWTAuth(j))
	{
		authHandler.RegisterProtectedRoutes(protected)
		bookingHandler.RegisterProtectedRoutes(protected)
		cartHandler.RegisterProtectedRoutes(protected)
		pricingHandler.RegisterProtectedRoutes(protected)
		orderHandler.RegisterProtectedRoutes(protected)
		paymentHandler.RegisterProtectedRoutes(protected)
		upload.RegisterRoutes(protected, uploadHandler)
		inboxHandler.RegisterRoutes(protected)
	}

	staff := api.Group("", middleware.JWTAuth(j), middleware.StaffOnly())
	{
		classHandler.RegisterStaffRoutes(staff)
		bookingHandler.RegisterStaffRoutes(staff)
	}

	adminGroup := api.Group("/admin", middleware.JWTAuth(j), middleware.AdminOnly())
	{
		authHandler.RegisterAdminRoutes(adminGroup)
		siteHandler.RegisterAdminRoutes(adminGroup)
		productHandler.RegisterAdminRoutes(adminGroup)
		orderHandler.RegisterAdminRoutes(adminGroup)
		adminHandler.RegisterRoutes(adminGroup)
	}

	sched := scheduler.New(log.WithField("component", "scheduler"))
	if err := sched.Register(scheduler.Config{
		RecurringSpec:  cfg.RecurringCron,
		StaleOrderSpec: cfg.StaleOrderCron,
		StaleOrderTTL:  cfg.StaleOrderTTL,

		NotificationSpec:      cfg.NotificationCleanupCron,
		NotificationRetention: cfg.NotificationRetention,
	}, recurringService, orderService, inbox); err != nil {
		return nil, fmt.Errorf("register jobs: %w", err)
	}

	return &App{
		Router:    r,
		Hub:       hub,
		Limiter:   limiter,
		Scheduler: sched,
		JWT:       j,
		cache:     d.Cache,
	}, nil
}

// Start runs the background workers until ctx is done.
func (a *App) Start(ctx context.Context) {
	go a.Limiter.Run(ctx)
	if m, ok := a.cache.(*cache.Memory); ok {
		go m.Run(ctx)
	}
	a.Scheduler.Start(ctx)
}

// Close stops the jobs and drops websocket clients.
func (a *App) Close(ctx context.Context) {
	a.Scheduler.Stop(ctx)
	a.Hub.Close()
}

func newStorage(cfg *config.Config, override upload.Storage) (upload.Storage, error) {
	if override != nil {
		return override, nil
	}
	if cfg.CloudinaryEnabled() {
		s, err := upload.NewCloudinaryStorage(cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret, cfg.CloudinaryFolder)
		if err != nil {
			return nil, fmt.Errorf("cloudinary: %w", err)
		}
		return s, nil
	}
	return upload.NewLocalStorage(cfg.UploadsDir, cfg.UploadsURLBase), nil
}
