package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"

	"github.com/adamg02/boatbooking/internal/auth"
	"github.com/adamg02/boatbooking/internal/boat"
	"github.com/adamg02/boatbooking/internal/booking"
	"github.com/adamg02/boatbooking/internal/config"
	"github.com/adamg02/boatbooking/internal/email"
	"github.com/adamg02/boatbooking/internal/group"
	"github.com/adamg02/boatbooking/internal/user"
)

type Server struct {
	router *gin.Engine
	http   *http.Server
	db     *sqlx.DB
	config *config.Config
	email  *email.Service
}

func New(db *sqlx.DB, cfg *config.Config, emailService *email.Service) *Server {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(corsMiddleware())
	router.Use(RequestLoggingMiddleware())
	router.Use(MetricsMiddleware())
	router.Use(RateLimitMiddleware(20, 40))

	userRepo := user.NewRepository(db)
	groupRepo := group.NewRepository(db)
	boatRepo := boat.NewRepository(db)
	bookingRepo := booking.NewRepository(db)

	userService := user.NewService(userRepo, cfg.JWTSecret)
	groupService := group.NewService(groupRepo)
	boatService := boat.NewService(boatRepo, groupRepo)
	bookingService := booking.NewService(bookingRepo, boatRepo, groupRepo, userRepo, emailService)

	userHandler := user.NewHandler(userService, groupRepo.IsUserAdmin)
	groupHandler := group.NewHandler(groupService)
	boatHandler := boat.NewHandler(boatService, func(ctx context.Context, boatID int) ([]boat.BookingRef, error) {
		list, err := bookingRepo.ListConfirmedByBoat(ctx, boatID)
		if err != nil {
			return nil, err
		}
		now := time.Now()
		refs := make([]boat.BookingRef, 0, len(list))
		for _, bk := range list {
			if bk.EndTime.After(now) {
				refs = append(refs, boat.BookingRef{ID: bk.ID, UserID: bk.UserID, StartTime: bk.StartTime, EndTime: bk.EndTime})
			}
		}
		return refs, nil
	})
	bookingHandler := booking.NewHandler(bookingService)

	public := router.Group("/auth")
	{
		public.POST("/register", userHandler.Register)
		public.POST("/login", userHandler.Login)
		public.POST("/refresh", userHandler.RefreshToken)
	}

	authMiddleware := auth.AuthMiddleware(cfg.JWTSecret)
	activeMiddleware := auth.RequireActive(userRepo.IsActive)

	protected := router.Group("/")
	protected.Use(authMiddleware, activeMiddleware)
	{
		protected.GET("/me", userHandler.GetMe)
		protected.GET("/boats", boatHandler.ListBoats)
		protected.GET("/boats/:boatID", boatHandler.GetBoat)
		protected.POST("/bookings", bookingHandler.CreateBooking)
		protected.DELETE("/bookings/:bookingID", bookingHandler.CancelBooking)
		protected.DELETE("/bookings", bookingHandler.CancelBookingSlot)
		protected.GET("/bookings", bookingHandler.ListMyBookings)
		protected.GET("/bookings/daily", bookingHandler.ListDailyBookings)
		protected.GET("/bookings/daily-summary", bookingHandler.DailySummary)
	}

	adminMiddleware := auth.RequireAdmin(groupRepo.IsUserAdmin)
	admin := router.Group("/admin")
	admin.Use(authMiddleware, activeMiddleware, adminMiddleware)
	{
		admin.GET("/bookings", bookingHandler.ListAllBookings)
		admin.DELETE("/bookings", bookingHandler.AdminCancelBooking)

		admin.GET("/boats", boatHandler.ListAllBoats)
		admin.POST("/boats", boatHandler.CreateBoat)
		admin.PUT("/boats/:boatID", boatHandler.UpdateBoat)
		admin.PUT("/boats/:boatID/groups", boatHandler.SetBoatGroups)

		admin.GET("/users", userHandler.ListUsers)
		admin.PUT("/users/:userID/groups", userHandler.SetUserGroups)
		admin.PUT("/users/:userID/status", userHandler.SetUserStatus)

		admin.GET("/groups", groupHandler.ListGroups)
		admin.POST("/groups", groupHandler.CreateGroup)
		admin.GET("/groups/:groupID", groupHandler.GetGroupDetails)
		admin.PUT("/groups/:groupID", groupHandler.RenameGroup)
		admin.DELETE("/groups/:groupID", groupHandler.DeleteGroup)
	}

	router.GET("/health", Health)
	router.GET("/metrics", Metrics())
	SetupSwagger(router)

	return &Server{
		router: router,
		db:     db,
		config: cfg,
		email:  emailService,
	}
}

func (s *Server) Start(port string) error {
	s.http = &http.Server{
		Addr:         ":" + port,
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}
	return s.http.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.http == nil {
		return nil
	}
	return s.http.Shutdown(ctx)
}

// Router exposes the gin engine for tests.
func (s *Server) Router() *gin.Engine {
	return s.router
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}
