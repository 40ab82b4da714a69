package server

import (
	"context"
	"log"
	"os"
	"strings"
	"time"

	"anoa.com/askhub/internal/handler"
	"anoa.com/askhub/internal/middleware"
	"anoa.com/askhub/internal/repository"
	"anoa.com/askhub/internal/service"
	"anoa.com/askhub/pkg/storage"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/meilisearch/meilisearch-go"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Server struct {
	engine      *gin.Engine
	db          *gorm.DB
	redisClient *redis.Client
}

func NewServer(db *gorm.DB, redisClient *redis.Client) *Server {
	// Repositories
	userRepo := repository.NewUserRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	questionRepo := repository.NewQuestionRepository(db)
	answerRepo := repository.NewAnswerRepository(db)
	voteRepo := repository.NewVoteRepository(db)
	rewardRepo := repository.NewRewardRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	leaderboardRepo := repository.NewLeaderboardRepository(db)

	imageStorage, err := storage.NewCloudinaryStorage()
	if err != nil {
		log.Printf("cloudinary storage unavailable, avatar uploads disabled: %v", err)
		imageStorage = nil
	}

	var searchSvc service.SearchService
	if meiliHost := os.Getenv("MEILISEARCH_HOST"); meiliHost != "" {
		if !strings.HasPrefix(meiliHost, "http") {
			meiliHost = "http://" + meiliHost + ":7700"
		}
		meiliClient := meilisearch.New(meiliHost, meilisearch.WithAPIKey(os.Getenv("MEILI_MASTER_KEY")))
		searchSvc = service.NewSearchService(meiliClient)
	}

	rateLimiter := service.NewRedisRateLimiter(redisClient)

	// Services
	notificationSvc := service.NewNotificationService(notificationRepo, redisClient)
	gamificationSvc := service.NewGamificationService(userRepo, notificationSvc)
	viewSvc := service.NewViewService(redisClient, questionRepo)
	if redisClient != nil {
		go viewSvc.StartSyncWorker(context.Background())
	}

	authSvc := service.NewAuthService(userRepo)
	profileSvc := service.NewProfileService(userRepo, imageStorage)
	categorySvc := service.NewCategoryService(categoryRepo)
	questionSvc := service.NewQuestionService(questionRepo, categoryRepo, userRepo, gamificationSvc, searchSvc, viewSvc, rateLimiter)
	answerSvc := service.NewAnswerService(answerRepo, questionRepo, userRepo, gamificationSvc, rateLimiter)
	voteSvc := service.NewVoteService(voteRepo, questionRepo, answerRepo, gamificationSvc, rateLimiter)
	rewardSvc := service.NewRewardService(rewardRepo, userRepo)
	statsSvc := service.NewStatsService(userRepo, rewardRepo, gamificationSvc)
	leaderboardSvc := service.NewLeaderboardService(leaderboardRepo)

	// Handlers
	authHandler := handler.NewAuthHandler(authSvc)
	profileHandler := handler.NewProfileHandler(profileSvc)
	categoryHandler := handler.NewCategoryHandler(categorySvc)
	questionHandler := handler.NewQuestionHandler(questionSvc, searchSvc)
	answerHandler := handler.NewAnswerHandler(answerSvc)
	voteHandler := handler.NewVoteHandler(voteSvc)
	rewardHandler := handler.NewRewardHandler(rewardSvc)
	statsHandler := handler.NewStatsHandler(statsSvc, leaderboardSvc)
	notificationHandler := handler.NewNotificationHandler(notificationSvc, redisClient)

	router := gin.New()

	setupCORS(router)

	router.Use(gin.Recovery())
	router.Use(gin.Logger())

	authMiddleware := middleware.NewAuthMiddleware()

	api := router.Group("/api")

	// Public routes
	auth := api.Group("/auth")
	{
		auth.POST("/signup", authHandler.Signup)
		auth.POST("/login", authHandler.Login)
		auth.GET("/google/login", authHandler.GoogleLogin)
		auth.GET("/google/callback", authHandler.GoogleCallback)
	}

	// Read routes resolve the caller when a token is present, so responses
	// can include the caller's own vote.
	public := api.Group("")
	public.Use(authMiddleware.OptionalAuth())
	{
		public.GET("/categories", categoryHandler.List)
		public.GET("/categories/:slug", categoryHandler.GetBySlug)
		public.GET("/questions", questionHandler.List)
		public.GET("/questions/search", questionHandler.Search)
		public.GET("/questions/:id", questionHandler.GetByID)
		public.GET("/questions/:id/answers", answerHandler.ListByQuestion)
		public.GET("/votes", voteHandler.GetVotes)
		public.GET("/leaderboard", statsHandler.GetLeaderboard)
	}

	protected := api.Group("")
	protected.Use(authMiddleware.RequireAuth())
	{
		protected.POST("/questions", questionHandler.Create)
		protected.DELETE("/questions/:id", questionHandler.Delete)

		protected.POST("/answers", answerHandler.Create)
		protected.DELETE("/answers/:id", answerHandler.Delete)

		protected.POST("/votes", voteHandler.CastVote)

		protected.GET("/stats/me", statsHandler.GetUserStats)

		protected.GET("/rewards", rewardHandler.List)
		protected.POST("/rewards/redeem", rewardHandler.Redeem)

		protected.GET("/profile/me", profileHandler.GetProfile)
		protected.PUT("/profile", profileHandler.UpdateProfile)

		protected.GET("/notifications", notificationHandler.List)
		protected.GET("/notifications/unread-count", notificationHandler.UnreadCount)
		protected.PUT("/notifications/:id/read", notificationHandler.MarkAsRead)
		protected.PUT("/notifications/read-all", notificationHandler.MarkAllAsRead)
		protected.GET("/notifications/ws", notificationHandler.HandleWebSocket)
	}

	return &Server{
		engine:      router,
		db:          db,
		redisClient: redisClient,
	}
}

func (s *Server) Run(addr string) error {
	return s.engine.Run(addr)
}

func setupCORS(router *gin.Engine) {
	allowedOrigins := os.Getenv("ALLOWED_ORIGINS")
	var origins []string
	if allowedOrigins != "" {
		origins = strings.Split(allowedOrigins, ",")
	} else {
		origins = []string{"http://localhost:3000"}
	}

	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
}
