package main

import (
	"prepwise-backend/internal/config"
	"prepwise-backend/internal/database"
	"prepwise-backend/internal/handlers"
	"prepwise-backend/internal/middleware"
	"prepwise-backend/internal/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title           PrepWise API
// @version         1.0
// @description     Study-quiz backend: quizzes, per-user progress, community notes with visibility controls, study groups and premium entitlements
// @host            localhost:8080
// @BasePath        /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Enter "Bearer {token}"

func main() {
	cfg := config.Load()

	log := logrus.New()
	if lvl, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		log.SetLevel(lvl)
	}
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	db := database.Connect(cfg, log)
	database.AutoMigrate(db, log)

	limits := services.Limits{
		FreeWorkplaces:       cfg.FreeWorkplaceLimit,
		FreeQuizzes:          cfg.FreeQuizLimit,
		FreeQuestionsPerQuiz: cfg.FreeQuestionLimit,
	}

	var gateway services.PaymentGateway
	if cfg.MPAccessToken != "" {
		gateway = services.NewMercadoPagoGateway(cfg.MPAccessToken)
	} else {
		log.Warn("MP_ACCESS_TOKEN not set, payment gateway disabled")
	}

	verifier := services.NewGoogleVerifier(cfg.GoogleClientID)
	provider := services.NewChatCompletionClient(cfg.LLMAPIKey, cfg.LLMAPIURL, cfg.LLMModel, cfg.LLMRetries)

	authService := services.NewAuthService(db, cfg.JWTSecret, verifier)
	workplaceService := services.NewWorkplaceService(db, limits)
	quizService := services.NewQuizService(db, limits)
	progressService := services.NewProgressService(db)
	noteService := services.NewNoteService(db)
	groupService := services.NewStudyGroupService(db)
	paymentService := services.NewPaymentService(db, gateway, cfg.FrontendURL, cfg.WebhookBaseURL, log)
	aiService := services.NewAIService(db, provider, progressService, log)
	examService := services.NewExamService(cfg.ExamsBasePath)

	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(authService, paymentService, db)
	workplaceHandler := handlers.NewWorkplaceHandler(workplaceService)
	quizHandler := handlers.NewQuizHandler(quizService)
	progressHandler := handlers.NewProgressHandler(progressService)
	noteHandler := handlers.NewNoteHandler(noteService)
	groupHandler := handlers.NewStudyGroupHandler(groupService)
	paymentHandler := handlers.NewPaymentHandler(paymentService)
	aiHandler := handlers.NewAIHandler(aiService)
	examHandler := handlers.NewExamHandler(examService)

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.FrontendURL},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api/v1")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.POST("/google", authHandler.GoogleLogin)
		}

		users := api.Group("/users")
		users.Use(middleware.JWTAuth(authService))
		{
			users.GET("/me", userHandler.Me)
			users.GET("/validate/:username", userHandler.ValidateUsername)
			users.POST("/upgrade", userHandler.Upgrade)
		}

		admin := api.Group("/admin")
		admin.Use(middleware.JWTAuth(authService), middleware.AdminOnly())
		{
			admin.GET("/users", userHandler.ListUsers)
		}

		workplaces := api.Group("/workplaces")
		workplaces.Use(middleware.JWTAuth(authService))
		{
			workplaces.POST("", workplaceHandler.Create)
			workplaces.GET("", workplaceHandler.List)
			workplaces.DELETE("/:id", workplaceHandler.Delete)
		}

		quizzes := api.Group("/quizzes")
		quizzes.Use(middleware.JWTAuth(authService))
		{
			quizzes.POST("", quizHandler.Create)
			quizzes.GET("", quizHandler.List)
			quizzes.PATCH("/:id/questions", quizHandler.AppendQuestions)
			quizzes.DELETE("/:id", quizHandler.Delete)
		}

		progress := api.Group("/progress")
		progress.Use(middleware.JWTAuth(authService))
		{
			progress.POST("", progressHandler.Upsert)
			progress.GET("", progressHandler.List)
			progress.DELETE("/reset-block/:quiz_id", progressHandler.ResetQuiz)
			progress.DELETE("/reset-all", progressHandler.ResetAll)
		}

		notes := api.Group("/community-notes")
		notes.Use(middleware.JWTAuth(authService))
		{
			notes.GET("/:question_id", noteHandler.ListForQuestion)
			notes.POST("", noteHandler.Create)
		}

		groups := api.Group("/study-groups")
		groups.Use(middleware.JWTAuth(authService))
		{
			groups.POST("", groupHandler.Create)
			groups.GET("", groupHandler.List)
			groups.GET("/dashboard", groupHandler.Dashboard)
		}

		ai := api.Group("/ai")
		ai.Use(middleware.JWTAuth(authService))
		{
			ai.GET("/status", aiHandler.Status)
			ai.POST("/analyze", aiHandler.Analyze)
			ai.POST("/generate", aiHandler.Generate)
		}

		payments := api.Group("/payments")
		{
			payments.POST("/create-preference", middleware.JWTAuth(authService), paymentHandler.CreatePreference)
			payments.POST("/webhook", paymentHandler.Webhook)
		}

		exams := api.Group("/exams")
		{
			exams.GET("/available", examHandler.ListAvailable)
			exams.GET("/autoload/:exam_name", middleware.JWTAuth(authService), examHandler.Autoload)
		}
	}

	log.Infof("server starting on :%s", cfg.ServerPort)
	if err := r.Run(":" + cfg.ServerPort); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
