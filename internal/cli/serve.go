package cli

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"
	"gorm.io/gorm"

	"github.com/sardorbek/kalit/config"
	"github.com/sardorbek/kalit/database"
	_ "github.com/sardorbek/kalit/docs" // Swagger docs - auto-generated
	adminctrl "github.com/sardorbek/kalit/internal/controller/admin"
	userctrl "github.com/sardorbek/kalit/internal/controller/user"
	"github.com/sardorbek/kalit/internal/model"
	"github.com/sardorbek/kalit/internal/repository"
	"github.com/sardorbek/kalit/internal/service"
	"github.com/sardorbek/kalit/internal/transport/telegram"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and, when a token is configured, the chat bot",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe()
		},
	}
}

func runServe() error {
	app := fx.New(
		fx.Provide(
			config.NewConfig,
			database.NewDatabase,
			NewGinEngine,
		),

		fx.Provide(
			repository.NewUserRepository,
			repository.NewTestRepository,
			repository.NewResultRepository,
			repository.NewAttemptRepository,
		),

		fx.Provide(
			service.NewRelay,
			func(r *service.Relay) service.Notifier { return r },
			service.NewScoringService,
			service.NewRegistryService,
			service.NewSubmissionService,
			service.NewStatsService,
			service.NewUserService,
		),

		fx.Provide(
			userctrl.NewTestController,
			adminctrl.NewAdminController,
		),

		fx.Invoke(RegisterRoutesAndStartServer),
		fx.Invoke(AutoMigrateDB),
		fx.Invoke(StartBot),
	)

	if err := app.Start(context.Background()); err != nil {
		return err
	}
	<-app.Done()
	log.Info().Msg("Application shutting down gracefully...")
	return nil
}

func NewGinEngine() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	r.Use(gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		log.Info().
			Str("client_ip", param.ClientIP).
			Str("method", param.Method).
			Str("path", param.Path).
			Int("status_code", param.StatusCode).
			Dur("latency", param.Latency).
			Str("error_message", param.ErrorMessage).
			Msg("gin_request")
		return ""
	}))
	r.Use(gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "X-Admin-ID"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// URL: http://localhost:PORT/swagger/index.html
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}

// RegisterRoutesAndStartServer configures API routes and manages the
// HTTP server lifecycle.
func RegisterRoutesAndStartServer(
	lc fx.Lifecycle,
	router *gin.Engine,
	cfg *config.Config,
	testCtrl *userctrl.TestController,
	adminCtrl *adminctrl.AdminController,
) {
	api := router.Group("/api/v1")
	{
		api.POST("/users", testCtrl.RegisterUser)
		api.GET("/users/:id/tests", testCtrl.ListMyTests)

		api.POST("/tests", testCtrl.CreateTest)
		api.PUT("/tests/:code", testCtrl.EditTest)
		api.POST("/tests/:code/scores", testCtrl.AttachBonusScores)
		api.GET("/tests/:code/statistics", testCtrl.GetStatistics)
		api.GET("/tests/:code/statistics.xlsx", testCtrl.DownloadStatisticsExcel)

		api.POST("/submissions", testCtrl.SubmitAnswers)
		api.GET("/leaderboard", testCtrl.GetLeaderboard)
	}

	adminAPI := router.Group("/api/v1/admin", adminCtrl.RequireAdmin())
	{
		adminAPI.GET("/stats", adminCtrl.GetPlatformStats)
		adminAPI.GET("/tests/search", adminCtrl.SearchTests)
		adminAPI.DELETE("/tests/:code", adminCtrl.DeleteTest)
		adminAPI.POST("/tests/purge", adminCtrl.PurgeOldTests)
		adminAPI.GET("/users", adminCtrl.ListUsers)
		adminAPI.GET("/users.csv", adminCtrl.DownloadUsersCSV)
		adminAPI.POST("/broadcast", adminCtrl.Broadcast)
	}

	server := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info().Msgf("Quiz API server starting on port %s", cfg.Server.Port)
			log.Info().Msgf("Swagger UI available at http://localhost:%s/swagger/index.html", cfg.Server.Port)
			go func() {
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatal().Err(err).Msg("Server ListenAndServe failed")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info().Msg("Server shutting down...")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		},
	})
}

// StartBot wires the chat transport when a token is configured and
// binds it to the notifier relay so services can reach users.
func StartBot(
	lc fx.Lifecycle,
	cfg *config.Config,
	relay *service.Relay,
	registry service.RegistryService,
	subs service.SubmissionService,
	stats service.StatsService,
	users service.UserService,
) error {
	if cfg.Telegram.Token == "" {
		log.Info().Msg("No telegram token configured, running HTTP-only")
		return nil
	}

	bot, err := telegram.NewBot(cfg, registry, subs, stats, users)
	if err != nil {
		return err
	}
	relay.Bind(bot)

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go bot.Run()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			bot.Stop()
			return nil
		},
	})
	return nil
}

func AutoMigrateDB(db *gorm.DB) error {
	log.Info().Msg("Running database migrations...")
	err := db.AutoMigrate(
		&model.User{},
		&model.Test{},
		&model.TestResult{},
		&model.UserTestAttempt{},
	)
	if err != nil {
		log.Error().Err(err).Msg("Database migration failed")
		return err
	}
	log.Info().Msg("Database migration completed successfully.")
	return nil
}
