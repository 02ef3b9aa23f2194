package cmd

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/spf13/cobra"

	"teamtasks.com/teamtasks/internal/cache"
	config "teamtasks.com/teamtasks/internal/configs"
	httpapi "teamtasks.com/teamtasks/internal/http"
	"teamtasks.com/teamtasks/internal/logger"
	repository "teamtasks.com/teamtasks/internal/repositories"
	"teamtasks.com/teamtasks/internal/services"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long:  "Starts the team task management HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := godotenv.Load(); err != nil {
			log.Println(".env file not found, using environment variables")
		}

		cfg := config.Load()
		appLog := logger.New("teamtasks")
		defer appLog.Sync()

		database := config.New(cfg.DatabaseDSN)

		redisClient := config.NewRedisClient(cfg.RedisAddr)
		defer redisClient.Close()

		membershipCache := cache.NewRedisMembershipCache(
			redisClient,
			cfg.MembershipCacheKeyPrefix,
			time.Duration(cfg.MembershipCacheTTLSeconds)*time.Second,
		)

		userRepo := repository.NewUserRepository(database)
		teamRepo := repository.NewTeamRepository(database)
		memberRepo := repository.NewTeamMemberRepository(database)
		taskRepo := repository.NewTaskRepository(database)
		historyRepo := repository.NewTaskHistoryRepository(database)

		membership := services.NewMembershipIndex(memberRepo, membershipCache, appLog)

		authService := services.NewAuthService(
			userRepo,
			cfg.JWTSecret,
			time.Duration(cfg.TokenTTLHours)*time.Hour,
			appLog,
		)
		taskService := services.NewTaskService(
			database, taskRepo, historyRepo, userRepo, teamRepo, membership, appLog,
		)
		teamService := services.NewTeamService(teamRepo, taskRepo, membership, appLog)
		teamMemberService := services.NewTeamMemberService(
			memberRepo, userRepo, teamRepo, membership, appLog,
		)

		e := echo.New()
		handler := httpapi.NewHandler(authService, taskService, teamService, teamMemberService, appLog)
		httpapi.Register(e, handler, authService, cfg.RateLimit, appLog)

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		go func() {
			appLog.Info("HTTP server listening", "addr", cfg.AppURL)
			if err := e.Start(cfg.AppURL); err != nil {
				appLog.Info("server stopped", "error", err)
			}
		}()

		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(
			context.Background(),
			time.Duration(cfg.ShutdownTimeoutSeconds)*time.Second,
		)
		defer cancel()
		_ = e.Shutdown(shutdownCtx)

		appLog.Info("HTTP server shut down gracefully")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
