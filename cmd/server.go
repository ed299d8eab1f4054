/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/V2Tn/KimTamCatCRM/internal/api"
	"github.com/V2Tn/KimTamCatCRM/internal/config"
	"github.com/V2Tn/KimTamCatCRM/internal/container"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// serverCmd represents the server command
var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the API server",
	Long: `Start the KimTamCat CRM API server.
The server will listen on the configured host and port,
and provide REST API interfaces for task and personnel management.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath, _ := cmd.Flags().GetString("config")
		cfg, err := config.Load(configPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		if cmd.Flags().Changed("host") {
			cfg.Server.Host, _ = cmd.Flags().GetString("host")
		}
		if cmd.Flags().Changed("port") {
			cfg.Server.Port, _ = cmd.Flags().GetInt("port")
		}

		logger, err := api.NewLoggerFromConfig(&cfg.Log)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}

		// Theo dõi tệp cấu hình để đổi mức log không cần khởi động lại
		if configPath != "" {
			watcher := config.NewWatcher(cfg, configPath)
			watcher.OnChange(func(newCfg *config.Config) {
				level, err := logrus.ParseLevel(newCfg.Log.Level)
				if err != nil {
					logger.WithError(err).Warn("invalid log level in config, keeping current")
					return
				}
				logger.SetLevel(level)
				logger.WithField("level", newCfg.Log.Level).Info("log level updated")
			})
			if err := watcher.Start(); err != nil {
				logger.WithError(err).Warn("failed to watch config file")
			} else {
				defer watcher.Stop()
			}
		}

		ctr, err := container.NewContainer(cfg, logger)
		if err != nil {
			return fmt.Errorf("failed to initialize container: %w", err)
		}
		defer ctr.Close()

		controllers := &api.Controllers{
			Health:     api.NewHealthController(ctr.DB(), ctr.SettingRepository()),
			Auth:       api.NewAuthController(ctr.UserService(), ctr.TokenIssuer(), ctr.SettingRepository()),
			Task:       api.NewTaskController(ctr.TaskService()),
			User:       api.NewUserController(ctr.UserService()),
			Department: api.NewDepartmentController(ctr.DepartmentService()),
			Sync:       api.NewSyncController(ctr.Ingestor(), ctr.UserService(), ctr.SettingRepository()),
			Setting:    api.NewSettingController(ctr.SettingRepository()),
			Statistics: api.NewStatisticsController(ctr.StatisticsService()),
		}

		router := api.SetupRoutes(cfg, logger, ctr.TokenIssuer(), ctr.UserRepository(), controllers)
		router.NoRoute(func(c *gin.Context) {
			api.Error(c, http.StatusNotFound, "route not found", "the requested route does not exist")
		})

		ctr.Collector().Start()
		defer ctr.Collector().Stop()

		addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
		srv := &http.Server{
			Addr:    addr,
			Handler: router,
		}

		go func() {
			logger.WithField("addr", addr).Info("server starting")
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				logger.WithError(err).Fatal("failed to start server")
			}
		}()

		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit

		logger.Info("shutting down server")

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			logger.WithError(err).Fatal("server forced to shutdown")
		}

		logger.Info("server exited")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serverCmd)

	serverCmd.Flags().String("config", "", "Config file path (default: config.yaml)")
	serverCmd.Flags().String("host", "0.0.0.0", "Server host")
	serverCmd.Flags().Int("port", 8080, "Server port")
}

// LoadConfig nạp cấu hình (dùng trong kiểm thử)
func LoadConfig(configPath string) (*config.Config, error) {
	return config.Load(configPath)
}
