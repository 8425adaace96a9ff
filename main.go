package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/bookdenapp/bookden/config"
	"github.com/bookdenapp/bookden/log"
	"github.com/bookdenapp/bookden/server"
	"github.com/bookdenapp/bookden/store"
	"github.com/bookdenapp/bookden/store/db"
	"github.com/bookdenapp/bookden/worker"
)

const greetingBanner = `
██████   ██████   ██████  ██   ██ ██████  ███████ ███    ██
██   ██ ██    ██ ██    ██ ██  ██  ██   ██ ██      ████   ██
██████  ██    ██ ██    ██ █████   ██   ██ █████   ██ ██  ██
██   ██ ██    ██ ██    ██ ██  ██  ██   ██ ██      ██  ██ ██
██████   ██████   ██████  ██   ██ ██████  ███████ ██   ████
`

var (
	configFile string
	host       string
	port       int
	data       string

	rootCmd = &cobra.Command{
		Use:   "bookden",
		Short: "BookDen is a book catalog and reading tracker",
		Run: func(cmd *cobra.Command, args []string) {
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			database, err := db.NewDB()
			if err != nil {
				log.Error("Error connecting to database", zap.Error(err))
				return
			}
			defer database.Close()
			if err := database.Migrate(ctx); err != nil {
				log.Error("Error migrating database", zap.Error(err))
				return
			}

			s := store.NewStore(database.DB)
			if err := s.Ping(); err != nil {
				log.Error("Error pinging database", zap.Error(err))
				return
			}

			pool := worker.NewProgressPool(s, config.Opts.WorkerPoolSize)

			httpServer, err := server.StartServer(ctx, s, pool)
			if err != nil {
				log.Error("Error starting server", zap.Error(err))
				return
			}

			fmt.Print(greetingBanner)
			log.Info("Server started",
				zap.String("host", config.Opts.Host),
				zap.Int("port", config.Opts.Port),
				zap.String("data", config.Opts.Data),
			)

			stop := make(chan os.Signal, 1)
			signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
			<-stop

			log.Info("Shutting down server")
			shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer shutdownCancel()
			if err := httpServer.Shutdown(shutdownCtx); err != nil {
				log.Error("Error shutting down server", zap.Error(err))
			}
		},
	}
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "path to the config file")
	rootCmd.PersistentFlags().StringVar(&host, "host", "", "host to listen on")
	rootCmd.PersistentFlags().IntVar(&port, "port", 0, "port to listen on")
	rootCmd.PersistentFlags().StringVar(&data, "data", "", "data directory")

	cobra.OnInitialize(func() {
		if _, err := config.GetConfig(); err != nil {
			fmt.Println("Error loading config:", err)
			os.Exit(1)
		}
		if configFile != "" {
			if _, err := config.ParseFile(configFile); err != nil {
				fmt.Println("Error parsing config file:", err)
				os.Exit(1)
			}
		}
		// Flags win over the config file.
		if host != "" {
			config.Opts.Host = host
		}
		if port != 0 {
			config.Opts.Port = port
		}
		if data != "" {
			config.Opts.Data = data
			config.Opts.DSN = config.Opts.Data + "/bookden.db"
		}

		log.Logger = log.NewLogger()
	})
}

func main() {
	defer func() {
		if log.Logger != nil {
			log.Logger.Sync()
		}
	}()

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
