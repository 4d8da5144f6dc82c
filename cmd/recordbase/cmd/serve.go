// cmd/recordbase/cmd/serve.go
package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/exp/slog"

	"recordbase/internal/api"
	"recordbase/internal/app"

	"github.com/spf13/cobra"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Запустить HTTP API",
	Long: `Поднимает HTTP API над локальной картотекой. Документация OpenAPI
доступна по адресу /docs.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		application, ok := cmd.Context().Value("app").(*app.App)
		if !ok || application == nil {
			return fmt.Errorf("приложение не инициализировано")
		}

		addr := serveAddr
		if addr == "" {
			addr = cfg.ListenAddress
		}

		mux := api.New(application.Service(), cfg.StorageDriver, log)
		srv := &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
		}

		errCh := make(chan error, 1)
		go func() {
			log.Info("HTTP-сервер запущен", slog.String("addr", addr))
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				errCh <- err
			}
			close(errCh)
		}()

		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

		select {
		case sig := <-quit:
			log.Info("Получен сигнал завершения", slog.String("signal", sig.String()))
		case err := <-errCh:
			if err != nil {
				return fmt.Errorf("ошибка HTTP-сервера: %w", err)
			}
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			return fmt.Errorf("ошибка при graceful shutdown: %w", err)
		}

		log.Info("HTTP-сервер остановлен")
		return nil
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "адрес прослушивания, по умолчанию из конфигурации")
}
