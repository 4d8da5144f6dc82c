// cmd/recordbase/cmd/root.go
package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/exp/slog"

	"recordbase/internal/app"
	"recordbase/internal/config"
	"recordbase/internal/utils/logger"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile    string
	cfg        *config.Config
	log        *slog.Logger
	debug      bool
	jsonOutput bool
	schemaFile string
	dataFile   string
)

var rootCmd = &cobra.Command{
	Use:   "recordbase",
	Short: "Recordbase - локальная картотека записей по настраиваемой схеме",
	Long: `Recordbase хранит произвольные записи по настраиваемой схеме полей:
текст, числа, даты, выпадающие списки и изображения.

Данные лежат локально в SQLite, поиск идет по индексированным полям схемы.
Коллекцию можно целиком выгрузить в JSON и загрузить обратно.`,
	PersistentPreRunE: setupApp,
	SilenceUsage:      true,
	SilenceErrors:     true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Ошибка: %v\n", err)
		os.Exit(1)
	}
}

func setupApp(cmd *cobra.Command, _ []string) error {
	// Загружаем конфигурацию
	var err error
	cfg, err = loadConfig()
	if err != nil {
		return fmt.Errorf("ошибка загрузки конфигурации: %w", err)
	}

	// Переопределяем настройки из флагов командной строки
	if debug {
		cfg.Env = config.EnvLocal
	}
	if schemaFile != "" {
		cfg.SchemaPath = schemaFile
	}
	if dataFile != "" {
		cfg.DataPath = dataFile
	}

	// Настраиваем логгер
	log = logger.New(cfg.Env)

	// Создаем приложение
	application, err := app.New(cfg, log)
	if err != nil {
		return fmt.Errorf("ошибка инициализации приложения: %w", err)
	}

	cmd.SetContext(context.WithValue(cmd.Context(), "app", application))

	return nil
}

func closeApp(cmd *cobra.Command, _ []string) {
	application, ok := cmd.Context().Value("app").(*app.App)
	if !ok {
		return
	}
	if err := application.Close(); err != nil {
		log.Warn("Ошибка при закрытии приложения", "error", err)
	}
}

func loadConfig() (*config.Config, error) {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		// Ищем конфиг в стандартных местах
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}

		configDir := filepath.Join(home, ".recordbase")
		viper.AddConfigPath(configDir)
		viper.AddConfigPath(".")
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
		// Конфиг не найден, используем значения по умолчанию
	}

	return config.MustLoad(), nil
}

func init() {
	cobra.OnInitialize()

	// Глобальные флаги
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "конфигурационный файл")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "включить отладочный режим")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "вывод в формате JSON")
	rootCmd.PersistentFlags().StringVar(&schemaFile, "schema", "", "файл схемы записей (yaml)")
	rootCmd.PersistentFlags().StringVar(&dataFile, "data", "", "файл базы данных SQLite")

	rootCmd.PersistentPostRun = closeApp

	// Команды будут добавлены в init() соответствующих файлов
}
