package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvLocal = "local"
	EnvDev   = "dev"
	EnvProd  = "prod"

	DriverSQLite = "sqlite"
	DriverMemory = "memory"

	defaultEnv           = EnvLocal
	defaultLogLevel      = "info"
	defaultConfigDir     = ".recordbase"
	defaultStoreName     = "records"
	defaultSchemaVersion = 1
	defaultDriver        = DriverSQLite
	defaultListenAddress = "localhost:8080"
	defaultMaxRecordDate = "2100-01-01T00:00:00Z"
)

type Config struct {
	Env           string `mapstructure:"app_env"`
	LogLevel      string `mapstructure:"log_level"`
	ConfigDir     string `mapstructure:"config_dir"`
	DataPath      string `mapstructure:"data_path"`
	StatePath     string `mapstructure:"state_path"`
	StoreName     string `mapstructure:"store_name"`
	SchemaVersion int    `mapstructure:"schema_version"`
	SchemaPath    string `mapstructure:"schema_path"`
	StorageDriver string `mapstructure:"storage_driver"`
	ListenAddress string `mapstructure:"listen_address"`

	// MaxRecordDate - верхняя граница для значений полей типа date.
	MaxRecordDate time.Time
}

// MustLoad загружает конфигурацию приложения.
func MustLoad() *Config {
	// Определяем путь к .env файлу (относительно места запуска)
	envPath := ".env"
	if _, err := os.Stat(envPath); os.IsNotExist(err) {
		envPath = "../.env"
	}

	// Загружаем .env файл если существует
	if _, err := os.Stat(envPath); err == nil {
		if err := godotenv.Load(envPath); err != nil {
			fmt.Printf("Ошибка загрузки .env файла: %v\n", err)
		}
	}

	viper.AutomaticEnv()

	// Устанавливаем значения по умолчанию
	viper.SetDefault("APP_ENV", defaultEnv)
	viper.SetDefault("LOG_LEVEL", defaultLogLevel)
	viper.SetDefault("CONFIG_DIR", defaultConfigDir)
	viper.SetDefault("STORE_NAME", defaultStoreName)
	viper.SetDefault("SCHEMA_VERSION", defaultSchemaVersion)
	viper.SetDefault("STORAGE_DRIVER", defaultDriver)
	viper.SetDefault("LISTEN_ADDRESS", defaultListenAddress)
	viper.SetDefault("MAX_RECORD_DATE", defaultMaxRecordDate)

	// Получаем домашнюю директорию пользователя
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = "."
	}

	configDir := viper.GetString("CONFIG_DIR")
	if configDir == defaultConfigDir {
		configDir = filepath.Join(homeDir, configDir)
	}

	// Создаем директории если их нет
	if err := os.MkdirAll(configDir, 0700); err != nil {
		fmt.Printf("Ошибка создания директории конфигурации: %v\n", err)
	}

	dataPath := viper.GetString("DATA_PATH")
	if dataPath == "" {
		dataPath = filepath.Join(configDir, "records.db")
	}

	maxDate, err := time.Parse(time.RFC3339, viper.GetString("MAX_RECORD_DATE"))
	if err != nil {
		panic(fmt.Sprintf("Ошибка конфигурации: неверный MAX_RECORD_DATE: %v", err))
	}

	config := &Config{
		Env:           viper.GetString("APP_ENV"),
		LogLevel:      viper.GetString("LOG_LEVEL"),
		ConfigDir:     configDir,
		DataPath:      dataPath,
		StatePath:     filepath.Join(configDir, "state.json"),
		StoreName:     viper.GetString("STORE_NAME"),
		SchemaVersion: viper.GetInt("SCHEMA_VERSION"),
		SchemaPath:    viper.GetString("SCHEMA_PATH"),
		StorageDriver: viper.GetString("STORAGE_DRIVER"),
		ListenAddress: viper.GetString("LISTEN_ADDRESS"),
		MaxRecordDate: maxDate,
	}

	// Валидация конфигурации
	if err := config.validate(); err != nil {
		panic(fmt.Sprintf("Ошибка конфигурации: %v", err))
	}

	return config
}

func (c *Config) validate() error {
	if c.StoreName == "" {
		return fmt.Errorf("store_name не может быть пустым")
	}
	switch c.StorageDriver {
	case DriverSQLite, DriverMemory:
	default:
		return fmt.Errorf("неизвестный storage_driver: %s", c.StorageDriver)
	}
	if c.SchemaVersion < 1 {
		return fmt.Errorf("schema_version должен быть не меньше 1")
	}
	return nil
}

// IsProd проверяет, prod ли окружение
func (c *Config) IsProd() bool {
	return c.Env == EnvProd
}

// IsDev проверяет, dev ли окружение
func (c *Config) IsDev() bool {
	return c.Env == EnvDev
}

// IsLocal проверяет, local ли окружение
func (c *Config) IsLocal() bool {
	return c.Env == EnvLocal || c.Env == ""
}
