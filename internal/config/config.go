package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"
)

// Режимы хранения ссылок.
const (
	ModeDatabase = "database"
	ModeSQLite   = "sqlite"
	ModeMemory   = "memory"
)

// Config хранит конфигурацию сервера
type Config struct {
	ServerAddress   string        `mapstructure:"server_address"`
	GRPCAddress     string        `mapstructure:"grpc_address"`
	DatabaseDSN     string        `mapstructure:"database_dsn"`
	SQLitePath      string        `mapstructure:"sqlite_path"`
	MigrationsPath  string        `mapstructure:"pg_migrations_path"`
	LogLevel        string        `mapstructure:"log_level"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	Mode            string        `mapstructure:"-"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server_address", "localhost:8080") // Значения по умолчанию
	v.SetDefault("grpc_address", "")
	v.SetDefault("database_dsn", "")
	v.SetDefault("sqlite_path", "")
	v.SetDefault("pg_migrations_path", "")
	v.SetDefault("log_level", "info")
	v.SetDefault("shutdown_timeout", 10*time.Second)
}

// Load собирает конфигурацию. Приоритет по возрастанию: значения по умолчанию,
// JSON-файл из -c или CONFIG, файл .env, переменные окружения, флаги.
func Load(args []string) (*Config, error) {
	fs := flag.NewFlagSet("shortener", flag.ContinueOnError)
	serverAddress := fs.String("a", "", "HTTP server address")
	grpcAddress := fs.String("g", "", "gRPC server address, empty disables gRPC")
	databaseDSN := fs.String("d", "", "PostgreSQL DSN")
	sqlitePath := fs.String("s", "", "SQLite database path")
	migrationsPath := fs.String("m", "", "directory with PostgreSQL migrations, embedded ones are used when empty")
	configPath := fs.String("c", "", "path to JSON config file")
	fs.StringVar(configPath, "config", "", "path to JSON config file")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	if *configPath == "" {
		*configPath = os.Getenv("CONFIG")
	}
	if *configPath != "" {
		v.SetConfigFile(*configPath)
		v.SetConfigType("json")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %q: %w", *configPath, err)
		}
	}

	// .env не переопределяет переменные окружения
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	if err := v.MergeInConfig(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("read .env: %w", err)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	override := func(flagValue string, target *string) {
		if flagValue != "" {
			*target = flagValue
		}
	}
	override(*serverAddress, &cfg.ServerAddress)
	override(*grpcAddress, &cfg.GRPCAddress)
	override(*databaseDSN, &cfg.DatabaseDSN)
	override(*sqlitePath, &cfg.SQLitePath)
	override(*migrationsPath, &cfg.MigrationsPath)

	// Определяем режим работы
	switch {
	case cfg.DatabaseDSN != "":
		cfg.Mode = ModeDatabase
	case cfg.SQLitePath != "":
		cfg.Mode = ModeSQLite
	default:
		cfg.Mode = ModeMemory
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate проверяет корректность конфигурации
func (cfg *Config) Validate() error {
	if cfg.ServerAddress == "" {
		return errors.New("server address must not be empty")
	}
	if cfg.GRPCAddress != "" && cfg.GRPCAddress == cfg.ServerAddress {
		return errors.New("gRPC and HTTP servers must listen on different addresses")
	}
	if _, err := zapcore.ParseLevel(cfg.LogLevel); err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}
	if cfg.ShutdownTimeout <= 0 {
		return errors.New("shutdown timeout must be positive")
	}
	return nil
}
