package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/tendant/chi-demo/app"
	"github.com/tendant/simple-account/pkg/account"
	"github.com/tendant/simple-account/pkg/account/accountdb"
	accountapi "github.com/tendant/simple-account/pkg/account/api"
	"github.com/tendant/simple-account/pkg/bootstrap"
	pkgconfig "github.com/tendant/simple-account/pkg/config"
	"github.com/tendant/simple-account/pkg/password"
)

type AcctDbConfig struct {
	Host     string `env:"ACCT_PG_HOST" env-default:"localhost"`
	Port     uint16 `env:"ACCT_PG_PORT" env-default:"5432"`
	Database string `env:"ACCT_PG_DATABASE" env-default:"account_db"`
	User     string `env:"ACCT_PG_USER" env-default:"account"`
	Password string `env:"ACCT_PG_PASSWORD" env-default:"pwd"`
	Schema   string `env:"ACCT_PG_SCHEMA" env-default:"public"`
}

func (d AcctDbConfig) toDatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable&search_path=%s,public",
		d.User, d.Password, d.Host, d.Port, d.Database, d.Schema)
}

type Config struct {
	AcctDbConfig             AcctDbConfig
	AppConfig                app.AppConfig
	PasswordComplexityConfig pkgconfig.PasswordComplexityConfig
	RunMigrations            bool `env:"ACCT_RUN_MIGRATIONS" env-default:"true"`
}

// loadEnvFile loads environment variables from .env file if it exists
// Only sets variables that are not already set in the environment
func loadEnvFile() {
	execPath, err := os.Executable()
	if err != nil {
		slog.Error("Failed to get executable path", "error", err)
		return
	}

	execDir := filepath.Dir(execPath)
	envFile := filepath.Join(execDir, ".env")

	// Also check current working directory
	if _, err := os.Stat(envFile); os.IsNotExist(err) {
		cwd, err := os.Getwd()
		if err != nil {
			slog.Error("Failed to get current working directory", "error", err)
			return
		}
		envFile = filepath.Join(cwd, ".env")
	}

	if _, err := os.Stat(envFile); os.IsNotExist(err) {
		slog.Info("No .env file found", "path", envFile)
		return
	}

	slog.Info("Loading configuration from .env file", "path", envFile)

	if err := godotenv.Load(envFile); err != nil {
		slog.Error("Failed to load .env file", "error", err, "path", envFile)
	}
}

func main() {
	// Create a logger with source enabled
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		AddSource: true, // Enables line number & file path
	}))
	slog.SetDefault(logger)

	// Load .env file if it exists (before reading environment variables)
	loadEnvFile()

	config := Config{}
	cleanenv.ReadEnv(&config)

	ctx := context.Background()
	dbURL := config.AcctDbConfig.toDatabaseURL()

	if config.RunMigrations {
		if err := bootstrap.RunMigrations(ctx, dbURL); err != nil {
			slog.Error("Failed running migrations", "err", err)
			os.Exit(-1)
		}
	}

	pool, err := pgxpool.New(ctx, dbURL)
	if err != nil {
		slog.Error("Failed creating dbpool", "db", config.AcctDbConfig.Database, "host", config.AcctDbConfig.Host, "port", config.AcctDbConfig.Port, "user", config.AcctDbConfig.User, "schema", config.AcctDbConfig.Schema)
		os.Exit(-1)
	}

	accountQueries := accountdb.New(pool)
	accountRepo := account.NewPostgresAccountRepository(accountQueries)

	if err := bootstrap.EnsureReferenceData(ctx, accountRepo); err != nil {
		slog.Error("Failed ensuring reference data", "err", err)
		os.Exit(-1)
	}

	passwordPolicy := config.PasswordComplexityConfig.ToPasswordPolicy()
	policyChecker := password.NewDefaultPolicyChecker(passwordPolicy)

	accountService := account.NewAccountService(accountRepo, password.NewBcryptHasher(), policyChecker)

	server := app.DefaultApp()
	app.RoutesHealthz(server.R)

	handler := accountapi.NewHandler(accountService)
	handler.RegisterRoutes(server.R)

	server.Run()
}
