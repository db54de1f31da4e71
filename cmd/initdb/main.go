// initdb наполняет базу демо-данными: три пользователя и три работы.
package main

import (
	"log/slog"
	"os"

	"job-tracker/internal/config"
	"job-tracker/internal/database"
	"job-tracker/internal/logging"
)

func main() {
	cfg := config.Load()
	logging.Setup(cfg.LogLevel)

	err := database.Init(cfg.DBDSN, database.AdminSeed{
		Email:    cfg.AdminEmail,
		Password: cfg.AdminPassword,
		Name:     cfg.AdminName,
		City:     cfg.AdminCity,
	})
	if err != nil {
		slog.Error("database init failed", "error", err)
		os.Exit(1)
	}

	if err := database.SeedDemo(database.DB); err != nil {
		slog.Error("demo seed failed", "error", err)
		os.Exit(1)
	}
	slog.Info("demo data ready")
}
