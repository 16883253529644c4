package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Port       string
	DBDSN      string
	LogFile    string
	AdminToken string
}

func Load() Config {
	// .env is optional; real deployments set env vars directly.
	_ = godotenv.Load()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		dsn = "servio.db" // sqlite file in project root
	}
	logFile := os.Getenv("LOG_FILE")
	if logFile == "" {
		logFile = "./servio.log"
	}
	adminToken := os.Getenv("ADMIN_TOKEN")

	cfg := Config{Port: port, DBDSN: dsn, LogFile: logFile, AdminToken: adminToken}
	log.Printf("[config] PORT=%s DB_DSN=%s LOG_FILE=%s ADMIN_TOKEN_SET=%t", cfg.Port, cfg.DBDSN, cfg.LogFile, cfg.AdminToken != "")
	return cfg
}
