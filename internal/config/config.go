package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPPort    string
	DatabaseDSN string
	JWTSecret   string
	CORSOrigins string
}

func Load() *Config {
	// .env optionnel, les variables d'environnement priment
	if err := godotenv.Load(); err == nil {
		log.Println(".env chargé")
	}

	cfg := &Config{
		HTTPPort:    getEnv("HTTP_PORT", "8080"),
		DatabaseDSN: getEnv("DATABASE_DSN", "host=localhost user=postgres password=postgres dbname=cartonnerie port=5432 sslmode=disable"),
		JWTSecret:   getEnv("JWT_SECRET", ""),
		CORSOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
	}

	// Contrôles de sécurité pour la production
	if cfg.JWTSecret == "" {
		log.Fatal("[FATAL] JWT_SECRET n'est pas défini ! Obligatoire en production.")
	}
	if len(cfg.JWTSecret) < 32 {
		log.Fatal("[FATAL] JWT_SECRET doit faire au moins 32 caractères !")
	}
	if cfg.DatabaseDSN == "host=localhost user=postgres password=postgres dbname=cartonnerie port=5432 sslmode=disable" {
		log.Println("[WARN] DATABASE_DSN utilise la valeur par défaut, définis ta propre connexion Postgres en production.")
	}
	if cfg.CORSOrigins == "http://localhost:5173" {
		log.Println("[WARN] CORS_ALLOWED_ORIGINS utilise la valeur par défaut, définis ton propre domaine en production.")
	}

	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
