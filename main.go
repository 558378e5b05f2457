package main

import (
	"os"

	"ecclesia/config"
	dbpkg "ecclesia/db"
	"ecclesia/router"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

func main() {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config/config.json"
	}
	cfg := config.Get(configPath)

	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		logrus.SetLevel(level)
	}
	logrus.SetFormatter(&logrus.JSONFormatter{})

	// Os controllers leem o secret via env; o config.json serve de fallback
	// para não exigir env em dev.
	if os.Getenv("JWT_SECRET") == "" && os.Getenv("ECCLESIA_JWT_SECRET") == "" {
		os.Setenv("ECCLESIA_JWT_SECRET", cfg.Security.JwtSecret)
	}

	dbpkg.SetConfigurations(cfg)
	database, err := dbpkg.Connect()
	if err != nil {
		logrus.WithError(err).Fatal("não foi possível conectar ao banco")
	}
	defer database.Close()

	r := gin.New()
	r.Use(dbpkg.SetDBtoContext(database))
	router.Initialize(r, cfg)

	logrus.WithField("port", cfg.ApiPort).Info("Ecclesia listening")
	if err := r.Run(":" + cfg.ApiPort); err != nil {
		logrus.Fatal(err)
	}
}
