package config

import (
	"log"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"

	"github.com/customeros/mailsweep/internal/logger"
	"github.com/customeros/mailsweep/internal/tracing"
)

func InitConfig() (*AppConfig, error) {
	config := &AppConfig{
		Logger: &logger.Config{},
		Jaeger: &tracing.JaegerConfig{},
	}

	err := godotenv.Load()
	if err != nil {
		log.Print("Unable to load .env file")
	}

	err = env.Parse(config)
	if err != nil {
		return nil, err
	}

	return config, nil
}
