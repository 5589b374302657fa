package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

// PlaceholderTerminalKey is the value shipped in .env.example; credentials equal
// to it are treated the same as missing ones so staging never hits the live API.
const PlaceholderTerminalKey = "your_terminal_key_here"

type Config struct {
	DBHost           string
	DBUser           string
	DBPassword       string
	DBName           string
	DBPort           string
	AppPort          string
	AppEnv           string
	TerminalKey      string
	TerminalPassword string
	GatewayBaseURL   string
	SuccessURL       string
	FailURL          string
}

func LoadConfig() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		DBHost:           os.Getenv("DB_HOST"),
		DBUser:           os.Getenv("DB_USER"),
		DBPassword:       os.Getenv("DB_PASSWORD"),
		DBName:           os.Getenv("DB_NAME"),
		DBPort:           os.Getenv("DB_PORT"),
		AppPort:          os.Getenv("APP_PORT"),
		AppEnv:           os.Getenv("APP_ENV"),
		TerminalKey:      os.Getenv("TBANK_TERMINAL_KEY"),
		TerminalPassword: os.Getenv("TBANK_PASSWORD"),
		GatewayBaseURL:   os.Getenv("TBANK_BASE_URL"),
		SuccessURL:       os.Getenv("SUCCESS_URL"),
		FailURL:          os.Getenv("FAIL_URL"),
	}

	if cfg.GatewayBaseURL == "" {
		cfg.GatewayBaseURL = "https://securepay.tinkoff.ru/v2"
	}

	if cfg.DBHost == "" {
		log.Fatal("Environment variables not loaded properly")
	}

	return cfg
}

// MockGateway reports whether the process should run against the deterministic
// mock acquirer instead of the live one. Mock mode is an explicit configuration
// state, never an error fallback.
func (c *Config) MockGateway() bool {
	return c.TerminalKey == "" ||
		c.TerminalPassword == "" ||
		c.TerminalKey == PlaceholderTerminalKey
}
