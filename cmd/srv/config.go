package main

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/questx-lab/eventreward/config"
	"github.com/questx-lab/eventreward/pkg/xcontext"
)

func (s *srv) loadConfig() {
	// Environment variables take precedence over the .env file.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Cannot load .env file: %v", err)
	}

	s.ctx = xcontext.WithConfigs(s.ctx, config.Configs{
		Env:      getEnv("ENV", "local"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
		NodeID:   int64(parseInt(getEnv("NODE_ID", "0"))),
		Database: config.DatabaseConfigs{
			Host:     getEnv("MYSQL_HOST", "mysql"),
			Port:     getEnv("MYSQL_PORT", "3306"),
			User:     getEnv("MYSQL_USER", "mysql"),
			Password: getEnv("MYSQL_PASSWORD", "mysql"),
			Database: getEnv("MYSQL_DATABASE", "eventreward"),
			LogLevel: getEnv("DATABASE_LOG_LEVEL", "warn"),
		},
		EventServer: config.RPCServerConfigs{
			ServerConfigs: config.ServerConfigs{
				Host: getEnv("EVENT_SERVER_HOST", ""),
				Port: getEnv("EVENT_SERVER_PORT", "8080"),
			},
			RPCName: getEnv("EVENT_SERVER_RPC_NAME", "event"),
		},
		UserServer: config.RPCServerConfigs{
			ServerConfigs: config.ServerConfigs{
				Host: getEnv("USER_SERVER_HOST", ""),
				Port: getEnv("USER_SERVER_PORT", "8081"),
			},
			RPCName:  getEnv("USER_SERVER_RPC_NAME", "user"),
			Endpoint: getEnv("USER_SERVER_ENDPOINT", "http://localhost:8081"),
		},
		ApiServer: config.APIServerConfigs{
			ServerConfigs: config.ServerConfigs{
				Host: getEnv("API_SERVER_HOST", ""),
				Port: getEnv("API_SERVER_PORT", "8000"),
			},
			MaxLimit:     parseInt(getEnv("API_MAX_LIMIT", "100")),
			DefaultLimit: parseInt(getEnv("API_DEFAULT_LIMIT", "10")),
		},
		Claim: config.ClaimConfigs{
			LockBackend:         config.ClaimLockBackend(getEnv("CLAIM_LOCK_BACKEND", "db")),
			LockTTL:             parseDuration(getEnv("CLAIM_LOCK_TTL", "60s")),
			LockCleanupInterval: parseDuration(getEnv("CLAIM_LOCK_CLEANUP_INTERVAL", "5m")),
			ReconcileInterval:   parseDuration(getEnv("CLAIM_RECONCILE_INTERVAL", "0s")),
			ReconcileGrace:      parseDuration(getEnv("CLAIM_RECONCILE_GRACE", "5m")),
			ReconcileBatch:      parseInt(getEnv("CLAIM_RECONCILE_BATCH", "100")),
		},
		Redis: config.RedisConfigs{
			Addr: getEnv("REDIS_ADDRESS", "localhost:6379"),
		},
		Kafka: config.KafkaConfigs{
			Addr: getEnv("KAFKA_ADDRESS", ""),
		},
	})
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}

	return fallback
}

func parseDuration(s string) time.Duration {
	duration, err := time.ParseDuration(s)
	if err != nil {
		panic(err)
	}

	return duration
}

func parseInt(s string) int {
	i, err := strconv.Atoi(s)
	if err != nil {
		panic(err)
	}

	return i
}
