package config

import (
	"fmt"
	"time"
)

type Configs struct {
	Env      string
	LogLevel string

	// NodeID distinguishes instances generating ids, it must be unique per
	// running event server.
	NodeID int64

	Database    DatabaseConfigs
	EventServer RPCServerConfigs
	UserServer  RPCServerConfigs
	ApiServer   APIServerConfigs
	Claim       ClaimConfigs
	Redis       RedisConfigs
	Kafka       KafkaConfigs
}

type DatabaseConfigs struct {
	Host     string
	Port     string
	Database string
	User     string
	Password string
	LogLevel string
}

func (d DatabaseConfigs) ConnectionString() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
		d.User,
		d.Password,
		d.Host,
		d.Port,
		d.Database,
	)
}

type ServerConfigs struct {
	Host string
	Port string
}

func (c ServerConfigs) Address() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

type RPCServerConfigs struct {
	ServerConfigs
	RPCName  string
	Endpoint string
}

type APIServerConfigs struct {
	ServerConfigs
	MaxLimit     int
	DefaultLimit int
}

type ClaimLockBackend string

const (
	DatabaseLockBackend ClaimLockBackend = "db"
	RedisLockBackend    ClaimLockBackend = "redis"
)

type ClaimConfigs struct {
	LockBackend         ClaimLockBackend
	LockTTL             time.Duration
	LockCleanupInterval time.Duration

	// Reconciliation of CLAIMED histories whose rewards were never applied is
	// disabled while ReconcileInterval is zero.
	ReconcileInterval time.Duration
	ReconcileGrace    time.Duration
	ReconcileBatch    int
}

type RedisConfigs struct {
	Addr string
}

type KafkaConfigs struct {
	Addr string
}
