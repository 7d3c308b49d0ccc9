package database

import (
	"artistsite/config"
	"context"
	"fmt"
	"time"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/valkey-io/valkey-go"
)

// Valkey database index layout. Only sessions are cached; page content is
// always read from the content store.
const (
	// SESSION_CACHE_INDEX (DB 1) - admin sessions keyed by session id
	SESSION_CACHE_INDEX = 1
)

// NewCache connects only the session cache. Static deployments have no
// relational backend but can still share sessions across instances.
func NewCache(config config.Config) (DB, error) {
	log := logger.New("database").Function("NewCache")
	db := &DB{log: log}

	if !config.CacheConfigured() {
		log.Info("Cache database not configured, sessions will be kept in memory")
		return *db, nil
	}

	if err := db.initializeCacheDB(config); err != nil {
		return DB{}, log.Err("failed to initialize cache database", err)
	}

	return *db, nil
}

func (s *DB) initializeCacheDB(config config.Config) error {
	log := s.log.Function("initializeCacheDB")
	log.Info("initializing cache database")

	address := config.DatabaseCacheAddress
	port := config.DatabaseCachePort
	if address == "" || port == 0 {
		return log.Errorf("failed to initialize cache database", "address or port is empty")
	}

	client, err := valkey.NewClient(
		valkey.ClientOption{
			InitAddress: []string{fmt.Sprintf("%s:%d", address, port)},
			SelectDB:    SESSION_CACHE_INDEX,
		},
	)
	if err != nil {
		return log.Err("failed to create session valkey client", err)
	}

	s.Cache = Cache{Session: client}

	if config.DatabaseCacheReset == SESSION_CACHE_INDEX {
		go clearCacheDB(s.Cache.Session)
	}

	return nil
}

func clearCacheDB(client CacheClient) {
	log := logger.New("database").File("cache.database").Function("clearCacheDB")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Do(ctx, client.B().Flushdb().Build()).Error(); err != nil {
		log.Er("Failed to clear cache database", err, "index", SESSION_CACHE_INDEX)
		return
	}

	log.Info("Successfully cleared cache database", "index", SESSION_CACHE_INDEX)
}
