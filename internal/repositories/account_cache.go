package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sbilibin2017/gw-account-service/internal/logger"
	"github.com/sbilibin2017/gw-account-service/internal/models"
)

const accountKeyPrefix = "account:"

// AccountCacheRepository caches live account rows in Redis.
type AccountCacheRepository struct {
	client *redis.Client
	exp    time.Duration // expiration of cached rows
}

// NewAccountCacheRepository creates a cache whose entries expire after expiration.
func NewAccountCacheRepository(client *redis.Client, expiration time.Duration) *AccountCacheRepository {
	return &AccountCacheRepository{
		client: client,
		exp:    expiration,
	}
}

func accountKey(identifier string) string {
	return accountKeyPrefix + identifier
}

// Get returns the cached row for identifier, or nil on a cache miss.
func (r *AccountCacheRepository) Get(ctx context.Context, identifier string) (*models.AccountDB, error) {
	key := accountKey(identifier)

	val, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			logger.Log.Infow("cache miss", "key", key)
			return nil, nil
		}
		logger.Log.Infow("cache get", "key", key, "error", err)
		return nil, err
	}

	var account models.AccountDB
	if err := json.Unmarshal(val, &account); err != nil {
		logger.Log.Infow("cache decode", "key", key, "error", err)
		return nil, err
	}

	logger.Log.Infow("cache hit", "key", key)
	return &account, nil
}

// Set stores the row under its identifier.
func (r *AccountCacheRepository) Set(ctx context.Context, account *models.AccountDB) error {
	key := accountKey(account.Identifier)

	data, err := json.Marshal(account)
	if err != nil {
		return err
	}

	err = r.client.Set(ctx, key, data, r.exp).Err()
	logger.Log.Infow("cache set", "key", key, "ttl", r.exp, "error", err)
	return err
}

// Delete evicts the row cached for identifier.
func (r *AccountCacheRepository) Delete(ctx context.Context, identifier string) error {
	key := accountKey(identifier)

	err := r.client.Del(ctx, key).Err()
	logger.Log.Infow("cache delete", "key", key, "error", err)
	return err
}
