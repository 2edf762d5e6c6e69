package cache_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/nguyentunghieu19/nhom7-ptdacntt/internal/cache"
	"github.com/nguyentunghieu19/nhom7-ptdacntt/internal/config"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type unitEntry struct {
	Code int    `json:"code"`
	Name string `json:"name"`
}

func setupRedis(t *testing.T) (cache.Cache, redismock.ClientMock) {
	t.Helper()

	client, mock := redismock.NewClientMock()
	cfg := &config.CacheConfig{
		DefaultTTL: 10 * time.Minute,
	}

	return cache.NewRedisCache(client, cfg), mock
}

func TestRedisGet(t *testing.T) {
	ctx := context.Background()
	testKey := cache.Key(cache.ProvinceKeyPrefix, "all")
	testValue := []unitEntry{{Code: 1, Name: "Thành phố Hà Nội"}}
	jsonData, err := json.Marshal(testValue)
	require.NoError(t, err)

	t.Run("Success - Key Found", func(t *testing.T) {
		// Arrange
		redisCache, mock := setupRedis(t)

		var result []unitEntry

		mock.ExpectGet(testKey).SetVal(string(jsonData))

		// Act
		found, err := redisCache.Get(ctx, testKey, &result)

		// Assert
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, testValue, result)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Success - Key Not Found (Cache Miss)", func(t *testing.T) {
		// Arrange
		redisCache, mock := setupRedis(t)

		var result []unitEntry

		mock.ExpectGet(testKey).SetErr(redis.Nil)

		// Act
		found, err := redisCache.Get(ctx, testKey, &result)

		// Assert
		require.NoError(t, err, "a cache miss is not an error")
		assert.False(t, found)
		assert.Empty(t, result)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - Redis Error", func(t *testing.T) {
		// Arrange
		redisCache, mock := setupRedis(t)

		var result []unitEntry

		mock.ExpectGet(testKey).SetErr(errors.New("redis connection error"))

		// Act
		found, err := redisCache.Get(ctx, testKey, &result)

		// Assert
		assert.Error(t, err)
		assert.False(t, found)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - Corrupt Entry", func(t *testing.T) {
		// Arrange
		redisCache, mock := setupRedis(t)

		var result []unitEntry

		mock.ExpectGet(testKey).SetVal("{not json")

		// Act
		found, err := redisCache.Get(ctx, testKey, &result)

		// Assert
		assert.Error(t, err)
		assert.False(t, found)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRedisSet(t *testing.T) {
	ctx := context.Background()
	testKey := cache.Key(cache.DistrictKeyPrefix, "1")
	testValue := []unitEntry{{Code: 5, Name: "Quận Ba Đình"}}
	jsonData, err := json.Marshal(testValue)
	require.NoError(t, err)

	t.Run("Success - Explicit TTL", func(t *testing.T) {
		// Arrange
		redisCache, mock := setupRedis(t)
		mock.ExpectSet(testKey, jsonData, time.Hour).SetVal("OK")

		// Act
		err := redisCache.Set(ctx, testKey, testValue, time.Hour)

		// Assert
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Success - Zero TTL Falls Back To The Default", func(t *testing.T) {
		// Arrange
		redisCache, mock := setupRedis(t)
		mock.ExpectSet(testKey, jsonData, 10*time.Minute).SetVal("OK")

		// Act
		err := redisCache.Set(ctx, testKey, testValue, 0)

		// Assert
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - Redis Error", func(t *testing.T) {
		// Arrange
		redisCache, mock := setupRedis(t)
		mock.ExpectSet(testKey, jsonData, time.Hour).SetErr(errors.New("redis write error"))

		// Act
		err := redisCache.Set(ctx, testKey, testValue, time.Hour)

		// Assert
		assert.Error(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRedisDelete(t *testing.T) {
	ctx := context.Background()
	testKey := cache.Key(cache.WardKeyPrefix, "5")

	t.Run("Success", func(t *testing.T) {
		// Arrange
		redisCache, mock := setupRedis(t)
		mock.ExpectDel(testKey).SetVal(1)

		// Act
		err := redisCache.Delete(ctx, testKey)

		// Assert
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - Redis Error", func(t *testing.T) {
		// Arrange
		redisCache, mock := setupRedis(t)
		mock.ExpectDel(testKey).SetErr(errors.New("redis delete error"))

		// Act
		err := redisCache.Delete(ctx, testKey)

		// Assert
		assert.Error(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
