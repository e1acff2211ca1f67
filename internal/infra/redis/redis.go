package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"vidshare-go/internal/config"
	"vidshare-go/pkg/logger"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

var Client *redis.Client

// ErrCacheMiss 缓存未命中
var ErrCacheMiss = errors.New("cache miss")

// Init 初始化Redis客户端
func Init(cfg *config.RedisConfig) error {
	Client = redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
		PoolSize: cfg.PoolSize,
	})

	// 测试连接
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := Client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("failed to ping redis: %w", err)
	}

	logger.Info("Redis connected",
		zap.String("addr", cfg.Addr()),
		zap.Int("db", cfg.DB),
		zap.Int("pool_size", cfg.PoolSize),
	)

	return nil
}

// Close 关闭Redis连接
func Close() error {
	if Client == nil {
		return nil
	}
	logger.Info("Redis connection closed")
	return Client.Close()
}

// Get 获取Redis客户端实例
func Get() *redis.Client {
	return Client
}

// GetJSON 读取 JSON 缓存，未命中返回 ErrCacheMiss
func GetJSON(ctx context.Context, key string, dst any) error {
	if Client == nil {
		return ErrCacheMiss
	}
	data, err := Client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return ErrCacheMiss
	}
	if err != nil {
		return err
	}
	return json.Unmarshal(data, dst)
}

// SetJSON 写入 JSON 缓存
func SetJSON(ctx context.Context, key string, val any, ttl time.Duration) error {
	if Client == nil {
		return nil
	}
	data, err := json.Marshal(val)
	if err != nil {
		return err
	}
	return Client.Set(ctx, key, data, ttl).Err()
}

// DeleteByPrefix 删除指定前缀的所有键
func DeleteByPrefix(ctx context.Context, prefix string) error {
	if Client == nil {
		return nil
	}
	iter := Client.Scan(ctx, 0, prefix+"*", 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	return Client.Del(ctx, keys...).Err()
}

// MarkOnce 首次写入 key 返回 true，已存在返回 false（用于消息去重）
func MarkOnce(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	if Client == nil {
		return true, nil
	}
	return Client.SetNX(ctx, key, 1, ttl).Result()
}

// Unmark 处理失败时撤销去重标记，允许重投
func Unmark(ctx context.Context, key string) error {
	if Client == nil {
		return nil
	}
	return Client.Del(ctx, key).Err()
}
