// Package memory 提供基于BigCache的内存缓存实现
package memory

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/allegro/bigcache/v3"

	memoryconfig "github.com/weisyn/hellocontract/internal/config/storage/memory"
	"github.com/weisyn/hellocontract/pkg/interfaces/infrastructure/log"
	storage "github.com/weisyn/hellocontract/pkg/interfaces/infrastructure/storage"
)

// 每个条目前缀 8 字节过期时间（UnixNano，0 表示只受缓存生命周期约束）
const expiryHeaderSize = 8

// Store 实现了MemoryStore接口，基于BigCache提供内存缓存功能
type Store struct {
	cache  *bigcache.BigCache
	logger log.Logger
	mutex  sync.RWMutex
	closed bool
	now    func() time.Time
}

var _ storage.MemoryStore = (*Store)(nil)

// New 创建BigCache内存缓存
func New(config *memoryconfig.Config, logger log.Logger) (*Store, error) {
	bigCacheConfig := bigcache.DefaultConfig(config.GetDefaultTTL())
	bigCacheConfig.Shards = config.GetShards()
	bigCacheConfig.MaxEntriesInWindow = config.GetMaxEntries()
	bigCacheConfig.MaxEntrySize = config.GetMaxEntrySize()
	bigCacheConfig.CleanWindow = config.GetCleanupInterval()
	bigCacheConfig.Verbose = false

	cache, err := bigcache.New(context.Background(), bigCacheConfig)
	if err != nil {
		return nil, fmt.Errorf("创建BigCache实例失败: %w", err)
	}

	return &Store{
		cache:  cache,
		logger: logger,
		now:    time.Now,
	}, nil
}

// Close 关闭缓存并释放资源
func (s *Store) Close() error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if s.closed {
		return nil
	}
	if err := s.cache.Close(); err != nil {
		return err
	}
	s.closed = true
	return nil
}

// Get 获取缓存值；过期条目视为不存在并被清理
func (s *Store) Get(ctx context.Context, key string) ([]byte, bool, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	raw, err := s.cache.Get(key)
	if err != nil {
		if errors.Is(err, bigcache.ErrEntryNotFound) {
			return nil, false, nil
		}
		if s.logger != nil {
			s.logger.Warnf("获取缓存键[%s]失败: %v", key, err)
		}
		return nil, false, err
	}
	if len(raw) < expiryHeaderSize {
		return nil, false, fmt.Errorf("缓存条目[%s]已损坏", key)
	}

	expiry := int64(binary.LittleEndian.Uint64(raw[:expiryHeaderSize]))
	if expiry != 0 && s.now().UnixNano() > expiry {
		_ = s.cache.Delete(key)
		return nil, false, nil
	}

	value := make([]byte, len(raw)-expiryHeaderSize)
	copy(value, raw[expiryHeaderSize:])
	return value, true, nil
}

// Set 设置缓存值，可指定过期时间
func (s *Store) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	var expiry int64
	if ttl > 0 {
		expiry = s.now().Add(ttl).UnixNano()
	}
	entry := make([]byte, expiryHeaderSize+len(value))
	binary.LittleEndian.PutUint64(entry[:expiryHeaderSize], uint64(expiry))
	copy(entry[expiryHeaderSize:], value)

	if err := s.cache.Set(key, entry); err != nil {
		if s.logger != nil {
			s.logger.Warnf("设置缓存键[%s]失败: %v", key, err)
		}
		return err
	}
	return nil
}

// Delete 删除指定键的缓存
func (s *Store) Delete(ctx context.Context, key string) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if err := s.cache.Delete(key); err != nil && !errors.Is(err, bigcache.ErrEntryNotFound) {
		return err
	}
	return nil
}

// Exists 检查键是否存在
func (s *Store) Exists(ctx context.Context, key string) (bool, error) {
	_, ok, err := s.Get(ctx, key)
	return ok, err
}

// Clear 清空所有缓存
func (s *Store) Clear(ctx context.Context) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if err := s.cache.Reset(); err != nil {
		return err
	}
	return nil
}

// Count 获取当前缓存中的条目数量（含尚未被访问清理的过期条目）
func (s *Store) Count(ctx context.Context) (int64, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return int64(s.cache.Len()), nil
}
