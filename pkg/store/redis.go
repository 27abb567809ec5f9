package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/matzehuels/tabsmith/pkg/cache"
)

// RedisStore keeps each document as a JSON string and tracks IDs in a set.
type RedisStore struct {
	client redis.UniversalClient
	keyer  cache.Keyer
	index  string
}

// NewRedisStore connects to url and verifies the connection. Keys are
// built by keyer; nil means cache.NewDefaultKeyer().
func NewRedisStore(ctx context.Context, url string, keyer cache.Keyer) (*RedisStore, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("connect redis: %w", err)
	}
	return NewRedisStoreFromClient(client, keyer), nil
}

// NewRedisStoreFromClient wraps an existing client.
func NewRedisStoreFromClient(client redis.UniversalClient, keyer cache.Keyer) *RedisStore {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	return &RedisStore{client: client, keyer: keyer, index: keyer.DocumentKey("index")}
}

func (s *RedisStore) Get(ctx context.Context, id string) (*Document, error) {
	var data []byte
	err := cache.RetryWithBackoff(ctx, func() error {
		b, err := s.client.Get(ctx, s.keyer.DocumentKey(id)).Bytes()
		data = b
		return cache.RetryableRedis(err)
	})
	if errors.Is(err, redis.Nil) {
		return nil, notFound(id)
	}
	if err != nil {
		return nil, fmt.Errorf("get document %s: %w", id, err)
	}
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse document %s: %w", id, err)
	}
	return &doc, nil
}

func (s *RedisStore) Put(ctx context.Context, doc *Document) error {
	if err := validate(doc); err != nil {
		return err
	}
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal document: %w", err)
	}
	err = cache.RetryWithBackoff(ctx, func() error {
		_, err := s.client.TxPipelined(ctx, func(p redis.Pipeliner) error {
			p.Set(ctx, s.keyer.DocumentKey(doc.ID), data, 0)
			p.SAdd(ctx, s.index, doc.ID)
			return nil
		})
		return cache.RetryableRedis(err)
	})
	if err != nil {
		return fmt.Errorf("put document %s: %w", doc.ID, err)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, id string) error {
	_, err := s.client.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.Del(ctx, s.keyer.DocumentKey(id))
		p.SRem(ctx, s.index, id)
		return nil
	})
	if err != nil {
		return fmt.Errorf("delete document %s: %w", id, err)
	}
	return nil
}

func (s *RedisStore) List(ctx context.Context) ([]*Document, error) {
	ids, err := s.client.SMembers(ctx, s.index).Result()
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	if len(ids) == 0 {
		return nil, nil
	}
	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = s.keyer.DocumentKey(id)
	}
	vals, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	docs := make([]*Document, 0, len(vals))
	for _, v := range vals {
		str, ok := v.(string)
		if !ok {
			continue
		}
		var doc Document
		if err := json.Unmarshal([]byte(str), &doc); err != nil {
			continue
		}
		docs = append(docs, &doc)
	}
	sortByUpdated(docs)
	return docs, nil
}

func (s *RedisStore) Close() error { return s.client.Close() }

var _ Store = (*RedisStore)(nil)
