package store

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/go-redis/redis/v8"

	"postpilot/internal/slot"
	logx "postpilot/pkg/logx"
)

// redisStore keeps one hash per platform (field = "hour:dow", value = JSON
// slot) plus a set listing known platforms so Load can enumerate them.
type redisStore struct {
	client *redis.Client
	log    logx.Logger
	prefix string
}

func openRedis(cfg Config, log logx.Logger) (Store, error) {
	if strings.TrimSpace(cfg.Addr) == "" {
		return nil, errors.New("store.addr is required for redis driver")
	}
	prefix := strings.TrimSpace(cfg.KeyPrefix)
	if prefix == "" {
		prefix = "postpilot"
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(context.Background()).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}
	return &redisStore{client: client, log: log, prefix: prefix}, nil
}

func (s *redisStore) platformsKey() string { return s.prefix + ":platforms" }

func (s *redisStore) slotsKey(platform string) string {
	return s.prefix + ":slots:" + platform
}

func (s *redisStore) Load(ctx context.Context) (slot.Grid, error) {
	if s == nil || s.client == nil {
		return nil, ErrDisabled
	}

	platforms, err := s.client.SMembers(ctx, s.platformsKey()).Result()
	if err != nil {
		return nil, err
	}

	g := slot.Grid{}
	for _, platform := range platforms {
		fields, err := s.client.HGetAll(ctx, s.slotsKey(platform)).Result()
		if err != nil {
			return nil, err
		}
		for rawKey, rawSlot := range fields {
			key, err := slot.ParseKey(rawKey)
			if err != nil {
				s.log.Warn("skipping malformed slot field", logx.String("platform", platform), logx.Err(err))
				continue
			}
			var sl slot.Slot
			if err := json.Unmarshal([]byte(rawSlot), &sl); err != nil {
				s.log.Warn("skipping undecodable slot", logx.String("platform", platform), logx.String("key", rawKey), logx.Err(err))
				continue
			}
			sl.Platform = platform
			sl.Hour = key.Hour
			sl.Weekday = key.Weekday
			g.Put(&sl)
		}
	}
	return g, nil
}

func (s *redisStore) Save(ctx context.Context, g slot.Grid) error {
	if s == nil || s.client == nil {
		return ErrDisabled
	}

	pipe := s.client.TxPipeline()
	for platform, slots := range g {
		fields := make(map[string]interface{}, len(slots))
		for key, sl := range slots {
			b, err := json.Marshal(sl)
			if err != nil {
				return err
			}
			fields[key.Encode()] = b
		}
		if len(fields) == 0 {
			continue
		}
		pipe.HSet(ctx, s.slotsKey(platform), fields)
		pipe.SAdd(ctx, s.platformsKey(), platform)
	}
	_, err := pipe.Exec(ctx)
	return err
}

func (s *redisStore) Close() error {
	if s == nil || s.client == nil {
		return nil
	}
	return s.client.Close()
}
