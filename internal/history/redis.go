package history

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/polyglot/api/internal/database"
	"github.com/polyglot/api/internal/models"
	"github.com/redis/go-redis/v9"
)

// RedisStore keeps one capped list per owner, newest at the head
type RedisStore struct {
	rdb *database.Redis
}

func NewRedisStore(rdb *database.Redis) *RedisStore {
	return &RedisStore{rdb: rdb}
}

func historyKey(owner string) string {
	return "history:" + owner
}

// appendScript removes any entry with the same ID, pushes the new payload
// and trims the list in one server-side step.
var appendScript = redis.NewScript(`
local items = redis.call('LRANGE', KEYS[1], 0, -1)
for _, item in ipairs(items) do
	local ok, decoded = pcall(cjson.decode, item)
	if ok and type(decoded) == 'table' and decoded['id'] == ARGV[1] then
		redis.call('LREM', KEYS[1], 0, item)
	end
end
redis.call('LPUSH', KEYS[1], ARGV[2])
redis.call('LTRIM', KEYS[1], 0, tonumber(ARGV[3]) - 1)
return 1
`)

func (s *RedisStore) Append(ctx context.Context, owner string, entry models.HistoryEntry) error {
	payload, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("encode entry: %w", err)
	}

	err = appendScript.Run(ctx, s.rdb.Client(), []string{historyKey(owner)}, entry.ID, payload, MaxEntries).Err()
	if err != nil {
		return fmt.Errorf("append entry: %w", err)
	}
	return nil
}

func (s *RedisStore) List(ctx context.Context, owner string, filter Filter) ([]models.HistoryEntry, error) {
	raw, err := s.rdb.Client().LRange(ctx, historyKey(owner), 0, MaxEntries-1).Result()
	if err != nil {
		return nil, err
	}

	entries := make([]models.HistoryEntry, 0, len(raw))
	for _, item := range raw {
		var e models.HistoryEntry
		if err := json.Unmarshal([]byte(item), &e); err != nil {
			return nil, fmt.Errorf("decode entry: %w", err)
		}
		entries = append(entries, e)
	}
	return apply(entries, filter), nil
}

func (s *RedisStore) Delete(ctx context.Context, owner, id string) error {
	key := historyKey(owner)
	raw, err := s.rdb.Client().LRange(ctx, key, 0, -1).Result()
	if err != nil {
		return err
	}

	for _, item := range raw {
		var e models.HistoryEntry
		if err := json.Unmarshal([]byte(item), &e); err != nil {
			continue
		}
		if e.ID != id {
			continue
		}
		removed, err := s.rdb.Client().LRem(ctx, key, 1, item).Result()
		if err != nil {
			return err
		}
		if removed == 0 {
			return ErrNotFound
		}
		return nil
	}
	return ErrNotFound
}

func (s *RedisStore) Clear(ctx context.Context, owner string) error {
	return s.rdb.Client().Del(ctx, historyKey(owner)).Err()
}

func (s *RedisStore) Ping(ctx context.Context) error {
	return s.rdb.Ping(ctx)
}

func (s *RedisStore) Close() error {
	return s.rdb.Close()
}
