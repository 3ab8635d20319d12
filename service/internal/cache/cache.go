// internal/cache/cache.go
package cache

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"time"

	engine "github.com/jason-s-yu/gangoffour/engine"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/blake2b"
)

// KeyPrefix namespaces every cache key written by this package.
const KeyPrefix = "gofour:plays:"

// Entry is the cached result of enumerating and ordering the legal plays of
// one (hand, trick) pair. Plays[0] is always the pass (an empty list).
type Entry struct {
	Plays [][]string `json:"plays"`
	Total int        `json:"total"` // legal plays before truncation to the action width
}

// NewEntry renders ordered plays into their cached form.
func NewEntry(ordered []engine.Play, total int) Entry {
	e := Entry{Plays: make([][]string, len(ordered)), Total: total}
	for i, p := range ordered {
		e.Plays[i] = make([]string, len(p))
		for j, c := range p {
			e.Plays[i][j] = c.String()
		}
	}
	return e
}

// Ordered parses the entry back into plays.
func (e Entry) Ordered() ([]engine.Play, error) {
	out := make([]engine.Play, len(e.Plays))
	for i, cards := range e.Plays {
		if len(cards) == 0 {
			continue
		}
		p := make(engine.Play, len(cards))
		for j, s := range cards {
			c, err := engine.ParseCard(s)
			if err != nil {
				return nil, fmt.Errorf("cached play %d: %w", i, err)
			}
			p[j] = c
		}
		out[i] = p
	}
	return out, nil
}

// Key derives the cache key of a position. Card order within hand and trick
// does not matter.
func Key(hand, trick []engine.Card) string {
	h := slices.Clone(hand)
	t := slices.Clone(trick)
	engine.SortCards(h)
	engine.SortCards(t)
	sum := blake2b.Sum256([]byte(engine.FormatCards(h) + "|" + engine.FormatCards(t)))
	return KeyPrefix + hex.EncodeToString(sum[:])
}

// Cache stores ordered action lists by key.
type Cache interface {
	Get(ctx context.Context, key string) (Entry, bool, error)
	Set(ctx context.Context, key string, e Entry) error
}

// kv is the subset of the go-redis client used here.
type kv interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
}

// Redis is a Cache backed by a Redis server.
type Redis struct {
	client kv
	ttl    time.Duration
}

// NewRedis wraps an existing client.
func NewRedis(client kv, ttl time.Duration) *Redis {
	return &Redis{client: client, ttl: ttl}
}

// Dial connects to the server at url and verifies it answers.
func Dial(ctx context.Context, url string, ttl time.Duration) (*Redis, *redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, nil, fmt.Errorf("parsing redis url: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, nil, fmt.Errorf("pinging redis: %w", err)
	}
	return NewRedis(client, ttl), client, nil
}

func (r *Redis) Get(ctx context.Context, key string) (Entry, bool, error) {
	raw, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return Entry{}, false, nil
	}
	if err != nil {
		return Entry{}, false, fmt.Errorf("redis get %s: %w", key, err)
	}
	var e Entry
	if err := json.Unmarshal(raw, &e); err != nil {
		return Entry{}, false, fmt.Errorf("decoding cached entry: %w", err)
	}
	return e, true, nil
}

func (r *Redis) Set(ctx context.Context, key string, e Entry) error {
	raw, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("encoding entry: %w", err)
	}
	if err := r.client.Set(ctx, key, raw, r.ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

// Nop never stores anything.
type Nop struct{}

func (Nop) Get(context.Context, string) (Entry, bool, error) { return Entry{}, false, nil }
func (Nop) Set(context.Context, string, Entry) error         { return nil }
