package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/bivex/school-access/internal/domain/evaluator"
)

const (
	keyStatusView = "subscription:view:%s"
	ttlStatusView = 30 * time.Second
)

// setIfNewerScript applies a write only when its sequence number is at
// least as new as the stored one, so an evaluation computed from a
// stale fetch can never overwrite a newer one ("latest fetch wins").
// Sequences travel as decimal strings and are compared by length, then
// lexicographically; Lua numbers are doubles and would collapse
// nanosecond sequences above 2^53.
var setIfNewerScript = redis.NewScript(`
local cur = redis.call('GET', KEYS[1])
if cur then
  local ok, decoded = pcall(cjson.decode, cur)
  if ok and type(decoded) == 'table' and type(decoded.seq) == 'string' then
    local stored = decoded.seq
    if #stored > #ARGV[2] or (#stored == #ARGV[2] and stored > ARGV[2]) then
      return 0
    end
  end
end
redis.call('SET', KEYS[1], ARGV[1], 'PX', ARGV[3])
return 1
`)

// CachedView is an evaluated snapshot with its fetch sequence. Seq is
// serialized as a string so the guard script never parses it as a float.
type CachedView struct {
	Seq      uint64             `json:"seq,string"`
	Snapshot evaluator.Snapshot `json:"snapshot"`
	View     evaluator.View     `json:"view"`
}

// StatusCache keeps the last evaluated subscription view per school
type StatusCache struct {
	client *redis.Client
	logger *zap.Logger
}

// NewStatusCache creates a new status cache
func NewStatusCache(client *redis.Client, logger *zap.Logger) *StatusCache {
	return &StatusCache{
		client: client,
		logger: logger,
	}
}

// Set stores an evaluated snapshot and view unless a newer sequence is
// already cached. Returns true if the write was applied.
func (c *StatusCache) Set(ctx context.Context, schoolID uuid.UUID, snap evaluator.Snapshot, view evaluator.View, seq uint64) (bool, error) {
	key := fmt.Sprintf(keyStatusView, schoolID)

	data, err := json.Marshal(CachedView{Seq: seq, Snapshot: snap, View: view})
	if err != nil {
		return false, fmt.Errorf("failed to marshal view: %w", err)
	}

	applied, err := setIfNewerScript.Run(ctx, c.client, []string{key},
		data, strconv.FormatUint(seq, 10), ttlStatusView.Milliseconds()).Int()
	if err != nil {
		return false, fmt.Errorf("failed to set status view: %w", err)
	}

	if applied == 0 {
		c.logger.Debug("stale status view dropped",
			zap.String("school_id", schoolID.String()),
			zap.Uint64("seq", seq),
		)
		return false, nil
	}
	return true, nil
}

// Get retrieves the last cached view for a school
func (c *StatusCache) Get(ctx context.Context, schoolID uuid.UUID) (*CachedView, error) {
	key := fmt.Sprintf(keyStatusView, schoolID)

	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get status view: %w", err)
	}

	var cached CachedView
	if err := json.Unmarshal(data, &cached); err != nil {
		return nil, fmt.Errorf("failed to unmarshal status view: %w", err)
	}

	return &cached, nil
}

// Invalidate drops the cached view, forcing the next read to re-evaluate
func (c *StatusCache) Invalidate(ctx context.Context, schoolID uuid.UUID) error {
	key := fmt.Sprintf(keyStatusView, schoolID)
	if err := c.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("failed to invalidate status view: %w", err)
	}
	return nil
}
