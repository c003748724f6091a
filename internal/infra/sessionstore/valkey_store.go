package sessionstore

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/valkey-io/valkey-go"

	"github.com/yanqian/part-describer/internal/domain/description"
)

// deleteAtScript swaps the entry at ARGV[1] for a unique tombstone and removes
// it, so concurrent deletes never remove the wrong element.
var deleteAtScript = valkey.NewLuaScript(`
local idx = tonumber(ARGV[1])
if idx >= redis.call('LLEN', KEYS[1]) then
  return 0
end
redis.call('LSET', KEYS[1], idx, ARGV[2])
redis.call('LREM', KEYS[1], 1, ARGV[2])
if tonumber(ARGV[3]) > 0 then
  redis.call('PEXPIRE', KEYS[1], ARGV[3])
end
return 1
`)

// ValkeyStore persists session lists in a Valkey-compatible database. Each
// (session, list) pair is one Valkey list that expires after the TTL.
type ValkeyStore struct {
	client valkey.Client
	prefix string
	ttl    time.Duration
}

// NewValkeyStore constructs a new store backed by Valkey.
func NewValkeyStore(client valkey.Client, prefix string, ttl time.Duration) *ValkeyStore {
	if prefix == "" {
		prefix = "describer"
	}
	if ttl > 0 && ttl < time.Millisecond {
		ttl = time.Millisecond
	}
	return &ValkeyStore{client: client, prefix: prefix, ttl: ttl}
}

func (s *ValkeyStore) Push(ctx context.Context, sessionID string, kind description.ListKind, entry description.Entry, limit int) error {
	payload, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	key := s.listKey(sessionID, kind)
	cmds := valkey.Commands{
		s.client.B().Lpush().Key(key).Element(string(payload)).Build(),
	}
	if limit > 0 {
		cmds = append(cmds, s.client.B().Ltrim().Key(key).Start(0).Stop(int64(limit-1)).Build())
	}
	if s.ttl > 0 {
		cmds = append(cmds, s.client.B().Pexpire().Key(key).Milliseconds(s.ttl.Milliseconds()).Build())
	}
	for _, resp := range s.client.DoMulti(ctx, cmds...) {
		if err := resp.Error(); err != nil {
			return err
		}
	}
	return nil
}

func (s *ValkeyStore) List(ctx context.Context, sessionID string, kind description.ListKind) ([]description.Entry, error) {
	resp := s.client.Do(ctx, s.client.B().Lrange().Key(s.listKey(sessionID, kind)).Start(0).Stop(-1).Build())
	raw, err := resp.AsStrSlice()
	if err != nil {
		if valkey.IsValkeyNil(err) {
			return []description.Entry{}, nil
		}
		return nil, err
	}
	out := make([]description.Entry, 0, len(raw))
	for _, payload := range raw {
		var entry description.Entry
		if err := json.Unmarshal([]byte(payload), &entry); err != nil {
			return nil, fmt.Errorf("decode %s entry: %w", kind, err)
		}
		out = append(out, entry)
	}
	return out, nil
}

func (s *ValkeyStore) Delete(ctx context.Context, sessionID string, kind description.ListKind, index int) (bool, error) {
	if index < 0 {
		return false, nil
	}
	tombstone := "deleted:" + uuid.NewString()
	args := []string{
		strconv.Itoa(index),
		tombstone,
		strconv.FormatInt(s.ttl.Milliseconds(), 10),
	}
	removed, err := deleteAtScript.Exec(ctx, s.client, []string{s.listKey(sessionID, kind)}, args).AsInt64()
	if err != nil {
		return false, err
	}
	return removed == 1, nil
}

func (s *ValkeyStore) listKey(sessionID string, kind description.ListKind) string {
	return fmt.Sprintf("%s:%s:%s", s.prefix, sessionID, kind)
}

var _ description.Store = (*ValkeyStore)(nil)
