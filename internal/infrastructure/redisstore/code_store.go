package redisstore

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/oksasatya/foodshare/internal/domain/entity"
	"github.com/oksasatya/foodshare/internal/domain/repository"
	"github.com/oksasatya/foodshare/pkg/helpers"
)

// CodeStore keeps verification records as JSON under auth:code:<phone>.
type CodeStore struct {
	rdb *redis.Client
}

func NewCodeStore(rdb *redis.Client) *CodeStore {
	return &CodeStore{rdb: rdb}
}

func keyCode(phone string) string { return "auth:code:" + phone }

func (s *CodeStore) Save(ctx context.Context, rec entity.VerificationRecord, retain time.Duration) error {
	if err := helpers.RedisSetJSON(ctx, s.rdb, keyCode(rec.Phone), rec, retain); err != nil {
		return fmt.Errorf("save code: %w", err)
	}
	return nil
}

func (s *CodeStore) Get(ctx context.Context, phone string) (*entity.VerificationRecord, error) {
	var rec entity.VerificationRecord
	ok, err := helpers.RedisGetJSON(ctx, s.rdb, keyCode(phone), &rec)
	if err != nil {
		return nil, fmt.Errorf("get code: %w", err)
	}
	if !ok {
		return nil, nil
	}
	return &rec, nil
}

// compare-and-delete on the stored record's code
var deleteIfCode = redis.NewScript(`
local v = redis.call('GET', KEYS[1])
if not v then return 0 end
local ok, rec = pcall(cjson.decode, v)
if not ok or rec.code ~= ARGV[1] then return 0 end
return redis.call('DEL', KEYS[1])
`)

// Delete runs as one script so that only one of two racing verifiers wins
// and a freshly issued code is left alone.
func (s *CodeStore) Delete(ctx context.Context, phone, code string) (bool, error) {
	n, err := deleteIfCode.Run(ctx, s.rdb, []string{keyCode(phone)}, code).Int64()
	if err != nil {
		return false, fmt.Errorf("delete code: %w", err)
	}
	return n > 0, nil
}

var _ repository.CodeStore = (*CodeStore)(nil)
