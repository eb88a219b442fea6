package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/redis/go-redis/v9"

	"github.com/rushteam/hybridrec/core"
)

// Redis 键布局：
//   - 商品：Hash，field = Product.ID，value = JSON
//   - 交互：List，每个元素一条 JSON（追加写，保序）
const (
	redisProductsKey     = "catalog:products"
	redisInteractionsKey = "catalog:interactions"
)

// RedisStore 是 Redis 实现的 SnapshotStore。
// 生产环境常用，支持持久化、集群、哨兵等。
// 引擎侧只读；写入（SaveProduct / AppendInteraction）供灌数工具使用。
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(addr string, db int) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr: addr,
		DB:   db,
	})
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrStoreUnavailable, err)
	}
	return &RedisStore{client: client}, nil
}

func (r *RedisStore) Name() string { return "redis" }

// FetchAllProducts 读取完整目录。HGetAll 返回无序 map，
// 这里按 Product.ID 排序，保证快照遍历顺序稳定（确定性契约依赖它）。
func (r *RedisStore) FetchAllProducts(ctx context.Context) ([]core.Product, error) {
	fields, err := r.client.HGetAll(ctx, redisProductsKey).Result()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrStoreUnavailable, err)
	}

	out := make([]core.Product, 0, len(fields))
	for id, raw := range fields {
		var p core.Product
		if err := json.Unmarshal([]byte(raw), &p); err != nil {
			return nil, fmt.Errorf("decode product %s: %w", id, err)
		}
		if p.ID == "" {
			p.ID = id
		}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *RedisStore) FetchAllInteractions(ctx context.Context) ([]core.Interaction, error) {
	rows, err := r.client.LRange(ctx, redisInteractionsKey, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrStoreUnavailable, err)
	}

	out := make([]core.Interaction, 0, len(rows))
	for i, raw := range rows {
		var in core.Interaction
		if err := json.Unmarshal([]byte(raw), &in); err != nil {
			return nil, fmt.Errorf("decode interaction #%d: %w", i, err)
		}
		out = append(out, in)
	}
	return out, nil
}

// SaveProduct 写入/覆盖一个商品（灌数工具使用）。
func (r *RedisStore) SaveProduct(ctx context.Context, p core.Product) error {
	if p.ID == "" {
		p.ID = p.ProductID
	}
	data, err := json.Marshal(p)
	if err != nil {
		return err
	}
	return r.client.HSet(ctx, redisProductsKey, p.ID, data).Err()
}

// AppendInteraction 追加一条交互记录（灌数工具使用）。
func (r *RedisStore) AppendInteraction(ctx context.Context, in core.Interaction) error {
	data, err := json.Marshal(in)
	if err != nil {
		return err
	}
	return r.client.RPush(ctx, redisInteractionsKey, data).Err()
}

func (r *RedisStore) Close() error {
	return r.client.Close()
}

// 确保 RedisStore 实现了 core.SnapshotStore 接口
var _ core.SnapshotStore = (*RedisStore)(nil)
