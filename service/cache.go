package service

import (
	"hash/fnv"
	"strconv"
	"sync"
	"time"

	"github.com/rushteam/hybridrec/core"
	"github.com/rushteam/hybridrec/model"
)

// signalCache 是快照级的已训练信号缓存。
//
// 失效规则：key 是整份快照（目录 + 交互表）的哈希，任何一条数据变化
// 都会换 key，旧条目自然失效；TTL 提供时间上界，防止哈希碰撞长期困住
// 一个过期模型。单写多读：RWMutex。
//
// 只缓存一份（最新快照）：引擎的契约是"始终反映最新数据"，
// 历史快照的模型没有复用价值。
type signalCache struct {
	mu  sync.RWMutex
	ttl time.Duration

	key        uint64
	vectorizer *model.TFIDFVectorizer
	predictor  *model.SVDModel
	expiresAt  time.Time
}

func newSignalCache(ttl time.Duration) *signalCache {
	return &signalCache{ttl: ttl}
}

func (c *signalCache) get(key uint64) (*model.TFIDFVectorizer, *model.SVDModel, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.vectorizer == nil || c.key != key || time.Now().After(c.expiresAt) {
		return nil, nil, false
	}
	return c.vectorizer, c.predictor, true
}

func (c *signalCache) put(key uint64, vec *model.TFIDFVectorizer, svd *model.SVDModel) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.key = key
	c.vectorizer = vec
	c.predictor = svd
	c.expiresAt = time.Now().Add(c.ttl)
}

// snapshotHash 计算整份快照的 FNV-1a 哈希。
// 遍历顺序与存储层返回顺序一致，快照内容相同且顺序相同才命中。
func snapshotHash(products []core.Product, interactions []core.Interaction) uint64 {
	h := fnv.New64a()
	sep := []byte{0}

	for _, p := range products {
		h.Write([]byte(p.ID))
		h.Write(sep)
		h.Write([]byte(p.Description))
		h.Write(sep)
		for _, f := range p.Features {
			h.Write([]byte(f))
			h.Write(sep)
		}
		h.Write([]byte(strconv.FormatFloat(p.Rating, 'g', -1, 64)))
		h.Write(sep)
	}
	for _, in := range interactions {
		h.Write([]byte(in.UserID))
		h.Write(sep)
		h.Write([]byte(in.ProductID))
		h.Write(sep)
		h.Write([]byte(strconv.FormatFloat(in.Value, 'g', -1, 64)))
		h.Write(sep)
	}
	return h.Sum64()
}
