package store

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/rushteam/hybridrec/core"
)

// MemoryStore 是内存实现的 SnapshotStore，用于测试/开发/原型。
// 支持从 JSONL 文件灌入种子数据（与线上导出的 *_final.json 格式一致），
// 进程重启后数据丢失。
type MemoryStore struct {
	mu           sync.RWMutex
	products     []core.Product
	interactions []core.Interaction
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) Name() string { return "memory" }

func (m *MemoryStore) FetchAllProducts(_ context.Context) ([]core.Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]core.Product, len(m.products))
	copy(out, m.products)
	return out, nil
}

func (m *MemoryStore) FetchAllInteractions(_ context.Context) ([]core.Interaction, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]core.Interaction, len(m.interactions))
	copy(out, m.interactions)
	return out, nil
}

// AddProduct 追加商品。ID 为空时以 ProductID 充当存储层主键。
func (m *MemoryStore) AddProduct(p core.Product) {
	if p.ID == "" {
		p.ID = p.ProductID
	}
	m.mu.Lock()
	m.products = append(m.products, p)
	m.mu.Unlock()
}

// AddInteraction 追加交互记录。
func (m *MemoryStore) AddInteraction(in core.Interaction) {
	m.mu.Lock()
	m.interactions = append(m.interactions, in)
	m.mu.Unlock()
}

// Seed 批量灌入快照数据（覆盖已有数据）。
func (m *MemoryStore) Seed(products []core.Product, interactions []core.Interaction) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.products = make([]core.Product, 0, len(products))
	for _, p := range products {
		if p.ID == "" {
			p.ID = p.ProductID
		}
		m.products = append(m.products, p)
	}
	m.interactions = make([]core.Interaction, len(interactions))
	copy(m.interactions, interactions)
}

// LoadProductsJSONL 从 JSONL 文件加载商品（每行一个 JSON 对象）。
// 交互引用未知商品是数据侧问题，这里不做校验，画像构建时会静默丢弃。
func (m *MemoryStore) LoadProductsJSONL(path string) (int, error) {
	count := 0
	err := readJSONL(path, func(line []byte) error {
		var p core.Product
		if err := json.Unmarshal(line, &p); err != nil {
			return err
		}
		m.AddProduct(p)
		count++
		return nil
	})
	return count, err
}

// LoadInteractionsJSONL 从 JSONL 文件加载交互日志。
func (m *MemoryStore) LoadInteractionsJSONL(path string) (int, error) {
	count := 0
	err := readJSONL(path, func(line []byte) error {
		var in core.Interaction
		if err := json.Unmarshal(line, &in); err != nil {
			return err
		}
		m.AddInteraction(in)
		count++
		return nil
	})
	return count, err
}

func (m *MemoryStore) Close() error { return nil }

func readJSONL(path string, handle func(line []byte) error) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		if err := handle(line); err != nil {
			return fmt.Errorf("%s line %d: %w", path, lineNo, err)
		}
	}
	return scanner.Err()
}

// 确保 MemoryStore 实现了 core.SnapshotStore 接口
var _ core.SnapshotStore = (*MemoryStore)(nil)
