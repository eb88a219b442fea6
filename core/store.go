package core

import "context"

// SnapshotStore 是目录与交互日志的领域接口。
//
// 设计原则：
//   - 定义在领域层（core），由基础设施层（store）实现
//   - 遵循依赖倒置原则：领域层定义接口，基础设施层实现接口
//   - 引擎视角下存储只读：整表快照读取，无过滤、无分页、无增量
//
// 实现：
//   - store.MemoryStore 实现此接口（测试/开发/原型）
//   - store.RedisStore 实现此接口（生产）
type SnapshotStore interface {
	// Name 返回存储后端名称（用于日志/监控）
	Name() string

	// FetchAllProducts 读取完整目录快照
	FetchAllProducts(ctx context.Context) ([]Product, error)

	// FetchAllInteractions 读取完整交互日志快照
	FetchAllInteractions(ctx context.Context) ([]Interaction, error)

	// Close 关闭连接/释放资源
	Close() error
}

// Store 错误定义（使用统一的 DomainError）
var (
	// ErrStoreNotFound 表示 key 不存在
	ErrStoreNotFound = NewDomainError(ModuleStore, ErrorCodeNotFound, "store: key not found")

	// ErrStoreUnavailable 表示存储连接/读取失败。
	// 对单次请求是致命错误：向 facade 传播，由 facade 转成通用服务端错误。
	ErrStoreUnavailable = NewDomainError(ModuleStore, ErrorCodeUnavailable, "store: unavailable")
)
