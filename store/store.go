package store

// 注意：此包只包含实现，接口定义在 core 包。
// 使用 core.SnapshotStore 接口。
//
// 示例：
//   var s core.SnapshotStore = NewMemoryStore()
//   rs, err := NewRedisStore("localhost:6379", 0)
