package badger

const (
	defaultPath = ""

	// defaultInMemory 默认内存模式，对应 Memory 存储
	defaultInMemory = true

	defaultSyncWrites = false

	// defaultMemTableSize 内存模式下 badger 的 memtable 直接占用堆，取 16MB
	defaultMemTableSize = 16 << 20
)
