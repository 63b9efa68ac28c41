package engine

// HostFunction 宿主函数定义
//
// Fn 必须是 wazero HostFunctionBuilder.WithFunc 接受的 Go 函数，
// 例如 func(ctx context.Context, m api.Module, ptr, len uint32)。
type HostFunction struct {
	Name string
	Fn   interface{}
}

// HostModule 一个导入模块及其函数
type HostModule struct {
	Name      string
	Functions []HostFunction
}

// ImportTable 装载时提供给模块的全部宿主导入
type ImportTable []HostModule

// Names 导入模块名列表
func (t ImportTable) Names() []string {
	names := make([]string, 0, len(t))
	for _, m := range t {
		names = append(names, m.Name)
	}
	return names
}
