// Package embedded 提供嵌入数据文件的统一访问接口
//
// 由于 Go embed 指令只能嵌入当前包目录及其子目录的文件，
// embed.FS 变量必须声明在项目根目录（embed.go）。
// 本包提供包装函数，让 config 等包可以读取 data/ 下的配置。
//
// 未调用 Init() 时（单元测试、命令行工具直接读取磁盘文件）回退到操作系统文件系统。
package embedded

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

var (
	dataFS      fs.FS
	initialized bool
)

// Init 设置嵌入的数据文件系统
// 应在 main() 开始时、任何配置加载之前调用
func Init(data fs.FS) {
	dataFS = data
	initialized = data != nil
}

// IsInitialized 返回 embedded 包是否已初始化
func IsInitialized() bool {
	return initialized
}

// normalize 标准化路径：正斜杠、去掉 "./" 前缀
func normalize(path string) string {
	path = filepath.ToSlash(path)
	return strings.TrimPrefix(path, "./")
}

// ReadFile 读取文件内容
//
// 已初始化且路径以 "data/" 开头时从嵌入文件系统读取，
// 其余情况直接读取磁盘文件。
func ReadFile(path string) ([]byte, error) {
	p := normalize(path)
	if initialized && strings.HasPrefix(p, "data/") {
		data, err := fs.ReadFile(dataFS, p)
		if err != nil {
			return nil, fmt.Errorf("embedded read %s: %w", p, err)
		}
		return data, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return data, nil
}

// Exists 检查文件是否存在（规则与 ReadFile 相同）
func Exists(path string) bool {
	p := normalize(path)
	if initialized && strings.HasPrefix(p, "data/") {
		_, err := fs.Stat(dataFS, p)
		return err == nil
	}
	_, err := os.Stat(path)
	return err == nil
}
