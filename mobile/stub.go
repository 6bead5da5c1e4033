//go:build !mobile

// stub.go - 非移动端构建时的占位文件
//
// 普通构建不需要 mobile/data 下的配置副本，
// 只有 -tags mobile 时才编译 mobile.go 和 embed.go。
package mobile

// Dummy 空导出函数，让 ./... 在桌面端也能构建本包
func Dummy() {}
