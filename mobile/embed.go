//go:build mobile

// embed.go - 移动端配置嵌入声明
//
// 此文件仅在使用 -tags mobile 构建时编译。
// 构建前需要把 data/ice_deathmatch.yaml 与 data/maps.yaml 复制到 mobile/data/：
//
//	mkdir -p mobile/data && cp data/*.yaml mobile/data/
//	go build -tags mobile ./mobile
package mobile

import "embed"

//go:embed data/ice_deathmatch.yaml data/maps.yaml
var dataFS embed.FS
