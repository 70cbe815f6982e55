// Package migrations 内嵌数据库结构迁移脚本
package migrations

import "embed"

// FS 迁移脚本，文件名格式为 NNNN_name.up.sql / NNNN_name.down.sql
//
//go:embed *.sql
var FS embed.FS
