// Package main 运维命令行入口
package main

import "task-prompt-api/cmd/taskctl/root"

func main() {
	root.Execute()
}
