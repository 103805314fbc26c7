// bookstorectl 书店管理命令行
//
// 直接访问数据文件，不经过HTTP服务：
//
//	bookstorectl init
//	bookstorectl books add --name Dune --author "Frank Herbert" --copies 3
//	bookstorectl orders checkout 12
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
