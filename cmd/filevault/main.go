// Package main 启动应用程序
package main

import (
	"os"

	"github.com/yeisme/filevault/pkg/cmd"
)

//	@title			FileVault API
//	@version		1.0
//	@description	FileVault 是一个文件元数据登记服务，提供用户注册、会话令牌、文件与目录记录管理以及内容下载。

//	@license.name	MIT
//	@license.url	https://opensource.org/license/mit/

//	@contact.name	yeisme
//	@contact.email	yefun2004@gmail.com.

//	@securityDefinitions.apikey	TokenAuth
//	@in							header
//	@name						X-Token

//	@securityDefinitions.basic	BasicAuth

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
