package main

import (
	"github.com/privatetune/backend/internal/server"
	"github.com/privatetune/backend/internal/util"
	"github.com/privatetune/backend/pkg/logger"
	"github.com/privatetune/backend/pkg/logger/console"

	_ "github.com/lib/pq"
)

func main() {
	util.LoadEnv()

	debug := util.GetEnvBool("DEBUG", false)

	consoleLogger := console.NewConsoleLogger(console.ConsoleLoggerParams{
		Debug: debug,
	})
	logger.Init(consoleLogger)

	server.Init()
}
