package main

import (
	"seatwise/config"
	"seatwise/di"
	"seatwise/shared/logger"
)

func main() {
	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)

	http := di.InitializeService()
	http.Serve()
}
