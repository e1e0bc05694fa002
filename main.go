package main

import (
	"context"
	"flag"
	"time"

	"github.com/khairicode/storebite/internal/app"
)

// @title           Storebite API
// @version         1.0
// @description     Storebite provides product catalog and user account management APIs.
// @license.name    MIT
// @license.url     https://mit-license.org/
// @server          http://localhost:8080
// @securityDefinitions.apikey  BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT.
func main() {
	configPath := flag.String("config", "", "path to the configuration file")
	flag.Parse()

	application := app.New(*configPath)
	wait := application.Start()
	<-wait
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	application.Stop(ctx)
}
