package main

import (
	"context"
	"log"
	"os"

	"github.com/shelfkeeper/shelfkeeper/internal/buildinfo"
	"github.com/shelfkeeper/shelfkeeper/internal/client/cli"
	"github.com/shelfkeeper/shelfkeeper/internal/client/config"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()
	app, err := cli.NewApp(cfg)

	if err != nil {
		log.Fatalf("%v", err)
		return
	}

	app.Run(ctx)

}
