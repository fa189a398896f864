package main

import (
	"log"
	"os"

	"github.com/urfave/cli/v2"
)

func main() {
	app := cli.NewApp()
	app.Name = "vibevent"
	app.Usage = "Campus events API with realtime notifications"
	app.Action = serve
	app.Commands = []*cli.Command{
		{
			Action:      serve,
			Name:        "serve",
			Usage:       "Start the HTTP API and push gateway",
			Description: `Connects to the database, migrates the schema and serves /api, /ws and /health.`,
		},
		{
			Action:      migrate,
			Name:        "migrate",
			Usage:       "Run database migrations and exit",
			Description: `Runs gorm AutoMigrate for every entity and checks the unique indexes.`,
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
