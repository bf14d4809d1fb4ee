// Command seed prepares and inspects a directory record store: it creates
// the administrator account, loads demo data and exports collections to
// flat files.
package main

import (
	"log"
	"os"

	"github.com/urfave/cli/v2"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "seed",
		Usage: "Seed and export the local business directory store",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
			&cli.StringFlag{
				Name:    "store-driver",
				Usage:   "Record store driver (file, memory, badger, redis, postgres); defaults to STORE_DRIVER",
				EnvVars: []string{"SEED_STORE_DRIVER"},
			},
			&cli.StringFlag{
				Name:    "data-dir",
				Aliases: []string{"d"},
				Usage:   "Directory of the file store; defaults to DATA_DIR",
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "admin",
				Usage:  "Create the administrator account unless it already exists",
				Action: adminCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "email",
						Usage: "Administrator e-mail; defaults to ADMIN_EMAIL",
					},
					&cli.StringFlag{
						Name:  "password",
						Usage: "Administrator password; defaults to ADMIN_PASSWORD",
					},
				},
			},
			{
				Name:   "demo",
				Usage:  "Load demo categories and businesses",
				Action: demoCommand,
			},
			{
				Name:   "export",
				Usage:  "Copy every collection into a directory of JSON files",
				Action: exportCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "out",
						Aliases:  []string{"o"},
						Usage:    "Output directory",
						Required: true,
					},
				},
			},
		},
	}
}
