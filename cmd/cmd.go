// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

func configFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "Path to configuration file",
		Value:   defaultConfigPath,
	}
}

// serveFlags are shared by the root command and serve, so `glass --cert c --key k` works.
func serveFlags() []cli.Flag {
	return []cli.Flag{
		configFlag(),
		&cli.StringFlag{
			Name:  "cert",
			Usage: "Path to TLS certificate (PEM). HTTPS is used when both --cert and --key are set",
		},
		&cli.StringFlag{
			Name:  "key",
			Usage: "Path to TLS private key (PEM)",
		},
		&cli.BoolFlag{
			Name:  "open",
			Usage: "Open the home page in the default browser once listening",
		},
	}
}

// serveCommand runs the web server
func serveCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "serve",
		Usage:  "Start the web server (default command)",
		Flags:  serveFlags(),
		Action: r.Serve,
	}
}

// configCommand handles configuration file operations
func configCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "Configuration file operations",
		Commands: []*cli.Command{
			{
				Name:   "init",
				Usage:  "Write the example configuration file",
				Flags:  []cli.Flag{configFlag()},
				Action: r.ConfigInit,
			},
			{
				Name:  "show",
				Usage: "Print the effective configuration with secrets redacted",
				Flags: []cli.Flag{
					configFlag(),
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
						Value: true,
					},
				},
				Action: r.ConfigShow,
			},
		},
	}
}

// dbCommand manages the SQLite session store schema
func dbCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "db",
		Usage: "SQLite session store schema",
		Commands: []*cli.Command{
			{
				Name:   "migrate",
				Usage:  "Apply pending migrations",
				Flags:  []cli.Flag{configFlag()},
				Action: r.DBMigrate,
			},
			{
				Name:   "rollback",
				Usage:  "Roll back the most recent migration",
				Flags:  []cli.Flag{configFlag()},
				Action: r.DBRollback,
			},
		},
	}
}

// pkceCommand prints a fresh verifier and challenge
func pkceCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "pkce",
		Usage: "Generate a PKCE verifier and S256 challenge",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output JSON",
			},
		},
		Action: r.PKCE,
	}
}
