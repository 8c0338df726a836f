package main

import (
	"fmt"
	"os"

	"github.com/ganot/playbook/internal/app"
	"github.com/urfave/cli/v2"
)

func seedCommand() *cli.Command {
	return &cli.Command{
		Name:  "seed",
		Usage: "Load leagues and their seasons from a YAML file. Existing entries are skipped.",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "file", Aliases: []string{"f"}, Required: true, Usage: "YAML seed file"},
		},
		Action: func(c *cli.Context) error {
			f, err := os.Open(c.String("file"))
			if err != nil {
				return fmt.Errorf("opening seed file: %w", err)
			}
			defer f.Close()

			file, err := app.LoadSeed(f)
			if err != nil {
				return err
			}

			a, cleanup, err := openApp(c)
			if err != nil {
				return err
			}
			defer cleanup()

			res, err := a.Seed(commandContext(c), file)
			if err != nil {
				return err
			}
			fmt.Fprintf(c.App.Writer, "leagues: %d created, %d skipped\nseasons: %d created, %d skipped\n",
				res.LeaguesCreated, res.LeaguesSkipped, res.SeasonsCreated, res.SeasonsSkipped)
			return nil
		},
	}
}
