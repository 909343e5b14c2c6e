package system

import (
	"fmt"
	"os"

	"github.com/julianstephens/tinyhabits/internal/cli"
	"github.com/julianstephens/tinyhabits/internal/storage"
)

type ExportCmd struct {
	Path      string `arg:"" help:"Destination JSON file." type:"path"`
	Overwrite bool   `help:"Replace the destination file if it exists."`
}

func (c *ExportCmd) Run(ctx *cli.Context) error {
	if _, err := os.Stat(c.Path); err == nil {
		if !c.Overwrite {
			return fmt.Errorf("%s already exists, use --overwrite to replace it", c.Path)
		}
		if err := os.Remove(c.Path); err != nil {
			return fmt.Errorf("failed to remove existing export: %w", err)
		}
	}

	dst := storage.NewJSONStore(c.Path)
	if err := dst.Init(); err != nil {
		return err
	}
	defer dst.Close()

	counts, err := copyData(ctx.Store, dst)
	if err != nil {
		return fmt.Errorf("export failed: %w", err)
	}

	fmt.Printf("Exported %d habits and %d entries to %s\n", counts.habits, counts.entries, c.Path)
	return nil
}
