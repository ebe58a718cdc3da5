package inkctl

import (
	"context"
	"fmt"
	"os"

	"github.com/louisbranch/inkwell/internal/feed/archive"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func (c *cli) archiveCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "archive",
		Short: "Manage the local SQLite post archive",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "seed <file.yaml>",
		Short: "Load posts from a YAML seed file into the archive",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.run(cmd.Context(), func(ctx context.Context, logger *zap.Logger) error {
				return c.seedArchive(ctx, args[0], logger)
			})
		},
	})
	return cmd
}

func (c *cli) seedArchive(ctx context.Context, seedPath string, logger *zap.Logger) error {
	f, err := os.Open(seedPath)
	if err != nil {
		return fmt.Errorf("open seed file: %w", err)
	}
	defer f.Close()

	entries, err := archive.ReadSeed(f)
	if err != nil {
		return err
	}
	store, err := archive.Open(c.cfg.Feed.ArchivePath)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.PutPosts(ctx, entries); err != nil {
		return err
	}
	logger.Info("archive seeded", zap.String("archive", c.cfg.Feed.ArchivePath), zap.Int("posts", len(entries)))
	_, err = fmt.Fprintf(c.opts.Out, "seeded %d posts into %s\n", len(entries), c.cfg.Feed.ArchivePath)
	return err
}
