package inkctl

import (
	"context"
	"fmt"
	"strings"

	"github.com/louisbranch/inkwell/internal/feed"
	platformi18n "github.com/louisbranch/inkwell/internal/platform/i18n"
	"github.com/louisbranch/inkwell/internal/widget/recommendation"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/message"
)

const recommendConcurrency = 4

func (c *cli) recommendCommand() *cobra.Command {
	var locale string
	cmd := &cobra.Command{
		Use:   "recommend <path>...",
		Short: "Print the posts the sidebar recommends on each page",
		Long: `Load the recommendation block for one or more page paths, such as
/travel/@alice/first-post or /@alice, and print up to three posts per page.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tag, ok := platformi18n.ParseTag(locale)
			if !ok {
				if strings.TrimSpace(locale) != "" {
					return fmt.Errorf("%w: unsupported locale %q", errUsage, locale)
				}
				tag = platformi18n.DefaultTag()
			}
			loc := message.NewPrinter(tag)
			return c.run(cmd.Context(), func(ctx context.Context, logger *zap.Logger) error {
				fetcher, closeFetcher, err := c.fetcher(ctx, logger)
				if err != nil {
					return err
				}
				defer func() { _ = closeFetcher() }()

				results, err := recommendAll(ctx, fetcher, args, logger)
				if err != nil {
					return err
				}
				return c.printRecommendations(args, results, loc)
			})
		},
	}
	cmd.Flags().StringVar(&locale, "locale", "", "render labels in this locale, e.g. pt-BR")
	return cmd
}

// recommendAll loads every path concurrently and returns the posts in
// argument order.
func recommendAll(ctx context.Context, fetcher feed.Fetcher, paths []string, logger *zap.Logger) ([][]feed.Post, error) {
	results := make([][]feed.Post, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(recommendConcurrency)
	for i, path := range paths {
		g.Go(func() error {
			w, err := recommendation.New(recommendation.Config{
				Fetcher: fetcher,
				Router:  fixedPath(path),
				Logger:  logger.With(zap.String("path", path)),
			})
			if err != nil {
				return err
			}
			defer w.Unmount()
			if err := w.Load(gctx); err != nil {
				return fmt.Errorf("recommend %s: %w", path, err)
			}
			results[i] = w.Posts()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func (c *cli) printRecommendations(paths []string, results [][]feed.Post, loc recommendation.Localizer) error {
	out := c.opts.Out
	by := recommendation.Label(loc, recommendation.MsgBy)
	for i, path := range paths {
		if len(paths) > 1 {
			if _, err := fmt.Fprintf(out, "%s\n", path); err != nil {
				return err
			}
		}
		if len(results[i]) == 0 {
			if _, err := fmt.Fprintln(out, "  (none)"); err != nil {
				return err
			}
			continue
		}
		for _, p := range results[i] {
			_, err := fmt.Fprintf(out, "  %s\t%s %s\t%d %s\t%s\n",
				p.Title, by, p.Author, p.Children, recommendation.CommentLabel(loc, p.Children), p.Path())
			if err != nil {
				return err
			}
		}
	}
	return nil
}

// fixedPath is a Router for a page that never navigates.
type fixedPath string

func (p fixedPath) Path() string { return string(p) }

func (fixedPath) Navigate(string) {}
