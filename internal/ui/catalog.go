package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/minjae-ko/siganpyo/internal/lecture"
)

func (a *App) catalogCmd() *cobra.Command {
	var (
		query  string
		major  string
		grade  int
		day    string
		period int
		plain  bool
	)

	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "List lectures from the term catalog",
		Long: `Fetch the lecture catalog for the configured term and print it.

Filters compose: every given criterion must match. Day and period are
matched against the parsed schedule, exactly as the search dialog does.
When the fetch fails and a snapshot exists, the snapshot is used.`,
		Example: `  siganpyo catalog
  siganpyo catalog --query 자료구조
  siganpyo catalog --major 컴퓨터공학 --grade 2
  siganpyo catalog --day 월 --period 3`,
		RunE: func(_ *cobra.Command, _ []string) error {
			if plain {
				DisableColor()
			}

			ctx := context.Background()
			resource := a.config.Catalog.Resource

			lectures, err := a.catalog.Get(ctx, resource)
			switch {
			case err == nil:
				if a.snapshot != nil {
					if serr := a.snapshot.Save(ctx, resource, lectures); serr != nil {
						a.log.Warn("snapshot save failed", zap.Error(serr))
					}
				}
			case a.snapshot == nil:
				return fmt.Errorf("fetching catalog: %w", err)
			default:
				lectures, err = a.loadSnapshotFallback(ctx, resource, err)
				if err != nil {
					return err
				}
			}

			filter := lecture.Filter{
				Query:  query,
				Major:  major,
				Grade:  grade,
				Day:    day,
				Period: period,
			}
			printCatalog(resource, lectures, filter)
			return nil
		},
	}

	cmd.Flags().StringVar(&query, "query", "", "Substring match on the lecture title")
	cmd.Flags().StringVar(&major, "major", "", "Exact major")
	cmd.Flags().IntVar(&grade, "grade", 0, "Target grade (0 for any)")
	cmd.Flags().StringVar(&day, "day", "", "Weekday label, e.g. 월")
	cmd.Flags().IntVar(&period, "period", 0, "1-based period (0 for any)")
	cmd.Flags().BoolVar(&plain, "plain", false, "Disable color output")

	return cmd
}

// loadSnapshotFallback serves the stored snapshot when the fetch fails.
func (a *App) loadSnapshotFallback(ctx context.Context, resource string, fetchErr error) ([]*lecture.Lecture, error) {
	lectures, err := a.snapshot.Load(ctx, resource)
	if err != nil {
		return nil, fmt.Errorf("fetching catalog: %w (snapshot also failed: %v)", fetchErr, err)
	}
	if len(lectures) == 0 {
		return nil, fmt.Errorf("fetching catalog: %w (no snapshot available)", fetchErr)
	}

	fetchedAt, err := a.snapshot.FetchedAt(ctx, resource)
	if err == nil && !fetchedAt.IsZero() {
		fmt.Println(formatWarn(fmt.Sprintf("Offline: showing snapshot from %s", fetchedAt.Format("2006-01-02 15:04"))))
	} else {
		fmt.Println(formatWarn("Offline: showing stored snapshot"))
	}
	return lectures, nil
}

func printCatalog(resource string, lectures []*lecture.Lecture, filter lecture.Filter) {
	cache := lecture.NewParseCache()
	width := termWidth()

	fmt.Println(formatHeader(fmt.Sprintf("=== %s ===", resource)))

	matched := 0
	for _, lec := range lectures {
		if !filter.Matches(lec, cache) {
			continue
		}
		matched++

		meta := fmt.Sprintf("%d학년 %s학점 %s", lec.Grade, lec.Credits, lec.Major)
		line := fmt.Sprintf("  %s  %s  %s",
			formatTitle(lec.Title),
			formatMeta(meta),
			formatSchedule(strings.ReplaceAll(lec.Schedule, "<p>", " / ")),
		)
		if len([]rune(line)) > width {
			line = string([]rune(line)[:width])
		}
		fmt.Println(line)
	}

	if matched == 0 {
		fmt.Println("  No lectures match the given filters.")
		return
	}
	fmt.Println(formatMeta(fmt.Sprintf("%d lectures", matched)))
}
