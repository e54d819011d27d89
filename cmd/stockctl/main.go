package main

import (
	"fmt"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	"github.com/papagugunim/LRKF-stock-dashboard/internal/domain"
	"github.com/papagugunim/LRKF-stock-dashboard/internal/pipeline"
	"github.com/papagugunim/LRKF-stock-dashboard/internal/source"
	"github.com/papagugunim/LRKF-stock-dashboard/pkg/logger"
)

func newDataDirFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "data-dir",
		Usage:   "Directory containing dated snapshot CSV files",
		Value:   "./data/stockdb",
		EnvVars: []string{"SOURCE_DATA_DIR"},
	}
}

func newRefFileFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "ref-file",
		Usage:   "Product reference CSV file",
		Value:   "./data/product_ref.csv",
		EnvVars: []string{"SOURCE_REF_FILE"},
	}
}

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Debug().Err(err).Msg("No .env file loaded")
	}
	logger.SetLevel("warn")

	app := &cli.App{
		Name:  "stockctl",
		Usage: "Inspect warehouse stock snapshots from the command line",
		Commands: []*cli.Command{
			{
				Name:   "snapshots",
				Usage:  "List dated snapshot files in the data directory",
				Flags:  []cli.Flag{newDataDirFlag()},
				Action: listSnapshots,
			},
			{
				Name:  "stats",
				Usage: "Run the pipeline on the latest snapshot and print category totals",
				Flags: []cli.Flag{
					newDataDirFlag(),
					newRefFileFlag(),
					&cli.StringFlag{
						Name:  "band-scheme",
						Usage: "Freshness banding: coarse or fine",
						Value: "coarse",
					},
					&cli.Float64Flag{
						Name:  "min-quantity",
						Usage: "Drop grouped rows at or below this total quantity",
						Value: 1,
					},
				},
				Action: showStats,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal().Err(err).Msg("Command failed")
	}
}

func listSnapshots(c *cli.Context) error {
	dir := c.String("data-dir")
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", dir, err)
	}

	type dated struct {
		name string
		date string
	}
	var files []dated
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if date, ok := source.SnapshotDate(entry.Name()); ok {
			files = append(files, dated{name: entry.Name(), date: date.Format("2006-01-02")})
		}
	}
	if len(files) == 0 {
		return fmt.Errorf("no snapshot files in %s", dir)
	}
	sort.Slice(files, func(i, j int) bool { return files[i].date > files[j].date })

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "DATE\tFILE")
	for _, f := range files {
		fmt.Fprintf(w, "%s\t%s\n", f.date, f.name)
	}
	return w.Flush()
}

func showStats(c *cli.Context) error {
	snap, err := source.NewLocalSource(c.String("data-dir")).Latest(c.Context)
	if err != nil {
		return err
	}

	records, err := source.NewFileReferenceSource(c.String("ref-file")).Load(c.Context)
	if err != nil {
		log.Warn().Err(err).Msg("Reference data unavailable, using defaults")
	}

	agg := pipeline.NewAggregator(domain.ParseBandScheme(c.String("band-scheme")), c.Float64("min-quantity"))
	rows := agg.Aggregate(snap.Rows, pipeline.NewReferenceIndex(records))

	type bucket struct {
		quantity float64
		skus     map[string]struct{}
	}
	categories := make(map[string]*bucket)
	var order []string
	var total float64
	for _, row := range rows {
		b, ok := categories[row.Category]
		if !ok {
			b = &bucket{skus: make(map[string]struct{})}
			categories[row.Category] = b
			order = append(order, row.Category)
		}
		b.quantity += row.TotalQuantity
		b.skus[row.ProductCode] = struct{}{}
		total += row.TotalQuantity
	}
	sort.Slice(order, func(i, j int) bool {
		return categories[order[i]].quantity > categories[order[j]].quantity
	})

	fmt.Printf("Snapshot: %s (%s)\n", snap.Name, snap.Date.Format("2006-01-02"))
	fmt.Printf("Raw rows: %d, grouped rows: %d\n\n", len(snap.Rows), len(rows))

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "CATEGORY\tQUANTITY\tSKUS")
	for _, name := range order {
		b := categories[name]
		fmt.Fprintf(w, "%s\t%.1f\t%d\n", name, b.quantity, len(b.skus))
	}
	fmt.Fprintf(w, "TOTAL\t%.1f\t\n", total)
	return w.Flush()
}
