package main

import (
	"context"
	"flag"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/go-faster/errors"
	pgzip "github.com/klauspost/pgzip"

	"github.com/xenking/storefront/db"
	"github.com/xenking/storefront/internal/domain/pricing"
	"github.com/xenking/storefront/internal/repository"
)

func main() {
	var (
		databaseURL  string
		productsFile string
	)

	flag.StringVar(&databaseURL, "database-url", "", "PostgreSQL connection URL (or DATABASE_URL env)")
	flag.StringVar(&productsFile, "products-file", "", "path to a catalog JSON file, optionally .gz (default: embedded catalog)")
	flag.Parse()

	if databaseURL == "" {
		databaseURL = os.Getenv("DATABASE_URL")
	}
	if databaseURL == "" {
		slog.Error("database URL is required: set --database-url or DATABASE_URL")
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err := run(ctx, databaseURL, productsFile); err != nil {
		slog.Error("seed failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	slog.Info("seed completed successfully")
}

func run(ctx context.Context, databaseURL, productsFile string) error {
	data, err := readCatalog(productsFile)
	if err != nil {
		return errors.Wrap(err, "read catalog")
	}
	categories, products, err := parseCatalog(data)
	if err != nil {
		return errors.Wrap(err, "parse catalog")
	}

	slog.Info("connecting to database")

	pool, err := repository.NewPool(ctx, databaseURL)
	if err != nil {
		return errors.Wrap(err, "connect to database")
	}
	defer pool.Close()

	slog.Info("running migrations")

	if err := repository.RunMigrations(ctx, pool); err != nil {
		return errors.Wrap(err, "run migrations")
	}

	seeds := repository.NewSeedRepository(pool)

	slog.Info("upserting catalog",
		slog.Int("categories", len(categories)),
		slog.Int("products", len(products)),
	)
	if err := seeds.Catalog(ctx, categories, products); err != nil {
		return errors.Wrap(err, "seed catalog")
	}

	kinds := pricing.Kinds()
	slog.Info("upserting add-ons", slog.Int("count", len(kinds)))
	if err := seeds.Addons(ctx, kinds); err != nil {
		return errors.Wrap(err, "seed add-ons")
	}

	return nil
}

// readCatalog returns the embedded catalog when path is empty. Files ending
// in .gz are decompressed.
func readCatalog(path string) ([]byte, error) {
	if path == "" {
		slog.Info("using embedded catalog")
		return db.SeedProducts, nil
	}

	slog.Info("reading catalog file", slog.String("path", path))

	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open")
	}
	defer func() { _ = f.Close() }()

	if !strings.HasSuffix(path, ".gz") {
		return io.ReadAll(f)
	}

	gz, err := pgzip.NewReader(f)
	if err != nil {
		return nil, errors.Wrap(err, "gzip reader")
	}
	defer func() { _ = gz.Close() }()

	return io.ReadAll(gz)
}
