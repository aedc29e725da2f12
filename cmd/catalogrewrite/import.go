// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/urfave/cli/v2"

	"catalogrewrite/internal/cache"
	"catalogrewrite/internal/config"
	"catalogrewrite/internal/csvrow"
	"catalogrewrite/internal/models"
	"catalogrewrite/internal/rewrite"
	"catalogrewrite/internal/storage"
	"catalogrewrite/internal/store"
	"catalogrewrite/internal/urlkey"
)

func importCommand() *cli.Command {
	return &cli.Command{
		Name:      "import",
		Usage:     "generate url rewrites for the products of one or more CSV files",
		ArgsUsage: "FILE...",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "strict", Usage: "fail on the first data error (default from IMPORT_STRICT)"},
			&cli.BoolFlag{Name: "replace", Usage: "delete every url rewrite of a SKU before importing it"},
			&cli.BoolFlag{Name: "clean-up", Usage: "delete orphaned url rewrites (default from IMPORT_CLEAN_UP_URL_REWRITES)"},
			&cli.BoolFlag{Name: "dry-run", Usage: "roll back the transaction at the end"},
			&cli.StringFlag{Name: "delimiter", Value: ",", Usage: "CSV field delimiter"},
		},
		Action: runImport,
	}
}

// importOptions resolves the run options from flags over the environment.
func importOptions(c *cli.Context, cfg *config.Config) rewrite.Options {
	strict := cfg.ImportStrict
	if c.IsSet("strict") {
		strict = c.Bool("strict")
	}
	cleanUp := cfg.ImportCleanUp
	if c.IsSet("clean-up") {
		cleanUp = c.Bool("clean-up")
	}

	opts := rewrite.Options{
		Strict:   strict,
		Replace:  c.Bool("replace"),
		Splitter: rewrite.NewSplitter(cfg.CategoryDelimiter),
	}
	// An unset clean-up leaves the stored catalog value in charge.
	if cleanUp || c.IsSet("clean-up") {
		opts.Overrides = rewrite.ConfigOverrides{models.ConfigCleanUpURLRewrites: boolString(cleanUp)}
	}
	return opts
}

func runImport(c *cli.Context) error {
	if c.NArg() == 0 {
		return cli.Exit("import: at least one FILE is required", 2)
	}
	delim := c.String("delimiter")
	if utf8.RuneCountInString(delim) != 1 {
		return cli.Exit(fmt.Sprintf("import: --delimiter must be a single character, got %q", delim), 2)
	}
	comma, _ := utf8.DecodeRuneInString(delim)

	cfg, err := setup()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	db, err := openDatabase(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	ctx := c.Context
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin import transaction: %w", err)
	}
	committed := false
	defer func() {
		if !committed {
			tx.Rollback()
		}
	}()

	var categories rewrite.CategoryStore = store.NewCategoryStore(tx)
	if cfg.CacheEnabled() {
		client, err := cache.ConnectValkey(cfg.ValkeyHost, cfg.ValkeyPort, cfg.ValkeyPassword)
		if err != nil {
			slog.Warn("valkey not reachable, category cache disabled", "error", err)
		} else {
			defer client.Close()
			cc := cache.NewCategoryCache(client, categories, cache.DefaultCategoryTTL)
			// Categories may have changed since the previous run.
			cc.InvalidateAll(ctx)
			categories = cc
		}
	}

	varchars := store.NewVarcharStore(tx)
	opts := importOptions(c, cfg)
	eng, err := rewrite.New(rewrite.Deps{
		Products:     store.NewProductStore(tx),
		Stores:       store.NewStoreViewStore(tx),
		Categories:   categories,
		Config:       store.NewCoreConfigStore(tx),
		Rewrites:     store.NewURLRewriteStore(tx),
		Relations:    store.NewURLRewriteProductCategoryStore(tx),
		URLKeys:      urlkey.NewResolver(varchars),
		URLKeyWriter: varchars,
		Logger:       slog.Default(),
	}, opts)
	if err != nil {
		return err
	}

	run := eng.NewRun()
	slog.Info("import started",
		"run_id", run.ID,
		"files", c.NArg(),
		"strict", opts.Strict,
		"replace", opts.Replace,
	)

	runErr := importFiles(ctx, run, c.Args().Slice(), comma)
	if runErr == nil {
		runErr = run.Finish()
	}
	rep := run.Report()

	switch {
	case runErr != nil:
		slog.Error("import failed, rolling back", "run_id", run.ID, "error", runErr)
	case c.Bool("dry-run"):
		slog.Info("dry run, rolling back", "run_id", run.ID)
	default:
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit import: %w", err)
		}
		committed = true
	}

	rep.Committed = committed
	printSummary(os.Stdout, rep)
	logRun(store.NewImportLogStore(db), rep)
	uploadReport(ctx, cfg, rep)
	return runErr
}

// logRun records rep in the import run log outside the import transaction.
func logRun(log *store.ImportLogStore, rep *rewrite.Report) {
	runID, err := uuid.Parse(rep.RunID)
	if err != nil {
		slog.Warn("import run has no valid id, not logged", "run_id", rep.RunID)
		return
	}
	totals, err := json.Marshal(rep.Totals)
	if err != nil {
		slog.Warn("failed to encode import totals", "run_id", rep.RunID, "error", err)
		return
	}

	entry := store.ImportLogEntry{
		RunID:     runID,
		Strict:    rep.Strict,
		Committed: rep.Committed,
		Rows:      rep.Rows,
		Failures:  len(rep.Failures),
		Totals:    totals,
		StartedAt: rep.StartedAt,
	}
	if !rep.FinishedAt.IsZero() {
		finished := rep.FinishedAt
		entry.FinishedAt = &finished
	}
	log.Log(entry)
}

// importFiles feeds every row of files to run in order.
func importFiles(ctx context.Context, run *rewrite.Run, files []string, comma rune) error {
	for _, path := range files {
		if err := importFile(ctx, run, path, comma); err != nil {
			return err
		}
	}
	return nil
}

func importFile(ctx context.Context, run *rewrite.Run, path string, comma rune) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open import file: %w", err)
	}
	defer f.Close()

	r, err := csvrow.NewReader(f, filepath.Base(path), comma)
	if err != nil {
		return err
	}
	if err := requireColumns(r.Columns(), rewrite.ColumnSKU); err != nil {
		return fmt.Errorf("%s: %w", filepath.Base(path), err)
	}

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		row, err := r.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		if err := run.Process(row); err != nil {
			return fmt.Errorf("%s:%d: %w", row.File(), row.Line(), err)
		}
	}
}

// requireColumns fails when the header lacks any of the required columns.
func requireColumns(columns []string, required ...string) error {
	var missing []string
	for _, name := range required {
		if !slices.Contains(columns, name) {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required column(s): %s", strings.Join(missing, ", "))
	}
	return nil
}

// uploadReport stores the report in S3 when storage is configured. Upload
// failures are logged; the import result stands.
func uploadReport(ctx context.Context, cfg *config.Config, rep *rewrite.Report) {
	client, err := storage.New(cfg.S3Endpoint, cfg.S3Region, cfg.S3AccessKey, cfg.S3SecretKey, cfg.S3Bucket)
	if err != nil {
		slog.Error("failed to initialize S3 storage", "error", err)
		return
	}
	if client == nil {
		slog.Debug("s3 storage not configured, report not uploaded")
		return
	}

	data, err := rep.JSON()
	if err != nil {
		slog.Error("failed to encode import report", "error", err)
		return
	}
	key, err := client.UploadReport(ctx, rep.RunID, data)
	if err != nil {
		slog.Error("failed to upload import report", "error", err)
		return
	}

	link, err := client.PresignedURL(ctx, key, storage.DefaultLinkExpiry)
	if err != nil {
		slog.Warn("failed to sign report link", "key", key, "error", err)
		link = client.ObjectURL(key)
	}
	slog.Info("import report uploaded", "bucket", client.Bucket(), "key", key, "url", link)
}

func boolString(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

var _ rewrite.Row = (*csvrow.Row)(nil)
