// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/urfave/cli/v2"

	"catalogrewrite/internal/cache"
	"catalogrewrite/internal/models"
	"catalogrewrite/internal/rewrite"
	"catalogrewrite/internal/storage"
	"catalogrewrite/internal/store"
)

func configCommand() *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "show or change the stored catalog configuration",
		Subcommands: []*cli.Command{
			{
				Name:   "list",
				Usage:  "print every stored configuration value",
				Action: listConfig,
			},
			{
				Name:      "set",
				Usage:     "store a configuration value, at the default scope unless a website or store view is given",
				ArgsUsage: "PATH VALUE",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "website", Usage: "website `CODE` to scope the value to"},
					&cli.StringFlag{Name: "store", Usage: "store view `CODE` to scope the value to"},
				},
				Action: setConfig,
			},
		},
	}
}

func listConfig(c *cli.Context) error {
	cfg, err := setup()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}
	db, err := openDatabase(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	values, err := store.NewCoreConfigStore(db).All()
	if err != nil {
		return err
	}
	for _, v := range values {
		fmt.Fprintf(os.Stdout, "%s[%d] %s = %q\n", v.Scope, v.ScopeID, v.Path, v.Value)
	}
	return nil
}

func setConfig(c *cli.Context) error {
	if c.NArg() != 2 {
		return cli.Exit("config set: PATH and VALUE are required", 2)
	}
	cfg, err := setup()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}
	db, err := openDatabase(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	scope, scopeID, err := configScope(store.NewStoreViewStore(db), c.String("website"), c.String("store"))
	if err != nil {
		return err
	}

	path, value := c.Args().Get(0), c.Args().Get(1)
	if err := store.NewCoreConfigStore(db).SetScoped(scope, scopeID, path, value); err != nil {
		return err
	}
	slog.Info("configuration stored", "path", path, "value", value, "scope", scope, "scope_id", scopeID)
	return nil
}

// configScope resolves the scope a configuration value is stored at.
func configScope(stores *store.StoreViewStore, website, storeCode string) (string, int64, error) {
	switch {
	case website != "" && storeCode != "":
		return "", 0, cli.Exit("config set: use either --website or --store", 2)
	case storeCode != "":
		st, err := stores.FindByCode(storeCode)
		if err != nil {
			return "", 0, err
		}
		if st == nil {
			return "", 0, fmt.Errorf("unknown store view %q", storeCode)
		}
		return models.ScopeStores, st.ID, nil
	case website != "":
		id, err := stores.FindWebsiteID(website)
		if err != nil {
			return "", 0, err
		}
		return models.ScopeWebsites, id, nil
	}
	return models.ScopeDefault, 0, nil
}

func rewritesCommand() *cli.Command {
	return &cli.Command{
		Name:      "rewrites",
		Usage:     "list the url rewrites of a product in every store view",
		ArgsUsage: "SKU",
		Action:    listRewrites,
	}
}

func listRewrites(c *cli.Context) error {
	if c.NArg() != 1 {
		return cli.Exit("rewrites: SKU is required", 2)
	}
	cfg, err := setup()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}
	db, err := openDatabase(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	items, err := store.NewURLRewriteStore(db).FindBySKU(c.Args().First())
	if err != nil {
		return err
	}
	printRewrites(os.Stdout, items)
	return nil
}

// printRewrites writes one line per rewrite: store, redirect type, request
// path and target path.
func printRewrites(w io.Writer, items []models.URLRewrite) {
	if len(items) == 0 {
		fmt.Fprintln(w, "No url rewrites.")
		return
	}
	for _, r := range items {
		redirect := "   "
		if r.RedirectType != models.RedirectNone {
			redirect = strconv.Itoa(r.RedirectType)
		}
		fmt.Fprintf(w, "store=%d %s %s -> %s\n", r.StoreID, redirect, r.RequestPath, r.TargetPath)
	}
}

func cacheCommand() *cli.Command {
	return &cli.Command{
		Name:  "cache",
		Usage: "manage the category cache",
		Subcommands: []*cli.Command{
			{
				Name:   "flush",
				Usage:  "drop every cached category, e.g. after the category tree changed",
				Action: flushCache,
			},
		},
	}
}

func flushCache(c *cli.Context) error {
	cfg, err := setup()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}
	if !cfg.CacheEnabled() {
		slog.Info("category cache not configured, nothing to flush")
		return nil
	}

	client, err := cache.ConnectValkey(cfg.ValkeyHost, cfg.ValkeyPort, cfg.ValkeyPassword)
	if err != nil {
		return err
	}
	defer client.Close()

	cache.NewCategoryCache(client, nil, 0).InvalidateAll(c.Context)
	slog.Info("category cache flushed")
	return nil
}

func runsCommand() *cli.Command {
	return &cli.Command{
		Name:  "runs",
		Usage: "list the most recent import runs",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "limit", Value: 20, Usage: "number of runs to show"},
		},
		Action: listRuns,
	}
}

func listRuns(c *cli.Context) error {
	cfg, err := setup()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}
	db, err := openDatabase(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	entries, err := store.NewImportLogStore(db).RecentEntries(c.Int("limit"))
	if err != nil {
		return err
	}
	for _, e := range entries {
		state := "rolled back"
		if e.Committed {
			state = "committed"
		}
		fmt.Fprintf(os.Stdout, "%s  %s  %-11s rows=%d failures=%d totals=%s\n",
			e.StartedAt.Format(time.RFC3339), e.RunID, state, e.Rows, e.Failures, e.Totals)
	}
	return nil
}

func reportCommand() *cli.Command {
	return &cli.Command{
		Name:      "report",
		Usage:     "print the uploaded report of an import run",
		ArgsUsage: "RUN_ID",
		Action:    showReport,
	}
}

func showReport(c *cli.Context) error {
	if c.NArg() != 1 {
		return cli.Exit("report: RUN_ID is required", 2)
	}
	cfg, err := setup()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	client, err := storage.New(cfg.S3Endpoint, cfg.S3Region, cfg.S3AccessKey, cfg.S3SecretKey, cfg.S3Bucket)
	if err != nil {
		return err
	}
	if client == nil {
		return cli.Exit("report: S3 storage is not configured", 1)
	}

	data, err := client.DownloadReport(c.Context, c.Args().First())
	if err != nil {
		return err
	}
	var rep rewrite.Report
	if err := json.Unmarshal(data, &rep); err != nil {
		return fmt.Errorf("decode import report: %w", err)
	}

	printSummary(os.Stdout, &rep)
	return nil
}
