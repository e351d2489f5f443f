package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"github.com/jacksonlee411/advanced-imports/modules/advimport/domain/ports"
	"github.com/jacksonlee411/advanced-imports/modules/advimport/domain/types"
	"github.com/jacksonlee411/advanced-imports/modules/advimport/infrastructure/metayaml"
	"github.com/jacksonlee411/advanced-imports/modules/advimport/infrastructure/persistence"
	"github.com/jacksonlee411/advanced-imports/modules/advimport/services"
)

type catalogSource interface {
	ports.ModelCatalog
	ports.Introspector
	metayaml.ModelLookup
}

var openPGPool = func(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	return pgxpool.New(ctx, dsn)
}

func openCatalog(ctx context.Context, cfg config) (catalogSource, func(), error) {
	if cfg.UseDatabase {
		pool, err := openPGPool(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		return persistence.NewMetaCatalogPGStore(pool), pool.Close, nil
	}
	if strings.TrimSpace(cfg.CatalogPath) == "" {
		return nil, nil, errors.New("missing --catalog (or IMPORT_CATALOG) and --db not set")
	}
	c, err := metayaml.LoadCatalog(cfg.CatalogPath)
	if err != nil {
		return nil, nil, err
	}
	return c, func() {}, nil
}

func newRootCmd() *cobra.Command {
	cfg := loadConfig()

	root := &cobra.Command{
		Use:           "importtool",
		Short:         "Resolve import file columns against model metadata",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&cfg.CatalogPath, "catalog", cfg.CatalogPath, "YAML metadata catalog (env IMPORT_CATALOG)")
	root.PersistentFlags().BoolVar(&cfg.UseDatabase, "db", cfg.UseDatabase, "Read metadata from Postgres (DATABASE_URL or DB_*)")
	root.PersistentFlags().StringVar(&cfg.CreateNewRule, "create-new-rule", cfg.CreateNewRule, "CEL rule marking static columns as NEW")

	root.AddCommand(newResolveCmd(&cfg), newComputeCmd(&cfg), newRecordMapCmd())
	return root
}

func newService(cat catalogSource, cfg config) (services.FileTabService, error) {
	return services.NewFileTabService(services.FileTabServiceOptions{
		Catalog:       cat,
		Introspector:  cat,
		CreateNewRule: cfg.CreateNewRule,
	})
}

func newResolveCmd(cfg *config) *cobra.Command {
	var tabsPath string

	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Match column titles to model fields and print the resolved tabs as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cat, closeFn, err := openCatalog(ctx, *cfg)
			if err != nil {
				return err
			}
			defer closeFn()

			svc, err := newService(cat, *cfg)
			if err != nil {
				return err
			}
			tabs, err := metayaml.LoadTabs(ctx, tabsPath, cat)
			if err != nil {
				return err
			}

			out := make([]types.ImportTab, 0, len(tabs))
			for _, tab := range tabs {
				normalized := svc.PropagateIsJSON(&tab)
				resolved, err := svc.ResolveFields(ctx, *normalized)
				if err != nil {
					return fmt.Errorf("tab %q: %w", tab.Name, err)
				}
				log.Printf("resolved tab %q: %d/%d columns matched", resolved.Name, countResolved(resolved), len(resolved.Columns))
				out = append(out, resolved)
			}
			return writeJSON(cmd.OutOrStdout(), out)
		},
	}
	cmd.Flags().StringVar(&tabsPath, "tabs", "", "YAML tab file (required)")
	_ = cmd.MarkFlagRequired("tabs")
	return cmd
}

func newComputeCmd(cfg *config) *cobra.Command {
	var tabsPath string

	cmd := &cobra.Command{
		Use:   "compute",
		Short: "Recompute full names from each column's named field and sub-field without re-resolving",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cat, closeFn, err := openCatalog(ctx, *cfg)
			if err != nil {
				return err
			}
			defer closeFn()

			svc, err := newService(cat, *cfg)
			if err != nil {
				return err
			}
			tabs, err := metayaml.LoadTabs(ctx, tabsPath, cat)
			if err != nil {
				return err
			}
			out := make([]types.ImportTab, 0, len(tabs))
			for _, tab := range tabs {
				out = append(out, svc.RecomputeFullNames(tab))
			}
			return writeJSON(cmd.OutOrStdout(), out)
		},
	}
	cmd.Flags().StringVar(&tabsPath, "tabs", "", "YAML tab file (required)")
	_ = cmd.MarkFlagRequired("tabs")
	return cmd
}

func newRecordMapCmd() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "record-map [payload]",
		Short: "Flatten an import result payload into $recordMap entries",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var payload string
			switch {
			case file != "":
				b, err := os.ReadFile(file)
				if err != nil {
					return err
				}
				payload = string(b)
			case len(args) == 1:
				payload = args[0]
			}

			recordMap, err := services.ImportedRecordMap(payload)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), recordMap)
		},
	}
	cmd.Flags().StringVar(&file, "file", "", "Read the payload from a file")
	return cmd
}

func countResolved(tab types.ImportTab) int {
	n := 0
	for _, col := range tab.Columns {
		if col != nil && col.ResolvedField != nil {
			n++
		}
	}
	return n
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
