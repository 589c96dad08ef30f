package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"

	"device_inventory/internal/models"

	"github.com/spf13/cobra"
)

func newSeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed <file.json>",
		Short: "Import documents into the store",
		Long: `Imports a JSON object mapping collection names to document arrays, e.g.
{"DEVICES": [{"id": "d1", "name": "Laptop", "departmentName": "P.101"}]}.
Documents with an existing id are replaced.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSeed(cmd.Context(), args[0], cmd.OutOrStdout())
		},
	}
}

func runSeed(ctx context.Context, path string, out io.Writer) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	collections, err := decodeSeed(f)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	names := make([]string, 0, len(collections))
	for name := range collections {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		n, err := a.repos.Documents.Import(ctx, name, collections[name])
		if err != nil {
			return fmt.Errorf("import %s: %w", name, err)
		}
		a.log.Infow("seed_imported", "collection", name, "count", n)
		fmt.Fprintf(out, "%s: %d documents\n", name, n)
	}
	return nil
}

// decodeSeed parses a collection -> documents object.
func decodeSeed(r io.Reader) (map[string][]models.Record, error) {
	var collections map[string][]models.Record
	if err := json.NewDecoder(r).Decode(&collections); err != nil {
		return nil, fmt.Errorf("decode seed: %w", err)
	}
	for name, docs := range collections {
		for i, d := range docs {
			if d.ID == "" {
				return nil, fmt.Errorf("%s[%d]: missing id", name, i)
			}
		}
	}
	return collections, nil
}
