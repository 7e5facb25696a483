package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/regcat/regcat/internal/fetch"
	"github.com/regcat/regcat/internal/utils"
	"github.com/regcat/regcat/pkg/catalog"
	"github.com/regcat/regcat/pkg/report"
	"github.com/regcat/regcat/pkg/storage"
)

// parseCmd represents the parse command
var parseCmd = &cobra.Command{
	Use:   "parse <input> [catalog-file]",
	Short: "Ingest a course report and merge it into the catalog file",
	Long: `Parses one of the registrar's tab-delimited "active classes" reports and
merges the resulting semester catalog into the catalog file. The input can be
a local file or an http(s) URL. An existing catalog entry for the same
semester is replaced; the file is created when absent or invalid.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		input := args[0]
		outPath := catalogPath(args, 1)

		data, err := readReport(input)
		if err != nil {
			return err
		}

		rep := report.Parse(string(data))
		sem, err := catalog.Build(rep)
		if err != nil {
			return fmt.Errorf("parsing %s: %w", input, err)
		}
		utils.Log.Infof("parsed %s: %s with %d course(s) in %d field(s) of study",
			input, sem.SemesterID, len(sem.Courses), len(sem.FieldsOfStudy))

		// Only one ingestion may touch the catalog file at a time.
		lock, err := utils.NewCatalogLock(outPath)
		if err != nil {
			return err
		}
		if err := lock.Lock(); err != nil {
			return err
		}
		defer lock.Unlock()

		store := storage.LoadOrEmpty(outPath)
		store = store.Merge(sem)

		if err := storage.Save(outPath, store); err != nil {
			return err
		}
		utils.Log.Infof("saved catalog to %s (%d semester(s))", outPath, store.Len())
		return nil
	},
}

func readReport(input string) ([]byte, error) {
	if fetch.IsURL(input) {
		return fetch.Get(input)
	}
	data, err := os.ReadFile(input)
	if err != nil {
		return nil, fmt.Errorf("reading report: %w", err)
	}
	return data, nil
}

func init() {
	rootCmd.AddCommand(parseCmd)
}
