package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"vibematrix/internal/adapter/xlsx"
)

func (r *root) exportCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "export <file.xlsx>",
		Short:   "Export the mood log and weekly energy to a spreadsheet",
		Example: "  vibematrix export ~/moods.xlsx",
		Args:    cobra.ExactArgs(1),
		RunE:    r.run(runExport),
	}
}

func runExport(ctx context.Context, e *env, args []string) error {
	path := args[0]
	if !strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return fmt.Errorf("export: %q must end in .xlsx", path)
	}
	entries, err := e.Journal.Entries(ctx)
	if err != nil {
		return err
	}
	if err := xlsx.Export(path, entries); err != nil {
		return fmt.Errorf("export %s: %w", path, err)
	}
	e.p.Success("📦 Exported %d moods to %s", len(entries), path)
	return nil
}
