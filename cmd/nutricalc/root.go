package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/couchcryptid/nutrition-api/internal/adapter/table"
	"github.com/couchcryptid/nutrition-api/internal/domain"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Output formats.
const (
	formatJSON  = "json"
	formatYAML  = "yaml"
	formatTable = "table"
)

// newRootCmd builds the command tree. Settings resolve from flags first, then
// NUTRICALC_* environment variables.
func newRootCmd(v *viper.Viper) *cobra.Command {
	root := &cobra.Command{
		Use:   "nutricalc",
		Short: "Calculate nutrition values from the reference table",
		Long: `nutricalc reads the semicolon-delimited nutrition table and scales
per-100g calories and iron to a given weight in grams.`,
		SilenceUsage: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return validateFormat(v.GetString("format"))
		},
	}

	flags := root.PersistentFlags()
	flags.String("base-dir", ".", "directory containing data/nutrition.csv")
	flags.String("table", "", "reference table path (overrides --base-dir)")
	flags.StringP("format", "o", formatJSON, "output format: json, yaml, table")
	flags.BoolP("verbose", "v", false, "enable verbose output")
	_ = v.BindPFlags(flags)

	v.SetEnvPrefix("NUTRICALC")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	root.AddCommand(newCalcCmd(v), newListCmd(v), newValidateCmd(v))
	return root
}

func validateFormat(format string) error {
	switch format {
	case formatJSON, formatYAML, formatTable:
		return nil
	}
	return fmt.Errorf("invalid format %q (want json, yaml or table)", format)
}

// loadTable loads the reference table. Unlike the API server, a CLI run has
// nothing useful to do in degraded mode, so any load error is returned.
func loadTable(v *viper.Viper, stderr io.Writer) (*domain.Table, error) {
	level := slog.LevelWarn
	if v.GetBool("verbose") {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	path := v.GetString("table")
	if path == "" {
		path = table.DataPath(v.GetString("base-dir"))
	}
	logger.Debug("loading reference table", "path", path)

	return table.NewLoader(logger).LoadFile(path)
}

func main() {
	if err := newRootCmd(viper.New()).Execute(); err != nil {
		os.Exit(1)
	}
}
