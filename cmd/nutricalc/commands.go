package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/couchcryptid/nutrition-api/internal/domain"
	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newCalcCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "calc <food name> <weight>",
		Short: "Scale a food's calories and iron to a weight in grams",
		Example: `  nutricalc calc Cornstarch 150
  nutricalc calc "Nuts, pecans" 37.5 --format yaml`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			weight, err := strconv.ParseFloat(args[1], 64)
			if err != nil {
				return fmt.Errorf("weight %q is not a number", args[1])
			}
			if err := domain.ValidateWeight(weight); err != nil {
				return err
			}

			tbl, err := loadTable(v, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			res, err := domain.Calculate(tbl, args[0], weight)
			if err != nil {
				return err
			}
			return writeResult(cmd.OutOrStdout(), v.GetString("format"), res)
		},
	}
}

func newListCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List every food with its per-100g calories and iron",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tbl, err := loadTable(v, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			if tbl.Len() == 0 {
				return domain.ErrDataUnavailable
			}
			return writeFoods(cmd.OutOrStdout(), v.GetString("format"), tbl.Rows())
		},
	}
}

func writeResult(w io.Writer, format string, res domain.Result) error {
	if format != formatTable {
		return encode(w, format, res)
	}
	tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tWEIGHT (G)\tCALORIES (KCAL)\tIRON (G)")
	fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", res.ID, res.Name,
		formatNumber(res.Weight), formatNumber(res.Calories), formatNumber(res.Iron))
	return tw.Flush()
}

func writeFoods(w io.Writer, format string, foods []domain.Food) error {
	if format != formatTable {
		return encode(w, format, foods)
	}
	tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tCALORIES\tIRON (MG)")
	for _, f := range foods {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", f.ID, f.Name, formatNumber(f.Calories), formatNumber(f.Iron))
	}
	return tw.Flush()
}

func encode(w io.Writer, format string, v any) error {
	if format == formatYAML {
		out, err := yaml.Marshal(v)
		if err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		_, err = w.Write(out)
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
