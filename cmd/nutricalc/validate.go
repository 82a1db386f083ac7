package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/couchcryptid/nutrition-api/internal/domain"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var errValidationFailed = errors.New("validation failed")

// phase tracks pass/fail for one integrity check.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

func newValidateCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check the reference table for integrity problems",
		Long: `validate loads the reference table and reports rows that load but would
give surprising answers: duplicate names and negative nutrient values.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tbl, err := loadTable(v, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			return report(cmd.OutOrStdout(), tbl, []*phase{
				validateRowCount(tbl),
				validateUniqueNames(tbl),
				validateNutrients(tbl),
			})
		},
	}
}

func validateRowCount(tbl *domain.Table) *phase {
	p := &phase{name: "Table has rows"}
	if tbl.Len() == 0 {
		p.errorf("no data rows")
	}
	return p
}

func validateUniqueNames(tbl *domain.Table) *phase {
	p := &phase{name: "Food names are unique"}
	for _, name := range tbl.Duplicates() {
		p.errorf("%q appears more than once; lookups use the first row", name)
	}
	return p
}

func validateNutrients(tbl *domain.Table) *phase {
	p := &phase{name: "Nutrient values are non-negative"}
	for _, f := range tbl.Rows() {
		if f.Calories < 0 || f.Iron < 0 {
			p.errorf("ID %d %q: calories=%v iron=%v", f.ID, f.Name, f.Calories, f.Iron)
		}
	}
	return p
}

func report(w io.Writer, tbl *domain.Table, phases []*phase) error {
	allPassed := true
	for _, p := range phases {
		status := "PASS"
		if !p.passed() {
			status = fmt.Sprintf("FAIL (%d errors)", len(p.errors))
			allPassed = false
		}
		fmt.Fprintf(w, "  %-36s %s\n", p.name, status)
	}
	fmt.Fprintf(w, "\nRows: %d\n", tbl.Len())

	for _, p := range phases {
		if p.passed() {
			continue
		}
		fmt.Fprintf(w, "\n--- %s ---\n", p.name)
		for i, e := range p.errors {
			fmt.Fprintf(w, "  [%d] %s\n", i+1, e)
		}
	}

	if !allPassed {
		return errValidationFailed
	}
	fmt.Fprintln(w, "\nAll validations passed.")
	return nil
}
