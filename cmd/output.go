package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/frahmantamala/project-console/internal/core/common/query"
	"github.com/frahmantamala/project-console/internal/core/state"
	"github.com/spf13/cobra"
)

// render prints v as indented JSON under --json, otherwise as the table
// drawn by rows.
func (a *App) render(v interface{}, rows func(tw *tabwriter.Writer)) error {
	if jsonOutput {
		enc := json.NewEncoder(a.out)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
	tw := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	rows(tw)
	return tw.Flush()
}

func (a *App) printf(format string, args ...interface{}) {
	if !jsonOutput {
		fmt.Fprintf(a.out, format, args...)
	}
}

func resultErr[T any](r state.Result[T]) error {
	if r.Success {
		return nil
	}
	return errors.New(r.Error)
}

func stateErr[D any](s state.State[D]) error {
	if s.Error == "" {
		return nil
	}
	return errors.New(s.Error)
}

// Flag helpers turn flags the user left alone into nil so partial updates
// only send what was given.

func optString(cmd *cobra.Command, name string) *string {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	v, _ := cmd.Flags().GetString(name)
	return &v
}

func optFloat(cmd *cobra.Command, name string) *float64 {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	v, _ := cmd.Flags().GetFloat64(name)
	return &v
}

func optBool(cmd *cobra.Command, name string) *bool {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	v, _ := cmd.Flags().GetBool(name)
	return &v
}

// optEnum is optString for string-typed enums.
func optEnum[E ~string](cmd *cobra.Command, name string) *E {
	s := optString(cmd, name)
	if s == nil {
		return nil
	}
	e := E(*s)
	return &e
}

func deref(s *string) string {
	if s == nil {
		return "-"
	}
	return *s
}

func money(v float64) string {
	return fmt.Sprintf("%.2f", v)
}

func header(tw *tabwriter.Writer, cols ...string) {
	fmt.Fprintln(tw, strings.Join(cols, "\t"))
}

func addPageFlags(cmd *cobra.Command) {
	cmd.Flags().Int("skip", 0, "records to skip")
	cmd.Flags().Int("limit", 0, "maximum records to return")
}

func pageOf(cmd *cobra.Command) query.Page {
	skip, _ := cmd.Flags().GetInt("skip")
	limit, _ := cmd.Flags().GetInt("limit")
	return query.Page{Skip: skip, Limit: limit}
}
