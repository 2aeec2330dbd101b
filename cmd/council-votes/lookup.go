// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/council-votes/internal/dataset"
	"github.com/pdiddy/council-votes/pkg/types"
)

var lookupCmd = &cobra.Command{
	Use:   "lookup [designator]",
	Short: "Query a SQLite dataset by item or council member",
	Long: `Lookup reads a dataset written with --format sqlite and lists the
matching vote rows. Filter by designator (exact), member (any case), vote
category, or text in the brief and annotation.

  council-votes lookup "CAL. NO. 34,462"
  council-votes lookup --member king --vote nays`,
	Args: cobra.MaximumNArgs(1),
	RunE: runLookup,
}

func runLookup(cmd *cobra.Command, args []string) error {
	path, _ := cmd.Flags().GetString("db")
	q := queryFromFlags(cmd, args)
	if q.Vote != "" && !types.Vote(strings.ToLower(string(q.Vote))).Valid() {
		return fmt.Errorf("unknown vote %q: use yeas, nays, abstain, absent, or recused", q.Vote)
	}

	store, err := dataset.OpenStore(path)
	if err != nil {
		return err
	}
	defer store.Close()

	rows, err := store.Lookup(cmd.Context(), q)
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(rows)
	}
	printRows(os.Stdout, rows)
	return nil
}

func queryFromFlags(cmd *cobra.Command, args []string) dataset.Query {
	designator, _ := cmd.Flags().GetString("designator")
	if designator == "" && len(args) > 0 {
		designator = args[0]
	}
	member, _ := cmd.Flags().GetString("member")
	vote, _ := cmd.Flags().GetString("vote")
	text, _ := cmd.Flags().GetString("text")
	limit, _ := cmd.Flags().GetInt("limit")

	return dataset.Query{
		Designator: designator,
		Member:     member,
		Vote:       types.Vote(vote),
		Text:       text,
		Limit:      limit,
	}
}

func printRows(w io.Writer, rows []types.OutputRow) {
	if len(rows) == 0 {
		fmt.Fprintln(w, "No rows found.")
		return
	}

	fmt.Fprintf(w, "%-24s  %-20s  %-13s  %-10s  %-10s  %s\n",
		"Designator", "Member", "Vote", "Outcome", "Date", "Brief")
	fmt.Fprintln(w, strings.Repeat("-", 110))
	for _, r := range rows {
		member := r.Member()
		if member == "" {
			member = "-"
		}
		fmt.Fprintf(w, "%-24s  %-20s  %-13s  %-10s  %-10s  %s\n",
			truncate(r.Designator, 24), truncate(member, 20), r.Vote, r.Outcome, r.Date(), truncate(r.Brief, 30))
	}
	fmt.Fprintf(w, "\n%d rows\n", len(rows))
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

func init() {
	lookupCmd.Flags().String("db", "council_votes.db", "SQLite dataset written by extract --format sqlite")
	lookupCmd.Flags().String("designator", "", "item designator, e.g. \"MOTION M-23-145\"")
	lookupCmd.Flags().String("member", "", "council member name")
	lookupCmd.Flags().String("vote", "", "vote category: yeas, nays, abstain, absent, recused")
	lookupCmd.Flags().String("text", "", "substring of the brief or annotation")
	lookupCmd.Flags().Int("limit", 0, "maximum rows (0 = 100)")
	lookupCmd.Flags().Bool("json", false, "output rows as JSON")

	rootCmd.AddCommand(lookupCmd)
}
