// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/bear-export/internal/output"
)

var tagsCmd = &cobra.Command{
	Use:   "tags",
	Short: "List tags and their note counts",
	Long: `Tags lists every tag in the note store with the number of notes under
it. Tag names are case sensitive; use them exactly as shown with
export --tag.`,
	Args: cobra.NoArgs,
	RunE: runTags,
}

func runTags(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return output.NewSystemError("opening note store", err)
	}
	defer store.Close()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	tags, err := store.ListTags(ctx)
	if err != nil {
		return output.NewSystemError("listing tags", err)
	}

	w := cmd.OutOrStdout()
	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(tags)
	}

	if len(tags) == 0 {
		fmt.Fprintln(w, "No tags found.")
		return nil
	}
	for _, t := range tags {
		fmt.Fprintf(w, "%-40s  %d\n", t.Title, t.Notes)
	}
	fmt.Fprintf(w, "\n%d tags\n", len(tags))
	return nil
}

func init() {
	tagsCmd.Flags().Bool("json", false, "output tags as JSON")
	rootCmd.AddCommand(tagsCmd)
}
