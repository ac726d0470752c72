// Journal commands inspect recorded data transactions.
package main

import (
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/voxelsmith/slate/pkg/catalog"
)

var journalCmd = &cobra.Command{
	Use:   "journal",
	Short: "Inspect the transaction journal",
}

var journalListLimit int

func init() {
	journalListCmd.Flags().IntVar(&journalListLimit, "limit", 0, "maximum number of records (0 = no limit)")

	journalCmd.AddCommand(journalListCmd)
	journalCmd.AddCommand(journalShowCmd)
}

var journalListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recorded transactions, newest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		backend, err := attachCatalog()
		if err != nil {
			return err
		}
		defer backend.Detach()

		records, err := backend.Transactions(journalListLimit)
		if err != nil {
			return sysErr(fmt.Errorf("list transactions: %w", err))
		}

		if flagJSON {
			views := make([]map[string]any, 0, len(records))
			for _, r := range records {
				views = append(views, recordView(r))
			}
			return printJSON(views)
		}

		printRecordTable(records)
		return nil
	},
}

var journalShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one recorded transaction",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		backend, err := attachCatalog()
		if err != nil {
			return err
		}
		defer backend.Detach()

		record, err := backend.Transaction(args[0])
		if err != nil {
			return fmt.Errorf("load transaction: %w", err)
		}

		if flagJSON {
			return printJSON(recordView(record))
		}

		fmt.Println("Transaction:", record.ID)
		fmt.Println("Block type: ", record.BlockType)
		fmt.Println("Recorded:   ", record.CreatedAt.Format(time.RFC3339))
		result, err := record.Result()
		if err != nil {
			return fmt.Errorf("rebuild result: %w", err)
		}
		printResult(result)
		return nil
	},
}

// recordView is the JSON shape of one journal record.
func recordView(r catalog.TransactionRecord) map[string]any {
	view := map[string]any{
		"id":         r.ID,
		"block_type": r.BlockType,
		"kind":       r.Kind,
		"created_at": r.CreatedAt.Format(time.RFC3339Nano),
	}
	if r.Succeeded != nil {
		view["succeeded"] = valueViews(r.Succeeded)
	}
	if r.Replaced != nil {
		view["replaced"] = valueViews(r.Replaced)
	}
	if r.Rejected != nil {
		view["rejected"] = valueViews(r.Rejected)
	}
	return view
}

// printRecordTable prints journal records in a human-readable table.
func printRecordTable(records []catalog.TransactionRecord) {
	if len(records) == 0 {
		fmt.Println("No transactions recorded.")
		return
	}

	var sb strings.Builder
	w := tabwriter.NewWriter(&sb, 0, 0, 2, ' ', 0)

	fmt.Fprintln(w, "ID\tTYPE\tKIND\tVALUES\tRECORDED")
	fmt.Fprintln(w, "--\t----\t----\t------\t--------")
	for _, r := range records {
		shortID := r.ID
		if len(shortID) > 8 {
			shortID = shortID[:8]
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\n",
			shortID,
			r.BlockType,
			r.Kind,
			len(r.Succeeded)+len(r.Replaced)+len(r.Rejected),
			r.CreatedAt.Format("2006-01-02 15:04:05"),
		)
	}
	w.Flush()

	output := sb.String()
	for _, line := range strings.Split(strings.TrimRight(output, "\n"), "\n") {
		fmt.Println(strings.TrimRight(line, " "))
	}

	fmt.Printf("Total: %d transaction%s\n", len(records), plural(len(records), "", "s"))
}
