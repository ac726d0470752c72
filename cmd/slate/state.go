// State commands build block states and run data transactions against them.
package main

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/voxelsmith/slate/pkg/block"
	"github.com/voxelsmith/slate/pkg/data"
)

var stateCmd = &cobra.Command{
	Use:   "state",
	Short: "Inspect and transact against block states",
}

func init() {
	stateCmd.AddCommand(stateShowCmd)
	stateCmd.AddCommand(stateSetCmd)
	stateCmd.AddCommand(stateOrdinalCmd)
}

var stateShowCmd = &cobra.Command{
	Use:   "show <type>",
	Short: "Show the default state of a block type",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		backend, err := attachCatalog()
		if err != nil {
			return err
		}
		defer backend.Detach()

		md, err := backend.Metadata(block.Type(args[0]))
		if err != nil {
			return fmt.Errorf("load schema: %w", err)
		}
		state, err := block.NewState(md)
		if err != nil {
			return fmt.Errorf("build state: %w", err)
		}

		return printState(state)
	},
}

var stateSetCmd = &cobra.Command{
	Use:   "set <type> <key=value>...",
	Short: "Offer property values to a block state",
	Long: `Set builds the default state of a block type, offers the given values
as one data transaction, records the result in the journal, and prints the
outcome. Unknown keys and wrongly typed values make the transaction an
error; values outside a property's allowed domain make it a failure. Values
that pass are applied even when others do not.

Example:
  slate state set slate:furnace facing=east lit=true
  slate state set slate:lamp level=9`,
	Args: cobra.MinimumNArgs(2),
	RunE: runStateSet,
}

func runStateSet(cmd *cobra.Command, args []string) error {
	backend, err := attachCatalog()
	if err != nil {
		return err
	}
	defer backend.Detach()

	blockType := block.Type(args[0])
	md, err := backend.Metadata(blockType)
	if err != nil {
		return fmt.Errorf("load schema: %w", err)
	}
	state, err := block.NewState(md)
	if err != nil {
		return fmt.Errorf("build state: %w", err)
	}

	values := make([]data.Value, 0, len(args)-1)
	for _, arg := range args[1:] {
		key, raw, ok := strings.Cut(arg, "=")
		if !ok {
			return fmt.Errorf("invalid value %q (expected key=value)", arg)
		}

		// Unknown keys stay raw strings so the transaction itself
		// reports them, rather than the parser.
		parsed := any(raw)
		if prop, err := md.Property(key); err == nil {
			if parsed, err = parseValue(prop, raw); err != nil {
				parsed = raw
			}
		}
		values = append(values, data.NewValue(key, parsed))
	}

	next, result, err := state.Offer(values...)
	if err != nil {
		return fmt.Errorf("offer values: %w", err)
	}

	record, err := backend.RecordResult(blockType, result)
	if err != nil {
		return sysErr(fmt.Errorf("record transaction: %w", err))
	}

	if flagJSON {
		return printJSON(map[string]any{
			"transaction": record.ID,
			"result":      resultView(result),
			"state":       next.Values(),
		})
	}

	printResult(result)
	fmt.Println("Transaction:", record.ID)
	fmt.Println("State after:")
	return printState(next)
}

var stateOrdinalCmd = &cobra.Command{
	Use:   "ordinal <type> <property> <ordinal>",
	Short: "Set an enum property by its ordinal",
	Long: `Ordinal builds the default state of a block type and sets an enum
property to the value at the given ordinal. Ordinals follow the declaration
order of the property's allowed values, starting at 0.

Example:
  slate state ordinal slate:furnace facing 2`,
	Args: cobra.ExactArgs(3),
	RunE: runStateOrdinal,
}

func runStateOrdinal(cmd *cobra.Command, args []string) error {
	ordinal, err := strconv.Atoi(args[2])
	if err != nil {
		return fmt.Errorf("invalid ordinal %q: %w", args[2], err)
	}

	backend, err := attachCatalog()
	if err != nil {
		return err
	}
	defer backend.Detach()

	md, err := backend.Metadata(block.Type(args[0]))
	if err != nil {
		return fmt.Errorf("load schema: %w", err)
	}
	state, err := block.NewState(md)
	if err != nil {
		return fmt.Errorf("build state: %w", err)
	}

	next, err := state.WithOrdinal(args[1], ordinal)
	if err != nil {
		return fmt.Errorf("set ordinal: %w", err)
	}

	value, err := next.Value(args[1])
	if err != nil {
		return fmt.Errorf("read value: %w", err)
	}

	if flagJSON {
		return printJSON(map[string]any{
			"property": args[1],
			"ordinal":  ordinal,
			"value":    value,
			"state":    next.Values(),
		})
	}

	fmt.Printf("%s[%d] = %v\n", args[1], ordinal, value)
	fmt.Println("State after:")
	return printState(next)
}

// printState prints a state's property values, sorted by name.
func printState(s block.State) error {
	values := s.Values()
	if flagJSON {
		return printJSON(map[string]any{
			"type":   s.Type(),
			"values": values,
		})
	}

	fmt.Println(s.Type())
	if len(values) == 0 {
		fmt.Println("  (no properties)")
		return nil
	}

	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Printf("  %s = %v\n", name, values[name])
	}
	return nil
}

// resultView is the JSON shape of a transaction result.
func resultView(r data.Result) map[string]any {
	view := map[string]any{"kind": r.Kind()}
	if l := r.SuccessfulData(); l.Defined() {
		view["succeeded"] = valueViews(l.Values())
	}
	if l := r.ReplacedData(); l.Defined() {
		view["replaced"] = valueViews(l.Values())
	}
	if l := r.RejectedData(); l.Defined() {
		view["rejected"] = valueViews(l.Values())
	}
	return view
}

func valueViews(values []data.Value) []map[string]any {
	views := make([]map[string]any, 0, len(values))
	for _, v := range values {
		views = append(views, map[string]any{"key": v.Key(), "value": v.Get()})
	}
	return views
}

// printResult prints a human-readable transaction result.
func printResult(r data.Result) {
	fmt.Println("Result:", r.Kind())
	printValueList("  succeeded:", r.SuccessfulData())
	printValueList("  replaced: ", r.ReplacedData())
	printValueList("  rejected: ", r.RejectedData())
}

func printValueList(label string, l data.ValueList) {
	if !l.Defined() {
		return
	}
	parts := make([]string, 0, l.Len())
	for _, v := range l.Values() {
		parts = append(parts, v.String())
	}
	fmt.Println(label, strings.Join(parts, ", "))
}
