// Schema commands manage registered block types and their property schemas.
package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/voxelsmith/slate/pkg/block"
)

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Manage block type schemas",
}

func init() {
	schemaCmd.AddCommand(schemaAddTypeCmd)
	schemaCmd.AddCommand(schemaListCmd)
	schemaCmd.AddCommand(schemaShowCmd)
	schemaCmd.AddCommand(schemaDeleteCmd)
}

var schemaAddTypeCmd = &cobra.Command{
	Use:   "add-type <type> [property...]",
	Short: "Register a block type with its property schema",
	Long: `Add-type registers a block type and its properties. Each property is a
colon-separated spec; enum and int properties list their allowed values in
declaration order, which fixes the ordinal of each value.

Example:
  slate schema add-type demo:door hinge:enum:left,right:left open:bool
  slate schema add-type demo:cake bites:int:0,1,2,3,4,5,6:0`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSchemaAddType,
}

func runSchemaAddType(cmd *cobra.Command, args []string) error {
	props := make([]block.PropertyInfo, 0, len(args)-1)
	for _, spec := range args[1:] {
		prop, err := parsePropertySpec(spec)
		if err != nil {
			return err
		}
		props = append(props, prop)
	}

	md, err := block.NewMetadata(block.Type(args[0]), props)
	if err != nil {
		return fmt.Errorf("build schema: %w", err)
	}

	backend, err := attachCatalog()
	if err != nil {
		return err
	}
	defer backend.Detach()

	if err := backend.SaveMetadata(md); err != nil {
		return sysErr(fmt.Errorf("save schema: %w", err))
	}

	fmt.Printf("Registered %s with %d propert%s\n", md.Type(), md.Len(), plural(md.Len(), "y", "ies"))
	return nil
}

var schemaListCmd = &cobra.Command{
	Use:   "list",
	Short: "List registered block types",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		backend, err := attachCatalog()
		if err != nil {
			return err
		}
		defer backend.Detach()

		types, err := backend.ListTypes()
		if err != nil {
			return sysErr(fmt.Errorf("list types: %w", err))
		}

		if flagJSON {
			return printJSON(types)
		}
		if len(types) == 0 {
			fmt.Println("No block types registered. Run `slate init` to seed the built-ins.")
			return nil
		}
		for _, typ := range types {
			fmt.Println(typ)
		}
		return nil
	},
}

var schemaShowCmd = &cobra.Command{
	Use:   "show <type>",
	Short: "Show the property schema of a block type",
	Args:  cobra.ExactArgs(1),
	RunE:  runSchemaShow,
}

// propertyView is the JSON shape of one schema property.
type propertyView struct {
	Name    string             `json:"name"`
	Kind    block.PropertyKind `json:"kind"`
	Default any                `json:"default"`
	Allowed []any              `json:"allowed"`
}

func runSchemaShow(cmd *cobra.Command, args []string) error {
	backend, err := attachCatalog()
	if err != nil {
		return err
	}
	defer backend.Detach()

	md, err := backend.Metadata(block.Type(args[0]))
	if err != nil {
		return fmt.Errorf("load schema: %w", err)
	}

	if flagJSON {
		views := make([]propertyView, 0, md.Len())
		for _, prop := range md.PropertyInfos() {
			views = append(views, propertyView{
				Name:    prop.Name(),
				Kind:    prop.Kind(),
				Default: prop.Default(),
				Allowed: prop.AllowedValues(),
			})
		}
		return printJSON(map[string]any{
			"type":       md.Type(),
			"properties": views,
		})
	}

	fmt.Println(md.Type())
	if md.Len() == 0 {
		fmt.Println("  (no properties)")
		return nil
	}

	var sb strings.Builder
	w := tabwriter.NewWriter(&sb, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "  NAME\tKIND\tDEFAULT\tALLOWED")
	for _, prop := range md.PropertyInfos() {
		allowed := make([]string, 0, prop.Len())
		for _, v := range prop.AllowedValues() {
			allowed = append(allowed, fmt.Sprint(v))
		}
		fmt.Fprintf(w, "  %s\t%s\t%v\t%s\n", prop.Name(), prop.Kind(), prop.Default(), strings.Join(allowed, ", "))
	}
	w.Flush()
	fmt.Print(sb.String())
	return nil
}

var schemaDeleteCmd = &cobra.Command{
	Use:   "delete <type>",
	Short: "Remove a block type and its schema",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		backend, err := attachCatalog()
		if err != nil {
			return err
		}
		defer backend.Detach()

		if err := backend.DeleteType(block.Type(args[0])); err != nil {
			return fmt.Errorf("delete type: %w", err)
		}
		fmt.Println("Deleted", args[0])
		return nil
	},
}

// plural picks the singular or plural suffix for n.
func plural(n int, singular, plural string) string {
	if n == 1 {
		return singular
	}
	return plural
}
