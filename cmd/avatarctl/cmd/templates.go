package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"avatarstudio/internal/studio"
)

var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "List starter script templates",
	RunE: func(cmd *cobra.Command, args []string) error {
		all := studio.Templates()
		names := make([]string, 0, len(all))
		for name := range all {
			names = append(names, name)
		}
		sort.Strings(names)

		if outputFormat == "json" {
			out, _ := json.MarshalIndent(all, "", "  ")
			fmt.Println(string(out))
			return nil
		}

		table := tablewriter.NewWriter(os.Stdout)
		table.Header("Name", "Script")
		for _, name := range names {
			table.Append(name, all[name])
		}
		table.Render()
		return nil
	},
}

func init() {
	rootCmd.AddCommand(templatesCmd)
}
