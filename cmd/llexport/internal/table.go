package internal

import (
	"io"

	"github.com/goplus/llexport/linkage"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var tableCmd = &cobra.Command{
	Use:   "table",
	Short: "Print the full decision table",
	Long:  `Table resolves every combination of role, platform, capability and suppression and prints the markers each one gets.`,
	Args:  cobra.NoArgs,
	RunE:  runTable,
}

func init() {
	addProfileFlags(tableCmd.Flags())
	rootCmd.AddCommand(tableCmd)
}

func runTable(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	p, err := cfg.LinkageProfile()
	if err != nil {
		return err
	}
	renderTable(cmd.OutOrStdout(), p)
	return nil
}

func renderTable(w io.Writer, p linkage.Profile) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Role", "Platform", "Capability", "Suppressed", p.CallConvMacro, p.ExportMacro})
	for _, f := range linkage.AllFacts() {
		m := linkage.Spell(linkage.Resolve(f), nil, p)
		t.AppendRow(table.Row{f.Role, f.Platform, f.Capability, f.SuppressExport, m.CallConv, m.Export})
	}
	t.Render()
}
