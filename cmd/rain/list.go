package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/tomz197/glyphrain/internal/rain"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List themes and glyph sets",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		printOptions(cmd.OutOrStdout())
	},
}

func printOptions(w io.Writer) {
	fmt.Fprintln(w, "Themes:")
	for _, name := range rain.ThemeNames() {
		fmt.Fprintf(w, "  %s\n", name)
	}

	fmt.Fprintln(w, "\nGlyph sets:")
	for _, name := range rain.GlyphSetNames() {
		set, err := rain.GlyphSetByName(name)
		if err != nil {
			continue
		}
		fmt.Fprintf(w, "  %-10s %s\n", name, string(set.Sample(12)))
	}

	fmt.Fprintln(w, "\nGlyph modes:")
	fmt.Fprintf(w, "  %s\n  %s\n", rain.GlyphRandom, rain.GlyphIndexed)
}
