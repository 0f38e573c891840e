package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	chartio "github.com/matzehuels/chartstack/pkg/io"
)

// exportCommand creates the export command for canonicalizing documents.
func (c *CLI) exportCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export [document]",
		Short: "Rewrite a chart document in canonical JSON form",
		Long: `Rewrite a chart document in canonical JSON form.

The export command decodes a document (TOML or JSON) and writes it back as
canonical JSON with stable key order, so exported documents diff cleanly and
round-trip through 'render' and 'animate' unchanged.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runExport(args[0], output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.json)")

	return cmd
}

// runExport decodes the document and writes its canonical JSON form.
func (c *CLI) runExport(input, output string) error {
	prog := newProgress(c.Logger)

	doc, err := chartio.ImportDocument(input)
	if err != nil {
		return err
	}

	outputPath := output
	if outputPath == "" {
		base := strings.TrimSuffix(input, filepath.Ext(input))
		outputPath = base + ".json"
		if outputPath == input {
			// JSON input would overwrite itself; pick a sibling name.
			outputPath = base + ".export.json"
		}
	}

	if err := chartio.ExportDocument(doc, outputPath); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}

	prog.done(fmt.Sprintf("Exported %d datasets", len(doc.Props.Data)))

	printSuccess("Export complete")
	printFile(outputPath)
	if len(doc.Keyframes) > 0 {
		printDetail("%d keyframes preserved", len(doc.Keyframes))
	}

	return nil
}
