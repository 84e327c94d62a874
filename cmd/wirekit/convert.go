package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/reoring/wirekit/jsonwire"
	"github.com/reoring/wirekit/xmlwire"
)

func newConvertCmd(a *app) *cobra.Command {
	var (
		kind string
		to   string
		out  string
	)
	cmd := &cobra.Command{
		Use:   "convert <file>",
		Short: "Convert a payload between XML and JSON.",
		Long: `Convert reads a payload document and writes it in the other format.
Markup input is identified by its root element; JSON input needs --kind.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.loadPayload(cmd.Context(), args[0], kind)
			if err != nil {
				return err
			}
			target := to
			if target == "" {
				target = otherFormat(p.format)
			}
			doc, err := a.encode(p.value, target)
			if err != nil {
				return err
			}
			a.log.Info("converted",
				zap.String("input", args[0]),
				zap.Stringer("kind", p.kind),
				zap.String("format", doc.Format()),
			)
			return emit(cmd.OutOrStdout(), out, doc)
		},
	}
	cmd.Flags().StringVar(&kind, "kind", "", "payload kind of JSON input (e.g. ShipmentData or UniversalShipment)")
	cmd.Flags().StringVar(&to, "to", "", "output format: xml or json")
	cmd.Flags().StringVarP(&out, "output", "o", "", "output file (default stdout)")
	return cmd
}

// otherFormat is the default conversion target for input read in format.
func otherFormat(format string) string {
	if format == xmlwire.FormatName {
		return jsonwire.FormatName
	}
	return xmlwire.FormatName
}
