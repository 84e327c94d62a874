package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/reoring/wirekit"
	"github.com/reoring/wirekit/envelope"
	"github.com/reoring/wirekit/xmlwire"
)

func newWrapCmd(a *app) *cobra.Command {
	var kind, out string
	cmd := &cobra.Command{
		Use:   "wrap <file>",
		Short: "Wrap a payload in an Interchange envelope.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.loadPayload(cmd.Context(), args[0], kind)
			if err != nil {
				return err
			}
			doc, err := envelope.Marshal(p.value, a.cfg.XMLOptions())
			if err != nil {
				return err
			}
			a.log.Info("wrapped", zap.String("input", args[0]), zap.Stringer("kind", p.kind))
			return emit(cmd.OutOrStdout(), out, doc)
		},
	}
	cmd.Flags().StringVar(&kind, "kind", "", "payload kind of JSON input")
	cmd.Flags().StringVarP(&out, "output", "o", "", "output file (default stdout)")
	return cmd
}

func newUnwrapCmd(a *app) *cobra.Command {
	var to, out string
	cmd := &cobra.Command{
		Use:   "unwrap <file>",
		Short: "Extract the payload of an Interchange envelope.",
		Long: `Unwrap writes the embedded payload. Known kinds are re-serialized in
the --to format; unknown elements are written as they appear.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := a.readEnvelope(cmd, args[0])
			if err != nil {
				return err
			}
			v, ok := envelope.Data(env)
			if !ok {
				raw, ok := env.Payload()
				if !ok {
					return fmt.Errorf("%s: %w", args[0], envelope.ErrEmpty)
				}
				a.log.Warn("unknown payload kind, writing raw element", zap.String("input", args[0]))
				return emit(cmd.OutOrStdout(), out, wirekit.NewDocument(xmlwire.FormatName, []byte(raw)))
			}
			doc, err := a.encode(v, to)
			if err != nil {
				return err
			}
			return emit(cmd.OutOrStdout(), out, doc)
		},
	}
	cmd.Flags().StringVar(&to, "to", xmlwire.FormatName, "output format: xml or json")
	cmd.Flags().StringVarP(&out, "output", "o", "", "output file (default stdout)")
	return cmd
}

func newInspectCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <file>",
		Short: "Describe what an Interchange envelope carries.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := a.readEnvelope(cmd, args[0])
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "has data: %t\n", env.HasData())
			if name, ok := env.ElementName(); ok {
				fmt.Fprintf(w, "element:  %s\n", name)
			}
			if k, ok := env.Kind(); ok {
				fmt.Fprintf(w, "kind:     %v\n", k)
				fmt.Fprintf(w, "type:     %s\n", env.DataTypeName())
			} else if env.HasData() {
				fmt.Fprintln(w, "kind:     unknown")
			}
			return nil
		},
	}
}

func (a *app) readEnvelope(cmd *cobra.Command, path string) (*envelope.Envelope, error) {
	data, err := wirekit.ReadFile(cmd.Context(), path)
	if err != nil {
		return nil, err
	}
	env, err := envelope.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if env == nil {
		return nil, fmt.Errorf("%s: empty document: %w", path, wirekit.ErrNilInput)
	}
	return env, nil
}
