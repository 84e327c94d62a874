package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/reoring/wirekit/envelope"
	"github.com/reoring/wirekit/universal"
	"github.com/reoring/wirekit/validation"
)

var errInvalid = errors.New("validation failed")

type fileResult struct {
	path   string
	kind   envelope.Kind
	result validation.Result
}

func newValidateCmd(a *app) *cobra.Command {
	var kind string
	cmd := &cobra.Command{
		Use:   "validate <file>...",
		Short: "Validate payload documents against their declared constraints.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			results := make([]fileResult, len(args))
			g, ctx := errgroup.WithContext(cmd.Context())
			g.SetLimit(a.cfg.Workers)
			for i, path := range args {
				g.Go(func() error {
					p, err := a.loadPayload(ctx, path, kind)
					if err != nil {
						return err
					}
					res, err := universal.Validate(p.value)
					if err != nil {
						return fmt.Errorf("%s: %w", path, err)
					}
					results[i] = fileResult{path: path, kind: p.kind, result: res}
					return nil
				})
			}
			if err := g.Wait(); err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			invalid := 0
			for _, r := range results {
				if r.result.IsValid {
					fmt.Fprintf(w, "%s: ok (%v)\n", r.path, r.kind)
					continue
				}
				invalid++
				fmt.Fprintf(w, "%s: %d error(s) (%v)\n", r.path, len(r.result.Errors), r.kind)
				for _, e := range r.result.Errors {
					fmt.Fprintf(w, "  %s: %s\n", e.PropertyName, e.Message)
				}
			}
			a.log.Info("validated", zap.Int("files", len(results)), zap.Int("invalid", invalid))
			if invalid > 0 {
				return fmt.Errorf("%w: %d of %d file(s)", errInvalid, invalid, len(results))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&kind, "kind", "", "payload kind of JSON input")
	return cmd
}
