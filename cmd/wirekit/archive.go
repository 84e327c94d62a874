package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/multierr"

	"github.com/reoring/wirekit/store"
	"github.com/reoring/wirekit/xmlwire"
)

func newArchiveCmd(a *app) *cobra.Command {
	var path string
	cmd := &cobra.Command{
		Use:   "archive",
		Short: "Store and retrieve payload documents in a local archive.",
	}
	cmd.PersistentFlags().StringVar(&path, "db", "", "archive file (default from config)")

	// withStore opens the archive for the duration of fn.
	withStore := func(fn func(*store.Store) error) (err error) {
		p := path
		if p == "" {
			p = a.cfg.Archive
		}
		s, err := store.Open(p, store.WithLogger(a.log))
		if err != nil {
			return err
		}
		defer func() { err = multierr.Append(err, s.Close()) }()
		return fn(s)
	}

	var kind, format string
	put := &cobra.Command{
		Use:   "put <bucket> <key> <file>",
		Short: "Archive a payload under bucket/key.",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.loadPayload(cmd.Context(), args[2], kind)
			if err != nil {
				return err
			}
			doc, err := a.encode(p.value, format)
			if err != nil {
				return err
			}
			return withStore(func(s *store.Store) error {
				return s.PutDocument(cmd.Context(), args[0], args[1], doc)
			})
		},
	}
	put.Flags().StringVar(&kind, "kind", "", "payload kind of JSON input")
	put.Flags().StringVar(&format, "format", xmlwire.FormatName, "stored format: xml or json")

	get := &cobra.Command{
		Use:   "get <bucket> <key>",
		Short: "Print an archived document.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(func(s *store.Store) error {
				doc, err := s.Document(cmd.Context(), args[0], args[1])
				if err != nil {
					return err
				}
				return emit(cmd.OutOrStdout(), "", doc)
			})
		},
	}

	ls := &cobra.Command{
		Use:   "ls <bucket>",
		Short: "List the keys of a bucket.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(func(s *store.Store) error {
				keys, err := s.Keys(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				for _, k := range keys {
					fmt.Fprintln(cmd.OutOrStdout(), k)
				}
				return nil
			})
		},
	}

	rm := &cobra.Command{
		Use:   "rm <bucket> <key>",
		Short: "Delete an archived document.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(func(s *store.Store) error {
				return s.Delete(cmd.Context(), args[0], args[1])
			})
		},
	}

	cmd.AddCommand(put, get, ls, rm)
	return cmd
}
