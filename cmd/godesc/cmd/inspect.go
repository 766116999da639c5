package cmd

import (
	"bytes"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/argus-labs/godesc/pkg/codec"
	"github.com/argus-labs/godesc/pkg/descriptor"
)

func newDumpCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "dump <file>",
		Short: "Print a descriptor as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: a.run(func(cmd *cobra.Command, args []string) error {
			g, err := descriptor.Load(args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd, g)
		}),
	}
}

func newFmtCmd(a *app) *cobra.Command {
	var write, list, omitDefaults bool

	cmd := &cobra.Command{
		Use:   "fmt <file...>",
		Short: "Rewrite descriptors in the canonical layout",
		Args:  cobra.MinimumNArgs(1),
		RunE: a.run(func(cmd *cobra.Command, args []string) error {
			var opts []descriptor.EncodeOption
			if omitDefaults {
				opts = append(opts, descriptor.WithOmitDefaults())
			}

			for _, path := range args {
				src, err := os.ReadFile(path)
				if err != nil {
					return eris.Wrapf(err, "failed to read %s", path)
				}
				g, err := descriptor.ParseBytes(path, src)
				if err != nil {
					return err
				}
				formatted := descriptor.Marshal(g, opts...)
				changed := !bytes.Equal(src, formatted)

				if list && changed {
					fmt.Fprintln(cmd.OutOrStdout(), path)
				}
				if write {
					if !changed {
						continue
					}
					info, err := os.Stat(path)
					if err != nil {
						return err
					}
					if err := os.WriteFile(path, formatted, info.Mode().Perm()); err != nil {
						return eris.Wrapf(err, "failed to write %s", path)
					}
					a.logger.Debug().Str("file", path).Msg("reformatted")
					continue
				}
				if !list {
					if _, err := cmd.OutOrStdout().Write(formatted); err != nil {
						return err
					}
				}
			}
			return nil
		}),
	}
	cmd.Flags().BoolVarP(&write, "write", "w", false, "write the result back to the file")
	cmd.Flags().BoolVarP(&list, "list", "l", false, "list files whose formatting differs")
	cmd.Flags().BoolVar(&omitDefaults, "omit-defaults", false, "leave out default positions and rotations")
	return cmd
}

func newRefsCmd(a *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "refs <file>",
		Short: "List the resources a descriptor references",
		Args:  cobra.ExactArgs(1),
		RunE: a.run(func(cmd *cobra.Command, args []string) error {
			g, err := descriptor.Load(args[0])
			if err != nil {
				return err
			}
			refs := g.References()
			if asJSON {
				if refs == nil {
					refs = []descriptor.Reference{}
				}
				return printJSON(cmd, refs)
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, r := range refs {
				fmt.Fprintf(tw, "%s\t%s\t%s\n", r.Owner, r.Kind, r.Path)
			}
			return tw.Flush()
		}),
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print references as JSON")
	return cmd
}

func newDiffCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "diff <a> <b>",
		Short: "Print the JSON patch between two decoded descriptors",
		Args:  cobra.ExactArgs(2),
		RunE: a.run(func(cmd *cobra.Command, args []string) error {
			left, err := descriptor.Load(args[0])
			if err != nil {
				return err
			}
			right, err := descriptor.Load(args[1])
			if err != nil {
				return err
			}
			patch, err := descriptor.Diff(left, right)
			if err != nil {
				return err
			}
			if patch == nil {
				return printJSON(cmd, []any{})
			}
			return printJSON(cmd, patch)
		}),
	}
}

func newSchemaCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the JSON schema of the dump output",
		Args:  cobra.NoArgs,
		RunE: a.run(func(cmd *cobra.Command, _ []string) error {
			schema, err := descriptor.Schema()
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(schema))
			return err
		}),
	}
}

func printJSON(cmd *cobra.Command, v any) error {
	bz, err := codec.EncodeIndent(v)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(bz))
	return err
}
