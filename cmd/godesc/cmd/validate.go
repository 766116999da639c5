package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/argus-labs/godesc/pkg/codec"
	"github.com/argus-labs/godesc/pkg/validate"
)

func newValidateCmd(a *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "validate [paths...]",
		Short: "Validate descriptors. Directories are searched for .go descriptors",
		Long: `Validate checks each descriptor for syntax errors, duplicate ids, missing fields, non-unit
rotations, bad property values, missing atlases and animations, unresolved or mistyped references,
and the custom rules from godesc.yaml. With no arguments the project root is validated.

The exit status is non-zero when any descriptor has an error.`,
		RunE: a.run(func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if len(args) == 0 {
				args = []string{a.cfg.Root}
			}
			paths, err := expandPaths(args)
			if err != nil {
				return err
			}

			v, err := a.newValidator(ctx)
			if err != nil {
				return err
			}
			reports, err := v.ValidateFiles(ctx, paths)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			errCount, warnCount := 0, 0
			for _, r := range reports {
				errCount += r.Count(validate.SeverityError)
				warnCount += r.Count(validate.SeverityWarning)
			}

			if asJSON {
				bz, err := codec.EncodeIndent(reports)
				if err != nil {
					return err
				}
				if _, err := fmt.Fprintln(out, string(bz)); err != nil {
					return err
				}
			} else {
				for _, r := range reports {
					if err := r.WriteText(out); err != nil {
						return err
					}
				}
				fmt.Fprintf(cmd.ErrOrStderr(), "%d files checked, %d errors, %d warnings\n",
					len(reports), errCount, warnCount)
			}

			a.logger.Debug().Int("files", len(reports)).Int("errors", errCount).Msg("validation finished")
			if errCount > 0 {
				return ErrIssuesFound
			}
			return nil
		}),
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print reports as JSON")
	return cmd
}

// expandPaths replaces directories with the descriptors below them.
func expandPaths(args []string) ([]string, error) {
	var paths []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			paths = append(paths, arg)
			continue
		}
		found, err := validate.Walk(arg)
		if err != nil {
			return nil, err
		}
		paths = append(paths, found...)
	}
	return paths, nil
}
