package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// newCheckCmd validates each argument once. It fails when any URL produced
// an error result, so it can gate scripts and CI jobs.
func newCheckCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "check <url>...",
		Short: "Validate one or more URLs",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			log := opts.logger(cmd)

			v, err := opts.validator(log)
			if err != nil {
				return err
			}

			p := newPrinter(cmd.OutOrStdout(), opts.jsonOutput)

			var failed int
			for _, rawURL := range args {
				result, err := v.Validate(ctx, rawURL)
				if err != nil {
					return fmt.Errorf("validation of %s interrupted: %w", rawURL, err)
				}

				if result.IsError {
					failed++
				}

				if err := p.Print(rawURL, result); err != nil {
					return fmt.Errorf("failed to print result: %w", err)
				}
			}

			if failed > 0 {
				return fmt.Errorf("%d of %d URLs failed validation", failed, len(args))
			}

			return nil
		},
	}
}
