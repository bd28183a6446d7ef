package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Veraticus/salesflow/internal/cli"
	"github.com/Veraticus/salesflow/internal/common"
	"github.com/Veraticus/salesflow/internal/config"
	"github.com/Veraticus/salesflow/internal/dataset"
)

func (a *app) sampleCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "sample",
		Short: "Write the sample dataset to the input path",
		Long: `Write the built-in twelve-month sample dataset to the input path.

An existing file is left alone unless --force is given.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			path := a.cfg.Input.Path

			exists, err := config.FileExists(path)
			if err != nil {
				return err
			}
			if exists && !force {
				return common.NewUserError(
					fmt.Sprintf("%s already exists (use --force to overwrite)", path),
					common.ErrOutputExists)
			}

			table := dataset.SampleTable()
			if err := dataset.WriteSample(path, table); err != nil {
				return err
			}

			fmt.Fprintln(a.stdout, cli.FormatSuccess(fmt.Sprintf("Sample dataset with %d months written to %s", len(table.Rows), path)))
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	return cmd
}
