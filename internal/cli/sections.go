package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/vardhan31/Exam-Seating-Plan/pkg/config"
)

// sectionsCommand creates the sections command.
func (c *CLI) sectionsCommand() *cobra.Command {
	var noCache bool

	cmd := &cobra.Command{
		Use:   "sections <roster>",
		Short: "List the sections of a roster",
		Long:  `Sections reads a roster and prints each section with its number of students, in roster order.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var opts cacheOptions
			if noCache {
				opts.Backend = config.BackendNone
			}
			runner, err := c.newRunner(cmd.Context(), opts, nil)
			if err != nil {
				return err
			}
			defer runner.Close()

			ros, err := runner.LoadRosterFile(cmd.Context(), args[0], false)
			if err != nil {
				return err
			}

			rows := make([][]string, 0, ros.Len()+1)
			for _, s := range ros.Sections() {
				rows = append(rows, []string{s.Name, strconv.Itoa(len(s.Students))})
			}
			rows = append(rows, []string{"Total", strconv.Itoa(ros.StudentCount())})
			fmt.Fprintln(cmd.OutOrStdout(), countTable([]string{"Section", "Students"}, rows))
			return nil
		},
	}

	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	return cmd
}
