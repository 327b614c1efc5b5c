// Command wireless-info reports operating parameters, live statistics
// and capability ranges for the local wireless network interfaces.
package main

import (
	"fmt"
	"os"

	wireless "github.com/dougreese/wireless-info"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "wireless-info [interface]",
	Short: "report wireless interface parameters and statistics",
	Long: `wireless-info walks the local network interfaces and reports operating
parameters, live statistics and capability ranges for the wireless ones.
With an interface name argument it prints only that interface's wireless
protocol name.`,
	Args:         cobra.MaximumNArgs(1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := wireless.New()
		if err != nil {
			return err
		}
		defer c.Close()

		if len(args) == 1 {
			name, err := c.Name(args[0])
			if err != nil {
				return fmt.Errorf("no wireless extensions on %s: %w", args[0], err)
			}

			fmt.Println(name)
			return nil
		}

		return wireless.NewReporter(c, os.Stdout).ReportAll()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
