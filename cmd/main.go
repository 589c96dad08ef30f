package main

import (
	"fmt"
	"os"

	_ "device_inventory/docs"

	"github.com/spf13/cobra"
)

var configPath string

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "device_inventory",
		Short:         "Room, device and user inventory lists with Excel export",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "config file (default configs/config.yml)")

	root.AddCommand(newServeCmd(), newSeedCmd(), newExportCmd())
	return root
}

// @title                      Device Inventory API
// @version                    1.0
// @description                Room, device and user inventory lists with Excel export.
// @BasePath                   /
// @securityDefinitions.apikey BearerAuth
// @in                         header
// @name                       Authorization
func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
