package main

import (
	"github.com/spf13/cobra"

	"github.com/chris/unhook/internal/service"
)

var serviceCmd = &cobra.Command{
	Use:   "service",
	Short: "Manage the background service (macOS launchd)",
}

var serviceInstallCmd = &cobra.Command{
	Use:   "install",
	Short: "Install and load the launchd agent",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return service.Install()
	},
}

var serviceUninstallCmd = &cobra.Command{
	Use:   "uninstall",
	Short: "Unload and remove the launchd agent",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return service.Uninstall()
	},
}

var serviceStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show service status",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return service.Status()
	},
}

var serviceLogsCmd = &cobra.Command{
	Use:   "logs",
	Short: "Tail service logs",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return service.Logs()
	},
}

func init() {
	serviceCmd.AddCommand(serviceInstallCmd, serviceUninstallCmd, serviceStatusCmd, serviceLogsCmd)
	rootCmd.AddCommand(serviceCmd)
}
