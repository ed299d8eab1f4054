/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "kimtamcat",
	Short: "KimTamCat CRM API server",
	Long: `KimTamCat CRM is a REST API server for internal task management.
It organizes work on an Eisenhower matrix, keeps a personnel directory
synchronized with external webhooks, and records an audit log for
every task change.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

// GetRootCmd trả về lệnh gốc (dùng trong kiểm thử)
func GetRootCmd() *cobra.Command {
	return rootCmd
}
