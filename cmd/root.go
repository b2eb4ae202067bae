package cmd

import "github.com/spf13/cobra"

var (
	rootCmd = &cobra.Command{
		Use:   "todolist",
		Short: "A minimal todo-list manager",
		Long:  `Todolist is a small todo manager: a REST API backed by SQLite and a terminal client that mirrors the list locally.`,
	}
)

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(uiCmd)
}
