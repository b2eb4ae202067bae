package cmd

import (
	"log"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/nhle/todolist/internal/app"
	"github.com/nhle/todolist/internal/client"
	"github.com/nhle/todolist/internal/model"
)

var (
	uiCfgFile string

	uiCmd = &cobra.Command{
		Use:   "ui",
		Short: "Run the terminal client",

		Run: func(cmd *cobra.Command, args []string) {
			cfg, err := model.LoadConfig(uiCfgFile)
			if err != nil {
				log.Fatalln(err)
			}

			c := client.New(cfg.Client.APIURL)
			p := tea.NewProgram(app.New(c), tea.WithAltScreen())
			if _, err := p.Run(); err != nil {
				log.Fatalln(err)
			}
		},
	}
)

func init() {
	uiCmd.PersistentFlags().StringVarP(&uiCfgFile, "config", "c", model.DefaultConfigPath(), "config file")
}
