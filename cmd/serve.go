package cmd

import (
	"log"

	"github.com/spf13/cobra"

	"github.com/nhle/todolist/internal/api"
	"github.com/nhle/todolist/internal/model"
	"github.com/nhle/todolist/internal/store"
)

var (
	serveCfgFile string

	serveCmd = &cobra.Command{
		Use:   "serve",
		Short: "Run the todolist API server",

		Run: func(cmd *cobra.Command, args []string) {
			cfg, err := model.LoadConfig(serveCfgFile)
			if err != nil {
				log.Fatalln(err)
			}

			s, err := store.NewSQLiteStore(cfg.Server.DBPath)
			if err != nil {
				log.Fatalln(err)
			}
			defer s.Close()

			log.Fatal(api.New(cfg.Server.Addr, s).Listen())
		},
	}
)

func init() {
	serveCmd.PersistentFlags().StringVarP(&serveCfgFile, "config", "c", model.DefaultConfigPath(), "config file")
}
