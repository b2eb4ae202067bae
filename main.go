package main

import (
	"log"

	"github.com/nhle/todolist/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		log.Fatalln(err)
	}
}
