package main

import (
	"fmt"
	"os"

	"profilecut/internal/config"
	"profilecut/internal/server"
)

func main() {
	cfg, err := config.Load()
	must(err)

	s, err := server.New(cfg)
	must(err)
	must(s.ListenAndServe())
}

func must(err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(1)
}
