package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"

	"github.com/abelbrown/peoplesnews/internal/config"
)

func runConfig() {
	flags := flag.NewFlagSet("config", flag.ExitOnError)
	path := flags.String("config", config.ConfigPath(), "Config file")
	envFile := flags.String("env", ".env", "Dotenv file applied over the config")
	initCfg := flags.Bool("init", false, "Write defaults to the config file if it does not exist")
	flags.Parse(os.Args[1:])

	if *initCfg {
		if _, err := os.Stat(*path); err == nil {
			fmt.Fprintf(os.Stderr, "%s already exists, leaving it alone\n", *path)
		} else if errors.Is(err, fs.ErrNotExist) {
			if err := config.DefaultConfig().Save(*path); err != nil {
				fmt.Fprintf(os.Stderr, "error: %v\n", err)
				os.Exit(1)
			}
			fmt.Fprintf(os.Stderr, "Wrote defaults to %s\n", *path)
		} else {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
	}

	cfg, err := config.LoadFrom(*path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.LoadEnvFile(*envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	out, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(string(out))
}
