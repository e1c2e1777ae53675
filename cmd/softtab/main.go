// cmd/softtab/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	stlog "log" // for errors before the logger is ready
	"os"
	"os/signal"
	"syscall"

	"github.com/bethropolis/softtab/internal/app"
	"github.com/bethropolis/softtab/internal/config"
	"github.com/bethropolis/softtab/internal/logger"
)

func main() {
	var flags config.Flags
	args, err := flags.ParseFlags(flag.CommandLine, os.Args[1:])
	if err != nil {
		os.Exit(2)
	}
	if *flags.Version {
		fmt.Printf("%s %s\n", config.AppName, config.Version)
		return
	}

	var filePath string
	if len(args) > 0 {
		filePath = args[0]
	}

	cfg, cfgErr := config.LoadConfig(*flags.ConfigFilePath, &flags)

	output, closeLog, err := logger.OpenOutput(cfg.Logger.LogFilePath)
	if err != nil {
		stlog.Fatalf("Failed to open log: %v", err)
	}
	defer closeLog()
	logger.Init(cfg.Logger, output)

	if cfgErr != nil {
		logger.Warnf("Config file ignored: %v", cfgErr)
	}
	logger.Infof("Starting %s %s", config.AppName, config.Version)
	if filePath != "" {
		logger.Debugf("File path specified: %s", filePath)
	} else {
		logger.Debugf("No file specified, starting empty.")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	editorApp, err := app.NewApp(cfg, filePath)
	if err != nil {
		logger.Errorf("Error initializing application: %v", err)
		stlog.Printf("softtab: %v", err)
		closeLog()
		os.Exit(1)
	}

	if err := editorApp.Run(ctx); err != nil {
		logger.Errorf("Application exited with error: %v", err)
		closeLog()
		os.Exit(1)
	}
	logger.Infof("%s finished.", config.AppName)
}
