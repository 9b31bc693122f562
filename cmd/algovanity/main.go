package main

import (
	"fmt"
	"os"
	"path/filepath"

	"algovanity/internal/cli"
	"algovanity/pkg/appcfg"
	"algovanity/pkg/logx"
)

func main() {
	cwd, err := os.Getwd()
	if err != nil {
		fmt.Fprintf(os.Stderr, "getwd: %v\n", err)
		os.Exit(2)
	}

	appConf, err := appcfg.Load(filepath.Join(cwd, "configs", "app.yaml"))
	if err != nil {
		// the config is optional; run with defaults
		appConf = &appcfg.Config{LogLevel: "info"}
	}

	if err := logx.Init(logx.Config{
		Level:                appConf.LogLevel,
		FilePath:             appConf.LogFile,
		ConsoleOnly:          appConf.LogFile == "",
		HideSecretsInConsole: appConf.HideSecretsInConsole,
	}); err != nil {
		fmt.Fprintf(os.Stderr, "log init: %v\n", err)
		os.Exit(1)
	}
	code := cli.Run(os.Args[1:], appConf)
	logx.Close()
	os.Exit(code)
}
