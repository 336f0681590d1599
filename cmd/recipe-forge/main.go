// Package main provides the CLI entry point for recipe-forge.
package main

import (
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
	kongyaml "github.com/alecthomas/kong-yaml"
	"github.com/joho/godotenv"
)

// CLI structure
var CLI struct {
	Config string `help:"Configuration file path" default:"config.yaml"`
	Debug  bool   `help:"Enable debug logging" default:"false"`
	Format string `help:"Output format" enum:"text,json,yaml" default:"text" short:"f"`
	Raw    bool   `help:"Print server replies without decoding them" default:"false"`

	Daily struct {
		Refresh bool `help:"Fetch a new recipe even if the cached one is fresh"`
	} `cmd:"daily" help:"Show the recipe of the day."`

	Photo struct {
		File    string `arg:"" help:"JPEG photo of the dish"`
		Caption string `help:"Optional caption sent with the photo" short:"c"`
		Legacy  bool   `help:"Use the first version of the upload endpoint (no caption)"`
	} `cmd:"photo" help:"Get a recipe from a food photo."`

	Voice struct {
		File string `arg:"" help:"Recorded voice note (AAC in an MP4 container)"`
	} `cmd:"voice" help:"Get a recipe from a voice note."`

	Ask struct {
		Text []string `arg:"" help:"Question to ask"`
	} `cmd:"ask" help:"Ask a cooking question."`

	View struct{} `cmd:"view" help:"Browse the recipe of the day interactively."`

	Cache struct {
		Status struct{} `cmd:"status" help:"Show what is cached and when it is due."`
	} `cmd:"cache" help:"Inspect the local cache."`

	ConfigCmd struct {
		Init struct {
			Path  string `arg:"" optional:"" help:"Where to write the file" default:"config.yaml"`
			Force bool   `help:"Overwrite an existing file"`
		} `cmd:"init" help:"Write an example configuration file."`
	} `cmd:"config" name:"config" help:"Manage the configuration file."`

	ServeStub struct {
		Addr string `help:"Listen address" default:"127.0.0.1:8080"`
		Fail int    `help:"Reply to every upload with this HTTP status"`
	} `cmd:"serve-stub" help:"Run a local stand-in for the recipe backend."`
}

func main() {
	// A missing .env file is fine
	_ = godotenv.Load()

	// Parse CLI with Kong YAML configuration file loading
	ctx := kong.Parse(&CLI,
		kong.Name("recipe-forge"),
		kong.Description("Terminal client for the recipe generation backend."),
		kong.Configuration(kongyaml.Loader, "config.yaml", "~/.config/recipe-forge/config.yaml"),
	)

	// Configure logging level based on debug flag
	if CLI.Debug {
		slog.SetLogLoggerLevel(slog.LevelDebug)
	} else {
		slog.SetLogLoggerLevel(slog.LevelWarn)
	}

	var err error
	switch ctx.Command() {
	case "daily":
		err = runDaily(os.Stdout, CLI.Daily.Refresh)

	case "photo <file>":
		err = runUpload(os.Stdout, func(a *app) error { return a.photo(CLI.Photo.File, CLI.Photo.Caption, CLI.Photo.Legacy) })

	case "voice <file>":
		err = runUpload(os.Stdout, func(a *app) error { return a.voice(CLI.Voice.File) })

	case "ask <text>":
		err = runUpload(os.Stdout, func(a *app) error { return a.ask(CLI.Ask.Text) })

	case "view":
		err = runView()

	case "cache status":
		err = runCacheStatus(os.Stdout)

	case "config init", "config init <path>":
		err = runConfigInit(CLI.ConfigCmd.Init.Path, CLI.ConfigCmd.Init.Force)

	case "serve-stub":
		err = runServeStub(CLI.ServeStub.Addr, CLI.ServeStub.Fail)

	default:
		panic(ctx.Command())
	}

	if err != nil {
		slog.Error("Command failed", "command", ctx.Command(), "error", err)
		os.Exit(1)
	}
}
