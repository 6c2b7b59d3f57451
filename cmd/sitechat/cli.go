package main

import (
	"context"
	"io"

	"github.com/harshydav08/sitechat"
	"github.com/harshydav08/sitechat/rag"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer
	Stdin  io.Reader
	Config *sitechat.Config

	// ConfigPath is where Config was loaded from.
	ConfigPath string

	Validator sitechat.URLValidator
	Service   *rag.Service
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Config    string `help:"Config file path (default ~/.sitechat/config.yaml, env SITECHAT_CONFIG)" type:"path"`
	DB        string `name:"db" help:"SQLite database path (env SITECHAT_DB)" type:"path"`
	Debug     bool   `help:"Log every backend call to stderr"`
	Ephemeral bool   `help:"Keep the index in memory for this run only"`

	Index    IndexCmd    `cmd:"" help:"Crawl a website and index its content"`
	Ask      AskCmd      `cmd:"" help:"Ask one question about the indexed content"`
	Chat     ChatCmd     `cmd:"" help:"Start an interactive conversation"`
	Status   StatusCmd   `cmd:"" help:"Show system status"`
	Clear    ClearCmd    `cmd:"" help:"Remove all indexed content"`
	Validate ValidateCmd `cmd:"" help:"Check that a URL is reachable and serves HTML"`
	Show     ConfigCmd   `cmd:"" name:"config" help:"Print the effective configuration"`
}

// IndexCmd is the "index" subcommand.
type IndexCmd struct {
	URL      string `arg:"" help:"Website URL"`
	MaxPages int    `short:"n" help:"Maximum pages to crawl (default from config)"`
	Dump     string `help:"Also write crawled pages to this directory" type:"path"`
}

// AskCmd is the "ask" subcommand.
type AskCmd struct {
	Question string `arg:"" help:"Question about the website"`
}

// ChatCmd is the "chat" subcommand.
type ChatCmd struct{}

// StatusCmd is the "status" subcommand.
type StatusCmd struct{}

// ClearCmd is the "clear" subcommand.
type ClearCmd struct {
	Force bool `help:"Confirm removal"`
}

// ValidateCmd is the "validate" subcommand.
type ValidateCmd struct {
	URL string `arg:"" help:"URL to check"`
}

// ConfigCmd is the "config" subcommand.
type ConfigCmd struct {
	Save bool `help:"Also write the effective configuration to the config file"`
}
