package main

import (
	"context"
	"io"

	"github.com/fwojciec/datpedia"
	"github.com/fwojciec/datpedia/batch"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer

	Source       datpedia.DocumentSource
	Images       datpedia.ImageStore
	Writer       datpedia.DocumentWriter
	Manifests    datpedia.ManifestWriter
	Scanner      datpedia.ReferenceScanner
	Orchestrator *batch.Orchestrator
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Corpus      []string `arg:"" optional:"" name:"corpus" help:"Corpus to transform (directory name under the source root)"`
	Source      string   `default:"extract" env:"DATPEDIA_SOURCE" help:"Root of the extracted dumps"`
	Dest        string   `default:"transform" env:"DATPEDIA_DEST" help:"Root of the offline article sets"`
	Concurrency int      `short:"c" default:"0" help:"Articles processed in parallel (0 = one per CPU)"`
	Articles    string   `short:"a" help:"Process only the slugs listed in this file (one per line)"`
	Manifest    bool     `short:"m" help:"Write list.txt with the written slugs"`
	CheckLinks  bool     `name:"check-links" help:"Report links to articles missing from the corpus"`
	Report      string   `help:"Record a build report in this SQLite database"`
	Preview     bool     `short:"p" help:"Report references without writing anything"`
	Verbose     bool     `short:"v" help:"Log every image read and article write"`
}
