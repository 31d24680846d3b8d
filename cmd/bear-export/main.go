// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the bear-export CLI.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/bear-export/internal/bear"
	"github.com/pdiddy/bear-export/internal/output"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the bear-export CLI.
var rootCmd = &cobra.Command{
	Use:   "bear-export",
	Short: "Export Bear notes as Jekyll-compatible Markdown",
	Long: `bear-export reads notes from the Bear database and writes each one as a
Jekyll post: YAML front matter followed by the note body, with image markers
and [[cross-references]] rewritten and embedded images copied into the
site's assets/posts tree.

The database is opened read-only. Existing posts with the same date and
title are overwritten.`,
}

func init() {
	cobra.OnInitialize(initConfig)

	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "config file (default: ./bear-export.yaml or ~/.config/bear-export/config.yaml)")
	flags.String("db", "", "path to Bear's database.sqlite (default: Bear's group container)")
	flags.String("images-dir", "", "directory holding Bear note images")
	flags.String("source", "", "read notes from a YAML dump instead of the Bear database")

	_ = viper.BindPFlag("bear.database", flags.Lookup("db"))
	_ = viper.BindPFlag("bear.images_dir", flags.Lookup("images-dir"))
	_ = viper.BindPFlag("source", flags.Lookup("source"))

	def := bear.DefaultConfig()
	viper.SetDefault("bear.database", def.Database)
	viper.SetDefault("bear.images_dir", def.ImagesDir)
	viper.SetDefault("bear.tags_table", def.TagsTable)
	viper.SetDefault("bear.tags_note_column", def.TagsNoteColumn)
	viper.SetDefault("bear.tags_tag_column", def.TagsTagColumn)
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("bear-export")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "bear-export"))
		}
	}

	viper.SetEnvPrefix("BEAR_EXPORT")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := fang.Execute(ctx, rootCmd, fang.WithVersion(version))
	stop()
	os.Exit(output.GetExitCode(err))
}
