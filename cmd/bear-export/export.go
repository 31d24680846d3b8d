// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/bear-export/internal/bear"
	"github.com/pdiddy/bear-export/internal/dump"
	"github.com/pdiddy/bear-export/internal/export"
	"github.com/pdiddy/bear-export/internal/output"
	"github.com/pdiddy/bear-export/pkg/types"
)

var exportCmd = &cobra.Command{
	Use:   "export <output-dir>",
	Short: "Export notes as Jekyll posts",
	Long: `Export writes one Markdown post per note into output-dir, named
YYYY-MM-DD-<title>.md. Use --tag (repeatable, case sensitive) to export only
the notes under those tags; a note under two requested tags is written twice.

Images referenced by a note are copied next to the posts: the image path is
rooted under output-dir and its first "/_posts" segment is replaced with
"/assets/posts". Missing images are reported as warnings.

output-dir must already exist.`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

func runExport(cmd *cobra.Command, args []string) error {
	outDir, err := export.CheckOutputDir(args[0])
	if errors.Is(err, export.ErrOutputDirMissing) {
		return output.NewUserError(err)
	}
	if err != nil {
		return output.NewSystemError("checking output directory", err)
	}

	cfg, err := exportConfig(cmd, outDir)
	if err != nil {
		return output.NewUserError(err)
	}

	store, err := openStore()
	if err != nil {
		return output.NewSystemError("opening note store", err)
	}
	defer store.Close()

	jsonOutput, _ := cmd.Flags().GetBool("json")
	progress := cmd.OutOrStdout()
	if jsonOutput {
		progress = io.Discard
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	report, err := export.Run(ctx, store, cfg, progress)
	if errors.Is(err, export.ErrTagNotFound) || errors.Is(err, export.ErrOutputDirMissing) {
		return output.NewUserError(err)
	}
	if err != nil {
		return output.NewSystemError("export failed", err)
	}

	if jsonOutput {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}

	p := newPrinter(cmd.ErrOrStderr())
	for _, w := range report.Warnings {
		p.Warning("%s", w)
	}
	p.Success("Export complete")
	p.KeyValue("posts", len(report.Written))
	p.KeyValue("images", report.ImagesCopied)
	p.KeyValue("warnings", len(report.Warnings))
	p.KeyValue("output", outDir)
	if len(report.Warnings) > 0 {
		p.Dim("posts with warnings were still written; rerun with --json for the full report")
	}
	return nil
}

// exportConfig assembles the run configuration from flags and viper keys.
func exportConfig(cmd *cobra.Command, outDir string) (types.ExportConfig, error) {
	tags, _ := cmd.Flags().GetStringArray("tag")
	html, _ := cmd.Flags().GetBool("html")

	style := types.LinkStyle(viper.GetString("export.link_style"))
	switch style {
	case types.LinkLiquid, types.LinkStatic:
	default:
		return types.ExportConfig{}, fmt.Errorf("unsupported link style %q: use liquid or static", style)
	}

	var exts []string
	for _, ext := range viper.GetStringSlice("export.image_extensions") {
		ext = strings.TrimSpace(ext)
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		exts = append(exts, ext)
	}

	return types.ExportConfig{
		OutputDir:       outDir,
		Tags:            tags,
		HTML:            html,
		Layout:          viper.GetString("export.layout"),
		Category:        viper.GetString("export.category"),
		LinkStyle:       style,
		ImageExtensions: exts,
	}, nil
}

// noteStore is a NoteStore the CLI can also list tags from and close.
type noteStore interface {
	export.NoteStore
	ListTags(ctx context.Context) ([]types.TagCount, error)
	Close() error
}

// openStore opens the YAML dump named by --source, or the Bear database.
func openStore() (noteStore, error) {
	if src := viper.GetString("source"); src != "" {
		s, err := dump.Load(src)
		if err != nil {
			return nil, err
		}
		return s, nil
	}

	s, err := bear.Open(types.BearConfig{
		Database:       viper.GetString("bear.database"),
		ImagesDir:      viper.GetString("bear.images_dir"),
		TagsTable:      viper.GetString("bear.tags_table"),
		TagsNoteColumn: viper.GetString("bear.tags_note_column"),
		TagsTagColumn:  viper.GetString("bear.tags_tag_column"),
	})
	if err != nil {
		return nil, err
	}
	return s, nil
}

func newPrinter(w io.Writer) *output.Printer {
	f, ok := w.(*os.File)
	return output.NewPrinter(w, ok && output.IsTerminal(f))
}

func init() {
	flags := exportCmd.Flags()
	flags.StringArray("tag", nil, "tag to export; repeat for several tags (default: all notes)")
	flags.Bool("html", false, "render as HTML (accepted; posts are still written as Markdown)")
	flags.String("link-style", "liquid", "cross-reference targets: liquid (resolved by Jekyll) or static")
	flags.String("layout", "default", "front matter layout")
	flags.String("category", "blog", "front matter category")
	flags.StringSlice("image-ext", []string{".png"}, "image extensions closed by the image rewrite")
	flags.Bool("json", false, "print the export report as JSON")

	_ = viper.BindPFlag("export.link_style", flags.Lookup("link-style"))
	_ = viper.BindPFlag("export.layout", flags.Lookup("layout"))
	_ = viper.BindPFlag("export.category", flags.Lookup("category"))
	_ = viper.BindPFlag("export.image_extensions", flags.Lookup("image-ext"))

	rootCmd.AddCommand(exportCmd)
}
