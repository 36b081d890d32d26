package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"

	"github.com/thoreinstein/prefs/internal/errors"
)

var genDocCmd = &cobra.Command{
	Use:    "gen-doc",
	Short:  "Generate Markdown documentation for the CLI",
	Hidden: true,
	Args:   cobra.NoArgs,
	RunE: func(c *cobra.Command, _ []string) error {
		outputDir, _ := c.Flags().GetString("dir")
		if outputDir == "" {
			return errors.NewUserError(errors.New("output directory is required"), "pass --dir")
		}

		if err := os.MkdirAll(outputDir, 0o755); err != nil {
			return errors.Wrap(err, "creating output directory")
		}

		// Front matter makes each page usable by a static site generator
		err := doc.GenMarkdownTreeCustom(rootCmd, outputDir, filePrepender, linkHandler)
		if err != nil {
			return errors.Wrap(err, "generating markdown")
		}

		fmt.Fprintf(c.OutOrStdout(), "Documentation generated in %s\n", outputDir)
		return nil
	},
}

func init() {
	genDocCmd.Flags().StringP("dir", "d", "", "Output directory for documentation")
	rootCmd.AddCommand(genDocCmd)
}

// pageTitle converts prefs_settings.md to "prefs settings".
func pageTitle(filename string) string {
	name := filepath.Base(filename)
	base := strings.TrimSuffix(name, filepath.Ext(name))
	return strings.ReplaceAll(base, "_", " ")
}

func filePrepender(filename string) string {
	title := pageTitle(filename)
	return fmt.Sprintf(`---
title: "%s"
description: "Reference for %s"
draft: false
---
`, title, title)
}

func linkHandler(name string) string {
	base := strings.TrimSuffix(name, filepath.Ext(name))
	return "/docs/reference/" + strings.ToLower(base) + "/"
}
