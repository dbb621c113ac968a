package main

import (
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spkg/bom"

	"transitcat.dev/transitcat/config"
	"transitcat.dev/transitcat/dispatch"
	"transitcat.dev/transitcat/snapshot"
	"transitcat.dev/transitcat/value"
)

var makeBaseCmd = &cobra.Command{
	Use:   "make_base",
	Short: "Read base requests and settings from stdin, write a binary snapshot",
	Args:  cobra.NoArgs,
	RunE:  runMakeBase,
}

var defaultsPath string

func init() {
	makeBaseCmd.Flags().StringVar(&defaultsPath, "defaults", "", "optional YAML file of house-default routing settings")
}

func runMakeBase(cmd *cobra.Command, args []string) error {
	doc, err := value.Parse(bom.NewReader(os.Stdin))
	if err != nil {
		return errors.Wrap(err, "parsing input document")
	}

	cat, render, routing, serialization, err := dispatch.BuildBase(doc)
	if err != nil {
		return errors.Wrap(err, "building catalogue")
	}

	defaults, err := config.LoadDefaults(defaultsPath)
	if err != nil {
		return errors.Wrap(err, "loading defaults")
	}
	defaults.ApplyTo(&routing)
	if err := routing.Validate(); err != nil {
		return errors.Wrap(err, "routing_settings incomplete")
	}

	f, err := os.Create(serialization.File)
	if err != nil {
		return errors.Wrap(err, "opening snapshot file")
	}
	defer f.Close()

	if err := snapshot.Save(f, cat, render, routing); err != nil {
		return errors.Wrap(err, "writing snapshot")
	}

	return nil
}
