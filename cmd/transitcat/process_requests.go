package main

import (
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spkg/bom"

	"transitcat.dev/transitcat/dispatch"
	"transitcat.dev/transitcat/snapshot"
	"transitcat.dev/transitcat/value"
)

var processRequestsCmd = &cobra.Command{
	Use:   "process_requests",
	Short: "Load a snapshot and answer stat_requests read from stdin",
	Args:  cobra.NoArgs,
	RunE:  runProcessRequests,
}

func runProcessRequests(cmd *cobra.Command, args []string) error {
	doc, err := value.Parse(bom.NewReader(os.Stdin))
	if err != nil {
		return errors.Wrap(err, "parsing input document")
	}

	serialization, err := doc.GetDict("serialization_settings")
	if err != nil {
		return err
	}
	file, err := serialization.GetString("file")
	if err != nil {
		return err
	}

	f, err := os.Open(file)
	if err != nil {
		return errors.Wrap(err, "opening snapshot file")
	}
	defer f.Close()

	cat, render, routing, err := snapshot.Load(f)
	if err != nil {
		return errors.Wrap(err, "loading snapshot")
	}

	statRequests, err := doc.GetArray("stat_requests")
	if err != nil {
		return err
	}

	d := dispatch.NewDispatcher(cat, render, routing)
	resp, err := d.Serve(statRequests)
	if err != nil {
		return errors.Wrap(err, "serving requests")
	}

	return value.Write(os.Stdout, resp)
}
