package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-rocket/dsp/effectchain"
	"github.com/cwbudde/algo-rocket/dsp/param"
)

func newParamsCmd(a *app) *cobra.Command {
	var asState bool
	cmd := &cobra.Command{
		Use:   "params",
		Short: "List every parameter with its range and default",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if asState {
				c := effectchain.New(effectchain.WithLogger(a.log))
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(c.Snapshot())
			}
			return printParams(cmd.OutOrStdout(), param.DefaultLayout())
		},
	}
	cmd.Flags().BoolVar(&asState, "state", false, "print the default chain state as JSON, usable with --state")
	return cmd
}

func printParams(w io.Writer, layout *param.Layout) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tKIND\tRANGE\tDEFAULT\tNAME")
	for _, s := range layout.Specs() {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", s.ID, s.Kind, specRange(s), s.Format(s.Default), s.Name)
	}
	return tw.Flush()
}

func specRange(s param.Spec) string {
	switch s.Kind {
	case param.KindBool:
		return "off|on"
	case param.KindChoice:
		return strings.Join(s.Choices, "|")
	}
	r := fmt.Sprintf("%g..%g", s.Min, s.Max)
	if s.Unit != "" {
		r += " " + s.Unit
	}
	return r
}
