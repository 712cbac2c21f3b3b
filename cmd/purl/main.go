// Copyright 2025 Google LLC
// SPDX-License-Identifier: Apache-2.0

// purl is a CLI for parsing, constructing, and canonicalizing package URLs.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/google/oss-purl/internal/semver"
	"github.com/google/oss-purl/pkg/purl"
	"github.com/google/oss-purl/pkg/weburl"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	output       = flag.String("output", "text", "Output format [text, json, yaml]")
	strictSemver = flag.Bool("strict-semver", false, "Additionally require the version to be well-formed semver")

	typ        = flag.String("type", "", "Package type token (e.g. npm, pypi, maven)")
	namespace  = flag.String("namespace", "", "Package namespace, slash-joined")
	name       = flag.String("name", "", "Package name")
	version    = flag.String("version", "", "Package version")
	qualifiers = flag.String("qualifiers", "", "Comma-separated key=value qualifier pairs")
	subpath    = flag.String("subpath", "", "Subpath into the package contents")
)

var (
	green  = color.New(color.FgGreen).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
)

var rootCmd = &cobra.Command{
	Use:   "purl [subcommand]",
	Short: "A CLI for package URL parsing and canonicalization",
}

// fields is the serializable field breakdown of a purl.
type fields struct {
	Canonical  string            `json:"canonical" yaml:"canonical"`
	Type       string            `json:"type" yaml:"type"`
	Namespace  string            `json:"namespace,omitempty" yaml:"namespace,omitempty"`
	Name       string            `json:"name" yaml:"name"`
	Version    string            `json:"version,omitempty" yaml:"version,omitempty"`
	Qualifiers map[string]string `json:"qualifiers,omitempty" yaml:"qualifiers,omitempty"`
	Subpath    string            `json:"subpath,omitempty" yaml:"subpath,omitempty"`
}

func writeFields(out io.Writer, p purl.PackageURL) error {
	f := fields{
		Canonical:  p.String(),
		Type:       p.Type,
		Namespace:  p.Namespace,
		Name:       p.Name,
		Version:    p.Version,
		Qualifiers: p.Qualifiers,
		Subpath:    p.Subpath,
	}
	switch *output {
	case "text":
		fmt.Fprintln(out, green(f.Canonical))
		fmt.Fprintf(out, "  type:      %s\n", f.Type)
		if f.Namespace != "" {
			fmt.Fprintf(out, "  namespace: %s\n", f.Namespace)
		}
		fmt.Fprintf(out, "  name:      %s\n", f.Name)
		if f.Version != "" {
			fmt.Fprintf(out, "  version:   %s\n", f.Version)
		}
		keys := make([]string, 0, len(f.Qualifiers))
		for k := range f.Qualifiers {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(out, "  qualifier: %s=%s\n", k, f.Qualifiers[k])
		}
		if f.Subpath != "" {
			fmt.Fprintf(out, "  subpath:   %s\n", f.Subpath)
		}
		return nil
	case "json":
		e := json.NewEncoder(out)
		e.SetIndent("", "  ")
		return errors.Wrap(e.Encode(f), "encoding json")
	case "yaml":
		return errors.Wrap(yaml.NewEncoder(out).Encode(f), "encoding yaml")
	default:
		return errors.Errorf("unknown output format %q", *output)
	}
}

func checkSemver(p purl.PackageURL) error {
	if !*strictSemver || p.Version == "" {
		return nil
	}
	return errors.Wrapf(semver.Check(p.Version), "strict semver check for %q", p.Version)
}

var parseCmd = &cobra.Command{
	Use:           "parse <purl> [-output=text|json|yaml] [-strict-semver]",
	Short:         "Parse a purl and print its canonical form and fields.",
	Args:          cobra.ExactArgs(1),
	SilenceErrors: true,
	SilenceUsage:  true,
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := purl.FromString(args[0])
		if err != nil {
			return err
		}
		if err := checkSemver(p); err != nil {
			return err
		}
		return writeFields(cmd.OutOrStdout(), p)
	},
}

var buildCmd = &cobra.Command{
	Use:           "build -type=<type> -name=<name> [-namespace=...] [-version=...] [-qualifiers=k=v,...] [-subpath=...]",
	Short:         "Construct a canonical purl from individual fields.",
	Args:          cobra.NoArgs,
	SilenceErrors: true,
	SilenceUsage:  true,
	RunE: func(cmd *cobra.Command, args []string) error {
		b := purl.NewBuilder(*typ).
			WithNamespace(*namespace).
			WithName(*name).
			WithVersion(*version).
			WithSubpath(*subpath)
		if *qualifiers != "" {
			for _, pair := range strings.Split(*qualifiers, ",") {
				k, v, ok := strings.Cut(pair, "=")
				if !ok {
					return errors.Errorf("malformed qualifier pair %q", pair)
				}
				b = b.WithQualifier(k, v)
			}
		}
		p, err := b.Build()
		if err != nil {
			return err
		}
		if err := checkSemver(p); err != nil {
			return err
		}
		return writeFields(cmd.OutOrStdout(), p)
	},
}

var urlsCmd = &cobra.Command{
	Use:           "urls <purl>",
	Short:         "Derive repository and download URLs from a purl.",
	Args:          cobra.ExactArgs(1),
	SilenceErrors: true,
	SilenceUsage:  true,
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := purl.FromString(args[0])
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if repo, ok := weburl.RepositoryURL(p); ok {
			fmt.Fprintln(out, "repository:", green(repo))
		} else {
			fmt.Fprintln(out, "repository:", yellow("(none registered for type "+p.Type+")"))
		}
		if download, ok := weburl.DownloadURL(p); ok {
			fmt.Fprintln(out, "download:  ", green(download))
		} else {
			fmt.Fprintln(out, "download:  ", yellow("(none registered for type "+p.Type+")"))
		}
		return nil
	},
}

var typesCmd = &cobra.Command{
	Use:           "types",
	Short:         "List the registered package type tokens.",
	Args:          cobra.NoArgs,
	SilenceErrors: true,
	SilenceUsage:  true,
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, t := range purl.KnownTypes() {
			fmt.Fprintln(cmd.OutOrStdout(), t)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(parseCmd)
	parseCmd.Flags().AddGoFlag(flag.Lookup("output"))
	parseCmd.Flags().AddGoFlag(flag.Lookup("strict-semver"))

	rootCmd.AddCommand(buildCmd)
	buildCmd.Flags().AddGoFlag(flag.Lookup("output"))
	buildCmd.Flags().AddGoFlag(flag.Lookup("strict-semver"))
	buildCmd.Flags().AddGoFlag(flag.Lookup("type"))
	buildCmd.Flags().AddGoFlag(flag.Lookup("namespace"))
	buildCmd.Flags().AddGoFlag(flag.Lookup("name"))
	buildCmd.Flags().AddGoFlag(flag.Lookup("version"))
	buildCmd.Flags().AddGoFlag(flag.Lookup("qualifiers"))
	buildCmd.Flags().AddGoFlag(flag.Lookup("subpath"))

	rootCmd.AddCommand(urlsCmd)
	rootCmd.AddCommand(typesCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		color.New(color.FgRed).Printf("Error: %v\n", err)
		os.Exit(1)
	}
}
