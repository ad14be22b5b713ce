// Copyright (c) 2024 The Schifra-Go Authors. MIT licensed; see LICENSE.

package main

import (
	"log"
	"os"

	"github.com/fatih/color"
	"github.com/pkg/errors"
	"github.com/urfave/cli"

	"github.com/ArashPartow/schifra/gf"
	"github.com/ArashPartow/schifra/rs"
	"github.com/ArashPartow/schifra/validate"
)

// VERSION is injected by buildflags.
var VERSION = "SELFBUILD"

// defaultPrimPoly is the standard GF(256) primitive polynomial
// (x^8+x^4+x^3+x^2+1), LSB to MSB.
var defaultPrimPoly = &cli.IntSlice{1, 0, 1, 1, 1, 0, 0, 0, 1}

func main() {
	if VERSION == "SELFBUILD" {
		log.SetFlags(log.LstdFlags | log.Lshortfile)
	}

	myApp := cli.NewApp()
	myApp.Name = "rsvalidate"
	myApp.Usage = "property-based validator for the schifra Reed-Solomon codec"
	myApp.Version = VERSION
	myApp.Flags = []cli.Flag{
		cli.UintFlag{
			Name:  "power",
			Value: 8,
			Usage: "field degree m, GF(2^m)",
		},
		cli.IntSliceFlag{
			Name:  "primpoly",
			Value: defaultPrimPoly,
			Usage: "primitive polynomial coefficients, LSB to MSB (power+1 values)",
		},
		cli.StringFlag{
			Name:  "tablemode",
			Value: "tables",
			Usage: "field arithmetic strategy: tables or logantilog",
		},
		cli.IntFlag{
			Name:  "codelength",
			Value: 255,
			Usage: "codeword length N",
		},
		cli.IntFlag{
			Name:  "feclength",
			Value: 32,
			Usage: "number of FEC (redundancy) symbols R",
		},
		cli.IntFlag{
			Name:  "geninitialindex",
			Value: 120,
			Usage: "generator polynomial initial root exponent",
		},
		cli.IntFlag{
			Name:  "shorteneddata",
			Value: 0,
			Usage: "data length to use for the shortened-codec equivalence check, 0 to pick half of the natural data length",
		},
		cli.StringFlag{
			Name:  "report",
			Value: "",
			Usage: "write a snappy-compressed JSON report to this path, empty to skip",
		},
		cli.BoolFlag{
			Name:  "quiet",
			Usage: "suppress per-property PASS lines, still prints failures and the summary",
		},
		cli.StringFlag{
			Name:  "c",
			Value: "",
			Usage: "config from json file, which will override the command from shell",
		},
	}
	myApp.Action = run

	if err := myApp.Run(os.Args); err != nil {
		checkError(err)
	}
}

func run(c *cli.Context) error {
	config := Config{
		Power:           c.Uint("power"),
		PrimPoly:        intSliceToUints(c.IntSlice("primpoly")),
		TableMode:       c.String("tablemode"),
		CodeLength:      c.Int("codelength"),
		FECLength:       c.Int("feclength"),
		GenInitialIndex: c.Int("geninitialindex"),
		ShortenedData:   c.Int("shorteneddata"),
		Report:          c.String("report"),
		Quiet:           c.Bool("quiet"),
	}

	if c.String("c") != "" {
		if err := parseJSONConfig(&config, c.String("c")); err != nil {
			return errors.Wrap(err, "rsvalidate: loading config file")
		}
	}

	log.Println("version:", VERSION)
	log.Println("field power:", config.Power)
	log.Println("codelength:", config.CodeLength, "feclength:", config.FECLength)
	log.Println("generator initial index:", config.GenInitialIndex)

	mode := gf.LogAntilog
	if config.TableMode == "tables" {
		mode = gf.Tables
	}

	field, err := gf.NewField(config.Power, config.PrimPoly, mode)
	if err != nil {
		return errors.Wrap(err, "rsvalidate: constructing field")
	}
	if mode == gf.Tables && field.Mode() == gf.LogAntilog {
		color.Red("WARNING: requested table-based arithmetic was downgraded to log/antilog tables for field power %d (tables would be too large)", config.Power)
	}

	geo, err := rs.NewGeometry(config.CodeLength, config.FECLength)
	if err != nil {
		return errors.Wrap(err, "rsvalidate: constructing geometry")
	}

	harness, err := validate.NewHarness(field, geo, config.GenInitialIndex)
	if err != nil {
		return errors.Wrap(err, "rsvalidate: constructing harness")
	}

	// RunInvariants already exercises shortened-codec equivalence at half the
	// natural data length; only run it again when the caller asked for a
	// different shortened length explicitly.
	invariants := harness.RunInvariants()
	if config.ShortenedData != 0 && config.ShortenedData != geo.DataLength/2 {
		invariants = append(invariants, harness.CheckShortenedEquivalence(config.ShortenedData))
	}

	scenarios := validate.RunScenarios()

	report := validate.Report{Invariants: invariants, Scenarios: scenarios}
	printReport(report, config.Quiet)

	if config.Report != "" {
		if err := validate.WriteCompressed(config.Report, report); err != nil {
			return errors.Wrap(err, "rsvalidate: writing report")
		}
		log.Println("report written to", config.Report)
	}

	if !report.Pass() {
		color.Red("FAIL: one or more properties did not hold")
		os.Exit(1)
	}

	color.Green("PASS: all properties held")
	return nil
}

func printReport(r validate.Report, quiet bool) {
	for _, inv := range r.Invariants {
		if inv.Pass() {
			if !quiet {
				color.Green("PASS  %-45s %d cases", inv.Name, inv.Cases)
			}
			continue
		}
		color.Red("FAIL  %-45s %d/%d cases failed: %s", inv.Name, inv.Failures, inv.Cases, inv.Detail)
	}
	for _, sc := range r.Scenarios {
		if sc.Pass {
			if !quiet {
				color.Green("PASS  %-45s %s", sc.Name, sc.Detail)
			}
			continue
		}
		color.Red("FAIL  %-45s %s", sc.Name, sc.Detail)
	}
}

func intSliceToUints(in []int) []uint {
	out := make([]uint, len(in))
	for i, v := range in {
		out[i] = uint(v)
	}
	return out
}

func checkError(err error) {
	if err != nil {
		log.Printf("%+v\n", err)
		os.Exit(1)
	}
}
