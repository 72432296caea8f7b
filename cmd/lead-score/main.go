// Command lead-score prints both BANT policies' results for a file of
// prospect answers so the two scoring tables can be compared offline.
//
//	lead-score [-json] [-threshold 80] fixtures.yaml
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"orpaynter_backend/internal/leads/scoring"
	"orpaynter_backend/platform/logger"
)

func main() {
	asJSON := flag.Bool("json", false, "print results as JSON")
	threshold := flag.Int("threshold", scoring.DefaultEmergencyThreshold, "emergency callback score threshold")
	flag.Parse()

	log := logger.New(os.Getenv("APP_ENV"))

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: lead-score [-json] [-threshold N] <fixtures.yaml|fixtures.json>")
		os.Exit(2)
	}

	f, err := os.Open(flag.Arg(0))
	if err != nil {
		log.Error("failed to open fixtures", "path", flag.Arg(0), "error", err)
		os.Exit(1)
	}
	defer f.Close()

	fixtures, err := parseFixtures(f)
	if err != nil {
		log.Error("failed to parse fixtures", "path", flag.Arg(0), "error", err)
		os.Exit(1)
	}

	results := scoreFixtures(fixtures, *threshold)
	if *asJSON {
		err = writeJSON(os.Stdout, results)
	} else {
		err = writeTable(os.Stdout, results)
	}
	if err != nil {
		log.Error("failed to write results", "error", err)
		os.Exit(1)
	}
}

func writeJSON(w io.Writer, results []result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(results)
}

func writeTable(w io.Writer, results []result) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tKEYWORDS\tGRADE\tPRIORITY\tSTRUCTURED\tSTATUS\tEMERGENCY")
	for _, r := range results {
		fmt.Fprintf(tw, "%s\t%d\t%s\t%s\t%d\t%s\t%t\n",
			r.Name,
			r.Keywords.Overall, r.Keywords.Grade, r.Keywords.Priority,
			r.Structured.Overall, r.Structured.Status,
			r.Emergency,
		)
	}
	return tw.Flush()
}
