// Command logoanalyze measures the content bounds of each logo in a
// directory and reports which files would benefit from a batch crop.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/joyanlabs/logocrop/pkg/batch"
	"github.com/joyanlabs/logocrop/pkg/logo"
	"github.com/joyanlabs/logocrop/util/log"
)

func main() {
	var (
		in   = flag.String("in", "", "input directory of logo images")
		rule = flag.String("rule", "alpha-aware", "rule: alpha-aware, near-white, near-white-or-black")
	)
	flag.Parse()

	if *in == "" {
		fmt.Fprintln(os.Stderr, "logoanalyze: -in is required")
		flag.Usage()
		os.Exit(2)
	}

	r, err := logo.ParseRule(*rule)
	if err != nil {
		log.Fatalf("resolving rule: %v", err)
	}

	summary, err := batch.Analyze(context.Background(), batch.Job{
		InputDir: *in,
		Options:  logo.Options{Rule: r},
	})
	if err != nil {
		log.Fatalf("analysis failed: %v", err)
	}

	if err := batch.WriteAnalysisReport(os.Stdout, summary); err != nil {
		log.Fatalf("writing report: %v", err)
	}
}
