// Command logocrop batch-crops a directory of brand logo images to their
// content, with configurable padding and an optional square canvas.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/joyanlabs/logocrop/config"
	"github.com/joyanlabs/logocrop/pkg/batch"
	"github.com/joyanlabs/logocrop/pkg/logo"
	"github.com/joyanlabs/logocrop/util/log"
)

func main() {
	var (
		in      = flag.String("in", "", "input directory of logo images")
		out     = flag.String("out", "", "output directory for cropped images")
		profile = flag.String("profile", "", "crop profile name (defaults to the config default)")
		padding = flag.Float64("padding", -1, "padding fraction override, e.g. 0.08")
		margin  = flag.Float64("margin", -1, "border margin fraction override, e.g. 0.05")
		rule    = flag.String("rule", "", "rule override: alpha-aware, near-white, near-white-or-black")
		square  = flag.Bool("square", false, "force a square canvas (overrides the profile when set)")
		workers = flag.Int("workers", 1, "number of images processed in parallel")
		smart   = flag.Bool("smart-fallback", false, "propose a smartcrop region when no content is detected")
		write   = flag.Bool("write-config", false, "persist the merged profile registry to the user config file")
		version = flag.Bool("version", false, "print the version and exit")
	)
	flag.Parse()

	if *version {
		fmt.Printf("%s %s\n", config.AppName, config.AppVersion)
		return
	}

	if *write {
		cfg := config.GetConfig()
		cfg.Save()
		fmt.Printf("Config written to %s\n", config.GetFilename())
		if *in == "" && *out == "" {
			return
		}
	}

	if *in == "" || *out == "" {
		fmt.Fprintln(os.Stderr, "logocrop: -in and -out are required")
		flag.Usage()
		os.Exit(2)
	}

	cfg := config.GetConfig()
	name := *profile
	if name == "" {
		name = cfg.DefaultProfile
	}
	prof, err := cfg.Profile(name)
	if err != nil {
		log.Fatalf("resolving profile: %v", err)
	}
	opts, err := prof.Options()
	if err != nil {
		log.Fatalf("profile %q: %v", name, err)
	}

	if *padding >= 0 {
		opts.Padding = *padding
	}
	if *margin >= 0 {
		opts.BorderMargin = *margin
	}
	if *rule != "" {
		r, err := logo.ParseRule(*rule)
		if err != nil {
			log.Fatalf("resolving rule: %v", err)
		}
		opts.Rule = r
	}
	flag.Visit(func(f *flag.Flag) {
		if f.Name == "square" {
			opts.Square = *square
		}
	})
	opts.SmartFallback = *smart

	log.Printf("Processing logos from %s with profile %q...", *in, name)

	summary, err := batch.Run(context.Background(), batch.Job{
		InputDir:  *in,
		OutputDir: *out,
		Options:   opts,
		Workers:   *workers,
	})
	if err != nil {
		log.Fatalf("batch failed: %v", err)
	}

	if err := batch.WriteReport(os.Stdout, summary); err != nil {
		log.Fatalf("writing report: %v", err)
	}
	fmt.Printf("\nCropped logos saved to: %s\n", *out)
}
