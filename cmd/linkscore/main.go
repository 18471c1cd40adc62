// Command linkscore classifies social links and scrapes aggregator profiles.
//
// Examples:
//
//	linkscore tiktokcom/artistname
//	linkscore -ingest https://linktr.ee/artistname
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/fanstage-dev/linkscore"
	"github.com/fanstage-dev/linkscore/pkg/httpcache"
	"github.com/fanstage-dev/linkscore/pkg/platform"
)

var (
	verbose        = flag.Bool("v", false, "verbose logging")
	doIngest       = flag.Bool("ingest", false, "scrape an aggregator profile page and score its links")
	browserCookies = flag.Bool("browser-cookies", false, "read session cookies from browser stores")
	noCache        = flag.Bool("no-cache", false, "disable the HTTP response cache")
	platformsFile  = flag.String("platforms", "", "YAML file with additional platform definitions")
	cacheTTL       = flag.Duration("cache-ttl", 24*time.Hour, "TTL for cached HTTP responses")
)

func main() {
	flag.Parse()

	if *verbose {
		slog.SetLogLoggerLevel(slog.LevelDebug)
	}

	if len(flag.Args()) != 1 {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags] <url>\n\n", os.Args[0])
		fmt.Fprint(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
		fmt.Fprint(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s tiktokcom/artistname\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -ingest https://linktr.ee/artistname\n", os.Args[0])
		os.Exit(1)
	}
	url := flag.Args()[0]

	if *platformsFile != "" {
		defs, err := platform.LoadDefinitions(*platformsFile)
		if err != nil {
			log.Fatalf("Failed to load platform definitions: %v", err)
		}
		platform.Default.Append(defs...)
	}

	if *doIngest {
		runIngest(url)
		return
	}

	result := linkscore.Detect(url)
	scored := linkscore.ManualLink(url)

	fmt.Print("\nLink Detection\n")
	fmt.Print("==============\n")
	fmt.Printf("Platform:   %s (%s)\n", result.Platform.Name, result.Platform.ID)
	fmt.Printf("Valid:      %v\n", result.IsValid)
	fmt.Printf("Normalized: %s\n", result.NormalizedURL)
	fmt.Printf("Title:      %s\n", result.SuggestedTitle)
	fmt.Printf("Manual:     %s (%.2f)\n", scored.State, scored.Confidence)
}

func runIngest(url string) {
	ctx := context.Background()

	opts := []linkscore.Option{}
	if *browserCookies {
		opts = append(opts, linkscore.WithBrowserCookies())
	}
	if !*noCache {
		cache, err := httpcache.New(*cacheTTL)
		if err != nil {
			log.Fatalf("Failed to create HTTP cache: %v", err)
		}
		opts = append(opts, linkscore.WithHTTPCache(cache))
	}

	page, err := linkscore.Ingest(ctx, url, opts...)
	if err != nil {
		log.Fatalf("Failed to ingest %s: %v", url, err)
	}

	fmt.Printf("\n%s (@%s)\n", page.Name, page.Username)
	if page.Bio != "" {
		fmt.Printf("%s\n", page.Bio)
	}
	fmt.Printf("\n%-10s %-8s %-5s %s\n", "PLATFORM", "STATE", "CONF", "URL")
	for _, c := range page.Candidates {
		fmt.Printf("%-10s %-8s %.2f  %s\n", c.Platform, c.State, c.Confidence, c.URL)
	}
}
