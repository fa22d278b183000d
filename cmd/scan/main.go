// Command scan runs the orphan-blob reconciliation pass: it lists
// revision content blobs and deletes (or just reports) any blob whose
// (document_id, version) has no revision row.
package main

import (
	"context"
	"flag"
	"log"

	"github.com/joho/godotenv"
	"github.com/tendant/simple-revision/pkg/simplerevision/config"
	"github.com/tendant/simple-revision/pkg/simplerevision/scan"
)

func main() {
	dryRun := flag.Bool("dry-run", true, "report orphans without deleting them")
	prefix := flag.String("prefix", "", "key prefix to scan (default: documents/)")
	flag.Parse()

	_ = godotenv.Load()

	serverConfig, err := config.Load(config.WithEnv(""))
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx := context.Background()
	repo, err := serverConfig.BuildRepository(ctx)
	if err != nil {
		log.Fatalf("Failed to build repository: %v", err)
	}
	store, err := serverConfig.BuildBlobStore()
	if err != nil {
		log.Fatalf("Failed to build blob store: %v", err)
	}

	scanner := scan.New(repo, store, nil)
	result, err := scanner.Scan(ctx, scan.Options{
		Prefix:    *prefix,
		DryRun:    *dryRun,
		Processor: &scan.DeleteProcessor{Store: store},
	})
	if err != nil {
		log.Fatalf("Scan failed: %v", err)
	}

	log.Printf("Scanned %d keys (%d skipped): %d orphans, %d processed, %d failed",
		result.TotalScanned, result.TotalSkipped,
		result.TotalOrphans, result.TotalProcessed, result.TotalFailed)
	for _, key := range result.OrphanKeys {
		log.Printf("orphan: %s", key)
	}
}
