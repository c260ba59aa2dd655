// Copyright 2025 Equilex Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/equilex/equilex"
	"github.com/equilex/equilex/core"
	"github.com/equilex/equilex/match"
	"github.com/equilex/equilex/pipeline"
	"github.com/equilex/equilex/recompute"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "equilex",
		Usage: "Dictionary-driven evidence matching and coverage scoring for policy documents",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
		},
		Before:   setupLogger,
		Commands: []*cli.Command{
			{
				Name:   "sync-dict",
				Usage:  "Load dictionary and group vocabulary CSV files into the store",
				Action: syncDictCommand,
				Flags: []cli.Flag{
					dbFlag(),
					&cli.StringFlag{
						Name:     "dir",
						Usage:    "Directory of dictionary CSV files",
						Required: true,
					},
				},
			},
			{
				Name:   "ingest",
				Usage:  "Register a document and segment its text into sentences",
				Action: ingestCommand,
				Flags: []cli.Flag{
					dbFlag(),
					&cli.StringFlag{
						Name:     "file",
						Aliases:  []string{"f"},
						Usage:    "Text file to ingest (form feeds separate pages)",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "name",
						Usage: "Document name (defaults to the file name)",
					},
					&cli.StringFlag{
						Name:  "lang",
						Usage: "Document language code",
						Value: "en",
					},
				},
			},
			{
				Name:   "process",
				Usage:  "Match parsed documents against the dictionary and aggregate",
				Action: processCommand,
				Flags: []cli.Flag{
					dbFlag(),
					&cli.Uint64Flag{
						Name:  "doc",
						Usage: "Process only this document ID",
					},
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Maximum documents per batch run (0 = no limit)",
					},
					&cli.IntFlag{
						Name:  "workers",
						Usage: "Worker pool size for batch processing",
						Value: 4,
					},
					&cli.StringFlag{
						Name:  "scoring",
						Usage: "YAML file overriding the scoring constants",
					},
				},
			},
			{
				Name:   "recompute",
				Usage:  "Rebuild every document's aggregates from stored evidences",
				Action: recomputeCommand,
				Flags: []cli.Flag{
					dbFlag(),
					&cli.IntFlag{
						Name:  "report-interval",
						Usage: "Report progress every N documents",
						Value: 10,
					},
					&cli.IntFlag{
						Name:  "max-retries",
						Usage: "Maximum retry attempts per document",
						Value: 3,
					},
					&cli.DurationFlag{
						Name:  "retry-delay",
						Usage: "Base delay for exponential backoff",
						Value: 500 * time.Millisecond,
					},
				},
			},
			{
				Name:   "override",
				Usage:  "Set a manual level floor for a (document, concept) pair",
				Action: overrideCommand,
				Flags: []cli.Flag{
					dbFlag(),
					&cli.Uint64Flag{Name: "doc", Usage: "Document ID", Required: true},
					&cli.Uint64Flag{Name: "concept", Usage: "Concept ID", Required: true},
					&cli.IntFlag{
						Name:     "level",
						Usage:    "Level floor 1-4 (0 clears the override)",
						Required: true,
					},
				},
			},
			{
				Name:   "status",
				Usage:  "List documents and their processing status",
				Action: statusCommand,
				Flags:  []cli.Flag{dbFlag()},
			},
			{
				Name:   "indices",
				Usage:  "Show a document's coverage indices and concept scores",
				Action: indicesCommand,
				Flags: []cli.Flag{
					dbFlag(),
					&cli.Uint64Flag{Name: "doc", Usage: "Document ID", Required: true},
				},
			},
		},
	}
}

func dbFlag() cli.Flag {
	return &cli.StringFlag{
		Name:     "db",
		Aliases:  []string{"d"},
		Usage:    "Path to BadgerDB database directory",
		Required: true,
	}
}

func openDatabase(c *cli.Context) (*equilex.Database, error) {
	db, err := equilex.NewDatabase(c.String("db"))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return db, nil
}

func syncDictCommand(c *cli.Context) error {
	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	report, err := db.NewSyncer().SyncDir(context.Background(), c.String("dir"))
	if err != nil {
		return fmt.Errorf("sync failed: %w", err)
	}
	for _, fr := range report.Files {
		if fr.Err != "" {
			fmt.Printf("%-30s %-14s ERROR: %s\n", fr.File, fr.Kind, fr.Err)
			continue
		}
		fmt.Printf("%-30s %-14s upserts=%d skipped=%d\n", fr.File, fr.Kind, fr.Upserts, fr.Skipped)
	}
	fmt.Printf("\n%d files, %d rows upserted\n", report.ProcessedFiles, report.TotalUpserts)
	return nil
}

func ingestCommand(c *cli.Context) error {
	path := c.String("file")
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	name := c.String("name")
	if name == "" {
		name = filepath.Base(path)
	}

	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	p, err := db.NewPipeline()
	if err != nil {
		return err
	}
	defer p.Release()

	doc, err := p.Ingest(context.Background(), name, c.String("lang"), string(data))
	if err != nil {
		return fmt.Errorf("ingest failed: %w", err)
	}
	fmt.Printf("Ingested %s as document %d (%d sentences)\n", doc.Name, doc.Id, doc.SentenceCount)
	return nil
}

func processCommand(c *cli.Context) error {
	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	opts := []pipeline.Option{pipeline.WithPoolSize(c.Int("workers"))}
	if path := c.String("scoring"); path != "" {
		scoring, err := match.LoadScoring(path)
		if err != nil {
			return fmt.Errorf("invalid scoring config: %w", err)
		}
		opts = append(opts, pipeline.WithScoring(scoring))
	}
	p, err := db.NewPipeline(opts...)
	if err != nil {
		return err
	}
	defer p.Release()

	ctx := context.Background()
	if docID := c.Uint64("doc"); docID != 0 {
		summary, err := p.ProcessDocument(ctx, core.ID(docID))
		if err != nil {
			return err
		}
		printSummary(summary)
		return nil
	}

	res, err := p.ProcessBatch(ctx, c.Int("limit"))
	if err != nil {
		return err
	}
	for _, summary := range res.Summaries {
		printSummary(summary)
	}
	if len(res.Failed) > 0 {
		return fmt.Errorf("%d of %d documents failed: %v",
			len(res.Failed), len(res.Summaries)+len(res.Failed), res.Failed)
	}
	return nil
}

func printSummary(s *core.RunSummary) {
	fmt.Printf("%s (doc %d): %d sentences, %d evidences, %d concepts covered (%.1f%%), %d groups, quality %.1f%% [%s]\n",
		s.DocName, s.DocID, s.Sentences, s.Evidences,
		s.ConceptsCovered, s.PctCCCovered*100,
		s.GroupsCovered, s.PctCCQuality3P*100,
		s.Elapsed.Round(time.Millisecond))
}

func recomputeCommand(c *cli.Context) error {
	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	r, err := db.NewRecomputer(
		recompute.WithProgress(os.Stderr, c.Int("report-interval")),
		recompute.WithRetries(c.Int("max-retries"), c.Duration("retry-delay")),
	)
	if err != nil {
		return err
	}

	summary, err := r.Run(context.Background())
	if err != nil {
		return err
	}
	fmt.Printf("Recomputed %d/%d documents in %s\n",
		summary.Succeeded, summary.Total, summary.Elapsed.Round(time.Millisecond))
	if len(summary.Failed) > 0 {
		return fmt.Errorf("failed documents: %v", summary.Failed)
	}
	return nil
}

func overrideCommand(c *cli.Context) error {
	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	docID := core.ID(c.Uint64("doc"))
	conceptID := core.ID(c.Uint64("concept"))
	level := c.Int("level")
	if err := db.Store().SetOverride(context.Background(), docID, conceptID, level); err != nil {
		return err
	}
	if level == 0 {
		fmt.Printf("Cleared override for doc %d, concept %d\n", docID, conceptID)
	} else {
		fmt.Printf("Set level floor %d for doc %d, concept %d\n", level, docID, conceptID)
	}
	fmt.Println("Run 'equilex recompute' to apply it to the indices.")
	return nil
}

func statusCommand(c *cli.Context) error {
	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	docs, err := db.Store().ListDocuments(context.Background())
	if err != nil {
		return err
	}
	if len(docs) == 0 {
		fmt.Println("No documents.")
		return nil
	}
	fmt.Printf("%-6s %-40s %-6s %-10s %10s %10s\n", "ID", "NAME", "LANG", "STATUS", "SENTENCES", "EVIDENCES")
	for _, doc := range docs {
		fmt.Printf("%-6d %-40s %-6s %-10s %10d %10d\n",
			doc.Id, doc.Name, doc.Lang, doc.Status, doc.SentenceCount, doc.EvidenceCount)
		if doc.Status == core.DocStatusError && doc.LastError != "" {
			fmt.Printf("       last error: %s\n", doc.LastError)
		}
	}
	return nil
}

func indicesCommand(c *cli.Context) error {
	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	ctx := context.Background()
	docID := core.ID(c.Uint64("doc"))
	store := db.Store()

	doc, err := store.GetDocument(ctx, docID)
	if err != nil {
		return err
	}
	indices, err := store.GetDocumentIndices(ctx, docID)
	if err != nil {
		return fmt.Errorf("no indices for document %d (processed yet?): %w", docID, err)
	}

	fmt.Printf("%s (doc %d), computed %s\n", doc.Name, doc.Id, indices.ComputedAt.Format(time.RFC3339))
	fmt.Printf("  concepts covered:   %d (%.1f%%)\n", indices.CCCovered, indices.PctCCCovered*100)
	fmt.Printf("  quality (level 3+): %d (%.1f%%)\n", indices.CCQuality3P, indices.PctCCQuality3P*100)
	fmt.Printf("  groups covered:     %d\n", indices.VGCovered)

	scores, err := store.GetConceptScoresByDoc(ctx, docID)
	if err != nil {
		return err
	}
	overrides, err := store.GetOverridesByDoc(ctx, docID)
	if err != nil {
		return err
	}
	overrideByConcept := make(map[core.ID]int, len(overrides))
	for _, ov := range overrides {
		overrideByConcept[ov.ConceptID] = ov.Level
	}

	if len(scores) > 0 {
		fmt.Printf("\n%-10s %-10s %-10s %-10s %s\n", "CONCEPT", "BEST", "OVERRIDE", "FINAL", "EVIDENCES")
		for _, s := range scores {
			final := s.BestLevel
			override := "-"
			if lvl, ok := overrideByConcept[s.ConceptID]; ok {
				override = fmt.Sprintf("%d", lvl)
				if lvl > final {
					final = lvl
				}
			}
			fmt.Printf("%-10d %-10d %-10s %-10d %d\n",
				s.ConceptID, s.BestLevel, override, final, s.EvidenceCnt)
		}
	}
	return nil
}

func setupLogger(c *cli.Context) error {
	levelStr := strings.ToLower(c.String("log-level"))

	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
