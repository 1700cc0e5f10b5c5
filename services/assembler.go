package services

import (
	"context"
	"fmt"
	"os"

	"eatery-scraper/config"
	"eatery-scraper/models"
	"eatery-scraper/scraper/directory"
	"eatery-scraper/storage"
	"eatery-scraper/utils"
)

// Dataset sources accepted by Build.
const (
	SourceWeb  = "web"
	SourceFile = "file"
)

// ListingWalker returns every listing fragment for one area filter.
type ListingWalker interface {
	FetchAll(ctx context.Context, area string) ([]string, directory.WalkStats)
}

// Assembler builds the draft collections from either the directory website,
// one collection per area, or the offline text corpus as one collection.
type Assembler struct {
	cfg    *config.Config
	walker ListingWalker
	corpus *directory.CorpusParser
	store  storage.Collection
	logger *utils.Logger
}

func NewAssembler(cfg *config.Config, walker ListingWalker, store storage.Collection, logger *utils.Logger) *Assembler {
	return &Assembler{
		cfg:    cfg,
		walker: walker,
		corpus: directory.NewCorpusParser(logger),
		store:  store,
		logger: logger,
	}
}

// Build assembles and persists the collections for source, returning the
// paths written in order.
func (a *Assembler) Build(ctx context.Context, areas []string, source string) ([]string, error) {
	switch source {
	case SourceWeb:
		return a.buildWeb(ctx, areas)
	case SourceFile:
		return a.buildFile()
	}
	return nil, fmt.Errorf("assembler: unknown source %q (want %q or %q)", source, SourceWeb, SourceFile)
}

func (a *Assembler) buildWeb(ctx context.Context, areas []string) ([]string, error) {
	a.logger.Info("[assembler] Walking %d areas (concurrency %d)", len(areas), a.cfg.AreaConcurrency)

	results := make([][]*models.Eatery, len(areas))
	pool := utils.NewWorkerPool(a.cfg.AreaConcurrency, a.cfg.AreaDelayMs)
	for i, area := range areas {
		i, area := i, area
		pool.Submit(func() {
			fragments, _ := a.walker.FetchAll(ctx, area)
			records := make([]*models.Eatery, 0, len(fragments))
			for _, f := range fragments {
				records = append(records, directory.ParseFragment(f, area))
			}
			results[i] = records
		})
	}
	pool.Wait()

	paths := make([]string, 0, len(areas))
	for i, area := range areas {
		path := a.cfg.AreaDataPath(area)
		if err := a.store.Save(path, results[i]); err != nil {
			return paths, fmt.Errorf("assembler: save %s: %w", area, err)
		}
		a.logger.Info("[assembler] %s: %d records -> %s", area, len(results[i]), path)
		paths = append(paths, path)
	}
	return paths, nil
}

func (a *Assembler) buildFile() ([]string, error) {
	f, err := os.Open(a.cfg.CorpusPath)
	if err != nil {
		return nil, fmt.Errorf("assembler: open corpus: %w", err)
	}
	defer f.Close()

	records, err := a.corpus.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("assembler: %w", err)
	}

	path := a.cfg.FileDataPath()
	if err := a.store.Save(path, records); err != nil {
		return nil, fmt.Errorf("assembler: save corpus collection: %w", err)
	}
	a.logger.Info("[assembler] Corpus: %d records -> %s", len(records), path)
	return []string{path}, nil
}
