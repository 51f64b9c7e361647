package pdfoutline

import (
	"log"
	"time"

	"github.com/pkg/errors"
)

// ProcessingMetrics contains timing and statistics for one document run.
type ProcessingMetrics struct {
	TotalTime       time.Duration
	PageExtractions []PageMetrics
	Statistics      DocumentStatistics
}

// PageMetrics contains timing for a single page.
type PageMetrics struct {
	PageNumber int
	Duration   time.Duration
}

// DocumentStatistics contains document-level statistics.
type DocumentStatistics struct {
	TotalPages         int
	TotalBlocks        int
	BoilerplateRemoved int
	OutlineEntries     int
}

// Analyzer infers a document outline from glyph geometry. It is stateless
// across documents: each Analyze call is independent end-to-end.
type Analyzer struct {
	config Config
}

// NewAnalyzer creates an analyzer with default configuration.
func NewAnalyzer() *Analyzer {
	return &Analyzer{config: DefaultConfig()}
}

// NewAnalyzerWithConfig creates an analyzer with custom configuration.
func NewAnalyzerWithConfig(config Config) *Analyzer {
	return &Analyzer{config: config}
}

// Analyze runs the full pipeline over one document: line building per page,
// boilerplate filtering, title detection and heading ranking. The regions
// source may be nil; a failing region detector degrades to zero exclusion
// regions rather than aborting.
func (a *Analyzer) Analyze(source GlyphSource, regions RegionSource) (*DocumentResult, error) {
	result, _, err := a.analyze(source, regions)
	return result, err
}

// AnalyzeWithMetrics runs the pipeline and also returns per-page timing and
// document statistics.
func (a *Analyzer) AnalyzeWithMetrics(source GlyphSource, regions RegionSource) (*DocumentResult, ProcessingMetrics, error) {
	result, metrics, err := a.analyze(source, regions)
	if err != nil {
		return nil, ProcessingMetrics{}, err
	}
	return result, metrics, nil
}

func (a *Analyzer) analyze(source GlyphSource, regions RegionSource) (*DocumentResult, ProcessingMetrics, error) {
	startTime := time.Now()
	pageCount := source.PageCount()

	exclusions := map[int][]Rect{}
	if regions != nil {
		if detected, err := regions.ExclusionRegions(); err == nil {
			exclusions = detected
		} else if a.config.EnableMetricsLogging {
			log.Printf("table detection failed, continuing without exclusion regions: %v", err)
		}
	}

	var blocks []TextBlock
	var pageMetrics []PageMetrics
	var firstPageHeight float64

	for i := 0; i < pageCount; i++ {
		pageStart := time.Now()

		width, height, err := source.PageDimensions(i)
		if err != nil {
			return nil, ProcessingMetrics{}, errors.Wrapf(err, "failed to get dimensions of page %d", i+1)
		}
		if i == 0 {
			firstPageHeight = height
		}

		glyphs, err := source.PageGlyphs(i)
		if err != nil {
			return nil, ProcessingMetrics{}, errors.Wrapf(err, "failed to extract glyphs of page %d", i+1)
		}

		blocks = append(blocks, buildPageBlocks(glyphs, exclusions[i], width, i, a.config)...)

		pageMetrics = append(pageMetrics, PageMetrics{
			PageNumber: i + 1,
			Duration:   time.Since(pageStart),
		})
	}

	totalBlocks := len(blocks)
	blocks = filterBoilerplate(blocks, pageCount, a.config)

	title := detectTitle(blocks, firstPageHeight, a.config)
	outline := detectHeadings(blocks, title, a.config)
	title = fallbackTitle(title, outline)

	metrics := ProcessingMetrics{
		TotalTime:       time.Since(startTime),
		PageExtractions: pageMetrics,
		Statistics: DocumentStatistics{
			TotalPages:         pageCount,
			TotalBlocks:        totalBlocks,
			BoilerplateRemoved: totalBlocks - len(blocks),
			OutlineEntries:     len(outline),
		},
	}

	if a.config.EnableMetricsLogging {
		logProcessingMetrics(metrics)
	}

	return &DocumentResult{
		Title:   title,
		Outline: outline,
	}, metrics, nil
}

// logProcessingMetrics logs the processing metrics in a readable format.
func logProcessingMetrics(metrics ProcessingMetrics) {
	log.Println("┌─────────────────────────────────────────────┐")
	log.Println("│ Outline Extraction Metrics                  │")
	log.Println("├─────────────────────────────────────────────┤")
	log.Printf("│ Total Time: %-31v │\n", metrics.TotalTime.Round(time.Millisecond))
	log.Println("├─────────────────────────────────────────────┤")
	log.Println("│ Document Statistics                         │")
	log.Println("├─────────────────────────────────────────────┤")
	log.Printf("│   Pages:           %-24d │\n", metrics.Statistics.TotalPages)
	log.Printf("│   Text blocks:     %-24d │\n", metrics.Statistics.TotalBlocks)
	log.Printf("│   Boilerplate:     %-24d │\n", metrics.Statistics.BoilerplateRemoved)
	log.Printf("│   Outline entries: %-24d │\n", metrics.Statistics.OutlineEntries)
	log.Println("├─────────────────────────────────────────────┤")
	log.Println("│ Per-Page Timing                             │")
	log.Println("├─────────────────────────────────────────────┤")

	for _, pm := range metrics.PageExtractions {
		log.Printf("│   Page %2d: %-30v │\n", pm.PageNumber, pm.Duration.Round(time.Millisecond))
	}

	if len(metrics.PageExtractions) > 0 {
		avgTime := metrics.TotalTime / time.Duration(len(metrics.PageExtractions))
		log.Println("├─────────────────────────────────────────────┤")
		log.Printf("│ Avg per page: %-28v │\n", avgTime.Round(time.Millisecond))
	}

	log.Println("└─────────────────────────────────────────────┘")
}
