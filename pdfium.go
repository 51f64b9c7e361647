package pdfoutline

import (
	"io"

	"github.com/klippa-app/go-pdfium"
	"github.com/klippa-app/go-pdfium/enums"
	"github.com/klippa-app/go-pdfium/references"
	"github.com/klippa-app/go-pdfium/requests"
	"github.com/klippa-app/go-pdfium/webassembly"
	"github.com/pkg/errors"
)

// NewPdfiumPool initialises an in-process pdfium runtime sized for
// concurrent use. Callers own the pool and must Close it.
func NewPdfiumPool() (pdfium.Pool, error) {
	return webassembly.Init(webassembly.Config{
		MinIdle:  1,
		MaxIdle:  2,
		MaxTotal: 4,
	})
}

// Extractor extracts document outlines from PDFs using pdfium.
type Extractor struct {
	instance pdfium.Pdfium
	config   Config
}

// NewExtractor creates a new outline extractor with default configuration.
func NewExtractor(instance pdfium.Pdfium) *Extractor {
	return &Extractor{
		instance: instance,
		config:   DefaultConfig(),
	}
}

// NewExtractorWithConfig creates a new outline extractor with custom configuration.
func NewExtractorWithConfig(instance pdfium.Pdfium, config Config) *Extractor {
	return &Extractor{
		instance: instance,
		config:   config,
	}
}

// ExtractFile extracts the outline of a PDF file.
func (e *Extractor) ExtractFile(filePath string) (*DocumentResult, error) {
	doc, err := e.instance.OpenDocument(&requests.OpenDocument{
		FilePath: &filePath,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to open PDF document")
	}
	defer e.instance.FPDF_CloseDocument(&requests.FPDF_CloseDocument{
		Document: doc.Document,
	})

	return e.extractDocument(doc.Document)
}

// ExtractBytes extracts the outline of PDF bytes.
func (e *Extractor) ExtractBytes(pdfBytes []byte) (*DocumentResult, error) {
	doc, err := e.instance.OpenDocument(&requests.OpenDocument{
		File: &pdfBytes,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to open PDF document")
	}
	defer e.instance.FPDF_CloseDocument(&requests.FPDF_CloseDocument{
		Document: doc.Document,
	})

	return e.extractDocument(doc.Document)
}

// ExtractReader extracts the outline of a PDF from an io.ReadSeeker.
func (e *Extractor) ExtractReader(reader io.ReadSeeker) (*DocumentResult, error) {
	doc, err := e.instance.OpenDocument(&requests.OpenDocument{
		FileReader: reader,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to open PDF document")
	}
	defer e.instance.FPDF_CloseDocument(&requests.FPDF_CloseDocument{
		Document: doc.Document,
	})

	return e.extractDocument(doc.Document)
}

// GetDocumentInfo returns basic information about a PDF without analyzing it.
func (e *Extractor) GetDocumentInfo(filePath string) (*DocumentInfo, error) {
	doc, err := e.instance.OpenDocument(&requests.OpenDocument{
		FilePath: &filePath,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to open PDF document")
	}
	defer e.instance.FPDF_CloseDocument(&requests.FPDF_CloseDocument{
		Document: doc.Document,
	})

	pageCount, err := e.instance.FPDF_GetPageCount(&requests.FPDF_GetPageCount{
		Document: doc.Document,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to get page count")
	}

	return &DocumentInfo{
		PageCount: pageCount.PageCount,
	}, nil
}

func (e *Extractor) extractDocument(docRef references.FPDF_DOCUMENT) (*DocumentResult, error) {
	source, err := newPdfiumSource(e.instance, docRef)
	if err != nil {
		return nil, err
	}

	analyzer := NewAnalyzerWithConfig(e.config)
	return analyzer.Analyze(source, source)
}

// pdfiumSource implements GlyphSource and RegionSource over one open
// pdfium document. It does not own the document handle.
type pdfiumSource struct {
	instance  pdfium.Pdfium
	doc       references.FPDF_DOCUMENT
	pageCount int
}

func newPdfiumSource(instance pdfium.Pdfium, doc references.FPDF_DOCUMENT) (*pdfiumSource, error) {
	pageCount, err := instance.FPDF_GetPageCount(&requests.FPDF_GetPageCount{
		Document: doc,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to get page count")
	}

	return &pdfiumSource{
		instance:  instance,
		doc:       doc,
		pageCount: pageCount.PageCount,
	}, nil
}

func (s *pdfiumSource) PageCount() int {
	return s.pageCount
}

func (s *pdfiumSource) PageDimensions(index int) (float64, float64, error) {
	page, err := s.instance.FPDF_LoadPage(&requests.FPDF_LoadPage{
		Document: s.doc,
		Index:    index,
	})
	if err != nil {
		return 0, 0, errors.Wrap(err, "failed to load page")
	}
	defer s.instance.FPDF_ClosePage(&requests.FPDF_ClosePage{
		Page: page.Page,
	})

	return s.pageSize(page.Page)
}

func (s *pdfiumSource) pageSize(page references.FPDF_PAGE) (float64, float64, error) {
	width, err := s.instance.FPDF_GetPageWidthF(&requests.FPDF_GetPageWidthF{
		Page: requests.Page{
			ByReference: &page,
		},
	})
	if err != nil {
		return 0, 0, errors.Wrap(err, "failed to get page width")
	}

	height, err := s.instance.FPDF_GetPageHeightF(&requests.FPDF_GetPageHeightF{
		Page: requests.Page{
			ByReference: &page,
		},
	})
	if err != nil {
		return 0, 0, errors.Wrap(err, "failed to get page height")
	}

	return float64(width.PageWidth), float64(height.PageHeight), nil
}

// PageGlyphs extracts all characters of a page with their bounding boxes,
// font names and sizes, converting PDF coordinates (origin bottom-left) to
// top-left origin.
func (s *pdfiumSource) PageGlyphs(index int) ([]Glyph, error) {
	page, err := s.instance.FPDF_LoadPage(&requests.FPDF_LoadPage{
		Document: s.doc,
		Index:    index,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to load page")
	}
	defer s.instance.FPDF_ClosePage(&requests.FPDF_ClosePage{
		Page: page.Page,
	})

	_, pageHeight, err := s.pageSize(page.Page)
	if err != nil {
		return nil, err
	}

	textPage, err := s.instance.FPDFText_LoadPage(&requests.FPDFText_LoadPage{
		Page: requests.Page{
			ByReference: &page.Page,
		},
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to load text page")
	}
	defer s.instance.FPDFText_ClosePage(&requests.FPDFText_ClosePage{
		TextPage: textPage.TextPage,
	})

	charCount, err := s.instance.FPDFText_CountChars(&requests.FPDFText_CountChars{
		TextPage: textPage.TextPage,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to count characters")
	}

	glyphs := make([]Glyph, 0, charCount.Count)
	for i := 0; i < charCount.Count; i++ {
		unicodeRes, err := s.instance.FPDFText_GetUnicode(&requests.FPDFText_GetUnicode{
			TextPage: textPage.TextPage,
			Index:    i,
		})
		if err != nil || unicodeRes.Unicode == 0 {
			continue
		}

		charBox, err := s.instance.FPDFText_GetCharBox(&requests.FPDFText_GetCharBox{
			TextPage: textPage.TextPage,
			Index:    i,
		})
		if err != nil {
			continue
		}

		fontSizeVal := 12.0
		if fontSize, err := s.instance.FPDFText_GetFontSize(&requests.FPDFText_GetFontSize{
			TextPage: textPage.TextPage,
			Index:    i,
		}); err == nil {
			fontSizeVal = fontSize.FontSize
		}

		fontNameVal := ""
		if fontInfo, err := s.instance.FPDFText_GetFontInfo(&requests.FPDFText_GetFontInfo{
			TextPage: textPage.TextPage,
			Index:    i,
		}); err == nil {
			fontNameVal = fontInfo.FontName
		}

		glyphs = append(glyphs, Glyph{
			Char: rune(unicodeRes.Unicode),
			Box: Rect{
				X0: charBox.Left,
				Y0: pageHeight - charBox.Top,
				X1: charBox.Right,
				Y1: pageHeight - charBox.Bottom,
			},
			FontSize: fontSizeVal,
			FontName: fontNameVal,
		})
	}

	return glyphs, nil
}

// ExclusionRegions detects table-like regions on every page from explicit
// path objects. Detection is best-effort: pages that fail to load simply
// contribute no regions.
func (s *pdfiumSource) ExclusionRegions() (map[int][]Rect, error) {
	regions := make(map[int][]Rect)

	for i := 0; i < s.pageCount; i++ {
		page, err := s.instance.FPDF_LoadPage(&requests.FPDF_LoadPage{
			Document: s.doc,
			Index:    i,
		})
		if err != nil {
			continue
		}

		pageWidth, pageHeight, err := s.pageSize(page.Page)
		if err == nil {
			if rects := s.pageTableRegions(page.Page, pageWidth, pageHeight); len(rects) > 0 {
				regions[i] = rects
			}
		}

		s.instance.FPDF_ClosePage(&requests.FPDF_ClosePage{
			Page: page.Page,
		})
	}

	return regions, nil
}

// pageTableRegions finds boxed path objects that look like table frames:
// closed rectangular paths of meaningful extent that are neither page
// borders nor thin rules.
func (s *pdfiumSource) pageTableRegions(page references.FPDF_PAGE, pageWidth, pageHeight float64) []Rect {
	const minRegionWidth = 50.0
	const minRegionHeight = 20.0

	countResp, err := s.instance.FPDFPage_CountObjects(&requests.FPDFPage_CountObjects{
		Page: requests.Page{
			ByReference: &page,
		},
	})
	if err != nil {
		return nil
	}

	var rects []Rect
	for i := 0; i < countResp.Count; i++ {
		objResp, err := s.instance.FPDFPage_GetObject(&requests.FPDFPage_GetObject{
			Page: requests.Page{
				ByReference: &page,
			},
			Index: i,
		})
		if err != nil {
			continue
		}

		typeResp, err := s.instance.FPDFPageObj_GetType(&requests.FPDFPageObj_GetType{
			PageObject: objResp.PageObject,
		})
		if err != nil || typeResp.Type != enums.FPDF_PAGEOBJ_PATH {
			continue
		}

		boundsResp, err := s.instance.FPDFPageObj_GetBounds(&requests.FPDFPageObj_GetBounds{
			PageObject: objResp.PageObject,
		})
		if err != nil {
			continue
		}

		segCount, err := s.instance.FPDFPath_CountSegments(&requests.FPDFPath_CountSegments{
			PageObject: objResp.PageObject,
		})
		if err != nil || segCount.Count < 4 {
			continue
		}

		rect := Rect{
			X0: float64(boundsResp.Left),
			Y0: pageHeight - float64(boundsResp.Top),
			X1: float64(boundsResp.Right),
			Y1: pageHeight - float64(boundsResp.Bottom),
		}

		if rect.Width() < minRegionWidth || rect.Height() < minRegionHeight {
			continue
		}
		if isPageBorder(rect, pageWidth, pageHeight) {
			continue
		}

		rects = append(rects, rect)
	}

	return mergeOverlapping(rects)
}

// isPageBorder reports whether a rectangle is a page or content border
// rather than a table frame.
func isPageBorder(rect Rect, pageWidth, pageHeight float64) bool {
	const borderTolerance = 20.0
	const fullSpanThreshold = 0.90

	if rect.Width() > pageWidth*fullSpanThreshold && rect.Height() > pageHeight*fullSpanThreshold {
		return true
	}
	if rect.X0 < borderTolerance && rect.X1 > pageWidth-borderTolerance &&
		rect.Y0 < borderTolerance && rect.Y1 > pageHeight-borderTolerance {
		return true
	}

	return false
}

// mergeOverlapping collapses overlapping rectangles into their unions so a
// table drawn as nested frames yields a single exclusion region.
func mergeOverlapping(rects []Rect) []Rect {
	if len(rects) <= 1 {
		return rects
	}

	merged := make([]Rect, 0, len(rects))
	for _, rect := range rects {
		absorbed := false
		for i := range merged {
			if merged[i].Intersects(rect) {
				if rect.X0 < merged[i].X0 {
					merged[i].X0 = rect.X0
				}
				if rect.Y0 < merged[i].Y0 {
					merged[i].Y0 = rect.Y0
				}
				if rect.X1 > merged[i].X1 {
					merged[i].X1 = rect.X1
				}
				if rect.Y1 > merged[i].Y1 {
					merged[i].Y1 = rect.Y1
				}
				absorbed = true
				break
			}
		}
		if !absorbed {
			merged = append(merged, rect)
		}
	}

	return merged
}
