// Package pipeline wires the extraction stages together: load, validate,
// repair, section, format-select, extract, grade.
package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/civicdata-il/protokol/internal/cache"
	"github.com/civicdata-il/protokol/internal/format"
	"github.com/civicdata-il/protokol/internal/hebrew"
	"github.com/civicdata-il/protokol/internal/model"
	"github.com/civicdata-il/protokol/internal/router"
	"github.com/civicdata-il/protokol/internal/score"
	"github.com/civicdata-il/protokol/internal/section"
	"github.com/civicdata-il/protokol/internal/validate"
)

// Pipeline orchestrates the complete extraction of one document
type Pipeline struct {
	loader    *Loader
	validator *validate.Validator
	sections  *section.Detector
	formats   *format.Registry
	router    *router.Router
	scorer    *score.Scorer
	results   cache.Cache // nil when caching is disabled
	config    *model.Config
}

// NewPipeline creates a pipeline from configuration
func NewPipeline(cfg *model.Config) *Pipeline {
	rt := router.New(cfg.Router)

	var results cache.Cache
	if cfg.Cache.Enabled {
		results = cache.NewLayeredCache(
			time.Duration(cfg.Cache.MemoryTTL)*time.Minute,
			cfg.Cache.Dir,
			time.Duration(cfg.Cache.DiskTTL)*time.Minute,
		)
	}

	return &Pipeline{
		loader:    NewLoader(cfg.Input),
		validator: validate.NewValidator(cfg.Input),
		sections:  section.NewDetector(),
		formats:   format.NewRegistry(rt),
		router:    rt,
		scorer:    score.NewScorer(),
		results:   results,
		config:    cfg,
	}
}

// Formats exposes the format registry for listing and registration
func (p *Pipeline) Formats() *format.Registry { return p.formats }

// Router exposes the provider chain for availability checks
func (p *Pipeline) Router() *router.Router { return p.router }

// Process loads the document at path and extracts it. Cached results are
// returned without re-extraction when caching is enabled.
func (p *Pipeline) Process(ctx context.Context, path string) (*model.Report, error) {
	text, err := p.loader.Load(path)
	if err != nil {
		return nil, err
	}

	if p.results != nil {
		if report, ok := p.cached(text); ok {
			return report, nil
		}
	}

	report, err := p.Extract(ctx, path, text)
	if err != nil {
		return nil, err
	}

	if p.results != nil {
		p.store(text, report)
	}
	return report, nil
}

// Extract runs the extraction stages over already-loaded text. A section
// that parses badly degrades the record's confidence; it never aborts the
// document.
func (p *Pipeline) Extract(ctx context.Context, source, raw string) (*model.Report, error) {
	if err := p.validator.Check(raw); err != nil {
		return nil, fmt.Errorf("validate document: %w", err)
	}

	text := hebrew.CleanOCR(raw)

	detection := p.sections.Detect(text)
	if detection.Reversed {
		// Repair once at document level and re-run detection so section
		// spans reference the readable text
		text = hebrew.RepairNumerals(hebrew.Repair(text))
		detection = p.sections.Detect(text)
		detection.Reversed = true
	}

	f := p.formats.Detect(text)

	record := model.ProtocolRecord{
		FormatCode: f.Code(),
		Reversed:   detection.Reversed,
	}
	record.Header = f.ExtractHeader(p.sectionOrHead(text, detection, model.SectionHeader))
	record.Attendees = f.ExtractAttendees(p.sectionText(text, detection, model.SectionAttendees))
	record.Absent = f.ExtractAbsent(p.sectionText(text, detection, model.SectionAbsent))
	record.Staff = f.ExtractStaff(p.sectionText(text, detection, model.SectionStaff))

	discussionText := p.sectionText(text, detection, model.SectionDiscussions)
	if discussionText == "" {
		// Anchors missed; fall back to the first item marker, or the
		// whole document when none exists either
		discussionText = text
		if marks := p.sections.DiscussionPositions(text); len(marks) > 0 {
			discussionText = text[marks[0].Pos:]
		}
	}
	record.Discussions = f.ExtractDiscussions(discussionText)

	record.Confidence = recordConfidence(record, detection)

	return &model.Report{
		Source:      source,
		ExtractedAt: time.Now().UTC(),
		Record:      record,
		Quality:     p.scorer.Calculate(record),
	}, nil
}

// sectionText returns the detected section's text, "" when missing
func (p *Pipeline) sectionText(text string, detection model.DetectionResult, typ model.SectionType) string {
	if s, ok := detection.Section(typ); ok {
		return s.Text
	}
	return ""
}

// sectionOrHead falls back to the document head for the header, which
// municipal scans always open with
func (p *Pipeline) sectionOrHead(text string, detection model.DetectionResult, typ model.SectionType) string {
	if s := p.sectionText(text, detection, typ); s != "" {
		return s
	}
	runes := []rune(text)
	if len(runes) > 2000 {
		runes = runes[:2000]
	}
	return string(runes)
}

// recordConfidence averages the confidences of the parts that produced
// anything
func recordConfidence(record model.ProtocolRecord, detection model.DetectionResult) float64 {
	sum, n := 0.0, 0
	if detection.Confidence > 0 {
		sum += detection.Confidence
		n++
	}
	if record.Header.Confidence > 0 {
		sum += record.Header.Confidence
		n++
	}
	if len(record.Discussions) > 0 {
		itemSum := 0.0
		for _, item := range record.Discussions {
			itemSum += item.Confidence
		}
		sum += itemSum / float64(len(record.Discussions))
		n++
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

func (p *Pipeline) cached(text string) (*model.Report, bool) {
	data, found := p.results.Get(cache.DocumentKey(text))
	if !found {
		return nil, false
	}
	var report model.Report
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, false
	}
	return &report, true
}

func (p *Pipeline) store(text string, report *model.Report) {
	data, err := json.Marshal(report)
	if err != nil {
		return
	}
	_ = p.results.Set(cache.DocumentKey(text), data, 0)
}
