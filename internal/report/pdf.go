// Package report renders saved advice exchanges as printable PDF documents.
package report

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/alexanderramin/carewise/internal/domain"
	"github.com/signintech/gopdf"
)

// ErrFontUnavailable is returned when no TrueType font could be loaded.
var ErrFontUnavailable = errors.New("no usable TTF font found")

// DefaultFontPaths are tried in order when no font is configured.
var DefaultFontPaths = []string{
	"/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf",
	"/usr/share/fonts/dejavu/DejaVuSans.ttf",
	"/usr/share/fonts/ttf-dejavu/DejaVuSans.ttf",
	"/Library/Fonts/Arial Unicode.ttf",
}

const (
	fontFamily  = "body"
	marginLeft  = 40.0
	marginTop   = 40.0
	textWidth   = 515.0
	pageBottom  = 800.0
	titleSize   = 18
	headingSize = 13
	bodySize    = 10
)

// LineKind selects the font size and spacing of a report line.
type LineKind int

const (
	LineTitle LineKind = iota
	LineHeading
	LineBody
	LineBlank
)

// Line is one logical line of the report before wrapping.
type Line struct {
	Kind LineKind
	Text string
}

// Lines lays out e as a sequence of report lines.
func Lines(e *domain.AdviceEntry) []Line {
	rec := e.Record
	lines := []Line{
		{LineTitle, "CareWise " + strings.ToUpper(e.Role.Label()[:1]) + e.Role.Label()[1:]},
		{LineBody, "Generated: " + e.CreatedAt.UTC().Format("2006-01-02 15:04 MST")},
	}
	if e.Model != "" {
		lines = append(lines, Line{LineBody, "Model: " + e.Model})
	}
	lines = append(lines,
		Line{LineBlank, ""},
		Line{LineHeading, "Patient information"},
		Line{LineBody, "Gender: " + string(rec.Gender)},
		Line{LineBody, "Age: " + rec.AgeString()},
		Line{LineBody, "Primary diagnosis: " + rec.Diagnosis},
		Line{LineBody, "Operation: " + rec.OperationDescription},
		Line{LineBody, fmt.Sprintf("Operation date: %s (%d days ago)", rec.OperationDate, e.Timeline.DaysSinceOperation)},
		Line{LineBody, "Treatment: " + rec.TreatmentDetails},
		Line{LineBody, fmt.Sprintf("Treatment start: %s - %s", rec.TreatmentStartDate, e.Timeline.Status)},
	)
	if e.Question != "" {
		lines = append(lines,
			Line{LineBlank, ""},
			Line{LineHeading, "Question"},
			Line{LineBody, e.Question},
		)
	}
	lines = append(lines, Line{LineBlank, ""}, Line{LineHeading, "Advice"})
	for _, l := range strings.Split(strings.ReplaceAll(e.Response, "\r\n", "\n"), "\n") {
		if strings.TrimSpace(l) == "" {
			lines = append(lines, Line{LineBlank, ""})
			continue
		}
		lines = append(lines, Line{LineBody, strings.ReplaceAll(l, "**", "")})
	}
	return lines
}

// WritePDF renders e to w. fontPath overrides DefaultFontPaths when set.
func WritePDF(w io.Writer, e *domain.AdviceEntry, fontPath string) error {
	pdf := gopdf.GoPdf{}
	pdf.Start(gopdf.Config{PageSize: *gopdf.PageSizeA4})
	pdf.SetLeftMargin(marginLeft)
	pdf.SetTopMargin(marginTop)
	pdf.AddPage()

	if err := loadFont(&pdf, fontPath); err != nil {
		return err
	}

	for _, line := range Lines(e) {
		if pdf.GetY() > pageBottom {
			pdf.AddPage()
		}
		if line.Kind == LineBlank {
			pdf.Br(8)
			continue
		}

		size, step := fontMetrics(line.Kind)
		if err := pdf.SetFont(fontFamily, "", size); err != nil {
			return fmt.Errorf("setting font: %w", err)
		}
		wrapped, err := pdf.SplitText(line.Text, textWidth)
		if err != nil {
			return fmt.Errorf("wrapping text: %w", err)
		}
		for _, l := range wrapped {
			if pdf.GetY() > pageBottom {
				pdf.AddPage()
			}
			pdf.SetX(marginLeft)
			if err := pdf.Cell(nil, l); err != nil {
				return fmt.Errorf("writing text: %w", err)
			}
			pdf.Br(step)
		}
		if line.Kind != LineBody {
			pdf.Br(4)
		}
	}

	if _, err := pdf.WriteTo(w); err != nil {
		return fmt.Errorf("writing PDF: %w", err)
	}
	return nil
}

func loadFont(pdf *gopdf.GoPdf, fontPath string) error {
	paths := DefaultFontPaths
	if fontPath != "" {
		paths = []string{fontPath}
	}
	var lastErr error
	for _, p := range paths {
		if err := pdf.AddTTFFont(fontFamily, p); err != nil {
			lastErr = err
			continue
		}
		return nil
	}
	return fmt.Errorf("%w: %v", ErrFontUnavailable, lastErr)
}

func fontMetrics(kind LineKind) (size int, step float64) {
	switch kind {
	case LineTitle:
		return titleSize, 24
	case LineHeading:
		return headingSize, 18
	default:
		return bodySize, 14
	}
}
