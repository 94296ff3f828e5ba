package services

import (
	"bytes"
	"context"
	"encoding/hex"
	"fmt"
	"image/color"
	"os"
	"sort"
	"strings"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"github.com/google/uuid"
	"golang.org/x/image/font"

	"github.com/yungbote/edi-backend/internal/platform/logger"
)

// ReportService renders a completed assessment as a shareable PNG card:
// one horizontal bar per harmonic state, scaled by percentage, with the
// dominant state called out in its own color.
type ReportService interface {
	RenderCard(ctx context.Context, userID, assessmentID uuid.UUID) (bytes.Buffer, error)
}

type reportService struct {
	log         *logger.Logger
	assessments AssessmentService

	titleFace font.Face
	labelFace font.Face
}

func NewReportService(log *logger.Logger, assessments AssessmentService) (ReportService, error) {
	serviceLog := log.With("service", "ReportService")

	fontPath := os.Getenv("REPORT_FONT")
	if strings.TrimSpace(fontPath) == "" {
		return nil, fmt.Errorf("Env var REPORT_FONT is empty")
	}
	serviceLog.Info("Loading report font", "font", fontPath)

	titleFace, err := loadFontFace(fontPath, 44)
	if err != nil {
		return nil, fmt.Errorf("could not load report font: %w", err)
	}
	labelFace, err := loadFontFace(fontPath, 24)
	if err != nil {
		return nil, fmt.Errorf("could not load report font: %w", err)
	}

	return &reportService{
		log:         serviceLog,
		assessments: assessments,
		titleFace:   titleFace,
		labelFace:   labelFace,
	}, nil
}

func (rs *reportService) RenderCard(ctx context.Context, userID, assessmentID uuid.UUID) (bytes.Buffer, error) {
	var buf bytes.Buffer

	results, err := rs.assessments.Results(ctx, userID, assessmentID)
	if err != nil {
		return buf, err
	}

	rows := make([]StateResult, len(results.States))
	copy(rows, results.States)
	sort.Slice(rows, func(i, j int) bool { return rows[i].Score > rows[j].Score })

	const (
		width      = 900
		headerH    = 140
		rowH       = 72
		marginX    = 60.0
		barH       = 28.0
		footerH    = 60
	)
	height := headerH + rowH*len(rows) + footerH

	dc := gg.NewContext(width, height)

	dc.SetColor(color.NRGBA{R: 0xFA, G: 0xF9, B: 0xF6, A: 0xFF})
	dc.DrawRectangle(0, 0, float64(width), float64(height))
	dc.Fill()

	dc.SetFontFace(rs.titleFace)
	dc.SetColor(color.NRGBA{R: 0x22, G: 0x22, B: 0x26, A: 0xFF})
	dc.DrawString("Emotional Dynamics Indicator", marginX, 70)

	dc.SetFontFace(rs.labelFace)
	if results.DominantState != nil {
		dc.SetColor(hexToColor(results.DominantState.Color))
		dc.DrawString(fmt.Sprintf("Dominant state: %s", results.DominantState.Name), marginX, 110)
	}

	barMaxW := float64(width) - 2*marginX - 220

	for i, row := range rows {
		y := float64(headerH + i*rowH)

		labelColor := color.NRGBA{R: 0x44, G: 0x44, B: 0x4A, A: 0xFF}
		if row.Dominant {
			labelColor = color.NRGBA{R: 0x22, G: 0x22, B: 0x26, A: 0xFF}
		}
		dc.SetColor(labelColor)
		dc.DrawString(row.State.Name, marginX, y+barH-4)

		barX := marginX + 200
		barW := barMaxW * row.Percentage / 100

		dc.SetColor(color.NRGBA{R: 0xE6, G: 0xE4, B: 0xDF, A: 0xFF})
		dc.DrawRoundedRectangle(barX, y, barMaxW, barH, barH/2)
		dc.Fill()

		fill := hexToColor(row.State.Color)
		if !row.Dominant {
			fill.A = 0xB0
		}
		dc.SetColor(fill)
		if barW > 0 {
			dc.DrawRoundedRectangle(barX, y, barW, barH, barH/2)
			dc.Fill()
		}

		dc.SetColor(color.NRGBA{R: 0x44, G: 0x44, B: 0x4A, A: 0xFF})
		dc.DrawString(fmt.Sprintf("%.0f%%  (avg %.1f)", row.Percentage, row.Average), barX+barMaxW+16, y+barH-4)
	}

	if err := dc.EncodePNG(&buf); err != nil {
		return buf, fmt.Errorf("failed to encode PNG: %w", err)
	}
	return buf, nil
}

func loadFontFace(fontPath string, size float64) (font.Face, error) {
	fontBytes, err := os.ReadFile(fontPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read font file: %w", err)
	}
	parsedFont, err := truetype.Parse(fontBytes)
	if err != nil {
		return nil, fmt.Errorf("failed to parse TTF: %w", err)
	}
	face := truetype.NewFace(parsedFont, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	return face, nil
}

func hexToColor(h string) color.NRGBA {
	fallback := color.NRGBA{R: 0x4F, G: 0x9D, B: 0x69, A: 0xFF}

	h = strings.TrimPrefix(strings.TrimSpace(h), "#")
	if len(h) != 6 {
		return fallback
	}
	raw, err := hex.DecodeString(h)
	if err != nil {
		return fallback
	}
	return color.NRGBA{R: raw[0], G: raw[1], B: raw[2], A: 0xFF}
}
