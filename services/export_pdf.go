package services

import (
	"fmt"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

// GeneratePDFReport creates the HPP report as a PDF using maroto/v2.
func GeneratePDFReport(data ReportData) ([]byte, error) {
	cfg := config.NewBuilder().
		WithOrientation(orientation.Vertical).
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).
		WithTopMargin(10).
		WithRightMargin(10).
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
			Size:    7,
			Color:   &props.Color{Red: 120, Green: 120, Blue: 120},
		}).
		Build()

	m := maroto.New(cfg)

	addReportHeader(m, data)
	addCostSummary(m, data.Result)
	addIngredientTable(m, data.Result.Ingredients)
	addMarginAnalysis(m, data.Result)
	addReportFooter(m, data)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}
	return doc.GetBytes(), nil
}

func addReportHeader(m core.Maroto, data ReportData) {
	m.AddRows(
		row.New(12).Add(
			col.New(12).Add(
				text.New("Laporan HPP - "+data.ProductName, props.Text{
					Size:  16,
					Style: fontstyle.Bold,
					Align: align.Center,
				}),
			),
		),
	)
	m.AddRows(
		row.New(7).Add(
			col.New(12).Add(
				text.New("Tanggal: "+data.CreatedDate, props.Text{
					Size:  9,
					Align: align.Center,
					Color: &props.Color{Red: 80, Green: 80, Blue: 80},
				}),
			),
		),
	)
	m.AddRows(row.New(4))
}

// addCostSummary renders the batch cost block above the ingredient table.
func addCostSummary(m core.Maroto, r CalcResult) {
	addSectionTitle(m, "Ringkasan Perhitungan")
	addLabelValueRow(m, "Total Biaya per Batch", FormatRupiah(r.TotalBatchCost), true)
	addLabelValueRow(m, "Biaya Bahan Baku", FormatRupiah(r.MaterialCost), false)
	addLabelValueRow(m, "Biaya Operasional", FormatRupiah(r.OperationalCost), false)
	addLabelValueRow(m, "Biaya Lain-lain", FormatRupiah(r.OtherCost), false)
	addLabelValueRow(m, "Jumlah Output", fmt.Sprintf("%d porsi/unit", r.OutputUnits), false)
	addLabelValueRow(m, "HPP per Porsi/Unit", FormatRupiah(r.HPPPerUnit), true)
	addLabelValueRow(m, "Harga Jual Disarankan", FormatRupiah(r.SuggestedSellingPrice), true)
	m.AddRows(row.New(4))
}

func addIngredientTable(m core.Maroto, ingredients []IngredientCost) {
	addSectionTitle(m, "Rincian Bahan")

	headerBg := &props.Color{Red: 33, Green: 37, Blue: 41}
	headerText := props.Text{
		Size:  8,
		Style: fontstyle.Bold,
		Align: align.Center,
		Color: &props.Color{Red: 255, Green: 255, Blue: 255},
	}
	headerTextLeft := headerText
	headerTextLeft.Align = align.Left
	headerCell := props.Cell{BackgroundColor: headerBg}

	m.AddRows(
		row.New(8).Add(
			col.New(4).Add(text.New("Bahan", headerTextLeft)).WithStyle(&headerCell),
			col.New(1).Add(text.New("Qty", headerText)).WithStyle(&headerCell),
			col.New(1).Add(text.New("Satuan", headerText)).WithStyle(&headerCell),
			col.New(2).Add(text.New("Harga/Unit", headerText)).WithStyle(&headerCell),
			col.New(2).Add(text.New("Subtotal", headerText)).WithStyle(&headerCell),
			col.New(2).Add(text.New("Kontribusi", headerText)).WithStyle(&headerCell),
		),
	)

	baseText := props.Text{Size: 8, Align: align.Center}
	leftText := baseText
	leftText.Align = align.Left
	rightText := baseText
	rightText.Align = align.Right

	stripe := &props.Cell{BackgroundColor: &props.Color{Red: 245, Green: 245, Blue: 245}}

	for i, ing := range ingredients {
		colName := col.New(4).Add(text.New(ing.Name, leftText))
		colQty := col.New(1).Add(text.New(formatQty(ing.Quantity), rightText))
		colUnit := col.New(1).Add(text.New(ing.Unit, baseText))
		colPrice := col.New(2).Add(text.New(FormatRupiah(ing.PricePerUnit), rightText))
		colSubtotal := col.New(2).Add(text.New(FormatRupiah(ing.LineCost), rightText))
		colContrib := col.New(2).Add(text.New(FormatPercent(ing.ContributionPercent, 1, false), rightText))

		if i%2 == 1 {
			colName = colName.WithStyle(stripe)
			colQty = colQty.WithStyle(stripe)
			colUnit = colUnit.WithStyle(stripe)
			colPrice = colPrice.WithStyle(stripe)
			colSubtotal = colSubtotal.WithStyle(stripe)
			colContrib = colContrib.WithStyle(stripe)
		}

		m.AddRows(row.New(7).Add(colName, colQty, colUnit, colPrice, colSubtotal, colContrib))
	}

	m.AddRows(row.New(4))
}

func addMarginAnalysis(m core.Maroto, r CalcResult) {
	addSectionTitle(m, "Analisis Margin")
	addLabelValueRow(m, "Harga Jual Aktual", FormatRupiah(r.ActualSellingPrice), false)
	addLabelValueRow(m, "Target Margin", FormatPercent(r.TargetMarginPercent, 1, false), false)
	addLabelValueRow(m, "Margin Aktual", FormatPercent(r.ActualMarginPercent, 1, false), true)
	addLabelValueRow(m, "Gap vs Target", FormatGap(r.GapVsTarget), true)
	addLabelValueRow(m, "Status", string(r.Status), true)
}

func addSectionTitle(m core.Maroto, title string) {
	m.AddRows(
		row.New(8).Add(
			col.New(12).Add(
				text.New(title, props.Text{
					Size:  11,
					Style: fontstyle.Bold,
					Align: align.Left,
				}),
			),
		),
	)
}

func addLabelValueRow(m core.Maroto, label, value string, bold bool) {
	style := fontstyle.Normal
	if bold {
		style = fontstyle.Bold
	}
	bg := &props.Cell{BackgroundColor: &props.Color{Red: 240, Green: 240, Blue: 240}}

	m.AddRows(
		row.New(7).Add(
			col.New(8).Add(
				text.New(label, props.Text{Size: 9, Align: align.Left, Style: style}),
			).WithStyle(bg),
			col.New(4).Add(
				text.New(value, props.Text{Size: 9, Align: align.Right, Style: style}),
			).WithStyle(bg),
		),
	)
}

func addReportFooter(m core.Maroto, data ReportData) {
	m.AddRows(row.New(6))
	m.AddRows(
		row.New(6).Add(
			col.New(12).Add(
				text.New(
					fmt.Sprintf("Generated on %s", data.CreatedDate),
					props.Text{
						Size:  7,
						Align: align.Left,
						Color: &props.Color{Red: 140, Green: 140, Blue: 140},
					},
				),
			),
		),
	)
}
