package report

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/guttosm/auctionreport/internal/domain/models"
	"github.com/guttosm/auctionreport/internal/format"
)

const (
	titleSuffix    = " - RELATÓRIO DE VENDAS DE LEILÃO"
	footerLayout   = "02/01/2006 15:04:05"
	marginCm       = 2.5
	headerFontSize = 20 // half-points
	cellFontSize   = 18
	descriptionCol = 4
	// A4 landscape, in twips.
	pageWidth  = 16838
	pageHeight = 11906
)

var documentWidthsCm = []float64{2.0, 1.5, 2.0, 2.0, 8.0, 2.0, 3.0, 1.5, 3.0, 2.5, 2.5, 2.5, 2.0}

// Title is the heading printed above the lot table.
func Title(auctionName string) string {
	return auctionName + titleSuffix
}

// WriteDOCX renders r as a WordprocessingML package.
//
// Layout:
//   - Page header with the auction name.
//   - Bold centred title, then a 13-column grid table, one row per lot.
//   - Footer "Gerado em: dd/mm/yyyy hh:mm:ss" from r.GeneratedAt.
func WriteDOCX(w io.Writer, r models.Report, loc format.Locale) error {
	zw := zip.NewWriter(w)
	parts := []struct {
		name string
		body string
	}{
		{"[Content_Types].xml", contentTypesXML},
		{"_rels/.rels", rootRelsXML},
		{"word/_rels/document.xml.rels", documentRelsXML},
		{"word/styles.xml", stylesXML},
		{"word/header1.xml", headerPart(r.AuctionName)},
		{"word/footer1.xml", footerPart("Gerado em: " + r.GeneratedAt.Format(footerLayout))},
		{"word/document.xml", documentPart(r, loc)},
	}
	for _, p := range parts {
		fw, err := zw.Create(p.name)
		if err != nil {
			return fmt.Errorf("create %s: %w", p.name, err)
		}
		if _, err := io.WriteString(fw, p.body); err != nil {
			return fmt.Errorf("write %s: %w", p.name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("close package: %w", err)
	}
	return nil
}

func twips(cm float64) int {
	return int(math.Round(cm * 1440 / 2.54))
}

func escape(s string) string {
	var b bytes.Buffer
	_ = xml.EscapeText(&b, []byte(s))
	return b.String()
}

// paragraph writes a single-run paragraph. size is in half-points; 0 keeps the default.
func paragraph(b *strings.Builder, text, align string, bold bool, size int) {
	b.WriteString("<w:p><w:pPr>")
	if align != "" {
		fmt.Fprintf(b, `<w:jc w:val="%s"/>`, align)
	}
	b.WriteString("</w:pPr><w:r>")
	if bold || size > 0 {
		b.WriteString("<w:rPr>")
		if bold {
			b.WriteString("<w:b/>")
		}
		if size > 0 {
			fmt.Fprintf(b, `<w:sz w:val="%d"/>`, size)
		}
		b.WriteString("</w:rPr>")
	}
	fmt.Fprintf(b, `<w:t xml:space="preserve">%s</w:t></w:r></w:p>`, escape(text))
}

func cell(b *strings.Builder, width int, text, align string, bold bool, size int) {
	fmt.Fprintf(b, `<w:tc><w:tcPr><w:tcW w:w="%d" w:type="dxa"/><w:vAlign w:val="center"/></w:tcPr>`, width)
	paragraph(b, text, align, bold, size)
	b.WriteString("</w:tc>")
}

func documentPart(r models.Report, loc format.Locale) string {
	widths := make([]int, len(documentWidthsCm))
	for i, cm := range documentWidthsCm {
		widths[i] = twips(cm)
	}

	var b strings.Builder
	b.WriteString(xml.Header)
	b.WriteString(`<w:document xmlns:w="` + nsW + `" xmlns:r="` + nsR + `"><w:body>`)

	paragraph(&b, Title(r.AuctionName), "center", true, 0)
	paragraph(&b, "", "", false, 0)

	b.WriteString(`<w:tbl><w:tblPr><w:tblStyle w:val="TableGrid"/><w:tblW w:w="0" w:type="auto"/><w:tblLayout w:type="fixed"/></w:tblPr><w:tblGrid>`)
	for _, wd := range widths {
		fmt.Fprintf(&b, `<w:gridCol w:w="%d"/>`, wd)
	}
	b.WriteString("</w:tblGrid>")

	b.WriteString(`<w:tr><w:trPr><w:tblHeader/></w:trPr>`)
	for i, h := range documentHeaders {
		cell(&b, widths[i], h, "center", true, headerFontSize)
	}
	b.WriteString("</w:tr>")

	for _, lot := range r.Lots {
		b.WriteString("<w:tr>")
		for i, v := range documentRow(lot, loc) {
			align := "center"
			if i == descriptionCol {
				align = "left"
			}
			cell(&b, widths[i], v, align, false, cellFontSize)
		}
		b.WriteString("</w:tr>")
	}
	b.WriteString("</w:tbl>")

	m := twips(marginCm)
	fmt.Fprintf(&b, `<w:sectPr><w:headerReference w:type="default" r:id="rIdHeader"/><w:footerReference w:type="default" r:id="rIdFooter"/>`+
		`<w:pgSz w:w="%d" w:h="%d" w:orient="landscape"/>`+
		`<w:pgMar w:top="%d" w:right="%d" w:bottom="%d" w:left="%d" w:header="708" w:footer="708" w:gutter="0"/></w:sectPr>`,
		pageWidth, pageHeight, m, m, m, m)
	b.WriteString("</w:body></w:document>")
	return b.String()
}

func headerPart(text string) string {
	var b strings.Builder
	b.WriteString(xml.Header)
	b.WriteString(`<w:hdr xmlns:w="` + nsW + `">`)
	paragraph(&b, text, "center", false, 0)
	b.WriteString("</w:hdr>")
	return b.String()
}

func footerPart(text string) string {
	var b strings.Builder
	b.WriteString(xml.Header)
	b.WriteString(`<w:ftr xmlns:w="` + nsW + `">`)
	paragraph(&b, text, "right", false, cellFontSize)
	b.WriteString("</w:ftr>")
	return b.String()
}

const (
	nsW = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"
	nsR = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"
)

const contentTypesXML = xml.Header + `<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">` +
	`<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>` +
	`<Default Extension="xml" ContentType="application/xml"/>` +
	`<Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>` +
	`<Override PartName="/word/styles.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.styles+xml"/>` +
	`<Override PartName="/word/header1.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.header+xml"/>` +
	`<Override PartName="/word/footer1.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.footer+xml"/>` +
	`</Types>`

const rootRelsXML = xml.Header + `<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` +
	`<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>` +
	`</Relationships>`

const documentRelsXML = xml.Header + `<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` +
	`<Relationship Id="rIdStyles" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/styles" Target="styles.xml"/>` +
	`<Relationship Id="rIdHeader" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/header" Target="header1.xml"/>` +
	`<Relationship Id="rIdFooter" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/footer" Target="footer1.xml"/>` +
	`</Relationships>`

// stylesXML defines the "Table Grid" style: single 4/8pt borders on every edge.
const stylesXML = xml.Header + `<w:styles xmlns:w="` + nsW + `">` +
	`<w:style w:type="table" w:styleId="TableGrid"><w:name w:val="Table Grid"/><w:tblPr><w:tblBorders>` +
	`<w:top w:val="single" w:sz="4" w:space="0" w:color="auto"/>` +
	`<w:left w:val="single" w:sz="4" w:space="0" w:color="auto"/>` +
	`<w:bottom w:val="single" w:sz="4" w:space="0" w:color="auto"/>` +
	`<w:right w:val="single" w:sz="4" w:space="0" w:color="auto"/>` +
	`<w:insideH w:val="single" w:sz="4" w:space="0" w:color="auto"/>` +
	`<w:insideV w:val="single" w:sz="4" w:space="0" w:color="auto"/>` +
	`</w:tblBorders></w:tblPr></w:style></w:styles>`
