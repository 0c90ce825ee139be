package exporter

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"strings"
)

const wordNS = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"

// RunStyle captures the run formatting of a paragraph style.
type RunStyle struct {
	Bold   bool
	Italic bool
	Size   int // half-points
	Color  string
}

const (
	TitleColor   = "111111"
	HeadingColor = "1F2937"
	TitleSize    = 32
	HeadingSize  = 24
)

// styleMap lists the paragraph styles written to word/styles.xml, keyed by style id.
var styleMap = []struct {
	ID    string
	Name  string
	Style RunStyle
}{
	{ID: "Title", Name: "Title", Style: RunStyle{Bold: true, Size: TitleSize, Color: TitleColor}},
	{ID: "Heading1", Name: "heading 1", Style: RunStyle{Bold: true, Size: HeadingSize, Color: HeadingColor}},
	{ID: "Subtitle", Name: "Subtitle", Style: RunStyle{Italic: true}},
}

const contentTypesXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>
<Default Extension="xml" ContentType="application/xml"/>
<Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>
<Override PartName="/word/styles.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.styles+xml"/>
</Types>`

const rootRelsXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>
</Relationships>`

const documentRelsXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/styles" Target="styles.xml"/>
</Relationships>`

// RenderDOCX writes the report as a WordprocessingML package.
func RenderDOCX(r Report) ([]byte, error) {
	parts := []struct {
		name    string
		content []byte
	}{
		{"[Content_Types].xml", []byte(contentTypesXML)},
		{"_rels/.rels", []byte(rootRelsXML)},
		{"word/_rels/document.xml.rels", []byte(documentRelsXML)},
		{"word/document.xml", documentXML(r)},
		{"word/styles.xml", stylesXML()},
	}

	var out bytes.Buffer
	zw := zip.NewWriter(&out)
	for _, p := range parts {
		w, err := zw.Create(p.name)
		if err != nil {
			return nil, fmt.Errorf("create %s: %w", p.name, err)
		}
		if _, err := w.Write(p.content); err != nil {
			return nil, fmt.Errorf("write %s: %w", p.name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

func documentXML(r Report) []byte {
	var b bytes.Buffer
	b.WriteString(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>`)
	b.WriteString(`<w:document xmlns:w="` + wordNS + `"><w:body>`)

	writeParagraph(&b, "Title", Block{Text: r.Title})
	writeParagraph(&b, "Subtitle", Block{Text: r.GeneratedLine()})
	for _, sec := range r.Sections {
		writeParagraph(&b, "Heading1", Block{Text: sec.Heading})
		for _, blk := range sec.Blocks {
			writeParagraph(&b, "", blk)
		}
	}

	b.WriteString(`<w:sectPr><w:pgSz w:w="12240" w:h="15840"/>`)
	b.WriteString(`<w:pgMar w:top="1440" w:right="1440" w:bottom="1440" w:left="1440" w:header="720" w:footer="720" w:gutter="0"/>`)
	b.WriteString(`</w:sectPr></w:body></w:document>`)
	return b.Bytes()
}

func writeParagraph(b *bytes.Buffer, style string, blk Block) {
	b.WriteString("<w:p>")
	if style != "" {
		b.WriteString(`<w:pPr><w:pStyle w:val="` + style + `"/></w:pPr>`)
	}
	if blk.Label != "" {
		b.WriteString("<w:r><w:rPr><w:b/></w:rPr>")
		writeText(b, blk.Label)
		b.WriteString("</w:r>")
		if blk.Text != "" {
			b.WriteString("<w:r>")
			writeText(b, " ")
			b.WriteString("</w:r>")
		}
	}
	if blk.Text != "" {
		b.WriteString("<w:r>")
		for i, line := range strings.Split(blk.Text, "\n") {
			if i > 0 {
				b.WriteString("<w:br/>")
			}
			writeText(b, line)
		}
		b.WriteString("</w:r>")
	}
	b.WriteString("</w:p>")
}

func writeText(b *bytes.Buffer, s string) {
	b.WriteString(`<w:t xml:space="preserve">`)
	_ = xml.EscapeText(b, []byte(s))
	b.WriteString("</w:t>")
}

func stylesXML() []byte {
	var b bytes.Buffer
	b.WriteString(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>`)
	b.WriteString(`<w:styles xmlns:w="` + wordNS + `">`)
	b.WriteString(`<w:docDefaults><w:rPrDefault><w:rPr><w:rFonts w:ascii="Calibri" w:hAnsi="Calibri"/><w:sz w:val="22"/></w:rPr></w:rPrDefault></w:docDefaults>`)
	b.WriteString(`<w:style w:type="paragraph" w:default="1" w:styleId="Normal"><w:name w:val="Normal"/><w:pPr><w:spacing w:after="120"/></w:pPr></w:style>`)
	for _, s := range styleMap {
		fmt.Fprintf(&b, `<w:style w:type="paragraph" w:styleId="%s"><w:name w:val="%s"/><w:basedOn w:val="Normal"/><w:next w:val="Normal"/>`, s.ID, s.Name)
		if strings.HasPrefix(s.ID, "Heading") {
			b.WriteString(`<w:pPr><w:keepNext/><w:spacing w:before="240" w:after="120"/><w:outlineLvl w:val="0"/></w:pPr>`)
		}
		b.WriteString(runProperties(s.Style))
		b.WriteString(`</w:style>`)
	}
	b.WriteString(`</w:styles>`)
	return b.Bytes()
}

func runProperties(rs RunStyle) string {
	var b strings.Builder
	b.WriteString("<w:rPr>")
	if rs.Bold {
		b.WriteString("<w:b/>")
	}
	if rs.Italic {
		b.WriteString("<w:i/>")
	}
	if rs.Color != "" {
		fmt.Fprintf(&b, `<w:color w:val="%s"/>`, rs.Color)
	}
	if rs.Size > 0 {
		fmt.Fprintf(&b, `<w:sz w:val="%d"/>`, rs.Size)
	}
	b.WriteString("</w:rPr>")
	return b.String()
}
