// Package pdfdoc opens PDF documents for the extraction strategies.
//
// A [Document] exposes the three things the strategies need from a PDF:
// the page count, the embedded text of a page (with positioned spans for
// table detection) and a raster rendering of a page for OCR.
//
// [FitzOpener] is the production implementation. MuPDF (through go-fitz)
// provides page count, page text and rendering. Glyph positions come from
// github.com/ledongthuc/pdf and are merged into [model.TextSpan] runs whose
// Y axis grows downwards from the top of the page, so that sorting by Y and
// then X gives reading order.
//
//	doc, err := pdfdoc.FitzOpener{}.Open(data)
//	if err != nil {
//		return err
//	}
//	defer doc.Close()
//
//	if pdfdoc.HasEmbeddedText(doc, 3, 50) {
//		text, _ := doc.Text(0)
//		spans, _ := doc.Spans(0)
//	}
package pdfdoc
