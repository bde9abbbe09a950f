// Package model provides the data types shared by every stage of the
// extraction cascade.
//
// The input side is a [Document]: raw bytes plus a declared [Kind]. Native
// PDF extraction produces positioned [TextSpan] values, OCR produces
// [WordBox] values, and both are turned into [TableRow] values by the
// tables package.
//
// # Results
//
// The cascade returns a single [ExtractionResult] carrying the recovered
// text, the markdown table rows in discovery order and the [Method] that
// produced them:
//
//	res, err := extractor.Extract(ctx, data, model.KindPDF, "invoice.pdf")
//	if err != nil {
//	    // the document could not be opened at all
//	}
//	fmt.Println(res.Method, len(res.Tables))
//
// # Tables
//
// Tables are not modelled as objects. A table is the maximal run of
// consecutive rows; each row renders itself with [TableRow.Markdown]:
//
//	model.TableRow{"Item", "Qty", "Price"}.Markdown() // "| Item | Qty | Price |"
//
// Cell text is trimmed but pipe characters inside a cell are not escaped.
package model
