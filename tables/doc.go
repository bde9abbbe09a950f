// Package tables reconstructs table rows from positioned text without any
// knowledge of the table schema.
//
// Two detectors are provided, one per extraction path:
//
//   - [GeometryDetector] works on native PDF [model.TextSpan] values
//   - [LineClusterDetector] works on OCR [model.WordBox] values
//
// Both quantize positions into buckets ("rounding to the nearest multiple of
// a tolerance") so that items which are visually aligned land in the same
// row or column despite baseline jitter.
//
// # Geometry Detection
//
// Spans are grouped by their rounded Y position and sorted by X. A group is
// a row when it has at least MinColumns spans that also fall into at least
// MinColumns distinct X buckets:
//
//	d := tables.NewGeometryDetector()
//	rows := d.Detect(spans)
//
// # Line Cluster Detection
//
// OCR boxes are noisier, so words are grouped with a coarser fixed line
// height. Lines with two or more words are candidates; the candidates are
// accepted together only when their word counts are consistent:
//
//	d := tables.NewLineClusterDetector()
//	rows := d.Detect(words)
//
// # Configuration
//
// Both detectors share [Config]:
//
//	config := tables.DefaultConfig()
//	config.MinColumns = 2
//	d.Configure(config)
package tables
