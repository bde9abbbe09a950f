// Package ocr recognizes the text of rendered pages and uploaded images.
//
// Two recognizers cooperate on every page. The primary recognizer returns
// text lines with confidences and gives the best plain text. The secondary
// recognizer returns word boxes, which are the only input the line cluster
// table detector understands, so it runs on every page too.
//
// [Engines] owns both recognizers for the life of the process. The primary
// recognizer is expensive to load, so it is loaded once on first use (or
// eagerly with [Engines.Warm]); if loading fails it stays disabled and every
// page is recognized by the secondary recognizer alone.
//
// [Worker] runs the per-page pipeline:
//
//	w, err := ocr.NewWorker(engines, ocr.DefaultWorkerConfig(), logger)
//	text, tables, err := w.Process(ctx, img)
//
// # Tesseract
//
// The bundled recognizers wrap Tesseract via gosseract and are only
// compiled with the "ocr" build tag:
//
//	go build -tags ocr
//
// This requires Tesseract and its language data to be installed. On macOS:
//
//	brew install tesseract tesseract-lang
//
// On Ubuntu/Debian:
//
//	apt-get install tesseract-ocr tesseract-ocr-por
//
// Without the tag, [NewLineRecognizer] fails with [ErrOCRNotEnabled] and
// the recognizer returned by [NewWordRecognizer] fails every call with it,
// so [Engines] reports both engines as unusable and pages fail cleanly.
package ocr
