// Package pages runs per-page work over a document and assembles the page
// results back into one text.
//
// A [Scheduler] executes a [Task] for every page index, either one after
// another or on a bounded pool of goroutines. Results are always returned
// in page order no matter which page finishes first, and a page that fails
// (or panics) yields an empty [model.PageResult] carrying the error while
// the other pages carry on.
//
//	s := &pages.Scheduler{Parallel: true, Workers: 4}
//	results := s.Run(ctx, doc.PageCount(), func(ctx context.Context, i int) (string, []string, error) {
//		img, err := doc.RenderPage(i, 300)
//		if err != nil {
//			return "", nil, err
//		}
//		return worker.Process(ctx, img)
//	})
//	text, tables := pages.Assemble(results, "OCR")
package pages
