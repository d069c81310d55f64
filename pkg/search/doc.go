// Package search implements a paginated search data source.
//
// A search turns one term into a lazy, cancellable stream of results:
// a StreamStarting result first, then one PageReady result per non-empty page
// of matching items, in page order. The stream completes when the next page
// is empty; that empty page is never emitted.
//
// # Basic Usage
//
//	gen, err := search.New(search.DefaultConfig())
//	if err != nil {
//		return err
//	}
//
//	stream := gen.Search(ctx, "an")
//	defer stream.Close()
//	for stream.Next() {
//		switch r := stream.Result().(type) {
//		case search.StreamStarting:
//			fmt.Println("searching", r.SearchTerm)
//		case search.PageReady:
//			fmt.Println(r.PageNumber, r.Items)
//		}
//	}
//	if err := stream.Err(); err != nil {
//		return err
//	}
//
// # Push Delivery
//
// Subscribe advances the search on its own goroutine and delivers results on
// a channel. The next page is computed only after the previous result was
// received.
//
//	sub := gen.Subscribe(ctx, "an")
//	for r := range sub.C() {
//		render(r)
//	}
//	if err := sub.Err(); err != nil {
//		// cancelled or provider failure
//	}
//
// # Latency
//
// Every page advance waits on the configured Delayer (default: a 200ms timer)
// before reading the provider. The timer is stopped when the context is
// cancelled. Tests substitute NoDelay or a recording Delayer.
//
// # Metrics
//
//   - search_streams_started_total - Streams created
//   - search_streams_finished_total{outcome} - Streams finished (done, cancelled, error)
//   - search_pages_emitted_total - PageReady results delivered
//   - search_page_duration_seconds - Time to advance one page, delay included
//   - search_active_streams - Streams not yet finished
package search
