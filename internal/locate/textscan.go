// internal/locate/textscan.go
package locate

import "github.com/valpere/RealtyScrapexter/internal/extract"

// Text-scan window size around each currency token. Wide enough to
// catch the address line that usually follows the price on rendered
// listing cards.
const scanWindow = 220

// ScanListingText is the explicit fallback used when the structural
// pass yields no listing candidates: it slices windows of the
// document's full text around each currency token. The windows are
// raw spans, not nodes; the collector routes them through the same
// free-text field extraction and deduplication as structural
// candidates.
func ScanListingText(fullText string) []string {
	if fullText == "" {
		return nil
	}

	type interval struct{ start, end int }
	var windows []interval
	for offset := 0; offset < len(fullText); {
		idx := indexPriceSignal(fullText[offset:])
		if idx < 0 {
			break
		}
		pos := offset + idx

		start := pos - scanWindow/2
		if start < 0 {
			start = 0
		}
		end := pos + scanWindow
		if end > len(fullText) {
			end = len(fullText)
		}

		// Merge overlapping windows so one listing's old/new price
		// pair does not yield two spans
		if n := len(windows); n > 0 && start <= windows[n-1].end {
			windows[n-1].end = end
		} else {
			windows = append(windows, interval{start, end})
		}
		offset = pos + 1
	}

	spans := make([]string, 0, len(windows))
	for _, w := range windows {
		spans = append(spans, fullText[w.start:w.end])
	}
	return spans
}

func indexPriceSignal(text string) int {
	for i := 0; i+1 < len(text); i++ {
		if text[i] == '$' && text[i+1] >= '0' && text[i+1] <= '9' {
			end := i + 20
			if end > len(text) {
				end = len(text)
			}
			if extract.HasPriceSignal(text[i:end]) {
				return i
			}
		}
	}
	return -1
}
