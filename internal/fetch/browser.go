package fetch

import (
	"context"
	"strings"
	"time"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/PuerkitoBio/goquery"
	"github.com/chromedp/chromedp"
	"github.com/rs/zerolog"
)

// BrowserFetcher renders pages in a headless browser and converts the result
// to markdown. It is the fallback engine when no Firecrawl API key is
// configured. Requires Chrome/Chromium on the host.
type BrowserFetcher struct {
	waitMs  int
	timeout time.Duration
	log     zerolog.Logger
}

// NewBrowserFetcher creates a headless-browser fetcher with the given settle
// wait in milliseconds.
func NewBrowserFetcher(waitMs int, logger zerolog.Logger) *BrowserFetcher {
	if waitMs == 0 {
		waitMs = DefaultWaitMs
	}
	return &BrowserFetcher{
		waitMs:  waitMs,
		timeout: DefaultTimeout,
		log:     logger,
	}
}

// Fetch navigates to the URL, waits for client-rendered content to settle,
// then converts the page HTML to markdown.
func (f *BrowserFetcher) Fetch(ctx context.Context, urlStr string) (*Result, error) {
	if urlStr == "" {
		return nil, &Error{URL: urlStr, Message: "url is empty"}
	}

	allocCtx, cancel := chromedp.NewExecAllocator(ctx,
		append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.Flag("headless", true),
			chromedp.Flag("disable-gpu", true),
			chromedp.Flag("no-sandbox", true),
			chromedp.Flag("disable-dev-shm-usage", true),
		)...,
	)
	defer cancel()

	browserCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	browserCtx, cancel = context.WithTimeout(browserCtx, f.timeout)
	defer cancel()

	var html string
	err := chromedp.Run(browserCtx,
		chromedp.Navigate(urlStr),
		chromedp.WaitReady("body"),
		chromedp.Sleep(time.Duration(f.waitMs)*time.Millisecond),
		chromedp.OuterHTML("html", &html),
	)
	if err != nil {
		return nil, &Error{URL: urlStr, Message: "browser rendering failed", Cause: err}
	}

	markdown, err := htmlToMarkdown(html)
	if err != nil {
		return nil, &Error{URL: urlStr, Message: "markdown conversion failed", Cause: err}
	}
	if strings.TrimSpace(markdown) == "" {
		return nil, &Error{URL: urlStr, Message: "no extractable text content"}
	}

	f.log.Debug().Str("url", urlStr).Int("markdown_len", len(markdown)).Msg("browser fetch complete")

	return &Result{URL: urlStr, Markdown: markdown}, nil
}

// htmlToMarkdown strips noise elements and converts the remaining HTML to
// markdown, the same intermediate format Firecrawl returns.
func htmlToMarkdown(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", err
	}

	doc.Find("script, style, noscript, iframe, svg").Remove()

	cleaned, err := doc.Html()
	if err != nil {
		return "", err
	}

	return htmltomarkdown.ConvertString(cleaned)
}
