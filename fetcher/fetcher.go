// Package fetcher downloads tagged corpora published on the web.
package fetcher

import (
	"bytes"
	"errors"
	"fmt"
	"mime"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/gocolly/colly"
	"github.com/rs/zerolog/log"
)

// DefaultSelector picks the preformatted blocks corpus pages usually keep
// their word/tag listings in.
const DefaultSelector = "pre"

var (
	ErrNoCorpusText = errors.New("fetcher: no corpus text found in page")
	errNoResponse   = errors.New("fetcher: no response received")
)

type FetcherOptions struct {
	// CacheDir enables colly's on-disk response cache when set.
	CacheDir       string
	AllowedDomains []string
	// Selector chooses the elements of an HTML page holding corpus text.
	Selector  string
	UserAgent string
}

type Fetcher struct {
	options FetcherOptions
}

func NewFetcher(options FetcherOptions) *Fetcher {
	if options.Selector == "" {
		options.Selector = DefaultSelector
	}
	return &Fetcher{options: options}
}

// Fetch downloads the corpus at uri. Plain-text responses are returned as
// they are; HTML responses are reduced to the text of the nodes matching
// the configured selector, one block per paragraph.
func (f *Fetcher) Fetch(uri string) ([]byte, error) {
	c := f.newCollector()

	var corpus []byte
	var processErr error

	c.OnRequest(func(r *colly.Request) {
		log.Debug().Str("url", r.URL.String()).Msg("Fetching corpus")
	})

	c.OnResponse(func(r *colly.Response) {
		log.Debug().
			Str("url", r.Request.URL.String()).
			Int("status_code", r.StatusCode).
			Int("len", len(r.Body)).
			Msg("Corpus response")

		if !isHTML(r.Headers.Get("Content-Type")) {
			corpus = r.Body
			return
		}

		corpus, processErr = extractText(r.Body, f.options.Selector)
	})

	c.OnError(func(r *colly.Response, err error) {
		log.Warn().
			Err(err).
			Str("url", r.Request.URL.String()).
			Int("status_code", r.StatusCode).
			Msg("Corpus request failed")
	})

	if err := c.Visit(uri); err != nil {
		return nil, fmt.Errorf("fetcher: visit %s: %w", uri, err)
	}
	if processErr != nil {
		return nil, processErr
	}
	if corpus == nil {
		return nil, errNoResponse
	}

	return corpus, nil
}

func (f *Fetcher) newCollector() *colly.Collector {
	options := []func(*colly.Collector){
		colly.IgnoreRobotsTxt(),
		colly.MaxDepth(1),
	}
	if len(f.options.AllowedDomains) > 0 {
		options = append(options, colly.AllowedDomains(f.options.AllowedDomains...))
	}
	if f.options.CacheDir != "" {
		options = append(options, colly.CacheDir(f.options.CacheDir))
	}
	if f.options.UserAgent != "" {
		options = append(options, colly.UserAgent(f.options.UserAgent))
	}

	return colly.NewCollector(options...)
}

func isHTML(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return mediaType == "text/html" || mediaType == "application/xhtml+xml"
}

func extractText(body []byte, selector string) ([]byte, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("fetcher: parse page: %w", err)
	}

	selection := doc.Find(selector)
	if selection.Length() == 0 {
		return nil, ErrNoCorpusText
	}

	blocks := []string{}
	selection.Each(func(_ int, s *goquery.Selection) {
		text := strings.Trim(s.Text(), "\r\n")
		if strings.TrimSpace(text) != "" {
			blocks = append(blocks, text)
		}
	})
	if len(blocks) == 0 {
		return nil, ErrNoCorpusText
	}

	return []byte(strings.Join(blocks, "\n\n") + "\n"), nil
}
