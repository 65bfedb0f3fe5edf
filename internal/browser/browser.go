// Package browser loads live pages in headless Chromium and reads their
// headings from the rendered DOM.
package browser

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/dgallion1/docoutline/internal/doctree"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// headingQuery runs inside the page and returns rendered innerText.
const headingQuery = `() => Array.from(document.querySelectorAll('h2, h3')).map(a => ({
	tag: a.tagName,
	cls: a.className,
	text: a.innerText,
	id: a.id,
}))`

type rawHeading struct {
	Tag   string `json:"tag"`
	Class string `json:"cls"`
	Text  string `json:"text"`
	ID    string `json:"id"`
}

// Fetcher loads pages with a fresh headless browser per call.
type Fetcher struct {
	timeout time.Duration
	log     *slog.Logger
}

func NewFetcher(timeout time.Duration, log *slog.Logger) *Fetcher {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Fetcher{timeout: timeout, log: log}
}

// ValidateURL accepts absolute http and https URLs only.
func ValidateURL(raw string) (*url.URL, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("parse url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("unsupported url scheme %q", u.Scheme)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("url %q has no host", raw)
	}
	return u, nil
}

// Fetch navigates to pageURL and returns the page's h2/h3 headings.
func (f *Fetcher) Fetch(ctx context.Context, pageURL string) (*doctree.DocTree, error) {
	u, err := ValidateURL(pageURL)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	l := launcher.New().Headless(true).Context(ctx)
	defer l.Cleanup()
	controlURL, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("launch browser: %w", err)
	}

	b := rod.New().ControlURL(controlURL).Context(ctx)
	if err := b.Connect(); err != nil {
		return nil, fmt.Errorf("connect browser: %w", err)
	}
	defer b.Close()

	f.log.Debug("loading page", "url", u.String())
	page, err := b.Page(proto.TargetCreateTarget{URL: u.String()})
	if err != nil {
		return nil, fmt.Errorf("open page: %w", err)
	}
	if err := page.WaitLoad(); err != nil {
		return nil, fmt.Errorf("wait for load: %w", err)
	}

	res, err := page.Eval(headingQuery)
	if err != nil {
		return nil, fmt.Errorf("query headings: %w", err)
	}
	data, err := json.Marshal(res.Value)
	if err != nil {
		return nil, fmt.Errorf("encode headings: %w", err)
	}
	var raw []rawHeading
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode headings: %w", err)
	}

	tree := &doctree.DocTree{
		Title:    u.String(),
		Headings: toHeadings(raw),
	}
	if info, err := page.Info(); err == nil && info.Title != "" {
		tree.Title = info.Title
	}

	f.log.Debug("page loaded", "url", u.String(), "headings", len(tree.Headings))
	return tree, nil
}

func toHeadings(raw []rawHeading) []doctree.Heading {
	headings := make([]doctree.Heading, 0, len(raw))
	for _, r := range raw {
		headings = append(headings, doctree.Heading{
			Rank:  doctree.RankFromTag(r.Tag),
			Text:  r.Text,
			ID:    r.ID,
			Class: r.Class,
		})
	}
	return headings
}
