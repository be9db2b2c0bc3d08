package fetcher

import (
	"bytes"
	"errors"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/vocradar/vocradar/internal/models"
)

// ErrUnparseable marks a fetched page missing a required field. Such
// records are skipped and counted by callers, never stored.
var ErrUnparseable = errors.New("page missing required fields")

// Board list rows use subject labels for non-post rows we never want.
var skipSubjects = map[string]bool{
	"Notice": true,
	"AD":     true,
	"Poll":   true,
}

var whitespaceRE = regexp.MustCompile(`\s+`)

// cleanText collapses all whitespace runs into single spaces.
func cleanText(s string) string {
	return strings.TrimSpace(whitespaceRE.ReplaceAllString(s, " "))
}

// parseViews extracts the digits from a view counter cell.
func parseViews(s string) *int {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, s)
	if digits == "" {
		return nil
	}
	n, err := strconv.Atoi(digits)
	if err != nil {
		return nil
	}
	return &n
}

// ParseListPage extracts post view URLs from a board list page, skipping
// notice/ad/poll rows, normalizing each URL down to its identifying query
// parameters, and de-duplicating while preserving page order.
func ParseListPage(html []byte, base string) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(html))
	if err != nil {
		return nil, err
	}

	baseURL, err := url.Parse(base)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var urls []string

	doc.Find("tr.ub-content.us-post").Each(func(_ int, row *goquery.Selection) {
		subject := cleanText(row.Find("td.gall_subject").Text())
		if skipSubjects[subject] {
			return
		}

		href, ok := row.Find(`a[href*="/board/view/"]`).First().Attr("href")
		if !ok || strings.TrimSpace(href) == "" {
			return
		}

		ref, err := url.Parse(strings.TrimSpace(href))
		if err != nil {
			return
		}
		full := normalizePostURL(baseURL.ResolveReference(ref))

		if !seen[full] {
			seen[full] = true
			urls = append(urls, full)
		}
	})

	return urls, nil
}

// normalizePostURL strips tracking parameters so the same post always maps
// to the same identifier: only id, no and page survive.
func normalizePostURL(u *url.URL) string {
	q := u.Query()
	kept := url.Values{}
	for _, k := range []string{"id", "no", "page"} {
		if v := q.Get(k); v != "" {
			kept.Set(k, v)
		}
	}
	u.RawQuery = kept.Encode()
	u.Fragment = ""
	return u.String()
}

// ParsePostPage extracts a post record from a view page. Selector
// candidates cover the board engine's markup variants; a page where
// neither title nor body resolves is ErrUnparseable.
func ParsePostPage(html []byte, postURL string) (*models.Post, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(html))
	if err != nil {
		return nil, err
	}

	title := firstText(doc, ".title_subject", "span.title_subject")
	if title == "" {
		return nil, ErrUnparseable
	}

	body := firstText(doc, ".write_div", "div.write_div", "div.view_content_wrap")
	if body == "" {
		return nil, ErrUnparseable
	}

	post := &models.Post{
		URL:      postURL,
		Title:    title,
		Body:     body,
		PostedAt: firstText(doc, ".gall_date", "span.gall_date"),
	}
	if views := firstText(doc, ".gall_count", "span.gall_count"); views != "" {
		post.Views = parseViews(views)
	}
	return post, nil
}

// firstText returns the cleaned text of the first selector that matches.
func firstText(doc *goquery.Document, selectors ...string) string {
	for _, sel := range selectors {
		if s := doc.Find(sel).First(); s.Length() > 0 {
			if text := cleanText(s.Text()); text != "" {
				return text
			}
		}
	}
	return ""
}
