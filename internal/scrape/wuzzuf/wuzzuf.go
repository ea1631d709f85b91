package wuzzuf

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"jobmatch-engine/internal/domain"
	"jobmatch-engine/internal/scrape/types"
	"jobmatch-engine/internal/scrape/util"
)

const (
	platform       = "Wuzzuf"
	defaultBaseURL = "https://wuzzuf.net"
	userAgent      = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
)

// Board markup changes without notice; selectors are tried in tiers with a
// text-pattern heuristic as the last resort.
const (
	companySelector  = "a.css-17s97q8"
	locationSelector = "span.css-5wys0k"
)

var egyptianCityTokens = []string{"Cairo", "Giza", "Egypt", "Alexandria"}

type Config struct {
	BaseURL    string
	HTTPClient *http.Client
	Limiter    *util.HostLimiter
}

// Adapter scrapes the Wuzzuf search results pages.
type Adapter struct {
	baseURL string
	hc      *http.Client
	limiter *util.HostLimiter
}

func New(cfg Config) *Adapter {
	a := &Adapter{
		baseURL: strings.TrimSuffix(cfg.BaseURL, "/"),
		hc:      cfg.HTTPClient,
		limiter: cfg.Limiter,
	}
	if a.baseURL == "" {
		a.baseURL = defaultBaseURL
	}
	if a.hc == nil {
		a.hc = &http.Client{Timeout: 15 * time.Second}
	}
	return a
}

func (a *Adapter) Name() string { return platform }

// InRegion gates the board to Egyptian searches and unrestricted ones.
func (a *Adapter) InRegion(location string) bool {
	if strings.TrimSpace(location) == "" {
		return true
	}
	l := strings.ToLower(location)
	return strings.Contains(l, "egypt") || strings.Contains(l, "cairo")
}

func (a *Adapter) Search(ctx context.Context, q types.Query) ([]domain.Job, error) {
	var out []domain.Job
	for page := 0; len(out) < q.Limit; page++ {
		if a.limiter != nil {
			if err := a.limiter.WaitURL(ctx, a.baseURL); err != nil {
				return out, err
			}
		}

		doc, err := a.fetchPage(ctx, q.Raw, page)
		if err != nil {
			if page == 0 {
				return nil, err
			}
			// keep what earlier pages yielded
			return out, nil
		}

		found := 0
		doc.Find("h2").EachWithBreak(func(_ int, h2 *goquery.Selection) bool {
			if len(out) >= q.Limit {
				return false
			}
			job, ok := a.extractJob(h2)
			if !ok {
				return true
			}
			out = append(out, job)
			found++
			return true
		})

		if found == 0 {
			break
		}
	}
	return out, nil
}

func (a *Adapter) fetchPage(ctx context.Context, query string, page int) (*goquery.Document, error) {
	endpoint := a.baseURL + "/search/jobs/?q=" + url.QueryEscape(query) + "&start=" + strconv.Itoa(page)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("wuzzuf build request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")
	req.Header.Set("Referer", a.baseURL+"/")

	res, err := a.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("wuzzuf get page %d: %w", page, err)
	}
	defer res.Body.Close()
	if res.StatusCode >= 400 {
		return nil, fmt.Errorf("wuzzuf page %d status %d", page, res.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(res.Body)
	if err != nil {
		return nil, fmt.Errorf("wuzzuf parse page %d: %w", page, err)
	}
	return doc, nil
}

// extractJob reads one job card anchored at a result heading. Headings
// without an anchor or a surrounding card are not listings.
func (a *Adapter) extractJob(h2 *goquery.Selection) (domain.Job, bool) {
	link := h2.Find("a").First()
	if link.Length() == 0 {
		return domain.Job{}, false
	}
	title := util.CleanText(link.Text())
	href, _ := link.Attr("href")
	if title == "" || href == "" {
		return domain.Job{}, false
	}
	if !strings.HasPrefix(href, "http") {
		href = a.baseURL + href
	}

	card := h2.ParentsFiltered("div").First()
	if card.Length() == 0 {
		return domain.Job{}, false
	}

	company, ok := extractCompany(card, href)
	if !ok {
		company = util.UnknownCompany
	}
	location, ok := extractLocation(card)
	if !ok {
		location = "Egypt"
	}
	posted, ok := extractPostedDate(card)
	if !ok {
		posted = "Recent"
	}

	return domain.Job{
		Title:       title,
		Company:     company,
		Location:    location,
		Description: fmt.Sprintf("Job at %s in %s.", company, location),
		Skills:      []string{},
		Platform:    platform,
		URL:         href,
		PostedDate:  posted,
		Salary:      "Confidential",
		JobType:     "Full-time",
	}, true
}

// extractCompany: class selector first, then any card anchor that is not the
// title link and not another job link.
func extractCompany(card *goquery.Selection, titleHref string) (string, bool) {
	if s := util.CleanText(card.Find(companySelector).First().Text()); s != "" {
		return strings.TrimSuffix(s, " -"), true
	}

	company := ""
	card.Find("a").EachWithBreak(func(_ int, a *goquery.Selection) bool {
		href, _ := a.Attr("href")
		if href == "" || strings.HasSuffix(titleHref, href) || strings.Contains(href, "/jobs/p") {
			return true
		}
		if s := util.CleanText(a.Text()); s != "" {
			company = strings.TrimSuffix(s, " -")
			return false
		}
		return true
	})
	return company, company != ""
}

// extractLocation: class selector first, then any span that reads like an
// Egyptian "City, Country" pair.
func extractLocation(card *goquery.Selection) (string, bool) {
	if s := util.CleanText(card.Find(locationSelector).First().Text()); s != "" {
		return s, true
	}

	location := ""
	card.Find("span").EachWithBreak(func(_ int, span *goquery.Selection) bool {
		text := util.CleanText(span.Text())
		if !strings.Contains(text, ",") {
			return true
		}
		for _, city := range egyptianCityTokens {
			if strings.Contains(text, city) {
				location = text
				return false
			}
		}
		return true
	})
	return location, location != ""
}

// extractPostedDate: short "... ago" text anywhere in the card.
func extractPostedDate(card *goquery.Selection) (string, bool) {
	posted := ""
	card.Find("div").EachWithBreak(func(_ int, div *goquery.Selection) bool {
		text := util.CleanText(div.Text())
		if strings.Contains(text, "ago") && len([]rune(text)) < 20 {
			posted = text
			return false
		}
		return true
	})
	return posted, posted != ""
}
