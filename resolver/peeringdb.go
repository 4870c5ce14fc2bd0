package resolver

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	lru "github.com/hashicorp/golang-lru"

	"github.com/9seconds/whereabouts/metrics"
)

const peeringDBURL = "https://www.peeringdb.com"

// PeeringDB answers a domain for an autonomous system by scraping the
// website field from its PeeringDB page. It backs up the PTR lookup:
// many networks have no useful reverse DNS but do maintain a PeeringDB
// record. Results, including misses, are kept in a bounded LRU so a
// popular ASN is fetched once.
type PeeringDB struct {
	fetch   func(ctx context.Context, asn uint) (string, error)
	client  *http.Client
	baseURL string
	timeout time.Duration
	cache   *lru.Cache
}

func NewPeeringDB(timeout time.Duration, cacheSize int) (*PeeringDB, error) {
	cache, err := lru.New(cacheSize)
	if err != nil {
		return nil, err
	}

	rv := &PeeringDB{
		client:  &http.Client{},
		baseURL: peeringDBURL,
		timeout: timeout,
		cache:   cache,
	}
	rv.fetch = rv.fetchWebsite

	return rv, nil
}

// Domain returns a normalized registrable domain for the given ASN, or
// an empty string when PeeringDB has nothing to tell.
func (p *PeeringDB) Domain(asn uint) string {
	if asn == 0 {
		return ""
	}

	if cached, ok := p.cache.Get(asn); ok {
		return cached.(string)
	}

	ctx, cancel := context.WithTimeout(context.Background(), p.timeout)
	defer cancel()

	domain := ""

	website, err := p.fetch(ctx, asn)
	if err == nil {
		domain = normalizeDomain(website)
	}

	if domain == "" {
		metrics.PeeringDBTotal.WithLabelValues("miss").Inc()
	} else {
		metrics.PeeringDBTotal.WithLabelValues("hit").Inc()
	}

	p.cache.Add(asn, domain)

	return domain
}

func (p *PeeringDB) fetchWebsite(ctx context.Context, asn uint) (string, error) {
	reqURL := p.baseURL + "/asn/" + strconv.FormatUint(uint64(asn), 10)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return "", fmt.Errorf("cannot build a request: %w", err)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("cannot send a request: %w", err)
	}

	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return "", fmt.Errorf("cannot parse a page: %w", err)
	}

	// The selector follows current PeeringDB markup and breaks if the
	// site changes. A miss here is a miss, not an error.
	field := doc.Find(`div[data-edit-name="website"]`).First()
	if field.Length() == 0 {
		return "", nil
	}

	if anchor := field.Find("a").First(); anchor.Length() > 0 {
		if href, ok := anchor.Attr("href"); ok && href != "" {
			return href, nil
		}

		return strings.TrimSpace(anchor.Text()), nil
	}

	return strings.TrimSpace(field.Text()), nil
}

// normalizeDomain reduces a website URL or bare hostname to a domain:
// https://www.ovhcloud.com -> ovhcloud.com.
func normalizeDomain(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}

	if !strings.Contains(value, "://") {
		value = "http://" + value
	}

	parsed, err := url.Parse(value)
	if err != nil {
		return ""
	}

	host := strings.ToLower(parsed.Hostname())
	host = strings.TrimPrefix(host, "www.")

	return host
}
