package resolver

import (
	"context"
	"net"
	"strings"
	"time"

	lru "github.com/hashicorp/golang-lru"

	"github.com/9seconds/whereabouts/metrics"
)

// DomainResolver answers a best-effort domain name for an address
// using a PTR lookup. Results, including misses, are kept in a
// bounded LRU so a popular address does not hammer the DNS resolver.
type DomainResolver struct {
	lookupAddr func(ctx context.Context, addr string) ([]string, error)
	timeout    time.Duration
	cache      *lru.Cache
}

func NewDomainResolver(timeout time.Duration, cacheSize int) (*DomainResolver, error) {
	cache, err := lru.New(cacheSize)
	if err != nil {
		return nil, err
	}

	return &DomainResolver{
		lookupAddr: net.DefaultResolver.LookupAddr,
		timeout:    timeout,
		cache:      cache,
	}, nil
}

// Domain returns a registrable two-label tail of the PTR hostname, or
// an empty string when there is nothing to tell. Addresses which
// cannot have a public PTR record are skipped without a lookup.
func (d *DomainResolver) Domain(ip net.IP) string {
	if !ip.IsGlobalUnicast() || ip.IsPrivate() {
		metrics.ReverseDNSTotal.WithLabelValues("skip").Inc()
		return ""
	}

	key := ip.String()

	if cached, ok := d.cache.Get(key); ok {
		return cached.(string)
	}

	ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
	defer cancel()

	domain := ""

	names, err := d.lookupAddr(ctx, key)
	if err == nil && len(names) > 0 {
		domain = registrableTail(names[0])
	}

	if domain == "" {
		metrics.ReverseDNSTotal.WithLabelValues("miss").Inc()
	} else {
		metrics.ReverseDNSTotal.WithLabelValues("hit").Inc()
	}

	d.cache.Add(key, domain)

	return domain
}

func registrableTail(hostname string) string {
	hostname = strings.ToLower(strings.TrimSuffix(hostname, "."))
	if hostname == "" {
		return ""
	}

	parts := strings.Split(hostname, ".")
	if len(parts) >= 2 {
		return strings.Join(parts[len(parts)-2:], ".")
	}

	return hostname
}
