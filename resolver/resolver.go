// Package resolver assembles the answer to "what do we know about
// this IP address". It validates the query, asks the city and ASN
// databases independently, joins the country code against the static
// metadata table and builds one normalized response.
package resolver

import (
	"errors"
	"fmt"
	"net"
	"strings"

	lru "github.com/hashicorp/golang-lru"
	log "github.com/sirupsen/logrus"

	"github.com/9seconds/whereabouts/countrymeta"
	"github.com/9seconds/whereabouts/geodb"
	"github.com/9seconds/whereabouts/metrics"
)

// GeoReader is the lookup surface of the database reader the
// resolver needs.
type GeoReader interface {
	LookupCity(ip net.IP) (*geodb.CityRecord, error)
	LookupASN(ip net.IP) (*geodb.ASNRecord, error)
	RawLookup(ip net.IP) (map[string]interface{}, map[string]interface{}, error)
}

// MetaTable is the lookup surface of the country metadata table.
type MetaTable interface {
	Get(code string) (countrymeta.Entry, bool)
}

// ASNWebsites answers a domain for an autonomous system. Implemented
// by PeeringDB.
type ASNWebsites interface {
	Domain(asn uint) string
}

// Opts tune the optional parts of the resolver. Zero value disables
// the cache and both domain strategies.
type Opts struct {
	CacheSize int
	Domains   *DomainResolver
	Websites  ASNWebsites
}

// Resolver owns response construction. All of its state is immutable
// or internally synchronized, so a single instance serves any number
// of concurrent requests.
type Resolver struct {
	geo      GeoReader
	meta     MetaTable
	domains  *DomainResolver
	websites ASNWebsites
	cache    *lru.Cache
}

func New(geo GeoReader, meta MetaTable, opts Opts) (*Resolver, error) {
	rv := &Resolver{
		geo:      geo,
		meta:     meta,
		domains:  opts.Domains,
		websites: opts.Websites,
	}

	if opts.CacheSize > 0 {
		cache, err := lru.New(opts.CacheSize)
		if err != nil {
			return nil, err
		}

		rv.cache = cache
	}

	return rv, nil
}

// Resolve answers for one address. rawMode switches the response to
// the undecoded database documents; both modes are built from the
// same lookups, so they always agree on the underlying facts.
//
// The address is canonicalized with net.ParseIP before any lookup, so
// equivalent textual forms of the same address produce identical
// responses.
func (r *Resolver) Resolve(ipString string, rawMode bool) (*Response, error) {
	ip := net.ParseIP(strings.TrimSpace(ipString))
	if ip == nil {
		return nil, ErrInvalidIP
	}

	cacheKey := ip.String()
	if rawMode {
		cacheKey += "|raw"
	}

	if r.cache != nil {
		if cached, ok := r.cache.Get(cacheKey); ok {
			metrics.ResponseCacheTotal.WithLabelValues("hit").Inc()
			return cached.(*Response), nil
		}

		metrics.ResponseCacheTotal.WithLabelValues("miss").Inc()
	}

	var resp *Response
	var err error

	if rawMode {
		resp, err = r.resolveRaw(ip)
	} else {
		resp, err = r.resolveNormalized(ip)
	}

	if err != nil {
		return nil, err
	}

	if r.cache != nil {
		r.cache.Add(cacheKey, resp)
	}

	return resp, nil
}

func (r *Resolver) resolveNormalized(ip net.IP) (*Response, error) {
	resp := newResponse(ip)

	city, err := r.geo.LookupCity(ip)

	switch {
	case errors.Is(err, geodb.ErrNotFound):
		metrics.LookupsTotal.WithLabelValues("city", "miss").Inc()
	case err != nil:
		return nil, err
	default:
		metrics.LookupsTotal.WithLabelValues("city", "hit").Inc()
		r.fillCity(resp, city)
	}

	asn, err := r.geo.LookupASN(ip)

	switch {
	case errors.Is(err, geodb.ErrNotFound):
		metrics.LookupsTotal.WithLabelValues("asn", "miss").Inc()
	case err != nil:
		return nil, err
	default:
		metrics.LookupsTotal.WithLabelValues("asn", "hit").Inc()
		r.fillConnection(resp, ip, asn)
	}

	if city == nil && asn == nil {
		return nil, ErrNotFound
	}

	return resp, nil
}

func (r *Resolver) resolveRaw(ip net.IP) (*Response, error) {
	city, asn, err := r.geo.RawLookup(ip)
	if err != nil {
		return nil, err
	}

	if city == nil && asn == nil {
		return nil, ErrNotFound
	}

	resp := newResponse(ip)
	resp.Raw = &RawSections{
		City: city,
		ASN:  asn,
	}

	return resp, nil
}

func (r *Resolver) fillCity(resp *Response, record *geodb.CityRecord) {
	resp.Continent = record.ContinentName
	resp.ContinentCode = record.ContinentCode
	resp.Region = record.RegionName
	resp.RegionCode = record.RegionCode
	resp.City = record.CityName
	resp.Timezone = record.TimeZone
	resp.PostalCode = record.PostalCode

	inEU := record.InEU
	resp.InEU = &inEU

	if record.HasCoordinates {
		latitude, longitude := record.Latitude, record.Longitude
		resp.Latitude = &latitude
		resp.Longitude = &longitude
	}

	if record.CountryCode == "" {
		return
	}

	resp.Country = &Country{
		Code: record.CountryCode,
		Name: record.CountryName,
	}

	entry, ok := r.meta.Get(record.CountryCode)
	if !ok {
		log.WithFields(log.Fields{
			"country_code": record.CountryCode,
		}).Debug("No metadata for country.")

		return
	}

	emoji := entry.Flag.Emoji
	if emoji == "" {
		emoji = flagEmoji(record.CountryCode)
	}

	codes := entry.Flag.EmojiUnicode
	if codes == "" {
		codes = emojiUnicode(emoji)
	}

	resp.CountryMeta = &CountryMeta{
		CallingCode:      entry.CallingCode,
		Capital:          entry.Capital,
		Borders:          entry.Borders,
		FlagURL:          entry.Flag.SVG,
		FlagEmoji:        emoji,
		FlagEmojiUnicode: codes,
	}
}

func (r *Resolver) fillConnection(resp *Response, ip net.IP, record *geodb.ASNRecord) {
	resp.Connection = &Connection{
		ASN:          record.Number,
		ISP:          record.Organization,
		Organization: record.Organization,
		Route:        record.Route,
	}

	// PTR first, PeeringDB website as a fallback.
	if r.domains != nil {
		resp.Connection.Domain = r.domains.Domain(ip)
	}

	if resp.Connection.Domain == "" && r.websites != nil {
		resp.Connection.Domain = r.websites.Domain(record.Number)
	}
}

func newResponse(ip net.IP) *Response {
	addressType := "ipv6"
	if ip.To4() != nil {
		addressType = "ipv4"
	}

	return &Response{
		IP:   ip.String(),
		Type: addressType,
	}
}

// flagEmoji builds a flag from the two regional indicator symbols of
// the country code. Used when the metadata table has no precomputed
// emoji for the country.
func flagEmoji(code string) string {
	if len(code) != 2 {
		return ""
	}

	code = strings.ToUpper(code)

	for i := 0; i < 2; i++ {
		if code[i] < 'A' || code[i] > 'Z' {
			return ""
		}
	}

	return string([]rune{
		0x1F1E6 + rune(code[0]-'A'),
		0x1F1E6 + rune(code[1]-'A'),
	})
}

// emojiUnicode spells the emoji out as code points: U+1F1FA U+1F1F8.
func emojiUnicode(emoji string) string {
	if emoji == "" {
		return ""
	}

	codes := make([]string, 0, 2)
	for _, r := range emoji {
		codes = append(codes, fmt.Sprintf("U+%04X", r))
	}

	return strings.Join(codes, " ")
}
