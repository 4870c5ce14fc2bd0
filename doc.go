// Whereabouts is a service which answers a simple question: what do
// we know about this IP address?
//
// It keeps two binary GeoLite2-format databases open, city-level
// geolocation and ASN/ISP, plus a static per-country metadata table
// (calling codes, capitals, borders, flags) produced offline. A
// lookup validates the address, queries both databases, joins the
// country code against the table and returns one normalized JSON
// record. Everything is local and read-only: no upstream services,
// no state between requests.
//
// Tool is organized into a few small packages:
//
// # Geodb
//
// geodb owns the two databases. It knows how to open them, verify
// their kind and answer point lookups, both decoded and raw.
//
// # Countrymeta
//
// countrymeta loads the static metadata file and serves lookups by
// ISO country code.
//
// # Resolver
//
// resolver is the orchestration point: validation, both lookups, the
// metadata join and response assembly, with an optional response
// cache and reverse DNS enrichment.
//
// # Api
//
// api is a thin chi router: GET /ip/{address} for lookups, GET / for
// self-resolution, GET /info and GET /metrics for operations.
package main
