// Package geodb wraps the two binary GeoLite2-format databases the
// service answers from: city-level geolocation and ASN/ISP. Both are
// opened once on startup and are immutable afterwards, so lookups
// need no locking.
package geodb

import (
	"net"
	"strings"

	"github.com/juju/errors"
	"github.com/oschwald/geoip2-golang"
	"github.com/oschwald/maxminddb-golang"
)

// Reader keeps both databases open and answers point lookups by IP
// address. Construct it with Open, dispose with Close.
type Reader struct {
	city *maxminddb.Reader
	asn  *maxminddb.Reader

	cityPath string
	asnPath  string
}

// Open opens both database files. A missing file, an unreadable
// header or a database of an unexpected kind fail immediately: the
// service must not come up with a broken lookup structure.
func Open(cityPath, asnPath string) (*Reader, error) {
	city, err := maxminddb.Open(cityPath)
	if err != nil {
		return nil, errors.Annotatef(err, "Cannot open city database %s", cityPath)
	}

	if !strings.Contains(city.Metadata.DatabaseType, "City") {
		city.Close()
		return nil, errors.Errorf("Database %s has unexpected type %s, want a city one",
			cityPath, city.Metadata.DatabaseType)
	}

	asn, err := maxminddb.Open(asnPath)
	if err != nil {
		city.Close()
		return nil, errors.Annotatef(err, "Cannot open ASN database %s", asnPath)
	}

	if !strings.Contains(asn.Metadata.DatabaseType, "ASN") {
		city.Close()
		asn.Close()
		return nil, errors.Errorf("Database %s has unexpected type %s, want an ASN one",
			asnPath, asn.Metadata.DatabaseType)
	}

	return &Reader{
		city:     city,
		asn:      asn,
		cityPath: cityPath,
		asnPath:  asnPath,
	}, nil
}

// LookupCity resolves geolocation attributes of an address. ErrNotFound
// means the address is outside of the database coverage.
func (r *Reader) LookupCity(ip net.IP) (*CityRecord, error) {
	record := geoip2.City{}

	_, ok, err := r.city.LookupNetwork(ip, &record)
	if err != nil {
		return nil, errors.Annotate(err, "Cannot lookup in the city database")
	}

	if !ok {
		return nil, ErrNotFound
	}

	rv := &CityRecord{
		ContinentCode: record.Continent.Code,
		ContinentName: record.Continent.Names["en"],
		CountryCode:   strings.ToUpper(record.Country.IsoCode),
		CountryName:   record.Country.Names["en"],
		InEU:          record.Country.IsInEuropeanUnion,
		CityName:      record.City.Names["en"],
		TimeZone:      record.Location.TimeZone,
		PostalCode:    record.Postal.Code,
	}

	if len(record.Subdivisions) > 0 {
		mostSpecific := record.Subdivisions[len(record.Subdivisions)-1]
		rv.RegionCode = mostSpecific.IsoCode
		rv.RegionName = mostSpecific.Names["en"]
	}

	if record.Location.Latitude != 0 || record.Location.Longitude != 0 {
		rv.Latitude = record.Location.Latitude
		rv.Longitude = record.Location.Longitude
		rv.HasCoordinates = true
	}

	return rv, nil
}

// LookupASN resolves a network operator of an address, independently
// from LookupCity. Same ErrNotFound semantics.
func (r *Reader) LookupASN(ip net.IP) (*ASNRecord, error) {
	record := geoip2.ASN{}

	network, ok, err := r.asn.LookupNetwork(ip, &record)
	if err != nil {
		return nil, errors.Annotate(err, "Cannot lookup in the ASN database")
	}

	if !ok {
		return nil, ErrNotFound
	}

	rv := &ASNRecord{
		Number:       record.AutonomousSystemNumber,
		Organization: record.AutonomousSystemOrganization,
	}

	if network != nil {
		rv.Route = network.String()
	}

	return rv, nil
}

// RawLookup returns undecoded documents of both databases as they are
// stored in mmdb. A section missing from its database is a nil map,
// not an error.
func (r *Reader) RawLookup(ip net.IP) (map[string]interface{}, map[string]interface{}, error) {
	var city, asn map[string]interface{}

	if _, ok, err := r.city.LookupNetwork(ip, &city); err != nil {
		return nil, nil, errors.Annotate(err, "Cannot lookup in the city database")
	} else if !ok {
		city = nil
	}

	if _, ok, err := r.asn.LookupNetwork(ip, &asn); err != nil {
		return nil, nil, errors.Annotate(err, "Cannot lookup in the ASN database")
	} else if !ok {
		asn = nil
	}

	return city, asn, nil
}

// Info describes both opened databases.
func (r *Reader) Info() (city, asn DatabaseInfo) {
	return describe(r.city, r.cityPath), describe(r.asn, r.asnPath)
}

func (r *Reader) Close() error {
	cityErr := r.city.Close()

	if err := r.asn.Close(); err != nil {
		return err
	}

	return cityErr
}

func describe(db *maxminddb.Reader, path string) DatabaseInfo {
	return DatabaseInfo{
		Path:        path,
		Type:        db.Metadata.DatabaseType,
		BuildEpoch:  int64(db.Metadata.BuildEpoch),
		NodeCount:   db.Metadata.NodeCount,
		IPVersion:   db.Metadata.IPVersion,
		Description: db.Metadata.Description["en"],
	}
}
