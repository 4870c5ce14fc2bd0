package geodb

import (
	"net"
	"os"
	"path/filepath"
	"testing"

	"github.com/maxmind/mmdbwriter"
	"github.com/maxmind/mmdbwriter/mmdbtype"
)

func mustCIDR(t *testing.T, cidr string) *net.IPNet {
	t.Helper()

	_, network, err := net.ParseCIDR(cidr)
	if err != nil {
		t.Fatal(err)
	}

	return network
}

func writeFixture(t *testing.T, dir, name, databaseType string, records map[string]mmdbtype.Map) string {
	t.Helper()

	tree, err := mmdbwriter.New(mmdbwriter.Options{
		DatabaseType: databaseType,
		RecordSize:   24,
	})
	if err != nil {
		t.Fatal(err)
	}

	for cidr, record := range records {
		if err := tree.Insert(mustCIDR(t, cidr), record); err != nil {
			t.Fatal(err)
		}
	}

	path := filepath.Join(dir, name)

	file, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer file.Close()

	if _, err := tree.WriteTo(file); err != nil {
		t.Fatal(err)
	}

	return path
}

func writeCityFixture(t *testing.T, dir string) string {
	t.Helper()

	return writeFixture(t, dir, "city.mmdb", "GeoLite2-City", map[string]mmdbtype.Map{
		"81.2.69.0/24": {
			"city": mmdbtype.Map{
				"names": mmdbtype.Map{"en": mmdbtype.String("London")},
			},
			"continent": mmdbtype.Map{
				"code":  mmdbtype.String("EU"),
				"names": mmdbtype.Map{"en": mmdbtype.String("Europe")},
			},
			"country": mmdbtype.Map{
				"iso_code":             mmdbtype.String("GB"),
				"names":                mmdbtype.Map{"en": mmdbtype.String("United Kingdom")},
				"is_in_european_union": mmdbtype.Bool(false),
			},
			"location": mmdbtype.Map{
				"latitude":  mmdbtype.Float64(51.5142),
				"longitude": mmdbtype.Float64(-0.0931),
				"time_zone": mmdbtype.String("Europe/London"),
			},
			"postal": mmdbtype.Map{
				"code": mmdbtype.String("E1W"),
			},
			"subdivisions": mmdbtype.Slice{
				mmdbtype.Map{
					"iso_code": mmdbtype.String("ENG"),
					"names":    mmdbtype.Map{"en": mmdbtype.String("England")},
				},
			},
		},
		"8.8.8.0/24": {
			"city": mmdbtype.Map{
				"names": mmdbtype.Map{"en": mmdbtype.String("Mountain View")},
			},
			"continent": mmdbtype.Map{
				"code":  mmdbtype.String("NA"),
				"names": mmdbtype.Map{"en": mmdbtype.String("North America")},
			},
			"country": mmdbtype.Map{
				"iso_code": mmdbtype.String("US"),
				"names":    mmdbtype.Map{"en": mmdbtype.String("United States")},
			},
			"location": mmdbtype.Map{
				"latitude":  mmdbtype.Float64(37.4223),
				"longitude": mmdbtype.Float64(-122.085),
				"time_zone": mmdbtype.String("America/Los_Angeles"),
			},
			"subdivisions": mmdbtype.Slice{
				mmdbtype.Map{
					"iso_code": mmdbtype.String("CA"),
					"names":    mmdbtype.Map{"en": mmdbtype.String("California")},
				},
			},
		},
	})
}

func writeASNFixture(t *testing.T, dir string) string {
	t.Helper()

	return writeFixture(t, dir, "asn.mmdb", "GeoLite2-ASN", map[string]mmdbtype.Map{
		"8.8.8.0/24": {
			"autonomous_system_number":       mmdbtype.Uint32(15169),
			"autonomous_system_organization": mmdbtype.String("Google LLC"),
		},
	})
}
