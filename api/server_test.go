package api

import (
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/9seconds/whereabouts/geodb"
	"github.com/9seconds/whereabouts/resolver"
)

type resolverStub struct {
	responses map[string]*resolver.Response
	err       error
	lastRaw   bool
}

func (s *resolverStub) Resolve(ipString string, rawMode bool) (*resolver.Response, error) {
	s.lastRaw = rawMode

	if s.err != nil {
		return nil, s.err
	}

	if net.ParseIP(ipString) == nil {
		return nil, resolver.ErrInvalidIP
	}

	if resp, ok := s.responses[ipString]; ok {
		return resp, nil
	}

	return nil, resolver.ErrNotFound
}

type infoStub struct{}

func (infoStub) Info() (geodb.DatabaseInfo, geodb.DatabaseInfo) {
	return geodb.DatabaseInfo{Type: "GeoLite2-City", NodeCount: 42},
		geodb.DatabaseInfo{Type: "GeoLite2-ASN", NodeCount: 7}
}

type metaStub int

func (m metaStub) Len() int {
	return int(m)
}

type ServerTestSuite struct {
	suite.Suite

	resolver *resolverStub
	router   http.Handler
}

func (suite *ServerTestSuite) SetupTest() {
	suite.resolver = &resolverStub{
		responses: map[string]*resolver.Response{
			"8.8.8.8": {
				IP:   "8.8.8.8",
				Type: "ipv4",
				Country: &resolver.Country{
					Code: "US",
					Name: "United States",
				},
				Connection: &resolver.Connection{
					ASN: 15169,
					ISP: "Google LLC",
				},
			},
			"192.0.2.1": {
				IP:   "192.0.2.1",
				Type: "ipv4",
			},
		},
	}
	suite.router = MakeServer(suite.resolver, infoStub{}, metaStub(2))
}

func (suite *ServerTestSuite) get(path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("GET", path, nil)
	req.RemoteAddr = "192.0.2.1:43718"
	rec := httptest.NewRecorder()

	suite.router.ServeHTTP(rec, req)

	return rec
}

func (suite *ServerTestSuite) TestLookupOk() {
	rec := suite.get("/ip/8.8.8.8")

	suite.Equal(http.StatusOK, rec.Code)
	suite.Equal("application/json", rec.Header().Get("Content-Type"))
	suite.False(suite.resolver.lastRaw)

	body := map[string]interface{}{}
	suite.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &body))

	suite.Equal("8.8.8.8", body["ip"])

	country := body["country"].(map[string]interface{})
	suite.Equal("US", country["code"])

	connection := body["connection"].(map[string]interface{})
	suite.EqualValues(15169, connection["asn"])
	suite.Equal("Google LLC", connection["isp"])
}

func (suite *ServerTestSuite) TestLookupTrailingSlash() {
	rec := suite.get("/ip/8.8.8.8/")

	suite.Equal(http.StatusOK, rec.Code)
}

func (suite *ServerTestSuite) TestLookupInvalidAddress() {
	for _, value := range []string{"not-an-ip", "999.999.999.999"} {
		rec := suite.get("/ip/" + value)

		suite.Equal(http.StatusBadRequest, rec.Code, value)

		body := map[string]string{}
		suite.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &body))
		suite.NotEmpty(body["error"])
	}
}

func (suite *ServerTestSuite) TestLookupNotFound() {
	rec := suite.get("/ip/198.51.100.7")

	suite.Equal(http.StatusNotFound, rec.Code)

	body := map[string]string{}
	suite.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &body))
	suite.NotEmpty(body["error"])
}

func (suite *ServerTestSuite) TestLookupInternalError() {
	suite.resolver.err = errors.New("database file vanished")

	rec := suite.get("/ip/8.8.8.8")

	suite.Equal(http.StatusInternalServerError, rec.Code)
	suite.NotContains(rec.Body.String(), "vanished")
}

func (suite *ServerTestSuite) TestRawFlag() {
	for _, value := range []string{"1", "true", "YES"} {
		suite.get("/ip/8.8.8.8?raw=" + value)
		suite.True(suite.resolver.lastRaw, value)
	}

	for _, value := range []string{"", "0", "false", "on", "2"} {
		suite.get("/ip/8.8.8.8?raw=" + value)
		suite.False(suite.resolver.lastRaw, value)
	}
}

func (suite *ServerTestSuite) TestSelf() {
	rec := suite.get("/")

	suite.Equal(http.StatusOK, rec.Code)

	body := map[string]interface{}{}
	suite.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &body))
	suite.Equal("192.0.2.1", body["ip"])
}

func (suite *ServerTestSuite) TestInfo() {
	rec := suite.get("/info")

	suite.Equal(http.StatusOK, rec.Code)

	body := infoResponseStruct{}
	suite.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &body))
	suite.Equal("GeoLite2-City", body.Databases.City.Type)
	suite.Equal("GeoLite2-ASN", body.Databases.ASN.Type)
	suite.Equal(2, body.Metadata.Countries)
}

func (suite *ServerTestSuite) TestMetricsExposition() {
	rec := suite.get("/metrics")

	suite.Equal(http.StatusOK, rec.Code)
}

func TestServer(t *testing.T) {
	suite.Run(t, &ServerTestSuite{})
}
