package api

import (
	"encoding/json"
	"net/http"

	log "github.com/sirupsen/logrus"

	"github.com/9seconds/whereabouts/geodb"
)

type infoResponseStruct struct {
	Databases struct {
		City geodb.DatabaseInfo `json:"city"`
		ASN  geodb.DatabaseInfo `json:"asn"`
	} `json:"databases"`
	Metadata struct {
		Countries int `json:"countries"`
	} `json:"metadata"`
}

func (h handler) getInfo(w http.ResponseWriter, r *http.Request) {
	response := infoResponseStruct{}
	response.Databases.City, response.Databases.ASN = h.geo.Info()
	response.Metadata.Countries = h.meta.Len()

	if err := json.NewEncoder(w).Encode(response); err != nil {
		log.Errorf("Cannot write response: %s", err.Error())
	}
}
