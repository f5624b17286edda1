package web

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/hauke96/sigolo/v2"
	"github.com/paulmach/orb/geojson"

	"s2cells/cell"
	"s2cells/integrate"
	ownIo "s2cells/io"
	"s2cells/layer"
	"s2cells/relation"
)

// StartServer exposes the relation engine over HTTP. This is a thin layer for
// interactive inspection, batch materialization goes through the CLI.
func StartServer(port string, config cell.Config) {
	r := initRouter(config)
	sigolo.Infof("Start server on port %s", port)
	err := http.ListenAndServe(":"+port, r)
	sigolo.FatalCheck(err)
}

type recordResponse struct {
	Subject  string `json:"subject"`
	Object   string `json:"object"`
	Relation string `json:"relation"`
	Level    int    `json:"level"`
}

func recordResponses(records []relation.Record) []recordResponse {
	responses := make([]recordResponse, 0, len(records))
	for _, record := range records {
		responses = append(responses, recordResponse{
			Subject:  record.Subject.String(),
			Object:   record.Object.String(),
			Relation: record.Kind.String(),
			Level:    record.Level,
		})
	}
	return responses
}

func initRouter(config cell.Config) *mux.Router {
	generator := layer.NewGenerator(config)
	integrator := integrate.NewIntegrator(config)

	r := mux.NewRouter()

	r.HandleFunc("/cells/{token}", func(writer http.ResponseWriter, request *http.Request) {
		c, ok := cellFromRequest(writer, request)
		if !ok {
			return
		}

		writeGeoJson(writer, []cell.Cell{c})
	}).Methods(http.MethodGet)

	r.HandleFunc("/cells/{token}/neighbors", func(writer http.ResponseWriter, request *http.Request) {
		c, ok := cellFromRequest(writer, request)
		if !ok {
			return
		}

		writeGeoJson(writer, cell.Neighbors(c))
	}).Methods(http.MethodGet)

	r.HandleFunc("/cells/{token}/relations", func(writer http.ResponseWriter, request *http.Request) {
		c, ok := cellFromRequest(writer, request)
		if !ok {
			return
		}

		records, err := generator.RecordsForCell(c, -1)
		if err != nil {
			sigolo.Errorf("Error computing relations of cell %s: %+v", c, err)
			writeError(writer, http.StatusInternalServerError, "Error computing cell relations.")
			return
		}
		relation.SortRecords(records)
		writeJson(writer, recordResponses(records))
	}).Methods(http.MethodGet)

	r.HandleFunc("/relations", func(writer http.ResponseWriter, request *http.Request) {
		writer.Header().Set("Access-Control-Allow-Origin", "*")

		bodyBytes, err := io.ReadAll(request.Body)
		if err != nil {
			sigolo.Errorf("Error reading HTTP body of request to '/relations': %+v", err)
			writeError(writer, http.StatusInternalServerError, "Error reading HTTP body.")
			return
		}

		collection, err := geojson.UnmarshalFeatureCollection(bodyBytes)
		if err != nil {
			sigolo.Errorf("Error parsing GeoJSON body: %+v", err)
			writeError(writer, http.StatusBadRequest, fmt.Sprintf("Error parsing GeoJSON body: %s", err))
			return
		}

		features := make([]integrate.Feature, 0, len(collection.Features))
		for featureIndex, geoJsonFeature := range collection.Features {
			features = append(features, integrate.Feature{
				ID:       fmt.Sprintf("request.%d", featureIndex),
				Geometry: geoJsonFeature.Geometry,
			})
		}

		records, err := integrator.IntegrateAll(features, 1)
		if err != nil {
			sigolo.Errorf("Error integrating %d features: %+v", len(features), err)
			writeError(writer, http.StatusBadRequest, fmt.Sprintf("Error integrating features: %s", err))
			return
		}

		if compress, _ := strconv.ParseBool(request.URL.Query().Get("compress")); compress {
			records = relation.Compress(records)
		}

		writeJson(writer, recordResponses(records))
	}).Methods(http.MethodPost)

	return r
}

func cellFromRequest(writer http.ResponseWriter, request *http.Request) (cell.Cell, bool) {
	token := mux.Vars(request)["token"]
	c, err := cell.FromToken(token)
	if err != nil {
		writeError(writer, http.StatusBadRequest, fmt.Sprintf("Invalid cell token '%s'", token))
		return cell.Cell{}, false
	}
	return c, true
}

func writeGeoJson(writer http.ResponseWriter, cells []cell.Cell) {
	writer.Header().Set("Content-Type", "application/geo+json")
	err := ownIo.WriteCellsAsGeoJson(cells, writer)
	if err != nil {
		sigolo.Errorf("Error writing GeoJSON response: %+v", err)
	}
}

func writeJson(writer http.ResponseWriter, value any) {
	writer.Header().Set("Content-Type", "application/json")
	err := json.NewEncoder(writer).Encode(value)
	if err != nil {
		sigolo.Errorf("Error writing JSON response: %+v", err)
	}
}

func writeError(writer http.ResponseWriter, status int, message string) {
	writer.WriteHeader(status)
	_, err := writer.Write([]byte(message))
	if err != nil {
		sigolo.Errorf("Error writing error response: %+v", err)
	}
}
