package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/plazor/steampicker/internal/adapters/http/api"
	"github.com/plazor/steampicker/internal/adapters/steam/webapi"
	"github.com/plazor/steampicker/internal/domain/model"
	"github.com/plazor/steampicker/internal/domain/sale"
	"github.com/plazor/steampicker/internal/domain/valuation"
	. "github.com/smartystreets/goconvey/convey"
)

const testSteamID = "76561198000000001"

// mockService implements api.Dependencies with canned responses.
type mockService struct {
	snapshot     model.ProfileSnapshot
	valuation    valuation.Result
	catalog      []model.CandidateItem
	catalogErr   error
	enriched     map[int]model.EnrichedMetadata
	rec          model.Recommendation
	recErr       error
	resolved     string
	resolveErr   error
	saleReport   sale.Report
	gotRegion    string
	gotSteamID   string
	gotAppIDs    []int
	gotLimit     int
	gotResolveIn string
}

func (m *mockService) AggregateProfile(_ context.Context, steamID string) model.ProfileSnapshot {
	m.gotSteamID = steamID
	return m.snapshot
}

func (m *mockService) EstimateValue(_ context.Context, steamID, region string) (model.ProfileSnapshot, valuation.Result) {
	m.gotSteamID = steamID
	m.gotRegion = region
	return m.snapshot, m.valuation
}

func (m *mockService) SampleCatalog(_ context.Context, region string) ([]model.CandidateItem, error) {
	m.gotRegion = region
	return m.catalog, m.catalogErr
}

func (m *mockService) Enrich(_ context.Context, appIDs []int) map[int]model.EnrichedMetadata {
	m.gotAppIDs = appIDs
	return m.enriched
}

func (m *mockService) Recommend(_ context.Context, steamID, region string, limit int) (model.Recommendation, error) {
	m.gotSteamID = steamID
	m.gotRegion = region
	m.gotLimit = limit
	return m.rec, m.recErr
}

func (m *mockService) ResolveIdentity(_ context.Context, input string) (string, error) {
	m.gotResolveIn = input
	return m.resolved, m.resolveErr
}

func (m *mockService) SaleMeta(_ context.Context, region string) sale.Report {
	m.gotRegion = region
	return m.saleReport
}

func (m *mockService) Region(explicit string, geoHints ...string) string {
	return valuation.ResolveRegion(explicit, "", geoHints...)
}

func (m *mockService) GetStats() map[string]interface{} {
	return map[string]interface{}{"started": true}
}

func newTestServer(deps api.Dependencies) *httptest.Server {
	mux := http.NewServeMux()
	api.NewServer(deps).Register(context.Background(), mux)
	return httptest.NewServer(api.RequestIDMiddleware(mux))
}

func TestProfileEndpoint(t *testing.T) {
	Convey("Given a registered profile route", t, func() {
		svc := &mockService{snapshot: model.ProfileSnapshot{SteamID: testSteamID}}
		srv := newTestServer(svc)
		defer srv.Close()

		Convey("When a well-formed id is requested", func() {
			resp, err := http.Get(srv.URL + "/profile/" + testSteamID)
			So(err, ShouldBeNil)
			defer resp.Body.Close()

			Convey("Then the snapshot is returned", func() {
				So(resp.StatusCode, ShouldEqual, http.StatusOK)
				var snap model.ProfileSnapshot
				So(json.NewDecoder(resp.Body).Decode(&snap), ShouldBeNil)
				So(snap.SteamID, ShouldEqual, testSteamID)
				So(svc.gotSteamID, ShouldEqual, testSteamID)
			})

			Convey("Then the response carries a request id", func() {
				So(resp.Header.Get("X-Request-Id"), ShouldNotBeBlank)
			})
		})

		Convey("When the id is malformed", func() {
			resp, err := http.Get(srv.URL + "/profile/not-an-id")
			So(err, ShouldBeNil)
			defer resp.Body.Close()

			So(resp.StatusCode, ShouldEqual, http.StatusBadRequest)

			Convey("Then the error message carries the operation tag", func() {
				var body struct {
					Code    string `json:"code"`
					Message string `json:"message"`
				}
				So(json.NewDecoder(resp.Body).Decode(&body), ShouldBeNil)
				So(body.Code, ShouldEqual, "bad_request")
				So(body.Message, ShouldStartWith, "api.get_profile: ")
			})
		})

		Convey("When the id is missing", func() {
			resp, err := http.Get(srv.URL + "/profile/")
			So(err, ShouldBeNil)
			defer resp.Body.Close()

			So(resp.StatusCode, ShouldEqual, http.StatusBadRequest)
		})
	})
}

func TestValueEndpoint(t *testing.T) {
	Convey("Given a registered value route", t, func() {
		svc := &mockService{valuation: valuation.Result{Region: "DE", Owned: 2, Counted: 2}}
		srv := newTestServer(svc)
		defer srv.Close()

		Convey("When the query carries an explicit region", func() {
			resp, err := http.Get(srv.URL + "/value/" + testSteamID + "?cc=de")
			So(err, ShouldBeNil)
			defer resp.Body.Close()

			Convey("Then the region reaches the service uppercased", func() {
				So(resp.StatusCode, ShouldEqual, http.StatusOK)
				So(svc.gotRegion, ShouldEqual, "DE")
			})
		})

		Convey("When the region comes from a geolocation header", func() {
			req, _ := http.NewRequest(http.MethodGet, srv.URL+"/value/"+testSteamID, nil)
			req.Header.Set("cf-ipcountry", "gb")
			resp, err := http.DefaultClient.Do(req)
			So(err, ShouldBeNil)
			defer resp.Body.Close()

			So(svc.gotRegion, ShouldEqual, "GB")
		})

		Convey("When the id is malformed", func() {
			resp, err := http.Get(srv.URL + "/value/123")
			So(err, ShouldBeNil)
			defer resp.Body.Close()

			So(resp.StatusCode, ShouldEqual, http.StatusBadRequest)
		})
	})
}

func TestCatalogEndpoint(t *testing.T) {
	Convey("Given a registered catalog route", t, func() {
		svc := &mockService{catalog: []model.CandidateItem{{AppID: 10, Name: "Alpha"}}}
		srv := newTestServer(svc)
		defer srv.Close()

		Convey("When the catalog is sampled", func() {
			resp, err := http.Get(srv.URL + "/catalog?cc=us")
			So(err, ShouldBeNil)
			defer resp.Body.Close()

			Convey("Then the items and count are returned", func() {
				So(resp.StatusCode, ShouldEqual, http.StatusOK)
				var body struct {
					Count int                   `json:"count"`
					Items []model.CandidateItem `json:"items"`
				}
				So(json.NewDecoder(resp.Body).Decode(&body), ShouldBeNil)
				So(body.Count, ShouldEqual, 1)
				So(body.Items[0].AppID, ShouldEqual, 10)
			})
		})

		Convey("When the upstream sampling fails", func() {
			svc.catalogErr = webapi.ErrUpstream
			resp, err := http.Get(srv.URL + "/catalog")
			So(err, ShouldBeNil)
			defer resp.Body.Close()

			So(resp.StatusCode, ShouldEqual, http.StatusBadGateway)
		})
	})
}

func TestEnrichEndpoint(t *testing.T) {
	Convey("Given a registered enrich route", t, func() {
		svc := &mockService{enriched: map[int]model.EnrichedMetadata{10: model.ZeroEnriched()}}
		srv := newTestServer(svc)
		defer srv.Close()

		Convey("When ids are posted", func() {
			resp, err := http.Post(srv.URL+"/enrich", "application/json", strings.NewReader(`{"appids":[10,20]}`))
			So(err, ShouldBeNil)
			defer resp.Body.Close()

			So(resp.StatusCode, ShouldEqual, http.StatusOK)
			So(svc.gotAppIDs, ShouldResemble, []int{10, 20})
		})

		Convey("When the id list is empty", func() {
			resp, err := http.Post(srv.URL+"/enrich", "application/json", strings.NewReader(`{"appids":[]}`))
			So(err, ShouldBeNil)
			defer resp.Body.Close()

			So(resp.StatusCode, ShouldEqual, http.StatusBadRequest)
		})

		Convey("When the body is not JSON", func() {
			resp, err := http.Post(srv.URL+"/enrich", "application/json", strings.NewReader("nope"))
			So(err, ShouldBeNil)
			defer resp.Body.Close()

			So(resp.StatusCode, ShouldEqual, http.StatusBadRequest)
		})

		Convey("When the method is GET", func() {
			resp, err := http.Get(srv.URL + "/enrich")
			So(err, ShouldBeNil)
			defer resp.Body.Close()

			So(resp.StatusCode, ShouldEqual, http.StatusNotFound)
		})
	})
}

func TestRecommendEndpoint(t *testing.T) {
	Convey("Given a registered recommend route", t, func() {
		svc := &mockService{rec: model.Recommendation{
			SteamID:  testSteamID,
			Fallback: true,
			Items:    []model.ScoredCandidate{{CandidateItem: model.CandidateItem{AppID: 100}, Score: 0.4}},
		}}
		srv := newTestServer(svc)
		defer srv.Close()

		Convey("When a valid request is posted", func() {
			body := `{"steamId":"` + testSteamID + `","cc":"de","limit":5}`
			resp, err := http.Post(srv.URL+"/recommend", "application/json", strings.NewReader(body))
			So(err, ShouldBeNil)
			defer resp.Body.Close()

			Convey("Then the recommendation comes back with its fallback flag", func() {
				So(resp.StatusCode, ShouldEqual, http.StatusOK)
				var rec model.Recommendation
				So(json.NewDecoder(resp.Body).Decode(&rec), ShouldBeNil)
				So(rec.Fallback, ShouldBeTrue)
				So(len(rec.Items), ShouldEqual, 1)
				So(svc.gotRegion, ShouldEqual, "DE")
				So(svc.gotLimit, ShouldEqual, 5)
			})
		})

		Convey("When the steam id is missing", func() {
			resp, err := http.Post(srv.URL+"/recommend", "application/json", strings.NewReader(`{"cc":"de"}`))
			So(err, ShouldBeNil)
			defer resp.Body.Close()

			So(resp.StatusCode, ShouldEqual, http.StatusBadRequest)
		})

		Convey("When the steam id is malformed", func() {
			resp, err := http.Post(srv.URL+"/recommend", "application/json", strings.NewReader(`{"steamId":"abc"}`))
			So(err, ShouldBeNil)
			defer resp.Body.Close()

			So(resp.StatusCode, ShouldEqual, http.StatusBadRequest)
		})
	})
}

func TestResolveEndpoint(t *testing.T) {
	Convey("Given a registered resolve route", t, func() {
		svc := &mockService{resolved: testSteamID}
		srv := newTestServer(svc)
		defer srv.Close()

		Convey("When a vanity alias resolves", func() {
			resp, err := http.Post(srv.URL+"/resolve", "application/json", strings.NewReader(`{"input":"gamer"}`))
			So(err, ShouldBeNil)
			defer resp.Body.Close()

			So(resp.StatusCode, ShouldEqual, http.StatusOK)
			var body struct {
				SteamID string `json:"steamId"`
			}
			So(json.NewDecoder(resp.Body).Decode(&body), ShouldBeNil)
			So(body.SteamID, ShouldEqual, testSteamID)
		})

		Convey("When the alias is unknown upstream", func() {
			svc.resolveErr = webapi.ErrNotFound
			resp, err := http.Post(srv.URL+"/resolve", "application/json", strings.NewReader(`{"input":"ghost"}`))
			So(err, ShouldBeNil)
			defer resp.Body.Close()

			So(resp.StatusCode, ShouldEqual, http.StatusNotFound)
		})

		Convey("When the input is blank", func() {
			resp, err := http.Post(srv.URL+"/resolve", "application/json", strings.NewReader(`{"input":"  "}`))
			So(err, ShouldBeNil)
			defer resp.Body.Close()

			So(resp.StatusCode, ShouldEqual, http.StatusBadRequest)
		})
	})
}

func TestSaleEndpoint(t *testing.T) {
	Convey("Given a registered sale route", t, func() {
		count := 987
		svc := &mockService{saleReport: sale.Report{
			Info:        sale.Info{Label: "Winter Sale", Phase: sale.PhaseUpcoming, Target: time.Date(2025, 12, 18, 18, 0, 0, 0, time.UTC)},
			GamesOnSale: &count,
		}}
		srv := newTestServer(svc)
		defer srv.Close()

		resp, err := http.Get(srv.URL + "/sale?cc=us")
		So(err, ShouldBeNil)
		defer resp.Body.Close()

		Convey("Then the report includes the label and count", func() {
			So(resp.StatusCode, ShouldEqual, http.StatusOK)
			var report sale.Report
			So(json.NewDecoder(resp.Body).Decode(&report), ShouldBeNil)
			So(report.Label, ShouldEqual, "Winter Sale")
			So(*report.GamesOnSale, ShouldEqual, 987)
			So(svc.gotRegion, ShouldEqual, "US")
		})
	})
}

func TestStatsEndpoint(t *testing.T) {
	Convey("Given a registered stats route", t, func() {
		srv := newTestServer(&mockService{})
		defer srv.Close()

		resp, err := http.Get(srv.URL + "/stats")
		So(err, ShouldBeNil)
		defer resp.Body.Close()

		Convey("Then the stats document is served", func() {
			So(resp.StatusCode, ShouldEqual, http.StatusOK)
			var stats map[string]interface{}
			So(json.NewDecoder(resp.Body).Decode(&stats), ShouldBeNil)
			So(stats["started"], ShouldEqual, true)
		})
	})
}

func TestHealthEndpoint(t *testing.T) {
	Convey("Given a registered health route", t, func() {
		srv := newTestServer(&mockService{})
		defer srv.Close()

		resp, err := http.Get(srv.URL + "/healthz")
		So(err, ShouldBeNil)
		defer resp.Body.Close()

		Convey("Then the metrics exposition is served", func() {
			So(resp.StatusCode, ShouldEqual, http.StatusOK)
		})
	})
}
