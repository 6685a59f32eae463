package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"campus-map/model"
	"campus-map/store"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeStore 内存版地点仓库，handler 测试用
type fakeStore struct {
	locs  []model.Location
	edges []model.LocationDistance
}

func (f *fakeStore) List(excludeGroup *int) ([]model.Location, error) {
	var out []model.Location
	for _, l := range f.locs {
		if !l.Reusable {
			continue
		}
		if excludeGroup != nil && l.GroupID != nil && *l.GroupID == *excludeGroup {
			continue
		}
		out = append(out, l)
	}
	return out, nil
}

func (f *fakeStore) FindByID(id string) (*model.Location, error) {
	for i := range f.locs {
		if f.locs[i].ID == id {
			return &f.locs[i], nil
		}
	}
	return nil, store.ErrNotFound
}

func (f *fakeStore) Search(query string) ([]model.Location, error) {
	return f.locs, nil
}

func (f *fakeStore) Save(loc *model.Location) error {
	f.locs = append(f.locs, *loc)
	return nil
}

func (f *fakeStore) Delete(id string) error { return nil }

func (f *fakeStore) Snapshot() ([]model.Location, []model.LocationDistance, error) {
	return f.locs, f.edges, nil
}

func pixelLoc(id, name string, x, y int) model.Location {
	return model.Location{ID: id, Name: name, PixelX: &x, PixelY: &y}
}

func postJSON(r *gin.Engine, path string, body interface{}) *httptest.ResponseRecorder {
	raw, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	return performRequest(r, req)
}

func performRequest(r *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func newQueryRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/api/nearest/", NearestLocations)
	r.POST("/api/shortestpath/", ShortestPath)
	return r
}

func TestNearestEndpoint(t *testing.T) {
	Locations = &fakeStore{locs: []model.Location{
		pixelLoc("1", "TestLocation1", 2000, 2000),
		pixelLoc("2", "TestLocation2", 2001, 2000),
		pixelLoc("3", "TestLocation3", 2002, 2000),
	}}
	r := newQueryRouter()

	w := postJSON(r, "/api/nearest/", gin.H{"xcor": 2000, "ycor": 2000})
	require.Equal(t, http.StatusOK, w.Code)

	var got []model.Location
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	require.Len(t, got, 3)
	assert.Equal(t, "TestLocation1", got[0].Name)
	assert.Equal(t, "TestLocation2", got[1].Name)
	assert.Equal(t, "TestLocation3", got[2].Name)
}

func TestNearestEndpointNoCoordinates(t *testing.T) {
	// 没有带坐标的地点时返回空列表，而不是错误
	Locations = &fakeStore{locs: []model.Location{{ID: "x", Name: "NoCoords"}}}
	r := newQueryRouter()

	w := postJSON(r, "/api/nearest/", gin.H{"xcor": 0, "ycor": 0})
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "[]", w.Body.String())
}

func TestNearestEndpointMissingParams(t *testing.T) {
	Locations = &fakeStore{}
	r := newQueryRouter()

	w := postJSON(r, "/api/nearest/", gin.H{"xcor": 2000})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestShortestPathEndpoint(t *testing.T) {
	Locations = &fakeStore{
		locs: []model.Location{
			pixelLoc("1", "TestLocation1", 2000, 2000),
			pixelLoc("2", "TestLocation2", 2100, 2100),
		},
		edges: []model.LocationDistance{
			{ID: "e1", Location1ID: "1", Location2ID: "2", Distance: 141.4213562373095},
		},
	}
	r := newQueryRouter()

	w := postJSON(r, "/api/shortestpath/", gin.H{
		"origin":      "TestLocation1",
		"destination": "TestLocation2",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var got struct {
		Distance float64  `json:"distance"`
		Path     []string `json:"path"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.InDelta(t, 141.421356, got.Distance, 1e-6)
	assert.Equal(t, []string{"TestLocation1", "TestLocation2"}, got.Path)
}

func TestShortestPathEndpointUnknownLocation(t *testing.T) {
	Locations = &fakeStore{locs: []model.Location{pixelLoc("1", "A", 0, 0)}}
	r := newQueryRouter()

	w := postJSON(r, "/api/shortestpath/", gin.H{"origin": "A", "destination": "Nowhere"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestShortestPathEndpointNoRoute(t *testing.T) {
	Locations = &fakeStore{locs: []model.Location{
		pixelLoc("1", "A", 0, 0),
		pixelLoc("2", "B", 10, 0),
	}}
	r := newQueryRouter()

	w := postJSON(r, "/api/shortestpath/", gin.H{"origin": "A", "destination": "B"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}
