package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"campus-map/model"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLocationRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/api/locations", ListLocations)
	r.GET("/api/locations/:id", GetLocation)
	return r
}

func getJSON(r *gin.Engine, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestListLocationsOnlyReusable(t *testing.T) {
	gid1, gid3 := 1, 3
	Locations = &fakeStore{locs: []model.Location{
		{ID: "1", Name: "ReusableTestLocation", Reusable: true},
		{ID: "2", Name: "TestLocation0", Reusable: false, GroupID: &gid1},
		{ID: "3", Name: "TestLocation3", Reusable: true, GroupID: &gid3},
		{ID: "4", Name: "TestLocation4", Reusable: true, GroupID: &gid3},
	}}
	r := newLocationRouter()

	w := getJSON(r, "/api/locations")
	require.Equal(t, http.StatusOK, w.Code)

	var got []model.Location
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Len(t, got, 3, "不可复用的地点不出现在列表里")
}

func TestListLocationsExcludeGroup(t *testing.T) {
	gid1, gid3 := 1, 3
	Locations = &fakeStore{locs: []model.Location{
		{ID: "1", Name: "ReusableTestLocation", Reusable: true},
		{ID: "2", Name: "TestLocation1", Reusable: true, GroupID: &gid1},
		{ID: "3", Name: "TestLocation3", Reusable: true, GroupID: &gid3},
		{ID: "4", Name: "TestLocation4", Reusable: true, GroupID: &gid3},
	}}
	r := newLocationRouter()

	w := getJSON(r, "/api/locations?exclude_group=3")
	require.Equal(t, http.StatusOK, w.Code)

	var got []model.Location
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Len(t, got, 2, "group_id=3 的地点被排除，没有分组的保留")
}

func TestListLocationsBadExcludeGroup(t *testing.T) {
	Locations = &fakeStore{}
	r := newLocationRouter()

	w := getJSON(r, "/api/locations?exclude_group=abc")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetLocationNotFound(t *testing.T) {
	Locations = &fakeStore{}
	r := newLocationRouter()

	w := getJSON(r, "/api/locations/no-such-id")
	assert.Equal(t, http.StatusNotFound, w.Code)
}
