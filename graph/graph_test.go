package graph

import (
	"testing"

	"campus-map/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loc(id, name string, x, y int) model.Location {
	return model.Location{ID: id, Name: name, PixelX: &x, PixelY: &y}
}

func edge(a, b string, d float64) model.LocationDistance {
	l1, l2 := model.NormalizePair(a, b)
	return model.LocationDistance{ID: a + "-" + b, Location1ID: l1, Location2ID: l2, Distance: d}
}

func TestBuildExpandsUndirectedEdges(t *testing.T) {
	g := Build(
		[]model.Location{loc("a", "A", 0, 0), loc("b", "B", 3, 4)},
		[]model.LocationDistance{edge("a", "b", 5)},
	)

	require.Len(t, g.Neighbors("a"), 1)
	require.Len(t, g.Neighbors("b"), 1)
	assert.Equal(t, "b", g.Neighbors("a")[0].To)
	assert.Equal(t, "a", g.Neighbors("b")[0].To)
	assert.Equal(t, 5.0, g.Neighbors("a")[0].Distance)
}

func TestBuildSkipsDanglingEdges(t *testing.T) {
	// 端点缺失的边 (快照间隙里被删的地点) 直接忽略
	g := Build(
		[]model.Location{loc("a", "A", 0, 0)},
		[]model.LocationDistance{edge("a", "ghost", 5)},
	)
	assert.Empty(t, g.Neighbors("a"))
}

func TestNearestOrdering(t *testing.T) {
	g := Build([]model.Location{
		loc("1", "TestLocation1", 2000, 2000),
		loc("2", "TestLocation2", 2001, 2000),
		loc("3", "TestLocation3", 2002, 2000),
	}, nil)

	ranked, err := g.Nearest(2000, 2000, 2, nil)
	require.NoError(t, err)
	require.Len(t, ranked, 2)
	assert.Equal(t, "TestLocation1", ranked[0].Location.Name)
	assert.Equal(t, 0.0, ranked[0].Distance)
	assert.Equal(t, "TestLocation2", ranked[1].Location.Name)
	assert.Equal(t, 1.0, ranked[1].Distance)

	// k <= 0 返回全部候选
	all, err := g.Nearest(2000, 2000, 0, nil)
	require.NoError(t, err)
	assert.Len(t, all, 3)
	assert.Equal(t, "TestLocation3", all[2].Location.Name)
}

func TestNearestTieBreakByName(t *testing.T) {
	g := Build([]model.Location{
		loc("b", "Beta", 10, 0),
		loc("a", "Alpha", 0, 10),
	}, nil)

	ranked, err := g.Nearest(0, 0, 0, nil)
	require.NoError(t, err)
	require.Len(t, ranked, 2)
	assert.Equal(t, "Alpha", ranked[0].Location.Name, "距离相同时按名称排")
}

func TestNearestExcludesLocationsWithoutPixels(t *testing.T) {
	g := Build([]model.Location{
		{ID: "x", Name: "NoCoords"},
		loc("a", "A", 1, 1),
	}, nil)

	ranked, err := g.Nearest(0, 0, 0, nil)
	require.NoError(t, err)
	require.Len(t, ranked, 1)
	assert.Equal(t, "A", ranked[0].Location.Name)
}

func TestNearestFilter(t *testing.T) {
	gid1, gid2 := 1, 2
	l1 := loc("a", "A", 0, 0)
	l1.GroupID = &gid1
	l2 := loc("b", "B", 1, 0)
	l2.GroupID = &gid2
	g := Build([]model.Location{l1, l2}, nil)

	ranked, err := g.Nearest(0, 0, 0, func(l *model.Location) bool {
		return l.GroupID != nil && *l.GroupID == 2
	})
	require.NoError(t, err)
	require.Len(t, ranked, 1)
	assert.Equal(t, "B", ranked[0].Location.Name)
}

func TestNearestNoCandidates(t *testing.T) {
	g := Build([]model.Location{{ID: "x", Name: "NoCoords"}}, nil)
	_, err := g.Nearest(0, 0, 0, nil)
	assert.ErrorIs(t, err, ErrNoCoordinates)
}
