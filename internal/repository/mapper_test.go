package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDBNumeric_Scan(t *testing.T) {
	tests := []struct {
		name string
		src  interface{}
		want float64
	}{
		{"nil", nil, 0},
		{"float64", 3.5, 3.5},
		{"int64", int64(7), 7},
		{"bytes", []byte("4.25"), 4.25},
		{"string", "9.75", 9.75},
		{"unparseable", []byte("not-a-number"), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var n dbNumeric
			err := n.Scan(tt.src)
			require.NoError(t, err)
			assert.Equal(t, tt.want, float64(n))
		})
	}
}

func TestDBNumeric_ScanUnsupportedType(t *testing.T) {
	var n dbNumeric
	err := n.Scan(true)
	assert.Error(t, err)
}

func TestDBNumeric_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name string
		data string
		want float64
	}{
		{"number", `3.5`, 3.5},
		{"quoted number", `"4.50"`, 4.5},
		{"null", `null`, 0},
		{"quoted garbage", `"abc"`, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var n dbNumeric
			err := n.UnmarshalJSON([]byte(tt.data))
			require.NoError(t, err)
			assert.Equal(t, tt.want, float64(n))
		})
	}
}

func TestFirstEmbedded(t *testing.T) {
	t.Run("空列", func(t *testing.T) {
		_, ok := firstEmbedded[movieRow](nil)
		assert.False(t, ok)
	})

	t.Run("空数组", func(t *testing.T) {
		_, ok := firstEmbedded[movieRow]([]byte(`[]`))
		assert.False(t, ok)
	})

	t.Run("非法 JSON", func(t *testing.T) {
		_, ok := firstEmbedded[movieRow]([]byte(`{oops`))
		assert.False(t, ok)
	})

	t.Run("取第一个元素", func(t *testing.T) {
		data := []byte(`[{"id":1,"name":"盗梦空间","description":"d","view_count":2,"score_average":"8.50"},{"id":2}]`)
		movie, ok := firstEmbedded[movieRow](data)
		require.True(t, ok)
		assert.Equal(t, 1, movie.ID)
		assert.Equal(t, "盗梦空间", movie.Name)
		assert.Equal(t, 2, movie.ViewCount)
		assert.Equal(t, 8.5, float64(movie.ScoreAverage))
	})
}

func TestMapViewAggregatedRow(t *testing.T) {
	t.Run("内嵌电影", func(t *testing.T) {
		row := viewRow{
			ID:    10,
			Score: 9,
			Movie: []byte(`[{"id":3,"name":"星际穿越","description":"d","image_url":null,"view_count":5,"score_average":"9.20"}]`),
		}
		view := mapViewAggregatedRow(row)
		assert.Equal(t, 10, view.ID)
		assert.Equal(t, 9, view.Score)
		require.NotNil(t, view.Movie)
		assert.Equal(t, 3, view.Movie.ID)
		assert.Nil(t, view.Movie.ImageURL)
		assert.Equal(t, 9.2, view.Movie.ScoreAverage)
	})

	t.Run("无内嵌时省略字段", func(t *testing.T) {
		view := mapViewAggregatedRow(viewRow{ID: 10, Score: 9})
		assert.Nil(t, view.Movie)
	})
}

func TestMapMovieStaffRow(t *testing.T) {
	row := movieStaffRow{
		ID:       4,
		RoleName: "导演",
		Member:   []byte(`[{"id":7,"name":"克里斯托弗","last_name":"诺兰"}]`),
	}
	link := mapMovieStaffRow(row)
	assert.Equal(t, 4, link.ID)
	assert.Equal(t, "导演", link.RoleName)
	require.NotNil(t, link.Member)
	assert.Equal(t, "诺兰", link.Member.LastName)
}

func TestMapStaffMovieRow(t *testing.T) {
	row := movieStaffRow{
		ID:       4,
		RoleName: "主演",
		Movie:    []byte(`[{"id":2,"name":"信条","description":"d","view_count":0,"score_average":0}]`),
	}
	link := mapStaffMovieRow(row)
	assert.Equal(t, "主演", link.RoleName)
	require.NotNil(t, link.Movie)
	assert.Equal(t, "信条", link.Movie.Name)
	assert.Equal(t, float64(0), link.Movie.ScoreAverage)
}
