package blog

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/folio-blog/folio/theme"
)

func listingFixture() *ListView {
	posts := []Post{
		post("new-in-2021", "2021-05-01", "go"),
		post("old-2019", "2019-03-01", "Docker"),
		post("mid-2020", "2020-06-15", "unknown-tag"),
		post("early-2021", "2021-01-10"),
	}
	today := MustParseDate("2021-06-01")
	policy := FreshnessPolicy{Now: today.Time}
	return NewListView(posts, nil, policy, theme.DefaultTags())
}

func sectionYears(l Listing) []int {
	var years []int
	for _, s := range l.Sections {
		years = append(years, s.Year)
	}
	return years
}

func TestListingGroupsMostRecentYearFirst(t *testing.T) {
	v := listingFixture()
	l := v.Listing()

	assert.False(t, l.Searching)
	assert.Equal(t, 4, l.Total)
	assert.Equal(t, []int{2021, 2020, 2019}, sectionYears(l))

	y2021 := l.Sections[0].Entries
	require.Len(t, y2021, 2)
	assert.Equal(t, "new-in-2021", y2021[0].Post.ID)
	assert.True(t, y2021[0].Fresh)
	assert.False(t, y2021[1].Fresh)
}

func TestListingNewestFirstInput(t *testing.T) {
	posts := []Post{
		post("c", "2023-05-01"),
		post("b", "2022-03-01"),
		post("a", "2021-01-01"),
	}
	v := NewListView(posts, nil, FreshnessPolicy{}, nil)
	assert.Equal(t, []int{2023, 2022, 2021}, sectionYears(v.Listing()))
}

func TestListingTagChips(t *testing.T) {
	l := listingFixture().Listing()

	docker := l.Sections[2].Entries[0].Tags
	require.Len(t, docker, 1)
	assert.True(t, docker[0].Styled)
	assert.Equal(t, "Docker", docker[0].Name)
	assert.NotEmpty(t, docker[0].Color.Color)

	unknown := l.Sections[1].Entries[0].Tags
	require.Len(t, unknown, 1)
	assert.False(t, unknown[0].Styled)
}

func TestListViewSearch(t *testing.T) {
	v := listingFixture()
	results := v.Search("  old-2019 ")
	require.NotEmpty(t, results)
	assert.Equal(t, "old-2019", v.Query())
	assert.Equal(t, results, v.LastResults())

	l := v.Listing()
	assert.True(t, l.Searching)
	assert.Empty(t, l.Sections)
	require.NotEmpty(t, l.Results)
	assert.Equal(t, "old-2019", l.Results[0].Post.ID)
	assert.Equal(t, len(l.Results), l.Total)
}

func TestListViewSearchReplacesState(t *testing.T) {
	v := listingFixture()
	v.Search("old-2019")
	v.Search("zzzzqqq")
	assert.Empty(t, v.LastResults())
	assert.Equal(t, 0, v.Listing().Total)
	assert.True(t, v.Listing().Searching)

	v.Search("")
	assert.Nil(t, v.LastResults())
	assert.False(t, v.Listing().Searching)
	assert.Equal(t, 4, v.Listing().Total)
}

func TestListViewFreshnessFollowsClock(t *testing.T) {
	posts := []Post{post("p", "2024-01-31")}
	now := time.Date(2024, 3, 31, 23, 0, 0, 0, time.UTC)
	v := NewListView(posts, nil, FreshnessPolicy{Now: func() time.Time { return now }}, nil)
	assert.True(t, v.Listing().Sections[0].Entries[0].Fresh)

	now = now.Add(2 * time.Hour)
	assert.False(t, v.Listing().Sections[0].Entries[0].Fresh)
}
