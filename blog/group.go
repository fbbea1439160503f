package blog

import "sort"

// YearBucket holds the posts published in one year, in source order.
type YearBucket struct {
	Year  int
	Posts []Post
}

// Buckets is a year-keyed partition of a post collection. Buckets appear in the
// order their year was first seen in the input.
type Buckets []YearBucket

// GroupByYear partitions posts by publication year. Every post lands in exactly
// one bucket and keeps its relative order.
func GroupByYear(posts []Post) Buckets {
	var out Buckets
	pos := make(map[int]int)
	for _, p := range posts {
		y := p.Date.Year()
		i, ok := pos[y]
		if !ok {
			i = len(out)
			pos[y] = i
			out = append(out, YearBucket{Year: y})
		}
		out[i].Posts = append(out[i].Posts, p)
	}
	return out
}

// Reversed returns the buckets in reverse insertion order. This is order
// reversal, not a sort: years inserted as 2021, 2019, 2020 come back as
// 2020, 2019, 2021.
func (b Buckets) Reversed() Buckets {
	out := make(Buckets, len(b))
	for i := range b {
		out[len(b)-1-i] = b[i]
	}
	return out
}

// ByYear returns the buckets ordered by ascending year. The receiver is left
// untouched.
func (b Buckets) ByYear() Buckets {
	out := make(Buckets, len(b))
	copy(out, b)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Year < out[j].Year })
	return out
}

// Get returns the posts of year.
func (b Buckets) Get(year int) ([]Post, bool) {
	for _, bucket := range b {
		if bucket.Year == year {
			return bucket.Posts, true
		}
	}
	return nil, false
}

// Years lists bucket keys in insertion order.
func (b Buckets) Years() []int {
	years := make([]int, len(b))
	for i, bucket := range b {
		years[i] = bucket.Year
	}
	return years
}

// Len returns the total number of posts across all buckets.
func (b Buckets) Len() int {
	n := 0
	for _, bucket := range b {
		n += len(bucket.Posts)
	}
	return n
}
