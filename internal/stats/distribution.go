package stats

import (
	"sort"

	"github.com/verte-zerg/yks/internal/model"
)

// LessonBucket sums the entries of one lesson.
type LessonBucket struct {
	Lesson    string `json:"lesson"`
	Minutes   int    `json:"minutes"`
	Questions int    `json:"questions"`
}

// LessonDistribution returns one bucket per distinct lesson in order of first
// occurrence. Lesson names are compared exactly.
func LessonDistribution(entries []model.StudyEntry) []LessonBucket {
	index := map[string]int{}
	out := []LessonBucket{}
	for _, e := range entries {
		i, ok := index[e.Lesson]
		if !ok {
			i = len(out)
			index[e.Lesson] = i
			out = append(out, LessonBucket{Lesson: e.Lesson})
		}
		out[i].Minutes += e.Minutes
		out[i].Questions += e.QuestionCount
	}
	return out
}

// TopLessons returns up to n buckets with the most minutes.
func TopLessons(buckets []LessonBucket, n int) []LessonBucket {
	return rankLessons(buckets, n, func(a, b LessonBucket) bool { return a.Minutes > b.Minutes })
}

// BottomLessons returns up to n buckets with the fewest minutes.
func BottomLessons(buckets []LessonBucket, n int) []LessonBucket {
	return rankLessons(buckets, n, func(a, b LessonBucket) bool { return a.Minutes < b.Minutes })
}

func rankLessons(buckets []LessonBucket, n int, less func(a, b LessonBucket) bool) []LessonBucket {
	if n <= 0 || len(buckets) == 0 {
		return nil
	}
	sorted := make([]LessonBucket, len(buckets))
	copy(sorted, buckets)
	sort.SliceStable(sorted, func(i, j int) bool {
		return less(sorted[i], sorted[j])
	})
	if n > len(sorted) {
		n = len(sorted)
	}
	return sorted[:n]
}
