package stats

import (
	"strings"

	"github.com/verte-zerg/yks/internal/lesson"
	"github.com/verte-zerg/yks/internal/model"
)

// NetPoint is the TYT and AYT net total of one exam.
type NetPoint struct {
	Date string  `json:"date"`
	TYT  float64 `json:"tyt"`
	AYT  float64 `json:"ayt"`
}

// NetScore applies the quarter-point guessing penalty: correct - wrong/4, floored at 0.
func NetScore(correct, wrong int) float64 {
	net := float64(correct) - float64(wrong)/4
	if net < 0 {
		return 0
	}
	return net
}

// DetailNet is NetScore clamped to the lesson's question count.
func DetailNet(lessonName string, correct, wrong int) float64 {
	net := NetScore(correct, wrong)
	if limit := float64(lesson.MaxQuestions(lessonName)); net > limit {
		return limit
	}
	return net
}

// NewExamDetail builds a detail row with its net computed.
func NewExamDetail(lessonName string, correct, wrong, empty int) model.ExamDetail {
	return model.ExamDetail{
		Lesson:  lessonName,
		Correct: correct,
		Wrong:   wrong,
		Empty:   empty,
		Net:     DetailNet(lessonName, correct, wrong),
	}
}

// NetTrend emits one point per exam in reverse of the input order. Subjects
// prefixed AYT count toward AYT; everything except AYT and YDT counts toward TYT.
func NetTrend(exams []model.MockExam) []NetPoint {
	out := make([]NetPoint, 0, len(exams))
	for i := len(exams) - 1; i >= 0; i-- {
		exam := exams[i]
		point := NetPoint{Date: exam.Date}
		for _, d := range exam.Summary {
			switch {
			case strings.HasPrefix(d.Lesson, "AYT"):
				point.AYT += d.Net
			case strings.HasPrefix(d.Lesson, "YDT"):
			default:
				point.TYT += d.Net
			}
		}
		out = append(out, point)
	}
	return out
}

// NetDelta returns the change between the last two trend points.
func NetDelta(points []NetPoint) (tyt, ayt float64, ok bool) {
	if len(points) < 2 {
		return 0, 0, false
	}
	last := points[len(points)-1]
	prev := points[len(points)-2]
	return last.TYT - prev.TYT, last.AYT - prev.AYT, true
}
