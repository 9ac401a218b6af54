package testutil

import (
	"fmt"
	"time"

	"github.com/alexanderramin/studyplan/internal/contract"
	"github.com/alexanderramin/studyplan/internal/domain"
)

var courses = []string{"Python", "Statistics", "Machine Learning", "Deep Learning"}

// NewCatalog returns n catalog modules spread round the fixture courses.
// Every third module has no notebook link.
func NewCatalog(n int) []domain.CatalogModule {
	out := make([]domain.CatalogModule, n)
	for i := range out {
		m := domain.CatalogModule{
			Position: i,
			Course:   courses[i%len(courses)],
			Module:   fmt.Sprintf("Module %02d", i+1),
			Topics:   fmt.Sprintf("topic %d.a, topic %d.b", i+1, i+1),
			Hours:    1.5,
		}
		if i%3 != 2 {
			m.ColabLink = fmt.Sprintf("https://colab.example.com/notebook-%02d", i+1)
		}
		out[i] = m
	}
	return out
}

// Date parses a YYYY-MM-DD literal and panics on bad input.
func Date(s string) time.Time {
	t, err := domain.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return t
}

// Range builds a complete date range from two literals.
func Range(start, end string) domain.DateRange {
	s, e := Date(start), Date(end)
	return domain.DateRange{Start: &s, End: &e}
}

// NewSchedule builds a contiguous schedule with perDay topics on each day.
func NewSchedule(days, perDay int) []contract.DayPlan {
	out := make([]contract.DayPlan, days)
	n := 0
	for d := range out {
		topics := make([]contract.TopicBlock, perDay)
		for j := range topics {
			n++
			topics[j] = contract.TopicBlock{
				Course: courses[n%len(courses)],
				Module: fmt.Sprintf("Module %02d", n),
				Topics: fmt.Sprintf("topic %d", n),
			}
		}
		out[d] = contract.DayPlan{DayNumber: d + 1, Topics: topics}
	}
	return out
}
