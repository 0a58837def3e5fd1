package task

import "time"

type Filter string

const (
	FilterAll       Filter = "all"
	FilterToday     Filter = "today"
	FilterWeek      Filter = "week"
	FilterImportant Filter = "important"
)

// ParseFilter falls back to FilterAll for unknown input.
func ParseFilter(v string) Filter {
	switch Filter(v) {
	case FilterAll, FilterToday, FilterWeek, FilterImportant:
		return Filter(v)
	default:
		return FilterAll
	}
}

func (f Filter) Label() string {
	switch f {
	case FilterToday:
		return "Vandaag"
	case FilterWeek:
		return "Deze week"
	case FilterImportant:
		return "Belangrijk"
	default:
		return "Alle"
	}
}

// Apply returns the subset of tasks matching the filter. Every filter other
// than "all" excludes completed tasks. Task order is preserved.
func (f Filter) Apply(tasks []Task, now time.Time) []Task {
	if f == FilterAll {
		return tasks
	}
	out := make([]Task, 0, len(tasks))
	for _, t := range tasks {
		if t.Done {
			continue
		}
		switch f {
		case FilterToday:
			if t.Due != nil && IsToday(*t.Due, now) {
				out = append(out, t)
			}
		case FilterWeek:
			if t.Due != nil && IsThisWeek(*t.Due, now) {
				out = append(out, t)
			}
		case FilterImportant:
			if t.Priority == PriorityHigh {
				out = append(out, t)
			}
		}
	}
	return out
}

type Stats struct {
	Total     int
	Completed int
	Remaining int
}

// ComputeStats counts over the full, unfiltered list. The header always
// reflects everything even while the list shows a filtered view.
func ComputeStats(tasks []Task) Stats {
	s := Stats{Total: len(tasks)}
	for _, t := range tasks {
		if t.Done {
			s.Completed++
		}
	}
	s.Remaining = s.Total - s.Completed
	return s
}
