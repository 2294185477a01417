package progress

import "sort"

// Progress is the persisted position of a student in a course.
type Progress struct {
	CompletedModules []int `json:"completed_modules"`
	CurrentModule    int   `json:"current_module"`
}

// Normalize sorts and deduplicates CompletedModules.
func (p *Progress) Normalize() {
	if p.CompletedModules == nil {
		p.CompletedModules = []int{}
		return
	}
	seen := make(map[int]struct{}, len(p.CompletedModules))
	out := p.CompletedModules[:0]
	for _, i := range p.CompletedModules {
		if _, ok := seen[i]; ok {
			continue
		}
		seen[i] = struct{}{}
		out = append(out, i)
	}
	sort.Ints(out)
	p.CompletedModules = out
}

// IsZero reports whether nothing has been persisted yet.
func (p Progress) IsZero() bool {
	return len(p.CompletedModules) == 0 && p.CurrentModule == 0
}

// Percent returns round(100 * completed / total), 0 when total is 0.
func Percent(completed, total int) int {
	if total <= 0 {
		return 0
	}
	if completed > total {
		completed = total
	}
	return (200*completed + total) / (2 * total)
}
