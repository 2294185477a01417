package echoapi

import (
	"sort"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/trezcool/academia/core"
	"github.com/trezcool/academia/core/user"
)

var orderingParam = "ordering"

type orderingField struct {
	Field     string
	Ascending bool
}

// Ordering is bound from "?ordering=name,-email".
type Ordering struct {
	Orderings []orderingField
}

func (ord *Ordering) Bind(ctx echo.Context) {
	data := ctx.QueryParams()
	if len(data) == 0 {
		return
	}
	val, ok := data[orderingParam]
	if !ok || len(val) == 0 || val[0] == "" {
		return
	}

	for _, field := range core.SplitList(val[0]) {
		if field == "" {
			continue
		}
		descending := strings.HasPrefix(field, "-")
		if descending {
			field = field[1:] // drop "-"
		}
		ord.Orderings = append(ord.Orderings, orderingField{Field: field, Ascending: !descending})
	}
}

var userOrderings = map[string]func(a, b user.User) int{
	"name":     func(a, b user.User) int { return strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name)) },
	"email":    func(a, b user.User) int { return strings.Compare(a.Email, b.Email) },
	"enrolled": func(a, b user.User) int { return len(a.EnrolledCourses) - len(b.EnrolledCourses) },
}

// SortUsers sorts users in place. Unknown fields are ignored.
func (ord Ordering) SortUsers(users []user.User) {
	if len(ord.Orderings) == 0 {
		return
	}
	sort.SliceStable(users, func(i, j int) bool {
		for _, o := range ord.Orderings {
			cmp, ok := userOrderings[o.Field]
			if !ok {
				continue
			}
			c := cmp(users[i], users[j])
			if c == 0 {
				continue
			}
			if o.Ascending {
				return c < 0
			}
			return c > 0
		}
		return false
	})
}
