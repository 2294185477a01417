package main

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/trezcool/academia/core/user"
)

func (cli *commandLine) listStudents(ctx context.Context, search string) error {
	students, err := cli.users.Students(ctx, user.QueryFilter{Search: search})
	if err != nil {
		return err
	}
	w := tabwriter.NewWriter(cli.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tEMAIL\tCOURSES")
	for _, s := range students {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\n", s.ID, s.Name, s.Email, len(s.EnrolledCourses))
	}
	return w.Flush()
}
