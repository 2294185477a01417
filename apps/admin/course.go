package main

import (
	"context"
	"fmt"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/trezcool/academia/core"
	"github.com/trezcool/academia/core/course"
)

// createCourse creates the course described by the YAML file at path:
//
//	name: Go 101
//	description: Learn Go
//	image: https://example.com/go.png
//	modules:
//	  - name: Intro
//	    content: <p>Hello</p>
func (cli *commandLine) createCourse(ctx context.Context, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return errors.Wrap(err, "opening course file")
	}
	defer f.Close()

	var nc course.NewCourse
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&nc); err != nil {
		return errors.Wrapf(err, "decoding %s", path)
	}
	if err := nc.Validate(cli.validate); err != nil {
		return err
	}
	if err := cli.courses.Create(ctx, nc); err != nil {
		return err
	}
	fmt.Fprintf(cli.out, "Course %q created with %d modules\n", nc.Name, len(nc.Modules))
	return nil
}

func (cli *commandLine) deleteCourse(ctx context.Context, id string) error {
	if err := cli.courses.Delete(ctx, id); err != nil {
		return err
	}
	fmt.Fprintf(cli.out, "Course %s deleted\n", id)
	return nil
}

func (cli *commandLine) createQuiz(ctx context.Context, courseID, name string) error {
	nq := course.NewQuiz{CourseID: courseID, Name: name}
	if err := nq.Validate(cli.validate); err != nil {
		return err
	}
	if err := cli.courses.CreateQuiz(ctx, nq); err != nil {
		return err
	}
	fmt.Fprintf(cli.out, "Quiz %q added to course %s\n", nq.Name, courseID)
	return nil
}

func (cli *commandLine) deleteQuiz(ctx context.Context, id string) error {
	if err := cli.courses.DeleteQuiz(ctx, id); err != nil {
		return err
	}
	fmt.Fprintf(cli.out, "Quiz %s deleted\n", id)
	return nil
}

func (cli *commandLine) addQuestion(ctx context.Context, quizID, text, options, answer string) error {
	nq := course.NewQuestion{QuizID: quizID, Text: text, CorrectAns: answer, Options: core.SplitList(options)}
	if err := nq.Validate(cli.validate); err != nil {
		return err
	}
	if err := cli.courses.AddQuestion(ctx, nq); err != nil {
		return err
	}
	fmt.Fprintf(cli.out, "Question added to quiz %s\n", quizID)
	return nil
}

func (cli *commandLine) deleteQuestion(ctx context.Context, id string) error {
	if err := cli.courses.DeleteQuestion(ctx, id); err != nil {
		return err
	}
	fmt.Fprintf(cli.out, "Question %s deleted\n", id)
	return nil
}
