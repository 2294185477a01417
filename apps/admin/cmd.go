package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"syscall"

	"github.com/go-playground/validator/v10"
	"golang.org/x/term"

	"github.com/trezcool/academia/core/course"
	"github.com/trezcool/academia/core/user"
)

var (
	readPasswordFunc = term.ReadPassword // mockable

	errHelp       = errors.New("help provided")
	errNotAdmin   = errors.New("admin role required")
	errNoPassword = errors.New("password required")
)

type commandLine struct {
	users    *user.Service
	courses  *course.Service
	validate *validator.Validate
	out      io.Writer
}

func (cli *commandLine) printUsage() {
	fmt.Fprintln(cli.out, "Usage: admin COMMAND -email ADMIN_EMAIL [options]")
	fmt.Fprintln(cli.out, "The admin password is prompted for every command.")
	fmt.Fprintln(cli.out, "  createcourse -file FILE                          - create a course from a YAML file")
	fmt.Fprintln(cli.out, "  deletecourse -id COURSE_ID                       - delete a course")
	fmt.Fprintln(cli.out, "  createquiz -course COURSE_ID -name NAME          - add a quiz to a course")
	fmt.Fprintln(cli.out, "  deletequiz -id QUIZ_ID                           - delete a quiz")
	fmt.Fprintln(cli.out, "  addquestion -quiz QUIZ_ID -text TEXT -options A,B -answer A - add a question to a quiz")
	fmt.Fprintln(cli.out, "  deletequestion -id QUESTION_ID                   - delete a question")
	fmt.Fprintln(cli.out, "  students [-search TEXT]                          - list students")
}

// command is a subcommand: its flags, and what it does once the admin is authenticated.
type command struct {
	flags *flag.FlagSet
	email *string
	valid func() bool
	exec  func(ctx context.Context) error
}

func (cli *commandLine) newCommand(name string) command {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(cli.out)
	return command{flags: fs, email: fs.String("email", "", "The admin's email. The password will be prompted next.")}
}

func (cli *commandLine) commands() map[string]command {
	cmds := make(map[string]command)

	createCourse := cli.newCommand("createcourse")
	createCourseFile := createCourse.flags.String("file", "", "YAML file describing the course")
	createCourse.valid = func() bool { return *createCourseFile != "" }
	createCourse.exec = func(ctx context.Context) error { return cli.createCourse(ctx, *createCourseFile) }
	cmds["createcourse"] = createCourse

	deleteCourse := cli.newCommand("deletecourse")
	deleteCourseID := deleteCourse.flags.String("id", "", "The course ID")
	deleteCourse.valid = func() bool { return *deleteCourseID != "" }
	deleteCourse.exec = func(ctx context.Context) error { return cli.deleteCourse(ctx, *deleteCourseID) }
	cmds["deletecourse"] = deleteCourse

	createQuiz := cli.newCommand("createquiz")
	createQuizCourse := createQuiz.flags.String("course", "", "The course ID")
	createQuizName := createQuiz.flags.String("name", "", "The quiz name")
	createQuiz.valid = func() bool { return *createQuizCourse != "" && *createQuizName != "" }
	createQuiz.exec = func(ctx context.Context) error { return cli.createQuiz(ctx, *createQuizCourse, *createQuizName) }
	cmds["createquiz"] = createQuiz

	deleteQuiz := cli.newCommand("deletequiz")
	deleteQuizID := deleteQuiz.flags.String("id", "", "The quiz ID")
	deleteQuiz.valid = func() bool { return *deleteQuizID != "" }
	deleteQuiz.exec = func(ctx context.Context) error { return cli.deleteQuiz(ctx, *deleteQuizID) }
	cmds["deletequiz"] = deleteQuiz

	addQuestion := cli.newCommand("addquestion")
	addQuestionQuiz := addQuestion.flags.String("quiz", "", "The quiz ID")
	addQuestionText := addQuestion.flags.String("text", "", "The question")
	addQuestionOptions := addQuestion.flags.String("options", "", "Comma separated options")
	addQuestionAnswer := addQuestion.flags.String("answer", "", "The correct option")
	addQuestion.valid = func() bool { return *addQuestionQuiz != "" && *addQuestionText != "" }
	addQuestion.exec = func(ctx context.Context) error {
		return cli.addQuestion(ctx, *addQuestionQuiz, *addQuestionText, *addQuestionOptions, *addQuestionAnswer)
	}
	cmds["addquestion"] = addQuestion

	deleteQuestion := cli.newCommand("deletequestion")
	deleteQuestionID := deleteQuestion.flags.String("id", "", "The question ID")
	deleteQuestion.valid = func() bool { return *deleteQuestionID != "" }
	deleteQuestion.exec = func(ctx context.Context) error { return cli.deleteQuestion(ctx, *deleteQuestionID) }
	cmds["deletequestion"] = deleteQuestion

	students := cli.newCommand("students")
	studentsSearch := students.flags.String("search", "", "Filter on name or email")
	students.valid = func() bool { return true }
	students.exec = func(ctx context.Context) error { return cli.listStudents(ctx, *studentsSearch) }
	cmds["students"] = students

	return cmds
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}
	cmd, ok := cli.commands()[args[1]]
	if !ok {
		cli.printUsage()
		return errHelp
	}
	if err := cmd.flags.Parse(args[2:]); err != nil {
		return errHelp
	}
	if *cmd.email == "" || !cmd.valid() {
		cmd.flags.Usage()
		return errHelp
	}

	fmt.Fprint(cli.out, "Enter password:")
	pwd, err := readPasswordFunc(int(syscall.Stdin))
	fmt.Fprintln(cli.out)
	if err != nil {
		return err
	}
	if len(pwd) == 0 {
		return errNoPassword
	}

	ctx := context.Background()
	if err := cli.authenticate(ctx, *cmd.email, string(pwd)); err != nil {
		return err
	}
	return cmd.exec(ctx)
}

// authenticate logs in against the LMS. Only admins may run commands.
func (cli *commandLine) authenticate(ctx context.Context, email, pwd string) error {
	creds := user.Credentials{Email: email, Password: pwd}
	if err := creds.Validate(cli.validate); err != nil {
		return err
	}
	usr, err := cli.users.Login(ctx, creds)
	if err != nil {
		return err
	}
	if !usr.IsAdmin() {
		return errNotAdmin
	}
	return nil
}
