package testutil

import (
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
)

type (
	FakeQuestion struct {
		ID         string   `json:"_id"`
		Question   string   `json:"question"`
		Options    []string `json:"options"`
		CorrectAns string   `json:"correctAns"`
	}

	FakeResult struct {
		ID        string `json:"_id"`
		Title     string `json:"title"`
		Score     int    `json:"score"`
		TimeTaken int    `json:"timeTaken"`
		UserID    string `json:"userId"`
	}

	FakeProgress struct {
		CompletedModules []int `json:"completedModules"`
		CurrentModule    int   `json:"currentModule"`
	}

	fakeModule struct {
		Name    string `json:"name"`
		Content string `json:"content"`
	}

	fakeCourse struct {
		ID          string
		Name        string
		Description string
		Image       string
		Modules     []fakeModule
		QuizIDs     []string
	}

	fakeQuiz struct {
		ID          string
		CourseID    string
		Name        string
		QuestionIDs []string
	}

	fakeEnrollment struct {
		CourseID   string
		EnrolledAt time.Time
		TimeSpent  int
	}

	fakeUser struct {
		ID          string
		Name        string
		Email       string
		Password    string
		Role        string
		Enrollments []fakeEnrollment
	}

	// LMS is an in-memory stand-in for the remote LMS API and curation service.
	LMS struct {
		srv *httptest.Server

		mu        sync.RWMutex
		seq       int
		users     map[string]*fakeUser
		courses   map[string]*fakeCourse
		courseIDs []string // creation order
		quizzes   map[string]*fakeQuiz
		questions map[string]*FakeQuestion
		progress  map[string]FakeProgress // {userID/courseID: progress}
		results   []FakeResult
		generated []map[string]interface{}

		failProgress bool
		failResults  bool
		progressGate chan struct{}
	}
)

// NewLMS starts a fake LMS, closed when the test ends.
func NewLMS(t *testing.T) *LMS {
	lms := &LMS{
		users:     make(map[string]*fakeUser),
		courses:   make(map[string]*fakeCourse),
		quizzes:   make(map[string]*fakeQuiz),
		questions: make(map[string]*FakeQuestion),
		progress:  make(map[string]FakeProgress),
	}
	lms.srv = httptest.NewServer(lms.routes())
	t.Cleanup(lms.srv.Close)
	return lms
}

func (lms *LMS) URL() string { return lms.srv.URL }

func (lms *LMS) nextID(prefix string) string {
	lms.seq++
	return prefix + strconv.Itoa(lms.seq)
}

func progressKey(userID, courseID string) string { return userID + "/" + courseID }

// Fixtures

func (lms *LMS) AddUser(name, email, password, role string) string {
	lms.mu.Lock()
	defer lms.mu.Unlock()
	id := lms.nextID("u")
	lms.users[id] = &fakeUser{ID: id, Name: name, Email: email, Password: password, Role: role}
	return id
}

func (lms *LMS) AddCourse(name string, modules ...string) string {
	lms.mu.Lock()
	defer lms.mu.Unlock()
	id := lms.nextID("c")
	crs := &fakeCourse{ID: id, Name: name, Description: name + " description", Image: "https://img.test/" + id + ".png"}
	for _, m := range modules {
		crs.Modules = append(crs.Modules, fakeModule{Name: m, Content: "<p>" + m + "</p>"})
	}
	lms.courses[id] = crs
	lms.courseIDs = append(lms.courseIDs, id)
	return id
}

func (lms *LMS) AddQuiz(courseID, name string, questions ...FakeQuestion) string {
	lms.mu.Lock()
	defer lms.mu.Unlock()
	return lms.addQuiz(courseID, name, questions...)
}

func (lms *LMS) addQuiz(courseID, name string, questions ...FakeQuestion) string {
	id := lms.nextID("q")
	qz := &fakeQuiz{ID: id, CourseID: courseID, Name: name}
	for _, q := range questions {
		q := q
		q.ID = lms.nextID("qn")
		lms.questions[q.ID] = &q
		qz.QuestionIDs = append(qz.QuestionIDs, q.ID)
	}
	lms.quizzes[id] = qz
	if crs, ok := lms.courses[courseID]; ok {
		crs.QuizIDs = append(crs.QuizIDs, id)
	}
	return id
}

func (lms *LMS) Enroll(userID, courseID string) {
	lms.mu.Lock()
	defer lms.mu.Unlock()
	if usr, ok := lms.users[userID]; ok {
		usr.Enrollments = append(usr.Enrollments, fakeEnrollment{CourseID: courseID, EnrolledAt: time.Now().UTC()})
	}
}

func (lms *LMS) SetProgress(userID, courseID string, p FakeProgress) {
	lms.mu.Lock()
	defer lms.mu.Unlock()
	lms.progress[progressKey(userID, courseID)] = p
}

func (lms *LMS) Progress(userID, courseID string) (FakeProgress, bool) {
	lms.mu.RLock()
	defer lms.mu.RUnlock()
	p, ok := lms.progress[progressKey(userID, courseID)]
	return p, ok
}

func (lms *LMS) Results() []FakeResult {
	lms.mu.RLock()
	defer lms.mu.RUnlock()
	out := make([]FakeResult, len(lms.results))
	copy(out, lms.results)
	return out
}

func (lms *LMS) HasCourse(id string) bool {
	lms.mu.RLock()
	defer lms.mu.RUnlock()
	_, ok := lms.courses[id]
	return ok
}

func (lms *LMS) QuestionIDs(quizID string) []string {
	lms.mu.RLock()
	defer lms.mu.RUnlock()
	if qz, ok := lms.quizzes[quizID]; ok {
		return append([]string(nil), qz.QuestionIDs...)
	}
	return nil
}

// FailProgress makes progress updates fail with a server error.
func (lms *LMS) FailProgress(fail bool) {
	lms.mu.Lock()
	defer lms.mu.Unlock()
	lms.failProgress = fail
}

// FailResults makes result saves fail with a server error.
func (lms *LMS) FailResults(fail bool) {
	lms.mu.Lock()
	defer lms.mu.Unlock()
	lms.failResults = fail
}

// HoldProgress blocks progress updates until the returned func is called.
func (lms *LMS) HoldProgress() (release func()) {
	gate := make(chan struct{})
	lms.mu.Lock()
	lms.progressGate = gate
	lms.mu.Unlock()
	var once sync.Once
	return func() {
		once.Do(func() {
			lms.mu.Lock()
			lms.progressGate = nil
			lms.mu.Unlock()
			close(gate)
		})
	}
}

// Wire representations

func (lms *LMS) questionJSON(id string) echo.Map {
	q := lms.questions[id]
	return echo.Map{"_id": q.ID, "question": q.Question, "options": q.Options, "correctAns": q.CorrectAns}
}

func (lms *LMS) quizJSON(id string, withQuestions bool) echo.Map {
	qz := lms.quizzes[id]
	m := echo.Map{"_id": qz.ID, "quizName": qz.Name, "course": qz.CourseID}
	if withQuestions {
		qs := make([]echo.Map, 0, len(qz.QuestionIDs))
		for _, qid := range qz.QuestionIDs {
			qs = append(qs, lms.questionJSON(qid))
		}
		m["questions"] = qs
	} else {
		m["questions"] = qz.QuestionIDs
	}
	return m
}

// courseJSON populates quizzes (without their questions) when populate is set,
// and lists quiz IDs otherwise.
func (lms *LMS) courseJSON(id string, populate bool) echo.Map {
	crs := lms.courses[id]
	m := echo.Map{
		"_id":         crs.ID,
		"courseName":  crs.Name,
		"description": crs.Description,
		"image":       crs.Image,
		"modules":     crs.Modules,
	}
	if populate {
		qs := make([]echo.Map, 0, len(crs.QuizIDs))
		for _, qid := range crs.QuizIDs {
			qs = append(qs, lms.quizJSON(qid, false))
		}
		m["quizes"] = qs
	} else {
		ids := make([]string, len(crs.QuizIDs))
		copy(ids, crs.QuizIDs)
		m["quizes"] = ids
	}
	if crs.Modules == nil {
		m["modules"] = []fakeModule{}
	}
	return m
}

func (lms *LMS) userJSON(usr *fakeUser) echo.Map {
	enrolled := make([]echo.Map, 0, len(usr.Enrollments))
	for _, e := range usr.Enrollments {
		crs, ok := lms.courses[e.CourseID]
		if !ok {
			continue
		}
		var completed float64
		if p, ok := lms.progress[progressKey(usr.ID, e.CourseID)]; ok && len(crs.Modules) > 0 {
			completed = float64(len(p.CompletedModules)) * 100 / float64(len(crs.Modules))
		}
		enrolled = append(enrolled, echo.Map{
			"course":     lms.courseJSON(e.CourseID, false),
			"completed":  strconv.FormatFloat(completed, 'f', 2, 64),
			"timeSpent":  e.TimeSpent,
			"enrolledAt": e.EnrolledAt.Format(time.RFC3339),
		})
	}
	return echo.Map{"_id": usr.ID, "name": usr.Name, "email": usr.Email, "role": usr.Role, "enrolledCourses": enrolled}
}

func msg(ctx echo.Context, code int, message string) error {
	return ctx.JSON(code, echo.Map{"message": message})
}

func (lms *LMS) routes() *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	u := e.Group("/user")
	u.POST("/login", lms.login)
	u.POST("/register", lms.register)
	u.POST("/get-user", lms.getUser)
	u.GET("/getAllstudents", lms.allStudents)
	u.POST("/enrollCourse", lms.enroll)
	u.POST("/removeEnroll", lms.removeEnroll)
	u.POST("/getProgress", lms.getProgress)
	u.POST("/updateProgress", lms.updateProgress)

	c := e.Group("/course")
	c.GET("/allCourses", lms.allCourses)
	c.POST("/singleCourse", lms.singleCourse)
	c.POST("/createCourse", lms.createCourse)
	c.POST("/delete", lms.deleteCourse)
	c.POST("/createQuiz", lms.createQuiz)
	c.POST("/singleQuiz", lms.singleQuiz)
	c.POST("/deleteQuiz", lms.deleteQuiz)
	c.POST("/addQuestion", lms.addQuestion)
	c.POST("/deleteQuestion", lms.deleteQuestion)

	e.POST("/results/save", lms.saveResult)
	e.GET("/results/user/:userId", lms.userResults)

	e.POST("/gencourse/add", lms.saveGenerated)
	e.GET("/gencourse/all/:userId", lms.allGenerated)

	e.POST("/generate-course", lms.generate)
	e.POST("/generate-question", lms.generate)
	return e
}

// Users

func (lms *LMS) login(ctx echo.Context) error {
	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := ctx.Bind(&body); err != nil {
		return msg(ctx, http.StatusBadRequest, err.Error())
	}
	lms.mu.RLock()
	defer lms.mu.RUnlock()
	for _, usr := range lms.users {
		if usr.Email == body.Email && usr.Password == body.Password {
			return ctx.JSON(http.StatusOK, echo.Map{"success": true, "user": lms.userJSON(usr), "token": "remote-token"})
		}
	}
	return msg(ctx, http.StatusBadRequest, "Invalid credentials")
}

func (lms *LMS) register(ctx echo.Context) error {
	var body struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := ctx.Bind(&body); err != nil {
		return msg(ctx, http.StatusBadRequest, err.Error())
	}
	lms.mu.Lock()
	defer lms.mu.Unlock()
	for _, usr := range lms.users {
		if usr.Email == body.Email {
			return msg(ctx, http.StatusBadRequest, "User already exists")
		}
	}
	id := lms.nextID("u")
	usr := &fakeUser{ID: id, Name: body.Name, Email: body.Email, Password: body.Password, Role: "student"}
	lms.users[id] = usr
	return ctx.JSON(http.StatusCreated, echo.Map{"user": lms.userJSON(usr)})
}

func (lms *LMS) getUser(ctx echo.Context) error {
	var body struct {
		ID string `json:"id"`
	}
	if err := ctx.Bind(&body); err != nil {
		return msg(ctx, http.StatusBadRequest, err.Error())
	}
	lms.mu.RLock()
	defer lms.mu.RUnlock()
	usr, ok := lms.users[body.ID]
	if !ok {
		return msg(ctx, http.StatusNotFound, "User not found")
	}
	return ctx.JSON(http.StatusOK, echo.Map{"user": lms.userJSON(usr)})
}

func (lms *LMS) allStudents(ctx echo.Context) error {
	lms.mu.RLock()
	defer lms.mu.RUnlock()
	ids := make([]string, 0, len(lms.users))
	for id, usr := range lms.users {
		if usr.Role != "admin" {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	users := make([]echo.Map, 0, len(ids))
	for _, id := range ids {
		users = append(users, lms.userJSON(lms.users[id]))
	}
	return ctx.JSON(http.StatusOK, echo.Map{"user": users})
}

type userCourseBody struct {
	UserID   string `json:"userId"`
	CourseID string `json:"courseId"`
}

func (lms *LMS) enroll(ctx echo.Context) error {
	var body userCourseBody
	if err := ctx.Bind(&body); err != nil {
		return msg(ctx, http.StatusBadRequest, err.Error())
	}
	lms.mu.Lock()
	defer lms.mu.Unlock()
	usr, ok := lms.users[body.UserID]
	if !ok {
		return msg(ctx, http.StatusNotFound, "User not found")
	}
	usr.Enrollments = append(usr.Enrollments, fakeEnrollment{CourseID: body.CourseID, EnrolledAt: time.Now().UTC()})
	return msg(ctx, http.StatusOK, "Enrolled")
}

func (lms *LMS) removeEnroll(ctx echo.Context) error {
	var body userCourseBody
	if err := ctx.Bind(&body); err != nil {
		return msg(ctx, http.StatusBadRequest, err.Error())
	}
	lms.mu.Lock()
	defer lms.mu.Unlock()
	usr, ok := lms.users[body.UserID]
	if !ok {
		return msg(ctx, http.StatusNotFound, "User not found")
	}
	kept := usr.Enrollments[:0]
	for _, e := range usr.Enrollments {
		if e.CourseID != body.CourseID {
			kept = append(kept, e)
		}
	}
	usr.Enrollments = kept
	return msg(ctx, http.StatusOK, "Unenrolled")
}

func (lms *LMS) getProgress(ctx echo.Context) error {
	var body userCourseBody
	if err := ctx.Bind(&body); err != nil {
		return msg(ctx, http.StatusBadRequest, err.Error())
	}
	p, ok := lms.Progress(body.UserID, body.CourseID)
	if !ok {
		return msg(ctx, http.StatusNotFound, "Progress not found")
	}
	return ctx.JSON(http.StatusOK, p)
}

func (lms *LMS) updateProgress(ctx echo.Context) error {
	var body struct {
		userCourseBody
		FakeProgress
	}
	if err := ctx.Bind(&body); err != nil {
		return msg(ctx, http.StatusBadRequest, err.Error())
	}
	lms.mu.RLock()
	gate, fail := lms.progressGate, lms.failProgress
	lms.mu.RUnlock()
	if gate != nil {
		<-gate
	}
	if fail {
		return msg(ctx, http.StatusInternalServerError, "database unavailable")
	}
	lms.SetProgress(body.UserID, body.CourseID, body.FakeProgress)
	return msg(ctx, http.StatusOK, "Progress updated")
}

// Courses

func (lms *LMS) allCourses(ctx echo.Context) error {
	lms.mu.RLock()
	defer lms.mu.RUnlock()
	courses := make([]echo.Map, 0, len(lms.courseIDs))
	for _, id := range lms.courseIDs {
		courses = append(courses, lms.courseJSON(id, false))
	}
	return ctx.JSON(http.StatusOK, echo.Map{"courses": courses})
}

func (lms *LMS) singleCourse(ctx echo.Context) error {
	var body struct {
		CourseID string `json:"courseId"`
	}
	if err := ctx.Bind(&body); err != nil {
		return msg(ctx, http.StatusBadRequest, err.Error())
	}
	lms.mu.RLock()
	defer lms.mu.RUnlock()
	if _, ok := lms.courses[body.CourseID]; !ok {
		return msg(ctx, http.StatusNotFound, "Course not found")
	}
	return ctx.JSON(http.StatusOK, echo.Map{"course": lms.courseJSON(body.CourseID, true)})
}

func (lms *LMS) createCourse(ctx echo.Context) error {
	var body struct {
		CourseName  string       `json:"courseName"`
		Description string       `json:"description"`
		Image       string       `json:"image"`
		Modules     []fakeModule `json:"modules"`
	}
	if err := ctx.Bind(&body); err != nil {
		return msg(ctx, http.StatusBadRequest, err.Error())
	}
	lms.mu.Lock()
	defer lms.mu.Unlock()
	id := lms.nextID("c")
	lms.courses[id] = &fakeCourse{ID: id, Name: body.CourseName, Description: body.Description, Image: body.Image, Modules: body.Modules}
	lms.courseIDs = append(lms.courseIDs, id)
	return ctx.JSON(http.StatusCreated, echo.Map{"course": lms.courseJSON(id, true)})
}

func (lms *LMS) deleteCourse(ctx echo.Context) error {
	var body struct {
		CourseID string `json:"courseId"`
	}
	if err := ctx.Bind(&body); err != nil {
		return msg(ctx, http.StatusBadRequest, err.Error())
	}
	lms.mu.Lock()
	defer lms.mu.Unlock()
	if _, ok := lms.courses[body.CourseID]; !ok {
		return msg(ctx, http.StatusNotFound, "Course not found")
	}
	delete(lms.courses, body.CourseID)
	ids := lms.courseIDs[:0]
	for _, id := range lms.courseIDs {
		if id != body.CourseID {
			ids = append(ids, id)
		}
	}
	lms.courseIDs = ids
	return msg(ctx, http.StatusOK, "Course deleted")
}

func (lms *LMS) createQuiz(ctx echo.Context) error {
	var body struct {
		CourseID string `json:"courseId"`
		QuizName string `json:"quizName"`
	}
	if err := ctx.Bind(&body); err != nil {
		return msg(ctx, http.StatusBadRequest, err.Error())
	}
	lms.mu.Lock()
	defer lms.mu.Unlock()
	if _, ok := lms.courses[body.CourseID]; !ok {
		return msg(ctx, http.StatusNotFound, "Course not found")
	}
	id := lms.addQuiz(body.CourseID, body.QuizName)
	return ctx.JSON(http.StatusCreated, echo.Map{"quiz": lms.quizJSON(id, true)})
}

func (lms *LMS) singleQuiz(ctx echo.Context) error {
	var body struct {
		QuizID string `json:"quizId"`
	}
	if err := ctx.Bind(&body); err != nil {
		return msg(ctx, http.StatusBadRequest, err.Error())
	}
	lms.mu.RLock()
	defer lms.mu.RUnlock()
	if _, ok := lms.quizzes[body.QuizID]; !ok {
		return msg(ctx, http.StatusNotFound, "Quiz not found")
	}
	return ctx.JSON(http.StatusOK, echo.Map{"quiz": lms.quizJSON(body.QuizID, true)})
}

func (lms *LMS) deleteQuiz(ctx echo.Context) error {
	var body struct {
		QuizID string `json:"quizId"`
	}
	if err := ctx.Bind(&body); err != nil {
		return msg(ctx, http.StatusBadRequest, err.Error())
	}
	lms.mu.Lock()
	defer lms.mu.Unlock()
	qz, ok := lms.quizzes[body.QuizID]
	if !ok {
		return msg(ctx, http.StatusNotFound, "Quiz not found")
	}
	delete(lms.quizzes, qz.ID)
	if crs, ok := lms.courses[qz.CourseID]; ok {
		ids := crs.QuizIDs[:0]
		for _, id := range crs.QuizIDs {
			if id != qz.ID {
				ids = append(ids, id)
			}
		}
		crs.QuizIDs = ids
	}
	return msg(ctx, http.StatusOK, "Quiz deleted")
}

func (lms *LMS) addQuestion(ctx echo.Context) error {
	var body struct {
		QuizID     string   `json:"quizId"`
		Question   string   `json:"question"`
		Option     []string `json:"option"`
		CorrectAns string   `json:"correctAns"`
	}
	if err := ctx.Bind(&body); err != nil {
		return msg(ctx, http.StatusBadRequest, err.Error())
	}
	lms.mu.Lock()
	defer lms.mu.Unlock()
	qz, ok := lms.quizzes[body.QuizID]
	if !ok {
		return msg(ctx, http.StatusNotFound, "Quiz not found")
	}
	q := &FakeQuestion{ID: lms.nextID("qn"), Question: body.Question, Options: body.Option, CorrectAns: body.CorrectAns}
	lms.questions[q.ID] = q
	qz.QuestionIDs = append(qz.QuestionIDs, q.ID)
	return ctx.JSON(http.StatusCreated, echo.Map{"question": lms.questionJSON(q.ID)})
}

func (lms *LMS) deleteQuestion(ctx echo.Context) error {
	var body struct {
		QuestionID string `json:"questionId"`
	}
	if err := ctx.Bind(&body); err != nil {
		return msg(ctx, http.StatusBadRequest, err.Error())
	}
	lms.mu.Lock()
	defer lms.mu.Unlock()
	if _, ok := lms.questions[body.QuestionID]; !ok {
		return msg(ctx, http.StatusNotFound, "Question not found")
	}
	delete(lms.questions, body.QuestionID)
	for _, qz := range lms.quizzes {
		ids := qz.QuestionIDs[:0]
		for _, id := range qz.QuestionIDs {
			if id != body.QuestionID {
				ids = append(ids, id)
			}
		}
		qz.QuestionIDs = ids
	}
	return msg(ctx, http.StatusOK, "Question deleted")
}

// Results

func (lms *LMS) saveResult(ctx echo.Context) error {
	var body FakeResult
	if err := ctx.Bind(&body); err != nil {
		return msg(ctx, http.StatusBadRequest, err.Error())
	}
	lms.mu.Lock()
	defer lms.mu.Unlock()
	if lms.failResults {
		return msg(ctx, http.StatusInternalServerError, "database unavailable")
	}
	body.ID = lms.nextID("r")
	lms.results = append(lms.results, body)
	return ctx.JSON(http.StatusCreated, body)
}

func (lms *LMS) userResults(ctx echo.Context) error {
	userID := ctx.Param("userId")
	lms.mu.RLock()
	defer lms.mu.RUnlock()
	results := make([]FakeResult, 0)
	for _, r := range lms.results {
		if r.UserID == userID {
			results = append(results, r)
		}
	}
	if len(results) == 0 {
		return msg(ctx, http.StatusNotFound, "No results found")
	}
	return ctx.JSON(http.StatusOK, results)
}

// Curation

func (lms *LMS) saveGenerated(ctx echo.Context) error {
	body := make(map[string]interface{})
	if err := ctx.Bind(&body); err != nil {
		return msg(ctx, http.StatusBadRequest, err.Error())
	}
	lms.mu.Lock()
	defer lms.mu.Unlock()
	body["_id"] = lms.nextID("g")
	body["createdAt"] = time.Now().UTC().Format(time.RFC3339)
	lms.generated = append(lms.generated, body)
	return ctx.JSON(http.StatusCreated, body)
}

func (lms *LMS) allGenerated(ctx echo.Context) error {
	userID := ctx.Param("userId")
	lms.mu.RLock()
	defer lms.mu.RUnlock()
	saved := make([]map[string]interface{}, 0)
	for _, g := range lms.generated {
		if g["userId"] == userID {
			saved = append(saved, g)
		}
	}
	return ctx.JSON(http.StatusOK, saved)
}

func (lms *LMS) generate(ctx echo.Context) error {
	var body struct {
		Subject    string `json:"subject"`
		FocusArea  string `json:"focus_area"`
		Difficulty string `json:"difficulty"`
		Units      int    `json:"units"`
	}
	if err := ctx.Bind(&body); err != nil {
		return msg(ctx, http.StatusBadRequest, err.Error())
	}
	units := make([]echo.Map, 0, body.Units)
	for i := 1; i <= body.Units; i++ {
		n := strconv.Itoa(i)
		units = append(units, echo.Map{
			"unitTitle":         body.FocusArea + " " + n,
			"estimatedDuration": n + " hours",
			"youtube_video_url": "https://video.test/" + n,
			"resources":         []interface{}{"https://docs.test/" + n, echo.Map{"title": "Book " + n, "url": "https://book.test/" + n}},
			"topics":            []string{"Topic " + n},
			"assignment":        "Write a program " + n,
			"detailedContent": echo.Map{"topicContents": []echo.Map{{
				"topic":     "Topic " + n,
				"content":   body.Subject + " content " + n,
				"examples":  []string{"example " + n},
				"exercises": []string{"exercise " + n},
			}}},
			"assessment": echo.Map{"unitAssessment": []echo.Map{
				{"question": "What is " + body.Subject + "?", "options": []string{"A language", "A fruit"}, "correctAnswer": "A language"},
				{"question": "Is " + body.FocusArea + " hard?", "options": []string{"Yes", "No"}, "answer": "No"},
			}},
		})
	}
	return ctx.JSON(http.StatusOK, echo.Map{"courseTitle": body.Subject, "units": units})
}
