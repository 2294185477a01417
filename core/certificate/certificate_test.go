package certificate

import (
	"context"
	"encoding/base64"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/academia/core"
	"github.com/trezcool/academia/core/course"
	"github.com/trezcool/academia/core/user"
)

func TestMakeVerifyCode(t *testing.T) {
	secret := "secret"
	NowFunc = func() time.Time { return time.Date(2024, time.March, 5, 15, 0, 0, 0, time.UTC) }
	defer func() { NowFunc = time.Now }()

	validCode := MakeCode(secret, "u1", "c1")

	tests := []struct {
		name     string
		userID   string
		courseID string
		code     string
		wantErr  error
	}{
		{name: "no code", userID: "u1", courseID: "c1", wantErr: ErrInvalidCode},
		{name: "invalid parts len", userID: "u1", courseID: "c1", code: "lmaooolol", wantErr: ErrInvalidCode},
		{name: "invalid base32", userID: "u1", courseID: "c1", code: "hahaha-sigsig-sig", wantErr: ErrInvalidCode},
		{name: "invalid timestamp", userID: "u1", courseID: "c1", code: "NRXWY-sigsig-sig", wantErr: ErrInvalidCode},
		{name: "invalid signature", userID: "u1", courseID: "c1", code: "HE4TS-sigsig-sig", wantErr: ErrInvalidCode},
		{name: "other student", userID: "u2", courseID: "c1", code: validCode, wantErr: ErrInvalidCode},
		{name: "other course", userID: "u1", courseID: "c2", code: validCode, wantErr: ErrInvalidCode},
		{name: "valid code", userID: "u1", courseID: "c1", code: validCode},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			issued, err := VerifyCode(secret, tt.userID, tt.courseID, tt.code)
			if err != tt.wantErr {
				t.Errorf("VerifyCode() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr == nil {
				assert.Equal(t, time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC), issued)
			}
		})
	}

	_, err := VerifyCode("other secret", "u1", "c1", validCode)
	assert.Equal(t, ErrInvalidCode, err)
}

type usersMock map[string]user.User

func (m usersMock) GetByID(_ context.Context, id string) (user.User, error) {
	usr, ok := m[id]
	if !ok {
		return user.User{}, user.ErrNotFound
	}
	return usr, nil
}

type mailMock struct {
	sent []*core.EmailMessage
}

func (m *mailMock) SendMessages(messages ...*core.EmailMessage) {
	for _, msg := range messages {
		if err := msg.Render(); err != nil {
			panic(err)
		}
		m.sent = append(m.sent, msg)
	}
}

func TestIssuer_Issue(t *testing.T) {
	users := usersMock{"u1": {ID: "u1", Name: "Ada", Email: "ada@test.test"}}
	mailSvc := &mailMock{}
	iss := NewIssuer(users, mailSvc, "secret", "Academia", nil)
	crs := course.Course{ID: "c1", Name: "Go 101"}

	cert, err := iss.Issue(context.Background(), "u1", crs)
	require.NoError(t, err)
	assert.Equal(t, "Ada", cert.StudentName)
	assert.Equal(t, "Go 101", cert.CourseName)
	_, err = VerifyCode("secret", "u1", "c1", cert.Code)
	assert.NoError(t, err)

	require.Len(t, mailSvc.sent, 1)
	msg := mailSvc.sent[0]
	assert.Equal(t, "ada@test.test", msg.To[0].Address)
	assert.Contains(t, msg.TextContent, "Congratulations Ada!")
	assert.Contains(t, msg.TextContent, cert.Code)
	assert.Contains(t, msg.HTMLContent, "<strong>Go 101</strong>")
	if assert.Len(t, msg.Attachments, 1) {
		at := msg.Attachments[0]
		assert.Equal(t, "certificate.txt", at.Filename)
		content, err := base64.StdEncoding.DecodeString(at.Content.String())
		require.NoError(t, err)
		assert.Contains(t, string(content), "This certifies that Ada completed the course \"Go 101\"")
	}

	_, err = iss.Issue(context.Background(), "ghost", crs)
	assert.Error(t, err)

	// failures are only logged
	iss.OnCourseComplete(context.Background(), "ghost", crs)
	assert.Len(t, mailSvc.sent, 1)
}
