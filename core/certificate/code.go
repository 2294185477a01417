package certificate

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base32"
	"encoding/base64"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

var (
	salt    = []byte("academia.core.certificate.code")
	NowFunc = time.Now // mockable

	// errors
	ErrInvalidCode = errors.New("invalid certificate code")

	tsEncoding = base32.StdEncoding.WithPadding(base32.NoPadding)
	refDate    = time.Date(2001, time.January, 1, 0, 0, 0, 0, time.UTC)
)

// MakeCode generates the verification code of a course completion by userID, issued today.
func MakeCode(secret, userID, courseID string) string {
	return makeCodeWithTimestamp(secret, userID, courseID, numDaysSince2001(NowFunc()))
}

// VerifyCode checks that code was issued for userID and courseID and returns the issue date.
func VerifyCode(secret, userID, courseID, code string) (time.Time, error) {
	if code == "" {
		return time.Time{}, ErrInvalidCode
	}

	parts := strings.SplitN(code, "-", 2)
	if len(parts) < 2 {
		return time.Time{}, ErrInvalidCode
	}

	data, err := tsEncoding.DecodeString(parts[0])
	if err != nil {
		return time.Time{}, ErrInvalidCode
	}
	ts, err := strconv.Atoi(string(data))
	if err != nil {
		return time.Time{}, ErrInvalidCode
	}

	// check that code has not been tampered with
	want := makeCodeWithTimestamp(secret, userID, courseID, ts)
	if subtle.ConstantTimeCompare([]byte(want), []byte(code)) == 0 {
		return time.Time{}, ErrInvalidCode
	}
	return refDate.AddDate(0, 0, ts), nil
}

func makeCodeWithTimestamp(secret, userID, courseID string, ts int) string {
	tsB32 := tsEncoding.EncodeToString([]byte(strconv.Itoa(ts)))
	return fmt.Sprintf("%s-%s", tsB32, sign(secret, hashValue(userID, courseID, ts)))
}

func numDaysSince2001(t time.Time) int {
	return int(math.Floor(t.UTC().Sub(refDate).Hours() / 24))
}

func sign(secret string, val []byte) string {
	key := sha256.Sum256(append(append([]byte(nil), salt...), secret...))
	h := hmac.New(sha256.New, key[:])
	_, _ = h.Write(val)
	return base64.RawURLEncoding.EncodeToString(h.Sum(nil))
}

func hashValue(userID, courseID string, ts int) []byte {
	var val bytes.Buffer
	val.WriteString(userID)
	val.WriteByte(0)
	val.WriteString(courseID)
	val.WriteByte(0)
	val.WriteString(strconv.Itoa(ts))
	return val.Bytes()
}
