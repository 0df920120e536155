package subscription

import (
	"errors"
	"fmt"
	"net/http"
	"unicode/utf8"

	"github.com/Veikkosuhonen/cloudcafe/internal/domain"
)

// maxFormBytes caps the request body; a name and an email never need more.
const maxFormBytes = 16 << 10

var (
	errMissingField    = errors.New("missing form field")
	errInvalidEncoding = errors.New("form field is not valid UTF-8")
)

// FormData is the untrusted body of POST /subscribe.
type FormData struct {
	Email string
	Name  string
}

// NewSubscriber validates the form, email first, and returns the first
// failure.
func (f FormData) NewSubscriber() (domain.NewSubscriber, error) {
	return domain.NewSubscriberFrom(f.Email, f.Name)
}

// decodeForm reads an application/x-www-form-urlencoded body. Both keys must
// be present and percent-decode to valid UTF-8; an empty value is accepted
// here and rejected by validation.
func decodeForm(w http.ResponseWriter, r *http.Request) (FormData, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)

	// ParseForm only fills PostForm for a form content type, so a JSON or
	// missing Content-Type ends up as missing fields below.
	if err := r.ParseForm(); err != nil {
		return FormData{}, fmt.Errorf("decodeForm: %w", err)
	}

	email, err := requiredField(r, "email")
	if err != nil {
		return FormData{}, err
	}
	name, err := requiredField(r, "name")
	if err != nil {
		return FormData{}, err
	}

	return FormData{Email: email, Name: name}, nil
}

func requiredField(r *http.Request, key string) (string, error) {
	values, ok := r.PostForm[key]
	if !ok || len(values) == 0 {
		return "", fmt.Errorf("decodeForm: %w: %s", errMissingField, key)
	}
	if !utf8.ValidString(values[0]) {
		return "", fmt.Errorf("decodeForm: %w: %s", errInvalidEncoding, key)
	}
	return values[0], nil
}
