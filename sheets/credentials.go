package sheets

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/PaesslerAG/jsonpath"
)

// inspectCredentials checks that data is a service account key and returns its account email.
func inspectCredentials(data []byte) (email string, err error) {
	var jobj any
	if err := json.Unmarshal(data, &jobj); err != nil {
		return "", fmt.Errorf("not a json key file: %w", err)
	}
	typ, err := jsonpath.Get("$.type", jobj)
	if err != nil {
		return "", fmt.Errorf("missing key type: %w", err)
	}
	if typ != "service_account" {
		return "", fmt.Errorf("key type is %v, want service_account", typ)
	}
	jval, err := jsonpath.Get("$.client_email", jobj)
	if err != nil {
		return "", fmt.Errorf("missing client email: %w", err)
	}
	email, ok := jval.(string)
	if !ok || email == "" {
		return "", errors.New("empty client email")
	}
	return email, nil
}
