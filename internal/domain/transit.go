package domain

import (
	"encoding/json"
	"errors"
	"net/url"
)

var errUnnamedBean = errors.New("bean has no name")

// EncodeBean serializes a bean so it can travel as a single query value
// from the list view to the detail view.
func EncodeBean(bean CoffeeBean) (string, error) {
	raw, err := json.Marshal(bean)
	if err != nil {
		return "", &ParseError{Source: "bean payload", Err: err}
	}
	return url.QueryEscape(string(raw)), nil
}

// DecodeBean reverses EncodeBean. A payload that decodes to a bean without a
// name (`null`, `{}`) is rejected since nothing can be looked up for it.
func DecodeBean(payload string) (*CoffeeBean, error) {
	raw, err := url.QueryUnescape(payload)
	if err != nil {
		return nil, &ParseError{Source: "bean payload", Err: err}
	}

	var bean CoffeeBean
	if err := json.Unmarshal([]byte(raw), &bean); err != nil {
		return nil, &ParseError{Source: "bean payload", Err: err}
	}
	if bean.Name == "" {
		return nil, &ParseError{Source: "bean payload", Err: errUnnamedBean}
	}
	return &bean, nil
}
