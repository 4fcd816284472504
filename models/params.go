package models

import (
	"net/url"
	"strings"
)

// Param one query parameter occurrence
type Param struct {
	Key   string
	Value string
}

// Params request parameters.
// Unlike url.Values this keeps the order of occurrences, across keys and
// within a repeated key, so query clauses come out in the order the caller
// supplied them.
type Params []Param

// ParamGroup values of one key, in supplied order
type ParamGroup struct {
	Key    string
	Values []string
}

// ParseParams parse a raw query string
// Unescape failures keep the raw text; malformed input is inert here.
func ParseParams(rawQuery string) Params {
	params := Params{}
	for _, pair := range strings.Split(rawQuery, "&") {
		if pair == "" {
			continue
		}

		key, value, _ := strings.Cut(pair, "=")
		if k, err := url.QueryUnescape(key); err == nil {
			key = k
		}
		if v, err := url.QueryUnescape(value); err == nil {
			value = v
		}
		params = append(params, Param{Key: key, Value: value})
	}

	return params
}

// Add add an occurrence
func (p Params) Add(key, value string) Params {
	return append(p, Param{Key: key, Value: value})
}

// First first value for key
func (p Params) First(key string) (string, bool) {
	for _, v := range p {
		if v.Key == key {
			return v.Value, true
		}
	}

	return "", false
}

// All all values for key, in supplied order
func (p Params) All(key string) []string {
	var values []string
	for _, v := range p {
		if v.Key == key {
			values = append(values, v.Value)
		}
	}

	return values
}

// Groups group values by key, keys in first-occurrence order.
// Keys found in exclude contribute no group.
func (p Params) Groups(exclude map[string]bool) []*ParamGroup {
	var groups []*ParamGroup
	index := make(map[string]*ParamGroup)
	for _, v := range p {
		if exclude[v.Key] {
			continue
		}

		group, ok := index[v.Key]
		if !ok {
			group = &ParamGroup{Key: v.Key}
			index[v.Key] = group
			groups = append(groups, group)
		}
		group.Values = append(group.Values, v.Value)
	}

	return groups
}
