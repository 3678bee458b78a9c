// Package query builds list query strings where unset filters are omitted.
package query

import (
	"net/url"
	"strconv"
)

// Page is the skip/limit window shared by every list endpoint. Zero values
// are left to the server defaults.
type Page struct {
	Skip  int `json:"skip,omitempty"`
	Limit int `json:"limit,omitempty"`
}

type Values struct {
	v url.Values
}

func New() *Values {
	return &Values{v: url.Values{}}
}

func (q *Values) String(key string, value *string) *Values {
	if value != nil && *value != "" {
		q.v.Set(key, *value)
	}
	return q
}

func (q *Values) Text(key, value string) *Values {
	if value != "" {
		q.v.Set(key, value)
	}
	return q
}

func (q *Values) Bool(key string, value *bool) *Values {
	if value != nil {
		q.v.Set(key, strconv.FormatBool(*value))
	}
	return q
}

func (q *Values) Page(p Page) *Values {
	if p.Skip > 0 {
		q.v.Set("skip", strconv.Itoa(p.Skip))
	}
	if p.Limit > 0 {
		q.v.Set("limit", strconv.Itoa(p.Limit))
	}
	return q
}

// Values returns nil when nothing was set so requests carry no bare "?".
func (q *Values) Values() url.Values {
	if len(q.v) == 0 {
		return nil
	}
	return q.v
}
