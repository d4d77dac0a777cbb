package routes

import "strings"

// QueryParam is one key/value pair of an upstream query string.
type QueryParam struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// QueryParams keeps insertion order so rendered query strings are stable.
type QueryParams []QueryParam

// Add appends key=value after any existing parameters.
func (q *QueryParams) Add(key, value string) {
	*q = append(*q, QueryParam{Key: key, Value: value})
}

func (q QueryParams) Len() int {
	return len(q)
}

// Get returns the first value stored for key.
func (q QueryParams) Get(key string) (string, bool) {
	for _, p := range q {
		if p.Key == key {
			return p.Value, true
		}
	}
	return "", false
}

// Encode joins the parameters as key1=val1&key2=val2 in insertion order.
// Keys and values are substituted literally.
func (q QueryParams) Encode() string {
	if len(q) == 0 {
		return ""
	}
	var b strings.Builder
	for i, p := range q {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(p.Key)
		b.WriteByte('=')
		b.WriteString(p.Value)
	}
	return b.String()
}
