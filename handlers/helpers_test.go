// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"

	"github.com/danielhkuo/listen/testutil"
)

func idStr(id int64) string {
	return strconv.FormatInt(id, 10)
}

// call runs a handler with the given path values and form
func call(h http.HandlerFunc, method, path string, pathValues map[string]string, form url.Values) *httptest.ResponseRecorder {
	req := testutil.MakeFormRequest(method, path, form)
	for k, v := range pathValues {
		req.SetPathValue(k, v)
	}
	w := httptest.NewRecorder()
	h(w, req)
	return w
}

func nameForm(name string) url.Values {
	return url.Values{"name": {name}}
}
