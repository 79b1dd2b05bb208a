// Package handlertest holds helpers shared by handler tests.
package handlertest

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
)

// FakeService records its inputs and returns the configured result.
type FakeService[T any, S any] struct {
	Inputs      []T
	Result      S
	ReturnError error
	lock        sync.Mutex
}

func (s *FakeService[T, S]) Run(ctx context.Context, input T) (result S, err error) {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.Inputs = append(s.Inputs, input)
	if s.ReturnError != nil {
		return result, s.ReturnError
	}
	return s.Result, nil
}

func Do(handler http.Handler, method string, target string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		if err := json.NewEncoder(&buf).Encode(b); err != nil {
			panic(err)
		}
	}
	r := httptest.NewRequest(method, target, &buf)
	rw := httptest.NewRecorder()
	handler.ServeHTTP(rw, r)
	return rw
}

func DecodeJSON(rw *httptest.ResponseRecorder) map[string]interface{} {
	res := map[string]interface{}{}
	if err := json.Unmarshal(rw.Body.Bytes(), &res); err != nil {
		panic(err)
	}
	return res
}
