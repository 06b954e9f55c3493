package types

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestParseAPIError_FieldShapes(t *testing.T) {
	t.Parallel()
	cases := []struct {
		name string
		body string
		want map[string][]string
	}{
		{"list values", `{"date":["invalid","past"]}`, map[string][]string{"date": {"invalid", "past"}}},
		{"string value", `{"client":"Account suspended"}`, map[string][]string{"client": {"Account suspended"}}},
		{"detail", `{"detail":"Not found."}`, map[string][]string{"detail": {"Not found."}}},
		{"html body", `<html>boom</html>`, nil},
		{"empty", ``, nil},
		{"non string values", `{"count":3}`, nil},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			e := ParseAPIError(400, []byte(tc.body))
			if len(e.Fields) != len(tc.want) {
				t.Fatalf("fields = %v, want %v", e.Fields, tc.want)
			}
			for k, msgs := range tc.want {
				got := e.Fields[k]
				if len(got) != len(msgs) {
					t.Fatalf("field %s = %v, want %v", k, got, msgs)
				}
				for i := range msgs {
					if got[i] != msgs[i] {
						t.Fatalf("field %s[%d] = %q, want %q", k, i, got[i], msgs[i])
					}
				}
			}
		})
	}
}

func TestAPIError_Kind(t *testing.T) {
	t.Parallel()
	cases := []struct {
		e    *APIError
		want ErrorKind
	}{
		{&APIError{StatusCode: http.StatusUnauthorized}, KindAuthorization},
		{&APIError{StatusCode: 400, Fields: map[string][]string{"date": {"bad"}}}, KindValidation},
		{&APIError{StatusCode: 400}, KindUnknown},
		{&APIError{StatusCode: 500}, KindUnknown},
		{&APIError{}, KindTransport},
	}
	for _, tc := range cases {
		if got := tc.e.Kind(); got != tc.want {
			t.Fatalf("Kind(%+v) = %v, want %v", tc.e, got, tc.want)
		}
	}
}

func TestAPIError_Irrecoverable(t *testing.T) {
	t.Parallel()
	cases := []struct {
		status int
		want   bool
	}{
		{400, true},
		{404, true},
		{http.StatusRequestTimeout, false},
		{http.StatusTooManyRequests, false},
		{500, false},
		{0, false},
	}
	for _, tc := range cases {
		e := &APIError{StatusCode: tc.status}
		if got := e.Irrecoverable(); got != tc.want {
			t.Fatalf("Irrecoverable(%d) = %v, want %v", tc.status, got, tc.want)
		}
	}
}

func TestJoinedFieldErrors_Deterministic(t *testing.T) {
	t.Parallel()
	e := &APIError{Fields: map[string][]string{
		"start_time": {"too early"},
		"date":       {"invalid", "in the past"},
	}}
	want := "date: invalid in the past | start_time: too early"
	for i := 0; i < 10; i++ {
		if got := e.JoinedFieldErrors(); got != want {
			t.Fatalf("joined = %q, want %q", got, want)
		}
	}
}

func TestAsAPIError_Wrapped(t *testing.T) {
	t.Parallel()
	inner := ParseAPIError(422, []byte(`{"bio":["required"]}`))
	wrapped := fmt.Errorf("submit profile: %w", inner)
	got, ok := AsAPIError(wrapped)
	if !ok || got.StatusCode != 422 {
		t.Fatalf("AsAPIError = %+v, %v", got, ok)
	}
	if _, ok := AsAPIError(errors.New("plain")); ok {
		t.Fatal("plain error should not match")
	}
}

func TestIsIrrecoverable(t *testing.T) {
	t.Parallel()
	if !IsIrrecoverable(ParseAPIError(403, nil)) {
		t.Fatal("403 should be irrecoverable")
	}
	if IsIrrecoverable(errors.New("transient")) {
		t.Fatal("unclassified error is not irrecoverable")
	}
}
