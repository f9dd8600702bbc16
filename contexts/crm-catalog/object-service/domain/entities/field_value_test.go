package entities

import (
	"encoding/json"
	"testing"
	"time"
)

func TestFieldValueDecodeInfersKind(t *testing.T) {
	var fields Fields
	raw := `{"city":"Paris","employees":42,"active":true,"signedAt":"2026-03-01T10:00:00Z"}`
	if err := json.Unmarshal([]byte(raw), &fields); err != nil {
		t.Fatalf("decode fields: %v", err)
	}

	if got := fields["city"]; got.Kind != KindString || got.Str != "Paris" {
		t.Fatalf("city should decode as string, got %+v", got)
	}
	if got := fields["employees"]; got.Kind != KindNumber || got.Num != 42 {
		t.Fatalf("employees should decode as number, got %+v", got)
	}
	if got := fields["active"]; got.Kind != KindBool || !got.Bool {
		t.Fatalf("active should decode as bool, got %+v", got)
	}
	signedAt := fields["signedAt"]
	if signedAt.Kind != KindDate {
		t.Fatalf("signedAt should decode as date, got %+v", signedAt)
	}
	want := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	if !signedAt.Date.Equal(want) {
		t.Fatalf("signedAt = %v, want %v", signedAt.Date, want)
	}
}

func TestFieldValueEncodesBareValues(t *testing.T) {
	fields := Fields{
		"city":      StringValue("Paris"),
		"employees": NumberValue(42),
		"active":    BoolValue(true),
		"signedAt":  DateValue(time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)),
	}
	encoded, err := json.Marshal(fields)
	if err != nil {
		t.Fatalf("encode fields: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(encoded, &decoded); err != nil {
		t.Fatalf("re-decode fields: %v", err)
	}
	if decoded["city"] != "Paris" {
		t.Fatalf("city = %v", decoded["city"])
	}
	if decoded["employees"] != float64(42) {
		t.Fatalf("employees = %v", decoded["employees"])
	}
	if decoded["active"] != true {
		t.Fatalf("active = %v", decoded["active"])
	}
	if decoded["signedAt"] != "2026-03-01T10:00:00Z" {
		t.Fatalf("signedAt = %v", decoded["signedAt"])
	}
}

func TestFieldValueString(t *testing.T) {
	cases := []struct {
		value FieldValue
		want  string
	}{
		{StringValue("Paris"), "Paris"},
		{NumberValue(42), "42"},
		{NumberValue(3.5), "3.5"},
		{BoolValue(false), "false"},
		{DateValue(time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)), "2026-03-01T10:00:00Z"},
	}
	for _, tc := range cases {
		if got := tc.value.String(); got != tc.want {
			t.Fatalf("String() = %q, want %q", got, tc.want)
		}
	}
}

func TestFieldsCloneIsIndependent(t *testing.T) {
	original := Fields{"city": StringValue("Paris")}
	clone := original.Clone()
	clone["city"] = StringValue("Lyon")

	if original["city"].Str != "Paris" {
		t.Fatalf("mutating the clone changed the original")
	}
}
