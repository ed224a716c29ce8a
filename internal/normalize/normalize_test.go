package normalize

import (
	"reflect"
	"testing"
)

func TestHeader(t *testing.T) {
	testCases := []struct {
		input    string
		expected string
	}{
		{"Facility Name", "facility_name"},
		{"FacilityName", "facility_name"},
		{"  Provider ID  ", "provider_id"},
		{"already_snake", "already_snake"},
		{"ZIP Code", "zip_code"},
		{"", ""},
	}

	for _, tc := range testCases {
		result := Header(tc.input)
		if result != tc.expected {
			t.Errorf("Header(%q) = %q, want %q", tc.input, result, tc.expected)
		}
	}
}

func TestHeaderIdempotent(t *testing.T) {
	inputs := []string{"Facility Name", "Provider ID", "measure_start_date", "Telephone Number"}

	for _, in := range inputs {
		once := Header(in)
		twice := Header(once)
		if once != twice {
			t.Errorf("Header not idempotent for %q: first %q, second %q", in, once, twice)
		}
	}
}

func TestRow(t *testing.T) {
	in := []string{"Facility Name", "Address", "ZIP Code"}
	got := Row(in)

	want := []string{"facility_name", "address", "zip_code"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Row(%v) = %v, want %v", in, got, want)
	}

	// Input slice must be untouched.
	if in[0] != "Facility Name" {
		t.Errorf("Row modified its input: %v", in)
	}
}
