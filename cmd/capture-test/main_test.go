package main

import (
	"strings"
	"testing"
)

func TestFormatPlan(t *testing.T) {
	cases := map[string][]string{
		"":     {"", "MJPG", "YUYV"},
		"MJPG": {"MJPG", "YUYV"},
		"YUYV": {"YUYV", "MJPG"},
		"RGB3": {"RGB3"},
	}
	for in, want := range cases {
		got := formatPlan(in)
		if strings.Join(got, ",") != strings.Join(want, ",") {
			t.Fatalf("formatPlan(%q) = %v, want %v", in, got, want)
		}
	}
}
