package config

import (
	"testing"
	"time"
)

func TestGetEnvString(t *testing.T) {
	t.Setenv("FG_TEST_STR", "hello")
	if got := GetEnvString("FG_TEST_STR", "def"); got != "hello" {
		t.Errorf("got %q", got)
	}
	if got := GetEnvString("FG_TEST_STR_MISSING", "def"); got != "def" {
		t.Errorf("got %q, want default", got)
	}
}

func TestGetEnvInt(t *testing.T) {
	t.Setenv("FG_TEST_INT", "42")
	if got := GetEnvInt("FG_TEST_INT", 7); got != 42 {
		t.Errorf("got %d", got)
	}
	t.Setenv("FG_TEST_INT_BAD", "not-a-number")
	if got := GetEnvInt("FG_TEST_INT_BAD", 7); got != 7 {
		t.Errorf("got %d, want default on parse failure", got)
	}
}

func TestGetEnvBool(t *testing.T) {
	cases := []struct {
		value string
		def   bool
		want  bool
	}{
		{"1", false, true},
		{"true", false, true},
		{"T", false, true},
		{"0", true, false},
		{"FALSE", true, false},
		{"maybe", true, true},
		{"", false, false},
	}
	for _, tc := range cases {
		t.Setenv("FG_TEST_BOOL", tc.value)
		if got := GetEnvBool("FG_TEST_BOOL", tc.def); got != tc.want {
			t.Errorf("GetEnvBool(%q, %v) = %v, want %v", tc.value, tc.def, got, tc.want)
		}
	}
}

func TestGetEnvDuration(t *testing.T) {
	t.Setenv("FG_TEST_DUR", "90s")
	if got := GetEnvDuration("FG_TEST_DUR", time.Minute); got != 90*time.Second {
		t.Errorf("got %v", got)
	}
	t.Setenv("FG_TEST_DUR_BAD", "ninety seconds")
	if got := GetEnvDuration("FG_TEST_DUR_BAD", time.Minute); got != time.Minute {
		t.Errorf("got %v, want default on parse failure", got)
	}
}

func TestValidatePositiveDuration(t *testing.T) {
	if err := ValidatePositiveDuration(time.Second); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := ValidatePositiveDuration(0); err == nil {
		t.Error("expected error for zero duration")
	}
	if err := ValidatePositiveDuration(-time.Second); err == nil {
		t.Error("expected error for negative duration")
	}
}
