package royale

import "testing"

func TestValidateTag(t *testing.T) {
	cases := []struct {
		tag  string
		want bool
	}{
		{"#2PP", true},
		{"2PP", true},
		{"#9QGVY8LRJ", true},
		{"#ab12", false},     // lowercase
		{"#12", false},       // too short
		{"#1234567890123456", false}, // too long
		{"#123456", false},   // digits only
		{"#2PP!", false},     // punctuation
		{"", false},
		{"#", false},
	}
	for _, tc := range cases {
		if got := ValidateTag(tc.tag); got != tc.want {
			t.Errorf("ValidateTag(%q) = %v, want %v", tc.tag, got, tc.want)
		}
	}
}

func TestEncodeTag(t *testing.T) {
	if got := EncodeTag("#2PP"); got != "%232PP" {
		t.Errorf("EncodeTag(#2PP) = %q, want %%232PP", got)
	}
	if got := EncodeTag("2PP"); got != "%232PP" {
		t.Errorf("EncodeTag(2PP) = %q, want %%232PP", got)
	}
}
