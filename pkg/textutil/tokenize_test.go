package textutil

import (
	"reflect"
	"testing"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "lowercases and splits on non-alphanumeric",
			text: "Wireless Noise-Cancelling Headphones!",
			want: []string{"wireless", "noise", "cancelling", "headphones"},
		},
		{
			name: "drops stop words",
			text: "the best shoe for the trail",
			want: []string{"best", "shoe", "trail"},
		},
		{
			name: "drops single-character tokens",
			text: "a b c usb 4k",
			want: []string{"usb", "4k"},
		},
		{
			name: "empty input",
			text: "",
			want: nil,
		},
		{
			name: "only stop words",
			text: "and or the of",
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Tokenize(tt.text)
			if len(got) == 0 && len(tt.want) == 0 {
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Tokenize(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestIsStopWord(t *testing.T) {
	if !IsStopWord("the") {
		t.Error("expected 'the' to be a stop word")
	}
	if IsStopWord("headphones") {
		t.Error("did not expect 'headphones' to be a stop word")
	}
}
