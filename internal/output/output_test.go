package output

import (
	"bytes"
	"strings"
	"testing"
)

type sample struct {
	Name    string `json:"name" yaml:"name"`
	Version string `json:"version" yaml:"version"`
}

func (s sample) String() string {
	return s.Name + " " + s.Version
}

func TestWriterWrite(t *testing.T) {
	tests := []struct {
		name   string
		format Format
		want   string
	}{
		{
			name:   "text uses Stringer",
			format: FormatText,
			want:   "ralph 1.0.0\n",
		},
		{
			name:   "json",
			format: FormatJSON,
			want:   "{\n  \"name\": \"ralph\",\n  \"version\": \"1.0.0\"\n}\n",
		},
		{
			name:   "yaml",
			format: FormatYAML,
			want:   "name: ralph\nversion: 1.0.0\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			w := NewWriter(&buf, tt.format)
			if err := w.Write(sample{Name: "ralph", Version: "1.0.0"}); err != nil {
				t.Fatalf("Write() error = %v", err)
			}
			if buf.String() != tt.want {
				t.Errorf("Write() = %q, want %q", buf.String(), tt.want)
			}
		})
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input   string
		want    Format
		wantErr bool
	}{
		{input: "text", want: FormatText},
		{input: "", want: FormatText},
		{input: "json", want: FormatJSON},
		{input: "yaml", want: FormatYAML},
		{input: "xml", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseFormat(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Errorf("ParseFormat(%q) expected error", tt.input)
				}
				if !strings.Contains(err.Error(), tt.input) {
					t.Errorf("Error should name the bad format, got: %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseFormat(%q) error = %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseFormat(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}
