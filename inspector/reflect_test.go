package inspector

import (
	"testing"

	"github.com/pthm-cable/flowtrails/vector"
)

func TestParseTag(t *testing.T) {
	tests := []struct {
		tag    string
		widget Widget
		opts   map[string]string
	}{
		{"", WidgetAuto, map[string]string{}},
		{"bar,max:5", WidgetBar, map[string]string{"max": "5"}},
		{"label,fmt:%.0f px", WidgetLabel, map[string]string{"fmt": "%.0f px"}},
		{"skip", WidgetSkip, map[string]string{}},
		{"unknown", WidgetAuto, map[string]string{}},
	}
	for _, tt := range tests {
		t.Run(tt.tag, func(t *testing.T) {
			w, opts := ParseTag(tt.tag)
			if w != tt.widget {
				t.Errorf("widget = %v, want %v", w, tt.widget)
			}
			if len(opts) != len(tt.opts) {
				t.Fatalf("options = %v, want %v", opts, tt.opts)
			}
			for k, v := range tt.opts {
				if opts[k] != v {
					t.Errorf("option %s = %q, want %q", k, opts[k], v)
				}
			}
		})
	}
}

func TestExtractFields(t *testing.T) {
	type sample struct {
		TrailPoints int
		Speed       float64 `inspect:"bar,max:2"`
		Decaying    bool
		Hidden      string `inspect:"skip"`
		private     int
	}
	fields := ExtractFields(&sample{TrailPoints: 3, Speed: 1, Decaying: true, private: 1})
	if len(fields) != 3 {
		t.Fatalf("got %d fields, want 3", len(fields))
	}

	want := []struct {
		name   string
		widget Widget
	}{
		{"Trail points", WidgetLabel},
		{"Speed", WidgetBar},
		{"Decaying", WidgetBool},
	}
	for i, w := range want {
		if fields[i].Name != w.name || fields[i].Widget != w.widget {
			t.Errorf("field %d = %s/%v, want %s/%v", i, fields[i].Name, fields[i].Widget, w.name, w.widget)
		}
	}

	if ExtractFields(42) != nil {
		t.Error("non-struct should yield no fields")
	}
}

func TestDisplayName(t *testing.T) {
	tests := map[string]string{
		"ID":          "ID",
		"Group":       "Group",
		"TrailPoints": "Trail points",
		"Capacity":    "Capacity",
	}
	for in, want := range tests {
		if got := DisplayName(in); got != want {
			t.Errorf("DisplayName(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestFormatValue(t *testing.T) {
	tests := []struct {
		value any
		fmt   string
		want  string
	}{
		{1.23456, "", "1.23"},
		{vector.New(1, 2.26), "%.1f", "(1.0, 2.3)"},
		{vector.New(1, 2), "", "(1.00, 2.00)"},
		{uint64(7), "", "7"},
		{120.4, "%.0f px", "120 px"},
	}
	for _, tt := range tests {
		if got := FormatValue(tt.value, tt.fmt); got != tt.want {
			t.Errorf("FormatValue(%v, %q) = %q, want %q", tt.value, tt.fmt, got, tt.want)
		}
	}
}

func TestGetMax(t *testing.T) {
	if got := GetMax(map[string]string{"max": "5"}); got != 5 {
		t.Errorf("GetMax = %v, want 5", got)
	}
	if got := GetMax(map[string]string{"max": "nope"}); got != 1 {
		t.Errorf("GetMax with bad value = %v, want 1", got)
	}
}
