package toml

import (
	"reflect"
	"strings"
	"testing"
)

// TestUnmarshal_Config verifies the full pipeline on a typical config file
func TestUnmarshal_Config(t *testing.T) {
	input := []byte(`
# vencoord settings
title = "grid"

[grid]
gap_x = 4
gap_y = 2 # rows are taller than columns

[output]
units = 'pixels'

[style]
label = "#ff0000"
palette = ["red", "green",
  "blue",]

[sound]
enabled = true
volume = 0.25
`)

	type Config struct {
		Title string `toml:"title"`
		Grid  struct {
			GapX int `toml:"gap_x"`
			GapY int `toml:"gap_y"`
		} `toml:"grid"`
		Output struct {
			Units string `toml:"units"`
		} `toml:"output"`
		Style *struct {
			Label   string   `toml:"label"`
			Palette []string `toml:"palette"`
		} `toml:"style"`
		Sound struct {
			Enabled bool    `toml:"enabled"`
			Volume  float64 `toml:"volume"`
		} `toml:"sound"`
	}

	var cfg Config
	if err := Unmarshal(input, &cfg); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}

	if cfg.Title != "grid" {
		t.Errorf("Title = %q, want grid", cfg.Title)
	}
	if cfg.Grid.GapX != 4 || cfg.Grid.GapY != 2 {
		t.Errorf("Grid = %+v, want {4 2}", cfg.Grid)
	}
	if cfg.Output.Units != "pixels" {
		t.Errorf("Units = %q, want pixels", cfg.Output.Units)
	}
	if cfg.Style == nil {
		t.Fatal("Style pointer not allocated")
	}
	if cfg.Style.Label != "#ff0000" {
		t.Errorf("Label = %q", cfg.Style.Label)
	}
	if !reflect.DeepEqual(cfg.Style.Palette, []string{"red", "green", "blue"}) {
		t.Errorf("Palette = %v", cfg.Style.Palette)
	}
	if !cfg.Sound.Enabled || cfg.Sound.Volume != 0.25 {
		t.Errorf("Sound = %+v", cfg.Sound)
	}
}

// TestUnmarshal_DottedKeys verifies dotted keys and dotted headers build the same tree
func TestUnmarshal_DottedKeys(t *testing.T) {
	a, err := NewParser([]byte("grid.gap_x = 3\ngrid.gap_y = 1\n")).Parse()
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	b, err := NewParser([]byte("[grid]\ngap_x = 3\ngap_y = 1\n")).Parse()
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Errorf("dotted keys %v != table header %v", a, b)
	}
}

func TestParse_Values(t *testing.T) {
	m, err := NewParser([]byte(`
int = -42
big = 1_000_000
float = 1.5e3
yes = true
no = false
esc = "tab\there \"quoted\" \u00e9"
lit = 'C:\path'
empty = []
`)).Parse()
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	want := map[string]any{
		"int":   int64(-42),
		"big":   int64(1000000),
		"float": 1500.0,
		"yes":   true,
		"no":    false,
		"esc":   "tab\there \"quoted\" é",
		"lit":   `C:\path`,
		"empty": []any{},
	}
	if !reflect.DeepEqual(m, want) {
		t.Errorf("got %#v\nwant %#v", m, want)
	}
}

func TestParse_Errors(t *testing.T) {
	cases := []struct {
		name  string
		input string
		msg   string
	}{
		{"MissingEquals", "key 5", "line 1"},
		{"MissingValue", "key =", "expected value"},
		{"DuplicateKey", "a = 1\na = 2", "duplicate key"},
		{"DuplicateTable", "[a]\n[a]", "defined twice"},
		{"ArrayOfTables", "[[a]]", "arrays of tables"},
		{"ValueAsTable", "a = 1\n[a]", "not a table"},
		{"UnterminatedString", `a = "abc`, "unterminated string"},
		{"NewlineInString", "a = \"ab\nc\"", "newline in string"},
		{"TwoValuesOneLine", "a = 1 b = 2", "expected newline"},
		{"UnclosedArray", "a = [1, 2", "expected ',' or ']'"},
		{"BadCharacter", "a = @", "unexpected character"},
		{"InlineTable", "a = {b = 1}", "unexpected character"},
		{"ErrorLine", "a = 1\n\nb = ", "line 3"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewParser([]byte(tc.input)).Parse()
			if err == nil {
				t.Fatalf("expected error for %q", tc.input)
			}
			if !strings.Contains(err.Error(), tc.msg) {
				t.Errorf("error %q does not mention %q", err, tc.msg)
			}
		})
	}
}

func TestDecode_TypeErrors(t *testing.T) {
	type Target struct {
		Gap    int    `toml:"gap"`
		Small  uint8  `toml:"small"`
		Name   string `toml:"name"`
		Nested struct {
			On bool `toml:"on"`
		} `toml:"nested"`
	}

	cases := []struct {
		name string
		data map[string]any
		msg  string
	}{
		{"StringForInt", map[string]any{"gap": "four"}, "gap: expected integer"},
		{"IntForString", map[string]any{"name": int64(1)}, "name: expected string"},
		{"NegativeUint", map[string]any{"small": int64(-1)}, "small: -1 out of range"},
		{"OverflowUint", map[string]any{"small": int64(300)}, "out of range for uint8"},
		{"ValueForTable", map[string]any{"nested": true}, "nested: expected table"},
		{"NestedType", map[string]any{"nested": map[string]any{"on": "yes"}}, "nested.on: expected boolean"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var v Target
			err := Decode(tc.data, &v)
			if err == nil || !strings.Contains(err.Error(), tc.msg) {
				t.Errorf("Decode error = %v, want mention of %q", err, tc.msg)
			}
		})
	}
}

func TestDecode_SkipsAndFallbacks(t *testing.T) {
	type Target struct {
		Name    string
		Ignored string `toml:"-"`
		hidden  string
	}
	var v Target
	err := Decode(map[string]any{"Name": "x", "Ignored": "y", "hidden": "z", "Unknown": 1}, &v)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if v.Name != "x" || v.Ignored != "" || v.hidden != "" {
		t.Errorf("got %+v", v)
	}
}

func TestDecode_RequiresPointer(t *testing.T) {
	var v struct{}
	if err := Decode(map[string]any{}, v); err == nil {
		t.Error("expected error for non-pointer target")
	}
}

func TestDecode_IntToFloat(t *testing.T) {
	var v struct {
		Volume float64 `toml:"volume"`
	}
	if err := Unmarshal([]byte("volume = 1"), &v); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if v.Volume != 1 {
		t.Errorf("Volume = %v, want 1", v.Volume)
	}
}
