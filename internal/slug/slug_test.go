// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package slug

import "testing"

// TestGenerate exercises URL key generation with typical product names,
// special characters, transliteration and edge cases.
func TestGenerate(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		// --- Normal names ---
		{name: "simple two words", input: "Bruno Hoodie", want: "bruno-hoodie"},
		{name: "name with year", input: "Hello World 2026", want: "hello-world-2026"},
		{name: "already lowercase", input: "already lowercase", want: "already-lowercase"},
		{name: "single word", input: "GoLang", want: "golang"},

		// --- Special characters ---
		{name: "punctuation marks", input: "Hello, World! 2026", want: "hello-world-2026"},
		{name: "ampersand", input: "Rock & Roll", want: "rock-and-roll"},
		{name: "slashes", input: "Men/Tops/Hoodies", want: "men-tops-hoodies"},

		// --- Transliteration ---
		{name: "french accents", input: "Crème Brûlée", want: "creme-brulee"},

		// --- Whitespace and dashes ---
		{name: "leading and trailing spaces", input: "   spaced out   ", want: "spaced-out"},
		{name: "consecutive dashes", input: "Multiple---Dashes", want: "multiple-dashes"},
		{name: "dash at edges", input: "-edge-", want: "edge"},

		// --- Edge cases ---
		{name: "empty string", input: "", want: ""},
		{name: "only whitespace", input: "   ", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Generate(tt.input)
			if got != tt.want {
				t.Errorf("Generate(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestWithCounter(t *testing.T) {
	tests := []struct {
		key     string
		counter int
		want    string
	}{
		{key: "foo", counter: 0, want: "foo"},
		{key: "foo", counter: 1, want: "foo-1"},
		{key: "foo", counter: 12, want: "foo-12"},
		{key: "foo", counter: -1, want: "foo"},
	}

	for _, tt := range tests {
		if got := WithCounter(tt.key, tt.counter); got != tt.want {
			t.Errorf("WithCounter(%q, %d) = %q, want %q", tt.key, tt.counter, got, tt.want)
		}
	}
}
