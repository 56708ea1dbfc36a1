package ids

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Hello World", "hello-world"},
		{"  Hello   World  ", "hello-world"},
		{"Hello, World!", "hello-world"},
		{"snake_case and-kebab", "snake-case-and-kebab"},
		{"--Leading and trailing--", "leading-and-trailing"},
		{"Don't Panic", "dont-panic"},
		{"Version 2.0 Release", "version-20-release"},
		{"Ünïcode Straße", "ünïcode-straße"},
		{"日本語 タイトル", "日本語-タイトル"},
		{"!!!", ""},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, Slugify(tt.input))
		})
	}
}

func TestAllocatorSequence(t *testing.T) {
	a := NewAllocator()

	var got []string
	for i := 0; i < 5; i++ {
		got = append(got, a.Next("hello-world"))
	}

	assert.Equal(t, []string{
		"hello-world",
		"hello-world-2",
		"hello-world-3",
		"hello-world-4",
		"hello-world-5",
	}, got)
}

func TestAllocatorIndependentBases(t *testing.T) {
	a := NewAllocator()

	assert.Equal(t, "intro", a.Next("intro"))
	assert.Equal(t, "setup", a.Next("setup"))
	assert.Equal(t, "intro-2", a.Next("intro"))
	assert.Equal(t, "setup-2", a.Next(" setup "))
}

func TestAllocatorSkipsIssuedSuffix(t *testing.T) {
	a := NewAllocator()

	assert.Equal(t, "intro", a.Next("intro"))
	assert.Equal(t, "intro-2", a.Next("intro-2"))
	assert.Equal(t, "intro-3", a.Next("intro"))
}

func TestAllocatorsAreIndependent(t *testing.T) {
	first := NewAllocator()
	second := NewAllocator()

	first.Next("heading")
	assert.Equal(t, "heading", second.Next("heading"))
	assert.Equal(t, "heading-2", first.Next("heading"))
}

func ExampleAllocator() {
	a := NewAllocator()
	for _, title := range []string{"Hello World", "Hello, world", "!!!"} {
		base := Slugify(title)
		if base == "" {
			base = Fallback
		}
		fmt.Println(a.Next(base))
	}
	// Output:
	// hello-world
	// hello-world-2
	// heading
}
