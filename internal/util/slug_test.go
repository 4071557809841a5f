package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{"Ujian Akhir Semester", "ujian-akhir-semester"},
		{"Matematika Dasar 2024", "matematika-dasar-2024"},
		{"  Bahasa   Indonesia  ", "bahasa-indonesia"},
		{"Fisika: Gerak & Gaya!", "fisika-gerak-gaya"},
		{"UPPERCASE", "uppercase"},
		{"---", ""},
		{"", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Slugify(tt.title), "title %q", tt.title)
	}
}

func TestSlugWithSuffix(t *testing.T) {
	assert.Equal(t, "ujian-akhir-2", SlugWithSuffix("ujian-akhir", 2))
	assert.Equal(t, "ujian-akhir-3", SlugWithSuffix("ujian-akhir", 3))
}
