package service

import (
	"context"
	"strconv"

	"github.com/gosimple/slug"
)

const (
	fallbackSlug  = "product"
	maxSlugLength = 200
)

// Slugify turns a product name into a lowercase, hyphen-separated URL key.
// Non-Latin scripts are transliterated.
func Slugify(name string) string {
	s := slug.Make(name)
	if len(s) > maxSlugLength {
		s = s[:maxSlugLength]
		for len(s) > 0 && s[len(s)-1] == '-' {
			s = s[:len(s)-1]
		}
	}
	if s == "" {
		return fallbackSlug
	}
	return s
}

// SlugTaken reports whether a candidate slug is already in use.
type SlugTaken func(ctx context.Context, candidate string) (bool, error)

// UniqueSlug returns base if it is free, otherwise the first free candidate
// of base-1, base-2, ... The check is advisory: callers must still rely on
// the store's unique constraint for concurrent writers.
func UniqueSlug(ctx context.Context, base string, taken SlugTaken) (string, error) {
	candidate := base
	for n := 1; ; n++ {
		exists, err := taken(ctx, candidate)
		if err != nil {
			return "", err
		}
		if !exists {
			return candidate, nil
		}
		if err := ctx.Err(); err != nil {
			return "", err
		}
		candidate = base + "-" + strconv.Itoa(n)
	}
}
