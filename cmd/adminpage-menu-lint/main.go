package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-adminpage/pkg/menu"
	"github.com/goliatone/go-adminpage/pkg/page"
)

type violation struct {
	file     string
	location string
	message  string
}

func main() {
	flag.Usage = func() {
		if _, err := fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [manifests...]\n", filepath.Base(os.Args[0])); err != nil {
			panic(err)
		}
		if _, err := fmt.Fprintf(flag.CommandLine.Output(), "\nLint admin menu manifests for invalid slugs, missing titles, and nesting errors.\n"); err != nil {
			panic(err)
		}
	}
	flag.Parse()

	paths := flag.Args()
	if len(paths) == 0 {
		paths = []string{"menu.yml"}
	}

	seen := map[string]string{}
	var violations []violation
	for _, path := range paths {
		linted, err := lintFile(path, seen)
		if err != nil {
			fmt.Fprintf(os.Stderr, "lint %s: %v\n", path, err)
			os.Exit(1)
		}
		violations = append(violations, linted...)
	}

	if len(violations) > 0 {
		sort.Slice(violations, func(i, j int) bool {
			if violations[i].file == violations[j].file {
				if violations[i].location == violations[j].location {
					return violations[i].message < violations[j].message
				}
				return violations[i].location < violations[j].location
			}
			return violations[i].file < violations[j].file
		})
		for _, v := range violations {
			fmt.Fprintf(os.Stderr, "%s: %s -> %s\n", v.file, v.location, v.message)
		}
		os.Exit(1)
	}
}

// lintFile reads one manifest document and reports every finding instead of
// stopping at the first, so a single run covers the whole file.
func lintFile(path string, seen map[string]string) ([]violation, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	var manifest menu.Manifest
	if err := yaml.Unmarshal(raw, &manifest); err != nil {
		return nil, fmt.Errorf("parse manifest: %w", err)
	}

	var result []violation
	report := func(location, format string, args ...any) {
		result = append(result, violation{
			file:     path,
			location: location,
			message:  fmt.Sprintf(format, args...),
		})
	}

	var lintPages func(pages []menu.ManifestPage, parent string, depth int)
	lintPages = func(pages []menu.ManifestPage, parent string, depth int) {
		for i, entry := range pages {
			location := fmt.Sprintf("pages[%d]", i)
			if parent != "" {
				location = parent + " > " + location
			}

			slug := strings.TrimSpace(entry.Slug)
			switch {
			case slug == "":
				report(location, "slug is empty")
			case !page.ValidSlug(slug):
				report(location, "invalid slug %q", slug)
			default:
				if prior, dup := seen[slug]; dup {
					report(location, "slug %q already declared in %s", slug, prior)
				} else {
					seen[slug] = path
				}
				location = location + " (" + slug + ")"
			}

			if strings.TrimSpace(entry.Title) == "" {
				report(location, "title is missing")
			}
			if len(entry.Children) > 0 {
				if depth > 0 {
					report(location, "nests deeper than one level")
				} else {
					lintPages(entry.Children, location, depth+1)
				}
			}
		}
	}
	lintPages(manifest.Pages, "", 0)

	return result, nil
}
