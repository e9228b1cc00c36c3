package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-adminpage/pkg/menu"
	"github.com/goliatone/go-adminpage/pkg/page"
)

func main() {
	manifestPath := flag.String("manifest", "menu.yml", "menu manifest to create or extend")
	flag.Parse()

	manifest, err := loadManifest(*manifestPath)
	if err != nil {
		log.Fatalf("Failed to load manifest: %v", err)
	}

	entry, parent, err := promptPage(manifest)
	if err != nil {
		log.Fatalf("Prompt aborted: %v", err)
	}

	if err := appendPage(manifest, entry, parent); err != nil {
		log.Fatalf("Failed to add page: %v", err)
	}
	if err := manifest.Validate(); err != nil {
		log.Fatalf("Resulting manifest is invalid: %v", err)
	}

	if err := writeManifest(*manifestPath, manifest); err != nil {
		log.Fatalf("Failed to write manifest: %v", err)
	}
	fmt.Printf("Page %q written to %s\n", entry.Slug, *manifestPath)
}

func loadManifest(path string) (*menu.Manifest, error) {
	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &menu.Manifest{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	var manifest menu.Manifest
	if err := yaml.Unmarshal(raw, &manifest); err != nil {
		return nil, fmt.Errorf("parse manifest: %w", err)
	}
	return &manifest, nil
}

// promptPage collects a page declaration interactively. The returned parent
// slug is empty for top-level pages.
func promptPage(manifest *menu.Manifest) (menu.ManifestPage, string, error) {
	var entry menu.ManifestPage

	slugPrompt := &survey.Input{
		Message: "Page slug:",
		Help:    "Lowercase alphanumerics separated by dashes or underscores.",
	}
	if err := survey.AskOne(slugPrompt, &entry.Slug, survey.WithValidator(slugValidator)); err != nil {
		return entry, "", err
	}
	entry.Slug = strings.TrimSpace(entry.Slug)

	titlePrompt := &survey.Input{
		Message: "Page title:",
		Default: titleFromSlug(entry.Slug),
	}
	if err := survey.AskOne(titlePrompt, &entry.Title, survey.WithValidator(survey.Required)); err != nil {
		return entry, "", err
	}

	capabilityPrompt := &survey.Input{
		Message: "Required capability:",
		Default: "manage_options",
	}
	if err := survey.AskOne(capabilityPrompt, &entry.Capability); err != nil {
		return entry, "", err
	}

	parents := topLevelSlugs(manifest)
	parent := ""
	if len(parents) > 0 {
		nested := false
		confirm := &survey.Confirm{
			Message: "Nest under an existing page?",
		}
		if err := survey.AskOne(confirm, &nested); err != nil {
			return entry, "", err
		}
		if nested {
			parentPrompt := &survey.Select{
				Message: "Parent page:",
				Options: parents,
			}
			if err := survey.AskOne(parentPrompt, &parent); err != nil {
				return entry, "", err
			}
		}
	}

	return entry, parent, nil
}

func appendPage(manifest *menu.Manifest, entry menu.ManifestPage, parent string) error {
	if parent == "" {
		manifest.Pages = append(manifest.Pages, entry)
		return nil
	}
	for i := range manifest.Pages {
		if manifest.Pages[i].Slug == parent {
			manifest.Pages[i].Children = append(manifest.Pages[i].Children, entry)
			return nil
		}
	}
	return fmt.Errorf("parent %q not found", parent)
}

func writeManifest(path string, manifest *menu.Manifest) error {
	data, err := yaml.Marshal(manifest)
	if err != nil {
		return fmt.Errorf("encode manifest: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

func slugValidator(value any) error {
	slug, _ := value.(string)
	if !page.ValidSlug(slug) {
		return fmt.Errorf("invalid slug %q", strings.TrimSpace(slug))
	}
	return nil
}

func topLevelSlugs(manifest *menu.Manifest) []string {
	out := make([]string, 0, len(manifest.Pages))
	for _, entry := range manifest.Pages {
		out = append(out, entry.Slug)
	}
	return out
}

func titleFromSlug(slug string) string {
	words := strings.FieldsFunc(slug, func(r rune) bool {
		return r == '-' || r == '_'
	})
	for i, word := range words {
		words[i] = strings.ToUpper(word[:1]) + word[1:]
	}
	return strings.Join(words, " ")
}
