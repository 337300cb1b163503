package catalog

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"gopkg.in/yaml.v3"
)

//go:embed data/*.yaml
var defaultData embed.FS

// File names of the collections inside a data directory. A missing file
// yields an empty collection.
const (
	ProjectsFile       = "projects.yaml"
	WriteupsFile       = "writeups.yaml"
	CTFFile            = "ctf.yaml"
	BlogFile           = "blog.yaml"
	SkillsFile         = "skills.yaml"
	CertificationsFile = "certifications.yaml"
)

// Files lists every collection file name.
func Files() []string {
	return []string{ProjectsFile, WriteupsFile, CTFFile, BlogFile, SkillsFile, CertificationsFile}
}

// Load reads and validates every collection from fsys.
func Load(fsys fs.FS) (*Catalog, error) {
	var d Data
	targets := []struct {
		name string
		dst  any
	}{
		{ProjectsFile, &d.Projects},
		{WriteupsFile, &d.Writeups},
		{CTFFile, &d.CTF},
		{BlogFile, &d.Blog},
		{SkillsFile, &d.Skills},
		{CertificationsFile, &d.Certifications},
	}
	for _, t := range targets {
		raw, err := fs.ReadFile(fsys, t.name)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("catalog: read %s: %w", t.name, err)
		}
		if err := yaml.Unmarshal(raw, t.dst); err != nil {
			return nil, fmt.Errorf("catalog: parse %s: %w", t.name, err)
		}
	}

	if err := validateData(d); err != nil {
		return nil, err
	}
	return New(d), nil
}

// LoadDir loads the catalog from dir, or the built-in data set when dir is empty.
func LoadDir(dir string) (*Catalog, error) {
	if dir == "" {
		return Default()
	}
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("catalog: stat %s: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("catalog: not a directory: %s", dir)
	}
	return Load(os.DirFS(dir))
}

// Default loads the data set embedded in the binary.
func Default() (*Catalog, error) {
	sub, err := fs.Sub(defaultData, "data")
	if err != nil {
		return nil, fmt.Errorf("catalog: embedded data: %w", err)
	}
	return Load(sub)
}

func validateData(d Data) error {
	return errors.Join(
		validateAll(ProjectsFile, d.Projects),
		validateAll(WriteupsFile, d.Writeups),
		validateAll(CTFFile, d.CTF),
		validateAll(BlogFile, d.Blog),
		validateAll(SkillsFile, d.Skills),
		validateAll(CertificationsFile, d.Certifications),
	)
}

func validateAll[T validation.Validatable](file string, items []T) error {
	var errs []error
	for i, it := range items {
		if err := it.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("catalog: %s[%d]: %w", file, i, err))
		}
	}
	return errors.Join(errs...)
}
