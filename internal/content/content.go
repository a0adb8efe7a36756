// Package content holds the portfolio's static content: owner details,
// technologies, education, achievements and projects.
//
// The default content is embedded from default.toml. A different file can be
// supplied with Load.
package content

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
)

//go:embed default.toml
var defaultTOML []byte

// Project kinds.
const (
	KindProfessional = "professional"
	KindPersonal     = "personal"
)

type Site struct {
	Title        string        `toml:"title"`
	Description  string        `toml:"description"`
	Owner        Owner         `toml:"owner"`
	Technologies []Technology  `toml:"technologies"`
	Education    []Event       `toml:"education"`
	Achievements []Achievement `toml:"achievements"`
	Projects     []Project     `toml:"projects"`
}

type Owner struct {
	Name     string `toml:"name"`
	Headline string `toml:"headline"`
	Intro    string `toml:"intro"`
	About    string `toml:"about"`
	Links    []Link `toml:"links"`
}

type Link struct {
	Label string `toml:"label"`
	URL   string `toml:"url"`
	Icon  string `toml:"icon"`
}

// Technology is a badge. Color is a palette name such as "blue".
type Technology struct {
	Name  string `toml:"name"`
	Icon  string `toml:"icon"`
	Color string `toml:"color"`
}

// Event is a timeline entry.
type Event struct {
	Title       string `toml:"title"`
	Description string `toml:"description"`
	Date        string `toml:"date"`
}

type Achievement struct {
	Title string `toml:"title"`
	Body  string `toml:"body"`
}

// Project is one portfolio entry. Images is the carousel sequence and must
// not be empty.
type Project struct {
	UID             string       `toml:"uid"`
	Title           string       `toml:"title"`
	Year            string       `toml:"year"`
	Kind            string       `toml:"type"`
	Description     string       `toml:"description"`
	LongDescription string       `toml:"long_description"`
	TechStack       []Technology `toml:"tech_stack"`
	Images          []string     `toml:"images"`
	Objectives      []string     `toml:"objectives"`
	KeyFeatures     []string     `toml:"key_features"`
	Challenges      []string     `toml:"challenges"`
	Architecture    string       `toml:"architecture"`
	Methodology     string       `toml:"methodology"`
	Duration        string       `toml:"duration"`
	Role            string       `toml:"role"`
}

// Default returns the embedded content.
func Default() (*Site, error) {
	site, err := Parse(defaultTOML)
	if err != nil {
		return nil, fmt.Errorf("embedded content: %w", err)
	}
	return site, nil
}

// Load reads content from path, or the embedded default when path is empty.
func Load(path string) (*Site, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read content: %w", err)
	}
	site, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return site, nil
}

// Parse decodes and validates TOML content. Unknown keys are rejected so
// typos don't silently drop fields.
func Parse(data []byte) (*Site, error) {
	var site Site
	md, err := toml.Decode(string(data), &site)
	if err != nil {
		return nil, fmt.Errorf("decode content: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return nil, fmt.Errorf("unknown content keys: %s", strings.Join(keys, ", "))
	}
	if err := site.Validate(); err != nil {
		return nil, err
	}
	return &site, nil
}

// Validate checks the invariants the render hosts rely on.
func (s *Site) Validate() error {
	if len(s.Projects) == 0 {
		return errors.New("content has no projects")
	}
	seen := make(map[string]bool, len(s.Projects))
	for i, p := range s.Projects {
		switch {
		case p.UID == "":
			return fmt.Errorf("project %d: missing uid", i)
		case seen[p.UID]:
			return fmt.Errorf("project %q: duplicate uid", p.UID)
		case p.Title == "":
			return fmt.Errorf("project %q: missing title", p.UID)
		case p.Kind != KindProfessional && p.Kind != KindPersonal:
			return fmt.Errorf("project %q: type must be %q or %q, got %q", p.UID, KindProfessional, KindPersonal, p.Kind)
		case len(p.Images) == 0:
			return fmt.Errorf("project %q: needs at least one image", p.UID)
		}
		seen[p.UID] = true
	}
	return nil
}

// Project looks up a project by uid.
func (s *Site) Project(uid string) (Project, bool) {
	for _, p := range s.Projects {
		if p.UID == uid {
			return p, true
		}
	}
	return Project{}, false
}
