// Package route maps URL paths to view descriptors.
package route

import "strings"

// Kind identifies which screen a View describes.
type Kind string

// View kinds.
const (
	KindMain           Kind = "main"
	KindProjects       Kind = "projects"
	KindProject        Kind = "project"
	KindPlatform       Kind = "platform"
	KindWriteup        Kind = "writeup"
	KindCTF            Kind = "ctf"
	KindBlog           Kind = "blog"
	KindSkills         Kind = "skills"
	KindCertifications Kind = "certifications"
)

// DefaultSection is the main-page section shown for the root path.
const DefaultSection = "about"

// View is the result of resolving a path. Only the fields relevant to Kind
// are set: Section for main, Platform for platform and writeup, ID for the
// single-entity kinds.
type View struct {
	Kind     Kind   `json:"kind"`
	Section  string `json:"section,omitempty"`
	Platform string `json:"platform,omitempty"`
	ID       string `json:"id,omitempty"`
}

// Main returns the main view scrolled to section.
func Main(section string) View {
	return View{Kind: KindMain, Section: section}
}

// Resolve maps path to exactly one View. It never fails: unknown sections and
// platforms are passed through and validated by whoever looks them up.
//
// /blog/{id} is a dossier addition that gives blog posts a linkable view;
// /blog alone still scrolls the main page to the blog section.
func Resolve(path string) View {
	seg := segments(path)
	if len(seg) == 0 {
		return Main(DefaultSection)
	}

	switch seg[0] {
	case "projects":
		if len(seg) > 1 {
			return View{Kind: KindProject, ID: seg[1]}
		}
		return View{Kind: KindProjects}
	case "boxes":
		if len(seg) > 2 {
			return View{Kind: KindWriteup, Platform: seg[1], ID: seg[2]}
		}
		if len(seg) > 1 {
			return View{Kind: KindPlatform, Platform: seg[1]}
		}
	case "ctf":
		if len(seg) > 1 {
			return View{Kind: KindCTF, ID: seg[1]}
		}
	case "blog":
		if len(seg) > 1 {
			return View{Kind: KindBlog, ID: seg[1]}
		}
	case "skills":
		return View{Kind: KindSkills}
	case "certifications":
		return View{Kind: KindCertifications}
	}

	return Main(seg[0])
}

// Path renders the canonical path for v. Resolve(v.Path()) == v for every
// View produced by Resolve.
func (v View) Path() string {
	switch v.Kind {
	case KindProjects:
		return "/projects"
	case KindProject:
		return "/projects/" + v.ID
	case KindPlatform:
		return "/boxes/" + v.Platform
	case KindWriteup:
		return "/boxes/" + v.Platform + "/" + v.ID
	case KindCTF:
		return "/ctf/" + v.ID
	case KindBlog:
		return "/blog/" + v.ID
	case KindSkills:
		return "/skills"
	case KindCertifications:
		return "/certifications"
	}
	if v.Section == "" || v.Section == DefaultSection {
		return "/"
	}
	return "/" + v.Section
}

// NeedsEntity reports whether the view is backed by a single catalog entity.
func (v View) NeedsEntity() bool {
	switch v.Kind {
	case KindProject, KindWriteup, KindCTF, KindBlog:
		return true
	}
	return false
}

func segments(path string) []string {
	parts := strings.Split(path, "/")
	out := parts[:0]
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
