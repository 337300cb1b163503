package route

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name string
		path string
		want View
	}{
		{"empty", "", Main("about")},
		{"root", "/", Main("about")},
		{"only slashes", "///", Main("about")},
		{"projects list", "/projects", View{Kind: KindProjects}},
		{"projects trailing slash", "/projects/", View{Kind: KindProjects}},
		{"project", "/projects/browsint", View{Kind: KindProject, ID: "browsint"}},
		{"platform", "/boxes/hackthebox", View{Kind: KindPlatform, Platform: "hackthebox"}},
		{"writeup", "/boxes/hackthebox/meow", View{Kind: KindWriteup, Platform: "hackthebox", ID: "meow"}},
		{"writeup extra segments", "/boxes/hackthebox/meow/extra", View{Kind: KindWriteup, Platform: "hackthebox", ID: "meow"}},
		{"boxes alone is a section", "/boxes", Main("boxes")},
		{"ctf", "/ctf/baby-rsa", View{Kind: KindCTF, ID: "baby-rsa"}},
		{"ctf alone is a section", "/ctf", Main("ctf")},
		{"blog post", "/blog/first-post", View{Kind: KindBlog, ID: "first-post"}},
		{"blog alone is a section", "/blog", Main("blog")},
		{"skills", "/skills", View{Kind: KindSkills}},
		{"skills ignores extra", "/skills/python", View{Kind: KindSkills}},
		{"certifications", "/certifications", View{Kind: KindCertifications}},
		{"unknown section", "/unknown-section", Main("unknown-section")},
		{"unknown platform passes through", "/boxes/NoSuchPlatform", View{Kind: KindPlatform, Platform: "NoSuchPlatform"}},
		{"no leading slash", "boxes/tryhackme", View{Kind: KindPlatform, Platform: "tryhackme"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Resolve(tt.path))
		})
	}
}

func TestResolve_RepeatedSlashes(t *testing.T) {
	assert.Equal(t, Resolve("/boxes/hackthebox"), Resolve("//boxes//hackthebox"))
	assert.Equal(t, Resolve("/boxes/hackthebox/meow"), Resolve("/boxes///hackthebox//meow/"))
}

func TestResolve_Idempotent(t *testing.T) {
	for _, p := range []string{"", "/projects/x", "/boxes/vulnhub/kioptrix", "/whatever"} {
		first := Resolve(p)
		for i := 0; i < 3; i++ {
			assert.Equal(t, first, Resolve(p), "path %q", p)
		}
	}
}

func TestView_PathRoundTrip(t *testing.T) {
	for _, p := range []string{
		"/", "/projects", "/projects/browsint", "/boxes/hackthebox",
		"/boxes/hackthebox/meow", "/ctf/baby-rsa", "/blog/first-post",
		"/skills", "/certifications", "/ctf", "/boxes", "/contact",
	} {
		v := Resolve(p)
		assert.Equal(t, p, v.Path())
		assert.Equal(t, v, Resolve(v.Path()))
	}
}

func TestView_NeedsEntity(t *testing.T) {
	assert.True(t, Resolve("/projects/a").NeedsEntity())
	assert.True(t, Resolve("/boxes/htb/a").NeedsEntity())
	assert.True(t, Resolve("/ctf/a").NeedsEntity())
	assert.True(t, Resolve("/blog/a").NeedsEntity())
	assert.False(t, Resolve("/projects").NeedsEntity())
	assert.False(t, Resolve("/boxes/htb").NeedsEntity())
	assert.False(t, Resolve("/").NeedsEntity())
}
