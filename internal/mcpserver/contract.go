package mcpserver

// ContentFormatContract describes how long-form content files are laid out
// and written, for LLM consumers that draft new write-ups.
const ContentFormatContract = `# Dossier Content Format

Long-form content is plain Markdown served verbatim. The catalog (YAML)
holds the metadata; a Markdown file holds the body.

## Locations

| Kind     | Base        | Example contentPath     | File                               |
|----------|-------------|-------------------------|------------------------------------|
| blog     | /blog       | methodology.md          | blog/methodology.md                |
| ctf      | /ctf        | baby-rsa.md             | ctf/baby-rsa.md                    |
| writeup  | /writeups   | hackthebox/meow.md      | writeups/hackthebox/meow.md        |
| project  | /projects   | browsint.md             | projects/browsint.md               |

A catalog entry's ` + "`contentPath`" + ` is joined to its kind's base. A project
without ` + "`contentPath`" + ` has no long-form page.

## Structure

` + "```" + `markdown
---
title: Meow                 # OPTIONAL, the catalog title wins on pages
tags:                       # OPTIONAL, merged into search tags
  - telnet
---

# Meow

Body text in GitHub-flavoured Markdown.

![nmap output](images/nmap.png)
` + "```" + `

## Rules

1. Frontmatter is optional and never rendered.
2. Relative image paths are served from ` + "`/assets/<file name>`" + `; only the
   base name is kept, so image names must be unique.
3. Headings get automatic ids; the first H1 is used as the search title
   when neither the catalog nor the frontmatter has one.
4. Encoding is UTF-8. File and directory names are lowercase kebab-case.
`
