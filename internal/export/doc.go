// Package export renders week groups as a markdown index note.
//
// The index is meant to live inside the vault next to the daily notes, so
// links use Obsidian wikilink syntax and the file starts with YAML
// frontmatter describing how it was built.
//
// Example output:
//
//	---
//	schema: marks.weeks/v1
//	format: DD-MM-YYYY
//	folders:
//	    - Daily/
//	notes: 3
//	weeks: 2
//	---
//
//	# Daily/
//
//	## Week 10, 2024
//
//	- [[Daily/10-03-2024|Sun 10 Mar 2024]]
//
//	## Week 11, 2024
//
//	- [[Daily/11-03-2024|Mon 11 Mar 2024]]
//	- [[Daily/12-03-2024|Tue 12 Mar 2024]]
//
// Rendering is deterministic: the same folders always produce the same
// bytes, so WriteMarkdownFile can skip writes that would change nothing.
package export
