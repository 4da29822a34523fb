// Package trigger decides which optional tools to activate for a turn based
// on the raw user input. Matching is a cheap substring heuristic, not a
// classifier: a missed activation is recoverable (the user rephrases) and a
// spurious one is harmless (the model decides whether to actually call the
// tool), so neither direction needs to be exact.
package trigger

import "strings"

// ArtifactTriggers are the phrases that suggest the user wants visual or
// interactive output generated as an artifact.
var ArtifactTriggers = []string{
	"create", "build", "generate", "make", "design", "draw",
	"diagram", "chart", "graph", "dashboard", "visualization", "visualisation",
	"svg", "html", "mermaid", "react", "vue", "component",
	"interactive", "calculator", "form", "widget", "animation",
	"flowchart", "mockup", "prototype", "landing page",
}

// ScaffoldTriggers are the phrases that suggest the user wants a data model
// or schema scaffolded.
var ScaffoldTriggers = []string{
	"model", "migration", "eloquent", "schema",
	"factory", "seeder", "database table", "db table",
	"fillable", "belongsto", "hasmany", "relationship",
}

// Matches reports whether any trigger phrase occurs, case-insensitively, as a
// substring of the message.
func Matches(message string, triggers []string) bool {
	lowered := strings.ToLower(message)
	for _, t := range triggers {
		if strings.Contains(lowered, t) {
			return true
		}
	}
	return false
}
