package extraction

import "strings"

// skillCanonical maps common technology name variants to one spelling.
var skillCanonical = map[string]string{
	"reactjs":             "React",
	"react.js":            "React",
	"react js":            "React",
	"nodejs":              "Node.js",
	"node js":             "Node.js",
	"node.js":             "Node.js",
	"golang":              "Go",
	"go lang":             "Go",
	"amazon web services": "AWS",
	"aws cloud":           "AWS",
	"aws":                 "AWS",
	"vuejs":               "Vue",
	"vue.js":              "Vue",
	"js":                  "JavaScript",
	"javascript":          "JavaScript",
	"ts":                  "TypeScript",
	"typescript":          "TypeScript",
	"k8s":                 "Kubernetes",
	"kubernetes":          "Kubernetes",
	"postgres":            "PostgreSQL",
	"postgresql":          "PostgreSQL",
}

// skillBlacklist holds job-title boilerplate and soft-skill tokens that must
// never appear in the skills field.
var skillBlacklist = map[string]struct{}{
	"engineer":      {},
	"developer":     {},
	"senior":        {},
	"junior":        {},
	"full stack":    {},
	"fullstack":     {},
	"backend":       {},
	"frontend":      {},
	"manager":       {},
	"lead":          {},
	"consultant":    {},
	"remote":        {},
	"hybrid":        {},
	"on-site":       {},
	"onsite":        {},
	"communication": {},
	"leadership":    {},
	"teamwork":      {},
}

// CleanSkills normalizes a comma-separated skills string: strips array
// punctuation and quotes, canonicalizes known technology names, drops
// blacklisted and empty tokens, and deduplicates. May legitimately return ""
// when nothing survives.
func CleanSkills(label string) string {
	if label == "" {
		return ""
	}

	replacer := strings.NewReplacer("[", "", "]", "", "\"", "", "'", "")
	label = replacer.Replace(label)

	var cleaned []string
	seen := make(map[string]struct{})

	for _, token := range strings.Split(label, ",") {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}

		lower := strings.ToLower(token)
		if _, blocked := skillBlacklist[lower]; blocked {
			continue
		}

		if canonical, ok := skillCanonical[lower]; ok {
			token = canonical
		}

		key := strings.ToLower(token)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		cleaned = append(cleaned, token)
	}

	return strings.Join(cleaned, ", ")
}
