package parsing

import (
	"strings"
)

// skillNormalizations maps common skill name variants to canonical names
var skillNormalizations = map[string]string{
	"golang":     "Go",
	"go lang":    "Go",
	"javascript": "JavaScript",
	"js":         "JavaScript",
	"typescript": "TypeScript",
	"ts":         "TypeScript",
	"k8s":        "Kubernetes",
	"kubernetes": "Kubernetes",
	"react.js":   "React",
	"reactjs":    "React",
	"vue.js":     "Vue",
	"vuejs":      "Vue",
	"node.js":    "Node.js",
	"nodejs":     "Node.js",
	"postgres":   "PostgreSQL",
	"postgresql": "PostgreSQL",
}

// NormalizeSkillName maps a skill to its canonical spelling. Unknown skills
// are returned trimmed and otherwise untouched.
func NormalizeSkillName(skillName string) string {
	normalized := strings.TrimSpace(skillName)
	if canonical, ok := skillNormalizations[strings.ToLower(normalized)]; ok {
		return canonical
	}
	return normalized
}

// NormalizeKeyword folds a keyword for comparison: lowercase, trimmed,
// hyphens and slashes to spaces, periods removed.
func NormalizeKeyword(keyword string) string {
	k := strings.TrimSpace(strings.ToLower(keyword))
	k = strings.ReplaceAll(k, "-", " ")
	k = strings.ReplaceAll(k, ".", "")
	return strings.ReplaceAll(k, "/", " ")
}

// dedupeSkills drops later entries whose canonical name was already seen.
func dedupeSkills(skills []string) []string {
	seen := make(map[string]bool, len(skills))
	out := make([]string, 0, len(skills))
	for _, s := range skills {
		key := strings.ToLower(NormalizeSkillName(s))
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, s)
	}
	return out
}
