// Package validation checks generated résumé text for unsupported technology
// claims and typesetting output for structural damage.
package validation

import (
	"sort"
	"strings"

	"github.com/jonathan/ats-scorer/internal/matching"
)

// TechLexicon is the fixed vocabulary of technology terms, lowercased.
var TechLexicon = []string{
	"react", "angular", "vue", "next.js", "node.js", "python", "java", "javascript", "typescript",
	"go", "rust", "ruby", "php", "swift", "kotlin", "c++", "c#", "sql", "nosql", "mongodb",
	"postgresql", "mysql", "redis", "docker", "kubernetes", "aws", "azure", "gcp", "git", "github",
	"fastapi", "django", "flask", "express", "spring", "tensorflow", "pytorch", "pandas", "numpy",
	"graphql", "rest", "grpc", "kafka", "rabbitmq", "elasticsearch", "terraform", "ansible",
	"jenkins", "html", "css", "sass", "tailwind", "bootstrap", "webpack", "vite", "jest", "cypress",
	"selenium", "playwright", "firebase", "supabase", "prisma", "sequelize", "langchain", "openai",
	"figma", "linux", "bash", "nginx", "apache", "celery", "airflow", "spark", "hadoop", "snowflake",
	"databricks", "d3", "three.js", "flutter", "ionic", "electron", "svelte", "remix", "gatsby",
	"nuxt", "redux", "mobx", "zustand", "storybook", "dbt", "power bi", "tableau", "scikit-learn",
	"bert", "gpt", "llm", "nlp", "ml", "ai", "rag", "mcp", "ci/cd", "oop", "agile", "scrum",
	"microservices", "websocket", "oauth", "jwt",
}

// Implications maps a skill to the skills it directly entails.
var Implications = map[string][]string{
	"next.js":      {"react", "javascript"},
	"remix":        {"react"},
	"gatsby":       {"react"},
	"redux":        {"react"},
	"react":        {"javascript"},
	"vue":          {"javascript"},
	"nuxt":         {"vue"},
	"angular":      {"typescript", "javascript"},
	"svelte":       {"javascript"},
	"typescript":   {"javascript"},
	"express":      {"node.js", "javascript"},
	"node.js":      {"javascript"},
	"fastapi":      {"python"},
	"django":       {"python"},
	"flask":        {"python"},
	"pytorch":      {"python"},
	"tensorflow":   {"python"},
	"pandas":       {"python"},
	"numpy":        {"python"},
	"scikit-learn": {"python"},
	"langchain":    {"python"},
	"spring":       {"java"},
	"kubernetes":   {"docker"},
	"postgresql":   {"sql"},
	"mysql":        {"sql"},
	"gpt":          {"llm"},
	"rag":          {"llm"},
	"llm":          {"ai", "nlp"},
	"bert":         {"nlp", "ml"},
	"nlp":          {"ml", "ai"},
	"ml":           {"ai"},
}

// ExtractTechTerms returns the lexicon terms mentioned in text, lowercased and sorted.
func ExtractTechTerms(text string) []string {
	lower := strings.ToLower(text)
	found := []string{}
	for _, term := range TechLexicon {
		if matching.ContainsWord(lower, term) {
			found = append(found, term)
		}
	}
	sort.Strings(found)
	return found
}

// ImpliedSkills returns the transitive closure of Implications over skills,
// excluding the input skills themselves.
func ImpliedSkills(skills []string) []string {
	seen := make(map[string]bool, len(skills))
	queue := make([]string, 0, len(skills))
	for _, s := range skills {
		s = strings.ToLower(s)
		if !seen[s] {
			seen[s] = true
			queue = append(queue, s)
		}
	}
	given := make(map[string]bool, len(seen))
	for s := range seen {
		given[s] = true
	}

	implied := []string{}
	for len(queue) > 0 {
		s := queue[0]
		queue = queue[1:]
		for _, next := range Implications[s] {
			if seen[next] {
				continue
			}
			seen[next] = true
			implied = append(implied, next)
			queue = append(queue, next)
		}
	}
	sort.Strings(implied)
	return implied
}
