package matching

import "strings"

// synonymGroups lists spellings that name the same technology. Every member
// of a group is a variation of every other member.
var synonymGroups = [][]string{
	{"postgresql", "postgres", "psql"},
	{"kubernetes", "k8s"},
	{"javascript", "js", "ecmascript"},
	{"typescript", "ts"},
	{"golang", "go"},
	{"python", "python3"},
	{"react", "react.js", "reactjs"},
	{"vue", "vue.js", "vuejs"},
	{"angular", "angularjs", "angular.js"},
	{"node.js", "nodejs", "node"},
	{"next.js", "nextjs"},
	{"express", "express.js", "expressjs"},
	{"mongodb", "mongo"},
	{"elasticsearch", "elastic search"},
	{"amazon web services", "aws"},
	{"google cloud platform", "google cloud", "gcp"},
	{"microsoft azure", "azure"},
	{"machine learning", "ml"},
	{"artificial intelligence", "ai"},
	{"natural language processing", "nlp"},
	{"large language models", "large language model", "llms", "llm"},
	{"ci/cd", "ci cd", "cicd", "continuous integration"},
	{"rest", "restful", "rest api", "restful api"},
	{"c#", "csharp", "c sharp"},
	{"c++", "cpp"},
	{".net", "dotnet"},
	{"sql server", "mssql"},
	{"object oriented programming", "oop"},
}

var synonymIndex = func() map[string][]string {
	index := make(map[string][]string)
	for _, group := range synonymGroups {
		for _, term := range group {
			index[term] = group
		}
	}
	return index
}()

// Variations returns the lexical forms treated as equivalent to keyword. The
// lowercased keyword always comes first; the rest follow in a fixed order.
func Variations(keyword string) []string {
	base := strings.ToLower(strings.TrimSpace(keyword))
	if base == "" {
		return nil
	}

	seen := map[string]bool{}
	var out []string
	add := func(v string) {
		v = strings.TrimSpace(v)
		if v != "" && !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}

	forms := []string{
		base,
		strings.ReplaceAll(base, "-", " "),
		strings.ReplaceAll(base, " ", "-"),
		strings.ReplaceAll(base, "-", ""),
		strings.ReplaceAll(base, "/", " "),
		strings.ReplaceAll(base, "/", ""),
	}
	if strings.HasSuffix(base, ".js") {
		forms = append(forms, strings.TrimSuffix(base, ".js"), strings.TrimSuffix(base, ".js")+"js")
	}

	for _, f := range forms {
		add(f)
	}
	for _, f := range forms {
		for _, syn := range synonymIndex[f] {
			add(syn)
		}
	}

	return out
}
