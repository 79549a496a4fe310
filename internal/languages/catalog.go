// Package languages holds the static per-language data served by the API:
// fallback code templates, display metadata and authoring hints.
package languages

import "strings"

// Language describes a target language that has a fallback template
type Language struct {
	Value     string `json:"value"`
	Label     string `json:"label"`
	Extension string `json:"extension"`
}

type entry struct {
	Language
	render func(prompt string) string
}

// catalog is ordered; Languages() returns it in this order.
var catalog = []entry{
	{Language{"javascript", "Javascript", "js"}, skeleton(javascriptTemplate)},
	{Language{"python", "Python", "py"}, skeleton(pythonTemplate)},
	{Language{"java", "Java", "java"}, skeleton(javaTemplate)},
	{Language{"cpp", "Cpp", "cpp"}, skeleton(cppTemplate)},
	{Language{"csharp", "Csharp", "cs"}, skeleton(csharpTemplate)},
	{Language{"php", "Php", "php"}, skeleton(phpTemplate)},
	{Language{"ruby", "Ruby", "rb"}, skeleton(rubyTemplate)},
	{Language{"go", "Go", "go"}, skeleton(goTemplate)},
	{Language{"rust", "Rust", "rs"}, skeleton(rustTemplate)},
	{Language{"swift", "Swift", "swift"}, skeleton(swiftTemplate)},
	{Language{"html", "Html", "html"}, skeleton(htmlTemplate)},
}

var byValue = func() map[string]entry {
	m := make(map[string]entry, len(catalog))
	for _, e := range catalog {
		m[e.Value] = e
	}
	return m
}()

var hints = map[string][]string{
	"javascript": {
		"Use modern ES6+ syntax",
		"Include proper error handling",
		"Add JSDoc comments",
		"Consider async/await for promises",
	},
	"python": {
		"Follow PEP 8 style guide",
		"Use type hints where appropriate",
		"Include docstrings",
		"Handle exceptions properly",
	},
	"html": {
		"Use semantic HTML elements",
		"Include proper meta tags",
		"Ensure accessibility",
		"Make it responsive",
	},
	"css": {
		"Use modern CSS features",
		"Include responsive design",
		"Consider mobile-first approach",
		"Use CSS custom properties",
	},
	"java": {
		"Follow Java naming conventions",
		"Include proper exception handling",
		"Use appropriate access modifiers",
		"Add JavaDoc comments",
	},
	"cpp": {
		"Use RAII principles",
		"Include proper memory management",
		"Use standard library containers",
		"Add const correctness",
	},
}

// Languages returns every language with a fallback template
func Languages() []Language {
	out := make([]Language, len(catalog))
	for i, e := range catalog {
		out[i] = e.Language
	}
	return out
}

// Known reports whether language has its own template
func Known(language string) bool {
	_, ok := byValue[language]
	return ok
}

// Template renders the fallback skeleton for language. Unknown languages get
// a generic placeholder annotated with the language name. Template never fails.
func Template(language, prompt string) string {
	if e, ok := byValue[language]; ok {
		return e.render(prompt)
	}
	return strings.NewReplacer("{{prompt}}", prompt, "{{language}}", language).Replace(genericTemplate)
}

// Hints returns authoring advice for language, or an empty list. The slice is
// a copy and may be modified by the caller.
func Hints(language string) []string {
	h := hints[language]
	out := make([]string, len(h))
	copy(out, h)
	return out
}
