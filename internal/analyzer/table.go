package analyzer

import "regexp"

// languageProfile is one row of the scoring table
type languageProfile struct {
	Language   string
	Keywords   []string
	Patterns   []*regexp.Regexp
	Frameworks []string
	Weight     float64
}

func patterns(exprs ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, len(exprs))
	for i, expr := range exprs {
		out[i] = regexp.MustCompile(`(?i)` + expr)
	}
	return out
}

// scoreTable is read-only after init. Row order is the tie-break order.
var scoreTable = []languageProfile{
	{
		Language: "javascript",
		Keywords: []string{
			"javascript", "js", "node", "nodejs", "react", "vue", "angular", "express",
			"npm", "yarn", "dom", "browser", "frontend", "backend", "api", "json",
			"async", "await", "promise", "callback", "jquery", "typescript", "es6",
			"webpack", "babel", "next.js", "nuxt", "electron", "cordova", "ionic",
		},
		Patterns: patterns(
			`\b(function|const|let|var)\b`,
			`\b(arrow function|fat arrow)\b`,
			`\b(console\.log|document\.)\b`,
			`\b(require|import|export)\b`,
			`\b(onclick|onload|event)\b`,
		),
		Frameworks: []string{"react", "vue", "angular", "express", "next.js", "nuxt"},
		Weight:     1.0,
	},
	{
		Language: "python",
		Keywords: []string{
			"python", "py", "django", "flask", "pandas", "numpy", "matplotlib",
			"tensorflow", "pytorch", "scikit-learn", "jupyter", "anaconda",
			"pip", "virtualenv", "lambda", "list comprehension", "decorator",
			"machine learning", "data science", "ai", "automation", "script",
		},
		Patterns: patterns(
			`\b(def|class|import|from)\b`,
			`\b(print|input|range)\b`,
			`\b(if __name__ == "__main__")\b`,
			`\b(self|cls)\b`,
			`\b(pip install|conda)\b`,
		),
		Frameworks: []string{"django", "flask", "fastapi", "pandas", "numpy"},
		Weight:     1.0,
	},
	{
		Language: "html",
		Keywords: []string{
			"html", "webpage", "website", "landing page", "form", "table",
			"responsive", "bootstrap", "css", "styling", "layout", "ui",
			"user interface", "frontend", "web page", "markup", "semantic",
			"accessibility", "seo", "meta tags", "responsive design",
		},
		Patterns: patterns(
			`\b(div|span|p|h1|h2|h3|button|input|form)\b`,
			`\b(html|head|body|title)\b`,
			`\b(class|id|style)\b`,
			`\b(<\w+>|</\w+>)\b`,
			`\b(responsive|mobile-first)\b`,
		),
		Frameworks: []string{"bootstrap", "tailwind", "bulma", "foundation"},
		Weight:     1.2,
	},
	{
		Language: "css",
		Keywords: []string{
			"css", "styling", "design", "layout", "responsive", "flexbox",
			"grid", "animation", "transition", "sass", "scss", "less",
			"tailwind", "bootstrap", "material design", "ui design",
			"color scheme", "typography", "media queries", "hover effects",
		},
		Patterns: patterns(
			`\b(color|background|margin|padding|border)\b`,
			`\b(flex|grid|position|display)\b`,
			`\b(hover|active|focus|visited)\b`,
			`\b(@media|@keyframes)\b`,
			`\b(px|em|rem|vh|vw|%)\b`,
		),
		Frameworks: []string{"tailwind", "bootstrap", "sass", "less"},
		Weight:     1.1,
	},
	{
		Language: "java",
		Keywords: []string{
			"java", "spring", "maven", "gradle", "android", "jsp", "servlet",
			"hibernate", "jpa", "enterprise", "microservices", "rest api",
			"junit", "mockito", "object oriented", "oop", "inheritance",
			"polymorphism", "encapsulation", "abstraction", "interface",
		},
		Patterns: patterns(
			`\b(public class|private|protected|static)\b`,
			`\b(void|String|int|boolean|double)\b`,
			`\b(extends|implements|abstract)\b`,
			`\b(System\.out\.println|Scanner)\b`,
			`\b(try|catch|finally|throw)\b`,
		),
		Frameworks: []string{"spring", "hibernate", "struts", "maven"},
		Weight:     1.0,
	},
	{
		Language: "cpp",
		Keywords: []string{
			"c++", "cpp", "c plus plus", "object oriented", "oop", "stl",
			"template", "namespace", "pointer", "reference", "memory management",
			"performance", "game development", "system programming", "embedded",
			"algorithm", "data structure", "competitive programming",
		},
		Patterns: patterns(
			`\b(#include|using namespace|std::)\b`,
			`\b(class|struct|template|typename)\b`,
			`\b(cout|cin|endl|vector|string)\b`,
			`\b(new|delete|malloc|free)\b`,
			`\b(public:|private:|protected:)\b`,
		),
		Frameworks: []string{"qt", "boost", "opencv", "eigen"},
		Weight:     1.0,
	},
	{
		Language: "csharp",
		Keywords: []string{
			"c#", "csharp", "dotnet", ".net", "asp.net", "mvc", "wpf", "winforms",
			"entity framework", "linq", "xamarin", "blazor", "unity",
			"visual studio", "nuget", "class library", "web api", "windows",
		},
		Patterns: patterns(
			`\b(using|namespace|class|interface)\b`,
			`\b(public|private|protected|internal)\b`,
			`\b(string|int|bool|double|decimal)\b`,
			`\b(Console\.WriteLine|Console\.ReadLine)\b`,
			`\b(try|catch|finally|throw)\b`,
		),
		Frameworks: []string{"asp.net", "entity framework", "xamarin", "blazor"},
		Weight:     1.0,
	},
	{
		Language: "php",
		Keywords: []string{
			"php", "laravel", "symfony", "wordpress", "drupal", "codeigniter",
			"web development", "server side", "mysql", "database", "cms",
			"web application", "backend", "api", "rest", "composer",
		},
		Patterns: patterns(
			`\b(<\?php|\?>)\b`,
			`\b(echo|print|var_dump)\b`,
			`\b(\$\w+|function|class)\b`,
			`\b(mysqli|pdo|sql)\b`,
			`\b(include|require|namespace)\b`,
		),
		Frameworks: []string{"laravel", "symfony", "codeigniter", "wordpress"},
		Weight:     1.0,
	},
	{
		Language: "sql",
		Keywords: []string{
			"sql", "database", "query", "table", "select", "insert", "update",
			"delete", "join", "mysql", "postgresql", "sqlite", "oracle",
			"stored procedure", "trigger", "index", "foreign key", "primary key",
			"normalization", "crud", "data analysis", "reporting",
		},
		Patterns: patterns(
			`\b(SELECT|INSERT|UPDATE|DELETE|CREATE|DROP|ALTER)\b`,
			`\b(FROM|WHERE|JOIN|GROUP BY|ORDER BY|HAVING)\b`,
			`\b(INNER JOIN|LEFT JOIN|RIGHT JOIN|FULL JOIN)\b`,
			`\b(COUNT|SUM|AVG|MAX|MIN)\b`,
			`\b(PRIMARY KEY|FOREIGN KEY|INDEX)\b`,
		),
		Frameworks: []string{"mysql", "postgresql", "sqlite", "mongodb"},
		Weight:     1.3,
	},
	{
		Language: "go",
		Keywords: []string{
			"go", "golang", "goroutine", "channel", "concurrency", "microservices",
			"docker", "kubernetes", "api", "web server", "performance",
			"system programming", "cloud", "distributed systems",
		},
		Patterns: patterns(
			`\b(package|import|func|var|const)\b`,
			`\b(go|goroutine|channel|select)\b`,
			`\b(fmt\.Print|fmt\.Println)\b`,
			`\b(defer|panic|recover)\b`,
			`\b(struct|interface|map|slice)\b`,
		),
		Frameworks: []string{"gin", "echo", "fiber", "beego"},
		Weight:     1.0,
	},
	{
		Language: "rust",
		Keywords: []string{
			"rust", "memory safety", "performance", "system programming",
			"cargo", "crate", "ownership", "borrowing", "lifetime",
			"concurrency", "web assembly", "blockchain", "game development",
		},
		Patterns: patterns(
			`\b(fn|let|mut|const|static)\b`,
			`\b(struct|enum|impl|trait)\b`,
			`\b(println!|print!|panic!)\b`,
			`\b(match|if let|while let)\b`,
			`\b(Option|Result|Vec|HashMap)\b`,
		),
		Frameworks: []string{"actix", "rocket", "tokio", "serde"},
		Weight:     1.0,
	},
}

// projectTypes adds a flat bonus to each listed language when the phrase
// appears in the prompt. Languages without a scoreTable row are ignored.
var projectTypes = []struct {
	Phrase    string
	Languages []string
}{
	{"web application", []string{"javascript", "html", "css", "python", "php"}},
	{"mobile app", []string{"javascript", "java", "swift", "kotlin"}},
	{"desktop application", []string{"java", "csharp", "cpp", "python"}},
	{"game", []string{"cpp", "csharp", "javascript"}},
	{"api", []string{"javascript", "python", "java", "go", "php"}},
	{"database", []string{"sql"}},
	{"data analysis", []string{"python", "sql", "r"}},
	{"machine learning", []string{"python"}},
	{"system programming", []string{"cpp", "rust", "go"}},
	{"automation script", []string{"python", "bash"}},
	{"website", []string{"html", "css", "javascript"}},
	{"landing page", []string{"html", "css", "javascript"}},
	{"form", []string{"html", "css", "javascript"}},
	{"dashboard", []string{"javascript", "python", "html", "css"}},
	{"crud", []string{"javascript", "python", "java", "php", "sql"}},
	{"rest api", []string{"javascript", "python", "java", "go", "php"}},
	{"microservice", []string{"javascript", "python", "java", "go"}},
	{"algorithm", []string{"python", "java", "cpp", "javascript"}},
	{"data structure", []string{"python", "java", "cpp", "javascript"}},
}

type contextBoost struct {
	Triggers []string
	Boosts   map[string]float64
}

var contextBoosts = []contextBoost{
	{[]string{"web", "website"}, map[string]float64{"html": 2, "css": 1.5, "javascript": 2}},
	{[]string{"style", "design"}, map[string]float64{"css": 2, "html": 1}},
	{[]string{"data", "analysis"}, map[string]float64{"python": 2, "sql": 1.5}},
	{[]string{"performance", "fast"}, map[string]float64{"cpp": 1.5, "rust": 1.5, "go": 1.2}},
}

const (
	keywordFactor   = 2.0
	patternFactor   = 1.5
	frameworkFactor = 1.8
	projectTypeBias = 1.5
	confidenceScale = 5.0
	maxSuggestions  = 5
	defaultLanguage = "javascript"
)
