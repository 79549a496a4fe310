package analyzer_test

import (
	"context"

	"github.com/polyglot/api/internal/analyzer"
	"github.com/polyglot/api/internal/models"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/zap"
)

func rank(result models.AnalysisResult, language string) int {
	for i, s := range result.Suggestions {
		if s.Language == language {
			return i
		}
	}
	return len(result.Suggestions)
}

func scoreOf(result models.AnalysisResult, language string) float64 {
	for _, s := range result.Suggestions {
		if s.Language == language {
			return s.Score
		}
	}
	return 0
}

var _ = Describe("Analyze", func() {
	It("returns the javascript default for an empty prompt", func() {
		result := analyzer.Analyze("")
		Expect(result.Suggestions).To(BeEmpty())
		Expect(result.PrimarySuggestion).To(Equal("javascript"))
		Expect(result.Confidence).To(BeZero())
	})

	It("ranks sql and backend languages above rust for a REST API prompt", func() {
		result := analyzer.Analyze("Create a REST API with SQL database and JOIN queries")

		Expect(result.PrimarySuggestion).To(Equal("sql"))
		Expect(rank(result, "sql")).To(BeNumerically("<", rank(result, "rust")))
		Expect(rank(result, "javascript")).To(BeNumerically("<", rank(result, "rust")))
		Expect(rank(result, "python")).To(BeNumerically("<", rank(result, "rust")))
		Expect(result.Suggestions[0].Matches.Keywords).To(ContainElements("sql", "database", "join"))
		Expect(result.Suggestions[0].Matches.Patterns).To(Equal(2))
	})

	It("ranks html and css above rust and sql for a styled webpage", func() {
		result := analyzer.Analyze("Build a webpage with a styled button")

		Expect(result.PrimarySuggestion).To(Equal("html"))
		Expect(rank(result, "html")).To(BeNumerically("<", rank(result, "rust")))
		Expect(rank(result, "css")).To(BeNumerically("<", rank(result, "rust")))
		Expect(rank(result, "html")).To(BeNumerically("<", rank(result, "sql")))
		Expect(rank(result, "css")).To(BeNumerically("<", rank(result, "sql")))
	})

	It("keeps at most five suggestions sorted by score", func() {
		result := analyzer.Analyze("web api with data analysis, fast performance, react and django, java spring, sql join")

		Expect(len(result.Suggestions)).To(BeNumerically("<=", 5))
		for i := 1; i < len(result.Suggestions); i++ {
			Expect(result.Suggestions[i-1].Score).To(BeNumerically(">=", result.Suggestions[i].Score))
		}
		Expect(result.Confidence).To(Equal(result.Suggestions[0].Confidence))
	})

	It("never reports languages that only appear in the project-type table", func() {
		result := analyzer.Analyze("a mobile app and an automation script")
		for _, s := range result.Suggestions {
			Expect(s.Language).NotTo(BeElementOf("kotlin", "swift", "bash", "r"))
		}
	})

	It("accumulates overlapping matches additively", func() {
		one := scoreOf(analyzer.Analyze("react"), "javascript")
		two := scoreOf(analyzer.Analyze("react and vue"), "javascript")
		Expect(one).To(BeNumerically("~", 2+1.8, 1e-9))
		Expect(two).To(BeNumerically("~", 2*(2+1.8), 1e-9))
	})

	It("applies patterns to the original case-insensitively", func() {
		result := analyzer.Analyze("SeLeCt everything")
		Expect(scoreOf(result, "sql")).To(BeNumerically("~", 1.3*2+1.3*1.5, 1e-9))
	})

	It("does not fold a dotted capital I into an ASCII keyword", func() {
		result := analyzer.Analyze("\u0130ndex of the table")
		Expect(scoreOf(result, "sql")).To(BeNumerically("~", 1.3*2, 1e-9))
		for _, s := range result.Suggestions {
			Expect(s.Matches.Keywords).NotTo(ContainElement("index"))
		}
	})

	It("is deterministic", func() {
		prompt := "Create a dashboard in react with a form"
		Expect(analyzer.Analyze(prompt)).To(Equal(analyzer.Analyze(prompt)))
	})
})

var _ = Describe("Confidence", func() {
	DescribeTable("normalizes raw scores",
		func(score, expected float64) {
			Expect(analyzer.Confidence(score)).To(BeNumerically("~", expected, 1e-9))
		},
		Entry("zero", 0.0, 0.0),
		Entry("negative clamps to zero", -3.0, 0.0),
		Entry("partial", 2.5, 0.5),
		Entry("exactly five", 5.0, 1.0),
		Entry("above five clips", 14.7, 1.0),
	)

	It("is monotonic non-decreasing in the raw score", func() {
		prev := analyzer.Confidence(0)
		for s := 0.1; s < 10; s += 0.1 {
			c := analyzer.Confidence(s)
			Expect(c).To(BeNumerically(">=", prev))
			Expect(c).To(BeNumerically("<=", 1))
			prev = c
		}
	})

	It("gives a higher-scoring prompt at least the same confidence", func() {
		weak := analyzer.Analyze("python")
		strong := analyzer.Analyze("python script with pandas and numpy")
		Expect(scoreOf(strong, "python")).To(BeNumerically(">", scoreOf(weak, "python")))
		Expect(strong.Suggestions[rank(strong, "python")].Confidence).
			To(BeNumerically(">=", weak.Suggestions[rank(weak, "python")].Confidence))
	})
})

var _ = Describe("FrameworkSuggestions", func() {
	DescribeTable("finds frameworks mentioned in the prompt",
		func(language, prompt string, expected []string) {
			Expect(analyzer.FrameworkSuggestions(language, prompt)).To(Equal(expected))
		},
		Entry("python", "python", "A Flask app using Pandas", []string{"flask", "pandas"}),
		Entry("none found", "go", "a plain server", []string{}),
		Entry("unknown language", "cobol", "react", []string{}),
	)
})

var _ = Describe("EnhancePrompt", func() {
	It("appends a directive when confident", func() {
		prompt := "Create a REST API with SQL database and JOIN queries"
		Expect(analyzer.EnhancePrompt(prompt, "sql", []string{"postgresql"})).
			To(Equal(prompt + "\n\n// Generate this in sql using postgresql"))
	})

	It("leaves low-confidence prompts unchanged", func() {
		Expect(analyzer.EnhancePrompt("hello", "javascript", nil)).To(Equal("hello"))
	})
})

var _ = Describe("Engine", func() {
	It("delegates to Analyze", func() {
		engine := analyzer.NewEngine(zap.NewNop())
		prompt := "Build a webpage with a styled button"
		Expect(engine.Analyze(context.Background(), prompt)).To(Equal(analyzer.Analyze(prompt)))
	})
})
