package languages_test

import (
	"strings"

	"github.com/polyglot/api/internal/languages"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Template", func() {
	const prompt = "Build a webpage with a styled button"

	It("embeds the prompt verbatim for every known language", func() {
		for _, lang := range languages.Languages() {
			code := languages.Template(lang.Value, prompt)
			Expect(code).To(ContainSubstring(prompt), "language %s", lang.Value)
			Expect(code).To(ContainSubstring("result"), "language %s", lang.Value)
		}
	})

	DescribeTable("uses the idiomatic entry point",
		func(language, marker string) {
			Expect(languages.Template(language, prompt)).To(ContainSubstring(marker))
		},
		Entry("javascript", "javascript", "function solution()"),
		Entry("python", "python", `if __name__ == "__main__":`),
		Entry("java", "java", "public static void main(String[] args)"),
		Entry("cpp", "cpp", "int main()"),
		Entry("csharp", "csharp", "static void Main()"),
		Entry("php", "php", "<?php"),
		Entry("ruby", "ruby", "Solution.new"),
		Entry("go", "go", "func main()"),
		Entry("rust", "rust", "fn main()"),
		Entry("swift", "swift", "let solution = Solution()"),
		Entry("html", "html", "<!DOCTYPE html>"),
	)

	It("keeps the indented blank line between java methods", func() {
		code := languages.Template("java", prompt)
		Expect(code).To(ContainSubstring("System.out.println(result);\n    }\n    \n    public String solve() {"))
	})

	It("does not expand placeholders found inside the prompt", func() {
		code := languages.Template("go", "print {{prompt}} literally")
		Expect(code).To(HavePrefix("// print {{prompt}} literally\n"))
	})

	It("falls back to a generic placeholder for unknown languages", func() {
		code := languages.Template("cobol", "say hi")
		Expect(code).To(Equal("// say hi\n// Generated code for cobol\nconsole.log('Code generated successfully');"))
	})

	It("handles an empty prompt without failing", func() {
		Expect(languages.Template("python", "")).To(HavePrefix("# \n"))
	})
})

var _ = Describe("Languages", func() {
	It("lists every template language with an extension", func() {
		list := languages.Languages()
		Expect(list).To(HaveLen(11))
		Expect(list[0]).To(Equal(languages.Language{Value: "javascript", Label: "Javascript", Extension: "js"}))
		for _, lang := range list {
			Expect(lang.Extension).NotTo(BeEmpty())
			Expect(languages.Known(lang.Value)).To(BeTrue())
		}
	})

	It("does not know languages without a template", func() {
		Expect(languages.Known("kotlin")).To(BeFalse())
	})
})

var _ = Describe("Hints", func() {
	It("is idempotent", func() {
		Expect(languages.Hints("python")).To(Equal(languages.Hints("python")))
	})

	It("returns a copy that callers can modify", func() {
		h := languages.Hints("javascript")
		h[0] = "changed"
		Expect(languages.Hints("javascript")[0]).To(Equal("Use modern ES6+ syntax"))
	})

	It("returns an empty list for languages without advice", func() {
		h := languages.Hints("rust")
		Expect(h).NotTo(BeNil())
		Expect(h).To(BeEmpty())
	})

	It("covers css even though css has no template", func() {
		Expect(strings.Join(languages.Hints("css"), " ")).To(ContainSubstring("mobile-first"))
	})
})
