package languages_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestLanguages(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Languages Suite")
}
