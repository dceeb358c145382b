package schema_test

import (
	"bytes"
	"encoding/json"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"clipregex/internal/schema"
)

var _ = Describe("Generate", func() {
	var s map[string]any

	BeforeEach(func() {
		data, err := schema.GenerateJSON(true)
		Expect(err).NotTo(HaveOccurred())
		Expect(json.Unmarshal(data, &s)).To(Succeed())
	})

	It("sets the $schema URI and title", func() {
		Expect(s["$schema"]).To(Equal("https://json-schema.org/draft/2020-12/schema"))
		Expect(s["title"]).To(Equal("clipregex configuration"))
	})

	def := func(name string) map[string]any {
		defs, ok := s["$defs"].(map[string]any)
		Expect(ok).To(BeTrue(), "$defs should exist")

		d, ok := defs[name].(map[string]any)
		Expect(ok).To(BeTrue(), "%s def should exist", name)

		return d
	}

	It("accepts the settings object or a legacy rule list", func() {
		oneOf, ok := s["oneOf"].([]any)
		Expect(ok).To(BeTrue())
		Expect(oneOf).To(HaveLen(2))

		Expect(oneOf[0]).To(HaveKeyWithValue("$ref", "#/$defs/Config"))

		legacy := oneOf[1].(map[string]any)
		Expect(legacy["type"]).To(Equal("array"))
		Expect(legacy["items"]).To(HaveKeyWithValue("$ref", "#/$defs/Rule"))
	})

	It("includes every settings key", func() {
		props, ok := def("Config")["properties"].(map[string]any)
		Expect(ok).To(BeTrue())

		for _, key := range []string{"hotkey", "icon_path", "use_notifications", "replacements"} {
			Expect(props).To(HaveKey(key), "missing property: %s", key)
		}
	})

	It("makes no settings key required", func() {
		Expect(s).NotTo(HaveKey("required"))
		Expect(def("Config")).NotTo(HaveKey("required"))
		Expect(def("Config")).NotTo(HaveKey("$schema"))
	})

	It("requires both fields of a rule", func() {
		required, ok := def("Rule")["required"].([]any)
		Expect(ok).To(BeTrue())
		Expect(required).To(ConsistOf("regex", "replace_with"))
	})

	It("marks the rule pattern as a regex", func() {
		props := def("Rule")["properties"].(map[string]any)
		regex := props["regex"].(map[string]any)

		Expect(regex["format"]).To(Equal("regex"))
		Expect(regex["type"]).To(Equal("string"))
	})

	It("documents the default hotkey", func() {
		props := def("Config")["properties"].(map[string]any)
		hotkey := props["hotkey"].(map[string]any)

		Expect(hotkey["default"]).To(Equal("ctrl+alt+v"))
		Expect(hotkey["type"]).To(Equal("string"))
	})

	Describe("GenerateJSON", func() {
		It("produces a single line when indent is false", func() {
			data, err := schema.GenerateJSON(false)
			Expect(err).NotTo(HaveOccurred())
			Expect(bytes.Count(data, []byte{'\n'})).To(Equal(1))
		})

		It("produces indented JSON when indent is true", func() {
			data, err := schema.GenerateJSON(true)
			Expect(err).NotTo(HaveOccurred())
			Expect(bytes.Count(data, []byte{'\n'})).To(BeNumerically(">", 10))
		})
	})
})
