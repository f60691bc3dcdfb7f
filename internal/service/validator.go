package service

import (
	"fmt"
	"regexp"
	"strings"
)

// Validator is a content-shape firewall over model output. It flags text
// that looks like source code or markup instead of policy prose. It is a
// heuristic, not a semantic check; false positives are acceptable because
// every rejection degrades to a usable fallback.

// codePatterns match structural code and markup constructs.
var codePatterns = []*regexp.Regexp{
	regexp.MustCompile("(?im)```" + `[\w]*\n`),           // code fences
	regexp.MustCompile(`(?im)#include\s+<`),              // C/C++ includes
	regexp.MustCompile(`(?im)import\s+\w+\s+from`),       // ES module imports
	regexp.MustCompile(`(?im)def\s+\w+\s*\(`),            // Python functions
	regexp.MustCompile(`(?im)class\s+\w+\s*[:\(]`),       // class definitions
	regexp.MustCompile(`(?im)function\s+\w+\s*\(`),       // JavaScript functions
	regexp.MustCompile(`(?im)<\?php`),                    // PHP tags
	regexp.MustCompile(`(?im)<!DOCTYPE`),                 // HTML
	regexp.MustCompile(`(?im)<script`),                   // script tags
	regexp.MustCompile(`(?im)glsl|shader|vertex|fragment`), // graphics programming
	regexp.MustCompile(`(?im)layout\s*\(location`),       // GLSL
	regexp.MustCompile(`(?im)gl_Position`),               // OpenGL
	regexp.MustCompile(`(?im)#version\s+\d+`),            // shader versions
	regexp.MustCompile(`(?im)int\s+main\s*\(`),           // C/C++ main
	regexp.MustCompile(`(?im)public\s+static\s+void\s+main`), // Java main
	regexp.MustCompile(`(?im)---\nlayout:`),              // markdown frontmatter
	regexp.MustCompile(`(?im)\$\$\s*\\begin\{`),          // LaTeX math blocks
}

// codeKeywords suggest technical content instead of policy analysis.
var codeKeywords = []string{
	"jupyter", "notebook", "algorithm", "implementation",
	"compile", "runtime", "binary", "pointer", "malloc",
	"vertex", "shader", "rendering", "opengl", "webgl",
	"array", "buffer", "matrix multiplication", "gpu",
	"tensorflow", "pytorch", "neural network architecture",
	"docker", "kubernetes", "api endpoint", "sql query",
}

// policyKeywords indicate on-topic policy prose.
var policyKeywords = []string{
	"policy", "carbon tax", "economic", "fiscal", "impact",
	"government", "revenue", "emission", "climate", "environment",
	"stakeholder", "implementation", "analysis", "evidence",
}

var (
	reCodeBlock   = regexp.MustCompile("(?s)```" + `[\w]*` + "\n.*?```")
	reHTMLTag     = regexp.MustCompile(`<[^>]+>`)
	reMathBlock   = regexp.MustCompile(`(?s)\$\$.*?\$\$`)
	reFrontmatter = regexp.MustCompile(`(?sm)^---.*?---`)
	reBlankRuns   = regexp.MustCompile(`\n{3,}`)
)

// ValidatePolicyOutput reports whether output looks like policy analysis.
// The reason explains the first failed check.
func ValidatePolicyOutput(output string) (bool, string) {
	if len(output) < 50 {
		return false, "output too short"
	}

	for _, p := range codePatterns {
		if p.MatchString(output) {
			return false, fmt.Sprintf("contains code pattern: %s", p.String())
		}
	}

	lower := strings.ToLower(output)
	codeCount := 0
	for _, kw := range codeKeywords {
		if strings.Contains(lower, kw) {
			codeCount++
		}
	}
	if codeCount >= 3 {
		return false, fmt.Sprintf("contains too many code keywords (%d)", codeCount)
	}

	policyCount := 0
	for _, kw := range policyKeywords {
		if strings.Contains(lower, kw) {
			policyCount++
		}
	}
	if policyCount < 2 {
		return false, "lacks policy-related content"
	}

	return true, "valid policy analysis"
}

// ExtractPolicyContent strips code blocks, markup, and math from mixed
// content, leaving the prose.
func ExtractPolicyContent(output string) string {
	output = reCodeBlock.ReplaceAllString(output, "")
	output = reHTMLTag.ReplaceAllString(output, "")
	output = reMathBlock.ReplaceAllString(output, "")
	output = reFrontmatter.ReplaceAllString(output, "")
	output = reBlankRuns.ReplaceAllString(output, "\n\n")
	return strings.TrimSpace(output)
}

// FallbackResponse is the deterministic substitute used when validation
// rejects an agent's output. It keeps the deliberation moving with a
// clearly-labeled placeholder instead of failing the session.
func FallbackResponse(agentRole, topic string) string {
	return fmt.Sprintf(`**%s Analysis: %s**

**Position:** CONDITIONAL SUPPORT

**Key Considerations:**

1. **Evidence Required:** Due to technical limitations in generating detailed analysis, I recommend consulting recent policy research reports and case studies on %s.

2. **Economic Impact:** The economic implications of %s require careful evaluation of fiscal impacts, market effects, and distributional consequences across different stakeholder groups.

3. **Implementation Feasibility:** Successful implementation depends on regulatory framework design, enforcement mechanisms, and stakeholder engagement.

4. **Risk Assessment:** Potential unintended consequences must be evaluated through pilot programs and phased rollout approaches.

**Recommendation:** Conduct comprehensive cost-benefit analysis and stakeholder consultation before proceeding with policy implementation.

*Note: This is a placeholder response. For detailed analysis, please consult subject matter experts and peer-reviewed policy research.*`,
		agentRole, topic, topic, topic)
}
