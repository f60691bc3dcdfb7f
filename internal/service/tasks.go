package service

import (
	"fmt"
	"strings"

	"github.com/agora-ai/agora/internal/domain/agent"
)

// Task templates are pure functions from (topic, phase parameters) to
// instruction text. An empty topic yields a less specific prompt, never an
// error.

// focusArea returns the research specialization label for a cluster.
func focusArea(c agent.Cluster) string {
	switch c {
	case agent.ClusterEconomic:
		return "Economic Impact and Fiscal Analysis"
	case agent.ClusterSocial:
		return "Social Welfare and Community Impact"
	case agent.ClusterGeospatial:
		return "Geospatial and Demographic Analysis"
	case agent.ClusterIncome:
		return "Income Distribution and Inequality"
	case agent.ClusterResource:
		return "Resource Management and Allocation"
	case agent.ClusterFeedback:
		return "Policy Adaptation and Monitoring"
	case agent.ClusterLegal:
		return "Legal Compliance and Regulatory Framework"
	}
	return "General Policy Analysis"
}

func problemStatementPrompt(topic, context string) string {
	return fmt.Sprintf(`Clearly explain and articulate the policy problem: %s

%s

IMPORTANT: Provide a policy analysis in natural language - NOT code or programming examples!

YOUR TASK:
1. Define the core problem in clear, accessible language
2. Break down the challenge into key components
3. Identify the main stakeholders affected
4. Explain why this policy matters
5. Set the stage for expert deliberation

OUTPUT FORMAT: Write your response as a clear policy problem statement with paragraphs.
DO NOT output code, programming syntax, or unrelated content.

Ensure all participating experts understand the problem before analysis begins.`, topic, context)
}

func turnManagementPrompt(topic string, expertNames []string) string {
	return fmt.Sprintf(`Establish discussion management for policy: %s

PARTICIPATING EXPERTS:
%s

YOUR TASK:
1. Establish clear discussion rules and flow
2. Outline the deliberation process phases
3. Ensure fair participation from all experts
4. Set expectations for evidence-based debate
5. Create a structured timeline for deliberation

Maintain neutrality and facilitate productive discussion.`, topic, strings.Join(expertNames, ", "))
}

// researchPrompt builds the research-phase instruction. evidence is an
// optional pre-fetched block of web search findings; when empty the agent is
// told to rely on general knowledge.
func researchPrompt(topic, focus, evidence string) string {
	evidenceSection := "No web search results are available. Base your analysis on general knowledge and note where current data would strengthen it."
	if evidence != "" {
		evidenceSection = "WEB SEARCH FINDINGS (use and cite these):\n" + evidence
	}

	return fmt.Sprintf(`Research and analyze: %s

YOUR FOCUS AREA: %s

IMPORTANT: Provide policy analysis in natural language - NOT code or programming examples!

%s

STEP 1 - EVIDENCE REVIEW:
- Review the findings above for relevant statistics, case studies, and expert analyses
- Identify real-world examples of similar policies and their outcomes

STEP 2 - ANALYSIS:
- Evaluate impacts from your expertise perspective based on findings
- Identify specific implications for your domain
- Assess feasibility and effectiveness using the evidence
- Consider unintended consequences found in case studies

STEP 3 - POSITION (Write in clear paragraphs, NOT code):
- State your stance: SUPPORT / OPPOSE / CONDITIONAL / NEUTRAL
- Provide 3-5 key evidence-based arguments
- Cite specific data, studies, or examples
- Highlight critical considerations
- Suggest improvements or conditions if applicable

OUTPUT FORMAT: Write your analysis as a policy brief with clear paragraphs and bullet points.
DO NOT output code, programming syntax, or unrelated content.
Be thorough, objective, and evidence-based.`, topic, focus, evidenceSection)
}

// debatePrompt builds one expert's instruction for a debate round. context
// carries the recent arguments of other experts.
func debatePrompt(topic string, round int, context string) string {
	return fmt.Sprintf(`**Round %d Debate on: %s**

IMPORTANT: Provide debate arguments in natural language - NOT code!

Previous Arguments from Other Experts:
%s

Your Task:
1. Consider the arguments presented by other experts above
2. Identify points of agreement and disagreement
3. Present YOUR perspective on %s
4. Respond to arguments you disagree with (provide counter-arguments)
5. Build upon arguments you agree with (provide supporting evidence)
6. Propose synthesis or compromise positions where appropriate

Be specific, evidence-based, and engage directly with others' points.`, round, topic, context, topic)
}

func votingPrompt(topic string) string {
	return fmt.Sprintf(`Cast your vote on policy: %s

YOUR DECISION:
1. Review all research and debate contributions
2. Consider evidence from your expertise area
3. Weigh benefits against risks
4. Make your final decision

VOTE FORMAT:
- Decision: [APPROVE / REJECT / APPROVE WITH CONDITIONS]
- Confidence: [HIGH / MEDIUM / LOW]
- Key Reason: [1-2 sentence explanation]
- Critical Conditions (if applicable): [List any necessary conditions]

Vote based on evidence and your expert judgment.`, topic)
}

func coordinationPrompt(topic, votesSummary string) string {
	return fmt.Sprintf(`Tally votes and announce final decision: %s

%s

YOUR TASK:
1. Count all votes cast by expert agents
2. Analyze voting patterns and consensus levels
3. Identify majority position and dissenting views
4. Summarize key arguments for and against
5. Announce the final collective decision
6. Explain the rationale based on expert consensus
7. List any important conditions or caveats

FINAL ANNOUNCEMENT FORMAT:
- DECISION: [APPROVED / REJECTED / CONDITIONALLY APPROVED]
- VOTE TALLY: [X in favor, Y opposed, Z conditional]
- CONSENSUS LEVEL: [Strong / Moderate / Divided]
- KEY ARGUMENTS FOR: [Summary]
- KEY ARGUMENTS AGAINST: [Summary]
- CONDITIONS (if applicable): [List]
- IMPLEMENTATION RECOMMENDATIONS: [List]

Ensure transparency and clarity in the final announcement.`, topic, votesSummary)
}

// votesSummary formats the cast votes for the coordination prompt, in the
// order given by ids.
func votesSummary(ids []string, votes map[string]string) string {
	if len(votes) == 0 {
		return "No votes were cast."
	}
	var b strings.Builder
	b.WriteString("VOTES CAST:\n")
	for _, id := range ids {
		vote, ok := votes[id]
		if !ok {
			continue
		}
		fmt.Fprintf(&b, "\n%s:\n%s\n", displayName(id), vote)
	}
	return b.String()
}

// displayName converts an agent id like "economic_macro" to "Economic Macro".
func displayName(id string) string {
	parts := strings.Split(id, "_")
	for i, p := range parts {
		if p == "" {
			continue
		}
		parts[i] = strings.ToUpper(p[:1]) + p[1:]
	}
	return strings.Join(parts, " ")
}
