package agent

// Well-known orchestration role identifiers.
const (
	IDProblemStatement  = "problem_statement"
	IDTurnManagement    = "turn_management"
	IDVotingCoordinator = "voting_announcement"
)

var research = []Capability{CapabilityResearch}

// Catalog returns the full static panel in registry order. The slice is
// rebuilt on every call so callers cannot mutate the shared definition.
//
// Order matters: debate and voting invoke experts in exactly this order.
func Catalog() []Descriptor {
	return []Descriptor{
		// Orchestration roles.
		{
			ID:        IDProblemStatement,
			Name:      "Problem Statement Expert",
			Role:      "Problem Statement Clarification Expert",
			Goal:      "Clearly explain and articulate the problem statement to all agents",
			Backstory: "Communication expert specializing in problem framing and stakeholder alignment",
			Category:  CategoryOrchestration,
		},
		{
			ID:        IDTurnManagement,
			Name:      "Turn Management Expert",
			Role:      "Discussion Turn Management Expert",
			Goal:      "Manage the order and timing of agent contributions",
			Backstory: "Professional moderator with expertise in facilitation and equitable discussion management",
			Category:  CategoryOrchestration,
		},
		{
			ID:        IDVotingCoordinator,
			Name:      "Voting Coordinator",
			Role:      "Voting Coordinator and Results Announcer",
			Goal:      "Conduct transparent voting and announce final decisions",
			Backstory: "Governance specialist with expertise in voting systems and consensus-building",
			Category:  CategoryOrchestration,
		},

		// Core domain analysts.
		{
			ID:           "economic",
			Name:         "Economic Analyst",
			Role:         "Economic Analyst",
			Goal:         "Analyze economic trends, data, and impacts using web research and data analysis",
			Backstory:    "Expert economic analyst with deep knowledge of urban economics and fiscal policy. Uses web search to find latest economic data, research papers, and expert opinions.",
			Category:     CategoryCore,
			Cluster:      ClusterEconomic,
			Capabilities: research,
		},
		{
			ID:           "social",
			Name:         "Social Dynamics Expert",
			Role:         "Social Dynamics Expert",
			Goal:         "Analyze social trends and community behaviors using real-world data and research",
			Backstory:    "Social scientist specializing in urban sociology and community dynamics. Conducts web research to find case studies, social impact reports, and community feedback.",
			Category:     CategoryCore,
			Cluster:      ClusterSocial,
			Capabilities: research,
		},
		{
			ID:           "geospatial",
			Name:         "Geospatial Analyst",
			Role:         "Geospatial Analyst",
			Goal:         "Interpret geospatial data and location-based patterns using online GIS resources",
			Backstory:    "GIS specialist with expertise in urban planning and spatial analysis. Searches for geographic data, maps, and location-based research.",
			Category:     CategoryCore,
			Cluster:      ClusterGeospatial,
			Capabilities: research,
		},
		{
			ID:           "income",
			Name:         "Income Distribution Analyst",
			Role:         "Income Distribution Analyst",
			Goal:         "Analyze income trends and distribution patterns using economic research",
			Backstory:    "Economist specializing in income inequality and wealth distribution. Conducts web research to find income statistics, studies, and policy impacts.",
			Category:     CategoryCore,
			Cluster:      ClusterIncome,
			Capabilities: research,
		},
		{
			ID:           "resource",
			Name:         "Resource Management Expert",
			Role:         "Resource Management Expert",
			Goal:         "Analyze resource allocation and sustainability using environmental data",
			Backstory:    "Sustainability expert with knowledge of resource management and infrastructure. Searches for environmental reports, resource allocation data, and best practices.",
			Category:     CategoryCore,
			Cluster:      ClusterResource,
			Capabilities: research,
		},
		{
			ID:           "legal",
			Name:         "Legal Adviser",
			Role:         "Legal Adviser",
			Goal:         "Ensure policies comply with legal and ethical standards using legal databases",
			Backstory:    "Seasoned legal professional specializing in urban policy and taxation laws. Researches case law, legal precedents, and regulatory frameworks online.",
			Category:     CategoryCore,
			Cluster:      ClusterLegal,
			Capabilities: research,
		},

		// Economic sub-experts.
		{
			ID:           "economic_macro",
			Name:         "Macro-Economic Expert",
			Role:         "Macro-Economic Analysis Expert",
			Goal:         "Analyze national-level economic models and GDP impacts using latest economic data",
			Backstory:    "Senior economist with expertise in monetary policy and fiscal analysis. Uses web search to find GDP reports, central bank data, and economic forecasts.",
			Category:     CategorySubExpert,
			Cluster:      ClusterEconomic,
			Capabilities: research,
		},
		{
			ID:           "economic_micro",
			Name:         "Micro-Economic Expert",
			Role:         "Micro-Economic Analysis Expert",
			Goal:         "Evaluate local economic impacts and business effects using market research",
			Backstory:    "Regional economist specializing in small business economics. Searches for local business data, market trends, and consumer behavior studies.",
			Category:     CategorySubExpert,
			Cluster:      ClusterEconomic,
			Capabilities: research,
		},
		{
			ID:           "policy_impact",
			Name:         "Policy Impact Expert",
			Role:         "Policy Impact Analysis Expert",
			Goal:         "Evaluate policy outcomes using predictive modeling and case studies",
			Backstory:    "Policy analyst specializing in econometric modeling and impact assessment. Researches similar policies implemented elsewhere and their outcomes.",
			Category:     CategorySubExpert,
			Cluster:      ClusterEconomic,
			Capabilities: research,
		},
		{
			ID:           "trade_investment",
			Name:         "Trade & Investment Expert",
			Role:         "Trade and Investment Analysis Expert",
			Goal:         "Analyze international trade and investment impacts using global economic data",
			Backstory:    "International economist with expertise in global trade dynamics. Searches for trade statistics, investment reports, and international economic analyses.",
			Category:     CategorySubExpert,
			Cluster:      ClusterEconomic,
			Capabilities: research,
		},

		// Social welfare sub-experts.
		{
			ID:           "healthcare_welfare",
			Name:         "Healthcare Expert",
			Role:         "Healthcare Accessibility Expert",
			Goal:         "Analyze healthcare accessibility and resource allocation",
			Backstory:    "Public health specialist with expertise in healthcare systems",
			Category:     CategorySubExpert,
			Cluster:      ClusterSocial,
			Capabilities: research,
		},
		{
			ID:           "education_welfare",
			Name:         "Education Expert",
			Role:         "Education and Skills Development Expert",
			Goal:         "Evaluate education accessibility and workforce development",
			Backstory:    "Education policy expert specializing in vocational training",
			Category:     CategorySubExpert,
			Cluster:      ClusterSocial,
			Capabilities: research,
		},
		{
			ID:           "housing_welfare",
			Name:         "Housing Expert",
			Role:         "Housing and Social Safety Net Expert",
			Goal:         "Analyze housing affordability and welfare policies",
			Backstory:    "Social policy specialist with expertise in affordable housing",
			Category:     CategorySubExpert,
			Cluster:      ClusterSocial,
			Capabilities: research,
		},

		// Geospatial and demographic sub-experts.
		{
			ID:           "geographic_poverty",
			Name:         "Geographic Poverty Expert",
			Role:         "Geographic Poverty Analysis Expert",
			Goal:         "Conduct spatial analysis of poverty distribution",
			Backstory:    "Geographer specializing in poverty mapping and spatial inequality",
			Category:     CategorySubExpert,
			Cluster:      ClusterGeospatial,
			Capabilities: research,
		},
		{
			ID:           "demographic_policy",
			Name:         "Demographic Policy Expert",
			Role:         "Demographic-Focused Policy Expert",
			Goal:         "Design policies tailored to different demographic groups",
			Backstory:    "Demographer specializing in population studies and culturally-sensitive policy",
			Category:     CategorySubExpert,
			Cluster:      ClusterGeospatial,
			Capabilities: research,
		},
		{
			ID:           "resource_access",
			Name:         "Resource Access Expert",
			Role:         "Resource Access and Unemployment Expert",
			Goal:         "Identify areas with high unemployment and low resource access",
			Backstory:    "Labor economist specializing in unemployment analysis",
			Category:     CategorySubExpert,
			Cluster:      ClusterGeospatial,
			Capabilities: research,
		},

		// Income inequality sub-experts.
		{
			ID:           "inequality_causes",
			Name:         "Inequality Causes Expert",
			Role:         "Income Inequality Causes Expert",
			Goal:         "Identify root causes of income inequality",
			Backstory:    "Sociologist specializing in inequality research and structural barriers",
			Category:     CategorySubExpert,
			Cluster:      ClusterIncome,
			Capabilities: research,
		},
		{
			ID:           "income_redistribution",
			Name:         "Redistribution Policy Expert",
			Role:         "Income Redistribution Policy Expert",
			Goal:         "Design income redistribution policies",
			Backstory:    "Fiscal policy expert specializing in redistributive economics",
			Category:     CategorySubExpert,
			Cluster:      ClusterIncome,
			Capabilities: research,
		},
		{
			ID:           "inequality_impact",
			Name:         "Inequality Impact Expert",
			Role:         "Inequality Impact Assessment Expert",
			Goal:         "Evaluate how inequality affects health and education outcomes",
			Backstory:    "Social epidemiologist studying effects of inequality",
			Category:     CategorySubExpert,
			Cluster:      ClusterIncome,
			Capabilities: research,
		},

		// Resource allocation sub-experts.
		{
			ID:           "resource_optimization",
			Name:         "Resource Optimization Expert",
			Role:         "Resource Distribution Optimization Expert",
			Goal:         "Optimize allocation of funds and critical resources",
			Backstory:    "Operations research specialist with expertise in optimization algorithms",
			Category:     CategorySubExpert,
			Cluster:      ClusterResource,
			Capabilities: research,
		},
		{
			ID:           "realtime_allocation",
			Name:         "Real-Time Allocation Expert",
			Role:         "Real-Time Resource Prioritization Expert",
			Goal:         "Prioritize resource allocation during crises",
			Backstory:    "Emergency management specialist with crisis response experience",
			Category:     CategorySubExpert,
			Cluster:      ClusterResource,
			Capabilities: research,
		},
		{
			ID:           "system_efficiency",
			Name:         "System Efficiency Expert",
			Role:         "Welfare System Efficiency Expert",
			Goal:         "Identify inefficiencies in welfare systems",
			Backstory:    "Public administration expert specializing in government efficiency",
			Category:     CategorySubExpert,
			Cluster:      ClusterResource,
			Capabilities: research,
		},

		// Feedback and adaptation sub-experts.
		{
			ID:           "policy_monitoring",
			Name:         "Policy Monitoring Expert",
			Role:         "Policy Outcome Monitoring Expert",
			Goal:         "Monitor policy outcomes using KPIs and impact assessments",
			Backstory:    "Program evaluator with expertise in performance measurement",
			Category:     CategorySubExpert,
			Cluster:      ClusterFeedback,
			Capabilities: research,
		},
		{
			ID:           "adaptive_policy",
			Name:         "Adaptive Policy Expert",
			Role:         "Real-Time Policy Adaptation Expert",
			Goal:         "Adjust policies based on feedback and emerging challenges",
			Backstory:    "Adaptive management specialist and policy innovator",
			Category:     CategorySubExpert,
			Cluster:      ClusterFeedback,
			Capabilities: research,
		},
	}
}

// ClusterOrder returns the topical clusters in research reporting order.
func ClusterOrder() []Cluster {
	return []Cluster{
		ClusterEconomic,
		ClusterSocial,
		ClusterGeospatial,
		ClusterIncome,
		ClusterResource,
		ClusterFeedback,
		ClusterLegal,
	}
}

// ClusterLabel returns the human-readable group label used in progress events.
func ClusterLabel(c Cluster) string {
	switch c {
	case ClusterEconomic:
		return "Economic Analysis"
	case ClusterSocial:
		return "Social Welfare"
	case ClusterGeospatial:
		return "Geospatial"
	case ClusterIncome:
		return "Income Inequality"
	case ClusterResource:
		return "Resource Management"
	case ClusterFeedback:
		return "Adaptation"
	case ClusterLegal:
		return "Legal"
	}
	return string(c)
}
