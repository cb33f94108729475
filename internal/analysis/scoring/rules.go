package scoring

// Gap and recommendation tables for the GTM Escalator framework. Keeping
// these as data keeps scoring reproducible without any model call.

var levelGaps = map[int][]string{
	1: {
		"Problem statement not clearly defined",
		"No customer validation of the problem",
		"Unable to articulate what you do in one sentence",
	},
	2: {
		"No positioning statement",
		"Value proposition unclear",
		"Messaging not tested with customers",
	},
	3: {
		"ICP too broad or undefined",
		"No documented buyer triggers",
		"Missing psychographic profile",
	},
	4: {
		"No repeatable channel identified",
		"No sales playbook or process",
		"Unable to delegate sales/marketing",
	},
	5: {
		"No scale playbook documented",
		"Single channel dependency",
		"Founder still required for all deals",
	},
}

var levelRecommendations = map[int][]string{
	1: {
		"Interview 5 potential customers this week",
		"Write down the problem you solve in one sentence",
		"Document 3 specific pain points your customers have",
	},
	2: {
		"Create a positioning statement using: For [ICP] who [pain], we [solution]",
		"Test your messaging with 3 customers",
		"Define your unique value vs alternatives",
	},
	3: {
		"Define your ICP with 5 specific criteria",
		"Document the trigger events that make buyers ready",
		"Create an ideal customer profile document",
	},
	4: {
		"Identify 2 channels where your ICP hangs out",
		"Run a small experiment in each channel",
		"Document what messaging works in each channel",
	},
	5: {
		"Create a sales playbook for delegation",
		"Build a second channel for diversification",
		"Systematize your content creation process",
	},
}

// questionGaps maps a question id to the gap surfaced when that question
// scored below its maximum.
var questionGaps = map[string]string{
	"q1_icp":        "No clear ICP defined",
	"q2_problem":    "Problem clarity needs work",
	"q3_validation": "Solution not yet validated with customers",
}
