package crew

import "github.com/upb/career-advisor/services/tools"

// ProfileInput is the kickoff input holding the user's profile text.
const ProfileInput = "user_profile"

// Task is a unit of work assigned to an agent. Description may reference
// kickoff inputs as {name} placeholders.
type Task struct {
	Name           string
	Description    string
	ExpectedOutput string
	Agent          *Agent

	// Tools overrides the agent's toolkit for this task when non-nil.
	Tools tools.Toolkit

	Output *TaskOutput
}

func (t *Task) toolkit() tools.Toolkit {
	if t.Tools != nil {
		return t.Tools
	}
	return t.Agent.Tools
}

// TaskOutput is the result of one task.
type TaskOutput struct {
	Name        string `json:"name"`
	Agent       string `json:"agent"`
	Description string `json:"description"`
	Raw         string `json:"raw"`
	ToolCalls   int    `json:"tool_calls"`
}

// String returns the raw output.
func (o *TaskOutput) String() string { return o.Raw }

// NewCareerGuidanceTask analyzes the profile and proposes career paths.
func NewCareerGuidanceTask(agent *Agent) *Task {
	return &Task{
		Name: "Career Guidance Analysis",
		Description: "Analyze the user's career profile including their background, interests, experience, and goals from '{user_profile}'. " +
			"Research current job market trends, emerging opportunities, and growth potential in relevant fields. " +
			"Provide personalized career path recommendations that align with their strengths, values, and aspirations. " +
			"Consider short-term and long-term career goals, work-life balance preferences, and industry outlook.",
		ExpectedOutput: "A comprehensive career guidance report with: 1) Summary of user's career profile and aspirations, " +
			"2) 3-5 recommended career paths with detailed justifications, 3) Market trends and opportunities analysis, " +
			"4) Pros and cons for each path, 5) Actionable next steps for exploring each option.",
		Agent: agent,
	}
}

// NewSkillsAssessmentTask inventories skills and gaps. A nil toolkit falls
// back to the agent's tools.
func NewSkillsAssessmentTask(agent *Agent, tk tools.Toolkit) *Task {
	return &Task{
		Name: "Skills Assessment",
		Description: "Conduct a thorough skills assessment based on the user's profile '{user_profile}' and the recommended career paths. " +
			"Evaluate technical skills, soft skills, and domain knowledge. Research in-demand skills for target roles using " +
			"the RAG knowledge base and web search. Identify skill gaps between current capabilities and target role requirements. " +
			"Prioritize skills based on market demand, learning curve, and career impact.",
		ExpectedOutput: "A detailed skills assessment report containing: 1) Current skills inventory with proficiency levels, " +
			"2) In-demand skills for target career paths with market data, 3) Identified skill gaps prioritized by importance, " +
			"4) Skill development roadmap with timeline estimates, 5) Quick wins vs. long-term skill building strategies.",
		Agent: agent,
		Tools: tk,
	}
}

// NewResumeBuildingTask drafts a resume for the recommended paths.
func NewResumeBuildingTask(agent *Agent) *Task {
	return &Task{
		Name: "Resume Building",
		Description: "Create a professional, ATS-optimized resume based on '{user_profile}' tailored for the recommended career paths. " +
			"Structure the resume to highlight relevant achievements, quantifiable results, and key skills. " +
			"Use powerful action verbs and industry-specific keywords. Ensure proper formatting for both ATS systems and human readers. " +
			"Include sections for: professional summary, work experience, skills, education, and certifications. " +
			"Provide both a master resume and variations optimized for different target roles.",
		ExpectedOutput: "A complete, professionally formatted resume (or multiple versions for different career paths) with: " +
			"1) Compelling professional summary, 2) Achievement-focused work experience with metrics, " +
			"3) Skills section aligned with target roles, 4) Education and certifications, " +
			"5) ATS optimization tips and keywords, 6) Additional suggestions for LinkedIn profile optimization.",
		Agent: agent,
	}
}

// NewCourseRecommendationTask builds a learning roadmap.
func NewCourseRecommendationTask(agent *Agent) *Task {
	return &Task{
		Name: "Course Recommendations",
		Description: "Based on the skills assessment and career goals from '{user_profile}', recommend specific courses, certifications, " +
			"and learning resources to bridge skill gaps and advance toward target career paths. " +
			"Research the most effective and reputable courses from platforms like Coursera, Udemy, edX, LinkedIn Learning, " +
			"and university programs. Consider learning style, budget, time commitment, and ROI. " +
			"Create a structured learning path with short-term and long-term milestones.",
		ExpectedOutput: "A personalized learning roadmap featuring: 1) Prioritized list of recommended courses with platform, duration, and cost, " +
			"2) Relevant certifications that boost employability, 3) Free vs. paid resource alternatives, " +
			"4) Structured learning timeline (3-month, 6-month, 12-month plans), " +
			"5) Project ideas for practical application, 6) Community resources and networking opportunities.",
		Agent: agent,
	}
}
