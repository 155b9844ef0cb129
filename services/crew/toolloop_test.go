package crew

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/upb/career-advisor/services/providers"
	"github.com/upb/career-advisor/services/tools"
)

func singleTask(fake *fakeProvider, tk tools.Toolkit) *Task {
	agent := NewAgent(SkillsAnalyzer, LLM{Client: fake, Model: "m1"}, tk)
	return NewSkillsAssessmentTask(agent, nil)
}

func TestRunTask_ToolRoundTrip(t *testing.T) {
	fake := &fakeProvider{replies: []string{
		"Thought: I need the growth rate\nAction: calculator\nAction Input: (120 - 100) / 100 * 100",
		"Final Answer: growth is 20 percent",
	}}
	task := singleTask(fake, tools.Toolkit{tools.NewCalculatorTool()})

	res, err := runTask(context.Background(), task, "assess", nil)
	require.NoError(t, err)

	assert.Equal(t, "growth is 20 percent", res.answer)
	assert.Equal(t, 1, res.toolCalls)
	require.Equal(t, 2, fake.calls())

	second := fake.requests[1]
	assert.Equal(t, "Observation: 20", lastUserMessage(second))
	assert.Equal(t, providers.RoleAssistant, second.Messages[len(second.Messages)-2].Role)
	assert.Equal(t, []string{"\nObservation:"}, second.Stop)
	assert.Contains(t, second.Messages[0].Content, "- calculator: ")
}

func TestRunTask_UnknownToolBecomesObservation(t *testing.T) {
	fake := &fakeProvider{replies: []string{
		"Action: browser\nAction Input: https://example.com",
		"Final Answer: ok",
	}}
	task := singleTask(fake, tools.Toolkit{tools.NewCalculatorTool()})

	res, err := runTask(context.Background(), task, "assess", nil)
	require.NoError(t, err)

	assert.Equal(t, "ok", res.answer)
	obs := lastUserMessage(fake.requests[1])
	assert.Contains(t, obs, "unknown tool: browser")
	assert.Contains(t, obs, "Available tools: calculator")
}

func TestRunTask_ToolFailureBecomesObservation(t *testing.T) {
	fake := &fakeProvider{replies: []string{
		"Action: web_search\nAction Input: \"ml salaries\"",
		"Final Answer: ok",
	}}
	task := singleTask(fake, tools.Toolkit{tools.NewWebSearchTool("")})

	_, err := runTask(context.Background(), task, "assess", nil)
	require.NoError(t, err)
	assert.Contains(t, lastUserMessage(fake.requests[1]), "tool not configured")
}

func TestRunTask_ToolRoundsAreBounded(t *testing.T) {
	fake := &fakeProvider{fallback: "Action: calculator\nAction Input: 1 + 1"}
	task := singleTask(fake, tools.Toolkit{tools.NewCalculatorTool()})

	res, err := runTask(context.Background(), task, "assess", nil)
	require.NoError(t, err)

	assert.Equal(t, maxToolRounds, res.toolCalls)
	// three tool rounds, one forced-answer prompt, then the answer is taken as is
	assert.Equal(t, maxToolRounds+2, fake.calls())
	assert.Contains(t, lastUserMessage(fake.requests[maxToolRounds+1]), "used all available tool calls")
	assert.Equal(t, "Action: calculator\nAction Input: 1 + 1", res.answer)
}

func TestRunTask_ActionIgnoredWithoutTools(t *testing.T) {
	fake := &fakeProvider{replies: []string{"Action: calculator\nAction Input: 1 + 1"}}
	task := singleTask(fake, nil)

	res, err := runTask(context.Background(), task, "assess", nil)
	require.NoError(t, err)
	assert.Equal(t, 0, res.toolCalls)
	assert.Equal(t, 1, fake.calls())
	assert.Nil(t, fake.requests[0].Stop)
}

func TestRunTask_NoClient(t *testing.T) {
	task := NewResumeBuildingTask(NewAgent(ResumeArchitect, LLM{}, nil))
	_, err := runTask(context.Background(), task, "x", nil)
	assert.Error(t, err)
}

func TestParseAction(t *testing.T) {
	tests := []struct {
		name      string
		content   string
		wantName  string
		wantInput string
		wantOK    bool
	}{
		{
			name:      "simple",
			content:   "Action: calculator\nAction Input: 2 + 2",
			wantName:  "calculator",
			wantInput: "2 + 2",
			wantOK:    true,
		},
		{
			name:      "quoted input with trailing observation",
			content:   "Thought: x\nAction: web_search\nAction Input: \"go jobs\"\nObservation: made up",
			wantName:  "web_search",
			wantInput: "go jobs",
			wantOK:    true,
		},
		{
			name:    "final answer wins",
			content: "Action: calculator\nAction Input: 1\nFinal Answer: done",
		},
		{
			name:    "action without input",
			content: "Action: calculator",
		},
		{
			name:    "empty tool name",
			content: "Action: \nAction Input: 1",
		},
		{
			name:    "plain text",
			content: "Here is your plan.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			name, input, ok := parseAction(tt.content)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantName, name)
			assert.Equal(t, tt.wantInput, input)
		})
	}
}

func TestFinalAnswer(t *testing.T) {
	assert.Equal(t, "done", finalAnswer("Thought: ok\nFinal Answer: done"))
	assert.Equal(t, "as is", finalAnswer("as is"))
}
