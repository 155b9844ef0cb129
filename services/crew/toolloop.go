package crew

import (
	"context"
	"fmt"
	"strings"

	"github.com/upb/career-advisor/services/providers"
	"github.com/upb/career-advisor/services/tools"
)

// maxToolRounds bounds tool invocations per task before an answer is forced.
const maxToolRounds = 3

const (
	actionMarker      = "Action:"
	actionInputMarker = "Action Input:"
	observationMarker = "Observation:"
	finalAnswerMarker = "Final Answer:"
)

type taskResult struct {
	answer    string
	toolCalls int
	usage     providers.Usage
}

// runTask drives one task through the agent's LLM, serving tool requests
// until the model gives a final answer.
func runTask(ctx context.Context, task *Task, description string, previous []*TaskOutput) (taskResult, error) {
	agent := task.Agent
	if agent.LLM.Client == nil {
		return taskResult{}, fmt.Errorf("agent %q has no LLM client", agent.Name)
	}
	tk := task.toolkit()

	messages := []providers.Message{
		{Role: providers.RoleSystem, Content: agent.systemMessage() + toolInstructions(tk)},
		{Role: providers.RoleUser, Content: taskPrompt(task, description, previous)},
	}

	var res taskResult
	for round := 0; ; round++ {
		resp, err := agent.LLM.Client.ChatCompletion(ctx, &providers.ChatRequest{
			Model:       agent.LLM.Model,
			Messages:    messages,
			Temperature: agent.LLM.Temperature,
			MaxTokens:   agent.LLM.MaxTokens,
			Stop:        stopSequences(tk),
		})
		if err != nil {
			return res, err
		}
		res.usage.Add(resp.Usage)

		content := strings.TrimSpace(resp.Content)
		name, input, isAction := parseAction(content)
		if !isAction || len(tk) == 0 || round > maxToolRounds {
			res.answer = finalAnswer(content)
			return res, nil
		}

		messages = append(messages, providers.Message{Role: providers.RoleAssistant, Content: content})
		if round >= maxToolRounds {
			messages = append(messages, providers.Message{
				Role:    providers.RoleUser,
				Content: "You have used all available tool calls. Respond now with " + finalAnswerMarker + " followed by your complete answer.",
			})
			continue
		}

		res.toolCalls++
		messages = append(messages, providers.Message{
			Role:    providers.RoleUser,
			Content: observationMarker + " " + observe(ctx, tk, name, input),
		})
	}
}

// observe runs a tool and renders its result or failure as an observation.
func observe(ctx context.Context, tk tools.Toolkit, name, input string) string {
	tool, err := tk.Lookup(name)
	if err != nil {
		return fmt.Sprintf("%v. Available tools: %s", err, strings.Join(tk.Names(), ", "))
	}
	out, err := tool.Invoke(ctx, input)
	if err != nil {
		return fmt.Sprintf("tool %s failed: %v", tool.Name(), err)
	}
	return out
}

// parseAction extracts a tool request. A response carrying a final answer is
// never treated as an action.
func parseAction(content string) (name, input string, ok bool) {
	if strings.Contains(content, finalAnswerMarker) {
		return "", "", false
	}
	i := strings.LastIndex(content, actionMarker)
	if i < 0 {
		return "", "", false
	}
	rest := content[i+len(actionMarker):]
	j := strings.Index(rest, actionInputMarker)
	if j < 0 {
		return "", "", false
	}
	name = strings.TrimSpace(rest[:j])
	input = rest[j+len(actionInputMarker):]
	if k := strings.Index(input, observationMarker); k >= 0 {
		input = input[:k]
	}
	input = strings.Trim(strings.TrimSpace(input), `"`)
	if name == "" {
		return "", "", false
	}
	return name, input, true
}

func finalAnswer(content string) string {
	if i := strings.LastIndex(content, finalAnswerMarker); i >= 0 {
		return strings.TrimSpace(content[i+len(finalAnswerMarker):])
	}
	return content
}

func stopSequences(tk tools.Toolkit) []string {
	if len(tk) == 0 {
		return nil
	}
	return []string{"\n" + observationMarker}
}

func toolInstructions(tk tools.Toolkit) string {
	if len(tk) == 0 {
		return ""
	}
	return "\n\nYou can use these tools:\n" + tk.Describe() + `

To use a tool, reply with exactly:
Thought: what you need and why
Action: the tool name
Action Input: the input for the tool

You will then receive an Observation with the result. When you have enough
information, reply with:
Final Answer: your complete answer`
}

func taskPrompt(task *Task, description string, previous []*TaskOutput) string {
	var b strings.Builder
	b.WriteString("Current Task: ")
	b.WriteString(description)
	b.WriteString("\n\nThis is the expected criteria for your final answer: ")
	b.WriteString(task.ExpectedOutput)
	b.WriteString("\nYou MUST return the actual complete content as the final answer, not a summary.")
	if len(previous) > 0 {
		b.WriteString("\n\nThis is the context you're working with:\n")
		for _, p := range previous {
			fmt.Fprintf(&b, "\n## %s (%s)\n%s\n", p.Name, p.Agent, p.Raw)
		}
	}
	return b.String()
}
