// Package crew runs a fixed team of LLM agents over a user profile. Tasks run
// one after another and each task sees the outputs of the tasks before it.
package crew

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/upb/career-advisor/services/providers"
	"github.com/upb/career-advisor/services/tools"
	"go.uber.org/zap"
)

var (
	// ErrUnsupportedProcess is returned by Kickoff for any process but sequential.
	ErrUnsupportedProcess = errors.New("unsupported crew process")

	// ErrMissingInput is returned when a task references an input not supplied to Kickoff.
	ErrMissingInput = errors.New("missing kickoff input")

	// ErrNoTasks is returned when a crew has nothing to run.
	ErrNoTasks = errors.New("crew has no tasks")
)

// Process is the order in which a crew runs its tasks.
type Process string

// Processes.
const (
	ProcessSequential   Process = "sequential"
	ProcessHierarchical Process = "hierarchical"
)

// CrewOutput is the result of a kickoff.
type CrewOutput struct {
	// Raw is the final task's output.
	Raw         string          `json:"raw"`
	TasksOutput []*TaskOutput   `json:"tasks_output"`
	TokenUsage  providers.Usage `json:"token_usage"`
}

// String returns the raw output.
func (o *CrewOutput) String() string { return o.Raw }

// Crew is a set of agents working through tasks.
type Crew struct {
	Agents  []*Agent
	Tasks   []*Task
	Process Process
	logger  *zap.Logger
}

// New creates a sequential crew. logger may be nil.
func New(agents []*Agent, tasks []*Task, logger *zap.Logger) *Crew {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Crew{
		Agents:  agents,
		Tasks:   tasks,
		Process: ProcessSequential,
		logger:  logger,
	}
}

// NewCareerAdvisorCrew assembles the four career advisor agents and their
// tasks. Every agent gets tk; the skills assessment task uses it as its
// explicit tool list.
func NewCareerAdvisorCrew(llm LLM, tk tools.Toolkit, logger *zap.Logger) *Crew {
	counselor := NewAgent(CareerCounselor, llm, tk)
	analyzer := NewAgent(SkillsAnalyzer, llm, tk)
	architect := NewAgent(ResumeArchitect, llm, tk)
	advisor := NewAgent(LearningAdvisor, llm, tk)

	return New(
		[]*Agent{counselor, analyzer, architect, advisor},
		[]*Task{
			NewCareerGuidanceTask(counselor),
			NewSkillsAssessmentTask(analyzer, tk),
			NewResumeBuildingTask(architect),
			NewCourseRecommendationTask(advisor),
		},
		logger,
	)
}

// Kickoff runs every task with inputs interpolated into task descriptions.
// Task outputs are also stored on each Task.
func (c *Crew) Kickoff(ctx context.Context, inputs map[string]string) (*CrewOutput, error) {
	if c.Process != ProcessSequential {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedProcess, c.Process)
	}
	if len(c.Tasks) == 0 {
		return nil, ErrNoTasks
	}

	descriptions := make([]string, len(c.Tasks))
	for i, task := range c.Tasks {
		if task.Agent == nil {
			return nil, fmt.Errorf("task %q has no agent", task.Name)
		}
		desc, err := interpolate(task.Description, inputs)
		if err != nil {
			return nil, fmt.Errorf("task %q: %w", task.Name, err)
		}
		descriptions[i] = desc
	}

	out := &CrewOutput{TasksOutput: make([]*TaskOutput, 0, len(c.Tasks))}
	for i, task := range c.Tasks {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		c.logger.Debug("task started",
			zap.String("task", task.Name),
			zap.String("agent", task.Agent.Name))

		result, err := runTask(ctx, task, descriptions[i], out.TasksOutput)
		if err != nil {
			return nil, fmt.Errorf("task %q failed: %w", task.Name, err)
		}
		out.TokenUsage.Add(result.usage)

		task.Output = &TaskOutput{
			Name:        task.Name,
			Agent:       task.Agent.Name,
			Description: descriptions[i],
			Raw:         result.answer,
			ToolCalls:   result.toolCalls,
		}
		out.TasksOutput = append(out.TasksOutput, task.Output)

		c.logger.Debug("task finished",
			zap.String("task", task.Name),
			zap.Int("tool_calls", result.toolCalls),
			zap.Int("output_length", len(result.answer)))
	}

	out.Raw = out.TasksOutput[len(out.TasksOutput)-1].Raw
	return out, nil
}

var placeholder = regexp.MustCompile(`\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// interpolate replaces {name} placeholders with inputs. Text that does not
// look like a placeholder is left alone.
func interpolate(text string, inputs map[string]string) (string, error) {
	var missing []string
	result := placeholder.ReplaceAllStringFunc(text, func(m string) string {
		key := m[1 : len(m)-1]
		v, ok := inputs[key]
		if !ok {
			missing = append(missing, key)
			return m
		}
		return v
	})
	if len(missing) > 0 {
		return "", fmt.Errorf("%w: %s", ErrMissingInput, strings.Join(missing, ", "))
	}
	return result, nil
}
