package llm

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sort"
	"strings"
)

// openAIEngine talks to any OpenAI-compatible chat completions API
// (llama.cpp server, ollama, vLLM, LM Studio, or the hosted original).
type openAIEngine struct {
	client *http.Client
	url    string
	apiKey string
}

// NewOpenAIEngine creates an Engine backed by an OpenAI-compatible endpoint.
// url is the API base, e.g. "http://localhost:11434/v1".
func NewOpenAIEngine(url, apiKey string) Engine {
	return &openAIEngine{
		client: &http.Client{},
		url:    strings.TrimRight(url, "/"),
		apiKey: apiKey,
	}
}

// Wire types for the chat completions API.

type chatMessage struct {
	Role       string         `json:"role"`
	Content    string         `json:"content"`
	ToolCalls  []wireToolCall `json:"tool_calls,omitempty"`
	ToolCallID string         `json:"tool_call_id,omitempty"`
}

type wireToolCall struct {
	ID       string       `json:"id"`
	Type     string       `json:"type"`
	Function wireFunction `json:"function"`
}

type wireFunction struct {
	Name      string `json:"name"`
	Arguments string `json:"arguments"`
}

type wireToolSchema struct {
	Type     string             `json:"type"`
	Function wireFunctionSchema `json:"function"`
}

type wireFunctionSchema struct {
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Parameters  Parameters `json:"parameters"`
}

type chatRequest struct {
	Model    string           `json:"model"`
	Messages []chatMessage    `json:"messages"`
	Stream   bool             `json:"stream"`
	Tools    []wireToolSchema `json:"tools,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

type chatStreamChunk struct {
	Choices []struct {
		Delta struct {
			Content   string `json:"content"`
			ToolCalls []struct {
				Index    int    `json:"index"`
				ID       string `json:"id"`
				Function struct {
					Name      string `json:"name"`
					Arguments string `json:"arguments"`
				} `json:"function"`
			} `json:"tool_calls"`
		} `json:"delta"`
		FinishReason *string `json:"finish_reason"`
	} `json:"choices"`
}

func (e *openAIEngine) Generate(ctx context.Context, req *GenerateRequest) (*GenerateResponse, error) {
	body, err := json.Marshal(chatRequest{
		Model:    req.Model,
		Messages: buildWireMessages(req),
		Stream:   false,
	})
	if err != nil {
		return nil, fmt.Errorf("could not marshal request: %w", err)
	}

	resp, err := e.post(ctx, body)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("api returned non-200 status %d: %s", resp.StatusCode, string(bodyBytes))
	}

	var chatResp chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chatResp); err != nil {
		return nil, fmt.Errorf("could not decode response: %w", err)
	}
	if len(chatResp.Choices) == 0 {
		return nil, fmt.Errorf("api returned no choices")
	}
	return &GenerateResponse{Response: chatResp.Choices[0].Message.Content}, nil
}

// GenerateStream runs the generation loop: it streams one completion, and if
// the model requested tool calls, executes them, feeds the results back, and
// streams again. The loop is bounded by req.MaxSteps rounds of tool calls;
// after the bound is reached, tool schemas are withheld so the model must
// answer in plain text.
func (e *openAIEngine) GenerateStream(ctx context.Context, req *GenerateRequest, ch chan<- Event) error {
	defer close(ch)

	messages := buildWireMessages(req)
	schemas := buildWireSchemas(req.Tools)
	maxSteps := req.MaxSteps
	if maxSteps <= 0 {
		maxSteps = 1
	}

	for step := 0; ; step++ {
		tools := schemas
		if step >= maxSteps {
			tools = nil
		}

		assistant, calls, err := e.streamOnce(ctx, req.Model, messages, tools, ch)
		if err != nil {
			return err
		}
		if len(calls) == 0 || step >= maxSteps {
			break
		}

		messages = append(messages, chatMessage{
			Role:      "assistant",
			Content:   assistant,
			ToolCalls: calls,
		})
		for _, call := range calls {
			if err := send(ctx, ch, Event{
				Type:     EventToolCall,
				ToolName: call.Function.Name,
				ToolArgs: call.Function.Arguments,
			}); err != nil {
				return err
			}

			result := e.executeTool(ctx, req.Tools, call)
			if err := send(ctx, ch, Event{
				Type:     EventToolResult,
				ToolName: call.Function.Name,
				Result:   result,
			}); err != nil {
				return err
			}

			messages = append(messages, chatMessage{
				Role:       "tool",
				Content:    result,
				ToolCallID: call.ID,
			})
		}
	}

	return send(ctx, ch, Event{Type: EventDone})
}

// streamOnce runs a single streamed completion, emitting text deltas as they
// arrive and accumulating any tool calls the model produced.
func (e *openAIEngine) streamOnce(
	ctx context.Context,
	model string,
	messages []chatMessage,
	tools []wireToolSchema,
	ch chan<- Event,
) (string, []wireToolCall, error) {
	body, err := json.Marshal(chatRequest{
		Model:    model,
		Messages: messages,
		Stream:   true,
		Tools:    tools,
	})
	if err != nil {
		return "", nil, fmt.Errorf("could not marshal request: %w", err)
	}

	resp, err := e.post(ctx, body)
	if err != nil {
		return "", nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return "", nil, fmt.Errorf("api returned non-200 status %d: %s", resp.StatusCode, string(bodyBytes))
	}

	var text strings.Builder
	pending := map[int]*wireToolCall{}

	scanner := bufio.NewScanner(resp.Body)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || !strings.HasPrefix(line, "data:") {
			continue
		}
		payload := strings.TrimSpace(strings.TrimPrefix(line, "data:"))
		if payload == "[DONE]" {
			break
		}

		var chunk chatStreamChunk
		if err := json.Unmarshal([]byte(payload), &chunk); err != nil {
			slog.Warn("Failed to decode stream chunk, skipping.", "error", err)
			continue
		}
		if len(chunk.Choices) == 0 {
			continue
		}
		delta := chunk.Choices[0].Delta

		if delta.Content != "" {
			text.WriteString(delta.Content)
			if err := send(ctx, ch, Event{Type: EventTextDelta, Delta: delta.Content}); err != nil {
				return "", nil, err
			}
		}
		for _, tc := range delta.ToolCalls {
			call, ok := pending[tc.Index]
			if !ok {
				call = &wireToolCall{Type: "function"}
				pending[tc.Index] = call
			}
			if tc.ID != "" {
				call.ID = tc.ID
			}
			if tc.Function.Name != "" {
				call.Function.Name = tc.Function.Name
			}
			call.Function.Arguments += tc.Function.Arguments
		}
	}
	if err := scanner.Err(); err != nil {
		return "", nil, fmt.Errorf("stream read failed: %w", err)
	}

	indexes := make([]int, 0, len(pending))
	for i := range pending {
		indexes = append(indexes, i)
	}
	sort.Ints(indexes)

	calls := make([]wireToolCall, 0, len(pending))
	for _, i := range indexes {
		calls = append(calls, *pending[i])
	}
	return text.String(), calls, nil
}

// executeTool runs the named tool. Tool failures never abort the generation:
// unknown tools, bad arguments, and panics all become "Error:" result strings
// that flow back to the model like any other tool output.
func (e *openAIEngine) executeTool(ctx context.Context, tools []ToolDefinition, call wireToolCall) (result string) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("Tool panicked during execution.", "tool", call.Function.Name, "panic", r)
			result = fmt.Sprintf("Error: tool %s failed unexpectedly", call.Function.Name)
		}
	}()

	var def *ToolDefinition
	for i := range tools {
		if tools[i].Name == call.Function.Name {
			def = &tools[i]
			break
		}
	}
	if def == nil {
		return fmt.Sprintf("Error: unknown tool %q", call.Function.Name)
	}

	args := map[string]any{}
	if call.Function.Arguments != "" {
		if err := json.Unmarshal([]byte(call.Function.Arguments), &args); err != nil {
			return fmt.Sprintf("Error: invalid arguments for tool %s", call.Function.Name)
		}
	}
	return def.Execute(ctx, args)
}

func (e *openAIEngine) post(ctx context.Context, body []byte) (*http.Response, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, e.url+"/chat/completions", bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("could not create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if e.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+e.apiKey)
	}
	resp, err := e.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	return resp, nil
}

func buildWireMessages(req *GenerateRequest) []chatMessage {
	messages := make([]chatMessage, 0, len(req.Messages)+1)
	if req.System != "" {
		messages = append(messages, chatMessage{Role: "system", Content: req.System})
	}
	for _, m := range req.Messages {
		messages = append(messages, chatMessage{Role: m.Role, Content: m.Content})
	}
	return messages
}

func buildWireSchemas(tools []ToolDefinition) []wireToolSchema {
	if len(tools) == 0 {
		return nil
	}
	schemas := make([]wireToolSchema, 0, len(tools))
	for _, t := range tools {
		schemas = append(schemas, wireToolSchema{
			Type: "function",
			Function: wireFunctionSchema{
				Name:        t.Name,
				Description: t.Description,
				Parameters:  t.Parameters,
			},
		})
	}
	return schemas
}

func send(ctx context.Context, ch chan<- Event, ev Event) error {
	select {
	case ch <- ev:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
