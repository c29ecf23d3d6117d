package server

import (
	"context"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"gopkg.in/yaml.v3"

	"github.com/mj1618/keymacro/internal/engine"
	"github.com/mj1618/keymacro/internal/model"
	"github.com/mj1618/keymacro/internal/output"
)

// toText serializes v to YAML for an MCP response.
func toText(v interface{}) string {
	b, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Sprintf("error: %v", err)
	}
	return string(b)
}

func actionResult(action, id, msg string) output.ActionResult {
	return output.ActionResult{OK: true, Action: action, ID: id, Message: msg}
}

func toolError(action string, err error) *mcp.CallToolResult {
	return mcp.NewToolResultError(toText(output.ActionResult{Action: action, Message: err.Error()}))
}

// withMacro resolves the id argument and runs fn against its macro.
func (s *Server) withMacro(request mcp.CallToolRequest, action string, fn func(id string, m *engine.Macro, params map[string]interface{}) (*mcp.CallToolResult, error)) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	id := StringParam(params, "id", "")
	if id == "" {
		return toolError(action, fmt.Errorf("id is required")), nil
	}
	m, err := s.lib.Macro(id)
	if err != nil {
		return toolError(action, err), nil
	}
	return fn(id, m, params)
}

func (s *Server) handleList(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(toText(s.lib.List())), nil
}

func (s *Server) handleCreate(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	rec, err := s.lib.Create(StringParam(params, "name", ""))
	if err != nil {
		return toolError("create_macro", err), nil
	}
	if err := s.save(ctx); err != nil {
		return toolError("create_macro", err), nil
	}
	return mcp.NewToolResultText(toText(rec.Summary())), nil
}

func (s *Server) handleDelete(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := StringParam(request.GetArguments(), "id", "")
	if err := s.lib.Delete(id); err != nil {
		return toolError("delete_macro", err), nil
	}
	if err := s.save(ctx); err != nil {
		return toolError("delete_macro", err), nil
	}
	return mcp.NewToolResultText(toText(actionResult("delete_macro", id, ""))), nil
}

func (s *Server) handleUpdate(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	id := StringParam(params, "id", "")
	rec, err := s.lib.Update(id, func(r *model.MacroRecord) {
		if HasParam(params, "name") {
			r.Name = StringParam(params, "name", r.Name)
		}
		if HasParam(params, "delay") {
			r.Delay = IntParam(params, "delay", r.Delay)
		}
		if HasParam(params, "hotkey") {
			r.Hotkey = StringParam(params, "hotkey", r.Hotkey)
		}
	})
	if err != nil {
		return toolError("update_macro", err), nil
	}
	if err := s.save(ctx); err != nil {
		return toolError("update_macro", err), nil
	}
	return mcp.NewToolResultText(toText(rec.Summary())), nil
}

func (s *Server) handleStartRecording(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.withMacro(request, "start_recording", func(id string, m *engine.Macro, params map[string]interface{}) (*mcp.CallToolResult, error) {
		opts := engine.RecordOptions{
			Keys:     BoolParam(params, "keys", true),
			Mouse:    BoolParam(params, "mouse", true),
			UntilKey: StringParam(params, "until_key", ""),
		}
		if err := m.StartRecording(opts); err != nil {
			return toolError("start_recording", err), nil
		}
		return mcp.NewToolResultText(toText(actionResult("start_recording", id, "recording"))), nil
	})
}

func (s *Server) handleStopRecording(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.withMacro(request, "stop_recording", func(id string, m *engine.Macro, _ map[string]interface{}) (*mcp.CallToolResult, error) {
		if err := m.StopRecording(); err != nil {
			return toolError("stop_recording", err), nil
		}
		if err := s.save(ctx); err != nil {
			return toolError("stop_recording", err), nil
		}
		res := actionResult("stop_recording", id, "")
		res.Events = output.Count(m.Log().Len())
		return mcp.NewToolResultText(toText(res)), nil
	})
}

func (s *Server) handlePlay(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.withMacro(request, "play_macro", func(id string, m *engine.Macro, params map[string]interface{}) (*mcp.CallToolResult, error) {
		rec, err := s.lib.Record(id)
		if err != nil {
			return toolError("play_macro", err), nil
		}
		delay := rec.LoopDelay()
		if HasParam(params, "delay") {
			delay = time.Duration(IntParam(params, "delay", 0)) * time.Millisecond
		}
		wait := BoolParam(params, "wait", false)
		done := make(chan engine.Result, 1)
		cfg := engine.PlaybackConfig{
			PreserveTiming:      BoolParam(params, "timing", true),
			Loop:                BoolParam(params, "loop", false),
			InterIterationDelay: delay,
			OnComplete: func(r engine.Result) {
				s.logger.Info("macro playback finished", "id", id, "outcome", r.Outcome())
				done <- r
			},
		}
		if err := m.Play(cfg); err != nil {
			return toolError("play_macro", err), nil
		}
		if !wait {
			return mcp.NewToolResultText(toText(actionResult("play_macro", id, "playing"))), nil
		}

		select {
		case r := <-done:
			res := actionResult("play_macro", id, r.Outcome())
			res.Events = output.Count(r.Dispatched)
			res.Passes = output.Count(r.Passes)
			if r.Err != nil {
				res.OK = false
				res.Message = r.Err.Error()
				return mcp.NewToolResultError(toText(res)), nil
			}
			return mcp.NewToolResultText(toText(res)), nil
		case <-ctx.Done():
			m.Terminate(true)
			return toolError("play_macro", ctx.Err()), nil
		}
	})
}

func (s *Server) handleTerminate(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.withMacro(request, "terminate_macro", func(id string, m *engine.Macro, _ map[string]interface{}) (*mcp.CallToolResult, error) {
		if m.State() == engine.Playing {
			m.Terminate(false)
			m.Wait()
		}
		return mcp.NewToolResultText(toText(actionResult("terminate_macro", id, m.State().String()))), nil
	})
}

func (s *Server) handleStatus(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := StringParam(request.GetArguments(), "id", "")
	sum, err := s.lib.Summary(id)
	if err != nil {
		return toolError("macro_status", err), nil
	}
	return mcp.NewToolResultText(toText(sum)), nil
}

func (s *Server) handleAddKey(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.withMacro(request, "add_key_record", func(id string, m *engine.Macro, params map[string]interface{}) (*mcp.CallToolResult, error) {
		err := m.AddKeyRecord(StringParam(params, "key", ""), StringParam(params, "action", ""), IntParam(params, "delay", 0))
		if err != nil {
			return toolError("add_key_record", err), nil
		}
		return s.edited(ctx, "add_key_record", id, m)
	})
}

func (s *Server) handleAddMouse(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.withMacro(request, "add_mouse_record", func(id string, m *engine.Macro, params map[string]interface{}) (*mcp.CallToolResult, error) {
		err := m.AddMouseRecord(StringParam(params, "value", ""), StringParam(params, "action", ""), IntParam(params, "delay", 0))
		if err != nil {
			return toolError("add_mouse_record", err), nil
		}
		return s.edited(ctx, "add_mouse_record", id, m)
	})
}

func (s *Server) handleGetScript(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.withMacro(request, "get_script", func(_ string, m *engine.Macro, _ map[string]interface{}) (*mcp.CallToolResult, error) {
		return mcp.NewToolResultText(m.Script()), nil
	})
}

func (s *Server) handleSetScript(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.withMacro(request, "set_script", func(id string, m *engine.Macro, params map[string]interface{}) (*mcp.CallToolResult, error) {
		if err := m.SetScript(StringParam(params, "script", "")); err != nil {
			return toolError("set_script", err), nil
		}
		return s.edited(ctx, "set_script", id, m)
	})
}

// edited saves after an edit and reports the new event count.
func (s *Server) edited(ctx context.Context, action, id string, m *engine.Macro) (*mcp.CallToolResult, error) {
	if err := s.save(ctx); err != nil {
		return toolError(action, err), nil
	}
	res := actionResult(action, id, "")
	res.Events = output.Count(m.Log().Len())
	return mcp.NewToolResultText(toText(res)), nil
}
