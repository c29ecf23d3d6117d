package server

import "github.com/mark3labs/mcp-go/mcp"

func (s *Server) registerTools() {
	idParam := mcp.WithString("id", mcp.Description("Macro ID (from list_macros)"), mcp.Required())

	s.mcp.AddTool(
		mcp.NewTool("list_macros",
			mcp.WithDescription("List saved macros with their state and event counts"),
		),
		s.handleList,
	)

	s.mcp.AddTool(
		mcp.NewTool("create_macro",
			mcp.WithDescription("Create an empty macro"),
			mcp.WithString("name", mcp.Description("Display name (default: New script)")),
		),
		s.handleCreate,
	)

	s.mcp.AddTool(
		mcp.NewTool("delete_macro",
			mcp.WithDescription("Stop and delete a macro"),
			idParam,
		),
		s.handleDelete,
	)

	s.mcp.AddTool(
		mcp.NewTool("update_macro",
			mcp.WithDescription("Rename a macro or change its loop delay or hotkey"),
			idParam,
			mcp.WithString("name", mcp.Description("New display name")),
			mcp.WithNumber("delay", mcp.Description("Pause between looped passes in milliseconds")),
			mcp.WithString("hotkey", mcp.Description("Hotkey label stored with the macro")),
		),
		s.handleUpdate,
	)

	s.mcp.AddTool(
		mcp.NewTool("start_recording",
			mcp.WithDescription("Clear the macro and start capturing global keyboard and/or mouse input"),
			idParam,
			mcp.WithBoolean("keys", mcp.Description("Capture keyboard events (default: true)")),
			mcp.WithBoolean("mouse", mcp.Description("Capture mouse events (default: true)")),
			mcp.WithString("until_key", mcp.Description("Stop automatically when this key is pressed")),
		),
		s.handleStartRecording,
	)

	s.mcp.AddTool(
		mcp.NewTool("stop_recording",
			mcp.WithDescription("Stop capturing and save the recorded events"),
			idParam,
		),
		s.handleStopRecording,
	)

	s.mcp.AddTool(
		mcp.NewTool("play_macro",
			mcp.WithDescription("Replay a macro's events as synthetic input"),
			idParam,
			mcp.WithBoolean("loop", mcp.Description("Repeat until terminated")),
			mcp.WithBoolean("timing", mcp.Description("Reproduce recorded gaps between events (default: true)")),
			mcp.WithNumber("delay", mcp.Description("Pause between looped passes in ms (default: the macro's delay)")),
			mcp.WithBoolean("wait", mcp.Description("Block until playback finishes and report the result")),
		),
		s.handlePlay,
	)

	s.mcp.AddTool(
		mcp.NewTool("terminate_macro",
			mcp.WithDescription("Cancel a running playback"),
			idParam,
		),
		s.handleTerminate,
	)

	s.mcp.AddTool(
		mcp.NewTool("macro_status",
			mcp.WithDescription("Show a macro's state, settings and event count"),
			idParam,
		),
		s.handleStatus,
	)

	s.mcp.AddTool(
		mcp.NewTool("add_key_record",
			mcp.WithDescription("Append a key event after the last event"),
			idParam,
			mcp.WithString("key", mcp.Description("Key name, e.g. a, shift, enter"), mcp.Required()),
			mcp.WithString("action", mcp.Description("down or up"), mcp.Required()),
			mcp.WithNumber("delay", mcp.Description("Milliseconds after the previous event")),
		),
		s.handleAddKey,
	)

	s.mcp.AddTool(
		mcp.NewTool("add_mouse_record",
			mcp.WithDescription("Append a mouse event after the last event"),
			idParam,
			mcp.WithString("value", mcp.Description("Button (left, right, middle), offset [x,y] for move, or delta for wheel"), mcp.Required()),
			mcp.WithString("action", mcp.Description("down, up, double, move or wheel"), mcp.Required()),
			mcp.WithNumber("delay", mcp.Description("Milliseconds after the previous event")),
		),
		s.handleAddMouse,
	)

	s.mcp.AddTool(
		mcp.NewTool("get_script",
			mcp.WithDescription("Render a macro as editable script text"),
			idParam,
		),
		s.handleGetScript,
	)

	s.mcp.AddTool(
		mcp.NewTool("set_script",
			mcp.WithDescription("Replace a macro's events by parsing script text"),
			idParam,
			mcp.WithString("script", mcp.Description("Script text: delay lines in ms followed by '<key>: <action>' lines"), mcp.Required()),
		),
		s.handleSetScript,
	)
}
