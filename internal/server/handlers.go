package server

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"image/png"

	"github.com/quixelart/pixelart-mcp/internal/imaging"
	"github.com/quixelart/pixelart-mcp/internal/pixelart"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "image_load", "pixelart_render").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Tool execution errors return a JSON-RPC error response with code -32000.
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
	}

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": mustMarshalJSON(result),
				},
			},
		},
	}
}

// executeTool dispatches tool execution to the appropriate handler function.
//
// Each tool handler:
//  1. Unmarshals arguments from JSON
//  2. Applies default values for optional parameters
//  3. Loads the source image from cache as needed
//  4. Calls the appropriate imaging/pixelart function
//  5. Returns the result or error
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	switch name {
	// Basic Image Information
	case "image_load":
		return s.handleImageLoad(args)
	case "image_dimensions":
		return s.handleImageDimensions(args)

	// Color Inspection
	case "image_sample_color":
		return s.handleImageSampleColor(args)
	case "image_palette":
		return s.handleImagePalette(args)

	// Rendering
	case "pixelart_render":
		return s.handlePixelartRender(args)
	case "pixelart_render_file":
		return s.handlePixelartRenderFile(args)

	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &MCPError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// Panics are suppressed; on marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// === Basic Image Information Handlers ===

type imageLoadArgs struct {
	Path string `json:"path"`
}

func (s *Server) handleImageLoad(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return imaging.LoadImageInfo(s.cache, a.Path)
}

func (s *Server) handleImageDimensions(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return imaging.GetDimensions(s.cache, a.Path)
}

// === Color Inspection Handlers ===

type imageSampleColorArgs struct {
	Path string `json:"path"`
	X    int    `json:"x"`
	Y    int    `json:"y"`
}

func (s *Server) handleImageSampleColor(args json.RawMessage) (interface{}, error) {
	var a imageSampleColorArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	return imaging.SampleColor(img, a.X, a.Y)
}

type imagePaletteArgs struct {
	Path      string `json:"path"`
	MaxColors int    `json:"max_colors"`
}

func (s *Server) handleImagePalette(args json.RawMessage) (interface{}, error) {
	var a imagePaletteArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.MaxColors == 0 {
		a.MaxColors = 64
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	return imaging.Palette(img, a.MaxColors)
}

// === Rendering Handlers ===

type renderArgs struct {
	Path     string `json:"path"`
	Pixelize int    `json:"pixelize"`
	KColors  int    `json:"kcolors"`
	Levels   *struct {
		Black int `json:"black"`
		White int `json:"white"`
	} `json:"levels,omitempty"`
	Modulate *struct {
		Brightness int `json:"brightness"`
		Saturation int `json:"saturation"`
		Hue        int `json:"hue"`
	} `json:"modulate,omitempty"`
}

// params converts the wire arguments into a pipeline parameter snapshot.
func (a renderArgs) params() pixelart.Params {
	p := pixelart.Params{
		Pixelize: a.Pixelize,
		KColors:  a.KColors,
	}
	if a.Levels != nil {
		p.Levels = &pixelart.Levels{Black: a.Levels.Black, White: a.Levels.White}
	}
	if a.Modulate != nil {
		p.Modulate = &pixelart.Modulate{
			Brightness: a.Modulate.Brightness,
			Saturation: a.Modulate.Saturation,
			Hue:        a.Modulate.Hue,
		}
	}
	return p
}

// RenderResult contains a rendered image as base64 PNG plus its palette.
type RenderResult struct {
	Width          int      `json:"width"`           // Output width (same as the source)
	Height         int      `json:"height"`          // Output height (same as the source)
	ImageBase64    string   `json:"image_base64"`    // Rendered image as base64 PNG
	MimeType       string   `json:"mime_type"`       // Always "image/png"
	Palette        []string `json:"palette"`         // Distinct output colors as "#RRGGBB"
	DistinctColors int      `json:"distinct_colors"` // len(Palette); never exceeds kcolors
}

func (s *Server) handlePixelartRender(args json.RawMessage) (interface{}, error) {
	var a renderArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}

	out, err := pixelart.Render(context.Background(), img, a.params())
	if err != nil {
		return nil, fmt.Errorf("render failed: %w", err)
	}

	census, err := imaging.Palette(out, 0)
	if err != nil {
		return nil, fmt.Errorf("palette census failed: %w", err)
	}
	palette := make([]string, len(census.Colors))
	for i, c := range census.Colors {
		palette[i] = c.Hex
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, out); err != nil {
		return nil, fmt.Errorf("failed to encode rendered image: %w", err)
	}

	return &RenderResult{
		Width:          out.Bounds().Dx(),
		Height:         out.Bounds().Dy(),
		ImageBase64:    base64.StdEncoding.EncodeToString(buf.Bytes()),
		MimeType:       "image/png",
		Palette:        palette,
		DistinctColors: census.DistinctColors,
	}, nil
}

type renderFileArgs struct {
	renderArgs
	OutputPath string `json:"output_path"`
}

// RenderFileResult describes a render written to disk.
type RenderFileResult struct {
	OutputPath     string `json:"output_path"`     // Where the rendered image was written
	Width          int    `json:"width"`           // Output width (same as the source)
	Height         int    `json:"height"`          // Output height (same as the source)
	DistinctColors int    `json:"distinct_colors"` // Palette size of the output; never exceeds kcolors
}

func (s *Server) handlePixelartRenderFile(args json.RawMessage) (interface{}, error) {
	var a renderFileArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.OutputPath == "" {
		return nil, fmt.Errorf("output_path is required")
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}

	out, err := pixelart.Render(context.Background(), img, a.params())
	if err != nil {
		return nil, fmt.Errorf("render failed: %w", err)
	}

	census, err := imaging.Palette(out, 0)
	if err != nil {
		return nil, fmt.Errorf("palette census failed: %w", err)
	}

	if err := imaging.Save(out, a.OutputPath); err != nil {
		return nil, err
	}

	return &RenderFileResult{
		OutputPath:     a.OutputPath,
		Width:          out.Bounds().Dx(),
		Height:         out.Bounds().Dy(),
		DistinctColors: census.DistinctColors,
	}, nil
}
