package server

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

// createTestImageFile writes a PNG with four solid quadrants and returns its path.
func createTestImageFile(t *testing.T, width, height int) string {
	t.Helper()

	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	colors := [4]color.NRGBA{
		{R: 255, A: 255},
		{G: 255, A: 255},
		{B: 255, A: 255},
		{R: 255, G: 255, B: 255, A: 255},
	}
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			q := 0
			if x >= width/2 {
				q = 1
			}
			if y >= height/2 {
				q += 2
			}
			img.SetNRGBA(x, y, colors[q])
		}
	}

	path := filepath.Join(t.TempDir(), "source.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create temp file: %v", err)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		t.Fatalf("failed to encode image: %v", err)
	}

	return path
}

// callTool runs a tools/call request and returns the decoded JSON result text.
func callTool(t *testing.T, s *Server, name string, arguments map[string]interface{}) json.RawMessage {
	t.Helper()

	paramsJSON, err := json.Marshal(map[string]interface{}{
		"name":      name,
		"arguments": arguments,
	})
	if err != nil {
		t.Fatalf("failed to marshal params: %v", err)
	}

	resp := s.handleToolsCall(&MCPRequest{
		JSONRPC: "2.0",
		ID:      1,
		Params:  paramsJSON,
	})

	if resp.Error != nil {
		t.Fatalf("tool %s failed: %s (%v)", name, resp.Error.Message, resp.Error.Data)
	}

	result, ok := resp.Result.(map[string]interface{})
	if !ok {
		t.Fatal("Result should be a map")
	}
	content, ok := result["content"].([]map[string]interface{})
	if !ok || len(content) == 0 {
		t.Fatal("Result should contain non-empty content")
	}
	text, ok := content[0]["text"].(string)
	if !ok {
		t.Fatal("content[0].text should be a string")
	}
	return json.RawMessage(text)
}

func TestHandleToolsCall_ImageLoad(t *testing.T) {
	s := New()
	imgPath := createTestImageFile(t, 100, 80)

	raw := callTool(t, s, "image_load", map[string]interface{}{"path": imgPath})

	var info struct {
		Width  int `json:"width"`
		Height int `json:"height"`
	}
	if err := json.Unmarshal(raw, &info); err != nil {
		t.Fatalf("failed to unmarshal result: %v", err)
	}
	if info.Width != 100 || info.Height != 80 {
		t.Errorf("dimensions: got %dx%d, want 100x80", info.Width, info.Height)
	}
}

func TestHandleToolsCall_ImageSampleColor(t *testing.T) {
	s := New()
	imgPath := createTestImageFile(t, 8, 8)

	raw := callTool(t, s, "image_sample_color", map[string]interface{}{
		"path": imgPath,
		"x":    0,
		"y":    0,
	})

	var result struct {
		Hex string `json:"hex"`
	}
	if err := json.Unmarshal(raw, &result); err != nil {
		t.Fatalf("failed to unmarshal result: %v", err)
	}
	if result.Hex != "#FF0000" {
		t.Errorf("top-left color: got %s, want #FF0000", result.Hex)
	}
}

func TestHandleToolsCall_ImagePalette(t *testing.T) {
	s := New()
	imgPath := createTestImageFile(t, 8, 8)

	raw := callTool(t, s, "image_palette", map[string]interface{}{"path": imgPath})

	var result struct {
		DistinctColors int `json:"distinct_colors"`
	}
	if err := json.Unmarshal(raw, &result); err != nil {
		t.Fatalf("failed to unmarshal result: %v", err)
	}
	if result.DistinctColors != 4 {
		t.Errorf("distinct colors: got %d, want 4", result.DistinctColors)
	}
}

func TestHandleToolsCall_PixelartRender(t *testing.T) {
	s := New()
	imgPath := createTestImageFile(t, 8, 8)

	raw := callTool(t, s, "pixelart_render", map[string]interface{}{
		"path":     imgPath,
		"pixelize": 0,
		"kcolors":  4,
	})

	var result RenderResult
	if err := json.Unmarshal(raw, &result); err != nil {
		t.Fatalf("failed to unmarshal result: %v", err)
	}

	if result.Width != 8 || result.Height != 8 {
		t.Errorf("dimensions: got %dx%d, want 8x8", result.Width, result.Height)
	}
	if result.MimeType != "image/png" {
		t.Errorf("mime type: got %s, want image/png", result.MimeType)
	}
	if result.DistinctColors < 1 || result.DistinctColors > 4 {
		t.Errorf("distinct colors: got %d, want 1-4", result.DistinctColors)
	}
	if len(result.Palette) != result.DistinctColors {
		t.Errorf("palette length %d does not match distinct colors %d",
			len(result.Palette), result.DistinctColors)
	}

	decoded, err := base64.StdEncoding.DecodeString(result.ImageBase64)
	if err != nil {
		t.Fatalf("failed to decode base64: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(decoded))
	if err != nil {
		t.Fatalf("failed to decode PNG: %v", err)
	}
	if img.Bounds().Dx() != 8 || img.Bounds().Dy() != 8 {
		t.Errorf("decoded dimensions: got %dx%d, want 8x8",
			img.Bounds().Dx(), img.Bounds().Dy())
	}
}

func TestHandleToolsCall_PixelartRenderWithStages(t *testing.T) {
	s := New()
	imgPath := createTestImageFile(t, 16, 16)

	raw := callTool(t, s, "pixelart_render", map[string]interface{}{
		"path":     imgPath,
		"pixelize": 50,
		"kcolors":  4,
		"levels":   map[string]interface{}{"black": 10, "white": 80},
		"modulate": map[string]interface{}{"brightness": 100, "saturation": 120, "hue": 100},
	})

	var result RenderResult
	if err := json.Unmarshal(raw, &result); err != nil {
		t.Fatalf("failed to unmarshal result: %v", err)
	}

	if result.Width != 16 || result.Height != 16 {
		t.Errorf("dimensions: got %dx%d, want 16x16", result.Width, result.Height)
	}
	if result.DistinctColors > 4 {
		t.Errorf("distinct colors %d exceeds kcolors 4", result.DistinctColors)
	}
}

func TestHandleToolsCall_PixelartRenderFile(t *testing.T) {
	s := New()
	imgPath := createTestImageFile(t, 8, 8)
	outPath := filepath.Join(t.TempDir(), "out.png")

	raw := callTool(t, s, "pixelart_render_file", map[string]interface{}{
		"path":        imgPath,
		"output_path": outPath,
		"pixelize":    0,
		"kcolors":     4,
	})

	var result RenderFileResult
	if err := json.Unmarshal(raw, &result); err != nil {
		t.Fatalf("failed to unmarshal result: %v", err)
	}
	if result.OutputPath != outPath {
		t.Errorf("output path: got %s, want %s", result.OutputPath, outPath)
	}

	f, err := os.Open(outPath)
	if err != nil {
		t.Fatalf("output file not written: %v", err)
	}
	defer f.Close()

	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("output file is not a valid PNG: %v", err)
	}
	if img.Bounds().Dx() != 8 || img.Bounds().Dy() != 8 {
		t.Errorf("output dimensions: got %dx%d, want 8x8",
			img.Bounds().Dx(), img.Bounds().Dy())
	}
}

func TestHandleToolsCall_InvalidParamsJSON(t *testing.T) {
	s := New()

	resp := s.handleToolsCall(&MCPRequest{
		JSONRPC: "2.0",
		ID:      1,
		Params:  json.RawMessage(`{not json`),
	})

	if resp.Error == nil {
		t.Fatal("Expected error for malformed params")
	}
	if resp.Error.Code != -32602 {
		t.Errorf("Error code: got %d, want -32602", resp.Error.Code)
	}
}

func TestHandleToolsCall_UnknownTool(t *testing.T) {
	s := New()

	paramsJSON, _ := json.Marshal(map[string]interface{}{
		"name":      "nonexistent_tool",
		"arguments": map[string]interface{}{},
	})

	resp := s.handleToolsCall(&MCPRequest{
		JSONRPC: "2.0",
		ID:      1,
		Params:  paramsJSON,
	})

	if resp.Error == nil {
		t.Fatal("Expected error for unknown tool")
	}
	if resp.Error.Code != -32000 {
		t.Errorf("Error code: got %d, want -32000", resp.Error.Code)
	}
}

func TestHandleToolsCall_NonExistentFile(t *testing.T) {
	s := New()

	paramsJSON, _ := json.Marshal(map[string]interface{}{
		"name": "image_load",
		"arguments": map[string]interface{}{
			"path": "/nonexistent/image.png",
		},
	})

	resp := s.handleToolsCall(&MCPRequest{
		JSONRPC: "2.0",
		ID:      1,
		Params:  paramsJSON,
	})

	if resp.Error == nil {
		t.Fatal("Expected error for non-existent file")
	}
	if resp.Error.Code != -32000 {
		t.Errorf("Error code: got %d, want -32000", resp.Error.Code)
	}
}

func TestHandleToolsCall_RenderInvalidParams(t *testing.T) {
	s := New()
	imgPath := createTestImageFile(t, 8, 8)

	tests := []struct {
		name string
		args map[string]interface{}
	}{
		{
			"kcolors zero",
			map[string]interface{}{"path": imgPath, "pixelize": 80, "kcolors": 0},
		},
		{
			"pixelize too large",
			map[string]interface{}{"path": imgPath, "pixelize": 100, "kcolors": 32},
		},
		{
			"kcolors above cap",
			map[string]interface{}{"path": imgPath, "pixelize": 80, "kcolors": 65},
		},
		{
			"levels out of range",
			map[string]interface{}{
				"path": imgPath, "pixelize": 80, "kcolors": 32,
				"levels": map[string]interface{}{"black": -1, "white": 80},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			paramsJSON, _ := json.Marshal(map[string]interface{}{
				"name":      "pixelart_render",
				"arguments": tt.args,
			})

			resp := s.handleToolsCall(&MCPRequest{
				JSONRPC: "2.0",
				ID:      1,
				Params:  paramsJSON,
			})

			if resp.Error == nil {
				t.Fatal("Expected error for invalid render params")
			}
			if resp.Error.Code != -32000 {
				t.Errorf("Error code: got %d, want -32000", resp.Error.Code)
			}
		})
	}
}

func TestHandleToolsCall_RenderFileMissingOutputPath(t *testing.T) {
	s := New()
	imgPath := createTestImageFile(t, 8, 8)

	paramsJSON, _ := json.Marshal(map[string]interface{}{
		"name": "pixelart_render_file",
		"arguments": map[string]interface{}{
			"path":     imgPath,
			"pixelize": 0,
			"kcolors":  4,
		},
	})

	resp := s.handleToolsCall(&MCPRequest{
		JSONRPC: "2.0",
		ID:      1,
		Params:  paramsJSON,
	})

	if resp.Error == nil {
		t.Fatal("Expected error for missing output_path")
	}
	if resp.Error.Code != -32000 {
		t.Errorf("Error code: got %d, want -32000", resp.Error.Code)
	}
}
