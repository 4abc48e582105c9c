package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// levelsSchema describes the optional levels remap argument shared by the
// render tools.
func levelsSchema() map[string]interface{} {
	return map[string]interface{}{
		"type":        "object",
		"description": "Optional linear levels remap. Omit to skip the stage entirely.",
		"properties": map[string]interface{}{
			"black": map[string]interface{}{
				"type":        "integer",
				"description": "Black point as a percentage of the channel range (0-100)",
			},
			"white": map[string]interface{}{
				"type":        "integer",
				"description": "White point as a percentage of the channel range (0-100). May be below black; the result is tone-inverted.",
			},
		},
		"required": []string{"black", "white"},
	}
}

// modulateSchema describes the optional brightness/saturation/hue argument
// shared by the render tools.
func modulateSchema() map[string]interface{} {
	return map[string]interface{}{
		"type":        "object",
		"description": "Optional brightness/saturation/hue modulation. 100 is the identity for each. Omit to skip the stage entirely.",
		"properties": map[string]interface{}{
			"brightness": map[string]interface{}{
				"type":        "integer",
				"description": "Lightness multiplier percentage (0-200)",
			},
			"saturation": map[string]interface{}{
				"type":        "integer",
				"description": "Saturation multiplier percentage (0-200)",
			},
			"hue": map[string]interface{}{
				"type":        "integer",
				"description": "Hue rotation: (value-100)*3.6 degrees (0-200)",
			},
		},
		"required": []string{"brightness", "saturation", "hue"},
	}
}

// renderProperties returns the argument schema shared by pixelart_render and
// pixelart_render_file.
func renderProperties() map[string]interface{} {
	return map[string]interface{}{
		"path": map[string]interface{}{
			"type":        "string",
			"description": "Absolute path to the source image file",
		},
		"pixelize": map[string]interface{}{
			"type":        "integer",
			"description": "Percentage shrink before quantization (0-99). Larger values produce bigger blocks.",
		},
		"kcolors": map[string]interface{}{
			"type":        "integer",
			"description": "Target palette size (1-64)",
		},
		"levels":   levelsSchema(),
		"modulate": modulateSchema(),
	}
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Basic Image Information
		{
			Name:        "image_load",
			Description: "Load an image file and return its dimensions and format. The decoded source is cached for subsequent renders.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_dimensions",
			Description: "Get the width and height of an image file.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
				},
				"required": []string{"path"},
			},
		},

		// Color Inspection
		{
			Name:        "image_sample_color",
			Description: "Get the exact color value at a specific pixel coordinate.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
					"x": map[string]interface{}{
						"type":        "integer",
						"description": "X coordinate (0-based, from left)",
					},
					"y": map[string]interface{}{
						"type":        "integer",
						"description": "Y coordinate (0-based, from top)",
					},
				},
				"required": []string{"path", "x", "y"},
			},
		},
		{
			Name:        "image_palette",
			Description: "Exact distinct-color census of an image, sorted by frequency, with per-channel range. Useful for verifying the palette of a rendered output.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
					"max_colors": map[string]interface{}{
						"type":        "integer",
						"description": "Maximum palette entries to return. Default 64",
						"default":     64,
					},
				},
				"required": []string{"path"},
			},
		},

		// Rendering
		{
			Name:        "pixelart_render",
			Description: "Run the full pixel-art pipeline (downsample, optional levels/modulate, k-means quantize, nearest-neighbor upsample) and return the result as base64-encoded PNG plus its palette. Every call is a fresh render of the source image.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": renderProperties(),
				"required":   []string{"path", "pixelize", "kcolors"},
			},
		},
		{
			Name:        "pixelart_render_file",
			Description: "Run the full pixel-art pipeline and write the result to a file (format by extension, PNG recommended).",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": func() map[string]interface{} {
					props := renderProperties()
					props["output_path"] = map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to write the rendered image to",
					}
					return props
				}(),
				"required": []string{"path", "output_path", "pixelize", "kcolors"},
			},
		},
	}
}
