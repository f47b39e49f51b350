package styles

import "bytes"

var simplePalette = palette{
	cardFill:   "white",
	cardStroke: "#333",
	text:       "#111",
	line:       "#333",
	frame:      "#c0c0c0",
	badge:      "#2563eb",
	fontFamily: "Helvetica, Arial, sans-serif",
}

// Simple draws black outlines on a transparent canvas.
type Simple struct{}

func (Simple) Name() string { return "simple" }

func (Simple) RenderDefs(buf *bytes.Buffer) {}

func (Simple) RenderBackground(buf *bytes.Buffer, w, h float64) {
	simplePalette.renderBackground(buf, w, h)
}

func (Simple) RenderFrame(buf *bytes.Buffer, f Frame) { simplePalette.renderFrame(buf, f) }

func (Simple) RenderLine(buf *bytes.Buffer, l Line) { simplePalette.renderLine(buf, l) }

func (Simple) RenderCard(buf *bytes.Buffer, c Card) { simplePalette.renderCard(buf, c) }
