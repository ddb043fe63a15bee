package ui

import (
	"sync"

	"github.com/zhubert/streamchat/internal/logger"
)

// ViewContext holds centralized layout calculations.
// All size calculations should go through this to avoid duplication.
type ViewContext struct {
	// Terminal dimensions
	TerminalWidth  int
	TerminalHeight int

	// Calculated dimensions
	HeaderHeight  int
	FooterHeight  int
	ContentHeight int // Between header and footer
	SendBoxHeight int // Outer height of the send box including borders
	FeedHeight    int // What remains for the docked feed panels

	mu sync.Mutex
}

// Global view context instance
var (
	ctx     *ViewContext
	ctxOnce sync.Once
)

// GetViewContext returns the singleton ViewContext instance
func GetViewContext() *ViewContext {
	ctxOnce.Do(func() {
		ctx = &ViewContext{
			HeaderHeight:  HeaderHeight,
			FooterHeight:  FooterHeight,
			SendBoxHeight: SendBoxMinLines + SendBoxBorderHeight,
		}
		logger.WithComponent("ui").Debug("ViewContext initialized")
	})
	return ctx
}

// UpdateTerminalSize recalculates all dimensions when the terminal is resized.
func (v *ViewContext) UpdateTerminalSize(width, height int) {
	v.mu.Lock()
	defer v.mu.Unlock()

	width = max(width, MinTerminalWidth)
	height = max(height, MinTerminalHeight)

	v.TerminalWidth = width
	v.TerminalHeight = height
	v.HeaderHeight = HeaderHeight
	v.FooterHeight = FooterHeight
	v.ContentHeight = height - v.HeaderHeight - v.FooterHeight
	v.recalc()

	logger.WithComponent("ui").Debug("Terminal size updated",
		"width", width,
		"height", height,
		"contentHeight", v.ContentHeight,
		"feedHeight", v.FeedHeight,
	)
}

// SetSendBoxLines records how many text lines the send box shows. The feed
// area shrinks to make room, never the other way around.
func (v *ViewContext) SetSendBoxLines(lines int) bool {
	v.mu.Lock()
	defer v.mu.Unlock()

	h := min(max(lines, SendBoxMinLines), v.maxSendBoxLines()) + SendBoxBorderHeight
	if h == v.SendBoxHeight {
		return false
	}
	v.SendBoxHeight = h
	v.recalc()
	return true
}

// MaxSendBoxLines returns how many lines the send box may grow to in the
// current terminal.
func (v *ViewContext) MaxSendBoxLines() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.maxSendBoxLines()
}

func (v *ViewContext) maxSendBoxLines() int {
	if v.ContentHeight == 0 {
		return SendBoxMaxLines
	}
	// Leave at least a bordered title row plus one feed line
	room := v.ContentHeight - SendBoxBorderHeight - (BorderSize + PanelTitleHeight + 1)
	return max(SendBoxMinLines, min(SendBoxMaxLines, room))
}

func (v *ViewContext) recalc() {
	v.FeedHeight = max(v.ContentHeight-v.SendBoxHeight, 0)
}

// InnerWidth returns the usable width inside a panel with borders
func (v *ViewContext) InnerWidth(panelWidth int) int {
	return max(panelWidth-BorderSize, 0)
}

// InnerHeight returns the usable height inside a panel with borders
func (v *ViewContext) InnerHeight(panelHeight int) int {
	return max(panelHeight-BorderSize, 0)
}
