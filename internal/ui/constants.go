// Package ui provides constants for layout calculations and configuration.
package ui

// Layout constants for panel sizing
const (
	// HeaderHeight is the height of the header in lines
	HeaderHeight = 1

	// FooterHeight is the height of the footer in lines
	FooterHeight = 1

	// BorderSize is the total border width (1 on each side)
	BorderSize = 2

	// PanelTitleHeight is the line used by a panel's title
	PanelTitleHeight = 1

	// SendBoxMinLines is the height of the empty message box
	SendBoxMinLines = 1

	// SendBoxMaxLines caps how far the message box grows before it scrolls
	SendBoxMaxLines = 6

	// SendBoxBorderHeight is the border around the message box
	SendBoxBorderHeight = 2

	// InputPaddingWidth is the horizontal padding inside the send box (Padding(0, 1))
	InputPaddingWidth = 2

	// SendBoxCharLimit matches Twitch's chat message limit
	SendBoxCharLimit = 500

	// MinTerminalWidth and MinTerminalHeight keep the layout math positive
	MinTerminalWidth  = 40
	MinTerminalHeight = 10

	// MinPanelWidth and MinPanelHeight are the smallest feed panel that still
	// shows its border, title, and one row. Thinner docks are hidden.
	MinPanelWidth  = 12
	MinPanelHeight = BorderSize + PanelTitleHeight + 1

	// DefaultWrapWidth is used for wrapping when the panel width is unknown
	DefaultWrapWidth = 80

	// AuthorMaxWidth truncates long display names in feed rows
	AuthorMaxWidth = 20
)

// Modal dimensions
const (
	// ModalWidth is the default width of modals
	ModalWidth = 60

	// ModalWidthWide is used by forms with long fields
	ModalWidthWide = 72

	// ModalInputCharLimit is the character limit for modal text inputs
	ModalInputCharLimit = 256

	// ModalInputWidth is the width of modal text inputs
	ModalInputWidth = 50
)
