package ports

// BrowserLauncher defines the interface for opening the preview in a browser
type BrowserLauncher interface {
	// Launch opens a URL in the user's browser; noOpen skips the launch
	Launch(url string, noOpen bool) error
	// Detect reports which browser the platform would use
	Detect() (string, error)
}
