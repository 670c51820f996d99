//go:build darwin

package platform

type darwin struct{}

func current() Platform { return darwin{} }

func (darwin) Name() string { return "darwin" }

// DataRoot returns ~/Library/Application Support.
func (darwin) DataRoot() (string, error) {
	return homeRelative("Library", "Application Support")
}
