//go:build !linux

package idle

func newProvider() Provider {
	return unsupportedProvider{}
}
