package platform

import (
	"fmt"

	"github.com/atotto/clipboard"
)

// CopyToClipboard copies the given text to the system clipboard.
func CopyToClipboard(text string) error {
	if clipboard.Unsupported {
		return fmt.Errorf("clipboard not available on this system")
	}
	return clipboard.WriteAll(text)
}
