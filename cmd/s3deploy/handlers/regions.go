package handlers

import (
	"fmt"
	"io"

	"github.com/imamik/s3deploy/internal/config"
)

// ListRegions prints the known AWS regions. It never deploys anything.
func ListRegions(w io.Writer) error {
	if _, err := fmt.Fprintln(w, "Available AWS regions:"); err != nil {
		return err
	}
	for _, r := range config.KnownRegions() {
		if _, err := fmt.Fprintf(w, "  %s\n", r); err != nil {
			return err
		}
	}
	return nil
}
