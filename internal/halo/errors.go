package halo

import (
	"fmt"
	"net/http"

	"halo_sync/internal/domain"
)

func checkStatus(resp *http.Response) error {
	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return nil
	case resp.StatusCode == http.StatusNotFound:
		return domain.ErrNotFound
	default:
		return fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}
}
