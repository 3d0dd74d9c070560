package bootstrap

import (
	"errors"

	"github.com/BruksfildServices01/semijoias-crm/internal/httperr"
)

func clientNotFound(err error) error {
	if errors.Is(err, httperr.ErrNotFound) {
		return httperr.ErrBusiness("client_not_found")
	}
	return err
}
