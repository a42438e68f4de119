package models

import (
	"fmt"

	"github.com/dmitrijs2005/hoverboard/internal/common"
)

func errMissing(field string) error {
	return fmt.Errorf("%w: %s is required", common.ErrorInvalidInput, field)
}
