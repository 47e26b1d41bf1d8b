package config

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Validate checks the loaded configuration. Storage settings are checked only
// for the selected driver.
func (c *AppConfig) Validate() error {
	if err := validate.Struct(c); err != nil {
		return formatValidationError(err)
	}

	switch c.Storage.Driver {
	case "minio":
		if err := validate.Struct(c.Storage.MinIO); err != nil {
			return formatValidationError(err)
		}
	case "s3":
		if err := validate.Struct(c.Storage.S3); err != nil {
			return formatValidationError(err)
		}
	case "filesystem":
		if c.Storage.FSRoot == "" {
			return errors.New("storage: STORAGE_FS_ROOT is required for the filesystem driver")
		}
	}
	return nil
}

// formatValidationError reports the first failing field. Values are left out
// so secrets never reach the logs.
func formatValidationError(err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		e := verrs[0]
		return fmt.Errorf("invalid config: %s failed on '%s'", e.Namespace(), e.Tag())
	}
	return err
}
