package providers

import (
	"artfolio/internal/structures"
	"errors"

	"github.com/adhocore/gronx"
	"github.com/gookit/validate"
)

type CnfValidator struct {
	conf *structures.Config
}

func NewCnfValidator(conf *structures.Config) *CnfValidator {
	return &CnfValidator{conf: conf}
}

func (c *CnfValidator) Validate() error {
	v := validate.Struct(c.conf)
	if !v.Validate() {
		return v.Errors
	}
	if c.conf.Storage.Driver == "pebble" && c.conf.Storage.Path == "" {
		return errors.New("storage.path is required for the pebble driver")
	}
	if !gronx.IsValid(c.conf.Persistence.BackupCron) {
		return errors.New("persistence.backupCron is not a valid cron expression")
	}
	return nil
}
