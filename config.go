package cms

import "github.com/zirospace/zirospace-cms/internal/runtimeconfig"

var (
	ErrStorageProviderUnknown  = runtimeconfig.ErrStorageProviderUnknown
	ErrRemoteDSNRequired       = runtimeconfig.ErrRemoteDSNRequired
	ErrLocalPathRequired       = runtimeconfig.ErrLocalPathRequired
	ErrLocalesRequired         = runtimeconfig.ErrLocalesRequired
	ErrDefaultLocaleDisabled   = runtimeconfig.ErrDefaultLocaleDisabled
	ErrLoggingProviderRequired = runtimeconfig.ErrLoggingProviderRequired
	ErrLoggingProviderUnknown  = runtimeconfig.ErrLoggingProviderUnknown
	ErrLoggingLevelInvalid     = runtimeconfig.ErrLoggingLevelInvalid
	ErrLoggingFormatInvalid    = runtimeconfig.ErrLoggingFormatInvalid
	ErrAdminTimeoutInvalid     = runtimeconfig.ErrAdminTimeoutInvalid
)

const (
	StorageRemote = runtimeconfig.StorageRemote
	StorageLocal  = runtimeconfig.StorageLocal
)

type (
	Config              = runtimeconfig.Config
	StorageConfig       = runtimeconfig.StorageConfig
	RemoteStorageConfig = runtimeconfig.RemoteStorageConfig
	LocalStorageConfig  = runtimeconfig.LocalStorageConfig
	LoggingConfig       = runtimeconfig.LoggingConfig
	AdminConfig         = runtimeconfig.AdminConfig
	HTTPConfig          = runtimeconfig.HTTPConfig
	SchemaConfig        = runtimeconfig.SchemaConfig
)

func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}

// LoadConfig reads path (optional) and ZIRO_ environment overrides on top of
// DefaultConfig.
func LoadConfig(path string) (Config, error) {
	return runtimeconfig.Load(path)
}
