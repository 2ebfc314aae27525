package blog

import "github.com/goliatone/go-blog/internal/runtimeconfig"

var (
	ErrContentDirRequired      = runtimeconfig.ErrContentDirRequired
	ErrContentPatternInvalid   = runtimeconfig.ErrContentPatternInvalid
	ErrStorageProviderUnknown  = runtimeconfig.ErrStorageProviderUnknown
	ErrStorageDriverUnknown    = runtimeconfig.ErrStorageDriverUnknown
	ErrStorageDSNRequired      = runtimeconfig.ErrStorageDSNRequired
	ErrCacheTTLInvalid         = runtimeconfig.ErrCacheTTLInvalid
	ErrCacheWatchRequiresCache = runtimeconfig.ErrCacheWatchRequiresCache
	ErrSearchWeightInvalid     = runtimeconfig.ErrSearchWeightInvalid
	ErrHTTPAddrRequired        = runtimeconfig.ErrHTTPAddrRequired
	ErrLoggingProviderRequired = runtimeconfig.ErrLoggingProviderRequired
	ErrLoggingProviderUnknown  = runtimeconfig.ErrLoggingProviderUnknown
	ErrLoggingLevelInvalid     = runtimeconfig.ErrLoggingLevelInvalid
	ErrLoggingFormatInvalid    = runtimeconfig.ErrLoggingFormatInvalid
)

const (
	StorageFilesystem = runtimeconfig.StorageFilesystem
	StorageBun        = runtimeconfig.StorageBun
	DriverSQLite      = runtimeconfig.DriverSQLite
	DriverPostgres    = runtimeconfig.DriverPostgres
)

type (
	Config         = runtimeconfig.Config
	ContentConfig  = runtimeconfig.ContentConfig
	MarkdownConfig = runtimeconfig.MarkdownConfig
	StorageConfig  = runtimeconfig.StorageConfig
	CacheConfig    = runtimeconfig.CacheConfig
	SearchConfig   = runtimeconfig.SearchConfig
	SearchWeights  = runtimeconfig.SearchWeights
	HTTPConfig     = runtimeconfig.HTTPConfig
	LoggingConfig  = runtimeconfig.LoggingConfig
	Features       = runtimeconfig.Features
)

func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}
