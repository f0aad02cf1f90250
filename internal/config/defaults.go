package config

const (
	defaultDeliveryRoot    = "~/deliveries"
	defaultLogDir          = "~/.local/share/slate/logs"
	defaultJournalPath     = "~/.local/share/slate/journal.db"
	defaultDeliveryStatus  = "rfd"
	defaultDeliveredStatus = "dlvr"
	defaultRequestTimeout  = 30
	defaultNtfyTimeout     = 10
	defaultLogFormat       = "console"
	defaultLogLevel        = "info"

	defaultDeliveryFolderTemplate   = "{root}"
	defaultDeliverySequenceTemplate = "{root}/{Projectcode}/{Sequence}/{Shot}/{Projectcode}_{Sequence}_{Shot}_{version}.%04d.exr"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DeliveryRoot: defaultDeliveryRoot,
			LogDir:       defaultLogDir,
		},
		Catalog: Catalog{
			DeliveryStatus:  defaultDeliveryStatus,
			DeliveredStatus: defaultDeliveredStatus,
			RequestTimeout:  defaultRequestTimeout,
		},
		Templates: Templates{
			DeliveryFolder:   defaultDeliveryFolderTemplate,
			DeliverySequence: defaultDeliverySequenceTemplate,
		},
		Journal: Journal{
			Enabled: true,
			Path:    defaultJournalPath,
		},
		Notifications: Notifications{
			RequestTimeout: defaultNtfyTimeout,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
