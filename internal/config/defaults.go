package config

const (
	defaultIDHeaderMarker  = "学号"
	defaultNameHeader      = "姓名"
	defaultNamePlaceholder = "未知"
	defaultScanRows        = 5
	defaultHashAlgorithm   = "sha256"
	defaultHashChunkSize   = 64 * 1024
	defaultDeadlineLayout  = "2006-01-02 15:04"
	defaultDeadlineZone    = "Local"
	defaultReportFormat    = "table"
	defaultReportColor     = "auto"
	defaultLogFormat       = "console"
	defaultLogLevel        = "warn"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Roster: Roster{
			IDHeaderMarker:  defaultIDHeaderMarker,
			NameHeader:      defaultNameHeader,
			NamePlaceholder: defaultNamePlaceholder,
			ScanRows:        defaultScanRows,
		},
		Hashing: Hashing{
			Algorithm: defaultHashAlgorithm,
			ChunkSize: defaultHashChunkSize,
		},
		Deadline: Deadline{
			Layout:   defaultDeadlineLayout,
			Timezone: defaultDeadlineZone,
		},
		Report: Report{
			Format: defaultReportFormat,
			Color:  defaultReportColor,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
