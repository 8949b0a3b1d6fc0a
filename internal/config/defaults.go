package config

const (
	defaultConfigPath        = "~/.config/amutils/config.toml"
	projectConfigName        = "amutils.toml"
	defaultStateDir          = "~/.local/share/amutils"
	defaultLogDir            = "~/.local/share/amutils/logs"
	defaultMusicAppName      = "Music"
	defaultOsascriptBinary   = "osascript"
	defaultScriptTimeout     = 120
	defaultDurationTolerance = 0.1
	defaultHistoryEnabled    = true
	defaultHistoryFileName   = "history.db"
	defaultLogFormat         = "console"
	defaultLogLevel          = "info"
)

// DefaultEncodings is the order in which CSV decodings are attempted.
var DefaultEncodings = []string{"utf-8-sig", "utf-8", "latin-1", "gb18030", "shift_jis"}

// Default returns a Config populated with defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			StateDir: defaultStateDir,
			LogDir:   defaultLogDir,
		},
		Music: Music{
			AppName:         defaultMusicAppName,
			OsascriptBinary: defaultOsascriptBinary,
			ScriptTimeout:   defaultScriptTimeout,
		},
		Import: Import{
			DurationTolerance: defaultDurationTolerance,
			Encodings:         append([]string(nil), DefaultEncodings...),
		},
		History: History{
			Enabled: defaultHistoryEnabled,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
