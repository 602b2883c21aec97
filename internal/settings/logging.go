package settings

import (
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/maloquacious/mapedcfg/internal/logger"
)

// Level is a logging threshold.
type Level string

const (
	LevelDebug   Level = "DEBUG"
	LevelInfo    Level = "INFO"
	LevelWarning Level = "WARNING"
	LevelError   Level = "ERROR"
)

// Levels lists the accepted levels from most to least verbose.
var Levels = []Level{LevelDebug, LevelInfo, LevelWarning, LevelError}

// DefaultGUIMaxLines is how many lines the log window keeps by default.
const DefaultGUIMaxLines = 1000

// LogFile is where file logging writes, relative to the working directory.
var LogFile = filepath.Join("logs", "cdda_maped.log")

func (l Level) Valid() bool {
	return slices.Contains(Levels, l)
}

// ParseLevel accepts a level name in any case.
func ParseLevel(name string) (Level, error) {
	l := Level(strings.ToUpper(strings.TrimSpace(name)))
	if !l.Valid() {
		return "", &InvalidLevelError{Value: name}
	}
	return l, nil
}

// LoggingSettings configures process logging and the editor's log window.
type LoggingSettings struct {
	Level          Level `yaml:"level"`
	ConsoleEnabled bool  `yaml:"console_enabled"`
	ConsoleColors  bool  `yaml:"console_colors"`
	FileEnabled    bool  `yaml:"file_enabled"`

	GUILevel         Level `yaml:"gui_level"`
	GUIShowOnStartup bool  `yaml:"gui_show_on_startup"`
	GUIShowOnError   bool  `yaml:"gui_show_on_error"`
	GUIFocusOnError  bool  `yaml:"gui_focus_on_error"`
	GUIMaxLines      int   `yaml:"gui_max_lines"`
}

// SetLevel stores the named level. An unknown name is rejected with an
// *InvalidLevelError and the current level is kept.
func (l *LoggingSettings) SetLevel(name string) error {
	level, err := ParseLevel(name)
	if err != nil {
		return err
	}
	l.Level = level
	return nil
}

func (l *LoggingSettings) SetConsoleEnabled(v bool) { l.ConsoleEnabled = v }
func (l *LoggingSettings) SetConsoleColors(v bool)  { l.ConsoleColors = v }
func (l *LoggingSettings) SetFileEnabled(v bool)    { l.FileEnabled = v }

// SetGUILevel sets the lowest level shown in the log window.
func (l *LoggingSettings) SetGUILevel(name string) error {
	level, err := ParseLevel(name)
	if err != nil {
		return err
	}
	l.GUILevel = level
	return nil
}

func (l *LoggingSettings) SetGUIShowOnStartup(v bool) { l.GUIShowOnStartup = v }
func (l *LoggingSettings) SetGUIShowOnError(v bool)   { l.GUIShowOnError = v }
func (l *LoggingSettings) SetGUIFocusOnError(v bool)  { l.GUIFocusOnError = v }

// SetGUIMaxLines rejects a limit below one with an *InvalidValueError.
func (l *LoggingSettings) SetGUIMaxLines(n int) error {
	if n < 1 {
		return &InvalidValueError{Key: KeyGUIMaxLines, Value: strconv.Itoa(n)}
	}
	l.GUIMaxLines = n
	return nil
}

// LoggerConfig translates the group into a logger configuration. An
// invalid stored level falls back to INFO.
func (l LoggingSettings) LoggerConfig() logger.Config {
	cfg := logger.Config{
		Level:         string(l.Level),
		Console:       l.ConsoleEnabled,
		ConsoleColors: l.ConsoleColors,
	}
	if !l.Level.Valid() {
		cfg.Level = string(LevelInfo)
	}
	if l.FileEnabled {
		cfg.File = LogFile
	}
	return cfg
}
