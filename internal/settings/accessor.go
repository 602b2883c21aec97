package settings

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrReadOnlyKey indicates a key that is maintained by the settings layer
// itself or edited through a dedicated operation.
var ErrReadOnlyKey = errors.New("settings key cannot be set directly")

// Lookup returns the typed value of key as the settings layer sees it,
// after defaults and migration.
func (s *Settings) Lookup(key string) (any, error) {
	snap := s.Snapshot()
	switch key {
	case KeyVersion:
		return int(snap.Version), nil
	case KeyRoot:
		return snap.Paths.Root, nil
	case KeyRecentFiles:
		return snap.Paths.Recent, nil
	case KeyTheme:
		return string(snap.UI.Theme), nil
	case KeyExplorerStayAboveMain:
		return snap.UI.ExplorerStayAboveMain, nil
	case KeyDefaultTileset:
		return snap.Editor.DefaultTileset, nil
	case KeyDefaultTilesetIso:
		return snap.Editor.DefaultTilesetIso, nil
	case KeyGridVisible:
		return snap.Editor.GridVisible, nil
	case KeyZoomLevel:
		return snap.Editor.Zoom, nil
	case KeyAnimationTimeout:
		return snap.Editor.AnimationTimeout, nil
	case KeyLogLevel:
		return string(snap.Logging.Level), nil
	case KeyConsoleEnabled:
		return snap.Logging.ConsoleEnabled, nil
	case KeyConsoleColors:
		return snap.Logging.ConsoleColors, nil
	case KeyFileEnabled:
		return snap.Logging.FileEnabled, nil
	case KeyGUILevel:
		return string(snap.Logging.GUILevel), nil
	case KeyGUIShowOnStartup:
		return snap.Logging.GUIShowOnStartup, nil
	case KeyGUIShowOnError:
		return snap.Logging.GUIShowOnError, nil
	case KeyGUIFocusOnError:
		return snap.Logging.GUIFocusOnError, nil
	case KeyGUIMaxLines:
		return snap.Logging.GUIMaxLines, nil
	case KeyTypeSlotMapping:
		return snap.TypeSlots.stored(), nil
	case KeyMultiZEnabled:
		return snap.MultiZ.Enabled, nil
	case KeyMultiZLevelsAbove:
		return snap.MultiZ.LevelsAbove, nil
	case KeyMultiZLevelsBelow:
		return snap.MultiZ.LevelsBelow, nil
	case KeyBrightnessMethod:
		return string(snap.MultiZ.BrightnessMethod), nil
	case KeyBrightnessStep:
		return snap.MultiZ.BrightnessStep, nil
	case KeyBrightnessAbove:
		return string(snap.MultiZ.BrightnessAbove), nil
	case KeyBrightnessBelow:
		return string(snap.MultiZ.BrightnessBelow), nil
	case KeyTransparencyMethod:
		return string(snap.MultiZ.TransparencyMethod), nil
	case KeyTransparencyStep:
		return snap.MultiZ.TransparencyStep, nil
	case KeyActiveMods:
		return snap.Mods.Active, nil
	case KeyAlwaysIncludeCore:
		return snap.Mods.AlwaysIncludeCore, nil
	case KeyFirstRun:
		return snap.FirstRun, nil
	case KeyMigratedFrom:
		if snap.MigratedFrom == nil {
			return nil, nil
		}
		return int(*snap.MigratedFrom), nil
	}
	if id, ok := strings.CutPrefix(key, KeyGeometryPrefix); ok && id != "" {
		blob, ok := snap.UI.Geometries[id]
		if !ok {
			return nil, nil
		}
		return base64.StdEncoding.EncodeToString(blob), nil
	}
	if objType, ok := typeSlotKey(key); ok {
		slot, ok := snap.TypeSlots.SlotForType(objType)
		if !ok {
			return nil, nil
		}
		return string(slot), nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownKey, key)
}

// SetString parses value for key and applies it through the matching
// setter. Lists, geometries and bookkeeping keys are rejected with
// ErrReadOnlyKey. A single type's slot is set through the virtual key
// "type_slot_mapping.<type>"; an empty value unmaps the type.
func (s *Settings) SetString(key, value string) error {
	switch key {
	case KeyRoot:
		s.SetRoot(value)
	case KeyTheme:
		s.SetTheme(Theme(value))
	case KeyDefaultTileset:
		s.SetDefaultTileset(value)
	case KeyDefaultTilesetIso:
		s.SetDefaultTilesetIso(value)
	case KeyLogLevel:
		return s.SetLevel(value)
	case KeyGUILevel:
		return s.SetGUILevel(value)
	case KeyBrightnessMethod:
		return s.SetBrightnessMethod(StepMethod(value))
	case KeyTransparencyMethod:
		return s.SetTransparencyMethod(StepMethod(value))
	case KeyBrightnessAbove:
		return s.SetBrightnessAbove(BrightnessOp(value))
	case KeyBrightnessBelow:
		return s.SetBrightnessBelow(BrightnessOp(value))
	case KeyZoomLevel, KeyAnimationTimeout, KeyGUIMaxLines, KeyMultiZLevelsAbove, KeyMultiZLevelsBelow:
		n, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return fmt.Errorf("%s: %q is not an integer", key, value)
		}
		return s.setInt(key, n)
	case KeyBrightnessStep, KeyTransparencyStep:
		f, ok := asFloat(value)
		if !ok {
			return fmt.Errorf("%s: %q is not a number", key, value)
		}
		if key == KeyBrightnessStep {
			s.SetBrightnessStep(f)
		} else {
			s.SetTransparencyStep(f)
		}
	case KeyExplorerStayAboveMain, KeyGridVisible, KeyConsoleEnabled,
		KeyConsoleColors, KeyFileEnabled, KeyAlwaysIncludeCore,
		KeyGUIShowOnStartup, KeyGUIShowOnError, KeyGUIFocusOnError, KeyMultiZEnabled:
		b, ok := asBool(value)
		if !ok {
			return fmt.Errorf("%s: %q is not a boolean", key, value)
		}
		s.setBool(key, b)
	case KeyVersion, KeyRecentFiles, KeyActiveMods, KeyFirstRun, KeyMigratedFrom, KeyTypeSlotMapping:
		return fmt.Errorf("%w: %s", ErrReadOnlyKey, key)
	default:
		if objType, ok := typeSlotKey(key); ok {
			s.SetSlotForType(objType, Slot(strings.TrimSpace(value)))
			return nil
		}
		if strings.HasPrefix(key, KeyGeometryPrefix) {
			return fmt.Errorf("%w: %s", ErrReadOnlyKey, key)
		}
		return fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
	return nil
}

func (s *Settings) setBool(key string, v bool) {
	switch key {
	case KeyExplorerStayAboveMain:
		s.SetExplorerStayAboveMain(v)
	case KeyGridVisible:
		s.SetGridVisible(v)
	case KeyConsoleEnabled:
		s.SetConsoleEnabled(v)
	case KeyConsoleColors:
		s.SetConsoleColors(v)
	case KeyFileEnabled:
		s.SetFileEnabled(v)
	case KeyAlwaysIncludeCore:
		s.SetAlwaysIncludeCore(v)
	case KeyGUIShowOnStartup:
		s.SetGUIShowOnStartup(v)
	case KeyGUIShowOnError:
		s.SetGUIShowOnError(v)
	case KeyGUIFocusOnError:
		s.SetGUIFocusOnError(v)
	case KeyMultiZEnabled:
		s.SetMultiZEnabled(v)
	}
}

func (s *Settings) setInt(key string, n int) error {
	switch key {
	case KeyZoomLevel:
		s.SetZoom(n)
	case KeyAnimationTimeout:
		s.SetAnimationTimeout(n)
	case KeyGUIMaxLines:
		return s.SetGUIMaxLines(n)
	case KeyMultiZLevelsAbove:
		s.SetLevelsAbove(n)
	case KeyMultiZLevelsBelow:
		s.SetLevelsBelow(n)
	}
	return nil
}

// typeSlotKey extracts the object type from "type_slot_mapping.<type>".
func typeSlotKey(key string) (string, bool) {
	objType, ok := strings.CutPrefix(key, KeyTypeSlotMapping+".")
	return objType, ok && objType != ""
}
