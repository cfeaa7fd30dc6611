// Package settings is the runtime half of settingsgen: the lookup library
// that generated accessors call into.
//
// A Source resolves a path of raw configuration keys to a value. Scopes bind
// a Source to a section path, and the typed getters (String, Int, Strings,
// Level, ...) coerce whatever the Source holds into the requested Go type,
// falling back to a fixed default when the key is absent or cannot be
// converted:
//
//	doc, err := settings.LoadFile("appsettings.json")
//	if err != nil {
//	    return err
//	}
//	cfg := myapp.NewAppSettingsAccessor(doc)
//	level := cfg.Logging.LogLevel.GetDefault() // settings.LogLevelNone if unset
//
// Getters never cache. Reloading a Document is observed by the next call.
package settings
