package config

const (
	defaultConfigName       = "catalog.toml"
	defaultPrimarySource    = "your_content_data.csv"
	defaultSecondarySource  = "Message tracks and length.XLSX"
	defaultOutput           = "src/data/staticContent.js"
	defaultEncoding         = "utf-8"
	defaultDelimiter        = ","
	defaultKeyColumn        = "Program Set Number"
	defaultDurationColumn   = "Message Length"
	defaultTrackCountColumn = "Track Count"
	defaultSampleURLPrefix  = "/audio"
	defaultBinding          = "staticContent"
	defaultIndent           = 4
	defaultHistoryPath      = ".catalog/history.db"
	defaultLogFormat        = "console"
	defaultLogLevel         = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			PrimarySource:   defaultPrimarySource,
			SecondarySource: defaultSecondarySource,
			Output:          defaultOutput,
		},
		Source: Source{
			Encoding:  defaultEncoding,
			Delimiter: defaultDelimiter,
		},
		Merge: Merge{
			Enabled:          true,
			KeyColumn:        defaultKeyColumn,
			DurationColumn:   defaultDurationColumn,
			TrackCountColumn: defaultTrackCountColumn,
		},
		Samples: Samples{
			URLPrefix: defaultSampleURLPrefix,
		},
		Emit: Emit{
			Binding: defaultBinding,
			Indent:  defaultIndent,
		},
		History: History{
			Path: defaultHistoryPath,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
