package config

type UploadConfig struct {
	AllowedMimeTypes []string
	MaxSizeMB        int64
}

// UploadContexts - правила для загружаемых файлов по контексту.
// xlsx - это zip-архив, DetectContentType видит его как application/zip.
var UploadContexts = map[string]UploadConfig{
	"equipment_import": {
		AllowedMimeTypes: []string{
			"application/zip",
			"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		},
		MaxSizeMB: 5,
	},
}
