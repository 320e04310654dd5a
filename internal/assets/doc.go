// Package assets provides the report stylesheet and html/template source.
//
// # Loader Architecture
//
//	AssetLoader (interface)
//	    │
//	    ├── EmbeddedLoader    - built-in report.css and report.html
//	    ├── FilesystemLoader  - custom directory on disk
//	    └── AssetResolver     - custom first, embedded fallback
//
// A custom directory may override either asset and leave the other to the
// built-in default:
//
//	{basePath}/
//	├── styles/
//	│   └── report.css
//	└── templates/
//	    └── report.html
//
// # Security
//
// Asset names are validated to prevent path traversal. FilesystemLoader
// resolves symlinks, verifies paths stay within basePath and rejects files
// larger than MaxAssetSize.
package assets
