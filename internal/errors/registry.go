package errors

import "sort"

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category Category
	Message  string
	Detail   string
	DocURL   string
}

// Error codes.
const (
	CodeInvalidConfig   = "E120"
	CodeInvalidPort     = "E121"
	CodeInvalidStatic   = "E122"
	CodeConfigNotFound  = "E141"
	CodeNilPage         = "E200"
	CodeInvalidToken    = "E201"
	CodeRouteNotFound   = "E202"
	CodeOutputDir       = "E300"
	CodeUploadFailed    = "E301"
	CodeInvalidS3Config = "E302"
	CodeUnsafeOutput    = "E303"
)

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	// Config errors (E120-E149)
	CodeInvalidConfig: {
		Category: CategoryConfig,
		Message:  "Invalid configuration",
		Detail:   "The dashboard configuration file could not be parsed or contains invalid values.",
		DocURL:   "https://dashboard.dev/docs/errors/E120",
	},
	CodeInvalidPort: {
		Category: CategoryConfig,
		Message:  "Invalid port",
		Detail:   "The server port must be between 1 and 65535.",
		DocURL:   "https://dashboard.dev/docs/errors/E121",
	},
	CodeInvalidStatic: {
		Category: CategoryConfig,
		Message:  "Invalid static prefix",
		Detail:   "The static file prefix must start with '/'.",
		DocURL:   "https://dashboard.dev/docs/errors/E122",
	},
	CodeConfigNotFound: {
		Category: CategoryCLI,
		Message:  "Configuration not found",
		Detail:   "No dashboard.json or dashboard.yaml was found in this directory or any parent.",
		DocURL:   "https://dashboard.dev/docs/errors/E141",
	},

	// Render errors (E200-E299)
	CodeNilPage: {
		Category: CategoryRender,
		Message:  "Page returned nil",
		Detail:   "A page handler must return a component tree.",
		DocURL:   "https://dashboard.dev/docs/errors/E200",
	},
	CodeInvalidToken: {
		Category: CategoryRender,
		Message:  "Invalid component token",
		Detail:   "A layout or typography component was given a value outside its design scale.",
		DocURL:   "https://dashboard.dev/docs/errors/E201",
	},
	CodeRouteNotFound: {
		Category: CategoryRender,
		Message:  "Route not found",
		Detail:   "No page is registered for the requested path.",
		DocURL:   "https://dashboard.dev/docs/errors/E202",
	},

	// Export errors (E300-E399)
	CodeOutputDir: {
		Category: CategoryExport,
		Message:  "Cannot write output directory",
		Detail:   "The export output directory could not be created or written.",
		DocURL:   "https://dashboard.dev/docs/errors/E300",
	},
	CodeUploadFailed: {
		Category: CategoryExport,
		Message:  "Upload failed",
		Detail:   "An exported file could not be uploaded to the configured bucket.",
		DocURL:   "https://dashboard.dev/docs/errors/E301",
	},
	CodeInvalidS3Config: {
		Category: CategoryExport,
		Message:  "Invalid S3 configuration",
		Detail:   "An S3 upload needs a bucket name and a region.",
		DocURL:   "https://dashboard.dev/docs/errors/E302",
	},
	CodeUnsafeOutput: {
		Category: CategoryExport,
		Message:  "Unsafe output directory",
		Detail:   "The export output directory is removed before writing, so it must not contain the project or its static files.",
		DocURL:   "https://dashboard.dev/docs/errors/E303",
	},
}

// GetAllCodes returns all registered error codes, sorted.
func GetAllCodes() []string {
	codes := make([]string, 0, len(registry))
	for code := range registry {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// GetTemplate returns the template for an error code.
func GetTemplate(code string) (ErrorTemplate, bool) {
	t, ok := registry[code]
	return t, ok
}

// Register adds a new error template to the registry.
func Register(code string, template ErrorTemplate) {
	registry[code] = template
}
